package pipeline

import (
	"takeoutsort/internal/album"
	"takeoutsort/internal/model"
)

// runAlbumConsolidation is a thin wrapper over album.Consolidate so every
// stage in this package has a uniform run* entrypoint.
func runAlbumConsolidation(coll *model.MediaCollection) album.Summary {
	return album.Consolidate(coll)
}
