package dateextract

import (
	"time"

	"takeoutsort/internal/sidecar"
)

// ExtractSidecar resolves the rank-2 date from a Takeout sidecar JSON
// document located via sidecar.Locate.
func ExtractSidecar(mediaPath string) (Result, bool, error) {
	sidecarPath := sidecar.Locate(mediaPath)
	if sidecarPath == "" {
		return Result{}, false, nil
	}
	doc, err := sidecar.Parse(sidecarPath)
	if err != nil {
		return Result{}, false, err
	}
	seconds := doc.TakenTimeSeconds()
	if seconds == 0 {
		return Result{}, false, nil
	}
	return Result{
		Date:   time.Unix(seconds, 0).UTC(),
		Rank:   RankSidecar,
		Method: MethodSidecar,
	}, true, nil
}

// SidecarGeo returns the (lat, lon) pair from a media file's sidecar, if
// present, for stage 7's GPS write-back.
func SidecarGeo(mediaPath string) (lat, lon float64, ok bool) {
	sidecarPath := sidecar.Locate(mediaPath)
	if sidecarPath == "" {
		return 0, 0, false
	}
	doc, err := sidecar.Parse(sidecarPath)
	if err != nil || !doc.HasGeoData() {
		return 0, 0, false
	}
	return doc.GeoData.Latitude, doc.GeoData.Longitude, true
}
