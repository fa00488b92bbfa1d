package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"takeoutsort/internal/config"
	"takeoutsort/internal/errs"
	"takeoutsort/internal/fileops"
	"takeoutsort/internal/model"
	"takeoutsort/internal/pathgen"
	"takeoutsort/internal/platform"
	"takeoutsort/internal/strategy"
)

// specialFolderNames are the fixed list of Takeout folder names that are
// relocated out of band before any album strategy runs (spec.md §4.6.4).
var specialFolderNames = map[string]string{
	"archive": "Archive",
	"trash":   "Trash",
	"bin":     "Bin",
}

// divisionFromConfig maps config.DateDivision onto pathgen.DivisionLevel.
func divisionFromConfig(d config.DateDivision) pathgen.DivisionLevel {
	return pathgen.DivisionLevel(d)
}

// runOutputMaterialization is stage 6: special-folder relocation followed
// by the configured album-handling strategy applied to every entity, per
// spec.md §4.6.
func runOutputMaterialization(fs afero.Fs, outputDir string, cfg *config.Config, coll *model.MediaCollection, counters *errs.Counters) error {
	ops := fileops.New(fs)
	linker := platform.NewLinker()
	strat := strategy.New(cfg.AlbumBehavior)

	sctx := strategy.Context{FS: fs, Ops: ops, Linker: linker, Division: divisionFromConfig(cfg.DateDivision), CopyMode: cfg.CopyMode}
	if err := strat.ValidateContext(sctx); err != nil {
		return err
	}

	relocateSpecialFolders(ops, outputDir, coll, counters)

	var allPlaced []strategy.PlacedFile
	coll.ForEach(func(idx int, m *model.MediaEntity) {
		used := fileops.NewUsedNames()
		// Files already relocated into Special Folders are left out of
		// the entity the strategy sees.
		view := *m
		view.SecondaryFiles = nil
		for _, f := range m.SecondaryFiles {
			if f.TargetPath == "" {
				view.SecondaryFiles = append(view.SecondaryFiles, f)
			}
		}
		if view.PrimaryFile.TargetPath != "" {
			if len(view.SecondaryFiles) == 0 {
				return
			}
			view.PrimaryFile, view.SecondaryFiles = view.SecondaryFiles[0], view.SecondaryFiles[1:]
		}
		placed, err := strat.ProcessEntity(sctx, used, &view, idx)
		if err != nil {
			counters.RecordFailure(errs.New(errs.KindMove, m.PrimaryFile.SourcePath, err))
			return
		}
		applyPlacement(m, placed)
		allPlaced = append(allPlaced, placed...)
		counters.RecordSuccess()
	})

	if err := strat.Finalize(sctx, allPlaced); err != nil {
		return err
	}

	if js, ok := strat.(interface{ Manifest() []strategy.ManifestEntry }); ok {
		return writeAlbumManifest(fs, outputDir, js.Manifest(), len(allPlaced), coll.Len())
	}
	return nil
}

// applyPlacement writes each PlacedFile's outcome back onto the entity's
// FileEntity records, maintaining the §3 invariant that every file ends
// up either deleted or carrying a target_path, never both.
func applyPlacement(m *model.MediaEntity, placed []strategy.PlacedFile) {
	bySource := map[string]*model.FileEntity{}
	bySource[m.PrimaryFile.SourcePath] = &m.PrimaryFile
	for i := range m.SecondaryFiles {
		bySource[m.SecondaryFiles[i].SourcePath] = &m.SecondaryFiles[i]
	}

	for _, p := range placed {
		f, ok := bySource[p.SourcePath]
		if !ok {
			continue
		}
		f.TargetPath = p.TargetPath
		f.IsShortcut = p.IsShortcut
		f.IsDuplicateCopy = p.IsCopy
		f.IsMoved = !p.IsShortcut && !p.IsCopy
	}
}

// relocateSpecialFolders moves any file whose source path contains a
// special-folder segment into <output>/Special Folders/<Name>/…,
// excluding it from further strategy processing (spec.md §4.6.4).
func relocateSpecialFolders(ops *fileops.Service, outputDir string, coll *model.MediaCollection, counters *errs.Counters) {
	used := fileops.NewUsedNames()
	coll.ForEach(func(_ int, m *model.MediaEntity) {
		relocateIfSpecial(ops, outputDir, &m.PrimaryFile, used, counters)
		for i := range m.SecondaryFiles {
			relocateIfSpecial(ops, outputDir, &m.SecondaryFiles[i], used, counters)
		}
	})
}

func relocateIfSpecial(ops *fileops.Service, outputDir string, f *model.FileEntity, used *fileops.UsedNames, counters *errs.Counters) {
	if f.TargetPath != "" || f.IsDeleted {
		return
	}
	name, ok := specialFolderMatch(f.SourcePath)
	if !ok {
		return
	}
	dir := filepath.Join(outputDir, "Special Folders", name)
	target, err := ops.Move(f.SourcePath, dir, nil, used)
	if err != nil {
		counters.RecordFailure(err)
		return
	}
	f.TargetPath = target
	f.IsMoved = true
	counters.RecordSuccess()
}

func specialFolderMatch(path string) (string, bool) {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if name, ok := specialFolderNames[strings.ToLower(seg)]; ok {
			return name, true
		}
	}
	return "", false
}

// albumManifestDocument is the top-level shape of albums-info.json
// (spec.md §4.6.5 "JSON" variant).
type albumManifestDocument struct {
	Albums   map[string][]strategy.ManifestEntry `json:"albums"`
	Metadata albumManifestMetadata               `json:"metadata"`
}

type albumManifestMetadata struct {
	Generated     string `json:"generated"`
	TotalAlbums   int    `json:"total_albums"`
	TotalEntities int    `json:"total_entities"`
	Strategy      string `json:"strategy"`
}

func writeAlbumManifest(fs afero.Fs, outputDir string, entries []strategy.ManifestEntry, placedCount, entityCount int) error {
	byAlbum := map[string][]strategy.ManifestEntry{}
	for _, e := range entries {
		byAlbum[e.AlbumName] = append(byAlbum[e.AlbumName], e)
	}

	doc := albumManifestDocument{
		Albums: byAlbum,
		Metadata: albumManifestMetadata{
			TotalAlbums:   len(byAlbum),
			TotalEntities: entityCount,
			Strategy:      "json",
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.New(errs.KindConfig, outputDir, err)
	}
	path := filepath.Join(outputDir, "albums-info.json")
	f, err := fs.Create(path)
	if err != nil {
		return errs.New(errs.KindConfig, path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return errs.New(errs.KindConfig, path, err)
	}
	return nil
}
