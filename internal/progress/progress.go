// Package progress implements the pipeline's resumability snapshot: a
// JSON document capturing which stages have completed and the media
// collection state at that point, so a killed run can resume instead of
// restarting (spec.md §7, "Progress document").
package progress

import (
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"takeoutsort/internal/errs"
	"takeoutsort/internal/model"
)

// StageResult summarizes one completed stage, carried forward in the
// document so a resumed run can report cumulative counters.
type StageResult struct {
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// Document is the full on-disk progress snapshot.
type Document struct {
	RunID           string            `json:"run_id"`
	InputDir        string            `json:"input_dir"`
	OutputDir       string            `json:"output_dir"`
	CompletedStages []string          `json:"completed_stages"`
	StageResults    []StageResult     `json:"stage_results"`
	Collection      []FileSnapshot    `json:"collection_snapshot"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// FileSnapshot is the serializable projection of one model.MediaEntity.
type FileSnapshot struct {
	PrimarySource string            `json:"primary_source"`
	PrimaryTarget string            `json:"primary_target"`
	Albums        []string          `json:"albums"`
	HasDateTaken  bool              `json:"has_date_taken"`
	DateTaken     time.Time         `json:"date_taken,omitempty"`
	DateAccuracy  int               `json:"date_accuracy"`
	Secondary     []SecondarySnapshot `json:"secondary,omitempty"`
}

// SecondarySnapshot projects one non-primary FileEntity.
type SecondarySnapshot struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewRunID generates a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Snapshot builds a Document from the collection's current state.
func Snapshot(runID, inputDir, outputDir string, completedStages []string, results []StageResult, coll *model.MediaCollection, now time.Time) Document {
	snaps := make([]FileSnapshot, 0, coll.Len())
	for _, m := range coll.Snapshot() {
		fs := FileSnapshot{
			PrimarySource: m.PrimaryFile.SourcePath,
			PrimaryTarget: m.PrimaryFile.TargetPath,
			Albums:        m.AlbumNames(),
			HasDateTaken:  m.HasDateTaken,
			DateTaken:     m.DateTaken,
			DateAccuracy:  m.DateAccuracy,
		}
		for _, sec := range m.SecondaryFiles {
			fs.Secondary = append(fs.Secondary, SecondarySnapshot{Source: sec.SourcePath, Target: sec.TargetPath})
		}
		snaps = append(snaps, fs)
	}

	return Document{
		RunID:           runID,
		InputDir:        inputDir,
		OutputDir:       outputDir,
		CompletedStages: completedStages,
		StageResults:    results,
		Collection:      snaps,
		UpdatedAt:       now,
	}
}

// Save writes doc to path as indented JSON.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.New(errs.KindConfig, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.New(errs.KindConfig, path, err)
	}
	return nil
}

// Load reads a Document from path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errs.New(errs.KindConfig, path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errs.New(errs.KindConfig, path, err)
	}
	return doc, nil
}

// HasCompleted reports whether stage appears in doc's completed list.
func (d Document) HasCompleted(stage string) bool {
	for _, s := range d.CompletedStages {
		if s == stage {
			return true
		}
	}
	return false
}
