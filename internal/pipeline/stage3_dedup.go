package pipeline

import (
	"context"
	"os"

	"takeoutsort/internal/errs"
	"takeoutsort/internal/hashutil"
	"takeoutsort/internal/model"
)

// runDedup coalesces duplicates within coll per spec.md §4.3: files are
// bucketed by size, each bucket of more than one file is hashed, and
// every hash group of more than one survivor is merged into its best
// entity, with the others' albums absorbed and files appended as
// secondaries.
func runDedup(ctx context.Context, coll *model.MediaCollection, maxConcurrency int, counters *errs.Counters) {
	sizeBuckets := map[int64][]int{}
	for i := 0; i < coll.Len(); i++ {
		path := coll.At(i).PrimaryFile.SourcePath
		info, err := os.Stat(path)
		if err != nil {
			counters.RecordFailure(errs.New(errs.KindHashing, path, err))
			continue
		}
		sizeBuckets[info.Size()] = append(sizeBuckets[info.Size()], i)
	}

	dropped := make(map[*model.MediaEntity]bool)
	for _, indices := range sizeBuckets {
		if len(indices) < 2 {
			continue
		}

		paths := make([]string, len(indices))
		for i, idx := range indices {
			paths[i] = coll.At(idx).PrimaryFile.SourcePath
		}
		results := hashutil.HashBatch(ctx, paths, maxConcurrency)

		hashGroups := map[string][]int{}
		for i, r := range results {
			if r.Err != nil {
				counters.RecordFailure(errs.New(errs.KindHashing, r.Path, r.Err))
				continue
			}
			hashGroups[r.Sum] = append(hashGroups[r.Sum], indices[i])
		}

		for _, group := range hashGroups {
			if len(group) < 2 {
				continue
			}
			mergeGroup(coll, group, dropped)
			counters.RecordSuccess()
		}
	}

	if len(dropped) > 0 {
		coll.RemoveWhere(func(m *model.MediaEntity) bool {
			return dropped[m]
		})
	}
}

// mergeGroup picks the best entity among group (indices into coll) per
// spec.md §4.3's selection key, merges every other entity's albums and
// files into it, and marks the others for removal in dropped.
func mergeGroup(coll *model.MediaCollection, group []int, dropped map[*model.MediaEntity]bool) {
	survivorIdx := group[0]
	for _, idx := range group[1:] {
		if betterSurvivor(coll.At(idx), coll.At(survivorIdx)) {
			survivorIdx = idx
		}
	}
	survivor := coll.At(survivorIdx)

	for _, idx := range group {
		if idx == survivorIdx {
			continue
		}
		other := coll.At(idx)
		for name, a := range other.AlbumsMap {
			if existing, ok := survivor.AlbumsMap[name]; ok {
				survivor.AlbumsMap[name] = existing.Merge(a)
			} else {
				survivor.AlbumsMap[name] = a
			}
		}
		survivor.SecondaryFiles = append(survivor.SecondaryFiles, other.PrimaryFile)
		survivor.SecondaryFiles = append(survivor.SecondaryFiles, other.SecondaryFiles...)
		dropped[other] = true
	}
}

// betterSurvivor implements the §4.3 tie-break chain: smaller
// date_accuracy (absent = infinite) wins, then shorter primary basename,
// then shorter full path.
func betterSurvivor(a, b *model.MediaEntity) bool {
	aRank, bRank := accuracyOrInf(a), accuracyOrInf(b)
	if aRank != bRank {
		return aRank < bRank
	}
	ab, bb := baseName(a.PrimaryFile.SourcePath), baseName(b.PrimaryFile.SourcePath)
	if len(ab) != len(bb) {
		return len(ab) < len(bb)
	}
	return len(a.PrimaryFile.SourcePath) < len(b.PrimaryFile.SourcePath)
}

func accuracyOrInf(m *model.MediaEntity) int {
	if !m.HasDateTaken {
		return int(^uint(0) >> 1)
	}
	return m.DateAccuracy
}

func baseName(p string) string {
	i := len(p) - 1
	for i >= 0 && p[i] != '/' && p[i] != '\\' {
		i--
	}
	return p[i+1:]
}
