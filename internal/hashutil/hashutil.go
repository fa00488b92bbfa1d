// Package hashutil implements stage 3's content hasher: a size pre-filter
// plus streaming SHA-256, with digests for a size bucket computed in
// bounded-concurrency batches (spec.md §5.1).
package hashutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency mirrors spec.md §5: num_cpus*2 on Windows,
// num_cpus+1 elsewhere. The platform split is pushed to a build-tag pair
// so this file stays platform-neutral.
func DefaultMaxConcurrency() int {
	return defaultMaxConcurrency(runtime.NumCPU())
}

// SHA256File streams path through an incremental SHA-256 digester and
// returns the lowercase hex digest.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Result pairs a path with its digest or the error encountered hashing it.
type Result struct {
	Path string
	Sum  string
	Err  error
}

// HashBatch computes SHA-256 digests for every path, bounding concurrency
// to maxConcurrency via errgroup.SetLimit, and joining the batch before
// returning — matching spec.md §5.1's "tasks within a batch join before
// the next batch starts". A read failure is captured per path (Result.Err)
// rather than aborting the group, since an unhashed file in stage 3 is
// treated as unique, not fatal.
func HashBatch(ctx context.Context, paths []string, maxConcurrency int) []Result {
	results := make([]Result, len(paths))
	g, _ := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			sum, err := SHA256File(p)
			results[i] = Result{Path: p, Sum: sum, Err: err}
			return nil // per-path errors never abort the group
		})
	}
	_ = g.Wait()
	return results
}
