package dateextract

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"time"
)

// appleEpochAdjustment converts a QuickTime "seconds since 1904-01-01"
// creation_time atom into a Unix epoch offset. Grounded in
// davidrenne-mediaRenamerToTimestamp's getVideoCreationTimeMetadata.
const appleEpochAdjustment = 2082844800

const (
	movieResourceAtomType  = "moov"
	movieHeaderAtomType    = "mvhd"
	referenceMovieAtomType = "rmra"
	compressedMovieAtomType = "cmov"
)

// ExtractVideoContainerCreationTime walks a QuickTime/MP4 atom tree
// looking for the moov/mvhd creation_time field, the video analogue of
// EXIF DateTimeOriginal (spec.md §4.4 rank 1 for videos).
func ExtractVideoContainerCreationTime(path string) (Result, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, false, err
	}
	defer f.Close()

	t, err := readMovieHeaderCreationTime(f)
	if err != nil {
		// Atom not found / not a quicktime-family container: no date,
		// not a hard failure of the extractor.
		return Result{}, false, nil
	}
	return Result{Date: t, Rank: RankEXIF, Method: MethodEXIFVideo}, true, nil
}

func readMovieHeaderCreationTime(r io.ReadSeeker) (time.Time, error) {
	buf := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return time.Time{}, err
		}
		if bytes.Equal(buf[4:8], []byte(movieResourceAtomType)) {
			break
		}
		atomSize := binary.BigEndian.Uint32(buf)
		if atomSize < 8 {
			return time.Time{}, errors.New("invalid atom size")
		}
		if _, err := r.Seek(int64(atomSize)-8, io.SeekCurrent); err != nil {
			return time.Time{}, err
		}
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return time.Time{}, err
	}
	atomType := string(buf[4:8])
	switch atomType {
	case movieHeaderAtomType:
		if _, err := io.ReadFull(r, buf); err != nil {
			return time.Time{}, err
		}
		appleEpoch := int64(binary.BigEndian.Uint32(buf[4:]))
		return time.Unix(appleEpoch-appleEpochAdjustment, 0).UTC(), nil
	case compressedMovieAtomType:
		return time.Time{}, errors.New("compressed movie atom unsupported")
	case referenceMovieAtomType:
		return time.Time{}, errors.New("reference movie atom unsupported")
	default:
		return time.Time{}, errors.New("movie header atom not found")
	}
}
