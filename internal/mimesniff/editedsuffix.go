package mimesniff

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// editedSuffixes are the localized "edited" markers from spec.md §4.3,
// tried longest-first so a longer suffix is never shadowed by a shorter
// one that happens to be its own suffix.
var editedSuffixes = []string{
	"-edited",
	"-edytowane",
	"-bearbeitet",
	"-bewerkt",
	"-編集済み",
	"-modificato",
	"-modifié",
	"-ha editado",
	"-editat",
}

func init() {
	sortLongestFirst(editedSuffixes)
}

func sortLongestFirst(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && len([]rune(s[j-1])) < len([]rune(s[j])); j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// normalizedBase lowercases and NFC-normalizes a file's basename without
// extension, the comparison form spec.md §4.3 requires.
func normalizedBase(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return norm.NFC.String(strings.ToLower(base))
}

// IsEditedVersion reports whether path's basename carries one of the
// localized edited-suffix markers, after NFC normalization and
// lowercasing.
func IsEditedVersion(path string) bool {
	base := normalizedBase(path)
	for _, suffix := range editedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// partialSuffixPattern matches an optional "(N)" disambiguator trailing a
// partial suffix, per spec.md §4.3's rule for filesystem-truncated
// basenames.
var partialSuffixPattern = regexp.MustCompile(`^(.*?)(\(\d+\))?$`)

// StripPartialEditedSuffix removes a (possibly truncated, possibly
// disambiguated) edited-suffix from a basename-without-extension, used
// when matching a media file to its sidecar JSON. It does not touch the
// file itself — only the in-memory string used for sidecar lookup.
func StripPartialEditedSuffix(baseNoExt string) (string, bool) {
	normalized := norm.NFC.String(strings.ToLower(baseNoExt))
	for _, suffix := range editedSuffixes {
		runes := []rune(suffix)
		for length := len(runes); length >= 2; length-- {
			prefix := string(runes[:length])
			if stripped, ok := tryStripWithDisambiguator(normalized, prefix); ok {
				// Recover the original-case prefix length from baseNoExt.
				cut := len(baseNoExt) - (len(normalized) - len(stripped))
				if cut < 0 || cut > len(baseNoExt) {
					continue
				}
				return baseNoExt[:cut], true
			}
		}
	}
	return baseNoExt, false
}

func tryStripWithDisambiguator(normalized, partialSuffix string) (string, bool) {
	if strings.HasSuffix(normalized, partialSuffix) {
		return strings.TrimSuffix(normalized, partialSuffix), true
	}
	matches := partialSuffixPattern.FindStringSubmatch(normalized)
	if matches == nil {
		return "", false
	}
	withoutDisambig := matches[1]
	if strings.HasSuffix(withoutDisambig, partialSuffix) && matches[2] != "" {
		if _, err := strconv.Atoi(strings.Trim(matches[2], "()")); err == nil {
			return strings.TrimSuffix(withoutDisambig, partialSuffix), true
		}
	}
	return "", false
}
