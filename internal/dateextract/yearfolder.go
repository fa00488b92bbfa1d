package dateextract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// yearFolderPattern matches "Photos from YYYY" (case-insensitive, with
// underscores normalized to spaces first), per spec.md §4.2/§4.4.
var yearFolderPattern = regexp.MustCompile(`(?i)^photos from (\d{4})$`)

// IsYearFolderName reports whether name is a year-folder basename and, if
// so, the year it names, bounded to [1900, currentYear].
func IsYearFolderName(name string, currentYear int) (int, bool) {
	normalized := strings.ReplaceAll(name, "_", " ")
	matches := yearFolderPattern.FindStringSubmatch(normalized)
	if matches == nil {
		return 0, false
	}
	year, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	if year < 1900 || year > currentYear {
		return 0, false
	}
	return year, true
}

// ExtractYearFolder yields January 1 of the given year at local midnight,
// the lowest-confidence (rank 4) fallback date.
func ExtractYearFolder(year int) Result {
	return Result{
		Date:   time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local),
		Rank:   RankYearFolder,
		Method: MethodYearFolder,
	}
}
