package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const entryNumberPrefix = "JE-"

// FormatEntryNumber renders the n-th entry number of an organization, e.g. JE-0007.
func FormatEntryNumber(n int64) string {
	return fmt.Sprintf("%s%04d", entryNumberPrefix, n)
}

// ParseEntryNumber extracts the sequence from an entry number produced by FormatEntryNumber.
func ParseEntryNumber(entryNumber string) (int64, error) {
	digits, ok := strings.CutPrefix(entryNumber, entryNumberPrefix)
	if !ok {
		return 0, fmt.Errorf("entry number %q lacks %s prefix", entryNumber, entryNumberPrefix)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("entry number %q has an invalid sequence", entryNumber)
	}
	return n, nil
}
