package features

import (
	"slices"
	"strings"
)

// DetectNameColumn returns the first name candidate present in header, or "".
func DetectNameColumn(header []string) string {
	for _, c := range NameCandidates {
		if slices.Contains(header, c) {
			return c
		}
	}
	return ""
}

// NameFromRow returns the trimmed name stored in nameColumn, or nil when there is no name
// column or the cell is blank.
func NameFromRow(rec Record, nameColumn string) *string {
	if nameColumn == "" {
		return nil
	}
	return nameOf(rec.Get(nameColumn))
}

// NameFromPayload scans the name candidates in order and returns the first non-blank value.
func NameFromPayload(rec Record) *string {
	for _, key := range NameCandidates {
		if name := nameOf(rec.Get(key)); name != nil {
			return name
		}
	}
	return nil
}

func nameOf(v Value) *string {
	if v.IsBlank() {
		return nil
	}
	s := strings.TrimSpace(v.String())
	return &s
}
