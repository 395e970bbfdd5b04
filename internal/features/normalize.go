package features

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	levelPattern   = regexp.MustCompile(`^level\s*([+-]?\d+)`)
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// aliases maps lower-cased synonyms to category codes, per column. Canonical labels are
// added case-insensitively at init.
var aliases = map[string]map[string]int{
	"Department": {
		"r&d":                      1,
		"research & development":   1,
		"research and development": 1,
		"hr":                       0,
	},
	"OverTime": {
		"yes": 1, "y": 1, "ya": 1, "true": 1, "1": 1,
		"no": 0, "n": 0, "tidak": 0, "false": 0, "0": 0,
	},
	"MaritalStatus": {
		"menikah": 0,
		"lajang":  1,
		"cerai":   2,
	},
}

func init() {
	for _, c := range schema {
		if c.Kind != Categorical {
			continue
		}
		table, ok := aliases[c.Name]
		if !ok {
			table = make(map[string]int, len(c.Categories))
			aliases[c.Name] = table
		}
		for _, cat := range c.Categories {
			key := strings.ToLower(cat.Label)
			if _, taken := table[key]; !taken {
				table[key] = cat.Code
			}
		}
	}
}

// NormalizeCategory resolves a raw categorical value to its training code. Resolution
// order: exact label, case-insensitive alias, "Level <n>" for level-style columns, then a
// plain number. Any code outside the column's training set is rejected.
func NormalizeCategory(column string, v Value) (int, error) {
	col, ok := Lookup(column)
	if !ok || col.Kind != Categorical {
		return 0, &InvalidCategoryError{Column: column, Value: v.String()}
	}
	if v.IsBlank() {
		return 0, &MissingValueError{Column: column}
	}

	s := strings.TrimSpace(v.String())
	if code, ok := col.labelCode(s); ok {
		return code, nil
	}

	lower := strings.ToLower(s)
	if code, ok := aliases[column][lower]; ok {
		return code, nil
	}

	if col.LevelStyle {
		if m := levelPattern.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && col.validCode(n) {
				return n, nil
			}
		}
	}

	if n, ok := parseTruncated(s); ok && col.validCode(n) {
		return n, nil
	}

	return 0, &InvalidCategoryError{
		Column: column,
		Value:  v.String(),
		Labels: col.Labels(),
		Codes:  col.Codes(),
	}
}

// parseTruncated parses a decimal-notation number and truncates it toward zero.
func parseTruncated(s string) (int, bool) {
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
