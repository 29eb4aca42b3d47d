package output

import (
	"strconv"
	"strings"
)

// columnKind is the storage type chosen for a column of typed outputs.
type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindText
)

// inferKinds picks a storage type per field: integer when the field parses
// as an int64, float when it parses as a float64, text otherwise. With floats
// set, integer fields are stored as floats because later rows of the same
// column may carry fractions.
func inferKinds(fields []string, floats bool) []columnKind {
	kinds := make([]columnKind, len(fields))
	for i, f := range fields {
		kinds[i] = inferKind(f)
		if floats && kinds[i] == kindInt {
			kinds[i] = kindFloat
		}
	}
	return kinds
}

// emptyKinds is used when a header arrives without any row.
func emptyKinds(n int, floats bool) []columnKind {
	kinds := make([]columnKind, n)
	if floats {
		for i := range kinds {
			kinds[i] = kindFloat
		}
	}
	return kinds
}

func inferKind(field string) columnKind {
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return kindInt
	}
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return kindFloat
	}
	return kindText
}

// uniqueNames renames repeated column names to name_2, name_3, ... so they
// can be used where names must be distinct.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		if name == "" {
			name = "col_" + strconv.Itoa(i)
		}
		candidate := name
		for n := 2; seen[candidate]; n++ {
			candidate = name + "_" + strconv.Itoa(n)
		}
		seen[candidate] = true
		out[i] = candidate
	}
	return out
}

// quoteIdent quotes an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
