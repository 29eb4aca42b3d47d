package record

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Number is the set of value types a Record can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Parser converts a single CSV field into a value of type T.
type Parser[T Number] func(field string) (T, error)

// ParseNumber is the default Parser. It strips non-printable characters and
// surrounding whitespace, then parses the field according to the kind of T.
// Out of range values are reported as errors, and so is any field that is not
// a number as a whole: "12abc" and, for integer types, "1.5" are malformed.
func ParseNumber[T Number](field string) (T, error) {
	var zero T
	s := strings.TrimSpace(stripNonPrintable(field))

	typ := reflect.TypeOf(zero)
	switch typ.Kind() {
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, typ.Bits())
		if err != nil {
			return zero, err
		}
		return T(f), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, typ.Bits())
		if err != nil {
			return zero, err
		}
		return T(u), nil
	default:
		i, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return zero, err
		}
		return T(i), nil
	}
}

// FormatNumber renders v the way it is written to output.
func FormatNumber[T Number](v T) string {
	switch reflect.TypeOf(v).Kind() {
	case reflect.Float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}

// stripNonPrintable removes every rune that is not printable, e.g. the
// carriage return left behind by CRLF line endings.
func stripNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// SplitFields splits a line on commas. An empty line has no fields and a
// single trailing empty field is dropped, so "a,b," has two fields.
func SplitFields(line string) []string {
	if line == "" {
		return nil
	}
	fields := strings.Split(line, ",")
	if fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
