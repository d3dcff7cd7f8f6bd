package fleet

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the canonical wire form for date fields.
const DateLayout = "2006-01-02"

// Normalize converts a field value into its canonical comparable string for
// the declared type. nil (and nil pointers) normalize to nil, the null
// marker, so absent and explicitly-null values compare equal. Normalizing an
// already-normalized string is the identity operation.
func Normalize(t FieldType, v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case *string:
		if x == nil {
			return nil
		}
		v = *x
	case *int:
		if x == nil {
			return nil
		}
		v = *x
	case *time.Time:
		if x == nil {
			return nil
		}
		v = *x
	}

	var s string
	switch t {
	case TypeDate:
		s = normalizeDate(v)
	case TypeNumber:
		s = normalizeNumber(v)
	case TypeBool:
		s = normalizeBool(v)
	default:
		s = fmt.Sprintf("%v", v)
	}
	return &s
}

func normalizeDate(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(DateLayout)
	case string:
		if ts, err := ParseDate(x); err == nil {
			return ts.UTC().Format(DateLayout)
		}
		return x
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeNumber makes 5 and "5" compare equal: everything goes through a
// float parse and back out as the shortest decimal form. Unparseable input
// becomes "NaN" rather than an error, so a bad value still diffs sanely.
func normalizeNumber(v any) string {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return "NaN"
		}
		f = parsed
	default:
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func normalizeBool(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return strconv.FormatBool(b)
		}
		return x
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseDate accepts the canonical date form or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if ts, err := time.Parse(DateLayout, s); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}
