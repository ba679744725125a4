package bulkload

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vvka-141/ecomadmin/internal/schema"
)

var (
	dateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"1/2/2006",
	}

	timestampLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	// Card-style expiry: MM/YY.
	monthYearPattern = regexp.MustCompile(`^(\d{1,2})/(\d{2})$`)
)

// coerceInt accepts plain integers and integral decimals such as "3.0",
// which spreadsheet exports produce for nullable integer columns.
func coerceInt(raw string, col schema.Column) (int64, string) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		d, derr := decimal.NewFromString(raw)
		if derr != nil || !d.IsInteger() {
			return 0, "not an integer"
		}
		n = d.IntPart()
	}
	if col.HasMin && n < col.Min {
		return 0, fmt.Sprintf("must be at least %d", col.Min)
	}
	return n, ""
}

func coerceDate(raw string) (time.Time, string) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, ""
		}
	}
	if m := monthYearPattern.FindStringSubmatch(raw); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return time.Time{}, "month must be between 1 and 12"
		}
		// Day zero of the next month is the last day of this one.
		return time.Date(2000+year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC), ""
	}
	return time.Time{}, "not a recognized date"
}

func coerceTimestamp(raw string) (time.Time, string) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, ""
		}
	}
	return time.Time{}, "not a recognized timestamp"
}

// coerceField converts one trimmed source field into the value bound for col.
// An empty field has already been screened for required columns, so it maps
// to NULL here, except timestamps which fall back to loadTime.
func coerceField(col schema.Column, raw string, loadTime time.Time) (any, string) {
	if raw == "" {
		if col.Kind == schema.KindTimestamp {
			return loadTime, ""
		}
		return nil, ""
	}

	switch col.Kind {
	case schema.KindInt:
		n, reason := coerceInt(raw, col)
		if reason != "" {
			return nil, reason
		}
		return n, ""
	case schema.KindFraction:
		d, reason := schema.ParseFraction(raw)
		if reason != "" {
			return nil, reason
		}
		return d, ""
	case schema.KindDate:
		t, reason := coerceDate(raw)
		if reason != "" {
			return nil, reason
		}
		return t, ""
	case schema.KindTimestamp:
		t, reason := coerceTimestamp(raw)
		if reason != "" {
			return nil, reason
		}
		return t, ""
	case schema.KindText:
		return raw, ""
	default:
		return nil, fmt.Sprintf("unsupported column kind %s", col.Kind)
	}
}

func preview(value string, limit int) string {
	runes := []rune(strings.ToValidUTF8(value, "?"))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
