package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/example/inventory/pkg/apperr"
)

// Request bodies deliver numbers and dates as strings; everything is
// coerced here before it reaches the store.

func parseQuantity(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperr.BadRequest(fmt.Sprintf("Invalid %s: %q is not an integer", field, value))
	}
	return n, nil
}

func parsePrice(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, apperr.BadRequest(fmt.Sprintf("Invalid %s: %q is not a number", field, value))
	}
	return f, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// parseDate accepts any ISO-parseable date and normalizes it to UTC;
// marshaling writes it back out as ISO-8601.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.BadRequest(fmt.Sprintf("Invalid date: %q", value))
}
