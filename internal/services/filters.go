package services

import (
	"strconv"
	"strings"
	"time"
)

// DefaultLimit bounds a page of results when the caller gives none.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// completedWindow separates "completed" activities from "expired" ones:
// an activity whose end date is older than this is expired.
const completedWindow = 30 * 24 * time.Hour

// ParseIDList splits a comma-separated id list, trimming each token and
// dropping anything non-numeric. Malformed input narrows nothing: an empty
// result means the filter is simply not applied.
func ParseIDList(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}

// Paginate normalizes page/limit and returns the row offset.
func Paginate(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return page, limit, (page - 1) * limit
}

// TotalPages derives the page count callers put in the response envelope.
func TotalPages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// Like wraps a substring filter value with wildcards on both sides.
func Like(v string) string {
	return "%" + v + "%"
}

// StatusConditions resolves the derived activity status filter against the
// given wall-clock time into a date-range predicate. The four statuses are
// mutually exclusive. Unknown statuses return ok=false and apply nothing.
func StatusConditions(status string, now time.Time) (string, []interface{}, bool) {
	expiry := now.Add(-completedWindow)
	switch status {
	case "upcoming":
		return "start_date > ?", []interface{}{now}, true
	case "ongoing":
		return "start_date <= ? AND end_date > ?", []interface{}{now, now}, true
	case "completed":
		return "end_date <= ? AND end_date > ?", []interface{}{now, expiry}, true
	case "expired":
		return "end_date <= ?", []interface{}{expiry}, true
	}
	return "", nil, false
}
