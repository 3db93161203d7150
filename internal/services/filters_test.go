package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseIDList(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ParseIDList("1,2,3"))
	assert.Equal(t, []int{1, 2, 3}, ParseIDList("1, 2 ,3"))
	// Non-numeric tokens are dropped silently.
	assert.Equal(t, []int{1, 2, 3}, ParseIDList("1,2,abc,3"))
	assert.Empty(t, ParseIDList("abc,,  "))
	assert.Nil(t, ParseIDList(""))
}

func TestPaginate(t *testing.T) {
	page, limit, offset := Paginate(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	page, limit, offset = Paginate(3, 50)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)

	_, limit, _ = Paginate(1, 500)
	assert.Equal(t, DefaultLimit, limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 20))
	assert.Equal(t, int64(1), TotalPages(20, 20))
	assert.Equal(t, int64(2), TotalPages(21, 20))
	assert.Equal(t, int64(0), TotalPages(10, 0))
}

func TestStatusConditions(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cond, args, ok := StatusConditions("upcoming", now)
	assert.True(t, ok)
	assert.Equal(t, "start_date > ?", cond)
	assert.Equal(t, []interface{}{now}, args)

	cond, args, ok = StatusConditions("ongoing", now)
	assert.True(t, ok)
	assert.Equal(t, "start_date <= ? AND end_date > ?", cond)
	assert.Len(t, args, 2)

	_, _, ok = StatusConditions("completed", now)
	assert.True(t, ok)

	_, _, ok = StatusConditions("expired", now)
	assert.True(t, ok)

	_, _, ok = StatusConditions("bogus", now)
	assert.False(t, ok)
}

// The four status windows must partition the timeline: any end/start pair
// matches exactly one of them.
func TestStatusConditionsMutuallyExclusive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(-completedWindow)

	cases := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"future", now.Add(time.Hour), now.Add(2 * time.Hour), "upcoming"},
		{"running", now.Add(-time.Hour), now.Add(time.Hour), "ongoing"},
		{"recently ended", now.Add(-48 * time.Hour), now.Add(-time.Hour), "completed"},
		{"long past", expiry.Add(-48 * time.Hour), expiry.Add(-time.Hour), "expired"},
	}

	match := func(status string, start, end time.Time) bool {
		switch status {
		case "upcoming":
			return start.After(now)
		case "ongoing":
			return !start.After(now) && end.After(now)
		case "completed":
			return !end.After(now) && end.After(expiry)
		case "expired":
			return !end.After(expiry)
		}
		return false
	}

	for _, tc := range cases {
		matched := []string{}
		for _, s := range []string{"upcoming", "ongoing", "completed", "expired"} {
			if match(s, tc.start, tc.end) {
				matched = append(matched, s)
			}
		}
		assert.Equal(t, []string{tc.want}, matched, tc.name)
	}
}

func TestLike(t *testing.T) {
	assert.Equal(t, "%Beach%", Like("Beach"))
}
