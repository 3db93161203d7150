package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCreatorsScoring(t *testing.T) {
	db, mock := newMockDB(t)
	store := newStubCache()
	svc := NewAnalyticsService(db, store, time.Minute)

	alice := uuid.New()
	bob := uuid.New()

	// Rows arrive reach-descending from the query; the score re-sort is
	// stable, so a score tie keeps that order.
	mock.ExpectQuery(`SELECT u.id, u.name, u.username, u.avatar`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "username", "avatar", "total_count", "total_reach", "total_likes",
		}).
			AddRow(alice.String(), "Alice", "alice", "", 5, 100, 20).
			AddRow(bob.String(), "Bob", "bob", "", 2, 50, 200))

	creators, err := svc.TopCreators(context.Background(), "activity", 5)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, creators, 2)

	// 0.4*2 + 0.3*50 + 0.3*200 = 75.8 beats 0.4*5 + 0.3*100 + 0.3*20 = 38.0
	assert.Equal(t, "Bob", creators[0].Name)
	assert.Equal(t, 75.8, creators[0].EngagementScore)
	assert.Equal(t, "Alice", creators[1].Name)
	assert.Equal(t, 38.0, creators[1].EngagementScore)

	// Every limit caches under its own canonical key.
	assert.Contains(t, store.sets, "bondsio:admin:stats:top_creators:kind=activity&limit=5")
}

func TestTopCreatorsDefaultLimitCached(t *testing.T) {
	db, mock := newMockDB(t)
	store := newStubCache()
	svc := NewAnalyticsService(db, store, time.Minute)

	mock.ExpectQuery(`SELECT u.id, u.name, u.username, u.avatar`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "username", "avatar", "total_count", "total_reach", "total_likes",
		}))

	_, err := svc.TopCreators(context.Background(), "bond", 10)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, store.sets, "bondsio:admin:stats:top_creators:kind=bond&limit=10")
}

func TestTopCreatorsServedFromCache(t *testing.T) {
	db, _ := newMockDB(t)
	store := newStubCache()
	svc := NewAnalyticsService(db, store, time.Minute)

	cached, err := json.Marshal([]TopCreator{{Name: "Cached", EngagementScore: 1}})
	require.NoError(t, err)
	store.entries["bondsio:admin:stats:top_creators:kind=activity&limit=10"] = string(cached)

	creators, err := svc.TopCreators(context.Background(), "activity", 10)
	require.NoError(t, err)
	require.Len(t, creators, 1)
	assert.Equal(t, "Cached", creators[0].Name)
}

func TestActivityStatsSecondaryCountFailure(t *testing.T) {
	db, mock := newMockDB(t)
	store := newStubCache()
	svc := NewAnalyticsService(db, store, time.Minute)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "activities"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "activities"`).
		WillReturnError(errors.New("connection reset"))

	// A failed sub-aggregate propagates instead of zeroing the field, and
	// the partial result never reaches the cache.
	_, err := svc.ActivityStats(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, store.sets)
}

func TestReportStatsAggregation(t *testing.T) {
	db, mock := newMockDB(t)
	store := newStubCache()
	svc := NewAnalyticsService(db, store, time.Minute)

	statusRows := func(pairs ...interface{}) *sqlmock.Rows {
		rows := sqlmock.NewRows([]string{"status", "count"})
		for i := 0; i < len(pairs); i += 2 {
			rows.AddRow(pairs[i], pairs[i+1])
		}
		return rows
	}

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "activity_reports"`).
		WillReturnRows(statusRows("pending", 3, "resolved", 1))
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "bond_reports"`).
		WillReturnRows(statusRows("pending", 1))
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "user_reports"`).
		WillReturnRows(statusRows("dismissed", 3))

	stats, err := svc.ReportStats(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, int64(8), stats.Total)
	assert.Equal(t, 50.0, stats.PendingPct)

	require.Len(t, stats.ByStatus, 4)
	assert.Equal(t, "pending", stats.ByStatus[0].Status)
	assert.Equal(t, int64(4), stats.ByStatus[0].Count)
	assert.Equal(t, 50.0, stats.ByStatus[0].Pct)
	assert.Equal(t, "reviewed", stats.ByStatus[1].Status)
	assert.Equal(t, int64(0), stats.ByStatus[1].Count)
}
