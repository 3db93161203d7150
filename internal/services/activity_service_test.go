package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityHide(t *testing.T) {
	t.Run("SetsHiddenAt", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := newStubCache()
		svc := NewActivityService(db, store)

		mock.ExpectQuery(`SELECT \* FROM "activities" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "hidden_at"}).
				AddRow(4, "Morning Run", nil))
		mock.ExpectExec(`UPDATE "activities" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		msg, err := svc.Hide(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "activity hidden", msg)
		require.NoError(t, mock.ExpectationsWereMet())

		assert.Contains(t, store.deleted, "bondsio:admin:activity:4")
		assert.Contains(t, store.deleted, "bondsio:admin:stats:activities")
		assert.Contains(t, store.deleted, "bondsio:admin:stats:top_creators:kind=activity&limit=10")
	})

	t.Run("AlreadyHiddenIsNoop", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := newStubCache()
		svc := NewActivityService(db, store)

		hidden := time.Now().Add(-time.Hour)
		mock.ExpectQuery(`SELECT \* FROM "activities" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "hidden_at"}).
				AddRow(4, "Morning Run", hidden))

		msg, err := svc.Hide(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "activity already hidden", msg)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Empty(t, store.deleted)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewActivityService(db, newStubCache())

		mock.ExpectQuery(`SELECT \* FROM "activities" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := svc.Hide(context.Background(), 99)
		assert.ErrorIs(t, err, ErrActivityNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityUnhide(t *testing.T) {
	t.Run("ClearsHiddenAt", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewActivityService(db, newStubCache())

		hidden := time.Now().Add(-time.Hour)
		mock.ExpectQuery(`SELECT \* FROM "activities" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "hidden_at"}).
				AddRow(4, "Morning Run", hidden))
		mock.ExpectExec(`UPDATE "activities" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		msg, err := svc.Unhide(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "activity unhidden", msg)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotHiddenIsNoop", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewActivityService(db, newStubCache())

		mock.ExpectQuery(`SELECT \* FROM "activities" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "hidden_at"}).
				AddRow(4, "Morning Run", nil))

		msg, err := svc.Unhide(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "activity is not hidden", msg)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityDelete(t *testing.T) {
	t.Run("SoftDeletes", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := newStubCache()
		svc := NewActivityService(db, store)

		mock.ExpectExec(`UPDATE "activities" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := svc.Delete(context.Background(), 4)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, store.deleted, "bondsio:admin:activity:4")
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewActivityService(db, newStubCache())

		mock.ExpectExec(`UPDATE "activities" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := svc.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, ErrActivityNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityGetByIDCache(t *testing.T) {
	t.Run("AdminLookupServedFromCache", func(t *testing.T) {
		db, _ := newMockDB(t)
		store := newStubCache()
		svc := NewActivityService(db, store)

		cached, err := json.Marshal(dto.ActivityResponse{ID: 8, Title: "Book Club"})
		require.NoError(t, err)
		store.entries["bondsio:admin:activity:8"] = string(cached)

		resp, err := svc.GetByID(context.Background(), 8, nil)
		require.NoError(t, err)
		assert.Equal(t, "Book Club", resp.Title)
	})
}

func TestActivitySearchCountAndPageShareFilters(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewActivityService(db, newStubCache())

	// The count and the page run off the same composed builder, so both
	// carry the identical predicate set and bind values.
	where := `activities\.title LIKE \$1 AND activities\.hidden_at IS NULL`
	mock.ExpectQuery(`SELECT count\(\*\) FROM "activities" WHERE ` + where).
		WithArgs("%Beach%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT \* FROM "activities" WHERE `+where+`.*ORDER BY activities\.created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("%Beach%", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	f := &dto.ActivityFilter{Title: "Beach", Page: 2, Limit: 10}
	items, total, applied, err := svc.Search(f, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Empty(t, items)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, []string{"title"}, applied)
}

func TestActivityApplyFiltersAppliedNames(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewActivityService(db, newStubCache())

	min := 3
	f := &dto.ActivityFilter{
		Title:           "run",
		Status:          "upcoming",
		MinParticipants: &min,
		InterestIDs:     "1,2,zzz,3",
		CreatorID:       "not-a-uuid",
	}
	_, applied := svc.applyFilters(db.Model(&models.Activity{}), f)

	// Malformed creator_id is dropped; the rest report in declaration order.
	assert.Equal(t, []string{"title", "status", "interest_ids", "min_participants"}, applied)
}
