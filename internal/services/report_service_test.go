package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewActivityReport(t *testing.T) {
	reviewer := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := newStubCache()
		svc := NewReportService(db, store, &stubMailer{})

		// Status, reviewer, notes and reviewed_at land in one UPDATE.
		mock.ExpectExec(`UPDATE "activity_reports" SET`).
			WithArgs("looks fine", sqlmock.AnyArg(), reviewer, "resolved", sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := svc.ReviewActivityReport(context.Background(), 1, reviewer, "resolved", "looks fine")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, store.deleted, "bondsio:admin:stats:reports")
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewReportService(db, newStubCache(), &stubMailer{})

		mock.ExpectExec(`UPDATE "activity_reports" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := svc.ReviewActivityReport(context.Background(), 99, reviewer, "dismissed", "")
		assert.ErrorIs(t, err, ErrReportNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewReportService(db, newStubCache(), &stubMailer{})

		err := svc.ReviewActivityReport(context.Background(), 1, reviewer, "escalated", "")
		assert.ErrorIs(t, err, ErrInvalidReportStatus)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReviewBondReportNotification(t *testing.T) {
	reviewer := uuid.New()
	reporterID := uuid.New()

	expectReview := func(mock sqlmock.Sqlmock) {
		mock.ExpectExec(`UPDATE "bond_reports" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	expectLookups := func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(`SELECT \* FROM "bond_reports" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "bond_id", "reporter_id", "status"}).
				AddRow(7, 3, reporterID.String(), "resolved"))
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
				AddRow(reporterID.String(), "Ada", "ada@example.com"))
		mock.ExpectQuery(`SELECT \* FROM "bonds" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow(3, "Hiking Club"))
	}

	t.Run("EmailsReporter", func(t *testing.T) {
		db, mock := newMockDB(t)
		mail := &stubMailer{}
		svc := NewReportService(db, newStubCache(), mail)

		expectReview(mock)
		expectLookups(mock)

		err := svc.ReviewBondReport(context.Background(), 7, reviewer, "resolved", "")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())

		require.Len(t, mail.to, 1)
		assert.Equal(t, "ada@example.com", mail.to[0])
		assert.Contains(t, mail.body, "Hiking Club")
		assert.Contains(t, mail.body, "resolved")
	})

	t.Run("SendFailureIsSwallowed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mail := &stubMailer{err: errors.New("smtp down")}
		svc := NewReportService(db, newStubCache(), mail)

		expectReview(mock)
		expectLookups(mock)

		err := svc.ReviewBondReport(context.Background(), 7, reviewer, "resolved", "")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Len(t, mail.to, 1)
	})

	t.Run("ReloadFailureIsSwallowed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mail := &stubMailer{}
		svc := NewReportService(db, newStubCache(), mail)

		expectReview(mock)
		mock.ExpectQuery(`SELECT \* FROM "bond_reports" WHERE id =`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := svc.ReviewBondReport(context.Background(), 7, reviewer, "dismissed", "")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Empty(t, mail.to)
	})
}

func TestListActivityReportsFailOpenSubjectID(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReportService(db, newStubCache(), &stubMailer{})

	// A non-numeric subject_id contributes no predicate and is not listed
	// among the applied filters.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "activity_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "activity_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	f := &dto.ReportFilter{Status: "pending", SubjectID: "not-a-number", Page: 1, Limit: 20}
	items, total, applied, err := svc.ListActivityReports(f)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
	assert.Equal(t, []string{"status"}, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidReviewStatuses(t *testing.T) {
	reviewer := uuid.New()

	for _, status := range []string{"pending", "reviewed", "resolved", "dismissed"} {
		t.Run(status, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewReportService(db, newStubCache(), &stubMailer{})

			mock.ExpectExec(`UPDATE "user_reports" SET`).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := svc.ReviewUserReport(context.Background(), 5, reviewer, status, "n")
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
