package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// stubCache records invalidations and serves preset entries.
type stubCache struct {
	entries map[string]string
	sets    map[string]string
	deleted []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]string{}, sets: map[string]string{}}
}

func (s *stubCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *stubCache) Set(_ context.Context, key, value string, _ time.Duration) {
	s.sets[key] = value
}

func (s *stubCache) Delete(_ context.Context, keys ...string) {
	s.deleted = append(s.deleted, keys...)
}

// stubMailer records sends and can be told to fail.
type stubMailer struct {
	to      []string
	subject string
	body    string
	err     error
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	m.subject = subject
	m.body = body
	return m.err
}
