package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateLead_AssignsIDAndDefaults(t *testing.T) {
	s := newTestStore(t)

	lead, err := s.CreateLead(context.Background(), Lead{Email: "a@b.com", Name: "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "starter", lead.Plan)
	assert.False(t, lead.CreatedAt.IsZero())
	assert.Equal(t, "a@b.com", lead.Email)

	n, err := s.CountLeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateLead_KeepsExplicitPlan(t *testing.T) {
	s := newTestStore(t)
	lead, err := s.CreateLead(context.Background(), Lead{Email: "pro@b.com", Plan: "growth"})
	require.NoError(t, err)
	assert.Equal(t, "growth", lead.Plan)
}

func TestCreateLead_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateLead(context.Background(), Lead{Email: "a@b.com"})
	require.NoError(t, err)

	_, err = s.CreateLead(context.Background(), Lead{Email: "a@b.com", Name: "Other"})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// the failed insert must not have written anything
	n, err := s.CountLeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateLead_MissingEmailNoWrite(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateLead(context.Background(), Lead{Name: "No Email"})
	require.ErrorIs(t, err, ErrEmailRequired)

	_, err = s.CreateLead(context.Background(), Lead{Email: "   "})
	require.ErrorIs(t, err, ErrEmailRequired)

	n, err := s.CountLeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
