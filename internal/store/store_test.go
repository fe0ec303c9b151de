package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/models"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) (*gorm.DB, *Store[models.SupportRecord]) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, db.Create(&models.User{Username: name, PasswordHash: "x", Role: models.RoleStaff}).Error)
	}

	return db, New[models.SupportRecord](db, Options{
		OwnerColumn:   "recorded_by_id",
		StatusColumn:  "status",
		SearchColumns: []string{"staff_name", "staff_id", "issue_reported"},
		Preload:       []string{"RecordedBy"},
	})
}

func support(owner uint, name, issue string, status models.SupportStatus, at time.Time) *models.SupportRecord {
	return &models.SupportRecord{
		SupportFields: models.SupportFields{
			StaffName:     name,
			StaffID:       "S-100",
			IssueReported: issue,
			PhoneNumber:   "0700000000",
			Status:        status,
		},
		RecordedByID: owner,
		Timestamp:    at,
	}
}

func TestStore_InsertGetSaveDelete(t *testing.T) {
	_, s := setupStore(t)
	ctx := context.Background()

	rec := support(1, "Ama", "Printer jam", models.SupportPending, base)
	require.NoError(t, s.Insert(ctx, rec))
	require.NotZero(t, rec.ID)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Printer jam", got.IssueReported)
	require.NotNil(t, got.RecordedBy)
	assert.Equal(t, "alice", got.RecordedBy.Username)

	got.Status = models.SupportSolved
	got.Notes = ""
	require.NoError(t, s.Save(ctx, got))

	again, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SupportSolved, again.Status)
	assert.Equal(t, uint(1), again.RecordedByID)

	ok, err := s.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = s.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.Save(ctx, got), ErrNotFound)
}

func TestStore_SaveUnchangedRecord(t *testing.T) {
	_, s := setupStore(t)
	ctx := context.Background()

	rec := support(1, "Ama", "Printer jam", models.SupportPending, base)
	require.NoError(t, s.Insert(ctx, rec))

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, got))
	require.NoError(t, s.Save(ctx, got))

	ok, err := s.exists(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.exists(ctx, rec.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Delete(ctx, rec.ID)
	require.NoError(t, err)
	ok, err = s.exists(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_IDsNeverReused(t *testing.T) {
	_, s := setupStore(t)
	ctx := context.Background()

	first := support(1, "Ama", "x", models.SupportPending, base)
	require.NoError(t, s.Insert(ctx, first))
	_, err := s.Delete(ctx, first.ID)
	require.NoError(t, err)

	second := support(1, "Ama", "x", models.SupportPending, base)
	require.NoError(t, s.Insert(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestStore_QueryOrderAndPaging(t *testing.T) {
	_, s := setupStore(t)
	ctx := context.Background()

	a := support(1, "A", "x", models.SupportPending, base)
	b := support(1, "B", "x", models.SupportPending, base.Add(time.Hour))
	c := support(1, "C", "x", models.SupportPending, base) // same timestamp as a
	for _, r := range []*models.SupportRecord{a, b, c} {
		require.NoError(t, s.Insert(ctx, r))
	}

	recs, err := s.Query(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"B", "C", "A"}, names(recs))

	recs, err = s.Query(ctx, Query{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, names(recs))
}

func TestStore_Filters(t *testing.T) {
	_, s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, support(1, "Ama Mensah", "Printer jam", models.SupportPending, base)))
	require.NoError(t, s.Insert(ctx, support(1, "Kofi", "Email 100% broken", models.SupportSolved, base.Add(48*time.Hour))))
	require.NoError(t, s.Insert(ctx, support(2, "Esi", "printer offline", models.SupportPending, base.Add(72*time.Hour))))

	alice := uint(1)
	n, err := s.Count(ctx, Query{OwnerID: &alice})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	recs, err := s.Query(ctx, Query{Search: "PRINTER"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Esi", "Ama Mensah"}, names(recs))

	recs, err = s.Query(ctx, Query{Search: "100%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kofi"}, names(recs))

	recs, err = s.Query(ctx, Query{Search: "_"})
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = s.Query(ctx, Query{Status: string(models.SupportPending), Search: "printer", OwnerID: &alice})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ama Mensah"}, names(recs))

	since := base.Add(24 * time.Hour)
	n, err = s.Count(ctx, Query{Since: &since})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	counts, err := s.CountByStatus(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"PENDING": 2, "SOLVED": 1}, counts)
}

func names(recs []models.SupportRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.StaffName
	}
	return out
}
