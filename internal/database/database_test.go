package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/logger"
	"github.com/nehemiah-317/ictlogbook/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := OpenMemory()
	require.NoError(t, err)
	return db
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, " alice ", "s3cret", models.RoleStaff)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	_, err = CreateUser(ctx, db, "alice", "other", models.RoleStaff)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = CreateUser(ctx, db, "bob", "pw", "root")
	assert.ErrorIs(t, err, ErrInvalidUser)

	got, err := Authenticate(ctx, db, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = Authenticate(ctx, db, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = Authenticate(ctx, db, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdmin_OnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	log := logger.Discard()

	require.NoError(t, EnsureAdmin(ctx, db, "admin", "Admin123!", log))
	require.NoError(t, EnsureAdmin(ctx, db, "root", "Root123!", log))
	require.NoError(t, SeedDemoUsers(ctx, db, log))
	require.NoError(t, SeedDemoUsers(ctx, db, log))

	var admins, total int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&total).Error)
	assert.Equal(t, int64(1), admins)
	assert.Equal(t, int64(2), total)
}

func TestAuditLogger(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "admin", "pw", models.RoleAdmin)
	require.NoError(t, err)

	audit := NewAuditLogger(db, logger.Discard())
	audit.Record(ctx, u.ID, "support", 1, "create", "Ama - Printer jam (PENDING)")
	audit.Record(ctx, u.ID, "asset", 4, "delete", "Kofi - laptop (RETURNED)")

	all, err := audit.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "asset", all[0].Entity)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "admin", all[0].User.Username)

	support, err := audit.List(ctx, "support", 10)
	require.NoError(t, err)
	require.Len(t, support, 1)
	assert.Equal(t, "create", support[0].Action)
}
