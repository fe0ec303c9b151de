package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/logger"
	"github.com/nehemiah-317/ictlogbook/internal/models"
	"github.com/nehemiah-317/ictlogbook/internal/policy"
	"github.com/nehemiah-317/ictlogbook/internal/records"
)

var t0 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time { return t0.Add(time.Duration(h) * time.Hour) }

func activity(m records.Module, id uint, ts time.Time) records.Activity {
	return records.Activity{Module: m, ID: id, Timestamp: ts}
}

func modulesOf(feed []records.Activity) []records.Module {
	out := make([]records.Module, len(feed))
	for i, a := range feed {
		out[i] = a.Module
	}
	return out
}

func TestMergeRecent_OrdersAcrossModules(t *testing.T) {
	feed := MergeRecent([][]records.Activity{
		{activity(records.ModuleSupport, 1, at(5))},
		{activity(records.ModuleAsset, 1, at(3))},
		{activity(records.ModuleVendor, 1, at(9))},
		{activity(records.ModuleThermal, 1, at(1))},
	}, RecentLimit)

	assert.Equal(t, []records.Module{
		records.ModuleVendor, records.ModuleSupport, records.ModuleAsset, records.ModuleThermal,
	}, modulesOf(feed))
}

func TestMergeRecent_TiesKeepModuleThenIDOrder(t *testing.T) {
	feed := MergeRecent([][]records.Activity{
		{activity(records.ModuleSupport, 7, at(2)), activity(records.ModuleSupport, 4, at(2))},
		{activity(records.ModuleAsset, 9, at(2))},
		nil,
		{activity(records.ModuleThermal, 2, at(3))},
	}, RecentLimit)

	require.Len(t, feed, 4)
	assert.Equal(t, records.ModuleThermal, feed[0].Module)
	assert.Equal(t, uint(7), feed[1].ID)
	assert.Equal(t, uint(4), feed[2].ID)
	assert.Equal(t, records.ModuleAsset, feed[3].Module)
}

func TestMergeRecent_Truncates(t *testing.T) {
	var feeds [][]records.Activity
	for m, mod := range records.Modules {
		var f []records.Activity
		for i := 10; i > 0; i-- {
			f = append(f, activity(mod, uint(i), at(i*4+m)))
		}
		feeds = append(feeds, f)
	}

	feed := MergeRecent(feeds, RecentLimit)
	require.Len(t, feed, RecentLimit)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Timestamp.After(feed[i-1].Timestamp))
	}

	assert.NotNil(t, MergeRecent(nil, RecentLimit))
}

type failingSource struct{ module records.Module }

func (f failingSource) Module() records.Module { return f.module }

func (f failingSource) Stats(context.Context, policy.Actor, time.Time) (records.Stats, error) {
	return records.Stats{}, errors.New("boom")
}

func (f failingSource) Recent(context.Context, policy.Actor, int) ([]records.Activity, error) {
	return nil, nil
}

func TestBuild_PropagatesErrors(t *testing.T) {
	a := NewAggregator(failingSource{records.ModuleSupport})
	_, err := a.Build(context.Background(), policy.Actor{ID: 1, Role: models.RoleAdmin})
	assert.EqualError(t, err, "boom")

	_, err = a.Build(context.Background(), policy.Actor{})
	assert.True(t, apperrors.IsUnauthenticatedError(err))
}

func TestBuild_ScopedToActor(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	var admin, alice, bob policy.Actor
	for _, p := range []struct {
		a    *policy.Actor
		name string
		role models.UserRole
	}{{&admin, "admin", models.RoleAdmin}, {&alice, "alice", models.RoleStaff}, {&bob, "bob", models.RoleStaff}} {
		u := models.User{Username: p.name, PasswordHash: "x", Role: p.role}
		require.NoError(t, db.Create(&u).Error)
		*p.a = policy.Actor{ID: u.ID, Username: p.name, Role: p.role}
	}

	now := t0
	clock := func() time.Time { return now }
	svc := records.NewServices(db, policy.MustAccessPolicy(), nil, logger.Discard(), records.WithClock(clock))
	ctx := context.Background()

	_, err = svc.Support.Create(ctx, alice, models.SupportFields{
		StaffName: "Ama", StaffID: "ICT-1", IssueReported: "No network", PhoneNumber: "0244000000",
	})
	require.NoError(t, err)
	now = at(1)
	_, err = svc.Thermal.Create(ctx, bob, models.ThermalRollFields{
		VendorName: "Shop 12", CashierOwnerName: "Efua", Quantity: 5, PhoneNumber: "0244000000",
	})
	require.NoError(t, err)
	now = at(2)
	_, err = svc.Vendor.Create(ctx, alice, models.VendorFields{
		CompanyName: "Acme", CashierOwnerName: "Yaw", ProblemReported: "POS down", PhoneNumber: "0244000000",
		Status: models.VendorResolved,
	})
	require.NoError(t, err)

	agg := FromServices(svc).WithClock(func() time.Time { return at(24 * 10) })

	d, err := agg.Build(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.Total)
	assert.Zero(t, d.ThisWeek)
	assert.Equal(t, []records.Module{records.ModuleVendor, records.ModuleThermal, records.ModuleSupport}, modulesOf(d.Recent))
	assert.Nil(t, d.Recent[1].Status)
	assert.Equal(t, "Thermal Rolls: Shop 12 - 5 rolls", d.Recent[1].Title)

	require.Len(t, d.Modules, 4)
	assert.Equal(t, map[string]int64{"PENDING": 0, "ONGOING": 0, "RESOLVED": 1}, d.Modules[2].ByStatus)

	d, err = agg.WithClock(func() time.Time { return at(3) }).Build(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Total)
	assert.Equal(t, int64(2), d.ThisWeek)
	assert.Equal(t, []records.Module{records.ModuleVendor, records.ModuleSupport}, modulesOf(d.Recent))
}
