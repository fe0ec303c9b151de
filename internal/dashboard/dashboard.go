// Package dashboard rolls up activity across every record module.
package dashboard

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/policy"
	"github.com/nehemiah-317/ictlogbook/internal/records"
)

const (
	RecentLimit = 10
	Week        = 7 * 24 * time.Hour
)

// Source is one record module as seen by the dashboard.
type Source interface {
	Module() records.Module
	Stats(ctx context.Context, actor policy.Actor, since time.Time) (records.Stats, error)
	Recent(ctx context.Context, actor policy.Actor, limit int) ([]records.Activity, error)
}

type Dashboard struct {
	Modules  []records.Stats    `json:"modules"`
	Total    int64              `json:"total"`
	ThisWeek int64              `json:"this_week"`
	Recent   []records.Activity `json:"recent"`
}

type Aggregator struct {
	sources []Source
	now     func() time.Time
}

// NewAggregator keeps sources in the given order; it decides how records
// with equal timestamps are ordered in the recent feed.
func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{
		sources: sources,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// FromServices builds an aggregator over every module in dashboard order.
func FromServices(s *records.Services) *Aggregator {
	return NewAggregator(s.Support, s.Asset, s.Vendor, s.Thermal)
}

func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Build collects the dashboard for actor. Only records actor may see are
// counted or listed.
func (a *Aggregator) Build(ctx context.Context, actor policy.Actor) (*Dashboard, error) {
	if !actor.Authenticated() {
		return nil, apperrors.NewUnauthenticatedError()
	}

	since := a.now().Add(-Week)
	stats := make([]records.Stats, len(a.sources))
	recent := make([][]records.Activity, len(a.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		g.Go(func() error {
			st, err := src.Stats(gctx, actor, since)
			if err != nil {
				return err
			}
			stats[i] = st

			items, err := src.Recent(gctx, actor, RecentLimit)
			if err != nil {
				return err
			}
			recent[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		Modules: stats,
		Recent:  MergeRecent(recent, RecentLimit),
	}
	for _, st := range stats {
		d.Total += st.Total
		d.ThisWeek += st.ThisWeek
	}
	return d, nil
}

// MergeRecent concatenates per-module feeds, orders them newest first and
// keeps the first limit entries. Entries with equal timestamps keep their
// concatenation order.
func MergeRecent(feeds [][]records.Activity, limit int) []records.Activity {
	var all []records.Activity
	for _, f := range feeds {
		all = append(all, f...)
	}

	slices.SortStableFunc(all, func(x, y records.Activity) int {
		return y.Timestamp.Compare(x.Timestamp)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		all = []records.Activity{}
	}
	return all
}
