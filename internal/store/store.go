// Package store persists records of one kind and answers the filtered,
// ordered and paged queries the record services need.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Options describe the columns a Store filters on.
type Options struct {
	OwnerColumn   string
	StatusColumn  string // empty when the kind has no status
	SearchColumns []string
	Preload       []string
}

// Query selects records. Zero values mean "no restriction".
type Query struct {
	OwnerID *uint
	Search  string
	Status  string
	Since   *time.Time
	Offset  int
	Limit   int
}

type Store[T any] struct {
	db   *gorm.DB
	opts Options
}

func New[T any](db *gorm.DB, opts Options) *Store[T] {
	return &Store[T]{db: db, opts: opts}
}

func (s *Store[T]) Insert(ctx context.Context, rec *T) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *Store[T]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	q := s.db.WithContext(ctx)
	for _, p := range s.opts.Preload {
		q = q.Preload(p)
	}

	err := q.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}
	return &rec, nil
}

// Save writes every column of an existing record except id and created_at.
// It returns ErrNotFound if the row was deleted in the meantime. Zero rows
// affected alone does not mean that: mysql counts changed rows, not matched
// ones, unless the DSN sets clientFoundRows.
func (s *Store[T]) Save(ctx context.Context, rec *T) error {
	result := s.db.WithContext(ctx).Model(rec).
		Select("*").
		Omit(clause.Associations, "id", "created_at", "deleted_at").
		Updates(rec)
	if result.Error != nil {
		return fmt.Errorf("failed to save record: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	ided, ok := any(rec).(interface{ GetID() uint })
	if !ok {
		return ErrNotFound
	}
	found, err := s.exists(ctx, ided.GetID())
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Store[T]) exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up record %d: %w", id, err)
	}
	return n > 0, nil
}

// Delete soft-deletes the record and reports whether it existed.
func (s *Store[T]) Delete(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete record %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Query returns matching records, newest first. Records sharing a
// timestamp come back in descending id order.
func (s *Store[T]) Query(ctx context.Context, q Query) ([]T, error) {
	tx := s.filtered(ctx, q).Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "timestamp"}, Desc: true},
		{Column: clause.Column{Name: "id"}, Desc: true},
	}})
	for _, p := range s.opts.Preload {
		tx = tx.Preload(p)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var recs []T
	if err := tx.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	return recs, nil
}

func (s *Store[T]) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	if err := s.filtered(ctx, q).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// CountByStatus groups matching records by status. Statuses with no rows
// are absent from the result.
func (s *Store[T]) CountByStatus(ctx context.Context, q Query) (map[string]int64, error) {
	counts := map[string]int64{}
	if s.opts.StatusColumn == "" {
		return counts, nil
	}

	var rows []struct {
		Status string
		Count  int64
	}
	col := s.opts.StatusColumn
	err := s.filtered(ctx, q).
		Select(col + " AS status, COUNT(*) AS count").
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count records by status: %w", err)
	}

	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (s *Store[T]) filtered(ctx context.Context, q Query) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(new(T))

	if q.OwnerID != nil {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: s.opts.OwnerColumn}, Value: *q.OwnerID})
	}
	if q.Status != "" && s.opts.StatusColumn != "" {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: s.opts.StatusColumn}, Value: q.Status})
	}
	if q.Since != nil {
		tx = tx.Where(clause.Gte{Column: clause.Column{Name: "timestamp"}, Value: *q.Since})
	}
	if term := strings.TrimSpace(q.Search); term != "" && len(s.opts.SearchColumns) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		conds := make([]string, len(s.opts.SearchColumns))
		args := make([]any, len(s.opts.SearchColumns))
		for i, c := range s.opts.SearchColumns {
			conds[i] = "LOWER(" + c + ") LIKE ? ESCAPE '!'"
			args[i] = pattern
		}
		tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return tx
}

// escapeLike escapes LIKE wildcards with '!'.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
