package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/export"
	"github.com/nehemiah-317/ictlogbook/internal/policy"
	"github.com/nehemiah-317/ictlogbook/internal/store"
	"github.com/nehemiah-317/ictlogbook/internal/validation"
)

const (
	actionCreate       = "create"
	actionUpdate       = "update"
	actionStatusChange = "status_change"
	actionDelete       = "delete"
)

// Service runs the record operations for one module. T is the model, P its
// pointer type and F the user-editable fields.
type Service[T any, P interface {
	*T
	Entity[F]
}, F any] struct {
	def    Definition[T, F]
	store  *store.Store[T]
	access *policy.AccessPolicy
	audit  Auditor
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*config)

type config struct {
	now func() time.Time
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func NewService[T any, P interface {
	*T
	Entity[F]
}, F any](def Definition[T, F], s *store.Store[T], access *policy.AccessPolicy, audit Auditor, log *slog.Logger, opts ...Option) *Service[T, P, F] {
	cfg := config{now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(&cfg)
	}

	return &Service[T, P, F]{
		def:    def,
		store:  s,
		access: access,
		audit:  audit,
		log:    log.With("module", string(def.Module)),
		now:    cfg.now,
	}
}

func (s *Service[T, P, F]) Module() Module { return s.def.Module }

func (s *Service[T, P, F]) Path() string { return s.def.Path }

func (s *Service[T, P, F]) Statuses() []string { return s.def.Statuses }

func (s *Service[T, P, F]) Create(ctx context.Context, actor policy.Actor, fields F) (P, error) {
	if err := s.access.Check(actor, policy.OpCreate, actor.ID); err != nil {
		return nil, err
	}

	if s.def.Defaults != nil {
		s.def.Defaults(&fields)
	}
	fields, err := s.clean(fields)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec := P(new(T))
	rec.SetFields(fields)
	rec.SetOwnerID(actor.ID)
	rec.SetTimestamp(now)
	rec.SetTerminalAt(s.def.Lifecycle.Apply("", rec.GetStatus(), nil, now))

	if err := s.store.Insert(ctx, (*T)(rec)); err != nil {
		return nil, s.internal("create", err)
	}

	s.log.Info("record created", "id", rec.GetID(), "user_id", actor.ID)
	s.record(ctx, actor, rec, actionCreate, rec.String())
	return rec, nil
}

// Get returns a record visible to actor. Missing and foreign records both
// yield NotFound.
func (s *Service[T, P, F]) Get(ctx context.Context, actor policy.Actor, id uint) (P, error) {
	if !actor.Authenticated() {
		return nil, apperrors.NewUnauthenticatedError()
	}

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(actor, policy.OpRead, rec.GetOwnerID()); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service[T, P, F]) List(ctx context.Context, actor policy.Actor, lq ListQuery) (*Page[T], error) {
	scope, err := s.access.ListScope(actor)
	if err != nil {
		return nil, err
	}

	q := s.query(scope, lq)
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return nil, s.internal("count", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	page := lq.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	q.Offset = (page - 1) * PageSize
	q.Limit = PageSize
	items, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, s.internal("list", err)
	}
	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service[T, P, F]) Update(ctx context.Context, actor policy.Actor, id uint, fields F) (P, error) {
	if !actor.Authenticated() {
		return nil, apperrors.NewUnauthenticatedError()
	}

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(actor, policy.OpUpdate, rec.GetOwnerID()); err != nil {
		return nil, err
	}

	fields, err = s.clean(fields)
	if err != nil {
		return nil, err
	}

	oldStatus := rec.GetStatus()
	oldTerminal := rec.GetTerminalAt()
	rec.SetFields(fields)
	rec.SetTerminalAt(s.def.Lifecycle.Apply(oldStatus, rec.GetStatus(), oldTerminal, s.now()))

	if err := s.store.Save(ctx, (*T)(rec)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Record not found")
		}
		return nil, s.internal("update", err)
	}

	s.log.Info("record updated", "id", id, "user_id", actor.ID)
	s.record(ctx, actor, rec, actionUpdate, rec.String())
	if newStatus := rec.GetStatus(); newStatus != oldStatus {
		s.record(ctx, actor, rec, actionStatusChange, fmt.Sprintf("%s -> %s", oldStatus, newStatus))
	}
	return rec, nil
}

// Delete removes a record. Only admins may delete; staff are refused before
// the record is looked up.
func (s *Service[T, P, F]) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := s.access.Check(actor, policy.OpDelete, 0); err != nil {
		return err
	}

	rec, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.internal("delete", err)
	}
	if !ok {
		return apperrors.NewNotFoundError("Record not found")
	}

	s.log.Info("record deleted", "id", id, "user_id", actor.ID)
	s.record(ctx, actor, rec, actionDelete, rec.String())
	return nil
}

// Export returns every record matching lq within actor's scope as a sheet.
func (s *Service[T, P, F]) Export(ctx context.Context, actor policy.Actor, lq ListQuery) (export.Table, error) {
	scope, err := s.access.ListScope(actor)
	if err != nil {
		return export.Table{}, err
	}

	items, err := s.store.Query(ctx, s.query(scope, lq))
	if err != nil {
		return export.Table{}, s.internal("export", err)
	}

	rows := make([][]any, len(items))
	for i := range items {
		rows[i] = s.def.Row(&items[i])
	}
	return export.Table{Name: string(s.def.Module), Header: s.def.Header, Rows: rows}, nil
}

// Stats counts the records visible to actor. ThisWeek counts records
// stamped at or after since.
func (s *Service[T, P, F]) Stats(ctx context.Context, actor policy.Actor, since time.Time) (Stats, error) {
	scope, err := s.access.ListScope(actor)
	if err != nil {
		return Stats{}, err
	}

	q := store.Query{OwnerID: scope.OwnerID}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return Stats{}, s.internal("count", err)
	}

	st := Stats{Module: s.def.Module, Total: total}

	if len(s.def.Statuses) > 0 {
		counts, err := s.store.CountByStatus(ctx, q)
		if err != nil {
			return Stats{}, s.internal("count by status", err)
		}
		st.ByStatus = make(map[string]int64, len(s.def.Statuses))
		for _, status := range s.def.Statuses {
			st.ByStatus[status] = counts[status]
		}
	}

	q.Since = &since
	if st.ThisWeek, err = s.store.Count(ctx, q); err != nil {
		return Stats{}, s.internal("count recent", err)
	}
	return st, nil
}

// Recent returns up to limit of the newest records visible to actor.
func (s *Service[T, P, F]) Recent(ctx context.Context, actor policy.Actor, limit int) ([]Activity, error) {
	scope, err := s.access.ListScope(actor)
	if err != nil {
		return nil, err
	}

	items, err := s.store.Query(ctx, store.Query{OwnerID: scope.OwnerID, Limit: limit})
	if err != nil {
		return nil, s.internal("recent", err)
	}

	out := make([]Activity, 0, len(items))
	for i := range items {
		rec := P(&items[i])
		a := Activity{
			Module:    s.def.Module,
			ID:        rec.GetID(),
			Title:     rec.Title(),
			Link:      fmt.Sprintf("%s/%d", s.def.Path, rec.GetID()),
			Timestamp: rec.GetTimestamp(),
		}
		if status := rec.GetStatus(); status != "" {
			a.Status = &status
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Service[T, P, F]) query(scope policy.Scope, lq ListQuery) store.Query {
	q := store.Query{OwnerID: scope.OwnerID, Search: lq.Search}
	if len(s.def.Statuses) > 0 {
		q.Status = lq.Status
	}
	return q
}

func (s *Service[T, P, F]) load(ctx context.Context, id uint) (P, error) {
	rec, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("Record not found")
	}
	if err != nil {
		return nil, s.internal("get", err)
	}
	return P(rec), nil
}

// clean trims input and validates it. Text is stored as typed; fields that
// look like markup are only logged.
func (s *Service[T, P, F]) clean(fields F) (F, error) {
	validation.CleanStrings(&fields)
	if marked := validation.MarkupFields(&fields); len(marked) > 0 {
		s.log.Info("input contains markup", "fields", marked)
	}
	if err := validation.Struct(fields); err != nil {
		return fields, err
	}
	return fields, nil
}

func (s *Service[T, P, F]) record(ctx context.Context, actor policy.Actor, rec P, action, details string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, actor.ID, string(s.def.Module), rec.GetID(), action, details)
}

func (s *Service[T, P, F]) internal(op string, err error) error {
	s.log.Error("store operation failed", "op", op, "error", err)
	return apperrors.NewInternalError("Something went wrong", err.Error())
}
