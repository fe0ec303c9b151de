// Package records implements the create, read, update, delete and list
// operations shared by every record module.
package records

import (
	"context"
	"time"

	"github.com/nehemiah-317/ictlogbook/internal/policy"
	"github.com/nehemiah-317/ictlogbook/internal/store"
)

type Module string

const (
	ModuleSupport Module = "support"
	ModuleAsset   Module = "asset"
	ModuleVendor  Module = "vendor"
	ModuleThermal Module = "thermal"
)

// Modules lists every module in dashboard order.
var Modules = []Module{ModuleSupport, ModuleAsset, ModuleVendor, ModuleThermal}

const PageSize = 10

// Entity is implemented by every record model.
type Entity[F any] interface {
	GetID() uint
	GetOwnerID() uint
	SetOwnerID(uint)
	GetTimestamp() time.Time
	SetTimestamp(time.Time)
	GetFields() F
	SetFields(F)
	GetStatus() string
	GetTerminalAt() *time.Time
	SetTerminalAt(*time.Time)
	String() string
	Title() string
}

// Definition is what differs between record modules.
type Definition[T any, F any] struct {
	Module    Module
	Path      string
	Statuses  []string // empty when the module has no status
	Lifecycle *policy.Lifecycle
	Store     store.Options

	// Defaults fills omitted fields on create. Updates must send every
	// required field.
	Defaults func(*F)

	Header []string
	Row    func(*T) []any
}

// Auditor records who changed what.
type Auditor interface {
	Record(ctx context.Context, userID uint, entity string, entityID uint, action, details string)
}

type ListQuery struct {
	Search string
	Status string
	Page   int
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// Stats summarises one module for the dashboard.
type Stats struct {
	Module   Module           `json:"module"`
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status,omitempty"`
	ThisWeek int64            `json:"this_week"`
}

// Activity is one entry of the dashboard's recent feed.
type Activity struct {
	Module    Module    `json:"module"`
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Timestamp time.Time `json:"timestamp"`
	Status    *string   `json:"status"`
}
