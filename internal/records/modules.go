package records

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/models"
	"github.com/nehemiah-317/ictlogbook/internal/policy"
	"github.com/nehemiah-317/ictlogbook/internal/store"
)

type (
	SupportService = Service[models.SupportRecord, *models.SupportRecord, models.SupportFields]
	AssetService   = Service[models.AssetRecord, *models.AssetRecord, models.AssetFields]
	VendorService  = Service[models.VendorAssistance, *models.VendorAssistance, models.VendorFields]
	ThermalService = Service[models.ThermalRollRecord, *models.ThermalRollRecord, models.ThermalRollFields]
)

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateTime)
}

var SupportDefinition = Definition[models.SupportRecord, models.SupportFields]{
	Module: ModuleSupport,
	Path:   "/support",
	Statuses: []string{
		string(models.SupportPending),
		string(models.SupportInProgress),
		string(models.SupportSolved),
	},
	Lifecycle: &policy.Lifecycle{Terminal: string(models.SupportSolved)},
	Store: store.Options{
		OwnerColumn:   "recorded_by_id",
		StatusColumn:  "status",
		SearchColumns: []string{"staff_name", "staff_id", "issue_reported"},
		Preload:       []string{"RecordedBy"},
	},
	Defaults: func(f *models.SupportFields) {
		if f.Status == "" {
			f.Status = models.SupportPending
		}
	},
	Header: []string{"ID", "Staff Name", "Staff ID", "Issue Reported", "Phone Number", "Status", "Notes", "Timestamp", "Resolved At"},
	Row: func(r *models.SupportRecord) []any {
		return []any{r.ID, r.StaffName, r.StaffID, r.IssueReported, r.PhoneNumber, string(r.Status), r.Notes,
			r.Timestamp.Format(time.DateTime), formatTime(r.ResolvedAt)}
	},
}

var AssetDefinition = Definition[models.AssetRecord, models.AssetFields]{
	Module: ModuleAsset,
	Path:   "/assets",
	Statuses: []string{
		string(models.AssetInUse),
		string(models.AssetReturned),
		string(models.AssetUnderRepair),
	},
	Lifecycle: &policy.Lifecycle{Terminal: string(models.AssetReturned)},
	Store: store.Options{
		OwnerColumn:   "recorded_by_id",
		StatusColumn:  "status",
		SearchColumns: []string{"staff_name", "staff_id", "asset_type", "division"},
		Preload:       []string{"RecordedBy"},
	},
	Defaults: func(f *models.AssetFields) {
		if f.Status == "" {
			f.Status = models.AssetInUse
		}
	},
	Header: []string{"ID", "Staff Name", "Staff ID", "Asset Type", "Division", "Problem Reported", "Phone Number", "Signature", "Status", "Notes", "Timestamp", "Returned At"},
	Row: func(r *models.AssetRecord) []any {
		return []any{r.ID, r.StaffName, r.StaffID, r.AssetType, r.Division, r.ProblemReported, r.PhoneNumber, r.Signature,
			string(r.Status), r.Notes, r.Timestamp.Format(time.DateTime), formatTime(r.ReturnedAt)}
	},
}

var VendorDefinition = Definition[models.VendorAssistance, models.VendorFields]{
	Module: ModuleVendor,
	Path:   "/vendors",
	Statuses: []string{
		string(models.VendorPending),
		string(models.VendorOngoing),
		string(models.VendorResolved),
	},
	Lifecycle: &policy.Lifecycle{Terminal: string(models.VendorResolved)},
	Store: store.Options{
		OwnerColumn:   "resolved_by_id",
		StatusColumn:  "status",
		SearchColumns: []string{"company_name", "cashier_owner_name", "problem_reported"},
		Preload:       []string{"ResolvedBy"},
	},
	Defaults: func(f *models.VendorFields) {
		if f.Status == "" {
			f.Status = models.VendorPending
		}
	},
	Header: []string{"ID", "Company Name", "Cashier/Owner", "Problem Reported", "Phone Number", "Status", "Resolution Notes", "Timestamp", "Resolved At"},
	Row: func(r *models.VendorAssistance) []any {
		return []any{r.ID, r.CompanyName, r.CashierOwnerName, r.ProblemReported, r.PhoneNumber, string(r.Status),
			r.ResolutionNotes, r.Timestamp.Format(time.DateTime), formatTime(r.ResolvedAt)}
	},
}

var ThermalDefinition = Definition[models.ThermalRollRecord, models.ThermalRollFields]{
	Module: ModuleThermal,
	Path:   "/thermal-rolls",
	Store: store.Options{
		OwnerColumn:   "recorded_by_id",
		SearchColumns: []string{"vendor_name", "cashier_owner_name"},
		Preload:       []string{"RecordedBy"},
	},
	Header: []string{"ID", "Vendor Name", "Cashier/Owner", "Quantity", "Phone Number", "Signature", "Notes", "Collection Date"},
	Row: func(r *models.ThermalRollRecord) []any {
		return []any{r.ID, r.VendorName, r.CashierOwnerName, r.Quantity, r.PhoneNumber, r.Signature, r.Notes, r.CollectionDate()}
	},
}

// Services bundles one service per module.
type Services struct {
	Support *SupportService
	Asset   *AssetService
	Vendor  *VendorService
	Thermal *ThermalService
}

func NewServices(db *gorm.DB, access *policy.AccessPolicy, audit Auditor, log *slog.Logger, opts ...Option) *Services {
	return &Services{
		Support: NewService[models.SupportRecord, *models.SupportRecord](
			SupportDefinition, store.New[models.SupportRecord](db, SupportDefinition.Store), access, audit, log, opts...),
		Asset: NewService[models.AssetRecord, *models.AssetRecord](
			AssetDefinition, store.New[models.AssetRecord](db, AssetDefinition.Store), access, audit, log, opts...),
		Vendor: NewService[models.VendorAssistance, *models.VendorAssistance](
			VendorDefinition, store.New[models.VendorAssistance](db, VendorDefinition.Store), access, audit, log, opts...),
		Thermal: NewService[models.ThermalRollRecord, *models.ThermalRollRecord](
			ThermalDefinition, store.New[models.ThermalRollRecord](db, ThermalDefinition.Store), access, audit, log, opts...),
	}
}
