package models

import (
	"fmt"
	"time"
)

type VendorStatus string

const (
	VendorPending  VendorStatus = "PENDING"
	VendorOngoing  VendorStatus = "ONGOING"
	VendorResolved VendorStatus = "RESOLVED"
)

// VendorFields describe technical help given to an external vendor.
type VendorFields struct {
	CompanyName      string       `gorm:"size:200;not null;index" json:"company_name" form:"company_name" validate:"required,max=200"`
	CashierOwnerName string       `gorm:"size:200;not null" json:"cashier_owner_name" form:"cashier_owner_name" validate:"required,max=200"`
	ProblemReported  string       `gorm:"type:text;not null" json:"problem_reported" form:"problem_reported" validate:"required"`
	PhoneNumber      string       `gorm:"size:20;not null" json:"phone_number" form:"phone_number" validate:"required,max=20,phone"`
	Status           VendorStatus `gorm:"size:20;not null;index;default:PENDING" json:"status" form:"status" validate:"required,oneof=PENDING ONGOING RESOLVED"`
	ResolutionNotes  string       `gorm:"type:text" json:"resolution_notes" form:"resolution_notes"`
}

type VendorAssistance struct {
	Base
	VendorFields

	// the officer who handled the case owns it
	ResolvedByID uint  `gorm:"index;not null" json:"resolved_by_id"`
	ResolvedBy   *User `json:"resolved_by,omitempty"`

	Timestamp  time.Time  `gorm:"index;not null" json:"timestamp"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

func (VendorAssistance) TableName() string { return "vendor_assistance_records" }

func (r *VendorAssistance) GetOwnerID() uint           { return r.ResolvedByID }
func (r *VendorAssistance) SetOwnerID(id uint)         { r.ResolvedByID = id }
func (r *VendorAssistance) GetTimestamp() time.Time    { return r.Timestamp }
func (r *VendorAssistance) SetTimestamp(t time.Time)   { r.Timestamp = t }
func (r *VendorAssistance) GetFields() VendorFields    { return r.VendorFields }
func (r *VendorAssistance) SetFields(f VendorFields)   { r.VendorFields = f }
func (r *VendorAssistance) GetStatus() string          { return string(r.Status) }
func (r *VendorAssistance) GetTerminalAt() *time.Time  { return r.ResolvedAt }
func (r *VendorAssistance) SetTerminalAt(t *time.Time) { r.ResolvedAt = t }

func (r *VendorAssistance) String() string {
	return fmt.Sprintf("%s - %s (%s)", r.CompanyName, head(r.ProblemReported, 50), r.Status)
}

func (r *VendorAssistance) Title() string {
	return fmt.Sprintf("Vendor: %s", truncate(r.CompanyName, 50))
}
