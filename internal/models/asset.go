package models

import (
	"fmt"
	"time"
)

type AssetStatus string

const (
	AssetInUse       AssetStatus = "IN_USE"
	AssetReturned    AssetStatus = "RETURNED"
	AssetUnderRepair AssetStatus = "UNDER_REPAIR"
)

// AssetFields describe a physical asset handed over for use or repair.
type AssetFields struct {
	StaffName       string      `gorm:"size:200;not null" json:"staff_name" form:"staff_name" validate:"required,max=200"`
	StaffID         string      `gorm:"size:50;not null;index" json:"staff_id" form:"staff_id" validate:"required,max=50"`
	ProblemReported string      `gorm:"type:text;not null" json:"problem_reported" form:"problem_reported" validate:"required"`
	AssetType       string      `gorm:"size:100;not null;index" json:"asset_type" form:"asset_type" validate:"required,max=100"` // laptop, printer, desktop...
	Division        string      `gorm:"size:100;not null" json:"division" form:"division" validate:"required,max=100"`
	PhoneNumber     string      `gorm:"size:20;not null" json:"phone_number" form:"phone_number" validate:"required,max=20,phone"`
	Signature       string      `gorm:"size:200" json:"signature" form:"signature" validate:"max=200"`
	Status          AssetStatus `gorm:"size:20;not null;index;default:IN_USE" json:"status" form:"status" validate:"required,oneof=IN_USE RETURNED UNDER_REPAIR"`
	Notes           string      `gorm:"type:text" json:"notes" form:"notes"`
}

type AssetRecord struct {
	Base
	AssetFields

	RecordedByID uint  `gorm:"index;not null" json:"recorded_by_id"`
	RecordedBy   *User `json:"recorded_by,omitempty"`

	Timestamp  time.Time  `gorm:"index;not null" json:"timestamp"`
	ReturnedAt *time.Time `json:"returned_at"`
}

func (r *AssetRecord) GetOwnerID() uint           { return r.RecordedByID }
func (r *AssetRecord) SetOwnerID(id uint)         { r.RecordedByID = id }
func (r *AssetRecord) GetTimestamp() time.Time    { return r.Timestamp }
func (r *AssetRecord) SetTimestamp(t time.Time)   { r.Timestamp = t }
func (r *AssetRecord) GetFields() AssetFields     { return r.AssetFields }
func (r *AssetRecord) SetFields(f AssetFields)    { r.AssetFields = f }
func (r *AssetRecord) GetStatus() string          { return string(r.Status) }
func (r *AssetRecord) GetTerminalAt() *time.Time  { return r.ReturnedAt }
func (r *AssetRecord) SetTerminalAt(t *time.Time) { r.ReturnedAt = t }

func (r *AssetRecord) String() string {
	return fmt.Sprintf("%s - %s (%s)", r.StaffName, r.AssetType, r.Status)
}

func (r *AssetRecord) Title() string {
	return fmt.Sprintf("Asset: %s - %s", r.StaffName, truncate(r.AssetType, 50))
}
