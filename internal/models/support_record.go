package models

import (
	"fmt"
	"time"
)

type SupportStatus string

const (
	SupportPending    SupportStatus = "PENDING"
	SupportInProgress SupportStatus = "IN_PROGRESS"
	SupportSolved     SupportStatus = "SOLVED"
)

// SupportFields are the user-editable fields of a help-desk ticket.
type SupportFields struct {
	StaffName     string        `gorm:"size:200;not null" json:"staff_name" form:"staff_name" validate:"required,max=200"`
	StaffID       string        `gorm:"size:50;not null;index" json:"staff_id" form:"staff_id" validate:"required,min=3,max=50"`
	IssueReported string        `gorm:"type:text;not null" json:"issue_reported" form:"issue_reported" validate:"required"`
	PhoneNumber   string        `gorm:"size:20;not null" json:"phone_number" form:"phone_number" validate:"required,max=20,phone"`
	Status        SupportStatus `gorm:"size:20;not null;index;default:PENDING" json:"status" form:"status" validate:"required,oneof=PENDING IN_PROGRESS SOLVED"`
	Notes         string        `gorm:"type:text" json:"notes" form:"notes"`
}

type SupportRecord struct {
	Base
	SupportFields

	RecordedByID uint  `gorm:"index;not null" json:"recorded_by_id"`
	RecordedBy   *User `json:"recorded_by,omitempty"`

	Timestamp  time.Time  `gorm:"index;not null" json:"timestamp"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

func (r *SupportRecord) GetOwnerID() uint               { return r.RecordedByID }
func (r *SupportRecord) SetOwnerID(id uint)             { r.RecordedByID = id }
func (r *SupportRecord) GetTimestamp() time.Time        { return r.Timestamp }
func (r *SupportRecord) SetTimestamp(t time.Time)       { r.Timestamp = t }
func (r *SupportRecord) GetFields() SupportFields       { return r.SupportFields }
func (r *SupportRecord) SetFields(f SupportFields)      { r.SupportFields = f }
func (r *SupportRecord) GetStatus() string              { return string(r.Status) }
func (r *SupportRecord) GetTerminalAt() *time.Time      { return r.ResolvedAt }
func (r *SupportRecord) SetTerminalAt(t *time.Time)     { r.ResolvedAt = t }

func (r *SupportRecord) String() string {
	return fmt.Sprintf("%s - %s (%s)", r.StaffName, head(r.IssueReported, 50), r.Status)
}

func (r *SupportRecord) Title() string {
	return fmt.Sprintf("Support: %s - %s", r.StaffName, truncate(r.IssueReported, 50))
}
