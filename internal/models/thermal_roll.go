package models

import (
	"fmt"
	"time"
)

// ThermalRollFields describe paper rolls handed to a cashier station.
type ThermalRollFields struct {
	VendorName       string `gorm:"size:200;not null;index" json:"vendor_name" form:"vendor_name" validate:"required,max=200"`
	CashierOwnerName string `gorm:"size:200;not null" json:"cashier_owner_name" form:"cashier_owner_name" validate:"required,max=200"`
	Quantity         int    `gorm:"not null" json:"quantity" form:"quantity" validate:"required,min=1"`
	PhoneNumber      string `gorm:"size:20;not null" json:"phone_number" form:"phone_number" validate:"required,max=20,phone"`
	Signature        string `gorm:"size:200" json:"signature" form:"signature" validate:"max=200"`
	Notes            string `gorm:"type:text" json:"notes" form:"notes"`
}

type ThermalRollRecord struct {
	Base
	ThermalRollFields

	RecordedByID uint  `gorm:"index;not null" json:"recorded_by_id"`
	RecordedBy   *User `json:"recorded_by,omitempty"`

	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (r *ThermalRollRecord) GetOwnerID() uint                { return r.RecordedByID }
func (r *ThermalRollRecord) SetOwnerID(id uint)              { r.RecordedByID = id }
func (r *ThermalRollRecord) GetTimestamp() time.Time         { return r.Timestamp }
func (r *ThermalRollRecord) SetTimestamp(t time.Time)        { r.Timestamp = t }
func (r *ThermalRollRecord) GetFields() ThermalRollFields    { return r.ThermalRollFields }
func (r *ThermalRollRecord) SetFields(f ThermalRollFields)   { r.ThermalRollFields = f }

// thermal rolls carry no status
func (r *ThermalRollRecord) GetStatus() string          { return "" }
func (r *ThermalRollRecord) GetTerminalAt() *time.Time  { return nil }
func (r *ThermalRollRecord) SetTerminalAt(_ *time.Time) {}

// CollectionDate is the calendar day the rolls were collected.
func (r *ThermalRollRecord) CollectionDate() string {
	return r.Timestamp.Format(time.DateOnly)
}

func (r *ThermalRollRecord) String() string {
	return fmt.Sprintf("%s - %d rolls on %s", r.VendorName, r.Quantity, r.CollectionDate())
}

func (r *ThermalRollRecord) Title() string {
	return fmt.Sprintf("Thermal Rolls: %s - %d rolls", truncate(r.VendorName, 50), r.Quantity)
}
