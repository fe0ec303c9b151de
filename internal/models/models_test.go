package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSupportRecord_Strings(t *testing.T) {
	r := &SupportRecord{SupportFields: SupportFields{
		StaffName:     "Amina Yusuf",
		IssueReported: strings.Repeat("x", 60),
		Status:        SupportPending,
	}}

	assert.Equal(t, "Amina Yusuf - "+strings.Repeat("x", 50)+" (PENDING)", r.String())
	assert.Equal(t, "Support: Amina Yusuf - "+strings.Repeat("x", 50)+"...", r.Title())

	r.IssueReported = "Printer jam"
	assert.Equal(t, "Support: Amina Yusuf - Printer jam", r.Title())
}

func TestAssetRecord_Accessors(t *testing.T) {
	r := &AssetRecord{AssetFields: AssetFields{StaffName: "Kofi", AssetType: "laptop", Status: AssetUnderRepair}}
	r.SetOwnerID(4)
	now := time.Now().UTC()
	r.SetTerminalAt(&now)

	assert.Equal(t, uint(4), r.GetOwnerID())
	assert.Equal(t, "UNDER_REPAIR", r.GetStatus())
	assert.Same(t, &now, r.GetTerminalAt())
	assert.Equal(t, "Asset: Kofi - laptop", r.Title())
	assert.Equal(t, "Kofi - laptop (UNDER_REPAIR)", r.String())
}

func TestVendorAssistance_OwnerIsResolver(t *testing.T) {
	r := &VendorAssistance{VendorFields: VendorFields{CompanyName: "Acme Ltd", Status: VendorOngoing}}
	r.SetOwnerID(9)

	assert.Equal(t, uint(9), r.ResolvedByID)
	assert.Equal(t, "Vendor: Acme Ltd", r.Title())
	assert.Equal(t, "vendor_assistance_records", VendorAssistance{}.TableName())
}

func TestThermalRollRecord_NoLifecycle(t *testing.T) {
	r := &ThermalRollRecord{ThermalRollFields: ThermalRollFields{VendorName: "Shop 12", Quantity: 3}}
	r.SetTimestamp(time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC))
	now := time.Now()
	r.SetTerminalAt(&now)

	assert.Nil(t, r.GetTerminalAt())
	assert.Empty(t, r.GetStatus())
	assert.Equal(t, "Thermal Rolls: Shop 12 - 3 rolls", r.Title())
	assert.Equal(t, "Shop 12 - 3 rolls on 2024-03-09", r.String())
}

func TestTruncate_CountsRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "hé...", truncate("héllo", 2))
	assert.Equal(t, "hé", head("héllo", 2))
}
