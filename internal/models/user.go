package models

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	Base
	Username     string   `gorm:"uniqueIndex;size:150;not null" json:"username"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}
