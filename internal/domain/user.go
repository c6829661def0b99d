package domain

import "time"

// UserCategory represents the pricing/verification class of a user
type UserCategory string

const (
	CategoryEmployee UserCategory = "EMPLOYEE"
	CategoryStudent  UserCategory = "STUDENT"
	CategoryGeneral  UserCategory = "GENERAL"
)

// ParseUserCategory converts a raw string into a UserCategory
func ParseUserCategory(s string) (UserCategory, bool) {
	switch UserCategory(s) {
	case CategoryEmployee, CategoryStudent, CategoryGeneral:
		return UserCategory(s), true
	default:
		return "", false
	}
}

// RequiresVerification returns true if the category must present a
// verification token (personnel/student number) during onboarding
func (c UserCategory) RequiresVerification() bool {
	return c == CategoryEmployee || c == CategoryStudent
}

// VerificationStatus represents the verification state of a user
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// UserRole represents the access role of a user
type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleOperator UserRole = "operator"
)

// User represents a registered user of the field booking service
type User struct {
	ID                int64 // внешний стабильный идентификатор (telegram user id)
	Name              string
	Surname           string
	Phone             *string
	Category          UserCategory
	Verification      VerificationStatus
	Role              UserRole
	CardRef           *string // 16-значный номер карты для возврата средств
	VerificationToken *string
	Active            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOperator returns true if the user may perform admin overrides
func (u *User) IsOperator() bool {
	return u.Role == RoleOperator
}

// PaysCategoryRate returns true if the user is charged the category-based
// rate instead of the slot's listed cost
func (u *User) PaysCategoryRate() bool {
	return u.Verification == VerificationVerified
}
