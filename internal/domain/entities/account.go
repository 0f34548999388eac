package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"trade-palace.backend/pkg/money"
)

// AccountRole represents account roles
type AccountRole string

const (
	RoleStudent AccountRole = "student"
	RoleMentor  AccountRole = "mentor"
	RoleAdmin   AccountRole = "admin"
)

// Valid reports whether the role is one of the known roles
func (r AccountRole) Valid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// CanVerifyPayments reports whether the role may decide payment verifications
func (r AccountRole) CanVerifyPayments() bool {
	return r == RoleMentor || r == RoleAdmin
}

// CanProcessWithdrawals reports whether the role may decide withdrawal requests
func (r AccountRole) CanProcessWithdrawals() bool {
	return r == RoleAdmin
}

// CanManageEnrollments reports whether the role may change enrollment status
func (r AccountRole) CanManageEnrollments() bool {
	return r == RoleMentor || r == RoleAdmin
}

// Account represents a platform member. Balance is the member's ledger:
// it only changes through referral reward credits and approved withdrawals.
type Account struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         AccountRole `json:"role"`
	Phone        null.String `json:"phone,omitempty"`
	Balance      money.Cents `json:"balance"`
	IsVerified   bool        `json:"isVerified"`
	ReferralCode string      `json:"referralCode"`
	ReferredBy   *uuid.UUID  `json:"referredBy,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	DeletedAt    *time.Time  `json:"-"`
}

// RegisterInput represents input for account registration
type RegisterInput struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referralCode"`
}

// LoginInput represents input for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}
