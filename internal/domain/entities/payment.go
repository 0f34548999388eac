package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"trade-palace.backend/pkg/money"
)

// PaymentType represents what a submitted payment is for
type PaymentType string

const (
	PaymentTypeMentorship PaymentType = "mentorship"
	PaymentTypeReferral   PaymentType = "referral"
)

// Valid reports whether the payment type is known
func (t PaymentType) Valid() bool {
	return t == PaymentTypeMentorship || t == PaymentTypeReferral
}

// PaymentStatus represents payment verification status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Terminal reports whether no further transition is permitted
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusVerified || s == PaymentStatusRejected
}

// Payment represents a member-submitted payment awaiting verification.
// Verification never mutates any balance; it only records the decision.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	AccountID     uuid.UUID     `json:"accountId"`
	Type          PaymentType   `json:"type"`
	Amount        money.Cents   `json:"amount"`
	MpesaCode     null.String   `json:"mpesaCode,omitempty"`
	BankTxCode    null.String   `json:"bankTxCode,omitempty"`
	ScreenshotURL null.String   `json:"screenshotUrl,omitempty"`
	Status        PaymentStatus `json:"status"`
	VerifiedBy    *uuid.UUID    `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time    `json:"verifiedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SubmitPaymentInput represents input for submitting a payment
type SubmitPaymentInput struct {
	Type          PaymentType `json:"type" binding:"required"`
	Amount        string      `json:"amount" binding:"required"`
	MpesaCode     string      `json:"mpesaCode"`
	BankTxCode    string      `json:"bankTxCode"`
	ScreenshotURL string      `json:"screenshotUrl"`
}

// PaymentDecisionInput represents a verification decision
type PaymentDecisionInput struct {
	Decision PaymentStatus `json:"decision" binding:"required"`
}
