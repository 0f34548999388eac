package entities

import (
	"time"

	"github.com/google/uuid"

	"trade-palace.backend/pkg/money"
)

// WithdrawalStatus represents withdrawal processing status
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// Terminal reports whether no further transition is permitted
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusApproved || s == WithdrawalStatusRejected
}

// Withdrawal represents a member's request to withdraw from their balance.
// Approval debits the balance atomically; rejection has no balance effect.
type Withdrawal struct {
	ID          uuid.UUID        `json:"id"`
	AccountID   uuid.UUID        `json:"accountId"`
	Amount      money.Cents      `json:"amount"`
	Status      WithdrawalStatus `json:"status"`
	ProcessedBy *uuid.UUID       `json:"processedBy,omitempty"`
	ProcessedAt *time.Time       `json:"processedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// RequestWithdrawalInput represents input for filing a withdrawal request
type RequestWithdrawalInput struct {
	Amount string `json:"amount" binding:"required"`
}

// WithdrawalDecisionInput represents a processing decision
type WithdrawalDecisionInput struct {
	Decision WithdrawalStatus `json:"decision" binding:"required"`
}
