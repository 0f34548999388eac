package entities

import (
	"time"

	"github.com/google/uuid"
)

// Referral is the edge linking a referrer to the account they referred.
// At most one edge exists per referred account, created at registration
// time. RewardPaid flips exactly once when the reward is credited.
type Referral struct {
	ID         uuid.UUID `json:"id"`
	ReferrerID uuid.UUID `json:"referrerId"`
	ReferredID uuid.UUID `json:"referredId"`
	RewardPaid bool      `json:"rewardPaid"`
	CreatedAt  time.Time `json:"createdAt"`
}
