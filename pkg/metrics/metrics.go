package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RegistrationsTotal counts completed account registrations, split by
	// whether the signup carried a referral attribution.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradepalace_registrations_total",
		Help: "Completed account registrations",
	}, []string{"referred"})

	// RewardsCreditedTotal counts referral rewards applied to referrer balances.
	RewardsCreditedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradepalace_referral_rewards_credited_total",
		Help: "Referral rewards credited exactly once per referral edge",
	})

	// PaymentsDecidedTotal counts payment verification decisions.
	PaymentsDecidedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradepalace_payments_decided_total",
		Help: "Payment verification decisions",
	}, []string{"decision"})

	// WithdrawalsDecidedTotal counts withdrawal processing decisions.
	WithdrawalsDecidedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradepalace_withdrawals_decided_total",
		Help: "Withdrawal processing decisions",
	}, []string{"decision"})
)

// Handler returns the HTTP handler serving the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
