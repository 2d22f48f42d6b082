package model

import (
	"time"
)

type PayoutRunStatus string

const (
	PayoutRunStatus_Pending   PayoutRunStatus = "pending"
	PayoutRunStatus_Completed PayoutRunStatus = "completed"
	PayoutRunStatus_Failed    PayoutRunStatus = "failed"
)

// PayoutRun records one disbursement attempt for a seller and period.
// (seller_id, period) makes retries idempotent: a completed run for the
// same period is never executed twice, and a failed run leaves every
// selected commission in PROCEED so the whole batch is safe to retry.
type PayoutRun struct {
	ID        uint64          `gorm:"PRIMARY_KEY" json:"id"`
	RefID     string          `gorm:"column:ref_id" json:"ref_id"`
	SellerID  uint64          `gorm:"column:seller_id" json:"seller_id"`
	Period    string          `gorm:"column:period" json:"period"`
	Amount    int64           `gorm:"column:amount" json:"amount"`
	Status    PayoutRunStatus `sql:"not null;type:payout_run_status_t;default:'pending'" json:"status"`
	AsOf      time.Time       `gorm:"column:as_of" json:"as_of"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PayoutPeriod formats the idempotency period key for a payout date
func PayoutPeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}
