package model

import (
	"encoding/json"
	"time"
)

type CommissionStatus string

const (
	CommissionStatus_Pending  CommissionStatus = "pending"
	CommissionStatus_Proceed  CommissionStatus = "proceed"
	CommissionStatus_Complete CommissionStatus = "complete"
	CommissionStatus_Reversed CommissionStatus = "reversed"
)

type CommissionSource string

const (
	CommissionSource_Sale      CommissionSource = "sale"
	CommissionSource_Lead      CommissionSource = "lead"
	CommissionSource_Recurring CommissionSource = "recurring"
	CommissionSource_Referral  CommissionSource = "referral"
)

// Commission is the atomic unit of owed money. Amount is always absolute
// cents: percentage rules are resolved against the triggering event's value
// exactly once at creation time and frozen here. Rate keeps the basis-point
// or flat value that was applied, for audit.
//
// (source_event_id, seller_id, generation) is unique so that replaying the
// same external event can never double-create rows.
type Commission struct {
	ID            uint64           `gorm:"PRIMARY_KEY" json:"id"`
	SellerID      uint64           `gorm:"column:seller_id" json:"seller_id"`
	MissionID     uint64           `gorm:"column:mission_id" json:"mission_id"`
	EnrollmentID  uint64           `gorm:"column:enrollment_id" json:"enrollment_id"`
	Source        CommissionSource `sql:"not null;type:commission_source_t" json:"source"`
	Generation    int              `gorm:"column:generation" json:"generation"`
	Amount        int64            `gorm:"column:amount" json:"amount"`
	Rate          int64            `gorm:"column:rate" json:"rate"`
	Structure     RewardStructure  `sql:"not null;type:reward_structure_t" json:"structure"`
	Status        CommissionStatus `sql:"not null;type:commission_status_t;default:'pending'" json:"status"`
	HoldDays      int              `gorm:"column:hold_days" json:"hold_days"`
	MaturedAt     *time.Time       `gorm:"column:matured_at" json:"matured_at"`
	PayoutRunID   *uint64          `gorm:"column:payout_run_id" json:"payout_run_id"`
	SourceEventID string           `gorm:"column:source_event_id" json:"source_event_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// MaturesAt is the earliest instant the commission may leave PENDING
func (c *Commission) MaturesAt() time.Time {
	return c.CreatedAt.AddDate(0, 0, c.HoldDays)
}

// IsMature reports whether the hold window has elapsed at the given time
func (c *Commission) IsMature(now time.Time) bool {
	return !now.Before(c.MaturesAt())
}

// MarshalJSON godoc
func (c Commission) MarshalJSON() ([]byte, error) {
	var maturedAt *int64
	if c.MaturedAt != nil {
		ts := c.MaturedAt.Unix()
		maturedAt = &ts
	}
	return json.Marshal(map[string]interface{}{
		"id":              c.ID,
		"seller_id":       c.SellerID,
		"mission_id":      c.MissionID,
		"enrollment_id":   c.EnrollmentID,
		"source":          c.Source,
		"generation":      c.Generation,
		"amount":          c.Amount,
		"rate":            c.Rate,
		"structure":       c.Structure,
		"status":          c.Status,
		"hold_days":       c.HoldDays,
		"matured_at":      maturedAt,
		"source_event_id": c.SourceEventID,
		"created_at":      c.CreatedAt.Unix(),
	})
}

// CommissionList type
type CommissionList struct {
	Commissions []Commission `json:"commissions"`
	Meta        PagingMeta   `json:"meta"`
}

// Balance is the per-seller projection over commission rows grouped by
// status. It is derived data: commission rows stay authoritative.
type Balance struct {
	Pending   int64 `json:"pending"`
	Available int64 `json:"available"`
	Paid      int64 `json:"paid"`
}
