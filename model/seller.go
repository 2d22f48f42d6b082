package model

import (
	"time"
)

type SellerStatus string

const (
	SellerStatus_Pending   SellerStatus = "pending"
	SellerStatus_Approved  SellerStatus = "approved"
	SellerStatus_Suspended SellerStatus = "suspended"
)

// Seller is one node in the referral graph. ReferrerID is set once at
// creation and never updated: historical commissions reference the chain
// as it was when they were issued, so a mutable edge would corrupt them.
type Seller struct {
	ID         uint64       `gorm:"PRIMARY_KEY" json:"id"`
	Status     SellerStatus `sql:"not null;type:seller_status_t;default:'pending'" json:"status"`
	ReferrerID *uint64      `gorm:"column:referrer_id" json:"referrer_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// NewSeller creates a seller with its immutable referral edge
func NewSeller(referrerID *uint64) *Seller {
	return &Seller{
		Status:     SellerStatus_Pending,
		ReferrerID: referrerID,
	}
}

// IsApproved reports whether the seller may receive referral credit
func (s *Seller) IsApproved() bool {
	return s.Status == SellerStatus_Approved
}

// ReferralChain is the ordered upline of a seller, closest ancestor first.
// At most three generations are ever paid.
type ReferralChain []uint64

// MaxReferralGenerations caps the upline walk
const MaxReferralGenerations = 3

// ReferralGenerationStats aggregates referral commissions per generation
type ReferralGenerationStats struct {
	Generation int   `gorm:"column:generation" json:"generation"`
	Amount     int64 `gorm:"column:amount" json:"amount"`
	Count      int64 `gorm:"column:count" json:"count"`
}

// ReferralStats is the per-generation earnings breakdown exposed to the portal
type ReferralStats struct {
	Gen1 ReferralGenerationStats `json:"gen1"`
	Gen2 ReferralGenerationStats `json:"gen2"`
	Gen3 ReferralGenerationStats `json:"gen3"`
}
