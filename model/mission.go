package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type RewardStructure string

const (
	RewardStructure_Flat       RewardStructure = "flat"
	RewardStructure_Percentage RewardStructure = "percentage"
)

var (
	ErrInvalidRewardStructure = errors.New("invalid reward structure")
	ErrInvalidRewardAmount    = errors.New("invalid reward amount")
	ErrGenerationRateOrder    = errors.New("a generation rate requires all lower generation rates to be set")
)

// RewardAmount is the tagged variant used for all reward math. Flat values
// are integer cents, percentage values are integer basis points (100 = 1%).
type RewardAmount struct {
	Structure RewardStructure `json:"structure"`
	Value     int64           `json:"value"`
}

// ResolveAgainst freezes a reward amount into absolute cents for a given
// sale value. Flat amounts ignore the sale value, percentage amounts are
// rounded half away from zero.
func (r RewardAmount) ResolveAgainst(valueCents int64) int64 {
	if r.Structure == RewardStructure_Flat {
		return r.Value
	}
	return ApplyBasisPoints(valueCents, r.Value)
}

// ApplyBasisPoints computes round(value * bps / 10000) in integer math
func ApplyBasisPoints(valueCents, bps int64) int64 {
	p := valueCents * bps
	if p >= 0 {
		return (p + 5000) / 10000
	}
	return (p - 5000) / 10000
}

// ParseRewardAmount converts the deal strings used by the admin UI
// ("15%", "150€", "150") into the tagged variant. Flat amounts are read as
// euro cents.
func ParseRewardAmount(s string) (RewardAmount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RewardAmount{}, ErrInvalidRewardAmount
	}
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseInt(strings.TrimSuffix(s, "%"), 10, 64)
		if err != nil || n < 0 {
			return RewardAmount{}, ErrInvalidRewardAmount
		}
		return RewardAmount{Structure: RewardStructure_Percentage, Value: n * 100}, nil
	}
	s = strings.TrimSuffix(s, "€")
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return RewardAmount{}, ErrInvalidRewardAmount
	}
	return RewardAmount{Structure: RewardStructure_Flat, Value: n}, nil
}

// String renders the amount back into the admin UI notation
func (r RewardAmount) String() string {
	if r.Structure == RewardStructure_Percentage {
		return fmt.Sprintf("%d%%", r.Value/100)
	}
	return fmt.Sprintf("%d€", r.Value)
}

// Mission is an offer and its full reward configuration. Amounts are cents
// for flat structures and basis points for percentage structures.
type Mission struct {
	ID          uint64 `gorm:"PRIMARY_KEY" json:"id"`
	WorkspaceID uint64 `gorm:"column:workspace_id" json:"workspace_id"`
	Name        string `gorm:"column:name" json:"name"`

	SaleEnabled   bool            `gorm:"column:sale_enabled" json:"sale_enabled"`
	SaleAmount    int64           `gorm:"column:sale_amount" json:"sale_amount"`
	SaleStructure RewardStructure `sql:"type:reward_structure_t" json:"sale_structure"`

	LeadEnabled   bool            `gorm:"column:lead_enabled" json:"lead_enabled"`
	LeadAmount    int64           `gorm:"column:lead_amount" json:"lead_amount"`
	LeadStructure RewardStructure `sql:"type:reward_structure_t" json:"lead_structure"`

	RecurringEnabled        bool            `gorm:"column:recurring_enabled" json:"recurring_enabled"`
	RecurringAmount         int64           `gorm:"column:recurring_amount" json:"recurring_amount"`
	RecurringStructure      RewardStructure `sql:"type:reward_structure_t" json:"recurring_structure"`
	RecurringDurationMonths *int            `gorm:"column:recurring_duration_months" json:"recurring_duration_months"`

	ReferralEnabled bool   `gorm:"column:referral_enabled" json:"referral_enabled"`
	Gen1Rate        *int64 `gorm:"column:gen1_rate" json:"gen1_rate"`
	Gen2Rate        *int64 `gorm:"column:gen2_rate" json:"gen2_rate"`
	Gen3Rate        *int64 `gorm:"column:gen3_rate" json:"gen3_rate"`

	HoldDays int `gorm:"column:hold_days" json:"hold_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RewardRule is the resolved reward configuration for one conversion source
type RewardRule struct {
	Enabled        bool
	Amount         RewardAmount
	DurationMonths *int
}

// RuleFor returns the reward rule that applies to a commission source.
// A disabled toggle is a normal no-reward result, not an error.
func (m *Mission) RuleFor(source CommissionSource) RewardRule {
	switch source {
	case CommissionSource_Sale:
		return RewardRule{
			Enabled: m.SaleEnabled,
			Amount:  RewardAmount{Structure: m.SaleStructure, Value: m.SaleAmount},
		}
	case CommissionSource_Lead:
		return RewardRule{
			Enabled: m.LeadEnabled,
			Amount:  RewardAmount{Structure: m.LeadStructure, Value: m.LeadAmount},
		}
	case CommissionSource_Recurring:
		return RewardRule{
			Enabled:        m.RecurringEnabled,
			Amount:         RewardAmount{Structure: m.RecurringStructure, Value: m.RecurringAmount},
			DurationMonths: m.RecurringDurationMonths,
		}
	}
	return RewardRule{}
}

// GenerationRate returns the configured referral rate for generation 1..3,
// or nil when that generation is not paid
func (m *Mission) GenerationRate(generation int) *int64 {
	switch generation {
	case 1:
		return m.Gen1Rate
	case 2:
		return m.Gen2Rate
	case 3:
		return m.Gen3Rate
	}
	return nil
}

// Validate rejects inconsistent reward configuration at save time. A
// mission must never be persisted in one of these states.
func (m *Mission) Validate() error {
	for _, s := range []RewardStructure{m.SaleStructure, m.LeadStructure, m.RecurringStructure} {
		if s != "" && s != RewardStructure_Flat && s != RewardStructure_Percentage {
			return ErrInvalidRewardStructure
		}
	}
	if m.SaleEnabled && m.SaleAmount < 0 {
		return ErrInvalidRewardAmount
	}
	if m.LeadEnabled && m.LeadAmount < 0 {
		return ErrInvalidRewardAmount
	}
	if m.RecurringEnabled && m.RecurringAmount < 0 {
		return ErrInvalidRewardAmount
	}
	if m.ReferralEnabled {
		if m.Gen2Rate != nil && m.Gen1Rate == nil {
			return ErrGenerationRateOrder
		}
		if m.Gen3Rate != nil && m.Gen2Rate == nil {
			return ErrGenerationRateOrder
		}
	}
	if m.HoldDays < 0 {
		return ErrInvalidRewardAmount
	}
	return nil
}

// MissionList type
type MissionList struct {
	Missions []Mission  `json:"missions"`
	Meta     PagingMeta `json:"meta"`
}
