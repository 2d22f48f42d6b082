package model

import (
	"errors"
	"time"
)

type OrgMissionStatus string

const (
	OrgMissionStatus_Proposed  OrgMissionStatus = "proposed"
	OrgMissionStatus_Accepted  OrgMissionStatus = "accepted"
	OrgMissionStatus_Rejected  OrgMissionStatus = "rejected"
	OrgMissionStatus_Cancelled OrgMissionStatus = "cancelled"
)

// PlatformCutPoints is the platform's fixed take on every org deal:
// 15 percentage points of a percentage reward, or 15% of a flat reward.
const PlatformCutPoints = 15

var (
	ErrDealRewardTooLow      = errors.New("total reward must exceed the platform cut")
	ErrDealSharesExceedTotal = errors.New("leader and member shares exceed the distributable reward")
	ErrDealStructureMismatch = errors.New("leader and member rewards must use the total reward's structure")
	ErrDealNotPending        = errors.New("deal is not in proposed state")
)

// OrgMission is a negotiated deal between a business and an organization,
// layered over a mission. All three reward fields share one structure:
// either everything is percentage basis points or everything is flat cents.
type OrgMission struct {
	ID           uint64           `gorm:"PRIMARY_KEY" json:"id"`
	MissionID    uint64           `gorm:"column:mission_id" json:"mission_id"`
	OrgID        uint64           `gorm:"column:org_id" json:"org_id"`
	Structure    RewardStructure  `sql:"not null;type:reward_structure_t" json:"structure"`
	TotalReward  int64            `gorm:"column:total_reward" json:"total_reward"`
	LeaderReward int64            `gorm:"column:leader_reward" json:"leader_reward"`
	MemberReward int64            `gorm:"column:member_reward" json:"member_reward"`
	Status       OrgMissionStatus `sql:"not null;type:org_mission_status_t;default:'proposed'" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// DealSplit is the computed platform/leader/member division of a deal's
// reward, in the deal's own unit (basis points or cents)
type DealSplit struct {
	PlatformCut int64 `json:"platform_cut"`
	LeaderShare int64 `json:"leader_share"`
	MemberShare int64 `json:"member_share"`
}

// OrgMissionList type
type OrgMissionList struct {
	Deals []OrgMission `json:"deals"`
	Meta  PagingMeta   `json:"meta"`
}
