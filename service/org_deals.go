package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/model"
)

// ComputeDealSplit divides an org deal's total reward between the
// platform, the organization leader and its members. The platform always
// takes 15 percentage points of a percentage reward, or 15% of a flat
// one. A percentage total at or below the cut leaves the organization
// nothing and is rejected rather than clamped.
//
// When the member reward is zero it defaults to the full remainder after
// the leader's share; an explicit member reward is validated against the
// remainder instead.
func ComputeDealSplit(total, leader, member model.RewardAmount) (model.DealSplit, error) {
	if leader.Structure != total.Structure || member.Structure != total.Structure {
		return model.DealSplit{}, model.ErrDealStructureMismatch
	}

	var platformCut int64
	switch total.Structure {
	case model.RewardStructure_Percentage:
		platformCut = int64(model.PlatformCutPoints * 100)
		if total.Value <= platformCut {
			return model.DealSplit{}, model.ErrDealRewardTooLow
		}
	case model.RewardStructure_Flat:
		platformCut = model.ApplyBasisPoints(total.Value, int64(model.PlatformCutPoints*100))
		if total.Value <= platformCut {
			return model.DealSplit{}, model.ErrDealRewardTooLow
		}
	default:
		return model.DealSplit{}, model.ErrInvalidRewardStructure
	}

	remainder := total.Value - platformCut
	leaderShare := leader.Value
	memberShare := member.Value
	if memberShare == 0 {
		memberShare = remainder - leaderShare
	}
	if leaderShare < 0 || memberShare < 0 || leaderShare+memberShare > remainder {
		return model.DealSplit{}, model.ErrDealSharesExceedTotal
	}

	return model.DealSplit{
		PlatformCut: platformCut,
		LeaderShare: leaderShare,
		MemberShare: memberShare,
	}, nil
}

// SplitDealForSale resolves a deal's split against one sale's actual
// value, producing absolute cents. Flat deals pass through unchanged,
// percentage deals apply each share's basis points to the sale value with
// the same rounding the per-conversion path uses.
func SplitDealForSale(deal *model.OrgMission, saleValueCents int64) (model.DealSplit, error) {
	split, err := ComputeDealSplit(
		model.RewardAmount{Structure: deal.Structure, Value: deal.TotalReward},
		model.RewardAmount{Structure: deal.Structure, Value: deal.LeaderReward},
		model.RewardAmount{Structure: deal.Structure, Value: deal.MemberReward},
	)
	if err != nil {
		return model.DealSplit{}, err
	}
	if deal.Structure == model.RewardStructure_Flat {
		return split, nil
	}
	return model.DealSplit{
		PlatformCut: model.ApplyBasisPoints(saleValueCents, split.PlatformCut),
		LeaderShare: model.ApplyBasisPoints(saleValueCents, split.LeaderShare),
		MemberShare: model.ApplyBasisPoints(saleValueCents, split.MemberShare),
	}, nil
}

// ProposeOrgDeal validates the reward split and persists the deal in
// PROPOSED state
func (service *Service) ProposeOrgDeal(missionID, orgID uint64, total, leader, member model.RewardAmount) (*model.OrgMission, error) {
	mission := model.Mission{}
	if err := service.repo.ConnReader.First(&mission, "id = ?", missionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownMission
		}
		return nil, err
	}

	split, err := ComputeDealSplit(total, leader, member)
	if err != nil {
		return nil, err
	}

	deal := &model.OrgMission{
		MissionID:    missionID,
		OrgID:        orgID,
		Structure:    total.Structure,
		TotalReward:  total.Value,
		LeaderReward: split.LeaderShare,
		MemberReward: split.MemberShare,
		Status:       model.OrgMissionStatus_Proposed,
	}
	if err := service.repo.Conn.Create(deal).Error; err != nil {
		return nil, err
	}

	log.Info().
		Str("section", "service").
		Str("action", "ProposeOrgDeal").
		Uint64("mission_id", missionID).
		Uint64("org_id", orgID).
		Uint64("deal_id", deal.ID).
		Msg("Org deal proposed")
	return deal, nil
}

// ResolveOrgDeal moves a PROPOSED deal to ACCEPTED or REJECTED
func (service *Service) ResolveOrgDeal(dealID uint64, accept bool) (*model.OrgMission, error) {
	deal, err := service.getOrgDeal(dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status != model.OrgMissionStatus_Proposed {
		return nil, model.ErrDealNotPending
	}
	deal.Status = model.OrgMissionStatus_Rejected
	if accept {
		deal.Status = model.OrgMissionStatus_Accepted
	}
	if err := service.repo.Conn.Model(deal).Update("status", deal.Status).Error; err != nil {
		return nil, err
	}
	return deal, nil
}

// CancelOrgDeal terminates a deal. Cancellation only stops future
// commission generation: commissions already issued for past sales keep
// their own lifecycle.
func (service *Service) CancelOrgDeal(dealID uint64) (*model.OrgMission, error) {
	deal, err := service.getOrgDeal(dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status == model.OrgMissionStatus_Cancelled {
		return deal, nil
	}
	deal.Status = model.OrgMissionStatus_Cancelled
	if err := service.repo.Conn.Model(deal).Update("status", deal.Status).Error; err != nil {
		return nil, err
	}
	log.Info().
		Str("section", "service").
		Str("action", "CancelOrgDeal").
		Uint64("deal_id", dealID).
		Msg("Org deal cancelled")
	return deal, nil
}

// GetOrgDeal returns one deal by id
func (service *Service) GetOrgDeal(dealID uint64) (*model.OrgMission, error) {
	return service.getOrgDeal(dealID)
}

func (service *Service) getOrgDeal(dealID uint64) (*model.OrgMission, error) {
	deal := model.OrgMission{}
	if err := service.repo.ConnReader.First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownDeal
		}
		return nil, err
	}
	return &deal, nil
}
