package actions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

type orgDealRequest struct {
	MissionID    uint64 `json:"mission_id"`
	OrgID        uint64 `json:"org_id"`
	TotalReward  string `json:"total_reward"`
	LeaderReward string `json:"leader_reward"`
	MemberReward string `json:"member_reward"`
}

func (req *orgDealRequest) rewards() (total, leader, member model.RewardAmount, err error) {
	total, err = model.ParseRewardAmount(req.TotalReward)
	if err != nil {
		return
	}
	leader, err = model.ParseRewardAmount(req.LeaderReward)
	if err != nil {
		return
	}
	member = model.RewardAmount{Structure: total.Structure}
	if req.MemberReward != "" {
		member, err = model.ParseRewardAmount(req.MemberReward)
	}
	return
}

func dealValidationStatus(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, model.ErrDealRewardTooLow),
		errors.Is(err, model.ErrDealSharesExceedTotal),
		errors.Is(err, model.ErrDealStructureMismatch),
		errors.Is(err, model.ErrInvalidRewardAmount),
		errors.Is(err, model.ErrInvalidRewardStructure):
		abortWithError(c, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

// ProposeOrgDeal godoc
// swagger:route POST /org-deals orgdeals proposeOrgDeal
// Propose org deal
//
// Validates the reward split and creates the deal in PROPOSED state.
// Returns the deal together with its computed split.
//
//	Responses:
//	  201: OrgMission
//	  400: RequestErrorResp
func (actions *Actions) ProposeOrgDeal(c *gin.Context) {
	req := orgDealRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid deal payload")
		return
	}
	total, leader, member, err := req.rewards()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid reward amount")
		return
	}

	deal, err := actions.service.ProposeOrgDeal(req.MissionID, req.OrgID, total, leader, member)
	if err != nil {
		if dealValidationStatus(c, err) {
			return
		}
		if errors.Is(err, service.ErrUnknownMission) {
			abortWithError(c, http.StatusNotFound, "Mission not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Unable to propose deal")
		return
	}
	c.JSON(http.StatusCreated, deal)
}

// ComputeDealSplit godoc
// swagger:route POST /org-deals/compute-split orgdeals computeDealSplit
// Compute deal split
//
// Pure computation of the platform/leader/member division, without
// persisting anything.
//
//	Responses:
//	  200: DealSplit
//	  400: RequestErrorResp
func (actions *Actions) ComputeDealSplit(c *gin.Context) {
	req := orgDealRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid deal payload")
		return
	}
	total, leader, member, err := req.rewards()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid reward amount")
		return
	}

	split, err := service.ComputeDealSplit(total, leader, member)
	if err != nil {
		if dealValidationStatus(c, err) {
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Unable to compute split")
		return
	}
	c.JSON(http.StatusOK, split)
}

// ResolveOrgDeal godoc
// swagger:route PUT /org-deals/:deal_id/accept orgdeals resolveOrgDeal
// Accept or reject a proposed deal
//
//	Responses:
//	  200: OrgMission
//	  400: RequestErrorResp
//	  404: RequestErrorResp
func (actions *Actions) ResolveOrgDeal(accept bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		dealID, ok := getParamAsUint64(c, "deal_id")
		if !ok {
			abortWithError(c, http.StatusBadRequest, "Invalid deal id")
			return
		}
		deal, err := actions.service.ResolveOrgDeal(dealID, accept)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnknownDeal):
				abortWithError(c, http.StatusNotFound, "Deal not found")
			case errors.Is(err, model.ErrDealNotPending):
				abortWithError(c, http.StatusBadRequest, "Deal is not proposed")
			default:
				abortWithError(c, http.StatusInternalServerError, "Unable to resolve deal")
			}
			return
		}
		c.JSON(http.StatusOK, deal)
	}
}

// CancelOrgDeal godoc
// swagger:route PUT /org-deals/:deal_id/cancel orgdeals cancelOrgDeal
// Cancel a deal
//
// Terminal. Stops future commission generation for the deal without
// touching commissions already issued.
//
//	Responses:
//	  200: OrgMission
//	  404: RequestErrorResp
func (actions *Actions) CancelOrgDeal(c *gin.Context) {
	dealID, ok := getParamAsUint64(c, "deal_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid deal id")
		return
	}
	deal, err := actions.service.CancelOrgDeal(dealID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDeal) {
			abortWithError(c, http.StatusNotFound, "Deal not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Unable to cancel deal")
		return
	}
	c.JSON(http.StatusOK, deal)
}

// GetOrgDeal godoc
// swagger:route GET /org-deals/:deal_id orgdeals getOrgDeal
// Get org deal
//
//	Responses:
//	  200: OrgMission
//	  404: RequestErrorResp
func (actions *Actions) GetOrgDeal(c *gin.Context) {
	dealID, ok := getParamAsUint64(c, "deal_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid deal id")
		return
	}
	deal, err := actions.service.GetOrgDeal(dealID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Deal not found")
		return
	}
	c.JSON(http.StatusOK, deal)
}
