package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBalance godoc
// swagger:route GET /sellers/:seller_id/balance balances getBalance
// Get Balance
//
// Returns the seller's pending/available/paid balance in cents, optionally
// scoped to one mission via the mission_id query parameter.
//
//	Responses:
//	  200: Balance
//	  404: RequestErrorResp
func (actions *Actions) GetBalance(c *gin.Context) {
	sellerID, ok := getParamAsUint64(c, "seller_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid seller id")
		return
	}

	var missionID *uint64
	if id, ok := getQueryAsUint64(c, "mission_id"); ok {
		missionID = &id
	}

	balance, err := actions.service.GetBalance(sellerID, missionID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Unable to get balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetReferralStats godoc
// swagger:route GET /sellers/:seller_id/referrals/stats referrals getReferralStats
// Get referral stats
//
// Returns the seller's referral earnings and counts per generation.
//
//	Responses:
//	  200: ReferralStats
//	  404: RequestErrorResp
func (actions *Actions) GetReferralStats(c *gin.Context) {
	sellerID, ok := getParamAsUint64(c, "seller_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid seller id")
		return
	}
	stats, err := actions.service.GetReferralStats(sellerID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Unable to get referral stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
