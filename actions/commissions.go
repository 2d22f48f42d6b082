package actions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/missiondax-platform/ledger_api/data/conversion"
	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

// ListCommissions godoc
// swagger:route GET /sellers/:seller_id/commissions commissions listCommissions
// List commissions
//
// Returns a seller's commission history, newest first, filterable by
// status, source and mission.
//
//	Responses:
//	  200: CommissionList
//	  404: RequestErrorResp
func (actions *Actions) ListCommissions(c *gin.Context) {
	sellerID, ok := getParamAsUint64(c, "seller_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid seller id")
		return
	}

	filters := service.CommissionFilters{
		Status: model.CommissionStatus(c.Query("status")),
		Source: model.CommissionSource(c.Query("source")),
		Page:   getQueryAsInt(c, "page", 1),
		Limit:  getQueryAsInt(c, "limit", 50),
	}
	if missionID, ok := getQueryAsUint64(c, "mission_id"); ok {
		filters.MissionID = missionID
	}

	list, err := actions.service.ListCommissions(sellerID, filters)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Unable to get commissions")
		return
	}
	c.JSON(http.StatusOK, list)
}

// SubmitConversionEvent godoc
// swagger:route POST /internal/events/conversions events submitConversionEvent
// Submit conversion event
//
// Synchronous intake for the tracking collaborator, used next to the
// kafka topic for backfills and testing. Replays of an already-processed
// external id succeed with an empty batch.
//
//	Responses:
//	  200: CommissionList
//	  400: RequestErrorResp
//	  404: RequestErrorResp
func (actions *Actions) SubmitConversionEvent(c *gin.Context) {
	event := conversion.Event{}
	if err := c.ShouldBindJSON(&event); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid conversion event")
		return
	}
	if event.ExternalID == "" {
		abortWithError(c, http.StatusBadRequest, "Missing external id")
		return
	}

	commissions, err := actions.service.ProcessConversionEvent(&event)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEnrollment) || errors.Is(err, service.ErrUnknownMission) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Unable to process conversion event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": commissions})
}

// SubmitReversal godoc
// swagger:route POST /internal/events/reversals events submitReversal
// Submit reversal
//
// Dispute/refund hook: reverses every pending or matured commission of
// the original event. Idempotent.
//
//	Responses:
//	  200: ReversalResp
//	  400: RequestErrorResp
func (actions *Actions) SubmitReversal(c *gin.Context) {
	reversal := conversion.Reversal{}
	if err := c.ShouldBindJSON(&reversal); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid reversal")
		return
	}
	if reversal.ExternalID == "" {
		abortWithError(c, http.StatusBadRequest, "Missing external id")
		return
	}

	reversed, err := actions.service.ReverseCommissionsForEvent(reversal.ExternalID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Unable to reverse commissions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reversed": reversed})
}
