package actions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

// CreateMission godoc
// swagger:route POST /missions missions createMission
// Create Mission
//
// Persists a mission's reward configuration. Inconsistent configuration
// is rejected here, before any commission can be issued against it.
//
//	Responses:
//	  201: Mission
//	  400: RequestErrorResp
func (actions *Actions) CreateMission(c *gin.Context) {
	mission := model.Mission{}
	if err := c.ShouldBindJSON(&mission); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mission payload")
		return
	}
	if err := actions.service.CreateMission(&mission); err != nil {
		if errors.Is(err, model.ErrGenerationRateOrder) ||
			errors.Is(err, model.ErrInvalidRewardStructure) ||
			errors.Is(err, model.ErrInvalidRewardAmount) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Unable to create mission")
		return
	}
	c.JSON(http.StatusCreated, mission)
}

// UpdateMission godoc
// swagger:route PUT /missions/:mission_id missions updateMission
// Update Mission
//
//	Responses:
//	  200: Mission
//	  400: RequestErrorResp
func (actions *Actions) UpdateMission(c *gin.Context) {
	missionID, ok := getParamAsUint64(c, "mission_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid mission id")
		return
	}
	mission := model.Mission{}
	if err := c.ShouldBindJSON(&mission); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mission payload")
		return
	}
	mission.ID = missionID
	if err := actions.service.UpdateMission(&mission); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownMission):
			abortWithError(c, http.StatusNotFound, "Mission not found")
		case errors.Is(err, model.ErrGenerationRateOrder),
			errors.Is(err, model.ErrInvalidRewardStructure),
			errors.Is(err, model.ErrInvalidRewardAmount):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Unable to update mission")
		}
		return
	}
	c.JSON(http.StatusOK, mission)
}

// GetMission godoc
// swagger:route GET /missions/:mission_id missions getMission
// Get Mission
//
//	Responses:
//	  200: Mission
//	  404: RequestErrorResp
func (actions *Actions) GetMission(c *gin.Context) {
	missionID, ok := getParamAsUint64(c, "mission_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid mission id")
		return
	}
	mission, err := actions.service.GetMission(missionID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Mission not found")
		return
	}
	c.JSON(http.StatusOK, mission)
}

type enrollRequest struct {
	SellerID uint64 `json:"seller_id"`
	TrackRef string `json:"track_ref"`
}

// CreateEnrollment godoc
// swagger:route POST /missions/:mission_id/enrollments missions createEnrollment
// Enroll a seller into a mission
//
//	Responses:
//	  201: Enrollment
//	  400: RequestErrorResp
//	  409: RequestErrorResp
func (actions *Actions) CreateEnrollment(c *gin.Context) {
	missionID, ok := getParamAsUint64(c, "mission_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid mission id")
		return
	}
	req := enrollRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid enrollment payload")
		return
	}

	enrollment, err := actions.service.Enroll(req.SellerID, missionID, req.TrackRef)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyEnrolled):
			abortWithError(c, http.StatusConflict, "Seller already enrolled")
		case errors.Is(err, service.ErrUnknownSeller), errors.Is(err, service.ErrUnknownMission):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Unable to enroll seller")
		}
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}
