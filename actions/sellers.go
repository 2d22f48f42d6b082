package actions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

type createSellerRequest struct {
	ReferrerID *uint64 `json:"referrer_id"`
}

// CreateSeller godoc
// swagger:route POST /sellers sellers createSeller
// Create Seller
//
// Registers a seller, optionally attached to its referrer. The referral
// edge is immutable once set.
//
//	Responses:
//	  201: Seller
//	  400: RequestErrorResp
func (actions *Actions) CreateSeller(c *gin.Context) {
	req := createSellerRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid seller payload")
		return
	}

	seller, err := actions.service.CreateSeller(req.ReferrerID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSeller) {
			abortWithError(c, http.StatusBadRequest, "Referrer not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Unable to create seller")
		return
	}
	c.JSON(http.StatusCreated, seller)
}

// GetSeller godoc
// swagger:route GET /sellers/:seller_id sellers getSeller
// Get Seller
//
//	Responses:
//	  200: Seller
//	  404: RequestErrorResp
func (actions *Actions) GetSeller(c *gin.Context) {
	sellerID, ok := getParamAsUint64(c, "seller_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid seller id")
		return
	}
	seller, err := actions.service.GetSeller(sellerID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Seller not found")
		return
	}
	c.JSON(http.StatusOK, seller)
}

type sellerStatusRequest struct {
	Status model.SellerStatus `json:"status"`
}

// UpdateSellerStatus godoc
// swagger:route PUT /internal/sellers/:seller_id/status sellers updateSellerStatus
// Update seller status
//
//	Responses:
//	  200: Seller
//	  400: RequestErrorResp
func (actions *Actions) UpdateSellerStatus(c *gin.Context) {
	sellerID, ok := getParamAsUint64(c, "seller_id")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid seller id")
		return
	}
	req := sellerStatusRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid status payload")
		return
	}
	switch req.Status {
	case model.SellerStatus_Pending, model.SellerStatus_Approved, model.SellerStatus_Suspended:
	default:
		abortWithError(c, http.StatusBadRequest, "Invalid seller status")
		return
	}

	seller, err := actions.service.UpdateSellerStatus(sellerID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSeller) {
			abortWithError(c, http.StatusNotFound, "Seller not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Unable to update seller status")
		return
	}
	c.JSON(http.StatusOK, seller)
}
