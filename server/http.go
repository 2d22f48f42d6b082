package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/missiondax-platform/ledger_api/actions"
	"gitlab.com/missiondax-platform/ledger_api/logger"
)

func (srv *server) setupRouter() *gin.Engine {
	a := srv.actions

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Length", "Content-Type", "Accept", "X-Api-Key", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "OPTIONS"}

	r.Use(cors.New(corsConfig))
	r.Use(gin.Recovery())
	r.Use(logger.SetLogger(logger.Config{SkipPath: []string{"/ping", "/metrics"}}))

	r.GET("/ping", actions.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// seller registry and per-seller ledger queries
	{
		r.POST("/sellers", a.CreateSeller)
		r.GET("/sellers/:seller_id", a.GetSeller)
		r.GET("/sellers/:seller_id/balance", a.GetBalance)
		r.GET("/sellers/:seller_id/commissions", a.ListCommissions)
		r.GET("/sellers/:seller_id/referrals/stats", a.GetReferralStats)
	}

	// mission reward configuration, written by the workspace admin UI
	{
		r.POST("/missions", a.CreateMission)
		r.GET("/missions/:mission_id", a.GetMission)
		r.PUT("/missions/:mission_id", a.UpdateMission)
		r.POST("/missions/:mission_id/enrollments", a.CreateEnrollment)
	}

	// org deals
	{
		r.POST("/org-deals", a.ProposeOrgDeal)
		r.POST("/org-deals/compute-split", a.ComputeDealSplit)
		r.GET("/org-deals/:deal_id", a.GetOrgDeal)
		r.PUT("/org-deals/:deal_id/accept", a.ResolveOrgDeal(true))
		r.PUT("/org-deals/:deal_id/reject", a.ResolveOrgDeal(false))
		r.PUT("/org-deals/:deal_id/cancel", a.CancelOrgDeal)
	}

	// internal surfaces for trusted collaborators
	internal := r.Group("/internal")
	{
		internal.POST("/events/conversions", a.SubmitConversionEvent)
		internal.POST("/events/reversals", a.SubmitReversal)
		internal.PUT("/sellers/:seller_id/status", a.UpdateSellerStatus)
	}

	return r
}
