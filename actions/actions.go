package actions

import (
	"gitlab.com/missiondax-platform/ledger_api/config"
	"gitlab.com/missiondax-platform/ledger_api/service"
)

// Actions holds the http handlers and their collaborators
type Actions struct {
	cfg     config.Config
	service *service.Service
}

// NewActions constructor
func NewActions(cfg config.Config, svc *service.Service) *Actions {
	return &Actions{
		cfg:     cfg,
		service: svc,
	}
}
