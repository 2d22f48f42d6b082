package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"gitlab.com/missiondax-platform/ledger_api/config"
	"gitlab.com/missiondax-platform/ledger_api/data/conversion"
	"gitlab.com/missiondax-platform/ledger_api/net/manager"
	"gitlab.com/missiondax-platform/ledger_api/queries"
)

var (
	ErrUnknownSeller     = errors.New("seller not found")
	ErrUnknownMission    = errors.New("mission not found")
	ErrUnknownEnrollment = errors.New("enrollment not found")
	ErrUnknownDeal       = errors.New("org deal not found")
)

// Service structure
type Service struct {
	cfg  config.Config
	repo *queries.Repo
	dm   manager.DataManager
	rail Disburser
	ctx  context.Context
}

// NewService constructor
func NewService(ctx context.Context, cfg config.Config, repo *queries.Repo, dm manager.DataManager, rail Disburser) *Service {
	return &Service{
		cfg:  cfg,
		repo: repo,
		dm:   dm,
		rail: rail,
		ctx:  ctx,
	}
}

// Start subscribes the ledger to the tracking collaborator's event topics
func (service *Service) Start() {
	service.registerConversionEventsListener()
	service.registerReversalsListener()
}

func (service *Service) registerConversionEventsListener() {
	log.Info().
		Str("section", "service").
		Str("action", "registerConversionEventsListener").
		Msg("Subscribing to conversion events")
	service.dm.Subscribe("conversion_events", func(msg kafkaGo.Message) error {
		event := conversion.Event{}
		if err := event.FromBinary(msg.Value); err != nil {
			return err
		}
		_, err := service.ProcessConversionEvent(&event)
		return err
	})
}

func (service *Service) registerReversalsListener() {
	log.Info().
		Str("section", "service").
		Str("action", "registerReversalsListener").
		Msg("Subscribing to conversion reversals")
	service.dm.Subscribe("conversion_reversals", func(msg kafkaGo.Message) error {
		reversal := conversion.Reversal{}
		if err := reversal.FromBinary(msg.Value); err != nil {
			return err
		}
		_, err := service.ReverseCommissionsForEvent(reversal.ExternalID)
		return err
	})
}

// GetRepo exposes the repo for the actions layer
func (service *Service) GetRepo() *queries.Repo {
	return service.repo
}
