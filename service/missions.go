package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/queries"
)

const enrollmentActiveConstraint = "enrollments_seller_mission_active_idx"

var ErrAlreadyEnrolled = errors.New("seller already has an active enrollment for this mission")

// CreateMission validates and persists a mission's reward configuration.
// Inconsistent configuration (generation rate ordering, negative amounts)
// is rejected here, at save time; the commission path later trusts what
// it reads but still degrades safely if a bad row slips through.
func (service *Service) CreateMission(mission *model.Mission) error {
	if err := mission.Validate(); err != nil {
		return err
	}
	if mission.HoldDays == 0 {
		mission.HoldDays = service.cfg.Ledger.DefaultHoldDays
	}
	if err := service.repo.Conn.Create(mission).Error; err != nil {
		return err
	}
	log.Info().
		Str("section", "service").
		Str("action", "CreateMission").
		Uint64("mission_id", mission.ID).
		Msg("Mission created")
	return nil
}

// UpdateMission replaces a mission's reward configuration. Rate changes
// apply to future conversions only: issued commissions froze their
// amounts at creation.
func (service *Service) UpdateMission(mission *model.Mission) error {
	if err := mission.Validate(); err != nil {
		return err
	}
	existing := model.Mission{}
	if err := service.repo.ConnReader.First(&existing, "id = ?", mission.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownMission
		}
		return err
	}
	return service.repo.Conn.Save(mission).Error
}

// GetMission returns one mission by id
func (service *Service) GetMission(missionID uint64) (*model.Mission, error) {
	mission := model.Mission{}
	if err := service.repo.ConnReader.First(&mission, "id = ?", missionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownMission
		}
		return nil, err
	}
	return &mission, nil
}

// Enroll creates the seller's enrollment in a mission. One active
// enrollment per seller and mission, arbitrated by a partial unique index.
func (service *Service) Enroll(sellerID, missionID uint64, trackRef string) (*model.Enrollment, error) {
	if _, err := service.GetSeller(sellerID); err != nil {
		return nil, err
	}
	if _, err := service.GetMission(missionID); err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		SellerID:  sellerID,
		MissionID: missionID,
		TrackRef:  trackRef,
		Status:    model.EnrollmentStatus_Active,
	}
	if err := service.repo.Conn.Create(enrollment).Error; err != nil {
		if queries.IsUniqueViolation(err, enrollmentActiveConstraint) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return enrollment, nil
}
