package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/cache/sellerbalance"
	"gitlab.com/missiondax-platform/ledger_api/data/conversion"
	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/monitor"
	"gitlab.com/missiondax-platform/ledger_api/queries"
)

// commissionEventConstraint is the unique index on
// (source_event_id, seller_id, generation) that makes event replay safe
const commissionEventConstraint = "commissions_event_seller_generation_idx"

// ProcessConversionEvent turns one conversion event into the full batch of
// commission rows: the direct commission for the enrolled seller plus up
// to three referral commissions for its upline. The batch is inserted in
// one transaction; replaying an already-processed event returns an empty
// batch, enforced by the unique constraint rather than the pre-check
// alone so concurrent retries stay safe.
func (service *Service) ProcessConversionEvent(event *conversion.Event) ([]model.Commission, error) {
	logger := log.With().
		Str("section", "service").
		Str("action", "ProcessConversionEvent").
		Str("external_id", event.ExternalID).
		Logger()

	monitor.ConversionEvents.WithLabelValues(string(event.Type)).Inc()
	if event.Type == conversion.EventType_Click {
		// clicks are countable but never produce commissions
		return nil, nil
	}

	enrollment := model.Enrollment{}
	err := service.repo.ConnReader.First(&enrollment, "id = ? AND status = ?", event.EnrollmentID, model.EnrollmentStatus_Active).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Uint64("enrollment_id", event.EnrollmentID).Msg("Event references an unknown enrollment")
			return nil, ErrUnknownEnrollment
		}
		return nil, err
	}

	mission := model.Mission{}
	if err := service.repo.ConnReader.First(&mission, "id = ?", enrollment.MissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownMission
		}
		return nil, err
	}

	// fast path for replays; the unique constraint below is the real guard
	var existing int64
	if err := service.repo.ConnReader.Model(&model.Commission{}).
		Where("source_event_id = ?", event.ExternalID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		logger.Debug().Msg("Event already processed")
		return nil, nil
	}

	batch, err := service.buildCommissionBatch(event, &enrollment, &mission)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}

	tx := service.repo.Conn.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	for i := range batch {
		if err := tx.Create(&batch[i]).Error; err != nil {
			tx.Rollback()
			if queries.IsUniqueViolation(err, commissionEventConstraint) {
				// a concurrent retry won the race; this one is done
				logger.Debug().Msg("Event processed concurrently")
				return nil, nil
			}
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	for i := range batch {
		sellerbalance.Invalidate(batch[i].SellerID)
		monitor.CommissionsCreated.WithLabelValues(string(batch[i].Source)).Inc()
	}
	logger.Info().Int("commissions", len(batch)).Msg("Conversion event processed")
	return batch, nil
}

// buildCommissionBatch computes the rows for one event without touching
// the write connection
func (service *Service) buildCommissionBatch(event *conversion.Event, enrollment *model.Enrollment, mission *model.Mission) ([]model.Commission, error) {
	source, ok := commissionSourceFor(event)
	if !ok {
		return nil, nil
	}

	rule := mission.RuleFor(source)
	if !rule.Enabled {
		return nil, nil
	}
	if source == model.CommissionSource_Recurring &&
		rule.DurationMonths != nil && event.RecurringMonth != nil &&
		*event.RecurringMonth > *rule.DurationMonths {
		// the recurring window is over; renewals past it earn nothing
		return nil, nil
	}

	holdDays := mission.HoldDays
	if holdDays == 0 {
		holdDays = service.cfg.Ledger.DefaultHoldDays
	}

	batch := []model.Commission{{
		SellerID:      enrollment.SellerID,
		MissionID:     mission.ID,
		EnrollmentID:  enrollment.ID,
		Source:        source,
		Generation:    0,
		Amount:        rule.Amount.ResolveAgainst(event.Value),
		Rate:          rule.Amount.Value,
		Structure:     rule.Amount.Structure,
		Status:        model.CommissionStatus_Pending,
		HoldDays:      holdDays,
		SourceEventID: event.ExternalID,
	}}

	// referral credit propagates on acquisition sales only, not on leads
	// or recurring renewals
	if source != model.CommissionSource_Sale || !mission.ReferralEnabled {
		return batch, nil
	}

	chain, err := service.WalkReferralChain(enrollment.SellerID)
	if err != nil {
		return nil, err
	}
	for i, ancestorID := range chain {
		generation := i + 1
		rate := mission.GenerationRate(generation)
		if rate == nil {
			// chain stops at the first generation without a rate
			break
		}
		batch = append(batch, model.Commission{
			SellerID:      ancestorID,
			MissionID:     mission.ID,
			EnrollmentID:  enrollment.ID,
			Source:        model.CommissionSource_Referral,
			Generation:    generation,
			Amount:        model.ApplyBasisPoints(event.Value, *rate),
			Rate:          *rate,
			Structure:     model.RewardStructure_Percentage,
			Status:        model.CommissionStatus_Pending,
			HoldDays:      holdDays,
			SourceEventID: event.ExternalID,
		})
	}
	return batch, nil
}

// commissionSourceFor maps an event to its commission source. A sale with
// a recurring month set is a renewal and uses the recurring rule.
func commissionSourceFor(event *conversion.Event) (model.CommissionSource, bool) {
	switch event.Type {
	case conversion.EventType_Sale:
		if event.RecurringMonth != nil {
			return model.CommissionSource_Recurring, true
		}
		return model.CommissionSource_Sale, true
	case conversion.EventType_Lead:
		return model.CommissionSource_Lead, true
	}
	return "", false
}

// CommissionFilters narrows a commission history query
type CommissionFilters struct {
	Status    model.CommissionStatus
	Source    model.CommissionSource
	MissionID uint64
	Page      int
	Limit     int
}

// ListCommissions returns a seller's commission history, newest first
func (service *Service) ListCommissions(sellerID uint64, filters CommissionFilters) (*model.CommissionList, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 50
	}

	q := service.repo.ConnReader.Model(&model.Commission{}).Where("seller_id = ?", sellerID)
	appliedFilters := map[string]interface{}{}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
		appliedFilters["status"] = filters.Status
	}
	if filters.Source != "" {
		q = q.Where("source = ?", filters.Source)
		appliedFilters["source"] = filters.Source
	}
	if filters.MissionID != 0 {
		q = q.Where("mission_id = ?", filters.MissionID)
		appliedFilters["mission_id"] = filters.MissionID
	}

	var rowCount int64
	if err := q.Count(&rowCount).Error; err != nil {
		return nil, err
	}

	commissions := make([]model.Commission, 0)
	err := q.Order("created_at DESC").
		Limit(filters.Limit).
		Offset((filters.Page - 1) * filters.Limit).
		Find(&commissions).Error
	if err != nil {
		return nil, err
	}

	return &model.CommissionList{
		Commissions: commissions,
		Meta: model.PagingMeta{
			Page:   filters.Page,
			Count:  rowCount,
			Limit:  filters.Limit,
			Filter: appliedFilters,
		},
	}, nil
}
