package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/missiondax-platform/ledger_api/cache/sellerbalance"
	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/monitor"
)

// MatureCommissions advances every PENDING commission whose hold window
// has elapsed to PROCEED. The sweep is idempotent: the status filter makes
// a second run over the same rows a no-op, so it can run on any schedule.
func (service *Service) MatureCommissions(now time.Time) (int64, error) {
	res := service.repo.Conn.Model(&model.Commission{}).
		Where("status = ?", model.CommissionStatus_Pending).
		Where("created_at + make_interval(days => hold_days) <= ?", now).
		Updates(map[string]interface{}{
			"status":     model.CommissionStatus_Proceed,
			"matured_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		// the sweep touches an unbounded seller set
		sellerbalance.Flush()
		monitor.CommissionsMatured.Add(float64(res.RowsAffected))
		log.Info().
			Str("section", "service").
			Str("action", "MatureCommissions").
			Int64("matured", res.RowsAffected).
			Msg("Commissions matured")
	}
	return res.RowsAffected, nil
}

// ReverseCommissionsForEvent marks every PENDING or PROCEED commission of
// the given source event REVERSED. COMPLETE rows are left untouched: once
// paid out, clawback is an external process. Rows are never deleted, the
// reversed state keeps them auditable while excluding them from every
// balance. Replays are no-ops.
func (service *Service) ReverseCommissionsForEvent(externalID string) (int64, error) {
	affected := make([]model.Commission, 0)
	err := service.repo.ConnReader.
		Select("id", "seller_id").
		Where("source_event_id = ?", externalID).
		Where("status IN ?", []model.CommissionStatus{model.CommissionStatus_Pending, model.CommissionStatus_Proceed}).
		Find(&affected).Error
	if err != nil {
		return 0, err
	}
	if len(affected) == 0 {
		return 0, nil
	}

	res := service.repo.Conn.Model(&model.Commission{}).
		Where("source_event_id = ?", externalID).
		Where("status IN ?", []model.CommissionStatus{model.CommissionStatus_Pending, model.CommissionStatus_Proceed}).
		Update("status", model.CommissionStatus_Reversed)
	if res.Error != nil {
		return 0, res.Error
	}

	for i := range affected {
		sellerbalance.Invalidate(affected[i].SellerID)
	}
	monitor.CommissionsReversed.Add(float64(res.RowsAffected))
	log.Info().
		Str("section", "service").
		Str("action", "ReverseCommissionsForEvent").
		Str("external_id", externalID).
		Int64("reversed", res.RowsAffected).
		Msg("Commissions reversed")
	return res.RowsAffected, nil
}
