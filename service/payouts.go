package service

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/cache/sellerbalance"
	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/monitor"
	"gitlab.com/missiondax-platform/ledger_api/queries"
)

// ErrPayoutDisbursement wraps an external rail failure. The selected
// commissions stay PROCEED, so the run is safe to retry as a whole.
var ErrPayoutDisbursement = errors.New("payout disbursement failed")

const payoutRunPeriodConstraint = "payout_runs_seller_period_idx"

// Instruction is the payment order handed to the external rail
type Instruction struct {
	RefID    string `json:"ref_id"`
	SellerID uint64 `json:"seller_id"`
	Amount   int64  `json:"amount"`
	Period   string `json:"period"`
}

// Disburser is the external payment-rail collaborator. A call must return
// within a bounded time; on error or timeout nothing is assumed about the
// transfer and the ledger leaves every row untouched.
type Disburser interface {
	Disburse(ctx context.Context, instruction Instruction) error
}

// RunPayout pays out a seller's matured commissions for one period.
// Commissions are selected against a fixed as-of instant so rows maturing
// mid-run are deterministically excluded, and only rows whose transfer
// the rail confirmed are moved to COMPLETE. One completed run per
// (seller, period) — retries of a completed period are no-ops.
func (service *Service) RunPayout(ctx context.Context, sellerID uint64, payoutDate time.Time) (*model.PayoutRun, error) {
	period := model.PayoutPeriod(payoutDate)
	logger := log.With().
		Str("section", "service").
		Str("action", "RunPayout").
		Uint64("seller_id", sellerID).
		Str("period", period).
		Logger()

	run, err := service.ensurePayoutRun(sellerID, period, payoutDate)
	if err != nil {
		return nil, err
	}
	if run.Status == model.PayoutRunStatus_Completed {
		logger.Debug().Msg("Payout already completed for period")
		return run, nil
	}

	commissions := make([]model.Commission, 0)
	err = service.repo.ConnReader.
		Where("seller_id = ?", sellerID).
		Where("status = ?", model.CommissionStatus_Proceed).
		Where("matured_at <= ?", run.AsOf).
		Find(&commissions).Error
	if err != nil {
		return nil, err
	}
	if len(commissions) == 0 {
		logger.Debug().Msg("Nothing to pay out")
		return run, nil
	}

	ids := make([]uint64, 0, len(commissions))
	var total int64
	for i := range commissions {
		ids = append(ids, commissions[i].ID)
		total += commissions[i].Amount
	}

	timeout := time.Duration(service.cfg.Payouts.TimeoutSeconds) * time.Second
	railCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err = service.rail.Disburse(railCtx, Instruction{
		RefID:    run.RefID,
		SellerID: sellerID,
		Amount:   total,
		Period:   period,
	})
	if err != nil {
		monitor.PayoutRuns.WithLabelValues("failed").Inc()
		if dbErr := service.repo.Conn.Model(run).Update("status", model.PayoutRunStatus_Failed).Error; dbErr != nil {
			logger.Error().Err(dbErr).Msg("Unable to mark payout run failed")
		}
		logger.Error().Err(err).Int64("amount", total).Msg("Payout disbursement failed, commissions stay proceed")
		return nil, pkgerrors.Wrap(ErrPayoutDisbursement, err.Error())
	}

	// a commission reversed between selection and now must not be paid
	// state; the status guard keeps it out and the run amount is
	// recomputed from the rows actually completed
	tx := service.repo.Conn.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	res := tx.Model(&model.Commission{}).
		Where("id IN ?", ids).
		Where("status = ?", model.CommissionStatus_Proceed).
		Updates(map[string]interface{}{
			"status":        model.CommissionStatus_Complete,
			"payout_run_id": run.ID,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	var paid int64
	err = tx.Model(&model.Commission{}).
		Select("coalesce(sum(amount), 0)").
		Where("payout_run_id = ?", run.ID).
		Scan(&paid).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.Model(run).Updates(map[string]interface{}{
		"status": model.PayoutRunStatus_Completed,
		"amount": paid,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	run.Status = model.PayoutRunStatus_Completed
	run.Amount = paid
	sellerbalance.Invalidate(sellerID)
	monitor.PayoutRuns.WithLabelValues("completed").Inc()
	logger.Info().Int64("amount", paid).Int64("commissions", res.RowsAffected).Msg("Payout run completed")
	return run, nil
}

// ensurePayoutRun finds or creates the run row for a seller and period.
// The unique (seller_id, period) index arbitrates concurrent runners.
func (service *Service) ensurePayoutRun(sellerID uint64, period string, payoutDate time.Time) (*model.PayoutRun, error) {
	run := &model.PayoutRun{
		RefID:    xid.New().String(),
		SellerID: sellerID,
		Period:   period,
		Status:   model.PayoutRunStatus_Pending,
		AsOf:     time.Now(),
	}
	if payoutDate.Before(run.AsOf) {
		run.AsOf = payoutDate
	}
	err := service.repo.Conn.Create(run).Error
	if err == nil {
		return run, nil
	}
	if !queries.IsUniqueViolation(err, payoutRunPeriodConstraint) {
		return nil, err
	}
	existing := model.PayoutRun{}
	err = service.repo.ConnReader.
		First(&existing, "seller_id = ? AND period = ?", sellerID, period).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// RunPayoutsSweep runs a payout for every seller whose available balance
// reached the configured minimum. Failures are logged per seller and do
// not stop the sweep.
func (service *Service) RunPayoutsSweep(ctx context.Context, payoutDate time.Time) error {
	sellerIDs := make([]uint64, 0)
	err := service.repo.ConnReader.Model(&model.Commission{}).
		Select("seller_id").
		Where("status = ?", model.CommissionStatus_Proceed).
		Group("seller_id").
		Having("sum(amount) >= ?", service.cfg.Payouts.MinAmount).
		Find(&sellerIDs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	for _, sellerID := range sellerIDs {
		if _, err := service.RunPayout(ctx, sellerID, payoutDate); err != nil {
			log.Error().Err(err).
				Str("section", "service").
				Str("action", "RunPayoutsSweep").
				Uint64("seller_id", sellerID).
				Msg("Unable to run payout")
		}
	}
	return nil
}
