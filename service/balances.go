package service

import (
	"gitlab.com/missiondax-platform/ledger_api/cache/sellerbalance"
	"gitlab.com/missiondax-platform/ledger_api/model"
)

type balanceRow struct {
	Status model.CommissionStatus `gorm:"column:status"`
	Total  int64                  `gorm:"column:total"`
}

// GetBalance aggregates a seller's commissions by status into the
// pending/available/paid projection, excluding reversed rows. Whole-seller
// balances are served from the in-process cache, which every commission
// state change invalidates; mission-filtered balances are always computed
// live.
func (service *Service) GetBalance(sellerID uint64, missionID *uint64) (model.Balance, error) {
	if missionID == nil {
		if balance, ok := sellerbalance.Get(sellerID); ok {
			return balance, nil
		}
	}

	rows := make([]balanceRow, 0, 3)
	q := service.repo.ConnReader.Model(&model.Commission{}).
		Select("status, coalesce(sum(amount), 0) as total").
		Where("seller_id = ?", sellerID).
		Where("status <> ?", model.CommissionStatus_Reversed).
		Group("status")
	if missionID != nil {
		q = q.Where("mission_id = ?", *missionID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return model.Balance{}, err
	}

	balance := model.Balance{}
	for _, row := range rows {
		switch row.Status {
		case model.CommissionStatus_Pending:
			balance.Pending = row.Total
		case model.CommissionStatus_Proceed:
			balance.Available = row.Total
		case model.CommissionStatus_Complete:
			balance.Paid = row.Total
		}
	}

	if missionID == nil {
		sellerbalance.Set(sellerID, balance)
	}
	return balance, nil
}

type referralStatsRow struct {
	Generation int   `gorm:"column:generation"`
	Amount     int64 `gorm:"column:amount"`
	Count      int64 `gorm:"column:count"`
}

// GetReferralStats returns a seller's referral earnings and counts broken
// down by generation
func (service *Service) GetReferralStats(sellerID uint64) (*model.ReferralStats, error) {
	rows := make([]referralStatsRow, 0, model.MaxReferralGenerations)
	err := service.repo.ConnReader.Model(&model.Commission{}).
		Select("generation, coalesce(sum(amount), 0) as amount, count(*) as count").
		Where("seller_id = ?", sellerID).
		Where("source = ?", model.CommissionSource_Referral).
		Where("status <> ?", model.CommissionStatus_Reversed).
		Group("generation").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := model.ReferralStats{
		Gen1: model.ReferralGenerationStats{Generation: 1},
		Gen2: model.ReferralGenerationStats{Generation: 2},
		Gen3: model.ReferralGenerationStats{Generation: 3},
	}
	for _, row := range rows {
		entry := model.ReferralGenerationStats{
			Generation: row.Generation,
			Amount:     row.Amount,
			Count:      row.Count,
		}
		switch row.Generation {
		case 1:
			stats.Gen1 = entry
		case 2:
			stats.Gen2 = entry
		case 3:
			stats.Gen3 = entry
		}
	}
	return &stats, nil
}
