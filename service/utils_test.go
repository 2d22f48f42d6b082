package service

import (
	"context"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/cache/sellerbalance"
	"gitlab.com/missiondax-platform/ledger_api/cache/uplines"
	"gitlab.com/missiondax-platform/ledger_api/config"
	"gitlab.com/missiondax-platform/ledger_api/model"
	"gitlab.com/missiondax-platform/ledger_api/net/manager"
	"gitlab.com/missiondax-platform/ledger_api/queries"
)

func setupDB() (*gorm.DB, sqlmock.Sqlmock) {
	logger := log.With().Str("test", "service").Str("method", "setupDB").Logger()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		logger.Fatal().Msgf("can't create sqlmock: %s", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "postgres-mock",
		DriverName:           "postgres",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		logger.Fatal().Msgf("can't open gorm connection: %s", err)
	}

	return db, mock
}

func setupRepo() (*queries.Repo, sqlmock.Sqlmock) {
	db, mock := setupDB()
	return &queries.Repo{
		Conn:       db,
		ConnReader: db,
	}, mock
}

func setupService(rail Disburser) (*Service, sqlmock.Sqlmock) {
	sellerbalance.Flush()
	uplines.Flush()
	repo, mock := setupRepo()
	cfg := config.Config{
		Ledger: config.LedgerConfig{DefaultHoldDays: 14},
		Payouts: config.PayoutsConfig{
			MinAmount:      1000,
			TimeoutSeconds: 5,
		},
	}
	return NewService(context.TODO(), cfg, repo, manager.NewMockDataManager(), rail), mock
}

func getTestMission(id uint64) *model.Mission {
	months := 3
	gen1 := int64(500)
	gen2 := int64(300)
	gen3 := int64(200)
	return &model.Mission{
		ID:                      id,
		Name:                    "test mission",
		SaleEnabled:             true,
		SaleAmount:              1000,
		SaleStructure:           model.RewardStructure_Percentage,
		LeadEnabled:             true,
		LeadAmount:              250,
		LeadStructure:           model.RewardStructure_Flat,
		RecurringEnabled:        true,
		RecurringAmount:         500,
		RecurringStructure:      model.RewardStructure_Percentage,
		RecurringDurationMonths: &months,
		ReferralEnabled:         true,
		Gen1Rate:                &gen1,
		Gen2Rate:                &gen2,
		Gen3Rate:                &gen3,
		HoldDays:                14,
	}
}

func missionRows(m *model.Mission) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "workspace_id", "name",
		"sale_enabled", "sale_amount", "sale_structure",
		"lead_enabled", "lead_amount", "lead_structure",
		"recurring_enabled", "recurring_amount", "recurring_structure", "recurring_duration_months",
		"referral_enabled", "gen1_rate", "gen2_rate", "gen3_rate",
		"hold_days",
	}).AddRow(
		m.ID, m.WorkspaceID, m.Name,
		m.SaleEnabled, m.SaleAmount, m.SaleStructure,
		m.LeadEnabled, m.LeadAmount, m.LeadStructure,
		m.RecurringEnabled, m.RecurringAmount, m.RecurringStructure, m.RecurringDurationMonths,
		m.ReferralEnabled, m.Gen1Rate, m.Gen2Rate, m.Gen3Rate,
		m.HoldDays,
	)
}

func enrollmentRows(id, sellerID, missionID uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "seller_id", "mission_id", "track_ref", "status"}).
		AddRow(id, sellerID, missionID, "trk", model.EnrollmentStatus_Active)
}

func sellerRows(id uint64, status model.SellerStatus, referrerID *uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "status", "referrer_id"}).
		AddRow(id, status, referrerID)
}

func emptySellerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "status", "referrer_id"})
}

func emptyEnrollmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "seller_id", "mission_id", "track_ref", "status"})
}

func commissionHistoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "seller_id", "source", "generation", "amount", "status"}).
		AddRow(2, 10, model.CommissionSource_Sale, 0, 1000, model.CommissionStatus_Pending).
		AddRow(1, 10, model.CommissionSource_Referral, 1, 500, model.CommissionStatus_Pending)
}

func insertIDRow(id uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

func countRow(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}
