package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/missiondax-platform/ledger_api/model"
)

type fakeDisburser struct {
	err   error
	calls []Instruction
}

func (d *fakeDisburser) Disburse(ctx context.Context, instruction Instruction) error {
	d.calls = append(d.calls, instruction)
	return d.err
}

func payoutRunRows(id uint64, sellerID uint64, period string, status model.PayoutRunStatus, asOf time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "ref_id", "seller_id", "period", "amount", "status", "as_of"}).
		AddRow(id, "run-ref", sellerID, period, 0, status, asOf)
}

func proceedCommissionRows(rows ...[2]int64) *sqlmock.Rows {
	out := sqlmock.NewRows([]string{"id", "seller_id", "amount", "status"})
	for _, row := range rows {
		out.AddRow(row[0], 10, row[1], model.CommissionStatus_Proceed)
	}
	return out
}

func TestRunPayout(t *testing.T) {
	payoutDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	Convey("Given a seller with matured commissions and a confirming rail", t, func() {
		rail := &fakeDisburser{}
		service, mock := setupService(rail)

		mock.ExpectQuery(`INSERT INTO "payout_runs"`).
			WillReturnRows(insertIDRow(7))
		mock.ExpectQuery(`SELECT (.+) FROM "commissions"`).
			WillReturnRows(proceedCommissionRows([2]int64{1, 600}, [2]int64{2, 700}))
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "commissions"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery(`SELECT coalesce`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1300))
		mock.ExpectExec(`UPDATE "payout_runs"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		Convey("It should disburse the total and complete the run", func() {
			run, err := service.RunPayout(context.TODO(), 10, payoutDate)
			So(err, ShouldBeNil)
			So(run.Status, ShouldEqual, model.PayoutRunStatus_Completed)
			So(run.Amount, ShouldEqual, 1300)

			So(len(rail.calls), ShouldEqual, 1)
			So(rail.calls[0].SellerID, ShouldEqual, 10)
			So(rail.calls[0].Amount, ShouldEqual, 1300)
			So(rail.calls[0].Period, ShouldEqual, "2026-08")
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given a rail that fails the transfer", t, func() {
		rail := &fakeDisburser{err: errors.New("rail unavailable")}
		service, mock := setupService(rail)

		mock.ExpectQuery(`INSERT INTO "payout_runs"`).
			WillReturnRows(insertIDRow(8))
		mock.ExpectQuery(`SELECT (.+) FROM "commissions"`).
			WillReturnRows(proceedCommissionRows([2]int64{1, 600}))
		mock.ExpectExec(`UPDATE "payout_runs"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		Convey("It should mark the run failed and leave the commissions untouched", func() {
			_, err := service.RunPayout(context.TODO(), 10, payoutDate)
			So(errors.Is(err, ErrPayoutDisbursement), ShouldBeTrue)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given a period that was already paid out", t, func() {
		rail := &fakeDisburser{}
		service, mock := setupService(rail)

		mock.ExpectQuery(`INSERT INTO "payout_runs"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: payoutRunPeriodConstraint})
		mock.ExpectQuery(`SELECT (.+) FROM "payout_runs"`).
			WillReturnRows(payoutRunRows(7, 10, "2026-08", model.PayoutRunStatus_Completed, payoutDate))

		Convey("A retry should be a no-op", func() {
			run, err := service.RunPayout(context.TODO(), 10, payoutDate)
			So(err, ShouldBeNil)
			So(run.Status, ShouldEqual, model.PayoutRunStatus_Completed)
			So(len(rail.calls), ShouldEqual, 0)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given a seller with nothing matured", t, func() {
		rail := &fakeDisburser{}
		service, mock := setupService(rail)

		mock.ExpectQuery(`INSERT INTO "payout_runs"`).
			WillReturnRows(insertIDRow(9))
		mock.ExpectQuery(`SELECT (.+) FROM "commissions"`).
			WillReturnRows(proceedCommissionRows())

		Convey("It should not call the rail at all", func() {
			run, err := service.RunPayout(context.TODO(), 10, payoutDate)
			So(err, ShouldBeNil)
			So(run.Status, ShouldEqual, model.PayoutRunStatus_Pending)
			So(len(rail.calls), ShouldEqual, 0)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}

func TestRunPayoutsSweep(t *testing.T) {
	payoutDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	Convey("Given no seller above the payout minimum", t, func() {
		rail := &fakeDisburser{}
		service, mock := setupService(rail)

		mock.ExpectQuery(`SELECT seller_id FROM "commissions"`).
			WillReturnRows(sqlmock.NewRows([]string{"seller_id"}))

		Convey("The sweep should do nothing", func() {
			err := service.RunPayoutsSweep(context.TODO(), payoutDate)
			So(err, ShouldBeNil)
			So(len(rail.calls), ShouldEqual, 0)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given one seller above the payout minimum", t, func() {
		rail := &fakeDisburser{}
		service, mock := setupService(rail)

		mock.ExpectQuery(`SELECT seller_id FROM "commissions"`).
			WillReturnRows(sqlmock.NewRows([]string{"seller_id"}).AddRow(10))
		mock.ExpectQuery(`INSERT INTO "payout_runs"`).
			WillReturnRows(insertIDRow(7))
		mock.ExpectQuery(`SELECT (.+) FROM "commissions"`).
			WillReturnRows(proceedCommissionRows([2]int64{1, 1200}))
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "commissions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT coalesce`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1200))
		mock.ExpectExec(`UPDATE "payout_runs"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		Convey("It should run that seller's payout", func() {
			err := service.RunPayoutsSweep(context.TODO(), payoutDate)
			So(err, ShouldBeNil)
			So(len(rail.calls), ShouldEqual, 1)
			So(rail.calls[0].Amount, ShouldEqual, 1200)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}
