package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/missiondax-platform/ledger_api/cache/sellerbalance"
	"gitlab.com/missiondax-platform/ledger_api/model"
)

func TestMatureCommissions(t *testing.T) {
	Convey("Given pending commissions whose hold window elapsed", t, func() {
		service, mock := setupService(nil)
		sellerbalance.Set(10, model.Balance{Pending: 500})

		mock.ExpectExec(`UPDATE "commissions"`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		Convey("It should move them to proceed and flush cached balances", func() {
			matured, err := service.MatureCommissions(time.Now())
			So(err, ShouldBeNil)
			So(matured, ShouldEqual, 3)

			_, cached := sellerbalance.Get(10)
			So(cached, ShouldBeFalse)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given no commissions ready to mature", t, func() {
		service, mock := setupService(nil)
		sellerbalance.Set(10, model.Balance{Pending: 500})

		mock.ExpectExec(`UPDATE "commissions"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		Convey("It should be a no-op that keeps the cache", func() {
			matured, err := service.MatureCommissions(time.Now())
			So(err, ShouldBeNil)
			So(matured, ShouldEqual, 0)

			_, cached := sellerbalance.Get(10)
			So(cached, ShouldBeTrue)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}

func TestReverseCommissionsForEvent(t *testing.T) {
	Convey("Given an event with pending and proceed commissions", t, func() {
		service, mock := setupService(nil)
		sellerbalance.Set(10, model.Balance{Pending: 1000})
		sellerbalance.Set(20, model.Balance{Available: 500})

		mock.ExpectQuery(`SELECT (.+) FROM "commissions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id"}).
				AddRow(1, 10).
				AddRow(2, 20))
		mock.ExpectExec(`UPDATE "commissions"`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		Convey("It should reverse them and invalidate the affected sellers", func() {
			reversed, err := service.ReverseCommissionsForEvent("evt-r1")
			So(err, ShouldBeNil)
			So(reversed, ShouldEqual, 2)

			_, cached := sellerbalance.Get(10)
			So(cached, ShouldBeFalse)
			_, cached = sellerbalance.Get(20)
			So(cached, ShouldBeFalse)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given an event with nothing left to reverse", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "commissions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id"}))

		Convey("A replay should be a no-op", func() {
			reversed, err := service.ReverseCommissionsForEvent("evt-r1")
			So(err, ShouldBeNil)
			So(reversed, ShouldEqual, 0)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}
