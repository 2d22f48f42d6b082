package service

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/missiondax-platform/ledger_api/cache/uplines"
	"gitlab.com/missiondax-platform/ledger_api/model"
)

func TestWalkReferralChain(t *testing.T) {
	Convey("Given a seller with three approved ancestors", t, func() {
		service, mock := setupService(nil)
		gen1ID, gen2ID, gen3ID := uint64(20), uint64(30), uint64(40)
		uplines.Set(10, &gen1ID)
		uplines.Set(20, &gen2ID)
		uplines.Set(30, &gen3ID)

		mock.ExpectQuery(`SELECT (.+) FROM "sellers"`).
			WillReturnRows(sellerRows(20, model.SellerStatus_Approved, &gen2ID))
		mock.ExpectQuery(`SELECT (.+) FROM "sellers"`).
			WillReturnRows(sellerRows(30, model.SellerStatus_Approved, &gen3ID))
		mock.ExpectQuery(`SELECT (.+) FROM "sellers"`).
			WillReturnRows(sellerRows(40, model.SellerStatus_Approved, nil))

		Convey("It should return all three, closest first", func() {
			chain, err := service.WalkReferralChain(10)
			So(err, ShouldBeNil)
			So(chain, ShouldResemble, model.ReferralChain{20, 30, 40})
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given an ancestor that is not approved", t, func() {
		service, mock := setupService(nil)
		gen1ID, gen2ID := uint64(60), uint64(70)
		uplines.Set(50, &gen1ID)
		uplines.Set(60, &gen2ID)

		mock.ExpectQuery(`SELECT (.+) FROM "sellers"`).
			WillReturnRows(sellerRows(60, model.SellerStatus_Approved, &gen2ID))
		mock.ExpectQuery(`SELECT (.+) FROM "sellers"`).
			WillReturnRows(sellerRows(70, model.SellerStatus_Suspended, nil))

		Convey("It should break the chain there instead of skipping over", func() {
			chain, err := service.WalkReferralChain(50)
			So(err, ShouldBeNil)
			So(chain, ShouldResemble, model.ReferralChain{60})
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given a corrupted edge forming a cycle", t, func() {
		service, mock := setupService(nil)
		a, b := uint64(80), uint64(81)
		uplines.Set(a, &b)
		uplines.Set(b, &a)

		mock.ExpectQuery(`SELECT (.+) FROM "sellers"`).
			WillReturnRows(sellerRows(81, model.SellerStatus_Approved, &a))

		Convey("It should truncate the walk instead of looping", func() {
			chain, err := service.WalkReferralChain(a)
			So(err, ShouldBeNil)
			So(chain, ShouldResemble, model.ReferralChain{81})
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given a seller without a referrer", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "sellers"`).
			WillReturnRows(sellerRows(90, model.SellerStatus_Approved, nil))

		Convey("It should read the edge once and return an empty chain", func() {
			chain, err := service.WalkReferralChain(90)
			So(err, ShouldBeNil)
			So(len(chain), ShouldEqual, 0)
			So(mock.ExpectationsWereMet(), ShouldBeNil)

			Convey("And the edge should be served from the cache afterwards", func() {
				chain, err := service.WalkReferralChain(90)
				So(err, ShouldBeNil)
				So(len(chain), ShouldEqual, 0)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})
	})
}
