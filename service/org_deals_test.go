package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/missiondax-platform/ledger_api/model"
)

func percent(points int64) model.RewardAmount {
	return model.RewardAmount{Structure: model.RewardStructure_Percentage, Value: points * 100}
}

func flat(cents int64) model.RewardAmount {
	return model.RewardAmount{Structure: model.RewardStructure_Flat, Value: cents}
}

func TestComputeDealSplit(t *testing.T) {
	Convey("Given a 20% deal with a 3% leader share", t, func() {
		Convey("The member share should default to the remainder", func() {
			split, err := ComputeDealSplit(percent(20), percent(3), percent(0))
			So(err, ShouldBeNil)
			So(split, ShouldResemble, model.DealSplit{
				PlatformCut: 1500,
				LeaderShare: 300,
				MemberShare: 200,
			})
		})

		Convey("An explicit member share should be kept when it fits", func() {
			split, err := ComputeDealSplit(percent(20), percent(3), percent(1))
			So(err, ShouldBeNil)
			So(split.MemberShare, ShouldEqual, 100)
		})
	})

	Convey("Given a flat deal", t, func() {
		Convey("The platform should take 15% of the total", func() {
			split, err := ComputeDealSplit(flat(10000), flat(5000), flat(0))
			So(err, ShouldBeNil)
			So(split, ShouldResemble, model.DealSplit{
				PlatformCut: 1500,
				LeaderShare: 5000,
				MemberShare: 3500,
			})
		})
	})

	Convey("A percentage total at or below the platform cut should be rejected", t, func() {
		_, err := ComputeDealSplit(percent(15), percent(0), percent(0))
		So(err, ShouldEqual, model.ErrDealRewardTooLow)

		_, err = ComputeDealSplit(percent(10), percent(0), percent(0))
		So(err, ShouldEqual, model.ErrDealRewardTooLow)
	})

	Convey("Shares exceeding the distributable remainder should be rejected", t, func() {
		_, err := ComputeDealSplit(percent(20), percent(4), percent(2))
		So(err, ShouldEqual, model.ErrDealSharesExceedTotal)
	})

	Convey("Mixed structures should be rejected", t, func() {
		_, err := ComputeDealSplit(percent(20), flat(300), percent(0))
		So(err, ShouldEqual, model.ErrDealStructureMismatch)
	})
}

func TestSplitDealForSale(t *testing.T) {
	Convey("Given an accepted 20%/3%/2% percentage deal", t, func() {
		deal := &model.OrgMission{
			Structure:    model.RewardStructure_Percentage,
			TotalReward:  2000,
			LeaderReward: 300,
			MemberReward: 200,
		}

		Convey("A 100€ sale should split into absolute cents", func() {
			split, err := SplitDealForSale(deal, 10000)
			So(err, ShouldBeNil)
			So(split, ShouldResemble, model.DealSplit{
				PlatformCut: 1500,
				LeaderShare: 300,
				MemberShare: 200,
			})
		})
	})

	Convey("A flat deal should pass through regardless of the sale value", t, func() {
		deal := &model.OrgMission{
			Structure:    model.RewardStructure_Flat,
			TotalReward:  10000,
			LeaderReward: 5000,
			MemberReward: 3500,
		}
		split, err := SplitDealForSale(deal, 777)
		So(err, ShouldBeNil)
		So(split, ShouldResemble, model.DealSplit{
			PlatformCut: 1500,
			LeaderShare: 5000,
			MemberShare: 3500,
		})
	})
}

func TestProposeOrgDeal(t *testing.T) {
	Convey("Given a valid deal on an existing mission", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "missions"`).
			WillReturnRows(missionRows(getTestMission(5)))
		mock.ExpectQuery(`INSERT INTO "org_missions"`).
			WillReturnRows(insertIDRow(1))

		Convey("It should persist the deal in proposed state", func() {
			deal, err := service.ProposeOrgDeal(5, 7, percent(20), percent(3), percent(0))
			So(err, ShouldBeNil)
			So(deal.Status, ShouldEqual, model.OrgMissionStatus_Proposed)
			So(deal.LeaderReward, ShouldEqual, 300)
			So(deal.MemberReward, ShouldEqual, 200)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given an invalid split", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "missions"`).
			WillReturnRows(missionRows(getTestMission(5)))

		Convey("It should reject without writing anything", func() {
			_, err := service.ProposeOrgDeal(5, 7, percent(15), percent(0), percent(0))
			So(err, ShouldEqual, model.ErrDealRewardTooLow)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}

func TestResolveOrgDeal(t *testing.T) {
	dealRows := func(status model.OrgMissionStatus) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "mission_id", "org_id", "structure", "total_reward", "leader_reward", "member_reward", "status"}).
			AddRow(3, 5, 7, model.RewardStructure_Percentage, 2000, 300, 200, status)
	}

	Convey("Given a proposed deal", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "org_missions"`).
			WillReturnRows(dealRows(model.OrgMissionStatus_Proposed))
		mock.ExpectExec(`UPDATE "org_missions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		Convey("Accepting it should move it to accepted", func() {
			deal, err := service.ResolveOrgDeal(3, true)
			So(err, ShouldBeNil)
			So(deal.Status, ShouldEqual, model.OrgMissionStatus_Accepted)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given a deal that already left the proposed state", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "org_missions"`).
			WillReturnRows(dealRows(model.OrgMissionStatus_Accepted))

		Convey("Resolving it again should fail without an update", func() {
			_, err := service.ResolveOrgDeal(3, false)
			So(err, ShouldEqual, model.ErrDealNotPending)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}

func TestCancelOrgDeal(t *testing.T) {
	dealColumns := []string{"id", "status"}

	Convey("Given an accepted deal", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "org_missions"`).
			WillReturnRows(sqlmock.NewRows(dealColumns).AddRow(3, model.OrgMissionStatus_Accepted))
		mock.ExpectExec(`UPDATE "org_missions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		Convey("Cancelling should be terminal", func() {
			deal, err := service.CancelOrgDeal(3)
			So(err, ShouldBeNil)
			So(deal.Status, ShouldEqual, model.OrgMissionStatus_Cancelled)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})

	Convey("Given an already cancelled deal", t, func() {
		service, mock := setupService(nil)

		mock.ExpectQuery(`SELECT (.+) FROM "org_missions"`).
			WillReturnRows(sqlmock.NewRows(dealColumns).AddRow(3, model.OrgMissionStatus_Cancelled))

		Convey("Cancelling again should be a no-op", func() {
			deal, err := service.CancelOrgDeal(3)
			So(err, ShouldBeNil)
			So(deal.Status, ShouldEqual, model.OrgMissionStatus_Cancelled)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}
