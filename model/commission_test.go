package model

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommissionMaturity(t *testing.T) {
	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	commission := Commission{
		Status:    CommissionStatus_Pending,
		HoldDays:  14,
		CreatedAt: created,
	}

	Convey("It should mature exactly hold_days after creation", t, func() {
		So(commission.MaturesAt(), ShouldEqual, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	})

	Convey("It should not be mature one second before the boundary", t, func() {
		So(commission.IsMature(commission.MaturesAt().Add(-time.Second)), ShouldBeFalse)
	})

	Convey("It should be mature at and after the boundary", t, func() {
		So(commission.IsMature(commission.MaturesAt()), ShouldBeTrue)
		So(commission.IsMature(commission.MaturesAt().Add(time.Hour)), ShouldBeTrue)
	})

	Convey("A zero hold window should mature immediately", t, func() {
		instant := Commission{CreatedAt: created}
		So(instant.IsMature(created), ShouldBeTrue)
	})
}

func TestPayoutPeriod(t *testing.T) {
	Convey("It should key the period on the UTC month", t, func() {
		So(PayoutPeriod(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)), ShouldEqual, "2026-03")
	})

	Convey("A local date near midnight should resolve against UTC", t, func() {
		east := time.FixedZone("UTC+3", 3*3600)
		// 2026-04-01 01:30 +03:00 is still 2026-03-31 in UTC
		So(PayoutPeriod(time.Date(2026, 4, 1, 1, 30, 0, 0, east)), ShouldEqual, "2026-03")
	})
}
