package conversion

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEventFromBinary(t *testing.T) {
	Convey("It should decode a tracking payload", t, func() {
		payload := []byte(`{"external_id":"evt-1","enrollment_id":7,"type":"sale","value":10000,"occurred_at":"2026-08-30T12:00:00Z","recurring_month":2}`)

		event := Event{}
		So(event.FromBinary(payload), ShouldBeNil)
		So(event.ExternalID, ShouldEqual, "evt-1")
		So(event.EnrollmentID, ShouldEqual, 7)
		So(event.Type, ShouldEqual, EventType_Sale)
		So(event.Value, ShouldEqual, 10000)
		So(*event.RecurringMonth, ShouldEqual, 2)
	})

	Convey("An absent recurring month should stay nil", t, func() {
		payload := []byte(`{"external_id":"evt-2","enrollment_id":7,"type":"lead","value":0,"occurred_at":"2026-08-30T12:00:00Z"}`)

		event := Event{}
		So(event.FromBinary(payload), ShouldBeNil)
		So(event.RecurringMonth, ShouldBeNil)
	})

	Convey("A malformed payload should fail to decode", t, func() {
		event := Event{}
		So(event.FromBinary([]byte(`{"external_id":`)), ShouldNotBeNil)
	})
}
