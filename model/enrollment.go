package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentStatus_Active  EnrollmentStatus = "active"
	EnrollmentStatus_Revoked EnrollmentStatus = "revoked"
)

// Enrollment ties a seller to a mission. The tracking collaborator resolves
// its short links back to an enrollment id, which is how external conversion
// events find their (seller, mission) pair. One active enrollment per
// seller and mission, enforced by a partial unique index.
type Enrollment struct {
	ID        uint64           `gorm:"PRIMARY_KEY" json:"id"`
	SellerID  uint64           `gorm:"column:seller_id" json:"seller_id"`
	MissionID uint64           `gorm:"column:mission_id" json:"mission_id"`
	TrackRef  string           `gorm:"column:track_ref" json:"track_ref"`
	Status    EnrollmentStatus `sql:"not null;type:enrollment_status_t;default:'active'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
