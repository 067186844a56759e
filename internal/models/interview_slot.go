package models

import "time"

// InterviewSlot is a bookable (date, time window) unit. A booked slot has a
// non-nil ApplicationID; an unbooked slot has none. The (date, start_time)
// pair is unique.
type InterviewSlot struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_slots_date_start" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_slots_date_start" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`

	IsBooked      bool         `gorm:"not null;default:false;index" json:"is_booked"`
	ApplicationID *uint64      `json:"application_id"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`

	Interviewer string `gorm:"type:varchar(100);not null;default:'TBD'" json:"interviewer"`
	MeetingLink string `json:"meeting_link"`
	Notes       string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
