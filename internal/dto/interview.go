package dto

import (
	"time"

	"github.com/codebusters-club/recruitment-api/internal/models"
	"github.com/codebusters-club/recruitment-api/internal/services"
)

// InterviewSlotDTO represents an interview slot in API responses
type InterviewSlotDTO struct {
	ID            uint64                  `json:"id"`
	Date          time.Time               `json:"date"`
	StartTime     string                  `json:"start_time"`
	EndTime       string                  `json:"end_time"`
	IsBooked      bool                    `json:"is_booked"`
	ApplicationID *uint64                 `json:"application_id,omitempty"`
	Application   *ApplicationListItemDTO `json:"application,omitempty"`
	Interviewer   string                  `json:"interviewer"`
	MeetingLink   string                  `json:"meeting_link,omitempty"`
	Notes         string                  `json:"notes,omitempty"`
}

// PairingDTO represents one application/slot pairing made by auto-assign
type PairingDTO struct {
	Application ApplicationListItemDTO `json:"application"`
	Slot        InterviewSlotDTO       `json:"slot"`
}

// ToInterviewSlotDTO converts an InterviewSlot model to InterviewSlotDTO
func ToInterviewSlotDTO(slot models.InterviewSlot) InterviewSlotDTO {
	dto := InterviewSlotDTO{
		ID:            slot.ID,
		Date:          slot.Date,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		IsBooked:      slot.IsBooked,
		ApplicationID: slot.ApplicationID,
		Interviewer:   slot.Interviewer,
		MeetingLink:   slot.MeetingLink,
		Notes:         slot.Notes,
	}

	if slot.Application != nil {
		app := ToApplicationListItemDTO(*slot.Application)
		dto.Application = &app
	}

	return dto
}

// ToPairingDTOs converts auto-assign pairings to their API form
func ToPairingDTOs(pairings []services.Pairing) []PairingDTO {
	dtos := make([]PairingDTO, len(pairings))
	for i, p := range pairings {
		dtos[i] = PairingDTO{
			Application: ToApplicationListItemDTO(p.Application),
			Slot:        ToInterviewSlotDTO(p.Slot),
		}
	}
	return dtos
}
