package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpaceView represents read-optimized space data for the public catalog
type SpaceView struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Capacity    int32               `json:"capacity"`
	HourlyRate  decimal.NullDecimal `json:"hourly_rate"`
	Active      bool                `json:"active"`
}

// MemberView represents read-optimized member data for admin listings
type MemberView struct {
	ID        uuid.UUID `json:"id"`
	RUT       string    `json:"rut"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// BlockedDateView represents one administratively blocked calendar date.
// Blocked dates apply to the whole venue, not to individual spaces.
type BlockedDateView struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OccupiedSlotView is one busy window on the public availability calendar.
// It intentionally carries no customer data.
type OccupiedSlotView struct {
	SpaceID   uuid.UUID `json:"space_id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}
