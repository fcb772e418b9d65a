package domain

import (
	"context"
	"time"
)

// TimeSlot is a bookable time window tagged with a category.
// UserID is nil while the slot is free.
// swagger:model TimeSlot
type TimeSlot struct {
	ID         int64     `json:"id"`
	Category   string    `json:"category"`
	CategoryID int64     `json:"category_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	UserID     *int64    `json:"user_id"`
	User       *string   `json:"user"`
}

// NewTimeSlot returns a new free TimeSlot. ID is set by the repository on create.
func NewTimeSlot(categoryID int64, start, end time.Time) *TimeSlot {
	return &TimeSlot{
		CategoryID: categoryID,
		StartTime:  start,
		EndTime:    end,
	}
}

// IsFree reports whether nobody occupies the slot.
func (s *TimeSlot) IsFree() bool {
	return s.UserID == nil
}

// IsBookedBy reports whether userID is the current occupant.
func (s *TimeSlot) IsBookedBy(userID int64) bool {
	return s.UserID != nil && *s.UserID == userID
}

// ValidateWindow requires start strictly before end.
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidWindow
	}
	return nil
}

// WeekWindow returns the inclusive [from, to] range for the calendar week at offset
// weeks from the week containing now. Weeks start on Monday 00:00 in loc.
func WeekWindow(now time.Time, offset int, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	from := time.Date(local.Year(), local.Month(), local.Day()-daysSinceMonday+7*offset, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 7)
}

// OccupantChange is an admin edit of the occupant. Set is false when the field was
// not supplied; a supplied nil UserID frees the slot.
type OccupantChange struct {
	Set    bool
	UserID *int64
}

// SlotPatch carries the fields of an admin update. Nil fields are left unchanged.
type SlotPatch struct {
	CategoryID *int64
	StartTime  *time.Time
	EndTime    *time.Time
	Occupant   OccupantChange
}

// Apply copies the supplied fields onto s.
func (p SlotPatch) Apply(s *TimeSlot) {
	if p.CategoryID != nil {
		s.CategoryID = *p.CategoryID
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Occupant.Set {
		s.UserID = p.Occupant.UserID
		s.User = nil
	}
}

// SlotFilter narrows slot listings. Nil fields do not filter.
type SlotFilter struct {
	CategoryID *int64
	From       *time.Time
	To         *time.Time
}

// SlotQuery is the caller-facing listing query; WeekOffset is resolved to a SlotFilter window.
type SlotQuery struct {
	CategoryID *int64
	WeekOffset *int
}

// SlotRepository defines storage for time slots.
type SlotRepository interface {
	List(ctx context.Context, filter SlotFilter) ([]*TimeSlot, error)
	GetByID(ctx context.Context, id int64) (*TimeSlot, error)
	// GetForUpdate reads the slot row and locks it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*TimeSlot, error)
	Create(ctx context.Context, slot *TimeSlot) error
	Update(ctx context.Context, slot *TimeSlot) error
	SetOccupant(ctx context.Context, id int64, userID *int64) error
	Delete(ctx context.Context, id int64) error
}

// SlotService is the booking engine plus admin slot lifecycle.
type SlotService interface {
	List(ctx context.Context, q SlotQuery) ([]*TimeSlot, error)
	Get(ctx context.Context, id int64) (*TimeSlot, error)
	Create(ctx context.Context, slot *TimeSlot) (*TimeSlot, error)
	Update(ctx context.Context, id int64, patch SlotPatch) (*TimeSlot, error)
	Delete(ctx context.Context, id int64) error
	Book(ctx context.Context, id int64, caller *Principal) (*TimeSlot, error)
	Unsubscribe(ctx context.Context, id int64, caller *Principal) (*TimeSlot, error)
}

// BookingObserver is notified of every book/unsubscribe outcome.
type BookingObserver interface {
	ObserveBooking(action, outcome string)
}
