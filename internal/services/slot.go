package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventscheduler/internal/domain"
)

// Booking actions and outcomes reported to the BookingObserver.
const (
	ActionBook        = "book"
	ActionUnsubscribe = "unsubscribe"

	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type slotService struct {
	slots      domain.SlotRepository
	categories domain.CategoryRepository
	tx         domain.Transactor
	loc        *time.Location
	observer   domain.BookingObserver
	now        func() time.Time
}

// NewSlotService creates the booking engine. Week windows are computed in loc.
// observer may be nil.
func NewSlotService(
	slots domain.SlotRepository,
	categories domain.CategoryRepository,
	tx domain.Transactor,
	loc *time.Location,
	observer domain.BookingObserver,
) domain.SlotService {
	if loc == nil {
		loc = time.UTC
	}
	return &slotService{
		slots:      slots,
		categories: categories,
		tx:         tx,
		loc:        loc,
		observer:   observer,
		now:        time.Now,
	}
}

func (s *slotService) List(ctx context.Context, q domain.SlotQuery) ([]*domain.TimeSlot, error) {
	filter := domain.SlotFilter{CategoryID: q.CategoryID}
	if q.WeekOffset != nil {
		from, to := domain.WeekWindow(s.now(), *q.WeekOffset, s.loc)
		filter.From = &from
		filter.To = &to
	}
	slots, err := s.slots.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (s *slotService) Get(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return slot, nil
}

func (s *slotService) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	if err := domain.ValidateWindow(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}
	if err := s.requireCategory(ctx, slot.CategoryID); err != nil {
		return nil, err
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, storeError("create slot", err)
	}
	return s.Get(ctx, slot.ID)
}

// Update applies an admin patch under the slot's row lock. Occupant changes
// bypass the booking rules.
func (s *slotService) Update(ctx context.Context, id int64, patch domain.SlotPatch) (*domain.TimeSlot, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		slot, err := s.slots.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(slot)
		if err := domain.ValidateWindow(slot.StartTime, slot.EndTime); err != nil {
			return err
		}
		if patch.CategoryID != nil {
			if err := s.requireCategory(ctx, slot.CategoryID); err != nil {
				return err
			}
		}
		return s.slots.Update(ctx, slot)
	})
	if err != nil {
		return nil, storeError("update slot", err)
	}
	return s.Get(ctx, id)
}

func (s *slotService) Delete(ctx context.Context, id int64) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		return storeError("delete slot", err)
	}
	return nil
}

// Book moves a free slot to booked by caller. Any occupied slot is rejected,
// including one the caller already holds.
func (s *slotService) Book(ctx context.Context, id int64, caller *domain.Principal) (*domain.TimeSlot, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	slot, err := s.transition(ctx, id, func(slot *domain.TimeSlot) (*int64, error) {
		if !slot.IsFree() {
			return nil, domain.ErrAlreadyBooked
		}
		userID := caller.UserID
		return &userID, nil
	})
	s.observe(ActionBook, err)
	return slot, err
}

// Unsubscribe frees a slot held by caller. Free slots and slots held by
// someone else fail the same way.
func (s *slotService) Unsubscribe(ctx context.Context, id int64, caller *domain.Principal) (*domain.TimeSlot, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	slot, err := s.transition(ctx, id, func(slot *domain.TimeSlot) (*int64, error) {
		if !slot.IsBookedBy(caller.UserID) {
			return nil, domain.ErrNotSubscribed
		}
		return nil, nil
	})
	s.observe(ActionUnsubscribe, err)
	return slot, err
}

// transition locks the slot row, asks next for the new occupant and writes it,
// all in one transaction.
func (s *slotService) transition(ctx context.Context, id int64, next func(*domain.TimeSlot) (*int64, error)) (*domain.TimeSlot, error) {
	var result *domain.TimeSlot
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		slot, err := s.slots.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		occupant, err := next(slot)
		if err != nil {
			return err
		}
		if err := s.slots.SetOccupant(ctx, id, occupant); err != nil {
			return err
		}
		result, err = s.slots.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError("change occupant", err)
	}
	return result, nil
}

func (s *slotService) requireCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCategory
		}
		return fmt.Errorf("get category: %w", err)
	}
	return nil
}

func (s *slotService) observe(action string, err error) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveBooking(action, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrAlreadyBooked), errors.Is(err, domain.ErrNotSubscribed):
		return OutcomeConflict
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// storeError keeps domain sentinels visible to callers and wraps everything else.
func storeError(op string, err error) error {
	for _, known := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInvalidWindow,
		domain.ErrInvalidCategory,
		domain.ErrAlreadyBooked,
		domain.ErrNotSubscribed,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
