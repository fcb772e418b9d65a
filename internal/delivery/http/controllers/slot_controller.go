package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"
)

// SlotRequest is the request body for POST /api/slots, PUT and PATCH /api/slots/{id}.
// user_id may be an id or null; omitting it leaves the occupant unchanged (free on create).
type SlotRequest struct {
	CategoryID *int64       `json:"category_id"`
	StartTime  *time.Time   `json:"start_time"`
	EndTime    *time.Time   `json:"end_time"`
	UserID     h.NullableID `json:"user_id" swaggertype:"integer"`

	partial bool
}

// Validate implements helpers.Validator. Every field except user_id is required
// unless the request is a partial update.
func (r *SlotRequest) Validate() []string {
	if r.partial {
		return nil
	}
	var errs []string
	if r.CategoryID == nil {
		errs = append(errs, "category_id is required")
	}
	if r.StartTime == nil {
		errs = append(errs, "start_time is required")
	}
	if r.EndTime == nil {
		errs = append(errs, "end_time is required")
	}
	return errs
}

func (r *SlotRequest) patch() domain.SlotPatch {
	return domain.SlotPatch{
		CategoryID: r.CategoryID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Occupant:   domain.OccupantChange{Set: r.UserID.Set, UserID: r.UserID.Value},
	}
}

// ListSlotsSuccessResponse is the success response envelope for GET /api/slots (200).
type ListSlotsSuccessResponse struct {
	Data  []*domain.TimeSlot `json:"data"`
	Error *h.APIError        `json:"error"`
}

// SlotSuccessResponse is the success response envelope for a single slot.
type SlotSuccessResponse struct {
	Data  *domain.TimeSlot `json:"data"`
	Error *h.APIError      `json:"error"`
}

// SlotController handles slot listing, admin lifecycle and booking endpoints.
type SlotController struct {
	Logger  *slog.Logger
	Service domain.SlotService
}

// NewSlotController creates a SlotController with the given logger and service.
func NewSlotController(logger *slog.Logger, svc domain.SlotService) *SlotController {
	return &SlotController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List time slots
// @Description Lists slots ordered by start time. category filters by category id; week selects the calendar week at that offset from the current one (Monday 00:00 to Monday 00:00, both inclusive). A week value that is not an integer means the current week.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param category query int false "Category ID"
// @Param week query int false "Week offset from the current week"
// @Success 200 {object} controllers.ListSlotsSuccessResponse "data contains the slots"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots [get]
func (c *SlotController) List(w http.ResponseWriter, r *http.Request) {
	categoryID, err := h.QueryID(r, "category")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	slots, err := c.Service.List(r.Context(), domain.SlotQuery{
		CategoryID: categoryID,
		WeekOffset: h.QueryWeekOffset(r),
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, slots)
}

// Get godoc
// @Summary Get a time slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the slot"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{id} [get]
func (c *SlotController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.slotID(w, r)
	if !ok {
		return
	}
	slot, err := c.Service.Get(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, slot)
}

// Create godoc
// @Summary Create a time slot
// @Description Admin only. start_time must be strictly before end_time and the category must exist. The slot is free unless user_id is given.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SlotRequest true "Slot"
// @Success 201 {object} controllers.SlotSuccessResponse "data contains the created slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, invalid_window or invalid_category"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots [post]
func (c *SlotController) Create(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	slot := domain.NewTimeSlot(*req.CategoryID, *req.StartTime, *req.EndTime)
	if req.UserID.Set {
		slot.UserID = req.UserID.Value
	}
	created, err := c.Service.Create(r.Context(), slot)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, created)
}

// Update godoc
// @Summary Replace a time slot
// @Description Admin only. category_id, start_time and end_time are required. user_id assigns or (with null) clears the occupant directly.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Param body body SlotRequest true "Slot"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the updated slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, invalid_window or invalid_category"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{id} [put]
func (c *SlotController) Update(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, false)
}

// Patch godoc
// @Summary Partially update a time slot
// @Description Admin only. Only the supplied fields change; the resulting window must still be valid.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Param body body SlotRequest true "Fields to change"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the updated slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, invalid_window or invalid_category"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{id} [patch]
func (c *SlotController) Patch(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, true)
}

func (c *SlotController) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := c.slotID(w, r)
	if !ok {
		return
	}
	req := SlotRequest{partial: partial}
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	slot, err := c.Service.Update(r.Context(), id, req.patch())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, slot)
}

// Delete godoc
// @Summary Delete a time slot
// @Description Admin only. Any booking on the slot goes with it.
// @Tags slots
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{id} [delete]
func (c *SlotController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.slotID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteNoContent(w)
}

// Book godoc
// @Summary Book a time slot
// @Description Books a free slot for the caller. Booking a slot that is already taken fails, even when the caller holds it.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the booked slot"
// @Failure 400 {object} helpers.APIResponse "error.code: already_booked"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{id}/book [post]
func (c *SlotController) Book(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Book)
}

// Unsubscribe godoc
// @Summary Release a booked time slot
// @Description Frees a slot held by the caller. A free slot or one held by someone else yields the same error.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the freed slot"
// @Failure 400 {object} helpers.APIResponse "error.code: not_subscribed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{id}/unsubscribe [post]
func (c *SlotController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Unsubscribe)
}

func (c *SlotController) transition(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64, *domain.Principal) (*domain.TimeSlot, error)) {
	id, ok := c.slotID(w, r)
	if !ok {
		return
	}
	caller, _ := middleware.PrincipalFromContext(r.Context())
	slot, err := apply(r.Context(), id, caller)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, slot)
}

func (c *SlotController) slotID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, err.Error())
		return 0, false
	}
	return id, true
}
