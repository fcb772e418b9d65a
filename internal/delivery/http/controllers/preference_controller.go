package controllers

import (
	"context"
	"log/slog"
	"net/http"

	h "eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"
)

// PreferenceRequest is the request body for PUT and PATCH /api/preferences.
type PreferenceRequest struct {
	CategoryIDs []int64 `json:"categories_ids"`
}

// PreferenceSuccessResponse is the success response envelope for the preference endpoints (200).
type PreferenceSuccessResponse struct {
	Data  *domain.Preference `json:"data"`
	Error *h.APIError        `json:"error"`
}

// PreferenceController serves the caller's own preferences.
type PreferenceController struct {
	Logger  *slog.Logger
	Service domain.PreferenceService
}

// NewPreferenceController creates a PreferenceController with the given logger and service.
func NewPreferenceController(logger *slog.Logger, svc domain.PreferenceService) *PreferenceController {
	return &PreferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// Get godoc
// @Summary Get my preferences
// @Description Returns the caller's preferred categories, creating an empty record on first access.
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PreferenceSuccessResponse "data contains the preferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /preferences [get]
func (c *PreferenceController) Get(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, c.Service.Get)
}

// Update godoc
// @Summary Set my preferred categories
// @Description Replaces the category set with categories_ids. An empty list leaves the current set untouched; use DELETE /preferences/categories to clear it.
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PreferenceRequest true "Category IDs"
// @Success 200 {object} controllers.PreferenceSuccessResponse "data contains the preferences"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_category"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /preferences [put]
// @Router /preferences [patch]
func (c *PreferenceController) Update(w http.ResponseWriter, r *http.Request) {
	var req PreferenceRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	c.respond(w, r, func(ctx context.Context, userID int64) (*domain.Preference, error) {
		return c.Service.SetCategories(ctx, userID, req.CategoryIDs)
	})
}

// Clear godoc
// @Summary Clear my preferred categories
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PreferenceSuccessResponse "data contains the emptied preferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /preferences/categories [delete]
func (c *PreferenceController) Clear(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, c.Service.ClearCategories)
}

func (c *PreferenceController) respond(w http.ResponseWriter, r *http.Request, load func(context.Context, int64) (*domain.Preference, error)) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}
	pref, err := load(r.Context(), caller.UserID)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, pref)
}
