package controllers

import (
	"log/slog"
	"net/http"

	h "eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
)

// CategoryRequest is the request body for creating or replacing a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListCategoriesSuccessResponse is the success response envelope for GET /api/categories (200).
type ListCategoriesSuccessResponse struct {
	Data  []*domain.Category `json:"data"`
	Error *h.APIError        `json:"error"`
}

// CategorySuccessResponse is the success response envelope for a single category.
type CategorySuccessResponse struct {
	Data  *domain.Category `json:"data"`
	Error *h.APIError      `json:"error"`
}

// CategoryController handles the category registry endpoints.
type CategoryController struct {
	Logger  *slog.Logger
	Service domain.CategoryService
}

// NewCategoryController creates a CategoryController with the given logger and service.
func NewCategoryController(logger *slog.Logger, svc domain.CategoryService) *CategoryController {
	return &CategoryController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List event categories
// @Description Returns every category. Open to anonymous callers.
// @Tags categories
// @Produce json
// @Success 200 {object} controllers.ListCategoriesSuccessResponse "data contains the categories"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.List(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, categories)
}

// Create godoc
// @Summary Create a category
// @Description Admin only. Name is required (max 50 characters); description is optional (max 250).
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category"
// @Success 201 {object} controllers.CategorySuccessResponse "data contains the created category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [post]
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	category := domain.NewCategory(req.Name, req.Description)
	if err := c.Service.Create(r.Context(), category); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, category)
}

// Update godoc
// @Summary Replace a category
// @Description Admin only. Replaces name and description.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body CategoryRequest true "Category"
// @Success 200 {object} controllers.CategorySuccessResponse "data contains the updated category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{id} [put]
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, err.Error())
		return
	}
	var req CategoryRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	category := domain.NewCategory(req.Name, req.Description)
	category.ID = id
	if err := c.Service.Update(r.Context(), category); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Description Admin only. Slots in the category are deleted with it and it is removed from every preference.
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{id} [delete]
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, err.Error())
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteNoContent(w)
}
