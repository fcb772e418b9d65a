package controllers

import (
	"log/slog"
	"net/http"

	h "eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
)

// CredentialsRequest is the request body for POST /api/register and POST /api/token.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the request body for POST /api/token/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RegisterResponse is the data returned after a successful registration.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// RegisterSuccessResponse is the success response envelope for POST /api/register (201).
type RegisterSuccessResponse struct {
	Data  RegisterResponse `json:"data"`
	Error *h.APIError      `json:"error"`
}

// TokenSuccessResponse is the success response envelope for the token endpoints (200).
type TokenSuccessResponse struct {
	Data  domain.TokenPair `json:"data"`
	Error *h.APIError      `json:"error"`
}

// AuthController handles registration and token endpoints.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

// NewAuthController creates an AuthController with the given logger and service.
func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a regular (non-staff) account. The password must pass the strength policy; every failed rule is listed in error.details.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Username and password"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, missing_fields, username_taken or weak_password"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "user registered", "user_id", user.ID, "username", user.Username)
	h.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{Message: "User created successfully", User: user})
}

// ObtainToken godoc
// @Summary Obtain a token pair
// @Description Exchange username and password for an access and a refresh token. The access token carries user_id, username, is_staff and is_superuser claims.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Username and password"
// @Success 200 {object} controllers.TokenSuccessResponse "data contains access and refresh tokens"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or missing_fields"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /token [post]
func (c *AuthController) ObtainToken(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	pair, err := c.Service.ObtainToken(r.Context(), req.Username, req.Password)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, pair)
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Description Exchange a refresh token for a new access token with current role claims.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} controllers.TokenSuccessResponse "data contains the new access token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or missing_fields"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /token/refresh [post]
func (c *AuthController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	pair, err := c.Service.RefreshToken(r.Context(), req.Refresh)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, pair)
}
