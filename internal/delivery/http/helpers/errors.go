package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventscheduler/internal/domain"
)

// WriteServiceError maps a service error onto the response envelope. Errors
// that are not domain sentinels are logged and reported as a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var weak *domain.WeakPasswordError
	switch {
	case errors.As(err, &weak):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeWeakPassword, domain.ErrWeakPassword.Error(), weak.Reasons...)
	case errors.Is(err, domain.ErrMissingFields):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeMissingFields, domain.ErrMissingFields.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeUsernameTaken, domain.ErrUsernameTaken.Error())
	case errors.Is(err, domain.ErrInvalidWindow):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeInvalidWindow, domain.ErrInvalidWindow.Error())
	case errors.Is(err, domain.ErrInvalidCategory):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeInvalidCategory, domain.ErrInvalidCategory.Error())
	case errors.Is(err, domain.ErrAlreadyBooked):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeAlreadyBooked, domain.ErrAlreadyBooked.Error())
	case errors.Is(err, domain.ErrNotSubscribed):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeNotSubscribed, domain.ErrNotSubscribed.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, domain.ErrNotFound.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
