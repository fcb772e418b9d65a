package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventscheduler/internal/access"
	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	principal *domain.Principal
	err       error
}

func (f *fakeTokenVerifier) Verify(_ string) (*domain.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.principal, nil
}

func (f *fakeTokenVerifier) VerifyRefresh(_ string) (int64, error) {
	return 0, errors.New("not an access check")
}

func TestAuthenticate(t *testing.T) {
	alice := &domain.Principal{UserID: 1, Username: "alice"}

	tests := []struct {
		name          string
		authHeader    string
		verifier      *fakeTokenVerifier
		skip          bool
		wantStatus    int
		wantBodyCode  string
		nextCalled    bool
		wantPrincipal *domain.Principal
	}{
		{
			name:          "valid token sets principal",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{principal: alice},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantPrincipal: alice,
		},
		{
			name:       "no header passes through anonymously",
			authHeader: "",
			verifier:   &fakeTokenVerifier{principal: alice},
			wantStatus: http.StatusOK,
			nextCalled: true,
		},
		{
			name:         "invalid authorization format",
			authHeader:   "Basic abc",
			verifier:     &fakeTokenVerifier{principal: alice},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "empty token after Bearer",
			authHeader:   "Bearer ",
			verifier:     &fakeTokenVerifier{principal: alice},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "verifier rejects token",
			authHeader:   "Bearer expired",
			verifier:     &fakeTokenVerifier{err: errors.New("token is expired")},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:       "skipped route ignores expired token",
			authHeader: "Bearer expired",
			verifier:   &fakeTokenVerifier{err: errors.New("token is expired")},
			skip:       true,
			wantStatus: http.StatusOK,
			nextCalled: true,
		},
		{
			name:       "skipped route stays anonymous with a valid token",
			authHeader: "Bearer valid-token",
			verifier:   &fakeTokenVerifier{principal: alice},
			skip:       true,
			wantStatus: http.StatusOK,
			nextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured *domain.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				captured, _ = PrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "http://test/api/slots", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			skip := func(*http.Request) bool { return tt.skip }
			Authenticate(tt.verifier, skip, next).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			assert.Equal(t, tt.wantPrincipal, captured)
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestRequireAccess(t *testing.T) {
	user := &domain.Principal{UserID: 1, Username: "alice"}
	staff := &domain.Principal{UserID: 2, Username: "sam", IsStaff: true}

	tests := []struct {
		name       string
		op         access.Operation
		principal  *domain.Principal
		wantStatus int
		wantCode   string
	}{
		{"anyone may list categories", access.ListCategories, nil, http.StatusOK, ""},
		{"anonymous booking", access.BookSlot, nil, http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
		{"user booking", access.BookSlot, user, http.StatusOK, ""},
		{"anonymous slot create", access.CreateSlot, nil, http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
		{"user slot create", access.CreateSlot, user, http.StatusForbidden, helpers.ErrCodeForbidden},
		{"staff slot create", access.CreateSlot, staff, http.StatusOK, ""},
		{"user lists users", access.ListUsers, user, http.StatusForbidden, helpers.ErrCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
			handler := RequireAccess(tt.op)(next)

			req := httptest.NewRequest(http.MethodPost, "http://test/api/slots", nil)
			if tt.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tt.principal))
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			}
		})
	}
}
