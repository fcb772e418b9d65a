package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	h "eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserController_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		users      []*domain.User
		total      int
		wantParams domain.PaginationParams
		wantMeta   h.PaginationMeta
	}{
		{
			name:       "defaults",
			users:      []*domain.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}},
			total:      2,
			wantParams: domain.PaginationParams{Page: 1, PageSize: 20},
			wantMeta:   h.PaginationMeta{Page: 1, PageSize: 20, Total: 2, TotalPages: 1},
		},
		{
			name:       "second page",
			query:      "?page=2&page_size=1",
			users:      []*domain.User{{ID: 2, Username: "bob"}},
			total:      2,
			wantParams: domain.PaginationParams{Page: 2, PageSize: 1},
			wantMeta:   h.PaginationMeta{Page: 2, PageSize: 1, Total: 2, TotalPages: 2},
		},
		{
			name:       "empty page",
			query:      "?page=5",
			wantParams: domain.PaginationParams{Page: 5, PageSize: 20},
			wantMeta:   h.PaginationMeta{Page: 5, PageSize: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserService{users: tt.users, total: tt.total}
			ctrl := NewUserController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.List(rr, newRequest(http.MethodGet, "/api/users"+tt.query, "", "", admin))

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantParams, fake.lastParams)
			var page h.Page[domain.User]
			require.Nil(t, decodeEnvelope(t, rr, &page))
			assert.Equal(t, tt.wantMeta, page.Pagination)
			assert.Len(t, page.Results, len(tt.users))
			assert.NotNil(t, page.Results)
		})
	}
}

func TestUserController_Get(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "found", id: "1", wantStatus: http.StatusOK},
		{name: "missing", id: "2", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: h.ErrCodeNotFound},
		{name: "bad id", id: "me", wantStatus: http.StatusNotFound, wantCode: h.ErrCodeNotFound},
		{name: "store failure", id: "1", fakeErr: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: h.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserService{user: &domain.User{ID: 1, Username: "alice", PasswordHash: "secret-hash"}, err: tt.fakeErr}
			ctrl := NewUserController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.Get(rr, newRequest(http.MethodGet, "/api/users/"+tt.id, "", tt.id, admin))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.NotContains(t, rr.Body.String(), "secret-hash")
			if tt.wantCode != "" {
				apiErr := decodeEnvelope(t, rr, nil)
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			var got domain.User
			require.Nil(t, decodeEnvelope(t, rr, &got))
			assert.Equal(t, "alice", got.Username)
		})
	}
}

func TestHealthController(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthController(testLogger, fakePinger{}).Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var got HealthResponse
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, "ok", got.Status)

	rr = httptest.NewRecorder()
	NewHealthController(testLogger, fakePinger{err: errors.New("down")}).Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
