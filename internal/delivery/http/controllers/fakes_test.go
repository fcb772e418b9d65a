package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	h "eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var (
	alice = &domain.Principal{UserID: 1, Username: "alice"}
	admin = &domain.Principal{UserID: 9, Username: "root", IsStaff: true}
)

// newRequest builds a request with optional body, path id and caller.
func newRequest(method, target, body, id string, caller *domain.Principal) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if id != "" {
		r.SetPathValue("id", id)
	}
	if caller != nil {
		r = r.WithContext(middleware.WithPrincipal(r.Context(), caller))
	}
	return r
}

// decodeEnvelope decodes the response envelope and, when dest is non-nil, its data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *h.APIError {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *h.APIError     `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if dest != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, dest))
	}
	return envelope.Error
}

type fakeAuthService struct {
	user         *domain.User
	pair         *domain.TokenPair
	err          error
	lastUsername string
	lastPassword string
	lastRefresh  string
}

func (f *fakeAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.user, f.err
}

func (f *fakeAuthService) ObtainToken(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.pair, f.err
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, refresh string) (*domain.TokenPair, error) {
	f.lastRefresh = refresh
	return f.pair, f.err
}

type fakeCategoryService struct {
	categories []*domain.Category
	err        error
	created    *domain.Category
	updated    *domain.Category
	deleted    int64
}

func (f *fakeCategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeCategoryService) Create(ctx context.Context, c *domain.Category) error {
	if f.err != nil {
		return f.err
	}
	c.ID = 1
	f.created = c
	return nil
}

func (f *fakeCategoryService) Update(ctx context.Context, c *domain.Category) error {
	f.updated = c
	return f.err
}

func (f *fakeCategoryService) Delete(ctx context.Context, id int64) error {
	f.deleted = id
	return f.err
}

type fakeSlotService struct {
	slot       *domain.TimeSlot
	slots      []*domain.TimeSlot
	err        error
	lastQuery  domain.SlotQuery
	lastID     int64
	lastPatch  domain.SlotPatch
	lastCaller *domain.Principal
	created    *domain.TimeSlot
}

func (f *fakeSlotService) List(ctx context.Context, q domain.SlotQuery) ([]*domain.TimeSlot, error) {
	f.lastQuery = q
	return f.slots, f.err
}

func (f *fakeSlotService) Get(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	f.lastID = id
	return f.slot, f.err
}

func (f *fakeSlotService) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	f.created = slot
	if f.err != nil {
		return nil, f.err
	}
	slot.ID = 1
	return slot, nil
}

func (f *fakeSlotService) Update(ctx context.Context, id int64, patch domain.SlotPatch) (*domain.TimeSlot, error) {
	f.lastID, f.lastPatch = id, patch
	return f.slot, f.err
}

func (f *fakeSlotService) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeSlotService) Book(ctx context.Context, id int64, caller *domain.Principal) (*domain.TimeSlot, error) {
	f.lastID, f.lastCaller = id, caller
	return f.slot, f.err
}

func (f *fakeSlotService) Unsubscribe(ctx context.Context, id int64, caller *domain.Principal) (*domain.TimeSlot, error) {
	f.lastID, f.lastCaller = id, caller
	return f.slot, f.err
}

type fakePreferenceService struct {
	pref    *domain.Preference
	err     error
	userID  int64
	lastIDs []int64
	cleared bool
}

func (f *fakePreferenceService) Get(ctx context.Context, userID int64) (*domain.Preference, error) {
	f.userID = userID
	return f.pref, f.err
}

func (f *fakePreferenceService) SetCategories(ctx context.Context, userID int64, ids []int64) (*domain.Preference, error) {
	f.userID, f.lastIDs = userID, ids
	return f.pref, f.err
}

func (f *fakePreferenceService) ClearCategories(ctx context.Context, userID int64) (*domain.Preference, error) {
	f.userID, f.cleared = userID, true
	return f.pref, f.err
}

type fakeUserService struct {
	users      []*domain.User
	total      int
	user       *domain.User
	err        error
	lastParams domain.PaginationParams
}

func (f *fakeUserService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	f.lastParams = params
	return f.users, f.total, f.err
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeUserService) Promote(ctx context.Context, username string, isStaff, isSuperuser bool) (*domain.User, error) {
	return f.user, f.err
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(ctx context.Context) error {
	return f.err
}
