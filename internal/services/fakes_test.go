package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"eventscheduler/internal/domain"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]*domain.User, 0)
	for i, id := range ids {
		if i >= params.Offset() && len(users) < params.Limit() {
			users = append(users, f.byID[id])
		}
	}
	return users, len(ids), nil
}

func (f *fakeUserRepo) SetRoles(ctx context.Context, id int64, isStaff, isSuperuser bool) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsStaff = isStaff
	u.IsSuperuser = isSuperuser
	return nil
}

// fakeHasher implements domain.PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash-" + password, nil }
func (fakeHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakePolicy rejects passwords shorter than four characters.
type fakePolicy struct{}

func (fakePolicy) Validate(username, password string) error {
	if len(password) < 4 {
		return &domain.WeakPasswordError{Reasons: []string{"This password is too short."}}
	}
	return nil
}

// fakeTokens implements TokenProvider for tests.
type fakeTokens struct {
	refreshUserID int64
	refreshErr    error
}

func (f *fakeTokens) IssueAccess(u *domain.User) (string, error) {
	return "access-" + u.Username, nil
}

func (f *fakeTokens) IssueRefresh(u *domain.User) (string, error) {
	return "refresh-" + u.Username, nil
}

func (f *fakeTokens) Verify(token string) (*domain.Principal, error) {
	return nil, errors.New("not used")
}

func (f *fakeTokens) VerifyRefresh(token string) (int64, error) {
	if f.refreshErr != nil {
		return 0, f.refreshErr
	}
	return f.refreshUserID, nil
}

// fakeCategoryRepo implements domain.CategoryRepository for tests.
type fakeCategoryRepo struct {
	byID   map[int64]*domain.Category
	nextID int64
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	f := &fakeCategoryRepo{byID: make(map[int64]*domain.Category)}
	for _, n := range names {
		_ = f.Create(context.Background(), domain.NewCategory(n, ""))
	}
	return f
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(f.byID))
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeSlotRepo implements domain.SlotRepository in memory. GetForUpdate
// holds a per-row mutex until the surrounding lockingTx ends; outside a
// transaction it locks nothing, like an autocommit SELECT ... FOR UPDATE.
type fakeSlotRepo struct {
	mu         sync.Mutex
	byID       map[int64]domain.TimeSlot
	nextID     int64
	categories *fakeCategoryRepo
	users      *fakeUserRepo
	lastFilter domain.SlotFilter

	rowLocks  map[int64]*sync.Mutex
	lockReads []lockRead
	// readDelay widens the gap between reading a slot and writing it back.
	readDelay time.Duration
}

type lockRead struct {
	id   int64
	inTx bool
}

func newFakeSlotRepo(categories *fakeCategoryRepo, users *fakeUserRepo) *fakeSlotRepo {
	return &fakeSlotRepo{
		byID:       make(map[int64]domain.TimeSlot),
		categories: categories,
		users:      users,
		rowLocks:   make(map[int64]*sync.Mutex),
	}
}

// lockedInTx reports whether slot id was read through GetForUpdate and every
// such read happened inside a transaction.
func (f *fakeSlotRepo) lockedInTx(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := false
	for _, r := range f.lockReads {
		if r.id != id {
			continue
		}
		if !r.inTx {
			return false
		}
		seen = true
	}
	return seen
}

func (f *fakeSlotRepo) lockReadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lockReads)
}

func (f *fakeSlotRepo) hydrate(s domain.TimeSlot) *domain.TimeSlot {
	if c, ok := f.categories.byID[s.CategoryID]; ok {
		s.Category = c.Name
	}
	s.User = nil
	if s.UserID != nil {
		id := *s.UserID
		s.UserID = &id
		if f.users != nil {
			if u, ok := f.users.byID[id]; ok {
				name := u.Username
				s.User = &name
			}
		}
	}
	return &s
}

func (f *fakeSlotRepo) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	out := make([]*domain.TimeSlot, 0)
	for id := int64(1); id <= f.nextID; id++ {
		s, ok := f.byID[id]
		if !ok {
			continue
		}
		if filter.CategoryID != nil && s.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.From != nil && s.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.StartTime.After(*filter.To) {
			continue
		}
		out = append(out, f.hydrate(s))
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	slot := f.hydrate(s)
	if f.readDelay > 0 {
		f.mu.Unlock()
		time.Sleep(f.readDelay)
		f.mu.Lock()
	}
	return slot, nil
}

func (f *fakeSlotRepo) GetForUpdate(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	tx, inTx := ctx.Value(fakeTxKey{}).(*fakeTx)
	f.mu.Lock()
	f.lockReads = append(f.lockReads, lockRead{id: id, inTx: inTx})
	row, ok := f.rowLocks[id]
	if !ok {
		row = &sync.Mutex{}
		f.rowLocks[id] = row
	}
	f.mu.Unlock()
	if inTx {
		row.Lock()
		tx.release = append(tx.release, row.Unlock)
	}
	return f.GetByID(ctx, id)
}

func (f *fakeSlotRepo) Create(ctx context.Context, s *domain.TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.ID = f.nextID
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSlotRepo) Update(ctx context.Context, s *domain.TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.UserID != nil && f.users != nil {
		if _, ok := f.users.byID[*s.UserID]; !ok {
			return domain.ErrInvalidInput
		}
	}
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSlotRepo) SetOccupant(ctx context.Context, id int64, userID *int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.UserID = userID
	f.byID[id] = s
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeTxKey struct{}

// fakeTx collects the row locks taken during one transaction.
type fakeTx struct {
	release []func()
}

// lockingTx marks ctx as transactional and releases the row locks taken
// through fakeSlotRepo.GetForUpdate when fn returns. Transactions on
// different rows run concurrently.
type lockingTx struct {
	mu    sync.Mutex
	calls int
}

func (l *lockingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if _, ok := ctx.Value(fakeTxKey{}).(*fakeTx); ok {
		return fn(ctx)
	}
	tx := &fakeTx{}
	defer func() {
		for i := len(tx.release) - 1; i >= 0; i-- {
			tx.release[i]()
		}
	}()
	return fn(context.WithValue(ctx, fakeTxKey{}, tx))
}

// recordingObserver implements domain.BookingObserver for tests.
type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingObserver) ObserveBooking(action, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, action+":"+outcome)
}

func (r *recordingObserver) count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

// fakePreferenceRepo implements domain.PreferenceRepository for tests.
type fakePreferenceRepo struct {
	sets       map[int64][]int64
	categories *fakeCategoryRepo
	creates    int
}

func newFakePreferenceRepo(categories *fakeCategoryRepo) *fakePreferenceRepo {
	return &fakePreferenceRepo{sets: make(map[int64][]int64), categories: categories}
}

func (f *fakePreferenceRepo) GetOrCreate(ctx context.Context, userID int64) (*domain.Preference, error) {
	ids, ok := f.sets[userID]
	if !ok {
		f.creates++
		f.sets[userID] = nil
	}
	pref := &domain.Preference{UserID: userID, Categories: make([]*domain.Category, 0)}
	for _, id := range ids {
		if c, ok := f.categories.byID[id]; ok {
			pref.Categories = append(pref.Categories, c)
		}
	}
	return pref, nil
}

func (f *fakePreferenceRepo) ReplaceCategories(ctx context.Context, userID int64, categoryIDs []int64) error {
	for _, id := range categoryIDs {
		if _, ok := f.categories.byID[id]; !ok {
			return domain.ErrInvalidCategory
		}
	}
	f.sets[userID] = append([]int64(nil), categoryIDs...)
	return nil
}
