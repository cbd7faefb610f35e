package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcms/cms-api/internal/domain"
)

// memRegistrationStore serializes transactions behind a mutex, the way the
// event row lock serializes them in Postgres, and rolls back on error.
type memRegistrationStore struct {
	mu     sync.Mutex
	events map[uint]domain.Event
	regs   map[uint]domain.Registration
	nextID uint
	clock  time.Time
}

func newMemRegistrationStore(events ...domain.Event) *memRegistrationStore {
	s := &memRegistrationStore{
		events: make(map[uint]domain.Event),
		regs:   make(map[uint]domain.Registration),
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, e := range events {
		s.events[e.ID] = e
	}

	return s
}

func (s *memRegistrationStore) WithinTx(ctx context.Context, fn func(tx RegistrationTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memRegistrationTx{
		store:  s,
		events: make(map[uint]domain.Event, len(s.events)),
		regs:   make(map[uint]domain.Registration, len(s.regs)),
		nextID: s.nextID,
	}
	for k, v := range s.events {
		tx.events[k] = v
	}
	for k, v := range s.regs {
		tx.regs[k] = v
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.events, s.regs, s.nextID = tx.events, tx.regs, tx.nextID

	return nil
}

func (s *memRegistrationStore) ListForEvent(_ context.Context, eventID uint) ([]domain.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Registration{}
	for _, r := range s.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (s *memRegistrationStore) List(_ context.Context, filter domain.RegistrationFilter, page domain.PageRequest) ([]domain.Registration, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Registration{}
	for _, r := range s.regs {
		if filter.EventID != nil && r.EventID != *filter.EventID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		event := s.events[r.EventID]
		r.Event = &event
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	total := int64(len(out))
	start := min(page.Offset(), len(out))
	end := min(start+page.PerPage, len(out))

	return out[start:end], total, nil
}

func (s *memRegistrationStore) FindByID(_ context.Context, id uint) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	return e, nil
}

func (s *memRegistrationStore) event(id uint) domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.events[id]
}

func (s *memRegistrationStore) activeCount(eventID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.regs {
		if r.EventID == eventID && r.Status.Active() {
			n++
		}
	}

	return n
}

type memRegistrationTx struct {
	store  *memRegistrationStore
	events map[uint]domain.Event
	regs   map[uint]domain.Registration
	nextID uint
}

func (t *memRegistrationTx) LockEvent(eventID uint) (domain.Event, error) {
	e, ok := t.events[eventID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	return e, nil
}

func (t *memRegistrationTx) LockRegistration(id uint) (domain.Registration, error) {
	r, ok := t.regs[id]
	if !ok {
		return domain.Registration{}, ErrRegistrationNotFound
	}

	return r, nil
}

func (t *memRegistrationTx) CountActive(eventID uint) (int64, error) {
	var n int64
	for _, r := range t.regs {
		if r.EventID == eventID && r.Status.Active() {
			n++
		}
	}

	return n, nil
}

func (t *memRegistrationTx) HasActiveWithEmail(eventID uint, email string, excludeID uint) (bool, error) {
	for _, r := range t.regs {
		if r.ID != excludeID && r.EventID == eventID && r.Status.Active() && strings.EqualFold(r.Email, email) {
			return true, nil
		}
	}

	return false, nil
}

func (t *memRegistrationTx) Create(reg domain.Registration) (domain.Registration, error) {
	t.nextID++
	t.store.clock = t.store.clock.Add(time.Second)
	reg.ID = t.nextID
	reg.CreatedAt = t.store.clock
	reg.UpdatedAt = t.store.clock
	t.regs[reg.ID] = reg

	return reg, nil
}

func (t *memRegistrationTx) UpdateStatus(id uint, status domain.RegistrationStatus) (domain.Registration, error) {
	r, ok := t.regs[id]
	if !ok {
		return domain.Registration{}, ErrRegistrationNotFound
	}
	r.Status = status
	t.regs[id] = r

	return r, nil
}

func (t *memRegistrationTx) Delete(id uint) error {
	if _, ok := t.regs[id]; !ok {
		return ErrRegistrationNotFound
	}
	delete(t.regs, id)

	return nil
}

func (t *memRegistrationTx) AdjustAttendees(eventID uint, delta int) error {
	e, ok := t.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if e.CurrentAttendees+delta < 0 {
		return errors.New("current_attendees would go negative")
	}
	e.CurrentAttendees += delta
	t.events[eventID] = e

	return nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func openEvent(id uint, max *int) domain.Event {
	return domain.Event{
		ID:                   id,
		Title:                "Annual Conference",
		MaxAttendees:         max,
		RegistrationRequired: true,
	}
}

func intPtr(n int) *int { return &n }

func registrant(first, email string) domain.Registrant {
	return domain.Registrant{FirstName: first, LastName: "Doe", Email: email}
}

func newTestRegistrationService(store *memRegistrationStore) *RegistrationService {
	svc := NewRegistrationService(store, store)
	svc.now = func() time.Time { return testNow }

	return svc
}

func TestRegister_Success(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, intPtr(10)))
	svc := newTestRegistrationService(store)

	reg, err := svc.Register(context.Background(), 1, domain.Registrant{
		FirstName: "  Ada ",
		LastName:  "Lovelace",
		Email:     " ada@example.com ",
		Phone:     "+243 81 000 0000",
	})
	require.NoError(t, err)

	assert.NotZero(t, reg.ID)
	assert.Equal(t, uint(1), reg.EventID)
	assert.Equal(t, domain.RegistrationPending, reg.Status)
	assert.Equal(t, "Ada", reg.FirstName)
	assert.Equal(t, "ada@example.com", reg.Email)
	assert.Equal(t, 1, store.event(1).CurrentAttendees)
}

func TestRegister_GateOrder(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name       string
		event      domain.Event
		seed       []domain.Registrant
		registrant domain.Registrant
		eventID    uint
		wantErr    error
		wantFields bool
	}{
		{
			name:       "unknown event",
			event:      openEvent(1, nil),
			eventID:    2,
			registrant: registrant("A", "a@example.com"),
			wantErr:    ErrEventNotFound,
		},
		{
			name: "registration not required",
			event: domain.Event{
				ID:           1,
				MaxAttendees: intPtr(5),
			},
			eventID:    1,
			registrant: registrant("A", "a@example.com"),
			wantErr:    ErrRegistrationNotApplicable,
		},
		{
			name: "deadline passed wins over capacity",
			event: domain.Event{
				ID:                   1,
				MaxAttendees:         intPtr(1),
				RegistrationRequired: true,
				RegistrationDeadline: &past,
			},
			seed:       []domain.Registrant{registrant("B", "b@example.com")},
			eventID:    1,
			registrant: registrant("A", "a@example.com"),
			wantErr:    ErrDeadlineExpired,
		},
		{
			name:       "full event wins over duplicate",
			event:      openEvent(1, intPtr(1)),
			seed:       []domain.Registrant{registrant("A", "a@example.com")},
			eventID:    1,
			registrant: registrant("A", "a@example.com"),
			wantErr:    ErrCapacityExceeded,
		},
		{
			name:       "duplicate email ignores case",
			event:      openEvent(1, intPtr(5)),
			seed:       []domain.Registrant{registrant("A", "a@example.com")},
			eventID:    1,
			registrant: registrant("A", "A@Example.COM"),
			wantErr:    ErrDuplicateRegistration,
		},
		{
			name:       "duplicate wins over invalid registrant",
			event:      openEvent(1, nil),
			seed:       []domain.Registrant{registrant("A", "a@example.com")},
			eventID:    1,
			registrant: domain.Registrant{Email: "a@example.com"},
			wantErr:    ErrDuplicateRegistration,
		},
		{
			name:       "invalid registrant",
			event:      openEvent(1, nil),
			eventID:    1,
			registrant: domain.Registrant{FirstName: "A", Email: "not-an-email"},
			wantFields: true,
		},
		{
			name: "deadline in the future is open",
			event: domain.Event{
				ID:                   1,
				RegistrationRequired: true,
				RegistrationDeadline: &future,
			},
			eventID:    1,
			registrant: registrant("A", "a@example.com"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemRegistrationStore(tt.event)
			svc := newTestRegistrationService(store)

			// Seed through the store so gates that would reject them are bypassed.
			for _, r := range tt.seed {
				require.NoError(t, store.WithinTx(context.Background(), func(tx RegistrationTx) error {
					if _, err := tx.Create(domain.Registration{EventID: tt.event.ID, Registrant: r, Status: domain.RegistrationPending}); err != nil {
						return err
					}
					return tx.AdjustAttendees(tt.event.ID, 1)
				}))
			}
			before := store.event(tt.event.ID).CurrentAttendees

			_, err := svc.Register(context.Background(), tt.eventID, tt.registrant)

			switch {
			case tt.wantFields:
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, "last_name")
				assert.Contains(t, verr.Fields, "email")
				assert.Equal(t, before, store.event(tt.event.ID).CurrentAttendees)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, store.event(tt.event.ID).CurrentAttendees)
			default:
				require.NoError(t, err)
				assert.Equal(t, before+1, store.event(tt.event.ID).CurrentAttendees)
			}
		})
	}
}

func TestRegister_ConcurrentCapacity(t *testing.T) {
	const capacity = 20

	store := newMemRegistrationStore(openEvent(1, intPtr(capacity)))
	svc := newTestRegistrationService(store)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		full    int
	)
	for i := 0; i < capacity+5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			email := "guest" + strconv.Itoa(i) + "@example.com"
			_, err := svc.Register(context.Background(), 1, registrant("Guest", email))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrCapacityExceeded):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, capacity, success)
	assert.Equal(t, 5, full)
	assert.Equal(t, capacity, store.event(1).CurrentAttendees)
	assert.Equal(t, capacity, store.activeCount(1))
}

func TestRegistration_CapacityScenario(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, intPtr(2)))
	svc := newTestRegistrationService(store)
	ctx := context.Background()

	a, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 1, store.event(1).CurrentAttendees)

	_, err = svc.Register(ctx, 1, registrant("B", "b@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, store.event(1).CurrentAttendees)

	_, err = svc.Register(ctx, 1, registrant("C", "c@example.com"))
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, store.event(1).CurrentAttendees)

	_, err = svc.UpdateStatus(ctx, a.ID, domain.RegistrationCancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, store.event(1).CurrentAttendees)

	_, err = svc.Register(ctx, 1, registrant("C", "c@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, store.event(1).CurrentAttendees)
}

func TestRegistration_ReRegisterAfterCancel(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, nil))
	svc := newTestRegistrationService(store)
	ctx := context.Background()

	first, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.ErrorIs(t, err, ErrDuplicateRegistration)

	_, err = svc.UpdateStatus(ctx, first.ID, domain.RegistrationCancelled)
	require.NoError(t, err)

	second, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, store.event(1).CurrentAttendees)

	// The old cancelled row cannot come back while the new one is active.
	_, err = svc.UpdateStatus(ctx, first.ID, domain.RegistrationPending)
	require.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.Equal(t, 1, store.event(1).CurrentAttendees)
}

func TestUpdateStatus_ReinstatementBypassesGates(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, intPtr(1)))
	svc := newTestRegistrationService(store)
	ctx := context.Background()

	a, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, a.ID, domain.RegistrationCancelled)
	require.NoError(t, err)
	_, err = svc.Register(ctx, 1, registrant("B", "b@example.com"))
	require.NoError(t, err)

	// Close registrations and reinstate A on a full event.
	svc.now = func() time.Time { return testNow.Add(48 * time.Hour) }
	store.mu.Lock()
	e := store.events[1]
	deadline := testNow.Add(24 * time.Hour)
	e.RegistrationDeadline = &deadline
	store.events[1] = e
	store.mu.Unlock()

	reinstated, err := svc.UpdateStatus(ctx, a.ID, domain.RegistrationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationConfirmed, reinstated.Status)
	assert.Equal(t, 2, store.event(1).CurrentAttendees)
}

func TestUpdateStatus_CounterTransitions(t *testing.T) {
	tests := []struct {
		from, to domain.RegistrationStatus
		want     int
	}{
		{domain.RegistrationPending, domain.RegistrationConfirmed, 1},
		{domain.RegistrationConfirmed, domain.RegistrationPending, 1},
		{domain.RegistrationPending, domain.RegistrationCancelled, 0},
		{domain.RegistrationConfirmed, domain.RegistrationCancelled, 0},
		{domain.RegistrationPending, domain.RegistrationPending, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			store := newMemRegistrationStore(openEvent(1, nil))
			svc := newTestRegistrationService(store)
			ctx := context.Background()

			reg, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
			require.NoError(t, err)
			if tt.from != domain.RegistrationPending {
				_, err = svc.UpdateStatus(ctx, reg.ID, tt.from)
				require.NoError(t, err)
			}

			updated, err := svc.UpdateStatus(ctx, reg.ID, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			assert.Equal(t, tt.want, store.event(1).CurrentAttendees)
		})
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, nil))
	svc := newTestRegistrationService(store)

	_, err := svc.UpdateStatus(context.Background(), 1, "archived")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")

	_, err = svc.UpdateStatus(context.Background(), 42, domain.RegistrationConfirmed)
	require.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestDelete(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, nil))
	svc := newTestRegistrationService(store)
	ctx := context.Background()

	a, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.NoError(t, err)
	b, err := svc.Register(ctx, 1, registrant("B", "b@example.com"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, b.ID, domain.RegistrationCancelled)
	require.NoError(t, err)
	require.Equal(t, 1, store.event(1).CurrentAttendees)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.Equal(t, 1, store.event(1).CurrentAttendees)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Equal(t, 0, store.event(1).CurrentAttendees)

	require.ErrorIs(t, svc.Delete(ctx, a.ID), ErrRegistrationNotFound)
}

func TestRegistration_CounterMatchesRecount(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, intPtr(4)))
	svc := newTestRegistrationService(store)
	ctx := context.Background()

	var ids []uint
	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io", "d@x.io", "e@x.io"} {
		reg, err := svc.Register(ctx, 1, registrant("X", email))
		if err == nil {
			ids = append(ids, reg.ID)
		}
	}
	require.Len(t, ids, 4)

	steps := []struct {
		id     uint
		status domain.RegistrationStatus
	}{
		{ids[0], domain.RegistrationCancelled},
		{ids[1], domain.RegistrationConfirmed},
		{ids[0], domain.RegistrationCancelled},
		{ids[2], domain.RegistrationCancelled},
		{ids[0], domain.RegistrationPending},
	}
	for _, step := range steps {
		_, err := svc.UpdateStatus(ctx, step.id, step.status)
		require.NoError(t, err)
		assert.Equal(t, store.activeCount(1), store.event(1).CurrentAttendees)
	}

	require.NoError(t, svc.Delete(ctx, ids[3]))
	require.NoError(t, svc.Delete(ctx, ids[2]))
	assert.Equal(t, store.activeCount(1), store.event(1).CurrentAttendees)
	assert.Equal(t, 2, store.event(1).CurrentAttendees)
}

func TestRegister_CancelledContextLeavesNoTrace(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, nil))
	svc := newTestRegistrationService(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.event(1).CurrentAttendees)
	assert.Equal(t, 0, store.activeCount(1))
}

func TestListForEvent(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, nil), openEvent(2, nil))
	svc := newTestRegistrationService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, 1, registrant("A", "a@example.com"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, 1, registrant("B", "b@example.com"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, 2, registrant("C", "c@example.com"))
	require.NoError(t, err)

	regs, err := svc.ListForEvent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "b@example.com", regs[0].Email)
	assert.Equal(t, "a@example.com", regs[1].Email)

	_, err = svc.ListForEvent(ctx, 99)
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestList_FiltersAndPagination(t *testing.T) {
	store := newMemRegistrationStore(openEvent(1, nil), openEvent(2, nil))
	svc := newTestRegistrationService(store)
	ctx := context.Background()

	for i, email := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		reg, err := svc.Register(ctx, 1, registrant("X", email))
		require.NoError(t, err)
		if i == 0 {
			_, err = svc.UpdateStatus(ctx, reg.ID, domain.RegistrationConfirmed)
			require.NoError(t, err)
		}
	}
	_, err := svc.Register(ctx, 2, registrant("Y", "y@x.io"))
	require.NoError(t, err)

	eventID := uint(1)
	regs, page, err := svc.List(ctx, domain.RegistrationFilter{EventID: &eventID}, domain.PageRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, regs, 2)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 2, Total: 3, TotalPages: 2}, page)
	require.NotNil(t, regs[0].Event)
	assert.Equal(t, uint(1), regs[0].Event.ID)

	regs, page, err = svc.List(ctx, domain.RegistrationFilter{EventID: &eventID, Status: domain.RegistrationConfirmed}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "a@x.io", regs[0].Email)
	assert.Equal(t, domain.DefaultPerPage, page.Limit)
}
