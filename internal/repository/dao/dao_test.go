package dao

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB is nil when Docker is unavailable; tests that need it skip.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	purge := startPostgres()
	code := m.Run()
	purge()

	os.Exit(code)
}

// startPostgres runs a throwaway Postgres container and points testDB at it.
func startPostgres() (purge func()) {
	purge = func() {}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("docker unavailable: %v", err)
		return purge
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("docker unavailable: %v", err)
		return purge
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=cms",
			"POSTGRES_PASSWORD=cms",
			"POSTGRES_DB=cms_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Printf("could not start postgres: %v", err)
		return purge
	}
	purge = func() {
		if err := pool.Purge(resource); err != nil {
			log.Printf("could not purge postgres: %v", err)
		}
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost port=%s user=cms password=cms dbname=cms_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db

		return nil
	})
	if err != nil {
		log.Printf("could not connect to postgres: %v", err)
	}

	return purge
}

func freshDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testDB == nil {
		t.Skip("postgres not available")
	}
	require.NoError(t, dropAllTables(testDB))
	require.NoError(t, InitTables(testDB))

	return testDB
}

func seedEvent(t *testing.T, db *gorm.DB, maxAttendees *int) Event {
	t.Helper()

	event, err := NewEventDAO(db).Insert(context.Background(), Event{
		Title:                "Launch",
		Description:          "Product launch",
		Type:                 "conference",
		Status:               "upcoming",
		StartDate:            time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC),
		StartTime:            "09:00",
		Location:             "Kinshasa",
		Currency:             "USD",
		MaxAttendees:         maxAttendees,
		RegistrationRequired: true,
	})
	require.NoError(t, err)

	return event
}

var testPolicy = RetryPolicy{MaxRetries: 3, Backoff: 20 * time.Millisecond}

var errFull = errors.New("full")

// register mirrors the registration workflow: lock, count, insert, bump.
func register(ctx context.Context, d *RegistrationDAO, eventID uint, email string) error {
	return d.Transaction(ctx, func(tx *RegistrationTx) error {
		event, err := tx.LockEvent(eventID)
		if err != nil {
			return err
		}
		if event.MaxAttendees != nil && event.CurrentAttendees >= *event.MaxAttendees {
			return errFull
		}

		if _, err = tx.Insert(EventRegistration{
			EventID:   eventID,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     email,
			Status:    "pending",
		}); err != nil {
			return err
		}

		return tx.AdjustAttendees(eventID, 1)
	})
}

func TestRegistration_ConcurrentCapacity(t *testing.T) {
	db := freshDB(t)
	seats := 3
	event := seedEvent(t, db, &seats)
	d := NewRegistrationDAO(db, testPolicy)

	const attempts = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		full     int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			err := register(context.Background(), d, event.ID, fmt.Sprintf("user%d@example.com", i))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case errors.Is(err, errFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, seats, admitted)
	assert.Equal(t, attempts-seats, full)

	stored, err := NewEventDAO(db).FindByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, seats, stored.CurrentAttendees)

	var count int64
	err = d.Transaction(context.Background(), func(tx *RegistrationTx) error {
		count, err = tx.CountActive(event.ID)
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, seats, count)
}

func TestRegistration_ActiveEmailIndex(t *testing.T) {
	db := freshDB(t)
	event := seedEvent(t, db, nil)
	d := NewRegistrationDAO(db, testPolicy)
	ctx := context.Background()

	require.NoError(t, register(ctx, d, event.ID, "ada@example.com"))

	err := register(ctx, d, event.ID, "ADA@example.com")
	assert.ErrorIs(t, err, ErrRegistrationDuplicate)

	regs, err := d.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	err = d.Transaction(ctx, func(tx *RegistrationTx) error {
		if _, err := tx.LockRegistration(regs[0].ID); err != nil {
			return err
		}
		if _, err := tx.SetStatus(regs[0].ID, "cancelled"); err != nil {
			return err
		}

		return tx.AdjustAttendees(event.ID, -1)
	})
	require.NoError(t, err)

	require.NoError(t, register(ctx, d, event.ID, "ada@example.com"))

	// Reinstating the cancelled row now collides with the new one.
	err = d.Transaction(ctx, func(tx *RegistrationTx) error {
		_, err := tx.SetStatus(regs[0].ID, "pending")
		return err
	})
	assert.ErrorIs(t, err, ErrRegistrationDuplicate)

	err = d.Transaction(ctx, func(tx *RegistrationTx) error {
		dup, err := tx.HasActiveWithEmail(event.ID, "Ada@Example.com", 0)
		if err != nil {
			return err
		}
		assert.True(t, dup)

		return nil
	})
	require.NoError(t, err)
}

func TestRegistration_CounterCannotGoNegative(t *testing.T) {
	db := freshDB(t)
	event := seedEvent(t, db, nil)
	d := NewRegistrationDAO(db, testPolicy)

	err := d.Transaction(context.Background(), func(tx *RegistrationTx) error {
		return tx.AdjustAttendees(event.ID, -1)
	})
	assert.Error(t, err)

	err = d.Transaction(context.Background(), func(tx *RegistrationTx) error {
		return tx.AdjustAttendees(event.ID+100, 1)
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventDAO_UpdateKeepsCounter(t *testing.T) {
	db := freshDB(t)
	event := seedEvent(t, db, nil)
	ctx := context.Background()

	require.NoError(t, register(ctx, NewRegistrationDAO(db, testPolicy), event.ID, "ada@example.com"))

	event.Title = "Renamed"
	event.CurrentAttendees = 0
	_, err := NewEventDAO(db).Update(ctx, event)
	require.NoError(t, err)

	stored, err := NewEventDAO(db).FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, 1, stored.CurrentAttendees)
}

func TestLockRegistration_NotFound(t *testing.T) {
	db := freshDB(t)
	d := NewRegistrationDAO(db, testPolicy)

	err := d.Transaction(context.Background(), func(tx *RegistrationTx) error {
		_, err := tx.LockRegistration(404)
		return err
	})
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestNewsletterDAO_FindByEmailIgnoresCase(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	d := NewNewsletterDAO(db)

	created, err := d.Insert(ctx, NewsletterSubscription{Email: "Ada@Example.com", Status: "active"})
	require.NoError(t, err)

	found, err := d.FindByEmail(ctx, "ada@example.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = d.FindByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestActualityDAO_Exists(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	d := NewActualityDAO(db)

	a, err := d.Insert(ctx, Actuality{Title: "A", Summary: "s", Content: "c", Author: "x", PublishDate: time.Now()})
	require.NoError(t, err)

	exists, err := d.Exists(ctx, []uint{a.ID, a.ID + 100})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{a.ID: true}, exists)
}
