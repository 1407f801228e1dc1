package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/gridpulse/internal/repository"
)

func TestContactRepository_Upsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(t *testing.T)
		phone    string
		input    *string
		wantName string
		wantOpt  bool
	}{
		{
			name:     "Creates unknown contact not yet opted in",
			setup:    func(t *testing.T) {},
			phone:    "+14155550001",
			input:    ptr("Alice"),
			wantName: "Alice",
		},
		{
			name: "Keeps existing name when none supplied",
			setup: func(t *testing.T) {
				_, err := insertTestContact(db.DB, "+14155550002", "Bob", true)
				require.NoError(t, err)
			},
			phone:    "+14155550002",
			input:    nil,
			wantName: "Bob",
			wantOpt:  true,
		},
		{
			name: "Replaces name when a new one is supplied",
			setup: func(t *testing.T) {
				_, err := insertTestContact(db.DB, "+14155550003", "Carol", false)
				require.NoError(t, err)
			},
			phone:    "+14155550003",
			input:    ptr("Caroline"),
			wantName: "Caroline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanupTestData(db)
			tt.setup(t)

			contact, err := repo.Upsert(ctx, tt.phone, tt.input)
			require.NoError(t, err)

			assert.NotZero(t, contact.ID)
			assert.Equal(t, tt.phone, contact.PhoneNumber)
			assert.True(t, contact.Name.Valid)
			assert.Equal(t, tt.wantName, contact.Name.String)
			assert.Equal(t, tt.wantOpt, contact.OptedIn)

			count, err := countRows(db.DB, "contacts")
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestContactRepository_OptInTwiceKeepsSingleRow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.Upsert(ctx, "+14155550010", ptr("Dana"))
		require.NoError(t, err)

		contact, err := repo.OptIn(ctx, "+14155550010")
		require.NoError(t, err)
		assert.True(t, contact.OptedIn)
		assert.True(t, contact.OptedInAt.Valid)
		assert.False(t, contact.OptedOutAt.Valid)
	}

	count, err := countRows(db.DB, "contacts")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestContactRepository_ConcurrentUpsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(ctx, "+14155550020", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	count, err := countRows(db.DB, "contacts")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestContactRepository_OptOut(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	t.Run("Opted in contact is unsubscribed", func(t *testing.T) {
		cleanupTestData(db)
		_, err := insertTestContact(db.DB, "+14155550030", "Eve", true)
		require.NoError(t, err)

		contact, err := repo.OptOut(ctx, "+14155550030")
		require.NoError(t, err)

		assert.False(t, contact.OptedIn)
		assert.True(t, contact.OptedOutAt.Valid)
		assert.True(t, contact.OptedInAt.Valid, "opted_in_at keeps its value from the prior cycle")
	})

	t.Run("Opting back in clears the opt-out timestamp", func(t *testing.T) {
		contact, err := repo.OptIn(ctx, "+14155550030")
		require.NoError(t, err)

		assert.True(t, contact.OptedIn)
		assert.False(t, contact.OptedOutAt.Valid)
	})

	t.Run("Unknown contact", func(t *testing.T) {
		_, err := repo.OptOut(ctx, "+19999999999")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.OptIn(ctx, "+19999999999")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestContactRepository_GetByPhone(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	_, err := insertTestContact(db.DB, "+14155550040", "", false)
	require.NoError(t, err)

	contact, err := repo.GetByPhone(ctx, "+14155550040")
	require.NoError(t, err)
	assert.False(t, contact.Name.Valid)
	assert.False(t, contact.OptedIn)

	_, err = repo.GetByPhone(ctx, "14155550040")
	assert.ErrorIs(t, err, repository.ErrNotFound, "lookup is an exact match")
}

func TestContactRepository_List(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	_, err := insertTestContact(db.DB, "+14155550051", "In One", true)
	require.NoError(t, err)
	_, err = insertTestContact(db.DB, "+14155550052", "Out", false)
	require.NoError(t, err)
	_, err = insertTestContact(db.DB, "+14155550053", "In Two", true)
	require.NoError(t, err)

	optedIn, err := repo.ListOptedIn(ctx)
	require.NoError(t, err)
	require.Len(t, optedIn, 2)
	assert.Equal(t, "+14155550051", optedIn[0].PhoneNumber)
	assert.Equal(t, "+14155550053", optedIn[1].PhoneNumber)

	optedOut, err := repo.List(ctx, ptr(false))
	require.NoError(t, err)
	require.Len(t, optedOut, 1)
	assert.Equal(t, "+14155550052", optedOut[0].PhoneNumber)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestContactRepository_Failure(t *testing.T) {
	db, cleanup := setupTestDB(t)
	cleanup()

	repo := repository.NewContactRepository(db)

	_, err := repo.Upsert(context.Background(), "+14155550060", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is closed")

	_, err = repo.ListOptedIn(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
