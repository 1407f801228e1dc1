package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/repository"
)

func TestResidentRepository_Save(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewResidentRepository(db)
	ctx := context.Background()

	id, created, err := repo.Save(ctx, &models.Resident{
		Name:     "Ivan",
		WhatsApp: sql.NullString{String: "+254712000100", Valid: true},
		Estate:   "Kilimani",
	})
	require.NoError(t, err)
	assert.True(t, created)

	t.Run("Matches by whatsapp number", func(t *testing.T) {
		sameID, created, err := repo.Save(ctx, &models.Resident{
			Name:     "Ivan K",
			WhatsApp: sql.NullString{String: "+254712000100", Valid: true},
			Estate:   "Westlands",
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, id, sameID)
	})

	t.Run("Matches by name", func(t *testing.T) {
		sameID, created, err := repo.Save(ctx, &models.Resident{Name: "Ivan K", Estate: "Karen"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, id, sameID)
	})

	t.Run("New resident", func(t *testing.T) {
		otherID, created, err := repo.Save(ctx, &models.Resident{Name: "Judy", Estate: "Kilimani"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, id, otherID)
	})

	count, err := countRows(db.DB, "residents")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIssueRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewIssueRepository(db)
	ctx := context.Background()

	residentID, err := insertTestResident(db.DB, "Kim", "", "Kilimani")
	require.NoError(t, err)

	issues := []*models.Issue{
		{
			ResidentID:  sql.NullInt64{Int64: residentID, Valid: true},
			Type:        "power",
			Description: "Transformer blew",
			Latitude:    -1.2860,
			Longitude:   36.7871,
			Location:    sql.NullString{String: "Kilimani", Valid: true},
		},
		{Type: "water", Description: "No water since morning", Latitude: -1.2, Longitude: 36.7},
		{
			Type:        "internet",
			Description: "Fiber cut",
			Latitude:    -1.26,
			Longitude:   36.80,
			Location:    sql.NullString{String: "Westlands", Valid: true},
		},
	}
	for _, issue := range issues {
		id, err := repo.Create(ctx, issue)
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.Equal(t, models.IssueStatusReported, issue.Status)
	}

	list, err := repo.ListByLocation(ctx, "Kilimani", 50)
	require.NoError(t, err)
	require.Len(t, list, 2, "matching location plus issues without one")

	byType := map[string]*models.Issue{}
	for _, issue := range list {
		byType[issue.Type] = issue
	}
	require.Contains(t, byType, "power")
	assert.Equal(t, "Kim", byType["power"].UserName.String)
	require.Contains(t, byType, "water")
	assert.False(t, byType["water"].UserName.Valid)

	limited, err := repo.ListByLocation(ctx, "Westlands", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestPostRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	residentID, err := insertTestResident(db.DB, "Liam", "", "Kilimani")
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.CommunityPost{
		ResidentID: sql.NullInt64{Int64: residentID, Valid: true},
		Estate:     "Kilimani",
		Content:    "Power back on Argwings Kodhek",
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.CommunityPost{Estate: "Kilimani", Content: "Anyone else without water?"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.CommunityPost{Estate: "Karen", Content: "Elsewhere"})
	require.NoError(t, err)

	posts, err := repo.ListByEstate(ctx, "Kilimani", 20)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Anyone else without water?", posts[0].Content, "newest first")
	assert.False(t, posts[0].AuthorName.Valid)
	assert.Equal(t, "Liam", posts[1].AuthorName.String)
}

func TestBusinessAndEstateRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewRepository(db)

	businesses, err := repo.Business().ListByEstate(ctx, "Kilimani", 20)
	require.NoError(t, err)
	require.Len(t, businesses, 3, "seeded by migration")
	assert.Equal(t, "Kilimani Hardware", businesses[0].Name)
	assert.Equal(t, "+254712000001", businesses[0].Contact.String)

	none, err := repo.Business().ListByEstate(ctx, "Karen", 20)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = insertTestResident(db.DB, "Mia", "", "Lavington")
	require.NoError(t, err)
	_, err = repo.Post().Create(ctx, &models.CommunityPost{Estate: "Karen", Content: "hi"})
	require.NoError(t, err)

	estates, err := repo.Estate().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Karen", "Kilimani", "Lavington"}, estates)
}
