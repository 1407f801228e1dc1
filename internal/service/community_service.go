package service

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/events"
	"github.com/popeskul/gridpulse/internal/geo"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/phone"
	"github.com/popeskul/gridpulse/internal/repository"
)

const (
	defaultIssueLimit = 50
	defaultFeedLimit  = 20
	maxListLimit      = 100

	// jitter applied to issues reported without coordinates, in degrees
	issueJitter = 0.01
)

type communityService struct {
	repo        repository.Repository
	publisher   events.Publisher
	countryCode string
	logger      *zap.Logger
	// random returns a value in [0, 1).
	random func() float64
}

func NewCommunityService(
	cfg *config.Config,
	repo repository.Repository,
	publisher events.Publisher,
	logger *zap.Logger,
) CommunityService {
	return &communityService{
		repo:        repo,
		publisher:   publisher,
		countryCode: cfg.WhatsApp.DefaultCountryCode,
		logger:      logger,
		random:      rand.Float64,
	}
}

func (s *communityService) RegisterResident(ctx context.Context, input ResidentInput) (int64, bool, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, false, newValidationError("Name is required")
	}

	resident := &models.Resident{
		Name:      name,
		Estate:    strings.TrimSpace(input.Estate),
		Latitude:  sql.NullFloat64{Float64: geo.DefaultLatitude, Valid: true},
		Longitude: sql.NullFloat64{Float64: geo.DefaultLongitude, Valid: true},
	}

	if whatsapp := strings.TrimSpace(input.WhatsApp); whatsapp != "" {
		normalized, err := phone.Normalize(whatsapp, s.countryCode)
		if err != nil {
			return 0, false, newValidationError(fmt.Sprintf("Invalid WhatsApp number %q", whatsapp))
		}
		resident.WhatsApp = sql.NullString{String: normalized, Valid: true}
	}

	hasCoordinates := input.Latitude != nil && input.Longitude != nil
	if hasCoordinates {
		resident.Latitude.Float64 = *input.Latitude
		resident.Longitude.Float64 = *input.Longitude
	}

	if resident.Estate == "" {
		if hasCoordinates {
			resident.Estate = geo.EstateFor(*input.Latitude, *input.Longitude)
		} else {
			resident.Estate = geo.DefaultEstate
		}
	}

	id, created, err := s.repo.Resident().Save(ctx, resident)
	if err != nil {
		return 0, false, fmt.Errorf("failed to save resident: %w", err)
	}

	s.logger.Info("Resident saved",
		zap.Int64("residentId", id),
		zap.String("estate", resident.Estate),
		zap.Bool("created", created))

	return id, created, nil
}

func (s *communityService) ReportIssue(ctx context.Context, input IssueInput) (*models.Issue, error) {
	issueType := strings.TrimSpace(input.Type)
	description := strings.TrimSpace(input.Description)
	if issueType == "" || description == "" {
		return nil, newValidationError("Type and description are required")
	}

	issue := &models.Issue{
		Type:        issueType,
		Description: description,
		Status:      models.IssueStatusReported,
	}

	if input.ResidentID != nil {
		issue.ResidentID = sql.NullInt64{Int64: *input.ResidentID, Valid: true}
	}
	if photoURL := strings.TrimSpace(input.PhotoURL); photoURL != "" {
		issue.PhotoURL = sql.NullString{String: photoURL, Valid: true}
	}

	hasCoordinates := input.Latitude != nil && input.Longitude != nil
	if hasCoordinates {
		issue.Latitude = *input.Latitude
		issue.Longitude = *input.Longitude
	} else {
		issue.Latitude = geo.DefaultLatitude + s.jitter()
		issue.Longitude = geo.DefaultLongitude + s.jitter()
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		if hasCoordinates {
			location = geo.EstateFor(issue.Latitude, issue.Longitude)
		} else {
			location = geo.DefaultEstate
		}
	}
	issue.Location = sql.NullString{String: location, Valid: true}

	if _, err := s.repo.Issue().Create(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to report issue: %w", err)
	}

	s.logger.Info("Issue reported",
		zap.Int64("issueId", issue.ID),
		zap.String("type", issue.Type),
		zap.String("location", location))

	event := events.NewEvent(events.TypeIssueReported, events.IssuePayload{
		IssueID:   issue.ID,
		Type:      issue.Type,
		Location:  location,
		Latitude:  issue.Latitude,
		Longitude: issue.Longitude,
	})
	if err := s.publisher.Publish(ctx, location, event); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("type", event.Type), zap.Error(err))
	}

	return issue, nil
}

// jitter returns an offset in [-issueJitter, issueJitter).
func (s *communityService) jitter() float64 {
	return (s.random()*2 - 1) * issueJitter
}

func (s *communityService) ListIssues(ctx context.Context, estate string, limit int) ([]*models.Issue, error) {
	issues, err := s.repo.Issue().ListByLocation(ctx, estateOrDefault(estate), clampLimit(limit, defaultIssueLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, nil
}

func (s *communityService) CreatePost(ctx context.Context, input PostInput) (int64, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return 0, newValidationError("Content is required")
	}

	post := &models.CommunityPost{
		Estate:  estateOrDefault(input.Estate),
		Content: content,
	}
	if input.ResidentID != nil {
		post.ResidentID = sql.NullInt64{Int64: *input.ResidentID, Valid: true}
	}

	id, err := s.repo.Post().Create(ctx, post)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	return id, nil
}

func (s *communityService) ListPosts(ctx context.Context, estate string, limit int) ([]*models.CommunityPost, error) {
	posts, err := s.repo.Post().ListByEstate(ctx, estateOrDefault(estate), clampLimit(limit, defaultFeedLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *communityService) ListBusinesses(ctx context.Context, estate string, limit int) ([]*models.Business, error) {
	businesses, err := s.repo.Business().ListByEstate(ctx, estateOrDefault(estate), clampLimit(limit, defaultFeedLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

func (s *communityService) ListEstates(ctx context.Context) ([]string, error) {
	estates, err := s.repo.Estate().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list estates: %w", err)
	}
	if len(estates) == 0 {
		return append([]string(nil), geo.DefaultEstates...), nil
	}
	return estates, nil
}

func estateOrDefault(estate string) string {
	if estate = strings.TrimSpace(estate); estate != "" {
		return estate
	}
	return geo.DefaultEstate
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
