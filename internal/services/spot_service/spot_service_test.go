package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"spotguide/internal/domain/models"
	"spotguide/internal/lib/logger/handlers/slogdiscard"
	services "spotguide/internal/services/spot_service"
	"spotguide/internal/storage"
	"spotguide/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSpotRepository struct {
	mock.Mock
}

func (m *MockSpotRepository) SaveSpot(ctx context.Context, spot models.TemporarySpot) (uuid.UUID, error) {
	args := m.Called(ctx, spot)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSpotRepository) GetSpotByID(ctx context.Context, id uuid.UUID) (*models.TemporarySpot, error) {
	args := m.Called(ctx, id)
	spot, _ := args.Get(0).(*models.TemporarySpot)
	return spot, args.Error(1)
}

func (m *MockSpotRepository) GetSpotBySlug(ctx context.Context, slug string) (*models.TemporarySpot, error) {
	args := m.Called(ctx, slug)
	spot, _ := args.Get(0).(*models.TemporarySpot)
	return spot, args.Error(1)
}

func (m *MockSpotRepository) UpdateSpotFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockSpotRepository) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSpotRepository) GetSpots(ctx context.Context, statusFilter string, page, perPage int) ([]models.TemporarySpot, int, error) {
	args := m.Called(ctx, statusFilter, page, perPage)
	spots, _ := args.Get(0).([]models.TemporarySpot)
	return spots, args.Int(1), args.Error(2)
}

// MockPhotoLister implements repository.PhotoRepository; only ListPhotos is used here.
type MockPhotoLister struct {
	mock.Mock
}

func (m *MockPhotoLister) CreatePhoto(context.Context, *models.Photo) (*models.Photo, error) {
	panic("not used")
}

func (m *MockPhotoLister) GetPhotoByID(context.Context, uuid.UUID) (*models.Photo, error) {
	panic("not used")
}

func (m *MockPhotoLister) ExistsByHash(context.Context, string, uuid.UUID) (bool, error) {
	panic("not used")
}

func (m *MockPhotoLister) ExistsByPath(context.Context, string, uuid.UUID) (bool, error) {
	panic("not used")
}

func (m *MockPhotoLister) UpdatePhoto(context.Context, uuid.UUID, models.PhotoPatch) (*models.Photo, error) {
	panic("not used")
}

func (m *MockPhotoLister) DeletePhoto(context.Context, uuid.UUID) (*models.Photo, error) {
	panic("not used")
}

func (m *MockPhotoLister) ListPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error) {
	args := m.Called(ctx, filter)
	photos, _ := args.Get(0).([]models.Photo)
	return photos, args.Error(1)
}

type SpotServiceSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *MockSpotRepository
	photos  *MockPhotoLister
	service *services.SpotService
}

func (s *SpotServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(MockSpotRepository)
	s.photos = new(MockPhotoLister)
	s.service = services.NewSpotService(slogdiscard.NewDiscardLogger(), s.repo, s.photos)
}

func TestSpotServiceSuite(t *testing.T) {
	suite.Run(t, new(SpotServiceSuite))
}

func (s *SpotServiceSuite) spot(id uuid.UUID, status models.SpotStatus) *models.TemporarySpot {
	now := time.Now()
	return &models.TemporarySpot{
		ID:       id,
		Title:    "Night Market",
		Slug:     "night-market",
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		Status:   status,
	}
}

func (s *SpotServiceSuite) createRequest() dto.CreateSpotRequest {
	now := time.Now()
	return dto.CreateSpotRequest{
		Title:    "Night Market",
		StartsAt: now,
		EndsAt:   now.Add(2 * time.Hour),
	}
}

func (s *SpotServiceSuite) TestCreateSpot_GeneratesSlugAndDraft() {
	id := uuid.New()

	s.repo.On("SaveSpot", s.ctx, mock.MatchedBy(func(spot models.TemporarySpot) bool {
		return spot.Slug == "night-market" && spot.Status == models.SpotStatusDraft
	})).Return(id, nil).Once()
	s.repo.On("GetSpotByID", s.ctx, id).Return(s.spot(id, models.SpotStatusDraft), nil).Once()

	resp, err := s.service.CreateSpot(s.ctx, s.createRequest())

	s.Require().NoError(err)
	s.Equal("night-market", resp.Slug)
	s.False(resp.Active)
	s.repo.AssertExpectations(s.T())
}

func (s *SpotServiceSuite) TestCreateSpot_RetriesTakenSlug() {
	id := uuid.New()

	s.repo.On("SaveSpot", s.ctx, mock.MatchedBy(func(spot models.TemporarySpot) bool {
		return spot.Slug == "night-market"
	})).Return(uuid.Nil, storage.ErrSpotSlugExists).Once()
	s.repo.On("SaveSpot", s.ctx, mock.MatchedBy(func(spot models.TemporarySpot) bool {
		return spot.Slug != "night-market"
	})).Return(id, nil).Once()
	s.repo.On("GetSpotByID", s.ctx, id).Return(s.spot(id, models.SpotStatusDraft), nil).Once()

	_, err := s.service.CreateSpot(s.ctx, s.createRequest())

	s.Require().NoError(err)
	s.repo.AssertNumberOfCalls(s.T(), "SaveSpot", 2)
}

func (s *SpotServiceSuite) TestCreateSpot_KeepsNonLatinTitleInSlug() {
	id := uuid.New()
	req := s.createRequest()
	req.Title = "渋谷夏祭り 2025"

	s.repo.On("SaveSpot", s.ctx, mock.MatchedBy(func(spot models.TemporarySpot) bool {
		return spot.Slug == "渋谷夏祭り-2025"
	})).Return(id, nil).Once()
	s.repo.On("GetSpotByID", s.ctx, id).Return(s.spot(id, models.SpotStatusDraft), nil).Once()

	_, err := s.service.CreateSpot(s.ctx, req)

	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *SpotServiceSuite) TestCreateSpot_PunctuationOnlyTitleGetsRandomSlug() {
	id := uuid.New()
	req := s.createRequest()
	req.Title = "!!!"

	s.repo.On("SaveSpot", s.ctx, mock.MatchedBy(func(spot models.TemporarySpot) bool {
		return strings.HasPrefix(spot.Slug, "spot-") && len(spot.Slug) == len("spot-")+8
	})).Return(id, nil).Once()
	s.repo.On("GetSpotByID", s.ctx, id).Return(s.spot(id, models.SpotStatusDraft), nil).Once()

	_, err := s.service.CreateSpot(s.ctx, req)

	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *SpotServiceSuite) TestCreateSpot_InvalidRange() {
	req := s.createRequest()
	req.EndsAt = req.StartsAt.Add(-time.Minute)

	_, err := s.service.CreateSpot(s.ctx, req)

	s.True(models.IsKind(err, models.KindValidation))
	s.repo.AssertNotCalled(s.T(), "SaveSpot", mock.Anything, mock.Anything)
}

func (s *SpotServiceSuite) TestUpdateSpot_ValidatesMergedSpot() {
	id := uuid.New()
	existing := s.spot(id, models.SpotStatusDraft)
	before := existing.StartsAt.Add(-48 * time.Hour)

	s.repo.On("GetSpotByID", s.ctx, id).Return(existing, nil).Once()

	_, err := s.service.UpdateSpot(s.ctx, id, dto.UpdateSpotRequest{EndsAt: &before})

	s.True(models.IsKind(err, models.KindValidation))
	s.repo.AssertNotCalled(s.T(), "UpdateSpotFields", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SpotServiceSuite) TestUpdateSpot_WritesOnlyGivenFields() {
	id := uuid.New()
	title := "Harbour Lights"

	s.repo.On("GetSpotByID", s.ctx, id).Return(s.spot(id, models.SpotStatusDraft), nil).Twice()
	s.repo.On("UpdateSpotFields", s.ctx, id, map[string]interface{}{"title": title}).Return(nil).Once()

	_, err := s.service.UpdateSpot(s.ctx, id, dto.UpdateSpotRequest{Title: &title})

	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *SpotServiceSuite) TestUpdateSpot_NotFound() {
	id := uuid.New()

	s.repo.On("GetSpotByID", s.ctx, id).Return(nil, storage.ErrSpotNotFound).Once()

	title := "x-title"
	_, err := s.service.UpdateSpot(s.ctx, id, dto.UpdateSpotRequest{Title: &title})

	s.True(models.IsKind(err, models.KindNotFound))
}

func (s *SpotServiceSuite) TestSetStatus() {
	id := uuid.New()

	s.repo.On("UpdateSpotFields", s.ctx, id, map[string]interface{}{"status": "deleted"}).Return(nil).Once()
	s.repo.On("GetSpotByID", s.ctx, id).Return(s.spot(id, models.SpotStatusDeleted), nil).Once()

	resp, err := s.service.SetStatus(s.ctx, id, models.SpotStatusDeleted)

	s.Require().NoError(err)
	s.Equal("deleted", resp.Status)

	_, err = s.service.SetStatus(s.ctx, id, "archived")
	s.True(models.IsKind(err, models.KindValidation))
}

func (s *SpotServiceSuite) TestGetPublishedBySlug_IncludesPhotos() {
	id := uuid.New()
	photos := []models.Photo{{ID: uuid.New(), FilePath: "a.jpg"}}

	s.repo.On("GetSpotBySlug", s.ctx, "night-market").Return(s.spot(id, models.SpotStatusPublished), nil).Once()
	s.photos.On("ListPhotos", s.ctx, models.PhotoFilter{TemporarySpotID: id.String()}).Return(photos, nil).Once()

	resp, err := s.service.GetPublishedBySlug(s.ctx, "night-market")

	s.Require().NoError(err)
	s.True(resp.Active)
	s.Equal(photos, resp.Photos)
}

func (s *SpotServiceSuite) TestGetPublishedBySlug_HidesDrafts() {
	s.repo.On("GetSpotBySlug", s.ctx, "night-market").Return(s.spot(uuid.New(), models.SpotStatusDraft), nil).Once()

	_, err := s.service.GetPublishedBySlug(s.ctx, "night-market")

	s.True(models.IsKind(err, models.KindNotFound))
	s.photos.AssertNotCalled(s.T(), "ListPhotos", mock.Anything, mock.Anything)
}

func (s *SpotServiceSuite) TestListSpots_NormalisesPaging() {
	spots := []models.TemporarySpot{*s.spot(uuid.New(), models.SpotStatusPublished)}

	s.repo.On("GetSpots", s.ctx, "", 1, 10).Return(spots, 1, nil).Once()

	resp, err := s.service.ListSpots(s.ctx, "", 0, 500)

	s.Require().NoError(err)
	s.Equal(1, resp.TotalCount)
	s.Equal(1, resp.Page)
	s.Equal(10, resp.PerPage)
	s.Len(resp.Spots, 1)
}

func (s *SpotServiceSuite) TestListSpots_RejectsUnknownStatus() {
	_, err := s.service.ListSpots(s.ctx, "archived", 1, 10)

	s.True(models.IsKind(err, models.KindValidation))
}

func (s *SpotServiceSuite) TestDeleteSpot() {
	id := uuid.New()

	s.repo.On("DeleteSpot", s.ctx, id).Return(nil).Once()
	s.Require().NoError(s.service.DeleteSpot(s.ctx, id))

	missing := uuid.New()
	s.repo.On("DeleteSpot", s.ctx, missing).Return(fmt.Errorf("repository: %w", storage.ErrSpotNotFound)).Once()
	err := s.service.DeleteSpot(s.ctx, missing)
	s.True(models.IsKind(err, models.KindNotFound))

	broken := uuid.New()
	s.repo.On("DeleteSpot", s.ctx, broken).Return(errors.New("connection refused")).Once()
	err = s.service.DeleteSpot(s.ctx, broken)
	s.True(models.IsKind(err, models.KindPersistence))
}
