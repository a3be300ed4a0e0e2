package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"leonine/config"
	"leonine/infras/otel/mocks"
	galleryMocks "leonine/internal/domains/gallery/mocks"
	"leonine/internal/domains/gallery/model"
	"leonine/internal/domains/gallery/model/dto"
	"leonine/internal/domains/gallery/service"
	cacheMocks "leonine/shared/cache/mocks"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	admin = principal.Principal{UserID: "u-1", Email: "admin@leonine.test", Role: "admin"}
	guest = principal.Principal{UserID: "u-2", Email: "guest@leonine.test", Role: "customer"}
)

func newService(t *testing.T) (service.Gallery, *galleryMocks.MockGallery, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := galleryMocks.NewMockGallery(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestGalleryService_Create(t *testing.T) {
	req := dto.CreateGalleryRequest{Name: "Lobby", ImageURL: "https://cdn.leonine.test/lobby.jpg"}

	tests := []struct {
		name      string
		caller    principal.Principal
		setupMock func(repo *galleryMocks.MockGallery, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name:   "successful creation",
			caller: admin,
			setupMock: func(repo *galleryMocks.MockGallery, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Clear(gomock.Any(), "gallery:gets:*").Return(nil)
				cache.EXPECT().Clear(gomock.Any(), "gallery:count:*").Return(nil)
			},
		},
		{
			name:      "guest forbidden",
			caller:    guest,
			setupMock: func(*galleryMocks.MockGallery, *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:   "insert fails",
			caller: admin,
			setupMock: func(repo *galleryMocks.MockGallery, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Create(context.Background(), tt.caller, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Lobby", res.Name)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestGalleryService_GetAll(t *testing.T) {
	t.Run("filtered by category", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Gallery, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "galleries.category = :category")
				assert.Equal(t, "Facilities", args["category"])

				return []model.Gallery{{ID: "g-1", Name: "Spa", Category: "Facilities"}}, nil
			})
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "Facilities")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, "Spa", res.Galleries[0].Name)
	})

	t.Run("cache hit", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.GetGalleriesResponse)
				res.TotalData = 3

				return nil
			})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, "")

		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)
	})
}

func TestGalleryService_Get(t *testing.T) {
	t.Run("loaded from repository", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "gallery:get:g-1", gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Gallery{ID: "g-1", Name: "Lobby"}, nil)
		mockCache.EXPECT().Save(gomock.Any(), "gallery:get:g-1", gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "g-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "Lobby", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Gallery{}, nil)

		_, err := svc.Get(context.Background(), "g-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGalleryService_Update(t *testing.T) {
	req := dto.UpdateGalleryRequest{Description: "Renovated in 2025"}

	t.Run("updated", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Renovated in 2025", fields[model.FieldDescription])
				assert.NotContains(t, fields, model.FieldName)

				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), "gallery:get:g-1").Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		err := svc.Update(context.Background(), admin, "g-1", req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), admin, "g-1", req)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("guest forbidden", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(context.Background(), guest, "g-1", req)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestGalleryService_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), "gallery:get:g-1").Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		err := svc.Delete(context.Background(), admin, "g-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), admin, "g-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
