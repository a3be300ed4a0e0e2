package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"leonine/config"
	"leonine/infras/otel/mocks"
	categoryMocks "leonine/internal/domains/category/mocks"
	"leonine/internal/domains/category/model"
	"leonine/internal/domains/category/model/dto"
	"leonine/internal/domains/category/service"
	cacheMocks "leonine/shared/cache/mocks"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	admin    = principal.Principal{UserID: "u-1", Email: "admin@leonine.test", Role: "admin"}
	customer = principal.Principal{UserID: "u-2", Email: "guest@leonine.test", Role: "customer"}
)

func newService(t *testing.T) (service.Category, *categoryMocks.MockCategory, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := categoryMocks.NewMockCategory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestCategoryService_Create(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		caller    principal.Principal
		req       dto.CreateCategoryRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:   "successful creation",
			caller: admin,
			req:    dto.CreateCategoryRequest{Name: "Deluxe", Price: 150, Features: []string{"Balcony"}},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "customer forbidden",
			caller:    customer,
			req:       dto.CreateCategoryRequest{Name: "Deluxe"},
			setupMock: func() {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:   "duplicate name",
			caller: admin,
			req:    dto.CreateCategoryRequest{Name: "Deluxe"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "unique violation on insert",
			caller: admin,
			req:    dto.CreateCategoryRequest{Name: "Deluxe"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.caller, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.req.Name, res.Name)
			assert.Equal(t, admin.Email, res.CreatedBy)
		})
	}
}

func TestCategoryService_GetByName(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "category:get:Deluxe", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.CategoryResponse)
						res.Name = "Deluxe"

						return nil
					})
			},
		},
		{
			name: "loaded from repository",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c-1", Name: "Deluxe"}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetByName(context.Background(), "Deluxe")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Deluxe", res.Name)
		})
	}
}

func TestCategoryService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldName, SortDir: gDto.SortDirAsc}, gomock.Any()).
		Return([]model.Category{{ID: "c-1", Name: "Deluxe"}, {ID: "c-2", Name: "Standard"}}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Categories, 2)
	assert.Equal(t, 1, res.TotalPage)
}

func TestCategoryService_Update(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	price := 99.5

	tests := []struct {
		name      string
		req       dto.UpdateCategoryRequest
		byName    bool
		setupMock func()
		wantCode  int
	}{
		{
			name: "update price by id",
			req:  dto.UpdateCategoryRequest{Price: &price},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c-1", Name: "Deluxe"}, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &price, fields[model.FieldPrice])
						assert.Equal(t, admin.Email, fields["modified_by"])

						return nil
					})
				mockCache.EXPECT().Delete(gomock.Any(), "category:get:Deluxe").Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:   "rename by name to taken name",
			req:    dto.UpdateCategoryRequest{Name: "Suite"},
			byName: true,
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c-1", Name: "Deluxe"}, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "not found",
			req:  dto.UpdateCategoryRequest{Description: "Quiet floor"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			var err error
			if tt.byName {
				err = svc.UpdateByName(context.Background(), admin, "Deluxe", tt.req)
			} else {
				err = svc.UpdateByID(context.Background(), admin, "c-1", tt.req)
			}

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		caller    principal.Principal
		setupMock func()
		wantCode  int
	}{
		{
			name:   "successful delete",
			caller: admin,
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c-1", Name: "Deluxe"}, nil)
				mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:   "rooms still reference it",
			caller: admin,
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c-1", Name: "Deluxe"}, nil)
				mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "not found",
			caller: admin,
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "customer forbidden",
			caller:    customer,
			setupMock: func() {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.caller, "c-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
