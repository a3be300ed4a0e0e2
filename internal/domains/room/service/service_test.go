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
	roomMocks "leonine/internal/domains/room/mocks"
	"leonine/internal/domains/room/model"
	"leonine/internal/domains/room/model/dto"
	"leonine/internal/domains/room/service"
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
	customer = principal.Principal{UserID: "u-2", Email: "guest@leonine.test", Role: "user"}
)

type fixture struct {
	svc        service.Room
	repo       *roomMocks.MockRoom
	categories *categoryMocks.MockCategory
	cache      *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       roomMocks.NewMockRoom(ctrl),
		categories: categoryMocks.NewMockCategory(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.categories, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestRoomService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateRoomRequest{RoomID: 101, Category: "Standard"}

	tests := []struct {
		name      string
		caller    principal.Principal
		setupMock func()
		wantCode  int
	}{
		{
			name:   "successful creation",
			caller: admin,
			setupMock: func() {
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "not an admin",
			caller:    customer,
			setupMock: func() {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:   "unknown category",
			caller: admin,
			setupMock: func() {
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "duplicate room id",
			caller: admin,
			setupMock: func() {
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "repository error",
			caller: admin,
			setupMock: func() {
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(context.Background(), tt.caller, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(101), res.RoomID)
			assert.True(t, res.Available)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, "(rooms.category = :category)", where)
			assert.Equal(t, "Deluxe", args[model.FieldCategory])
			assert.Equal(t, model.FieldRoomID, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Room{{RoomID: 201, Category: "Deluxe"}, {RoomID: 202, Category: "Deluxe"}}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "Deluxe")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, 2, res.TotalData)
}

func TestRoomService_Get(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), "room:get:101", gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{RoomID: 101, Available: true}, nil)
				f.cache.EXPECT().Save(gomock.Any(), "room:get:101", gomock.Any(), 3600).Return(nil).AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(context.Background(), 101)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(101), res.RoomID)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	f := newFixture(t)

	disabled := false

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "take room out of service",
			req:  dto.UpdateRoomRequest{Available: &disabled},
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &disabled, fields[model.FieldAvailable])

						return nil
					})
				f.cache.EXPECT().Delete(gomock.Any(), "room:get:101").Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "move to unknown category",
			req:  dto.UpdateRoomRequest{Category: "Penthouse"},
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Notes: "repainted"},
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Update(context.Background(), admin, 101, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful delete",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "room has bookings",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "not found",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(context.Background(), admin, 101)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
