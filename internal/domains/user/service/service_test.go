package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"leonine/config"
	"leonine/infras/otel/mocks"
	userMocks "leonine/internal/domains/user/mocks"
	"leonine/internal/domains/user/model"
	"leonine/internal/domains/user/model/dto"
	"leonine/internal/domains/user/service"
	cacheMocks "leonine/shared/cache/mocks"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	admin    = principal.Principal{UserID: "u-1", Email: "admin@leonine.test", Role: "admin"}
	customer = principal.Principal{UserID: "u-2", Email: "guest@leonine.test", Role: "user"}
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestUserService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	t.Run("admin lists users", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{
			{ID: "u-2", Email: "guest@leonine.test", Password: "hash", Type: "user"},
		}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).Times(2)

		res, err := svc.GetAll(context.Background(), admin, params)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 12, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Equal(t, "guest@leonine.test", res.Users[0].Email)
	})

	t.Run("customer forbidden", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.GetAll(context.Background(), customer, params)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestUserService_Me(t *testing.T) {
	t.Run("from repository", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "user:get:u-2", gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-2", FirstName: "Ada", Email: customer.Email}, nil)
		mockCache.EXPECT().Save(gomock.Any(), "user:get:u-2", gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Me(context.Background(), customer)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "Ada", res.FirstName)
	})

	t.Run("account removed", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Me(context.Background(), customer)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_AdminUpdates(t *testing.T) {
	disabled := true

	tests := []struct {
		name      string
		caller    principal.Principal
		call      func(svc service.User, caller principal.Principal) error
		setupMock func(mockRepo *userMocks.MockUser, mockCache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name:   "disable account",
			caller: admin,
			call: func(svc service.User, caller principal.Principal) error {
				return svc.SetDisabled(context.Background(), caller, "u-2", dto.DisableUserRequest{Disabled: &disabled})
			},
			setupMock: func(mockRepo *userMocks.MockUser, mockCache *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &disabled, fields[model.FieldDisabled])

						return nil
					})
				mockCache.EXPECT().Delete(gomock.Any(), "user:get:u-2").Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name:   "change type",
			caller: admin,
			call: func(svc service.User, caller principal.Principal) error {
				return svc.ChangeType(context.Background(), caller, "u-2", dto.ChangeTypeRequest{Type: "customer"})
			},
			setupMock: func(mockRepo *userMocks.MockUser, mockCache *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "customer", fields[model.FieldType])

						return nil
					})
				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name:   "change type of unknown user",
			caller: admin,
			call: func(svc service.User, caller principal.Principal) error {
				return svc.ChangeType(context.Background(), caller, "missing", dto.ChangeTypeRequest{Type: "admin"})
			},
			setupMock: func(mockRepo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "delete",
			caller: admin,
			call: func(svc service.User, caller principal.Principal) error {
				return svc.Delete(context.Background(), caller, "u-2")
			},
			setupMock: func(mockRepo *userMocks.MockUser, mockCache *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name:   "delete unknown user",
			caller: admin,
			call: func(svc service.User, caller principal.Principal) error {
				return svc.Delete(context.Background(), caller, "missing")
			},
			setupMock: func(mockRepo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "customer cannot disable",
			caller: customer,
			call: func(svc service.User, caller principal.Principal) error {
				return svc.SetDisabled(context.Background(), caller, "u-1", dto.DisableUserRequest{Disabled: &disabled})
			},
			setupMock: func(*userMocks.MockUser, *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:   "customer cannot delete",
			caller: customer,
			call: func(svc service.User, caller principal.Principal) error {
				return svc.Delete(context.Background(), caller, "u-1")
			},
			setupMock: func(*userMocks.MockUser, *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			err := tt.call(svc, tt.caller)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
