package service

import (
	"context"
	"fmt"

	"leonine/config"
	"leonine/infras/otel"
	categoryModel "leonine/internal/domains/category/model"
	categoryRepo "leonine/internal/domains/category/repository"
	"leonine/internal/domains/room/model"
	"leonine/internal/domains/room/model/dto"
	"leonine/internal/domains/room/repository"
	"leonine/shared"
	"leonine/shared/cache"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

type Room interface {
	Create(ctx context.Context, caller principal.Principal, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, category string) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, caller principal.Principal, id int64, req dto.UpdateRoomRequest) error
	Delete(ctx context.Context, caller principal.Principal, id int64) error
}

type serviceImpl struct {
	repo       repository.Room
	categories categoryRepo.Category
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Room, categories categoryRepo.Category, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:       repo,
		categories: categories,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func filterByRoomID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldRoomID, model.TableName)
}

func (s *serviceImpl) categoryExists(ctx context.Context, name string) (bool, error) {
	exist, err := s.categories.Exist(ctx, shared.FilterByID(name, categoryModel.FieldName, categoryModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("category", name).Msg("failed to check category existence")

		return false, fmt.Errorf("failed to check category existence: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) Create(ctx context.Context, caller principal.Principal, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	exist, err := s.categoryExists(ctx, req.Category)
	if err != nil {
		return res, err
	}

	if !exist {
		return res, failure.NotFound("category not found") // nolint:wrapcheck
	}

	exist, err = s.repo.Exist(ctx, filterByRoomID(req.RoomID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if exist {
		return res, failure.Conflict("room already exists") // nolint:wrapcheck
	}

	room := req.ToModel(caller.Email)

	if err = s.repo.Insert(ctx, room); err != nil {
		if failure.IsPqCode(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("room already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, category string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if params.SortBy == constant.Empty {
		params.SortBy, params.SortDir = model.FieldRoomID, gDto.SortDirAsc
	}

	filter := gDto.FilterGroup{}
	if category != constant.Empty {
		filter = shared.FilterByID(category, model.FieldCategory, model.TableName)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, filterByRoomID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.RoomID == 0 {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, caller principal.Principal, id int64, req dto.UpdateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return failure.ForbiddenError
	}

	filter := filterByRoomID(id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if req.Category != constant.Empty {
		exist, err = s.categoryExists(ctx, req.Category)
		if err != nil {
			return err
		}

		if !exist {
			return failure.NotFound("category not found") // nolint:wrapcheck
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, caller.Email), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, caller principal.Principal, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return failure.ForbiddenError
	}

	filter := filterByRoomID(id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if failure.IsPqCode(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("room still has bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete room from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
	shared.InvalidateCaches(ctx, s.cache, cacheCountRoom)
}
