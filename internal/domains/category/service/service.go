package service

import (
	"context"
	"fmt"

	"leonine/config"
	"leonine/infras/otel"
	"leonine/internal/domains/category/model"
	"leonine/internal/domains/category/model/dto"
	"leonine/internal/domains/category/repository"
	"leonine/shared"
	"leonine/shared/cache"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory    = "category:get"
	cacheGetAllCategory = "category:gets"
	cacheCountCategory  = "category:count"

	// rooms embed the category name, renames cascade into them
	cacheRoom = "room"
)

type Category interface {
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetCategoriesResponse, error)
	GetByName(ctx context.Context, name string) (dto.CategoryResponse, error)
	Create(ctx context.Context, caller principal.Principal, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	UpdateByID(ctx context.Context, caller principal.Principal, id string, req dto.UpdateCategoryRequest) error
	UpdateByName(ctx context.Context, caller principal.Principal, name string, req dto.UpdateCategoryRequest) error
	Delete(ctx context.Context, caller principal.Principal, id string) error
}

type serviceImpl struct {
	repo  repository.Category
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Category, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func filterByName(name string) gDto.FilterGroup {
	return shared.FilterByID(name, model.FieldName, model.TableName)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if params.SortBy == constant.Empty {
		params.SortBy, params.SortDir = model.FieldName, gDto.SortDirAsc
	}

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCategory, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for categories")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get categories")

		return res, fmt.Errorf("failed to get categories: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save categories to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCategory, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count categories")

		return res, fmt.Errorf("failed to count categories: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save category count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByName(ctx context.Context, name string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByName")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetCategory, name)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for category")

		return res, nil
	}

	category, err := s.repo.Get(ctx, filterByName(name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get category")

		return res, fmt.Errorf("failed to get category: %w", err)
	}

	if category.ID == constant.Empty {
		return res, failure.NotFound("category not found") // nolint:wrapcheck
	}

	res.FromModel(category)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save category to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, caller principal.Principal, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	exist, err := s.repo.Exist(ctx, filterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check category name")

		return res, fmt.Errorf("failed to check category name: %w", err)
	}

	if exist {
		return res, failure.Conflict("category already exists") // nolint:wrapcheck
	}

	category := req.ToModel(caller.Email)

	if err = s.repo.Insert(ctx, category); err != nil {
		if failure.IsPqCode(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("category already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create category")

		return res, fmt.Errorf("failed to create category: %w", err)
	}

	res.FromModel(category)

	go s.invalidate(context.WithoutCancel(ctx), false)

	return res, nil
}

func (s *serviceImpl) UpdateByID(ctx context.Context, caller principal.Principal, id string, req dto.UpdateCategoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateByID")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.update(ctx, caller, shared.FilterByID(id, model.FieldID, model.TableName), req)
}

func (s *serviceImpl) UpdateByName(ctx context.Context, caller principal.Principal, name string, req dto.UpdateCategoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateByName")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.update(ctx, caller, filterByName(name), req)
}

func (s *serviceImpl) update(ctx context.Context, caller principal.Principal, filter gDto.FilterGroup, req dto.UpdateCategoryRequest) error {
	if !caller.IsAdmin() {
		return failure.ForbiddenError
	}

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get category")

		return fmt.Errorf("failed to get category: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("category not found") // nolint:wrapcheck
	}

	renamed := req.Name != constant.Empty && req.Name != current.Name
	if renamed {
		exist, err := s.repo.Exist(ctx, filterByName(req.Name))
		if err != nil {
			log.Error().Err(err).Msg("failed to check category name")

			return fmt.Errorf("failed to check category name: %w", err)
		}

		if exist {
			return failure.Conflict("category already exists") // nolint:wrapcheck
		}
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, caller.Email), shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update category")

		return fmt.Errorf("failed to update category: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCategory, current.Name)); err != nil {
			log.Error().Err(err).Msg("failed to delete category cache")
		}

		s.invalidate(c, renamed)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, caller principal.Principal, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get category")

		return fmt.Errorf("failed to get category: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("category not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if failure.IsPqCode(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("category still has rooms") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete category")

		return fmt.Errorf("failed to delete category: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCategory, current.Name)); err != nil {
			log.Error().Err(err).Msg("failed to delete category cache")
		}

		s.invalidate(c, false)
	}()

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, rooms bool) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllCategory)
	shared.InvalidateCaches(ctx, s.cache, cacheCountCategory)

	if rooms {
		shared.InvalidateCaches(ctx, s.cache, cacheRoom)
	}
}
