package service

import (
	"context"
	"fmt"

	"leonine/config"
	"leonine/infras/otel"
	"leonine/internal/domains/gallery/model"
	"leonine/internal/domains/gallery/model/dto"
	"leonine/internal/domains/gallery/repository"
	"leonine/shared"
	"leonine/shared/cache"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGallery    = "gallery:get"
	cacheGetAllGallery = "gallery:gets"
	cacheCountGallery  = "gallery:count"
)

type Gallery interface {
	GetAll(ctx context.Context, params gDto.QueryParams, category string) (dto.GetGalleriesResponse, error)
	Get(ctx context.Context, id string) (dto.GalleryResponse, error)
	Create(ctx context.Context, caller principal.Principal, req dto.CreateGalleryRequest) (dto.GalleryResponse, error)
	Update(ctx context.Context, caller principal.Principal, id string, req dto.UpdateGalleryRequest) error
	Delete(ctx context.Context, caller principal.Principal, id string) error
}

type serviceImpl struct {
	repo  repository.Gallery
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Gallery, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Gallery {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, category string) (res dto.GetGalleriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{}
	if category != constant.Empty {
		filter = shared.FilterByID(category, model.FieldCategory, model.TableName)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGallery, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for galleries")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	galleries, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get galleries")

		return res, fmt.Errorf("failed to get galleries: %w", err)
	}

	res.FromModels(galleries, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save galleries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGallery, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count galleries")

		return total, fmt.Errorf("failed to count galleries: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GalleryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetGallery, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery")

		return res, nil
	}

	gallery, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery")

		return res, fmt.Errorf("failed to get gallery: %w", err)
	}

	if gallery.ID == constant.Empty {
		return res, failure.NotFound("gallery not found") // nolint:wrapcheck
	}

	res.FromModel(gallery)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, caller principal.Principal, req dto.CreateGalleryRequest) (res dto.GalleryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	gallery := req.ToModel(caller.Email)

	if err = s.repo.Insert(ctx, gallery); err != nil {
		log.Error().Err(err).Msg("failed to create gallery")

		return res, fmt.Errorf("failed to create gallery: %w", err)
	}

	res.FromModel(gallery)

	go s.invalidate(context.WithoutCancel(ctx), constant.Empty)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, caller principal.Principal, id string, req dto.UpdateGalleryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check gallery existence")

		return fmt.Errorf("failed to check gallery existence: %w", err)
	}

	if !exist {
		return failure.NotFound("gallery not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, caller.Email), filter); err != nil {
		log.Error().Err(err).Msg("failed to update gallery")

		return fmt.Errorf("failed to update gallery: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

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

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check gallery existence")

		return fmt.Errorf("failed to check gallery existence: %w", err)
	}

	if !exist {
		return failure.NotFound("gallery not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete gallery")

		return fmt.Errorf("failed to delete gallery: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

// invalidate drops the listings and, when id is set, the cached item.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != constant.Empty {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetGallery, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete gallery cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllGallery)
	shared.InvalidateCaches(ctx, s.cache, cacheCountGallery)
}
