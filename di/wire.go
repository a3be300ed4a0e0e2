//go:build wireinject
// +build wireinject

package di

import (
	"leonine/config"
	"leonine/infras/jwt"
	"leonine/infras/kafka"
	"leonine/infras/mailer"
	"leonine/infras/otel"
	"leonine/infras/postgres"
	"leonine/infras/redis"
	"leonine/infras/s3"
	authService "leonine/internal/domains/auth/service"
	bookingRepository "leonine/internal/domains/booking/repository"
	bookingService "leonine/internal/domains/booking/service"
	categoryRepository "leonine/internal/domains/category/repository"
	categoryService "leonine/internal/domains/category/service"
	feedbackRepository "leonine/internal/domains/feedback/repository"
	feedbackService "leonine/internal/domains/feedback/service"
	galleryRepository "leonine/internal/domains/gallery/repository"
	galleryService "leonine/internal/domains/gallery/service"
	notificationPublisher "leonine/internal/domains/notification/publisher"
	notificationService "leonine/internal/domains/notification/service"
	roomRepository "leonine/internal/domains/room/repository"
	roomService "leonine/internal/domains/room/service"
	userRepository "leonine/internal/domains/user/repository"
	userService "leonine/internal/domains/user/service"
	authHandler "leonine/internal/handlers/auth"
	bookingHandler "leonine/internal/handlers/booking"
	categoryHandler "leonine/internal/handlers/category"
	feedbackHandler "leonine/internal/handlers/feedback"
	galleryHandler "leonine/internal/handlers/gallery"
	roomHandler "leonine/internal/handlers/room"
	userHandler "leonine/internal/handlers/user"
	"leonine/permissions"
	"leonine/shared/cache"
	"leonine/transport/http"
	"leonine/transport/http/middleware"
	"leonine/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var accountDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var catalogDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
	roomRepository.New,
	roomService.New,
	galleryRepository.New,
	galleryService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	feedbackRepository.New,
	feedbackService.New,
)

var domains = wire.NewSet(
	notificationPublisher.New,
	accountDomain,
	catalogDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	categoryHandler.New,
	roomHandler.New,
	bookingHandler.New,
	feedbackHandler.New,
	galleryHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() notificationService.Notification {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		mailer.New,
		s3.New,
		notificationService.New,
	)

	return nil
}
