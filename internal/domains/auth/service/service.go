package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"leonine/config"
	"leonine/infras/jwt"
	"leonine/infras/otel"
	"leonine/internal/domains/auth/model/dto"
	notificationModel "leonine/internal/domains/notification/model"
	"leonine/internal/domains/notification/publisher"
	userModel "leonine/internal/domains/user/model"
	userRepo "leonine/internal/domains/user/repository"
	"leonine/shared"
	"leonine/shared/cache"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/password"
	"leonine/shared/principal"
	"leonine/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheOTP = "auth:otp"

	otpMin  = 1000
	otpSpan = 9000

	msgUserNotFound = "user not found"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) error
	ResendOTP(ctx context.Context, req dto.ResendOTPRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, caller principal.Principal, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cache      cache.RedisCache
	publisher  publisher.Publisher
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cache cache.RedisCache, publisher publisher.Publisher, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cache:      cache,
		publisher:  publisher,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    dto.NormalizeEmail(email),
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.userRepo.Exist(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if failure.IsPqCode(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueOTP(ctx, user)
}

// issueOTP replaces any pending code for the account and sends the new one.
func (s *serviceImpl) issueOTP(ctx context.Context, user userModel.User) error {
	otp, err := generateOTP()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate otp")

		return fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheOTP, user.Email), otp, s.cfg.Auth.OTPTTLSeconds); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to store otp")

		return fmt.Errorf("failed to store otp: %w", err)
	}

	event := notificationModel.NewAccountOTP(user.Email, user.FullName(), otp)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, event); err != nil {
			log.Error().Err(err).Str("email", user.Email).Msg("failed to publish otp notification")
		}
	}()

	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read random number: %w", err)
	}

	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

func (s *serviceImpl) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyEmail")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheOTP, dto.NormalizeEmail(req.Email))

	var otp string

	if err = s.cache.Get(ctx, cacheKey, &otp); err != nil {
		if errors.Is(err, cache.Nil) {
			return failure.BadRequestFromString("OTP is invalid or expired") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to get otp")

		return fmt.Errorf("failed to get otp: %w", err)
	}

	if otp != req.OTP {
		return failure.BadRequestFromString("OTP is invalid") // nolint:wrapcheck
	}

	fields := shared.TransformFields(dto.VerifiedRequest{EmailVerified: true}, constant.ContextGuest)

	if err = s.userRepo.Update(ctx, fields, filterByEmail(req.Email)); err != nil {
		log.Error().Err(err).Msg("failed to mark email verified")

		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("failed to delete used otp")
	}

	return nil
}

func (s *serviceImpl) ResendOTP(ctx context.Context, req dto.ResendOTPRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResendOTP")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.userRepo.Get(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	if user.EmailVerified {
		return failure.BadRequestFromString("email is already verified") // nolint:wrapcheck
	}

	return s.issueOTP(ctx, user)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	emailFilter := filterByEmail(req.Email)

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	if user.Disabled {
		return res, failure.Forbidden("this account has been disabled") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Forbidden("incorrect password") // nolint:wrapcheck
	}

	if !user.EmailVerified {
		return res, failure.Forbidden("email is not verified yet, confirm the OTP before signing in") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Type)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := timezone.Now()
	updatedFields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: lastLogin}, user.Email)

	if err := s.userRepo.Update(ctx, updatedFields, emailFilter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	user.LastLogin = &lastLogin

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, caller principal.Principal, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(caller.UserID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, caller.Email)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
