package constant

import (
	"time"
)

const (
	// ContextGuest is recorded as the author of rows written before sign-in.
	ContextGuest = "guest"
	// ContextInternal identifies service callers authenticated by API key.
	ContextInternal = "internal"
)

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleCustomer = "customer"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID       = "id"
	RequestParamName     = "name"
	RequestParamCategory = "category"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// SQLSTATE codes the services translate into 409 responses.
const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
)

const (
	DateFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
	OtelKafkaScopeName    = "kafka"
	OtelMailerScopeName   = "mailer"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderAPIKey        = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=UTF-8"
)

const (
	ResponseErrorPrepareShutdown = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy       = "SERVER UNHEALTHY"
	ResponseHealthy              = "OK"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
