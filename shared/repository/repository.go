package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"leonine/infras/otel"
	"leonine/infras/postgres"
	"leonine/shared/constant"
	"leonine/shared/dto"
	"leonine/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Repository is a table gateway for one entity whose fields carry db tags.
// Embedded structs (shared metadata) contribute their columns too.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   string
	entity  string
	primary string
	columns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:      dbConnection,
		otel:    otl,
		table:   tableName,
		entity:  entityName,
		primary: primaryColumn,
		columns: dbColumns(reflect.TypeOf(zero)),
	}
}

// Columns returns the entity columns qualified with the table name.
func (repo *Repository[T]) Columns() []string {
	qualified := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		qualified = append(qualified, repo.table+"."+col)
	}

	return qualified
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

// SelectNamed runs a named query on the read connection and scans every row into dest.
func (repo *Repository[T]) SelectNamed(ctx context.Context, dest any, query string, args map[string]any) (err error) {
	ctx, scope := repo.scope(ctx, "select")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, dest, args); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to select data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) getNamed(ctx context.Context, dest any, query string, args map[string]any) (err error) {
	ctx, scope := repo.scope(ctx, "get")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, dest, args)
	if errors.Is(err, sql.ErrNoRows) {
		return err //nolint:wrapcheck
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to get data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	placeholders := make([]string, 0, len(repo.columns))
	for _, col := range repo.columns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

// InsertTx inserts inside a caller-owned transaction.
func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	exist := false
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	if err := repo.getNamed(ctx, &exist, query, args); err != nil {
		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entity, err)
	}

	return exist, nil
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1", repo.selectList(columns), repo.table, where)

	err := repo.getNamed(ctx, &model, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// GetAll pages through matching rows. Sorting is honoured only for known columns.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s",
		repo.selectList(columns), repo.table, where, repo.ordering(params), paginate(params, args))

	models := []T{}

	if err := repo.SelectNamed(ctx, &models, query, args); err != nil {
		return nil, err
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.table, repo.primary, repo.table, where)

	var count int

	if err := repo.getNamed(ctx, &count, query, args); err != nil {
		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entity, err)
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, scope, repo.db.Write, fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args, "delete")
}

// Update sets the given columns on every matching row. An empty filter is refused.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	fields := slices.Sorted(maps.Keys(mod))
	assignments := make([]string, 0, len(fields))

	for _, col := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, mod)

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)

	return repo.exec(ctx, scope, repo.db.Write, query, args, "update")
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, query string, args map[string]any, op string) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to %s data (%s): %w", op, repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

func (repo *Repository[T]) selectList(only []string) string {
	if len(only) == 0 {
		return strings.Join(repo.Columns(), ", ")
	}

	picked := []string{}

	for _, col := range repo.columns {
		if slices.Contains(only, col) {
			picked = append(picked, repo.table+"."+col)
		}
	}

	return strings.Join(picked, ", ")
}

func (repo *Repository[T]) ordering(params dto.QueryParams) string {
	if !slices.Contains(repo.columns, params.SortBy) {
		return ""
	}

	dir := dto.SortDirAsc
	if params.SortDir == dto.SortDirDesc {
		dir = dto.SortDirDesc
	}

	return fmt.Sprintf("ORDER BY %s.%s %s", repo.table, params.SortBy, dir)
}

func paginate(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit

	if params.Page <= 0 {
		return "LIMIT :limit"
	}

	args["offset"] = (params.Page - 1) * params.Limit

	return "LIMIT :limit OFFSET :offset"
}

func dbColumns(t reflect.Type) []string {
	columns := []string{}

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
