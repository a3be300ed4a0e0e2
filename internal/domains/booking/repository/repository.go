package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"leonine/infras/otel"
	"leonine/infras/postgres"
	"leonine/internal/domains/booking/model"
	roomModel "leonine/internal/domains/room/model"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/logger"
	gRepo "leonine/shared/repository"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is not available")
	ErrOverlap         = errors.New("room is already booked for the selected dates")
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	// List returns matching bookings, latest arrival first.
	List(ctx context.Context, filter gDto.FilterGroup) ([]model.Booking, error)
	// Overlapping returns the non-terminal bookings of roomID that intersect window.
	Overlapping(ctx context.Context, roomID int64, window model.Window) ([]model.Booking, error)
	// OccupiedRoomIDs returns the rooms of category holding a non-terminal booking that intersects window.
	OccupiedRoomIDs(ctx context.Context, category string, window model.Window) ([]int64, error)
	// Admit assigns the booking id and inserts it while holding the room row lock.
	Admit(ctx context.Context, booking model.Booking) (model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func blockingFilter(roomID int64, window model.Window) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			window.OverlapFilter(model.TableName),
			model.ActiveFilter(model.TableName),
		},
	}
}

func (r *repositoryImpl) List(ctx context.Context, filter gDto.FilterGroup) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	where, args := r.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s.%s DESC, %s.%s DESC",
		strings.Join(r.Columns(), ", "), model.TableName, where,
		model.TableName, model.FieldStartAt, model.TableName, model.FieldID)

	res = []model.Booking{}

	if err = r.SelectNamed(ctx, &res, query, args); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Overlapping(ctx context.Context, roomID int64, window model.Window) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Overlapping")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return r.List(ctx, blockingFilter(roomID, window))
}

func (r *repositoryImpl) OccupiedRoomIDs(ctx context.Context, category string, window model.Window) (res []int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.OccupiedRoomIDs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldCategory,
				Operator: gDto.FilterOperatorEq,
				Value:    category,
				Table:    roomModel.TableName,
			},
			window.OverlapFilter(model.TableName),
			model.ActiveFilter(model.TableName),
		},
	}

	where, args := r.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT DISTINCT %[1]s.%[3]s FROM %[1]s JOIN %[2]s ON %[2]s.%[4]s = %[1]s.%[3]s %[5]s ORDER BY %[1]s.%[3]s",
		model.TableName, roomModel.TableName, model.FieldRoomID, roomModel.FieldRoomID, where)

	res = []int64{}

	if err = r.SelectNamed(ctx, &res, query, args); err != nil {
		return nil, fmt.Errorf("failed to get occupied rooms: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Admit(ctx context.Context, booking model.Booking) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Admit")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if err = r.lockRoom(ctx, tx, booking.RoomID); err != nil {
		return res, err
	}

	if err = r.ensureFree(ctx, tx, booking.RoomID, booking.Window()); err != nil {
		return res, err
	}

	// sequence values are not reused, a rollback leaves a gap
	if err = tx.GetContext(ctx, &booking.ID, fmt.Sprintf("SELECT nextval('%s')", model.SequenceName)); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to allocate booking id: %w", err)
	}

	if err = r.InsertTx(ctx, tx, booking); err != nil {
		if failure.IsPqCode(err, constant.PqErrorCodeUniqueViolation) || failure.IsPqCode(err, constant.PqErrorCodeExclusionViolation) {
			return res, ErrOverlap
		}

		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to commit booking: %w", err)
	}

	return booking, nil
}

// lockRoom takes the room row lock; concurrent admissions for the same room queue here.
func (r *repositoryImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, roomID int64) error {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE",
		roomModel.FieldAvailable, roomModel.TableName, roomModel.FieldRoomID)

	var available bool

	err := tx.GetContext(ctx, &available, query, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock room: %w", err)
	}

	if !available {
		return ErrRoomUnavailable
	}

	return nil
}

func (r *repositoryImpl) ensureFree(ctx context.Context, tx *sqlx.Tx, roomID int64, window model.Window) error {
	where, args := r.BuildWhereClause(ctx, blockingFilter(roomID, window))
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", model.TableName, where)

	prepare, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to prepare statement (booking): %w", err)
	}
	defer prepare.Close()

	var taken bool

	if err = prepare.GetContext(ctx, &taken, args); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if taken {
		return ErrOverlap
	}

	return nil
}
