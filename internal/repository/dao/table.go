package dao

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Scope narrows a query. Scopes built from empty filter values are no-ops.
type Scope = func(*gorm.DB) *gorm.DB

// Table is the CRUD surface shared by every resource DAO.
type Table[T any] struct {
	db       *gorm.DB
	notFound error
}

func newTable[T any](db *gorm.DB, notFound error) Table[T] {
	return Table[T]{
		db:       db,
		notFound: notFound,
	}
}

func (t Table[T]) FindByID(ctx context.Context, id uint, scopes ...Scope) (T, error) {
	var row T

	result := t.db.WithContext(ctx).Scopes(scopes...).First(&row, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return row, t.notFound
		}

		return row, result.Error
	}

	return row, nil
}

func (t Table[T]) Insert(ctx context.Context, row T) (T, error) {
	result := t.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return row, result.Error
	}

	return row, nil
}

// Update writes every column of row except the omitted ones.
func (t Table[T]) Update(ctx context.Context, row T, omit ...string) (T, error) {
	result := t.db.WithContext(ctx).
		Model(&row).
		Select("*").
		Omit(append(omit, "id", "created_at")...).
		Updates(&row)
	if result.Error != nil {
		return row, result.Error
	}
	if result.RowsAffected == 0 {
		return row, t.notFound
	}

	return row, nil
}

func (t Table[T]) Delete(ctx context.Context, id uint) error {
	var row T

	result := t.db.WithContext(ctx).Delete(&row, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return t.notFound
	}

	return nil
}

func (t Table[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var (
		row   T
		total int64
	)

	result := t.db.WithContext(ctx).Model(&row).Scopes(scopes...).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

// List returns one page of rows plus the total number of matching rows.
func (t Table[T]) List(ctx context.Context, offset, limit int, scopes ...Scope) ([]T, int64, error) {
	total, err := t.Count(ctx, scopes...)
	if err != nil {
		return nil, 0, err
	}

	var rows []T
	result := t.db.WithContext(ctx).Scopes(scopes...).Offset(offset).Limit(limit).Find(&rows)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return rows, total, nil
}

func (t Table[T]) All(ctx context.Context, scopes ...Scope) ([]T, error) {
	var rows []T

	result := t.db.WithContext(ctx).Scopes(scopes...).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// Adjust adds delta to an integer column in one statement. Extra scopes act as
// a guard; ok is false when no row matched.
func (t Table[T]) Adjust(ctx context.Context, id uint, column string, delta int, guards ...Scope) (bool, error) {
	var row T

	result := t.db.WithContext(ctx).
		Model(&row).
		Where("id = ?", id).
		Scopes(guards...).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		(constraint == "" || strings.Contains(pgErr.ConstraintName+" "+pgErr.Message, constraint))
}
