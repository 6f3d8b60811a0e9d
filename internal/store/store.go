// Package store is the relationship store: users, hobbies, friend requests and
// the symmetric friendship graph, backed by GORM.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql" // MySQL error codes
	"github.com/jackc/pgx/v5/pgconn" // Postgres error codes
	"gorm.io/gorm"
)

// Store wraps a GORM handle. All multi-row writes run inside db.Transaction.
type Store struct {
	db *gorm.DB
}

// New returns a Store over db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// isUniqueViolation reports whether err came from a unique index on any supported driver
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") // sqlite
}

// exists reports whether a row of model matches id
func exists(tx *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
