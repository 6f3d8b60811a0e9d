// Package testdb opens migrated in-memory databases and builds fixtures for tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"hobbymatch/internal/db"
	"hobbymatch/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database private to t
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1) // a second connection would see table locks mid-transaction
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Hobbies creates one hobby per name and returns them keyed by name
func Hobbies(t testing.TB, gdb *gorm.DB, names ...string) map[string]domain.Hobby {
	t.Helper()
	out := make(map[string]domain.Hobby, len(names))
	for _, n := range names {
		h := domain.Hobby{Name: n}
		if err := gdb.Create(&h).Error; err != nil {
			t.Fatalf("create hobby %s: %v", n, err)
		}
		out[n] = h
	}
	return out
}

// User creates a user tagged with hobbies. dob may be nil.
func User(t testing.TB, gdb *gorm.DB, username string, dob *time.Time, hobbies ...domain.Hobby) domain.User {
	t.Helper()
	u := domain.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "x",
		FirstName:   strings.ToUpper(username[:1]) + username[1:],
		DateOfBirth: dob,
		Role:        domain.RoleUser,
		Hobbies:     hobbies,
	}
	if err := gdb.Omit("Hobbies.*").Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// Date is a shorthand for a UTC calendar date
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
