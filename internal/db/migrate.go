package db

import (
	"context" // Seed timeout
	"fmt"     // Error wrapping

	"hobbymatch/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// DefaultHobbies seeds an empty hobby catalogue
var DefaultHobbies = []string{
	"Chess", "Hiking", "Cooking", "Reading", "Photography",
	"Cycling", "Gaming", "Painting", "Music", "Running",
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.AutoMigrate(&domain.Hobby{}, &domain.User{}, &domain.FriendRequest{}, &domain.Friendship{})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.")
	return nil
}

// SeedHobbies inserts names when the hobby table is empty
func SeedHobbies(ctx context.Context, db *gorm.DB, names []string) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Hobby{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count hobbies: %w", err)
	}
	if count > 0 {
		return 0, nil // Already seeded
	}
	hobbies := make([]domain.Hobby, len(names))
	for i, n := range names {
		hobbies[i] = domain.Hobby{Name: n}
	}
	if err := db.WithContext(ctx).Create(&hobbies).Error; err != nil {
		return 0, fmt.Errorf("seed hobbies: %w", err)
	}
	logrus.WithField("count", len(hobbies)).Info("Hobbies seeded.")
	return len(hobbies), nil
}
