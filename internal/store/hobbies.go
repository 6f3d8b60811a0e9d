package store

import (
	"context"
	"fmt"

	"hobbymatch/internal/domain"

	"gorm.io/gorm"
)

// ListHobbies returns the hobby catalogue ordered by id
func (s *Store) ListHobbies(ctx context.Context) ([]domain.Hobby, error) {
	var hobbies []domain.Hobby
	if err := s.conn(ctx).Order("id").Find(&hobbies).Error; err != nil {
		return nil, fmt.Errorf("list hobbies: %w", err)
	}
	return hobbies, nil
}

// CreateHobby adds a hobby to the catalogue
func (s *Store) CreateHobby(ctx context.Context, name string) (*domain.Hobby, error) {
	h := domain.Hobby{Name: name}
	if err := s.conn(ctx).Create(&h).Error; err != nil {
		return nil, fmt.Errorf("create hobby: %w", err)
	}
	return &h, nil
}

// HobbyIDs returns the hobby ids tagged on userID
func (s *Store) HobbyIDs(ctx context.Context, userID uint) ([]uint, error) {
	tx := s.conn(ctx)
	ok, err := exists(tx, &domain.User{}, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	var ids []uint
	if err := tx.Table("user_hobbies").Where("user_id = ?", userID).Order("hobby_id").Pluck("hobby_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load hobby ids: %w", err)
	}
	return ids, nil
}

// UsersSharingHobbies returns every user other than excludeID tagged with at
// least one of hobbyIDs, each once, ordered by id
func (s *Store) UsersSharingHobbies(ctx context.Context, hobbyIDs []uint, excludeID uint) ([]domain.User, error) {
	if len(hobbyIDs) == 0 {
		return nil, nil
	}
	tx := s.conn(ctx)
	sub := tx.Table("user_hobbies").Select("user_id").Where("hobby_id IN ?", hobbyIDs)
	var users []domain.User
	err := tx.Preload("Hobbies", func(db *gorm.DB) *gorm.DB { return db.Order("hobbies.id") }).
		Where("id IN (?)", sub).
		Where("id <> ?", excludeID).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	return users, nil
}

// hobbiesByIDs loads every hobby in ids, failing if any is unknown
func hobbiesByIDs(tx *gorm.DB, ids []uint) ([]domain.Hobby, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	uniq := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	var hobbies []domain.Hobby
	if err := tx.Where("id IN ?", uniq).Order("id").Find(&hobbies).Error; err != nil {
		return nil, fmt.Errorf("load hobbies: %w", err)
	}
	if len(hobbies) != len(uniq) {
		return nil, domain.ErrHobbyNotFound
	}
	return hobbies, nil
}
