package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hobbymatch/internal/domain"

	"gorm.io/gorm"
)

// ProfileUpdate is the full replacement set of editable profile fields
type ProfileUpdate struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	HobbyIDs    []uint
}

// CreateUser inserts u with the given hobbies. u.Password must already be hashed.
func (s *Store) CreateUser(ctx context.Context, u *domain.User, hobbyIDs []uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkIdentityFree(tx, 0, u.Username, u.Email); err != nil {
			return err
		}
		hobbies, err := hobbiesByIDs(tx, hobbyIDs)
		if err != nil {
			return err
		}
		u.Hobbies = hobbies
		if u.Role == "" {
			u.Role = domain.RoleUser
		}
		if err := tx.Omit("Hobbies.*").Create(u).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

// UserByID loads a user with hobbies
func (s *Store) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	return loadUser(s.conn(ctx), "id = ?", id)
}

// UserByUsername loads a user with hobbies
func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return loadUser(s.conn(ctx), "username = ?", username)
}

func loadUser(tx *gorm.DB, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := tx.Preload("Hobbies", func(db *gorm.DB) *gorm.DB { return db.Order("hobbies.id") }).
		Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// UpdateProfile replaces the editable fields and the hobby set of a user
func (s *Store) UpdateProfile(ctx context.Context, userID uint, p ProfileUpdate) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if err := checkIdentityFree(tx, userID, p.Username, p.Email); err != nil {
			return err
		}
		hobbies, err := hobbiesByIDs(tx, p.HobbyIDs)
		if err != nil {
			return err
		}
		// A map so a nil date of birth is written as NULL
		err = tx.Model(&u).Updates(map[string]any{
			"username":      p.Username,
			"email":         p.Email,
			"first_name":    p.FirstName,
			"last_name":     p.LastName,
			"date_of_birth": p.DateOfBirth,
		}).Error
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUsernameTaken
			}
			return fmt.Errorf("update profile: %w", err)
		}
		assoc := tx.Model(&u).Association("Hobbies")
		if len(hobbies) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(hobbies)
	})
}

// UpdatePassword stores a new password hash
func (s *Store) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	res := s.conn(ctx).Model(&domain.User{}).Where("id = ?", userID).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user together with every friend request it sent or
// received, both directions of each friendship, and its hobby links.
func (s *Store) DeleteUser(ctx context.Context, userID uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Delete(&domain.FriendRequest{}).Error; err != nil {
			return fmt.Errorf("delete friend requests: %w", err)
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", userID, userID).
			Delete(&domain.Friendship{}).Error; err != nil {
			return fmt.Errorf("delete friendships: %w", err)
		}
		if err := tx.Model(&u).Association("Hobbies").Clear(); err != nil {
			return fmt.Errorf("clear hobbies: %w", err)
		}
		if err := tx.Delete(&u).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// UsersExcept lists every user other than userID, ordered by id
func (s *Store) UsersExcept(ctx context.Context, userID uint) ([]domain.User, error) {
	var users []domain.User
	err := s.conn(ctx).Preload("Hobbies", func(db *gorm.DB) *gorm.DB { return db.Order("hobbies.id") }).
		Where("id <> ?", userID).Order("id").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// checkIdentityFree fails when username or email belongs to a user other than self
func checkIdentityFree(tx *gorm.DB, self uint, username, email string) error {
	var n int64
	if err := tx.Model(&domain.User{}).Where("username = ? AND id <> ?", username, self).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrUsernameTaken
	}
	if err := tx.Model(&domain.User{}).Where("email = ? AND id <> ?", email, self).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrEmailTaken
	}
	return nil
}
