package store

import (
	"context"
	"errors"
	"fmt"

	"hobbymatch/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateFriendRequest records a pending request from senderID to receiverID
func (s *Store) CreateFriendRequest(ctx context.Context, senderID, receiverID uint) (uint, error) {
	if senderID == receiverID {
		return 0, domain.ErrSelfRequest
	}
	var id uint
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for _, uid := range []uint{senderID, receiverID} {
			ok, err := exists(tx, &domain.User{}, uid)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrUserNotFound
			}
		}
		friends, err := areFriends(tx, senderID, receiverID)
		if err != nil {
			return err
		}
		if friends {
			return domain.ErrAlreadyFriends
		}
		var n int64
		if err := tx.Model(&domain.FriendRequest{}).
			Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrDuplicateRequest
		}
		req := domain.FriendRequest{SenderID: senderID, ReceiverID: receiverID}
		if err := tx.Omit(clause.Associations).Create(&req).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateRequest // lost a race with a concurrent send
			}
			return fmt.Errorf("create friend request: %w", err)
		}
		id = req.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AcceptFriendRequest consumes the request and links both users as friends.
// A reverse pending request between the pair is consumed as well.
func (s *Store) AcceptFriendRequest(ctx context.Context, requestID, currentUserID uint) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := receivedRequest(tx, requestID, currentUserID, &req); err != nil {
			return err
		}
		a, b := req.SenderID, req.ReceiverID
		if err := tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
			Delete(&domain.FriendRequest{}).Error; err != nil {
			return fmt.Errorf("delete friend request: %w", err)
		}
		edges := []domain.Friendship{{UserID: a, FriendID: b}, {UserID: b, FriendID: a}}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).
			Create(&edges).Error; err != nil {
			return fmt.Errorf("insert friendship: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// DeclineFriendRequest deletes the request without linking the users
func (s *Store) DeclineFriendRequest(ctx context.Context, requestID, currentUserID uint) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := receivedRequest(tx, requestID, currentUserID, &req); err != nil {
			return err
		}
		if err := tx.Delete(&domain.FriendRequest{}, req.ID).Error; err != nil {
			return fmt.Errorf("delete friend request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// receivedRequest loads requestID into req and checks that receiverID owns it
func receivedRequest(tx *gorm.DB, requestID, receiverID uint, req *domain.FriendRequest) error {
	err := tx.First(req, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("load friend request: %w", err)
	}
	if req.ReceiverID != receiverID {
		return domain.ErrNotReceiver
	}
	return nil
}

// RemoveFriend deletes both directions of the friendship between userID and friendID
func (s *Store) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, friendID, friendID, userID).
			Delete(&domain.Friendship{})
		if res.Error != nil {
			return fmt.Errorf("delete friendship: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrFriendshipNotFound
		}
		return nil
	})
}

// AreFriends reports whether a and b are friends
func (s *Store) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	return areFriends(s.conn(ctx), a, b)
}

func areFriends(tx *gorm.DB, a, b uint) (bool, error) {
	var n int64
	err := tx.Model(&domain.Friendship{}).Where("user_id = ? AND friend_id = ?", a, b).Count(&n).Error
	return n > 0, err
}

// Friends lists the friends of userID with hobbies, ordered by username
func (s *Store) Friends(ctx context.Context, userID uint) ([]domain.User, error) {
	var users []domain.User
	err := s.conn(ctx).Preload("Hobbies", func(db *gorm.DB) *gorm.DB { return db.Order("hobbies.id") }).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return users, nil
}

// FriendIDs returns the ids of userID's friends
func (s *Store) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.conn(ctx).Model(&domain.Friendship{}).Where("user_id = ?", userID).Pluck("friend_id", &ids).Error
	return ids, err
}

// SentRequestReceiverIDs returns the receivers of userID's pending requests
func (s *Store) SentRequestReceiverIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.conn(ctx).Model(&domain.FriendRequest{}).Where("sender_id = ?", userID).Pluck("receiver_id", &ids).Error
	return ids, err
}

// ReceivedFriendRequests lists pending requests addressed to userID, oldest first
func (s *Store) ReceivedFriendRequests(ctx context.Context, userID uint) ([]domain.FriendRequest, error) {
	var reqs []domain.FriendRequest
	err := s.conn(ctx).Preload("Sender.Hobbies", func(db *gorm.DB) *gorm.DB { return db.Order("hobbies.id") }).
		Where("receiver_id = ?", userID).
		Order("id").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	return reqs, nil
}
