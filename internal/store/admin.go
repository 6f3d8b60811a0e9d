package store

import (
	"context"
	"fmt"

	"hobbymatch/internal/domain"
)

// ListUsers returns one page of users and the total user count
func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var users []domain.User
	if err := s.conn(ctx).Preload("Hobbies").Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// ListFriendRequests returns one page of pending requests with both endpoints loaded
func (s *Store) ListFriendRequests(ctx context.Context, offset, limit int) ([]domain.FriendRequest, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(&domain.FriendRequest{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count friend requests: %w", err)
	}
	var reqs []domain.FriendRequest
	err := s.conn(ctx).Preload("Sender").Preload("Receiver").
		Order("id").Offset(offset).Limit(limit).Find(&reqs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list friend requests: %w", err)
	}
	return reqs, total, nil
}
