package domain

import "time"

// FriendRequest Model is a pending, directed proposal from Sender to Receiver.
// It is deleted on accept or decline.
type FriendRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair;index" json:"receiver_id"`
	Sender     User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Receiver   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Friendship Model is one direction of a friendship edge. Every edge is stored
// as two rows, (a, b) and (b, a), written and removed in the same transaction.
type Friendship struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	FriendID  uint `gorm:"primaryKey;autoIncrement:false;index"`
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Friend    User `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time
}
