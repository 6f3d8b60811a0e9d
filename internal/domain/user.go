package domain

import "time" // Date of birth and timestamps

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User Model
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FirstName   string     `gorm:"size:150" json:"first_name"`
	LastName    string     `gorm:"size:150" json:"last_name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	Role        string     `gorm:"size:20;default:user" json:"role"`
	Hobbies     []Hobby    `gorm:"many2many:user_hobbies;constraint:OnDelete:CASCADE;" json:"hobbies"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HobbyIDs returns the ids of the user's loaded hobbies
func (u *User) HobbyIDs() []uint {
	ids := make([]uint, len(u.Hobbies))
	for i, h := range u.Hobbies {
		ids[i] = h.ID
	}
	return ids
}

// HobbyNames returns the names of the user's loaded hobbies
func (u *User) HobbyNames() []string {
	names := make([]string, len(u.Hobbies))
	for i, h := range u.Hobbies {
		names[i] = h.Name
	}
	return names
}
