package domain

// Hobby Model
type Hobby struct {
	ID   uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name string `gorm:"size:100;not null" json:"name"` // Display name
}
