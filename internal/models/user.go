package models

import "time"

// User represents a storefront account.
type User struct {
	ID         string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name       string    `json:"name" bson:"name" gorm:"type:varchar(100);not null"`
	Email      string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password   string    `json:"-" bson:"password" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized to clients
	IsAdmin    bool      `json:"isAdmin" bson:"isAdmin"`
	Address    string    `json:"address" bson:"address"`
	City       string    `json:"city" bson:"city"`
	PostalCode string    `json:"postalCode" bson:"postalCode"`
	Country    string    `json:"country" bson:"country"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserRef is the owner snapshot joined into order listings.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Ref returns the public reference of u.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
}

// AdminUserUpdate carries the fields an admin may change on any account.
type AdminUserUpdate struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	IsAdmin *bool   `json:"isAdmin,omitempty"`
}
