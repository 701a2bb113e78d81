package model

import "time"

// User mirrors an account of the identity provider. Rows are upserted from
// token claims and refreshed when the provider data changes.
type User struct {
	ID        string    `gorm:"size:128;primaryKey" json:"id"`
	Nickname  string    `gorm:"size:255;index" json:"nickname"`
	Picture   string    `gorm:"size:1024" json:"picture"`
	Country   string    `gorm:"size:8" json:"country"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Summary returns the denormalized form stored in settings.contacts
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Nickname: u.Nickname,
		Picture:  u.Picture,
		Country:  u.Country,
		Metadata: u.Metadata,
	}
}

// UserSummary is the public view of a user, also used for contacts
type UserSummary struct {
	ID       string  `json:"id"`
	Nickname string  `json:"nickname"`
	Picture  string  `json:"picture"`
	Country  string  `json:"country"`
	Metadata JSONMap `json:"metadata"`
}
