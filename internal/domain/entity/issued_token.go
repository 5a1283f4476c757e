package entity

import "time"

// IssuedToken records an access/refresh pair handed out to a user.
type IssuedToken struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64     `gorm:"not null;index" json:"userId"`
	AccessTokenID  string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	RefreshTokenID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	IsInvalidated  bool      `gorm:"not null;default:false" json:"isInvalidated"`
	IssuedAt       time.Time `gorm:"not null" json:"issuedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (IssuedToken) TableName() string {
	return "issued_tokens"
}
