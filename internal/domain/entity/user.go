package entity

import (
	"time"

	"gorm.io/gorm"
)

// User is the account record. Accounts are never removed, only flagged deleted.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FirstName string    `gorm:"type:varchar(150);not null;default:''" json:"firstName"`
	LastName  string    `gorm:"type:varchar(150);not null;default:''" json:"lastName"`
	Roles     RoleSet   `gorm:"type:text;not null" json:"roles"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave keeps the base role present on every write.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Roles.Add(BaseRole)
	return nil
}
