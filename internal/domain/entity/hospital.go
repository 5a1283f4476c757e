package entity

import "time"

type Hospital struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Address      string     `gorm:"type:text;not null;default:''" json:"address"`
	ContactPhone string     `gorm:"type:varchar(50);not null;default:''" json:"contactPhone"`
	Rooms        StringList `gorm:"type:text;not null" json:"rooms"`
	Deleted      bool       `gorm:"not null;default:false;index" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

func (h *Hospital) HasRoom(room string) bool {
	return h.Rooms.Contains(room)
}
