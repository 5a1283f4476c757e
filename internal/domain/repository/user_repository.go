package repository

import (
	"clinic-services/internal/domain/entity"

	"gorm.io/gorm"
)

// UserFilter narrows active-user listings.
type UserFilter struct {
	Role       entity.Role
	NameFilter string
}

// UserRepository only ever returns users that are not flagged deleted,
// except FindByUsername which sign-in needs to tell deleted accounts apart.
type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	Update(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindActiveByID(db *gorm.DB, id int64) (*entity.User, error)
	FindActive(db *gorm.DB, filter UserFilter, limit, offset int) ([]entity.User, int64, error)
	ExistsActiveWithRole(db *gorm.DB, id int64, role entity.Role) (bool, error)
	SoftDelete(db *gorm.DB, id int64) (int64, error)
}
