package repository

import (
	"errors"
	"strings"

	"clinic-services/internal/domain/entity"
	domainRepo "clinic-services/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return translateWriteError(db.Create(user).Error)
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return translateWriteError(db.Save(user).Error)
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	var user entity.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByID(db *gorm.DB, id int64) (*entity.User, error) {
	var user entity.User
	err := db.Scopes(active).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActive(db *gorm.DB, filter domainRepo.UserFilter, limit, offset int) ([]entity.User, int64, error) {
	query := db.Model(&entity.User{}).Scopes(active, userFilter(filter))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := db.Scopes(active, userFilter(filter), paginate(limit, offset)).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) ExistsActiveWithRole(db *gorm.DB, id int64, role entity.Role) (bool, error) {
	var count int64
	err := db.Model(&entity.User{}).
		Scopes(active, userFilter(domainRepo.UserFilter{Role: role})).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SoftDelete flags the user deleted. Returns affected rows: 0 = unknown or already deleted.
func (r *userRepository) SoftDelete(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.User{}).
		Scopes(active).
		Where("id = ?", id).
		Update("deleted", true)
	return result.RowsAffected, result.Error
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// userFilter matches roles against the serialized set, which stores each
// role as a quoted JSON string.
func userFilter(filter domainRepo.UserFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Role != "" {
			db = db.Where("roles LIKE ?", `%"`+string(filter.Role)+`"%`)
		}
		if name := strings.TrimSpace(filter.NameFilter); name != "" {
			db = db.Where(`LOWER(first_name || ' ' || last_name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(name))+"%")
		}
		return db
	}
}
