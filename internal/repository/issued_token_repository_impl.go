package repository

import (
	"errors"

	"clinic-services/internal/domain/entity"
	domainRepo "clinic-services/internal/domain/repository"

	"gorm.io/gorm"
)

type issuedTokenRepository struct{}

func NewIssuedTokenRepository() domainRepo.IssuedTokenRepository {
	return &issuedTokenRepository{}
}

func (r *issuedTokenRepository) Create(db *gorm.DB, token *entity.IssuedToken) error {
	return translateWriteError(db.Create(token).Error)
}

func (r *issuedTokenRepository) FindByAccessTokenID(db *gorm.DB, tokenID string) (*entity.IssuedToken, error) {
	return r.findBy(db, "access_token_id", tokenID)
}

func (r *issuedTokenRepository) FindByRefreshTokenID(db *gorm.DB, tokenID string) (*entity.IssuedToken, error) {
	return r.findBy(db, "refresh_token_id", tokenID)
}

func (r *issuedTokenRepository) findBy(db *gorm.DB, column, tokenID string) (*entity.IssuedToken, error) {
	var token entity.IssuedToken
	err := db.Where(column+" = ?", tokenID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *issuedTokenRepository) InvalidateAllForUser(db *gorm.DB, userID int64) (int64, error) {
	result := db.Model(&entity.IssuedToken{}).
		Where("user_id = ? AND is_invalidated = ?", userID, false).
		Update("is_invalidated", true)
	return result.RowsAffected, result.Error
}
