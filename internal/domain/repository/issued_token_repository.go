package repository

import (
	"clinic-services/internal/domain/entity"

	"gorm.io/gorm"
)

type IssuedTokenRepository interface {
	Create(db *gorm.DB, token *entity.IssuedToken) error
	FindByAccessTokenID(db *gorm.DB, tokenID string) (*entity.IssuedToken, error)
	FindByRefreshTokenID(db *gorm.DB, tokenID string) (*entity.IssuedToken, error)
	InvalidateAllForUser(db *gorm.DB, userID int64) (int64, error)
}
