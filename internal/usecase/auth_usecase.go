package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-services/internal/converter"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/domain/repository"
	"clinic-services/internal/permission"
	"clinic-services/internal/service"
	"clinic-services/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenInvalidated   = errors.New("token has been invalidated")
	ErrUserDeleted        = errors.New("user has been deleted")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.UserResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error)
	SignOut(ctx context.Context, caller *permission.Principal) error
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Validate resolves an access token to its caller. The token must verify
	// and its issuing record must not be invalidated.
	Validate(ctx context.Context, accessToken string) (*permission.Principal, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	tokenRepo    repository.IssuedTokenRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	now          func() time.Time
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tokenRepo repository.IssuedTokenRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		auditService: auditService,
		jwtService:   jwtService,
		now:          time.Now,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.UserResponse, error) {
	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username:  req.Username,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Roles:     entity.NewRoleSet(),
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserSignUp, "user", user.ID, entity.JSON{"username": user.Username})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Deleted {
		return nil, ErrUserDeleted
	}

	var tokens *dto.TokenResponse
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tokens, err = u.issue(tx, user)
		if err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, &user.ID, entity.AuditActionUserSignIn, nil)
	})
	if err != nil {
		u.log.Warnf("Failed to issue tokens for user %d: %+v", user.ID, err)
		return nil, err
	}

	return tokens, nil
}

func (u *authUsecase) SignOut(ctx context.Context, caller *permission.Principal) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := u.tokenRepo.InvalidateAllForUser(tx, caller.ID)
		if err != nil {
			u.log.Warnf("Failed to invalidate tokens for user %d: %+v", caller.ID, err)
			return err
		}
		u.log.Infof("Invalidated %d tokens for user %d", n, caller.ID)
		return u.auditService.LogAction(ctx, tx, &caller.ID, entity.AuditActionUserSignOut, entity.JSON{"invalidated": n})
	})
}

// Refresh mints a new pair. The presented refresh token stays usable until
// the user signs out.
func (u *authUsecase) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateTyped(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	record, err := u.tokenRepo.FindByRefreshTokenID(u.db.WithContext(ctx), claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to find issued token: %+v", err)
		return nil, err
	}
	if record == nil || record.IsInvalidated {
		return nil, ErrTokenInvalidated
	}

	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), record.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalidated
	}

	var tokens *dto.TokenResponse
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tokens, err = u.issue(tx, user)
		if err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, &user.ID, entity.AuditActionTokenRefresh, nil)
	})
	if err != nil {
		u.log.Warnf("Failed to refresh tokens for user %d: %+v", user.ID, err)
		return nil, err
	}

	return tokens, nil
}

func (u *authUsecase) Validate(ctx context.Context, accessToken string) (*permission.Principal, error) {
	claims, err := u.jwtService.ValidateTyped(accessToken, jwt.AccessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	record, err := u.tokenRepo.FindByAccessTokenID(u.db.WithContext(ctx), claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to find issued token: %+v", err)
		return nil, err
	}
	if record == nil || record.IsInvalidated {
		return nil, ErrTokenInvalidated
	}

	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), record.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDeleted
	}

	return converter.UserToPrincipal(user), nil
}

// issue mints a token pair and records it inside tx.
func (u *authUsecase) issue(tx *gorm.DB, user *entity.User) (*dto.TokenResponse, error) {
	pair, err := u.jwtService.GeneratePair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	record := &entity.IssuedToken{
		UserID:         user.ID,
		AccessTokenID:  pair.AccessTokenID,
		RefreshTokenID: pair.RefreshTokenID,
		IssuedAt:       u.now().UTC(),
	}
	if err := u.tokenRepo.Create(tx, record); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
