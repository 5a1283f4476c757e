package usecase

import (
	"context"
	"errors"

	"clinic-services/internal/converter"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/domain/repository"
	"clinic-services/internal/permission"
	"clinic-services/internal/service"
	"clinic-services/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
)

type AccountUsecase interface {
	Me(ctx context.Context, caller *permission.Principal) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, caller *permission.Principal, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)

	List(ctx context.Context, page pagination.Params) (*pagination.Page[dto.UserResponse], error)
	Create(ctx context.Context, caller *permission.Principal, req *dto.AccountRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, caller *permission.Principal, id int64, req *dto.AccountRequest) (*dto.UserResponse, error)
	// Delete flags the account deleted and invalidates all of its tokens.
	Delete(ctx context.Context, caller *permission.Principal, id int64) error

	Exists(ctx context.Context, role string, id int64) (bool, error)
	ListDoctors(ctx context.Context, nameFilter string, page pagination.Params) (*pagination.Page[dto.DoctorResponse], error)
	GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error)
}

type accountUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	tokenRepo    repository.IssuedTokenRepository
	auditService service.AuditService
}

func NewAccountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tokenRepo repository.IssuedTokenRepository,
	auditService service.AuditService,
) AccountUsecase {
	return &accountUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		auditService: auditService,
	}
}

func (u *accountUsecase) Me(ctx context.Context, caller *permission.Principal) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *accountUsecase) UpdateMe(ctx context.Context, caller *permission.Principal, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	var user *entity.User
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err = u.userRepo.FindActiveByID(tx, caller.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.Password = hashedPassword
		if err := u.userRepo.Update(tx, user); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, &caller.ID, entity.AuditActionUserUpdate, nil)
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			u.log.Warnf("Failed to update profile of user %d: %+v", caller.ID, err)
		}
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *accountUsecase) List(ctx context.Context, page pagination.Params) (*pagination.Page[dto.UserResponse], error) {
	users, total, err := u.userRepo.FindActive(u.db.WithContext(ctx), repository.UserFilter{}, page.Count, page.From)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}
	return pagination.NewPage(converter.UsersToResponses(users), total), nil
}

func (u *accountUsecase) Create(ctx context.Context, caller *permission.Principal, req *dto.AccountRequest) (*dto.UserResponse, error) {
	roles, err := entity.ParseRoleSet(req.Roles)
	if err != nil {
		return nil, err
	}

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
		Roles:     roles,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionAdminCreate, "user", user.ID, converter.UserToResponse(user))
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.log.Infof("Account %d created by %d", user.ID, caller.ID)
	return converter.UserToResponse(user), nil
}

func (u *accountUsecase) Update(ctx context.Context, caller *permission.Principal, id int64, req *dto.AccountRequest) (*dto.UserResponse, error) {
	roles, err := entity.ParseRoleSet(req.Roles)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	var user *entity.User
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err = u.userRepo.FindActiveByID(tx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		before := converter.UserToResponse(user)
		user.Username = req.Username
		user.Password = hashedPassword
		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.Roles = roles
		if err := u.userRepo.Update(tx, user); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionAdminUpdate, "user", user.ID, before, converter.UserToResponse(user))
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return nil, err
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to update user %d: %+v", id, err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *accountUsecase) Delete(ctx context.Context, caller *permission.Principal, id int64) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := u.userRepo.SoftDelete(tx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrUserNotFound
		}
		if _, err := u.tokenRepo.InvalidateAllForUser(tx, id); err != nil {
			return err
		}
		return u.auditService.LogDelete(ctx, tx, &caller.ID, entity.AuditActionAdminDelete, "user", id, nil)
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			u.log.Warnf("Failed to delete user %d: %+v", id, err)
		}
		return err
	}

	u.log.Infof("Account %d deleted by %d", id, caller.ID)
	return nil
}

// Exists answers service-to-service checks. Unknown roles simply do not match.
func (u *accountUsecase) Exists(ctx context.Context, role string, id int64) (bool, error) {
	r, err := entity.ParseRole(role)
	if err != nil {
		return false, nil
	}

	exists, err := u.userRepo.ExistsActiveWithRole(u.db.WithContext(ctx), id, r)
	if err != nil {
		u.log.Warnf("Failed to check user existence: %+v", err)
		return false, err
	}
	return exists, nil
}

func (u *accountUsecase) ListDoctors(ctx context.Context, nameFilter string, page pagination.Params) (*pagination.Page[dto.DoctorResponse], error) {
	filter := repository.UserFilter{Role: entity.RoleDoctor, NameFilter: nameFilter}
	doctors, total, err := u.userRepo.FindActive(u.db.WithContext(ctx), filter, page.Count, page.From)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return pagination.NewPage(converter.UsersToDoctorResponses(doctors), total), nil
}

func (u *accountUsecase) GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if user == nil || !user.Roles.Has(entity.RoleDoctor) {
		return nil, ErrDoctorNotFound
	}

	doctor := converter.UserToDoctorResponse(user)
	return &doctor, nil
}
