package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"clinic-services/config"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/repository"
	"clinic-services/internal/service"
	"clinic-services/pkg/jwt"
	"clinic-services/pkg/pagination"
)

type accountFixture struct {
	auth     AuthUsecase
	accounts AccountUsecase
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	db := openDB(t, config.ServiceAccount)
	log := quietLogger()

	userRepo := repository.NewUserRepository()
	tokenRepo := repository.NewIssuedTokenRepository()
	audit := service.NewAuditService(log, repository.NewAuditLogRepository())

	return &accountFixture{
		auth:     NewAuthUsecase(db, log, userRepo, tokenRepo, audit, jwt.NewJWTService(testJWTConfig())),
		accounts: NewAccountUsecase(db, log, userRepo, tokenRepo, audit),
	}
}

func TestAuthUsecase_SignUpAssignsBaseRole(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	user, err := f.auth.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "pw", FirstName: "Alice"})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if !reflect.DeepEqual(user.Roles, []string{"User"}) {
		t.Errorf("roles = %v, want [User]", user.Roles)
	}

	_, err = f.auth.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "other"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("second SignUp error = %v, want ErrUsernameTaken", err)
	}
}

func TestAuthUsecase_SignInRejectsBadPassword(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	if _, err := f.auth.SignUp(ctx, &dto.SignUpRequest{Username: "bob", Password: "right"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "bob", "wrong"},
		{"unknown user", "nobody", "right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.SignIn(ctx, &dto.SignInRequest{Username: tt.username, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("SignIn error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthUsecase_SignOutInvalidatesTokens(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	if _, err := f.auth.SignUp(ctx, &dto.SignUpRequest{Username: "carol", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	tokens, err := f.auth.SignIn(ctx, &dto.SignInRequest{Username: "carol", Password: "pw"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	caller, err := f.auth.Validate(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if caller.Username != "carol" || !caller.Roles.Has(entity.RoleUser) {
		t.Errorf("principal = %+v", caller)
	}

	refreshed, err := f.auth.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh before sign-out: %v", err)
	}
	if refreshed.AccessToken == tokens.AccessToken {
		t.Error("Refresh returned the same access token")
	}

	if err := f.auth.SignOut(ctx, caller); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	for _, token := range []string{tokens.AccessToken, refreshed.AccessToken} {
		if _, err := f.auth.Validate(ctx, token); !errors.Is(err, ErrTokenInvalidated) {
			t.Errorf("Validate after sign-out error = %v, want ErrTokenInvalidated", err)
		}
	}
	if _, err := f.auth.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken}); !errors.Is(err, ErrTokenInvalidated) {
		t.Errorf("Refresh after sign-out error = %v, want ErrTokenInvalidated", err)
	}
}

func TestAuthUsecase_TokenTypesAreNotInterchangeable(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	if _, err := f.auth.SignUp(ctx, &dto.SignUpRequest{Username: "dave", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	tokens, err := f.auth.SignIn(ctx, &dto.SignInRequest{Username: "dave", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.auth.Validate(ctx, tokens.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(refresh) error = %v, want ErrInvalidToken", err)
	}
	if _, err := f.auth.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Refresh(access) error = %v, want ErrInvalidToken", err)
	}
	if _, err := f.auth.Validate(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(garbage) error = %v, want ErrInvalidToken", err)
	}
}

func TestAccountUsecase_CreateDedupesRoles(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	admin := principal(1, entity.RoleAdmin)

	user, err := f.accounts.Create(ctx, admin, &dto.AccountRequest{
		Username: "house",
		Password: "pw",
		Roles:    []string{"Doctor", "Doctor"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !reflect.DeepEqual(user.Roles, []string{"Doctor", "User"}) {
		t.Errorf("roles = %v, want [Doctor User]", user.Roles)
	}

	_, err = f.accounts.Create(ctx, admin, &dto.AccountRequest{Username: "x", Password: "pw", Roles: []string{"Janitor"}})
	if !errors.Is(err, entity.ErrUnknownRole) {
		t.Errorf("unknown role error = %v, want ErrUnknownRole", err)
	}
}

func TestAccountUsecase_DeleteHidesAccount(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	admin := principal(1, entity.RoleAdmin)

	doctor, err := f.accounts.Create(ctx, admin, &dto.AccountRequest{
		Username:  "grey",
		Password:  "pw",
		FirstName: "Meredith",
		LastName:  "Grey",
		Roles:     []string{"Doctor"},
	})
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := f.auth.SignIn(ctx, &dto.SignInRequest{Username: "grey", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}

	exists, err := f.accounts.Exists(ctx, "Doctor", doctor.ID)
	if err != nil || !exists {
		t.Fatalf("Exists(Doctor) = %v, %v before delete", exists, err)
	}
	page, err := f.accounts.ListDoctors(ctx, "mere", pagination.Params{Count: 10})
	if err != nil || page.Count != 1 {
		t.Fatalf("ListDoctors = %+v, %v", page, err)
	}

	if err := f.accounts.Delete(ctx, admin, doctor.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if exists, _ := f.accounts.Exists(ctx, "Doctor", doctor.ID); exists {
		t.Error("deleted doctor still exists")
	}
	if page, _ := f.accounts.ListDoctors(ctx, "", pagination.Params{Count: 10}); page.Count != 0 {
		t.Errorf("deleted doctor listed: %+v", page)
	}
	if _, err := f.accounts.GetDoctor(ctx, doctor.ID); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("GetDoctor error = %v, want ErrDoctorNotFound", err)
	}
	if _, err := f.auth.Validate(ctx, tokens.AccessToken); !errors.Is(err, ErrTokenInvalidated) {
		t.Errorf("Validate error = %v, want ErrTokenInvalidated", err)
	}
	if _, err := f.auth.SignIn(ctx, &dto.SignInRequest{Username: "grey", Password: "pw"}); !errors.Is(err, ErrUserDeleted) {
		t.Errorf("SignIn error = %v, want ErrUserDeleted", err)
	}
	if err := f.accounts.Delete(ctx, admin, doctor.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second Delete error = %v, want ErrUserNotFound", err)
	}
}

func TestAccountUsecase_ExistsUnknownRole(t *testing.T) {
	f := newAccountFixture(t)

	exists, err := f.accounts.Exists(context.Background(), "Janitor", 1)
	if err != nil || exists {
		t.Errorf("Exists(Janitor) = %v, %v; want false, nil", exists, err)
	}
}
