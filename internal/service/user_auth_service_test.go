package service

import (
	"errors"
	"testing"

	"github.com/atelier-shop/internal/config"
	"github.com/atelier-shop/internal/repository"

	"gorm.io/gorm"
)

func newTestUserAuthService(db *gorm.DB) *UserAuthService {
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret"
	cfg.UserJWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupServiceTestDB(t, "auth_register")
	svc := newTestUserAuthService(db)

	user, token, expiresAt, err := svc.Register(RegisterInput{
		Email:    " Alice@Example.com ",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.UserName != "alice" {
		t.Fatalf("expected user name derived from email, got %s", user.UserName)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected session token issued")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login("alice@example.com", "supersecret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, _, _, err := svc.Login("alice@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "supersecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got: %v", err)
	}
}

func TestRegisterStoresOptionalContactFields(t *testing.T) {
	db := setupServiceTestDB(t, "auth_register_contact")
	svc := newTestUserAuthService(db)

	user, _, _, err := svc.Register(RegisterInput{
		Email:      "erin@example.com",
		Password:   "supersecret",
		UserName:   "Erin",
		Phone:      " 555-0199 ",
		Address:    " 9 Oak Ave ",
		PostalCode: "04524",
		EmailOptIn: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Phone != "555-0199" {
		t.Fatalf("expected trimmed phone, got %q", user.Phone)
	}
	if user.Address != "9 Oak Ave" {
		t.Fatalf("expected trimmed address, got %q", user.Address)
	}
	if user.PostalCode != "04524" {
		t.Fatalf("expected postal code stored, got %q", user.PostalCode)
	}
	if !user.EmailOptIn {
		t.Fatalf("expected email opt-in stored")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupServiceTestDB(t, "auth_duplicate")
	svc := newTestUserAuthService(db)

	if _, _, _, err := svc.Register(RegisterInput{Email: "bob@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "BOB@example.com", Password: "supersecret"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists, got: %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	db := setupServiceTestDB(t, "auth_weak")
	svc := newTestUserAuthService(db)

	if _, _, _, err := svc.Register(RegisterInput{Email: "carl@example.com", Password: "short"}); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected password too weak, got: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "supersecret"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad email, got: %v", err)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	db := setupServiceTestDB(t, "auth_change_pwd")
	svc := newTestUserAuthService(db)

	user, _, _, err := svc.Register(RegisterInput{Email: "dora@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	before := user.TokenVersion

	if err := svc.ChangePassword(user.ID, "wrongpass", "anothersecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
	if err := svc.ChangePassword(user.ID, "supersecret", "anothersecret"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	reloaded, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if reloaded.TokenVersion != before+1 {
		t.Fatalf("expected token version bumped, got %d", reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatalf("expected token invalid before set")
	}

	if _, _, _, err := svc.Login("dora@example.com", "anothersecret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	db := setupServiceTestDB(t, "auth_disabled")
	svc := newTestUserAuthService(db)

	user, _, _, err := svc.Register(RegisterInput{Email: "eve@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Table("users").Where("id = ?", user.ID).Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("eve@example.com", "supersecret"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected user disabled, got: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupServiceTestDB(t, "auth_profile")
	svc := newTestUserAuthService(db)

	user, _, _, err := svc.Register(RegisterInput{Email: "finn@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	phone := " 555-0100 "
	optIn := true
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Phone: &phone, EmailOptIn: &optIn})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Phone != "555-0100" {
		t.Fatalf("expected trimmed phone, got %q", updated.Phone)
	}
	if !updated.EmailOptIn {
		t.Fatalf("expected email opt in")
	}

	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty update, got: %v", err)
	}
	if _, err := svc.UpdateProfile(user.ID+100, UpdateProfileInput{Phone: &phone}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got: %v", err)
	}
}
