package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/apperror"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/email"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/oauth"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/utils"
)

type fakePasswordResetRepo struct {
	tokens map[string]*entity.PasswordResetToken
}

func (f *fakePasswordResetRepo) Create(_ context.Context, token *entity.PasswordResetToken) error {
	if f.tokens == nil {
		f.tokens = map[string]*entity.PasswordResetToken{}
	}
	f.tokens[token.Token] = token
	return nil
}

func (f *fakePasswordResetRepo) GetByToken(_ context.Context, token string) (*entity.PasswordResetToken, error) {
	return f.tokens[token], nil
}

func (f *fakePasswordResetRepo) MarkAsUsed(_ context.Context, token string) error {
	if t, ok := f.tokens[token]; ok {
		t.Used = true
	}
	return nil
}

func (f *fakePasswordResetRepo) DeleteByEmail(_ context.Context, email string) error {
	for k, t := range f.tokens {
		if t.Email == email {
			delete(f.tokens, k)
		}
	}
	return nil
}

func (f *fakePasswordResetRepo) DeleteExpired(_ context.Context) error { return nil }

func newTestAuthService(users *fakeUserRepo, resets *fakePasswordResetRepo) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(users, resets, jwtManager, email.NewEmailService(email.EmailConfig{}))
}

func TestRegisterAndLogin(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	svc := newTestAuthService(users, &fakePasswordResetRepo{})

	user, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Ugo",
		LastName:  "Eze",
		Email:     "ugo@example.com",
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	if _, err := svc.Register(context.Background(), &RegisterInput{Email: "ugo@example.com", Password: "x"}); err == nil {
		t.Error("Register() with duplicate email did not fail")
	}

	out, err := svc.Login(context.Background(), &LoginInput{Email: "ugo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("Login() returned empty tokens")
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Email: "ugo@example.com", Password: "wrong"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), &LoginInput{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("Login() with unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshToken(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	svc := newTestAuthService(users, &fakePasswordResetRepo{})

	user, err := svc.Register(context.Background(), &RegisterInput{Email: "ugo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	out, err := svc.Login(context.Background(), &LoginInput{Email: "ugo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), out.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refreshed.User.ID != user.ID {
		t.Errorf("RefreshToken() user = %s, want %s", refreshed.User.ID, user.ID)
	}

	if _, err := svc.RefreshToken(context.Background(), "not-a-token"); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("RefreshToken() with garbage error = %v, want ErrInvalidToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	svc := newTestAuthService(users, &fakePasswordResetRepo{})

	hashed, _ := utils.HashPassword("oldpass")
	userID := uuid.New()
	users.users[userID] = &entity.User{ID: userID, Email: "ugo@example.com", Password: hashed}

	err := svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: "wrong",
		NewPassword:     "newpass",
	})
	if apperror.GetAppError(err).Code != 400 {
		t.Errorf("ChangePassword() with wrong current password code = %d, want 400", apperror.GetAppError(err).Code)
	}

	err = svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: "oldpass",
		NewPassword:     "newpass",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Email: "ugo@example.com", Password: "newpass"}); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	resets := &fakePasswordResetRepo{tokens: map[string]*entity.PasswordResetToken{}}
	svc := newTestAuthService(users, resets)

	userID := uuid.New()
	hashed, _ := utils.HashPassword("oldpass")
	users.users[userID] = &entity.User{ID: userID, Email: "ugo@example.com", Password: hashed}

	resets.tokens["good"] = &entity.PasswordResetToken{
		Email:     "ugo@example.com",
		Token:     "good",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	resets.tokens["stale"] = &entity.PasswordResetToken{
		Email:     "ugo@example.com",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	tests := []struct {
		name    string
		input   *ResetPasswordInput
		wantErr bool
	}{
		{"expired token", &ResetPasswordInput{Email: "ugo@example.com", Token: "stale", NewPassword: "x"}, true},
		{"unknown token", &ResetPasswordInput{Email: "ugo@example.com", Token: "nope", NewPassword: "x"}, true},
		{"email mismatch", &ResetPasswordInput{Email: "other@example.com", Token: "good", NewPassword: "x"}, true},
		{"valid", &ResetPasswordInput{Email: "ugo@example.com", Token: "good", NewPassword: "resetpass"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ResetPassword(context.Background(), tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResetPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Email: "ugo@example.com", Password: "resetpass"}); err != nil {
		t.Errorf("Login() after reset error = %v", err)
	}
}

func TestLoginWithGoogle(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	svc := newTestAuthService(users, &fakePasswordResetRepo{})

	info := &oauth.GoogleUserInfo{
		ID:            "google-123",
		Email:         "ugo@example.com",
		Name:          "Ugo Eze",
		GivenName:     "Ugo",
		FamilyName:    "Eze",
		Picture:       "https://example.com/pic.jpg",
		VerifiedEmail: true,
	}

	out, err := svc.LoginWithGoogle(context.Background(), info)
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}
	user := out.User
	if user.Provider != "google" {
		t.Errorf("Provider = %q, want google", user.Provider)
	}
	if user.ProviderID == nil || *user.ProviderID != "google-123" {
		t.Error("ProviderID not recorded")
	}
	if user.EmailVerifiedAt == nil {
		t.Error("verified Google email not marked verified")
	}

	// Second sign-in must reuse the account, not create another one
	if _, err := svc.LoginWithGoogle(context.Background(), info); err != nil {
		t.Fatalf("LoginWithGoogle() second call error = %v", err)
	}
	if len(users.users) != 1 {
		t.Errorf("user count = %d after repeat sign-in, want 1", len(users.users))
	}
}
