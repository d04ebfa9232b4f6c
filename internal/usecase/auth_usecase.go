package usecase

import (
	"context"
	"errors"
	"net/http"

	"shopapp/internal/auth"
	"shopapp/internal/domain/model"
)

// AuthUsecase は /auth の業務ロジック。
type AuthUsecase struct {
	svc *auth.Service
}

// DI
func NewAuthUsecase(svc *auth.Service) *AuthUsecase {
	return &AuthUsecase{svc: svc}
}

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (model.User, error) {
	user, err := u.svc.Login(ctx, in.Email, in.Password)
	if errors.Is(err, auth.ErrInvalidInput) {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email required")
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return model.User{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return user, nil
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	user, err := u.svc.Register(ctx, in.Email, in.Password, in.Name)
	if errors.Is(err, auth.ErrInvalidInput) {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email, password (6+) and name required")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return user, nil
}

func (u *AuthUsecase) Logout(ctx context.Context) {
	u.svc.Logout(ctx)
}

func (u *AuthUsecase) Me(ctx context.Context) (model.User, error) {
	user := u.svc.CurrentUser()
	if user == nil {
		return model.User{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return *user, nil
}
