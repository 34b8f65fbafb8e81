package commands

import (
	"context"

	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/pkg/jwt"
	"reservas-backend/internal/pkg/password"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAdminInactive        = errs.New("admin account inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type LoginResult struct {
	AdminID     uuid.UUID
	Email       string
	Role        string
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

type authCommandsImpl struct {
	adminStore queries.AdminReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(adminStore queries.AdminReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		adminStore: adminStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	account, err := a.adminStore.FindByEmail(ctx, req.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.ComparePassword(account.PasswordHash, req.Password); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	if !account.Active {
		return nil, ErrAdminInactive
	}

	token, err := a.jwtService.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		AdminID:     account.ID,
		Email:       account.Email,
		Role:        account.Role,
		AccessToken: token,
	}, nil
}

func (a *authCommandsImpl) ValidateToken(_ context.Context, token string) (*jwt.Claims, error) {
	claims, err := a.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	return claims, nil
}
