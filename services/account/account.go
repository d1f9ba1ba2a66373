package account

import (
	"context"
	"time"

	accountRepo "staywise/database/repository/account"
	"staywise/models"
	"staywise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenWhitelist tracks the currently-valid token per account. Logout and
// re-login revoke whatever was issued before.
type TokenWhitelist interface {
	Whitelist(ctx context.Context, email, token string, ttl time.Duration) error
	Revoke(ctx context.Context, email string) error
}

// RedisWhitelist backs the whitelist with the auth Redis DB.
type RedisWhitelist struct {
	Client *redis.Client
}

func (w *RedisWhitelist) Whitelist(ctx context.Context, email, token string, ttl time.Duration) error {
	return utils.WhitelistToken(ctx, w.Client, email, token, ttl)
}

func (w *RedisWhitelist) Revoke(ctx context.Context, email string) error {
	return utils.RevokeToken(ctx, w.Client, email)
}

// AuthResponse carries the issued token back to the caller.
type AuthResponse struct {
	Token string          `json:"token"`
	Role  string          `json:"role"`
	User  *models.Account `json:"user"`
}

// RegisterInput is the self-service registration body. Accounts created this
// way are always clients; admins are provisioned out of band.
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

// Service handles registration, login and logout.
type Service struct {
	Repo      accountRepo.AccountRepository
	Whitelist TokenWhitelist

	logger *zap.Logger
}

func NewService(repo accountRepo.AccountRepository, whitelist TokenWhitelist, logger *zap.Logger) *Service {
	return &Service{Repo: repo, Whitelist: whitelist, logger: logger}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         models.RoleClient,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.Repo.Create(ctx, account); err != nil {
		if err == accountRepo.ErrDuplicateEmail {
			return nil, utils.NewDomainError(utils.KindConflict, "email %s is already registered", input.Email)
		}
		return nil, err
	}

	s.logger.Info("account registered", zap.String("email", account.Email))
	return account, nil
}

// Login verifies credentials, issues a token and whitelists it with the token
// lifetime as TTL. Lookup and password failures are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if err == accountRepo.ErrNotFound {
			return nil, utils.NewDomainError(utils.KindUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewDomainError(utils.KindUnauthorized, "invalid email or password")
	}

	token, err := utils.GenerateToken(account.Email, account.Role, utils.TokenLifetime)
	if err != nil {
		return nil, err
	}
	if err := s.Whitelist.Whitelist(ctx, account.Email, token, utils.TokenLifetime); err != nil {
		return nil, err
	}

	s.logger.Info("account logged in", zap.String("email", account.Email))
	return &AuthResponse{Token: token, Role: account.Role, User: account}, nil
}

// Logout revokes the caller's current token.
func (s *Service) Logout(ctx context.Context, email string) error {
	return s.Whitelist.Revoke(ctx, email)
}

// ListClients is a pass-through read used by admin screens.
func (s *Service) ListClients(ctx context.Context) ([]models.Account, error) {
	return s.Repo.ListByRole(ctx, models.RoleClient)
}

// DeleteClient removes a client account and revokes its live token. Admin
// accounts are provisioned out of band and cannot be deleted here.
func (s *Service) DeleteClient(ctx context.Context, email string) error {
	acc, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if err == accountRepo.ErrNotFound {
			return utils.NewDomainError(utils.KindNotFound, "account %s not found", email)
		}
		return err
	}
	if acc.Role != models.RoleClient {
		return utils.NewDomainError(utils.KindInvalidInput, "account %s is not a client", email)
	}

	// Revoke first; a deleted account must not keep a usable token.
	if err := s.Whitelist.Revoke(ctx, email); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, email); err != nil {
		if err == accountRepo.ErrNotFound {
			return utils.NewDomainError(utils.KindNotFound, "account %s not found", email)
		}
		return err
	}

	s.logger.Info("account deleted", zap.String("email", email))
	return nil
}
