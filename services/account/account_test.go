package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"staywise/config"
	accountRepo "staywise/database/repository/account"
	"staywise/models"
	"staywise/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memAccountRepo struct {
	accounts map[string]models.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]models.Account{}}
}

func (m *memAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return nil, accountRepo.ErrNotFound
	}
	return &a, nil
}

func (m *memAccountRepo) ListByRole(ctx context.Context, role string) ([]models.Account, error) {
	var out []models.Account
	for _, a := range m.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if _, exists := m.accounts[account.Email]; exists {
		return accountRepo.ErrDuplicateEmail
	}
	m.accounts[account.Email] = *account
	return nil
}

func (m *memAccountRepo) Delete(ctx context.Context, email string) error {
	if _, ok := m.accounts[email]; !ok {
		return accountRepo.ErrNotFound
	}
	delete(m.accounts, email)
	return nil
}

type memWhitelist struct {
	tokens map[string]string
}

func newMemWhitelist() *memWhitelist {
	return &memWhitelist{tokens: map[string]string{}}
}

func (w *memWhitelist) Whitelist(ctx context.Context, email, token string, ttl time.Duration) error {
	w.tokens[email] = token
	return nil
}

func (w *memWhitelist) Revoke(ctx context.Context, email string) error {
	delete(w.tokens, email)
	return nil
}

func newTestService() (*Service, *memAccountRepo, *memWhitelist) {
	config.AppConfig.JWTSecret = "test-secret"
	repo := newMemAccountRepo()
	wl := newMemWhitelist()
	return NewService(repo, wl, zap.NewNop()), repo, wl
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:    "a@b.com",
		Name:     "Ada",
		Phone:    "0700000000",
		Password: "correct horse",
	}
}

func TestRegisterHashesPasswordAndAssignsClientRole(t *testing.T) {
	svc, repo, _ := newTestService()

	account, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Role != models.RoleClient {
		t.Errorf("expected client role, got %s", account.Role)
	}
	if account.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if _, ok := repo.accounts["a@b.com"]; !ok {
		t.Error("account not persisted")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput())
	if utils.KindOf(err) != utils.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestLoginIssuesAndWhitelistsToken(t *testing.T) {
	svc, _, wl := newTestService()
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), "a@b.com", "correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("no token issued")
	}
	if resp.Role != models.RoleClient {
		t.Errorf("expected client role, got %s", resp.Role)
	}
	if wl.tokens["a@b.com"] != resp.Token {
		t.Error("issued token not whitelisted")
	}

	email, role, err := utils.ExtractIdentityFromToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if email != "a@b.com" || role != models.RoleClient {
		t.Errorf("token claims mismatch: sub=%s role=%s", email, role)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, wl := newTestService()
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "a@b.com", password: "nope"},
		{name: "unknown email", email: "ghost@b.com", password: "correct horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if utils.KindOf(err) != utils.KindUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			var de *utils.DomainError
			if !errors.As(err, &de) || de.Message != "invalid email or password" {
				t.Errorf("error leaks failure cause: %q", err.Error())
			}
		})
	}
	if len(wl.tokens) != 0 {
		t.Errorf("failed login whitelisted a token")
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, wl := newTestService()
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.com", "correct horse"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, ok := wl.tokens["a@b.com"]; ok {
		t.Error("token still whitelisted after logout")
	}
}

func TestDeleteClientRemovesAccountAndRevokesToken(t *testing.T) {
	svc, repo, wl := newTestService()
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.com", "correct horse"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.DeleteClient(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.accounts["a@b.com"]; ok {
		t.Error("account still present after delete")
	}
	if _, ok := wl.tokens["a@b.com"]; ok {
		t.Error("deleted account still has a whitelisted token")
	}
}

func TestDeleteClientUnknownAccount(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.DeleteClient(context.Background(), "ghost@b.com")
	if utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("expected notFound, got %v", err)
	}
}

func TestDeleteClientRejectsAdmins(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.accounts["admin@b.com"] = models.Account{Email: "admin@b.com", Role: models.RoleAdmin}

	err := svc.DeleteClient(context.Background(), "admin@b.com")
	if utils.KindOf(err) != utils.KindInvalidInput {
		t.Fatalf("expected invalidInput, got %v", err)
	}
	if _, ok := repo.accounts["admin@b.com"]; !ok {
		t.Error("admin account was deleted")
	}
}

func TestListClientsExcludesAdmins(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.accounts["admin@b.com"] = models.Account{Email: "admin@b.com", Role: models.RoleAdmin}
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	clients, err := svc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 1 || clients[0].Email != "a@b.com" {
		t.Errorf("expected only the client account, got %+v", clients)
	}
}
