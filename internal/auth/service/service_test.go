package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leadtrack_backend/internal/auth/password"
	"leadtrack_backend/internal/auth/repository"
	"leadtrack_backend/platform/apperr"
)

type fakeRepo struct {
	users  map[uuid.UUID]repository.User
	tokens map[string]refreshRecord
}

type refreshRecord struct {
	userID    uuid.UUID
	expiresAt time.Time
	revoked   bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  make(map[uuid.UUID]repository.User),
		tokens: make(map[string]refreshRecord),
	}
}

func (f *fakeRepo) addUser(t *testing.T, email, plain, role string) repository.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := repository.User{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Name:           "Tester",
		Email:          email,
		PasswordHash:   hash,
		Role:           role,
		CreatedAt:      time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) CreateRefreshToken(_ context.Context, userID uuid.UUID, hash string, expiresAt time.Time) error {
	f.tokens[hash] = refreshRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeRepo) GetRefreshToken(_ context.Context, hash string) (uuid.UUID, time.Time, error) {
	rec, ok := f.tokens[hash]
	if !ok || rec.revoked {
		return uuid.Nil, time.Time{}, repository.ErrNotFound
	}
	return rec.userID, rec.expiresAt, nil
}

func (f *fakeRepo) RevokeRefreshToken(_ context.Context, hash string) error {
	if rec, ok := f.tokens[hash]; ok {
		rec.revoked = true
		f.tokens[hash] = rec
	}
	return nil
}

func (f *fakeRepo) RevokeAllRefreshTokens(_ context.Context, userID uuid.UUID) error {
	for hash, rec := range f.tokens {
		if rec.userID == userID {
			rec.revoked = true
			f.tokens[hash] = rec
		}
	}
	return nil
}

type staticAuthConfig struct{}

func (staticAuthConfig) GetJWTAccessSecret() string        { return "test-secret" }
func (staticAuthConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (staticAuthConfig) GetRefreshTokenTTL() time.Duration { return 7 * 24 * time.Hour }

func TestSignInIssuesAccessTokenWithTenantClaims(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser(t, "asha@example.com", "correct horse battery", "manager")
	svc := New(repo, staticAuthConfig{})

	resp, err := svc.SignIn(context.Background(), "asha@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	parsed, err := jwt.Parse(resp.AccessToken, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token did not parse: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["role"] != "manager" {
		t.Errorf("role = %v, want manager", claims["role"])
	}
	if claims["org_id"] != user.OrganizationID.String() {
		t.Errorf("org_id = %v, want %s", claims["org_id"], user.OrganizationID)
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}
	if resp.RefreshToken == "" {
		t.Error("refresh token must be issued alongside the access token")
	}
}

func TestSignInWrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "asha@example.com", "correct horse battery", "staff")
	svc := New(repo, staticAuthConfig{})

	_, errWrong := svc.SignIn(context.Background(), "asha@example.com", "nope")
	_, errUnknown := svc.SignIn(context.Background(), "nobody@example.com", "nope")

	for _, err := range []error{errWrong, errUnknown} {
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Error("wrong password and unknown account must be indistinguishable")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "asha@example.com", "correct horse battery", "staff")
	svc := New(repo, staticAuthConfig{})

	first, err := svc.SignIn(context.Background(), "asha@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh must rotate the refresh token")
	}

	// The spent token must be unusable.
	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for spent refresh token, got %v", err)
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "asha@example.com", "correct horse battery", "staff")
	svc := New(repo, staticAuthConfig{})

	resp, err := svc.SignIn(context.Background(), "asha@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	if err := svc.SignOut(context.Background(), resp.RefreshToken); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if _, err := svc.Refresh(context.Background(), resp.RefreshToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized after sign-out, got %v", err)
	}
}
