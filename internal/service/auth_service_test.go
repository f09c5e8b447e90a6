package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakePrincipalStore is an in-memory PrincipalStore for service tests.
type fakePrincipalStore struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*model.Principal
	wishlists map[int64]map[int64]bool
	applied   map[int64]map[int64]*string
}

func newFakeStore() *fakePrincipalStore {
	return &fakePrincipalStore{
		byID:      make(map[int64]*model.Principal),
		wishlists: make(map[int64]map[int64]bool),
		applied:   make(map[int64]map[int64]*string),
	}
}

func (f *fakePrincipalStore) Create(_ context.Context, p *model.Principal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Role == p.Role && existing.Email == p.Email {
			return errDuplicateEmailForTest
		}
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePrincipalStore) GetByID(_ context.Context, id int64) (*model.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrincipalStore) GetByEmail(_ context.Context, role model.Role, email string) (*model.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.Role == role && p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePrincipalStore) GetByRefreshToken(_ context.Context, token string) (*model.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.RefreshToken != "" && p.RefreshToken == token {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePrincipalStore) GetByResetTokenHash(_ context.Context, hash string) (*model.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.PasswordResetToken != nil && *p.PasswordResetToken == hash &&
			p.PasswordResetExpires != nil && p.PasswordResetExpires.After(time.Now()) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePrincipalStore) GetByVerificationTokenHash(_ context.Context, hash string) (*model.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.MailVerificationToken != nil && *p.MailVerificationToken == hash {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePrincipalStore) ListByRole(_ context.Context, role model.Role, limit, offset int) ([]model.Principal, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.Principal
	for _, p := range f.byID {
		if p.Role == role {
			all = append(all, *p)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakePrincipalStore) ListByCounselor(_ context.Context, counselorID int64) ([]model.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Principal
	for _, p := range f.byID {
		if p.Role == model.RoleStudent && p.CounselorID != nil && *p.CounselorID == counselorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePrincipalStore) UpdateProfile(_ context.Context, p *model.Principal) error {
	return f.replace(p)
}

func (f *fakePrincipalStore) UpdateAccount(_ context.Context, p *model.Principal) error {
	return f.replace(p)
}

func (f *fakePrincipalStore) replace(p *model.Principal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePrincipalStore) SetRefreshToken(_ context.Context, id int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.RefreshToken = token
	return nil
}

func (f *fakePrincipalStore) ClearRefreshTokenByValue(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.RefreshToken == token {
			p.RefreshToken = ""
		}
	}
	return nil
}

func (f *fakePrincipalStore) SetPassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.PasswordHash = hash
	return nil
}

func (f *fakePrincipalStore) SetResetToken(_ context.Context, id int64, hash string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.PasswordResetToken = &hash
	p.PasswordResetExpires = &expires
	return nil
}

func (f *fakePrincipalStore) ConsumeResetToken(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.PasswordHash = hash
	p.PasswordResetToken = nil
	p.PasswordResetExpires = nil
	return nil
}

func (f *fakePrincipalStore) SetVerificationToken(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.MailVerificationToken = &hash
	return nil
}

func (f *fakePrincipalStore) MarkVerified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.IsVerified = true
	p.MailVerificationToken = nil
	return nil
}

func (f *fakePrincipalStore) AssignCounselor(_ context.Context, studentID, counselorID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[studentID]
	if !ok {
		return pgx.ErrNoRows
	}
	p.CounselorID = &counselorID
	return nil
}

func (f *fakePrincipalStore) Delete(_ context.Context, role model.Role, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok || p.Role != role {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePrincipalStore) InWishlist(_ context.Context, studentID, universityID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wishlists[studentID][universityID], nil
}

func (f *fakePrincipalStore) AddWishlist(_ context.Context, studentID, universityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.wishlists[studentID] == nil {
		f.wishlists[studentID] = make(map[int64]bool)
	}
	f.wishlists[studentID][universityID] = true
	return nil
}

func (f *fakePrincipalStore) RemoveWishlist(_ context.Context, studentID, universityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.wishlists[studentID], universityID)
	return nil
}

func (f *fakePrincipalStore) GetWishlist(_ context.Context, studentID int64) ([]model.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []model.WishlistItem
	for id := range f.wishlists[studentID] {
		items = append(items, model.WishlistItem{UniversityID: id})
	}
	return items, nil
}

func (f *fakePrincipalStore) HasApplied(_ context.Context, studentID, universityID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.applied[studentID][universityID]
	return ok, nil
}

func (f *fakePrincipalStore) AddApplication(_ context.Context, studentID, universityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applied[studentID] == nil {
		f.applied[studentID] = make(map[int64]*string)
	}
	f.applied[studentID][universityID] = nil
	return nil
}

func (f *fakePrincipalStore) ListApplications(_ context.Context, studentID int64) ([]model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var apps []model.Application
	for id, status := range f.applied[studentID] {
		apps = append(apps, model.Application{UniversityID: id, Status: status})
	}
	return apps, nil
}

func (f *fakePrincipalStore) SetApplicationStatus(_ context.Context, studentID, universityID int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.applied[studentID][universityID]; !ok {
		return pgx.ErrNoRows
	}
	f.applied[studentID][universityID] = &status
	return nil
}

var errDuplicateEmailForTest = repository.ErrDuplicateEmail

// fakeMailer records sent messages.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		RefreshExpiry: 72 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
		FrontendURL:   "http://frontend.test/",
		APIBaseURL:    "http://api.test/",
		MailFrom:      "noreply@test",
	}
}

func newTestAuth(t *testing.T) (*AuthService, *fakePrincipalStore, *fakeMailer) {
	t.Helper()
	store := newFakeStore()
	mailer := &fakeMailer{}
	return NewAuthService(testConfig(), store, mailer, zerolog.Nop()), store, mailer
}

func seedPrincipal(t *testing.T, svc *AuthService, store *fakePrincipalStore, role model.Role, email, password string, verified bool) *model.Principal {
	t.Helper()
	hash, err := svc.HashPassword(password)
	require.NoError(t, err)
	p := &model.Principal{
		Role:         role,
		Name:         "Test " + string(role),
		Email:        email,
		PasswordHash: hash,
		IsVerified:   verified,
	}
	require.NoError(t, store.Create(context.Background(), p))
	return p
}

func TestHashPassword(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuth(t)

	hash, err := svc.HashPassword("Secret!1")
	require.NoError(t, err)
	require.NotEqual(t, "Secret!1", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	require.NoError(t, svc.CheckPassword(hash, "Secret!1"))
	require.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestAccessTokenCarriesRole(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuth(t)

	token, err := svc.IssueAccessToken(42, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, claims.Role)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuth(t)

	_, err := svc.ValidateToken("not-a-jwt")
	require.Error(t, err)

	// Token signed with a different secret.
	other := NewAuthService(&config.Config{JWTSecret: "other", JWTExpiry: time.Hour}, newFakeStore(), &fakeMailer{}, zerolog.Nop())
	forged, err := other.IssueAccessToken(1, model.RoleStudent)
	require.NoError(t, err)
	_, err = svc.ValidateToken(forged)
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newTestAuth(t)
		_, _, _, err := svc.Login(context.Background(), model.RoleStudent, "nobody@test", "pw")
		require.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("wrong password yields no token", func(t *testing.T) {
		svc, store, _ := newTestAuth(t)
		seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

		_, access, refresh, err := svc.Login(context.Background(), model.RoleStudent, "s@test", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Empty(t, access)
		require.Empty(t, refresh)
	})

	t.Run("role scoping", func(t *testing.T) {
		svc, store, _ := newTestAuth(t)
		seedPrincipal(t, svc, store, model.RoleAdmin, "a@test", "Secret!1", true)

		// Same email does not exist under the student role.
		_, _, _, err := svc.Login(context.Background(), model.RoleStudent, "a@test", "Secret!1")
		require.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("unverified student gets fresh verification mail", func(t *testing.T) {
		svc, store, mailer := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", false)
		first := "old-hash"
		require.NoError(t, store.SetVerificationToken(context.Background(), p.ID, first))

		_, _, _, err := svc.Login(context.Background(), model.RoleStudent, "s@test", "Secret!1")
		require.ErrorIs(t, err, ErrEmailNotVerified)

		stored, getErr := store.GetByID(context.Background(), p.ID)
		require.NoError(t, getErr)
		require.NotNil(t, stored.MailVerificationToken)
		require.NotEqual(t, first, *stored.MailVerificationToken)
		require.Equal(t, 1, mailer.count())
		require.Equal(t, "s@test", mailer.last().To)
	})

	t.Run("success persists refresh token", func(t *testing.T) {
		svc, store, _ := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

		got, access, refresh, err := svc.Login(context.Background(), model.RoleStudent, "s@test", "Secret!1")
		require.NoError(t, err)
		require.Equal(t, p.ID, got.ID)
		require.NotEmpty(t, access)
		require.NotEmpty(t, refresh)

		stored, getErr := store.GetByID(context.Background(), p.ID)
		require.NoError(t, getErr)
		require.Equal(t, refresh, stored.RefreshToken)
	})

	t.Run("second login revokes the first refresh token", func(t *testing.T) {
		svc, store, _ := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

		_, _, firstRefresh, err := svc.Login(context.Background(), model.RoleStudent, "s@test", "Secret!1")
		require.NoError(t, err)
		// Distinct JTIs guarantee the second token differs from the first.
		_, _, secondRefresh, err := svc.Login(context.Background(), model.RoleStudent, "s@test", "Secret!1")
		require.NoError(t, err)
		require.NotEqual(t, firstRefresh, secondRefresh)

		_, err = svc.Refresh(context.Background(), firstRefresh)
		require.ErrorIs(t, err, ErrRefreshInvalid)

		access, err := svc.Refresh(context.Background(), secondRefresh)
		require.NoError(t, err)
		require.NotEmpty(t, access)

		stored, getErr := store.GetByID(context.Background(), p.ID)
		require.NoError(t, getErr)
		require.Equal(t, secondRefresh, stored.RefreshToken)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	t.Run("garbage token", func(t *testing.T) {
		svc, _, _ := newTestAuth(t)
		_, err := svc.Refresh(context.Background(), "garbage")
		require.ErrorIs(t, err, ErrRefreshInvalid)
	})

	t.Run("valid but not stored", func(t *testing.T) {
		svc, store, _ := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

		// Token signed correctly but never persisted.
		orphan, err := svc.IssueRefreshToken(p.ID, p.Role)
		require.NoError(t, err)
		_, err = svc.Refresh(context.Background(), orphan)
		require.ErrorIs(t, err, ErrRefreshInvalid)
	})

	t.Run("refresh does not rotate", func(t *testing.T) {
		svc, store, _ := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

		_, _, refresh, err := svc.Login(context.Background(), model.RoleStudent, "s@test", "Secret!1")
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), refresh)
		require.NoError(t, err)

		stored, getErr := store.GetByID(context.Background(), p.ID)
		require.NoError(t, getErr)
		require.Equal(t, refresh, stored.RefreshToken)

		// The same refresh token keeps working.
		_, err = svc.Refresh(context.Background(), refresh)
		require.NoError(t, err)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()
	svc, store, _ := newTestAuth(t)
	p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

	_, _, refresh, err := svc.Login(context.Background(), model.RoleStudent, "s@test", "Secret!1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), refresh))
	stored, err := store.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Empty(t, stored.RefreshToken)

	// Idempotent: unknown and empty tokens succeed too.
	require.NoError(t, svc.Logout(context.Background(), refresh))
	require.NoError(t, svc.Logout(context.Background(), ""))

	_, err = svc.Refresh(context.Background(), refresh)
	require.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestForgotAndResetPassword(t *testing.T) {
	t.Parallel()

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newTestAuth(t)
		err := svc.ForgotPassword(context.Background(), model.RoleStudent, "nobody@test")
		require.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("raw token mailed, digest stored, one-shot consume", func(t *testing.T) {
		svc, store, mailer := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

		require.NoError(t, svc.ForgotPassword(context.Background(), model.RoleStudent, "s@test"))
		require.Equal(t, 1, mailer.count())

		// Pull the raw token back out of the mailed link.
		body := mailer.last().Body
		idx := strings.Index(body, "reset-password/")
		require.Greater(t, idx, -1)
		raw := body[idx+len("reset-password/"):]
		raw = raw[:strings.IndexAny(raw, `"`)]
		require.Len(t, raw, 64)

		// Stored value is the digest, never the raw token.
		stored, err := store.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PasswordResetToken)
		require.NotEqual(t, raw, *stored.PasswordResetToken)
		require.Equal(t, hashToken(raw), *stored.PasswordResetToken)

		require.NoError(t, svc.ResetPassword(context.Background(), raw, "NewSecret!1"))
		require.NoError(t, svc.CheckPassword(mustGet(t, store, p.ID).PasswordHash, "NewSecret!1"))

		// Second use of the same link fails.
		err = svc.ResetPassword(context.Background(), raw, "Another!1")
		require.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("weak replacement rejected", func(t *testing.T) {
		svc, store, mailer := newTestAuth(t)
		seedPrincipal(t, svc, store, model.RoleAdmin, "a@test", "Secret!1", true)

		require.NoError(t, svc.ForgotPassword(context.Background(), model.RoleAdmin, "a@test"))
		body := mailer.last().Body
		idx := strings.Index(body, "reset-password/")
		raw := body[idx+len("reset-password/"):]
		raw = raw[:strings.IndexAny(raw, `"`)]

		err := svc.ResetPassword(context.Background(), raw, "weak")
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		svc, store, _ := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", true)

		raw, digest, err := newOpaqueToken()
		require.NoError(t, err)
		require.NoError(t, store.SetResetToken(context.Background(), p.ID, digest, time.Now().Add(-time.Minute)))

		err = svc.ResetPassword(context.Background(), raw, "NewSecret!1")
		require.ErrorIs(t, err, ErrResetTokenInvalid)
	})
}

func TestVerifyEmail(t *testing.T) {
	t.Parallel()

	t.Run("consume marks verified and is single use", func(t *testing.T) {
		svc, store, mailer := newTestAuth(t)
		p := seedPrincipal(t, svc, store, model.RoleStudent, "s@test", "Secret!1", false)

		require.NoError(t, svc.SendVerification(context.Background(), p))
		body := mailer.last().Body
		idx := strings.Index(body, "verify-email/")
		require.Greater(t, idx, -1)
		raw := body[idx+len("verify-email/"):]
		raw = raw[:strings.IndexAny(raw, `"`)]

		verified, err := svc.VerifyEmail(context.Background(), raw)
		require.NoError(t, err)
		require.True(t, verified.IsVerified)
		require.True(t, mustGet(t, store, p.ID).IsVerified)

		_, err = svc.VerifyEmail(context.Background(), raw)
		require.ErrorIs(t, err, ErrVerifyTokenInvalid)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _, _ := newTestAuth(t)
		_, err := svc.VerifyEmail(context.Background(), "bogus")
		require.ErrorIs(t, err, ErrVerifyTokenInvalid)
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()
	svc, store, _ := newTestAuth(t)
	p := seedPrincipal(t, svc, store, model.RoleAdmin, "a@test", "Secret!1", true)

	require.ErrorIs(t, svc.UpdatePassword(context.Background(), p.ID, "weak"), ErrWeakPassword)
	require.ErrorIs(t, svc.UpdatePassword(context.Background(), 9999, "NewSecret!1"), ErrPrincipalNotFound)

	require.NoError(t, svc.UpdatePassword(context.Background(), p.ID, "NewSecret!1"))
	require.NoError(t, svc.CheckPassword(mustGet(t, store, p.ID).PasswordHash, "NewSecret!1"))
}

func TestOpaqueTokensAreUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for range 32 {
		raw, digest, err := newOpaqueToken()
		require.NoError(t, err)
		require.Len(t, raw, 64)
		require.Len(t, digest, 64)
		require.NotEqual(t, raw, digest)
		require.False(t, seen[raw])
		seen[raw] = true
	}
}

func mustGet(t *testing.T, store *fakePrincipalStore, id int64) *model.Principal {
	t.Helper()
	p, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}
