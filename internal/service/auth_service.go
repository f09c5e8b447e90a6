package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrRefreshInvalid     = errors.New("refresh token invalid or revoked")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
	ErrVerifyTokenInvalid = errors.New("verification token invalid")
	ErrWeakPassword       = errors.New("password does not meet policy")
)

// resetTokenTTL bounds how long a password-reset link stays usable.
const resetTokenTTL = 30 * time.Minute

// Claims extends JWT standard claims with the principal's role, so the
// session middleware resolves the account with a single lookup by ID.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// AuthService handles credentials, JWT issuance, and the token lifecycles
// around password reset and email verification.
type AuthService struct {
	cfg    *config.Config
	store  PrincipalStore
	mailer Mailer
	log    zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, store PrincipalStore, mailer Mailer, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		store:  store,
		mailer: mailer,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueAccessToken creates a short-lived JWT carrying the principal's role.
func (s *AuthService) IssueAccessToken(id int64, role model.Role) (string, error) {
	return s.signToken(id, role, s.cfg.JWTExpiry)
}

// IssueRefreshToken creates a long-lived JWT. The caller persists it on the
// principal; only the stored value is accepted at refresh time, so issuing a
// new one revokes all previous sessions.
func (s *AuthService) IssueRefreshToken(id int64, role model.Role) (string, error) {
	return s.signToken(id, role, s.cfg.RefreshExpiry)
}

func (s *AuthService) signToken(id int64, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims. All parse
// and expiry failures collapse into a single error so callers cannot leak
// which check failed.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// SubjectID extracts the principal ID from validated claims.
func (c *Claims) SubjectID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Login verifies credentials for a role and, on success, issues the token
// pair and persists the refresh token. An unknown email yields
// ErrPrincipalNotFound; a wrong password yields ErrInvalidCredentials. A
// student who has not verified their email gets a fresh verification mail
// and ErrEmailNotVerified.
func (s *AuthService) Login(ctx context.Context, role model.Role, email, password string) (*model.Principal, string, string, error) {
	p, err := s.store.GetByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", "", ErrPrincipalNotFound
		}
		return nil, "", "", fmt.Errorf("lookup principal: %w", err)
	}

	if err := s.CheckPassword(p.PasswordHash, password); err != nil {
		return nil, "", "", err
	}

	if role == model.RoleStudent && !p.IsVerified {
		if err := s.SendVerification(ctx, p); err != nil {
			s.log.Error().Err(err).Int64("principal_id", p.ID).Msg("re-issue verification failed")
		}
		return nil, "", "", ErrEmailNotVerified
	}

	access, err := s.IssueAccessToken(p.ID, p.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.IssueRefreshToken(p.ID, p.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.store.SetRefreshToken(ctx, p.ID, refresh); err != nil {
		return nil, "", "", fmt.Errorf("persist refresh token: %w", err)
	}

	return p, access, refresh, nil
}

// PersistRefreshToken stores the token as the principal's single live
// session, revoking any previous one.
func (s *AuthService) PersistRefreshToken(ctx context.Context, id int64, token string) error {
	return s.store.SetRefreshToken(ctx, id, token)
}

// Refresh validates a refresh token against the stored copy and issues a new
// access token. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrRefreshInvalid
	}
	id, err := claims.SubjectID()
	if err != nil {
		return "", ErrRefreshInvalid
	}

	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRefreshInvalid
		}
		return "", fmt.Errorf("lookup principal: %w", err)
	}

	// Only the most recently issued refresh token is honored; a newer login
	// overwrote the stored value and revoked this one.
	if p.RefreshToken != refreshToken {
		return "", ErrRefreshInvalid
	}

	return s.IssueAccessToken(p.ID, p.Role)
}

// Logout clears the stored refresh token matching the presented cookie.
// It is idempotent: an unknown or already-cleared token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.store.ClearRefreshTokenByValue(ctx, refreshToken)
}

// ForgotPassword generates a one-shot reset token, stores its SHA-256 digest
// with a 30 minute expiry, and mails the raw token link. The raw token is
// never returned to the HTTP caller.
func (s *AuthService) ForgotPassword(ctx context.Context, role model.Role, email string) error {
	p, err := s.store.GetByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPrincipalNotFound
		}
		return fmt.Errorf("lookup principal: %w", err)
	}

	raw, digest, err := newOpaqueToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.store.SetResetToken(ctx, p.ID, digest, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := s.cfg.FrontendURL + "reset-password/" + raw
	if err := s.mailer.Send(ctx, p.Email, "Reset your password", renderResetMail(p.Name, link)); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	s.log.Info().Int64("principal_id", p.ID).Str("role", string(p.Role)).Msg("password reset requested")
	return nil
}

// ResetPassword consumes a reset token: it validates the digest and expiry,
// sets the new password, and clears the token fields so the link cannot be
// replayed.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if !validator.PasswordMeetsPolicy(newPassword) {
		return ErrWeakPassword
	}

	p, err := s.store.GetByResetTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.ConsumeResetToken(ctx, p.ID, hash); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}

	s.log.Info().Int64("principal_id", p.ID).Msg("password reset completed")
	return nil
}

// UpdatePassword sets a new password for a known principal.
func (s *AuthService) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	if !validator.PasswordMeetsPolicy(newPassword) {
		return ErrWeakPassword
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.SetPassword(ctx, id, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPrincipalNotFound
		}
		return err
	}
	return nil
}

// SendVerification issues a fresh email-verification token for a student and
// mails the activation link. Tokens do not expire; issuing a new one
// invalidates the previous link.
func (s *AuthService) SendVerification(ctx context.Context, p *model.Principal) error {
	raw, digest, err := newOpaqueToken()
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}
	if err := s.store.SetVerificationToken(ctx, p.ID, digest); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	link := s.cfg.APIBaseURL + "api/user/verify-email/" + raw
	if err := s.mailer.Send(ctx, p.Email, "Verify your email", renderVerifyMail(p.Name, link)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// VerifyEmail marks the student owning the token as verified and clears the
// token so the link is single use.
func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string) (*model.Principal, error) {
	p, err := s.store.GetByVerificationTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerifyTokenInvalid
		}
		return nil, fmt.Errorf("lookup verification token: %w", err)
	}
	if err := s.store.MarkVerified(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	p.IsVerified = true

	s.log.Info().Int64("principal_id", p.ID).Msg("email verified")
	return p, nil
}

// newOpaqueToken returns a 32-byte random token as hex plus its SHA-256
// digest. Only the digest is persisted; a database leak does not expose
// usable tokens.
func newOpaqueToken() (raw string, digest string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func renderResetMail(name, link string) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in 30 minutes.</p>
<p><a href="%s">Reset password</a></p>
<p>If you did not request this, you can safely ignore this email.</p>`, name, link)
}

func renderVerifyMail(name, link string) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Welcome to College Abroad! Please confirm your email address to activate your account.</p>
<p><a href="%s">Verify email</a></p>`, name, link)
}
