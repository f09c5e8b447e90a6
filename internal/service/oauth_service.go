package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrOAuthUnverified rejects Google accounts whose email Google itself has
// not verified.
var ErrOAuthUnverified = errors.New("google account email not verified")

// GoogleProfile is the subset of the userinfo response the login flow needs.
type GoogleProfile struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	VerifiedEmail bool   `json:"verified_email"`
}

// GoogleOAuthService drives the authorization-code flow against Google.
type GoogleOAuthService struct {
	conf *oauth2.Config
	log  zerolog.Logger
}

// NewGoogleOAuthService creates a new GoogleOAuthService.
func NewGoogleOAuthService(cfg *config.Config, log zerolog.Logger) *GoogleOAuthService {
	return &GoogleOAuthService{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		log: log.With().Str("service", "google_oauth").Logger(),
	}
}

// AuthURL returns the Google consent-screen URL for the given CSRF state.
func (s *GoogleOAuthService) AuthURL(state string) string {
	return s.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange swaps the authorization code for a token and fetches the user's
// profile.
func (s *GoogleOAuthService) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	client := s.conf.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if !profile.VerifiedEmail {
		return nil, ErrOAuthUnverified
	}

	return &profile, nil
}
