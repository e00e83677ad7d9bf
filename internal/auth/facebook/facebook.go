// Package facebook adds the Facebook sign-in scheme. Credentials come from
// the stored facebookexternalauthsettings setting.
package facebook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	fbendpoint "golang.org/x/oauth2/facebook"

	"github.com/maxviazov/storefront-catalog/internal/auth"
	"github.com/maxviazov/storefront-catalog/internal/settings"
)

const (
	SchemeName     = "Facebook"
	SettingsPrefix = "facebookexternalauthsettings"
	CallbackPath   = "/signin-facebook"
	FailurePath    = "/fb-signin-failed"

	// BuilderOrder places Facebook after the core cookie schemes.
	BuilderOrder = 501

	// placeholderCredential keeps the scheme constructible before an admin
	// has entered real credentials; the provider rejects it at sign-in.
	placeholderCredential = "000"

	stateCookie    = "fb_oauth_state"
	stateCookieTTL = 5 * time.Minute
)

// Settings is the stored shape of facebookexternalauthsettings. Records
// written by the storefront admin use PascalCase keys; both spellings decode.
type Settings struct {
	ClientKeyIdentifier string `json:"client_key_identifier"`
	ClientSecret        string `json:"client_secret"`
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw struct {
		ClientKeyIdentifier string `json:"client_key_identifier"`
		ClientSecret        string `json:"client_secret"`
		AdminKeyIdentifier  string `json:"ClientKeyIdentifier"`
		AdminSecret         string `json:"ClientSecret"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ClientKeyIdentifier = firstNonEmpty(raw.ClientKeyIdentifier, raw.AdminKeyIdentifier)
	s.ClientSecret = firstNonEmpty(raw.ClientSecret, raw.AdminSecret)
	return nil
}

// Builder registers the Facebook scheme.
type Builder struct {
	store     settings.Store
	publicURL string
	endpoint  oauth2.Endpoint
	log       zerolog.Logger
}

type Option func(*Builder)

// WithEndpoint overrides the provider endpoints, mostly for tests.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(b *Builder) { b.endpoint = e }
}

func NewBuilder(store settings.Store, publicURL string, logger zerolog.Logger, opts ...Option) *Builder {
	b := &Builder{
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
		endpoint:  fbendpoint.Endpoint,
		log:       logger.With().Str("module", "auth").Str("component", "facebook").Logger(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Builder) Order() int { return BuilderOrder }

func (b *Builder) String() string { return "facebook" }

// Register loads settings and adds the scheme. Missing or broken settings are
// logged and replaced by placeholders; they never abort startup.
func (b *Builder) Register(ctx context.Context, schemes *auth.Schemes) error {
	s, err := settings.Load(ctx, b.store, SettingsPrefix, Settings{})
	switch {
	case err != nil:
		b.log.Warn().Err(err).Str("outcome", settings.Outcome(err)).Msg("facebook settings not loaded; using placeholder credentials")
	case strings.TrimSpace(s.ClientKeyIdentifier) == "" || strings.TrimSpace(s.ClientSecret) == "":
		b.log.Warn().Str("outcome", "incomplete").Msg("facebook settings lack credentials; using placeholders")
	}
	if strings.TrimSpace(s.ClientKeyIdentifier) == "" {
		s.ClientKeyIdentifier = placeholderCredential
	}
	if strings.TrimSpace(s.ClientSecret) == "" {
		s.ClientSecret = placeholderCredential
	}

	h := &handler{
		cfg: &oauth2.Config{
			ClientID:     s.ClientKeyIdentifier,
			ClientSecret: s.ClientSecret,
			RedirectURL:  b.publicURL + CallbackPath,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     b.endpoint,
		},
		log: b.log,
	}
	return schemes.Add(auth.Scheme{
		Name:         SchemeName,
		Login:        h.login,
		CallbackPath: CallbackPath,
		Callback:     h.callback,
		FailurePath:  FailurePath,
		Failure:      h.failure,
	})
}

type handler struct {
	cfg *oauth2.Config
	log zerolog.Logger
}

func (h *handler) login(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateCookieTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, h.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// TokenInfo is what a successful sign-in returns. The access token itself
// stays server side.
type TokenInfo struct {
	Scheme          string    `json:"scheme"`
	TokenType       string    `json:"token_type"`
	Expiry          time.Time `json:"expiry,omitzero"`
	HasRefreshToken bool      `json:"has_refresh_token"`
}

func (h *handler) callback(c *gin.Context) {
	if code := firstNonEmpty(c.Query("error_code"), c.Query("error")); code != "" {
		msg := firstNonEmpty(c.Query("error_message"), c.Query("error_description"), c.Query("error_reason"))
		h.fail(c, code, msg)
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	// One-shot: the state cookie is expired whatever happens next.
	c.SetCookie(stateCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	if err != nil || cookieState == "" || cookieState != c.Query("state") {
		h.fail(c, "invalid_state", "sign-in state did not match")
		return
	}
	code := c.Query("code")
	if code == "" {
		h.fail(c, "missing_code", "provider returned no authorization code")
		return
	}

	tok, err := h.cfg.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Warn().Err(err).Msg("facebook token exchange failed")
		h.fail(c, "token_exchange_failed", "could not exchange authorization code")
		return
	}
	h.log.Info().Str("token_type", tok.Type()).Time("expiry", tok.Expiry).Msg("facebook sign-in succeeded")
	c.JSON(http.StatusOK, TokenInfo{
		Scheme:          SchemeName,
		TokenType:       tok.Type(),
		Expiry:          tok.Expiry,
		HasRefreshToken: tok.RefreshToken != "",
	})
}

// fail sends the browser to the failure page with the provider's reason.
func (h *handler) fail(c *gin.Context, code, msg string) {
	h.log.Warn().Str("error_code", code).Str("error_message", msg).Msg("facebook remote failure")
	q := url.Values{}
	q.Set("error_code", code)
	q.Set("error_message", msg)
	c.Redirect(http.StatusFound, FailurePath+"?"+q.Encode())
}

func (h *handler) failure(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":         "external_auth_failed",
		"scheme":        SchemeName,
		"error_code":    c.Query("error_code"),
		"error_message": c.Query("error_message"),
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
