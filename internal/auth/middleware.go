package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "blogapp/internal/errors"
)

// ContextKey is where the verified *Claims live in the echo context.
const ContextKey = "session"

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// SessionManager issues session cookies and verifies them on incoming requests.
type SessionManager struct {
	jwt     *JWTService
	store   TokenStoreInterface
	options CookieOptions
}

// NewSessionManager wires the token service, revocation store and cookie options.
func NewSessionManager(jwtService *JWTService, store TokenStoreInterface, options CookieOptions) *SessionManager {
	if options.Name == "" {
		options.Name = "token"
	}
	if options.SameSite == 0 {
		options.SameSite = http.SameSiteLaxMode
	}
	return &SessionManager{jwt: jwtService, store: store, options: options}
}

// Middleware verifies the session cookie. Requests without the cookie pass
// through anonymously; a cookie that fails verification is rejected with 401.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "cookie:" + m.options.Name,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return m.Resolve(c, token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if !m.hasCookie(c) {
				return nil
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "invalid or expired session",
				Code:  "INVALID_SESSION",
			}).SetInternal(err)
		},
		ContinueOnIgnoredError: true,
	})
}

// Resolve validates a raw session token, including the revocation list.
func (m *SessionManager) Resolve(c echo.Context, token string) (*Claims, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := m.store.IsTokenRevoked(c.Request().Context(), claims.ID)
	if err == nil && revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// FromCookie resolves the session cookie directly, outside the middleware.
func (m *SessionManager) FromCookie(c echo.Context) (*Claims, bool) {
	cookie, err := c.Cookie(m.options.Name)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := m.Resolve(c, cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// SetSession writes the session cookie for token.
func (m *SessionManager) SetSession(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     m.options.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   m.options.Secure,
		SameSite: m.options.SameSite,
	})
}

// ClearSession instructs the client to drop the session cookie.
func (m *SessionManager) ClearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.options.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.options.Secure,
		SameSite: m.options.SameSite,
	})
}

func (m *SessionManager) hasCookie(c echo.Context) bool {
	cookie, err := c.Cookie(m.options.Name)
	return err == nil && cookie.Value != ""
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := SessionClaims(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthorized.Error(),
				Code:  "UNAUTHORIZED",
			})
		}
		return next(c)
	}
}

// SessionClaims returns the verified claims attached by Middleware.
func SessionClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}

// CurrentUser returns the verified user id, or false for anonymous requests.
func CurrentUser(c echo.Context) (uuid.UUID, bool) {
	claims, ok := SessionClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
