package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Ovsyanko/farm_market/internal/models"
	"github.com/Ovsyanko/farm_market/internal/repo"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

// Service binds requests to an authenticated user through a pair of JWT
// cookies. The refresh token is persisted so logout can revoke it.
type Service struct {
	Tokens        *repo.TokenRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

// Establish signs a fresh token pair for the user and sets both cookies.
func (s *Service) Establish(c echo.Context, user *models.User) error {
	accessToken, accessExp, err := SignAccessToken(user.ID, user.Role, s.JWTSecret)
	if err != nil {
		return err
	}

	refreshToken, jti, refreshExp, err := SignRefreshToken(user.ID, user.Role, s.RefreshSecret)
	if err != nil {
		return err
	}

	if err := s.Tokens.Save(c.Request().Context(), refreshToken, user.ID, jti, refreshExp); err != nil {
		return err
	}

	c.SetCookie(CreateCookie(AccessCookie, accessToken, "/", accessExp))
	c.SetCookie(CreateCookie(RefreshCookie, refreshToken, "/", refreshExp))
	return nil
}

// Terminate revokes the stored refresh token and expires both cookies. The
// session is anonymous afterwards regardless of revocation outcome.
func (s *Service) Terminate(c echo.Context) error {
	var revokeErr error
	if refreshCookie, err := c.Cookie(RefreshCookie); err == nil {
		revokeErr = s.Tokens.Revoke(c.Request().Context(), refreshCookie.Value)
	}

	c.SetCookie(DeleteCookie(AccessCookie, "/"))
	c.SetCookie(DeleteCookie(RefreshCookie, "/"))
	return revokeErr
}

// RequireAuth guards protected routes. A valid access cookie passes
// through; an expired one is rotated from the refresh cookie; anything
// else is redirected to the login page.
func (s *Service) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		asCookie, err := c.Cookie(AccessCookie)
		if err == nil {
			token, err := jwt.Parse(asCookie.Value, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return s.JWTSecret, nil
			})
			if err == nil && token.Valid {
				claims, ok := token.Claims.(jwt.MapClaims)
				if !ok {
					return c.Redirect(http.StatusFound, "/login")
				}
				setUserContext(c, claims)
				return next(c)
			}
			if !errors.Is(err, jwt.ErrTokenExpired) {
				return c.Redirect(http.StatusFound, "/login")
			}
		}

		rfCookie, err := c.Cookie(RefreshCookie)
		if err != nil {
			return c.Redirect(http.StatusFound, "/login")
		}

		newAccess, newRefresh, claims, err := s.rotate(c, rfCookie.Value)
		if err != nil {
			return c.Redirect(http.StatusFound, "/login")
		}

		c.SetCookie(CreateCookie(AccessCookie, newAccess, "/", time.Now().Add(AccessTTL)))
		c.SetCookie(CreateCookie(RefreshCookie, newRefresh, "/", time.Now().Add(RefreshTTL)))
		setUserContext(c, claims)
		return next(c)
	}
}

func (s *Service) rotate(c echo.Context, rawToken string) (string, string, jwt.MapClaims, error) {
	ctx := c.Request().Context()

	claims, err := s.ValidateRefresh(c, rawToken)
	if err != nil {
		return "", "", nil, err
	}

	userID := uint(claims["sub"].(float64))
	role, ok := claims["role"].(string)
	if !ok {
		return "", "", nil, errors.New("missing role claim")
	}

	newAccess, _, err := SignAccessToken(userID, role, s.JWTSecret)
	if err != nil {
		return "", "", nil, err
	}

	newRefresh, jti, refreshExp, err := SignRefreshToken(userID, role, s.RefreshSecret)
	if err != nil {
		return "", "", nil, err
	}

	if err := s.Tokens.Save(ctx, newRefresh, userID, jti, refreshExp); err != nil {
		return "", "", nil, err
	}
	if err := s.Tokens.Revoke(ctx, rawToken); err != nil {
		return "", "", nil, err
	}

	return newAccess, newRefresh, claims, nil
}
