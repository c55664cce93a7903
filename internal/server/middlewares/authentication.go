package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/pkg/errors"
)

const (
	// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
	CurrentUserContextKey = "current_user"
	// The context key used by echo-jwt to store the validated token.
	tokenContextKey = "user"
)

// Authentication returns a JWT auth middleware.
// It stores current_user into echo.Context.
func Authentication(db database.Client, signingKey []byte) echo.MiddlewareFunc {
	check := echojwt.JWT(signingKey)

	fake := func(echo.Context) error {
		return nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			// Check JWT validity according its claims.
			if err = check(fake)(c); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-auth",
						"message": "Invalid login credentials.",
					},
				})
			}

			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				panic("token implementation has changed")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				panic("token implementation has wrong type of claims")
			}

			// Get current_user.
			id, _ := claims["user_uuid"].(string)
			user, err := db.FindUser(id)
			if err != nil {
				if db.IsNotFound(err) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": echo.Map{
							"tag":     "invalid-auth",
							"message": "No such user for given token.",
						},
					})
				}
				return errors.Wrap(err, "could not get access to database")
			}

			// Check if password has changed since the token was generated.
			var iat int64
			switch v := claims["iat"].(type) {
			case float64:
				iat = int64(v)
			case json.Number:
				iat, _ = v.Int64()
			default:
				panic("unsupported iat underlying type")
			}

			if iat < user.PasswordUpdatedAt {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-auth",
						"message": "Revoked token.",
					},
				})
			}

			// Store current_user for handlers.
			c.Set(CurrentUserContextKey, user)
			return next(c)
		}
	}
}
