package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Claims are issued by the identity provider. Subject carries the numeric
// user id.
type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const (
	tokenKey    = "user"
	identityKey = "identity"
)

// UserToucher records that an identity was seen.
type UserToucher interface {
	Touch(ctx context.Context, id *policy.Identity) error
}

// Authenticate verifies a bearer token when one is sent and stores the
// caller's identity on the context. Requests without an Authorization header
// pass through anonymously; whether that is allowed is decided by the
// policy check of the operation they reach.
func Authenticate(secret string, users UserToucher, log *slog.Logger) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ContextKey:    tokenKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(Claims) },
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Warn("rejected token",
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"ip", c.RealIP(),
				"error", err,
			)
			return apperr.New(apperr.ErrUnauthenticated, "invalid or expired token")
		},
	})

	identify := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenKey).(*jwt.Token)
			if !ok {
				return next(c)
			}
			id, err := identityFromToken(token)
			if err != nil {
				return err
			}
			SetIdentity(c, id)
			if users != nil {
				if err := users.Touch(c.Request().Context(), id); err != nil {
					log.Warn("recording sign-in failed", "user_id", id.UserID, "error", err)
				}
			}
			return next(c)
		}
	}

	return []echo.MiddlewareFunc{verify, identify}
}

func identityFromToken(token *jwt.Token) (*policy.Identity, error) {
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperr.New(apperr.ErrUnauthenticated, "unexpected claims")
	}
	uid, err := strconv.ParseUint(strings.TrimSpace(claims.Subject), 10, 64)
	if err != nil || uid == 0 {
		return nil, apperr.New(apperr.ErrUnauthenticated, "token subject is not a user id")
	}
	role := policy.RoleUser
	if policy.Role(claims.Role) == policy.RoleAdmin {
		role = policy.RoleAdmin
	}
	return &policy.Identity{UserID: uint(uid), Role: role, Name: claims.Name, Email: claims.Email}, nil
}

func SetIdentity(c echo.Context, id *policy.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the caller, or nil for anonymous requests.
func IdentityFrom(c echo.Context) *policy.Identity {
	id, _ := c.Get(identityKey).(*policy.Identity)
	return id
}

// Require rejects the request before binding when the caller's tier can never
// satisfy action. Services still run the full Authorize once the resource is
// loaded.
func Require(action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := policy.Precheck(IdentityFrom(c), action); err != nil {
				return err
			}
			return next(c)
		}
	}
}
