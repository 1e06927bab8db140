package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/delivery"
	"github.com/ghostart/goapi/domain"
)

// AdminMiddleware guards admin routes with a single shared secret.
// Only the sha256 of the secret is kept in memory.
type AdminMiddleware struct {
	passwordHash []byte
}

// New builds the gate from either the plain password or its hex encoded
// sha256. One of them is required.
func New(password, passwordHash string) (*AdminMiddleware, error) {
	switch {
	case password != "":
		sum := sha256.Sum256([]byte(password))
		return &AdminMiddleware{passwordHash: sum[:]}, nil
	case passwordHash != "":
		hash, err := hex.DecodeString(passwordHash)
		if err != nil || len(hash) != sha256.Size {
			return nil, xerrors.Errorf("admin.passwordHash must be a hex encoded sha256 digest")
		}
		return &AdminMiddleware{passwordHash: hash}, nil
	}
	return nil, xerrors.Errorf("admin password is not configured")
}

// IsAdmin rejects a request without a bearer password with 401 and a request
// with the wrong one with 403.
func (m *AdminMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			password, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return delivery.MakeJsonResp(c, 0, domain.ErrMissingAdminPwd)
			}

			if !m.Verify(password) {
				if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
					cont.WithField("remoteIP", c.RealIP()).Warn("invalid admin password")
				}
				return delivery.MakeJsonResp(c, 0, domain.ErrInvalidAdminPwd)
			}
			return next(c)
		}
	}
}

// Verify compares the password's digest in constant time
func (m *AdminMiddleware) Verify(password string) bool {
	sum := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(sum[:], m.passwordHash) == 1
}

// bearer takes the token after the scheme, e.g. "Bearer s3cret" -> "s3cret"
func bearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
