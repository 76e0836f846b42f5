// Package authctx reads the authenticated caller from Fiber locals.
package authctx

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/teckbook/teckbook-backend/internal/models"
)

const (
	// LocalToken holds the *jwt.Token stored by the JWT middleware.
	LocalToken = "user"
	// LocalAccount holds the account loaded by AdminRequired.
	LocalAccount = "account"
)

var ErrNoCaller = errors.New("no authenticated caller")

func claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals(LocalToken).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoCaller
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mc, nil
}

// GetAccountID extracts the account id from the sub claim.
func GetAccountID(c *fiber.Ctx) (uint, error) {
	mc, err := claims(c)
	if err != nil {
		return 0, err
	}
	sub, ok := mc["sub"].(string)
	if !ok {
		return 0, errors.New("missing sub claim")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("malformed sub claim")
	}
	return uint(id), nil
}

// GetRole returns the role claim, or "" when absent.
func GetRole(c *fiber.Ctx) models.Role {
	mc, err := claims(c)
	if err != nil {
		return ""
	}
	role, _ := mc["role"].(string)
	return models.Role(role)
}

// GetAccount returns the account stored by AdminRequired, if any.
func GetAccount(c *fiber.Ctx) (*models.Account, bool) {
	account, ok := c.Locals(LocalAccount).(*models.Account)
	return account, ok && account != nil
}
