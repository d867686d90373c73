package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/pkg/jwt"
)

// RequireStoreAccess guards /stores/:storeId routes. Admin tokens reach every store; store tokens only
// their own. Must run after AuthMiddleware.
//
//   - 400 when :storeId is not a positive integer.
//   - 403 when a store token targets another store.
func RequireStoreAccess(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := strconv.ParseInt(c.Params(param), 10, 64)
		if err != nil || storeID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: param + " must be a positive integer"})
		}
		if err := checkStore(c, storeID); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

// checkStore returns ErrForbidden when the caller's token does not reach storeID.
func checkStore(c *fiber.Ctx, storeID int64) error {
	if GetRole(c) == jwt.RoleAdmin || GetStoreID(c) == storeID {
		return nil
	}
	return fmt.Errorf("store %d is not accessible with this token: %w", storeID, domain.ErrForbidden)
}

// storeResolver finds the store that owns a resource; ok is false when the resource does not exist.
type storeResolver func(ctx context.Context, id int64) (storeID int64, ok bool, err error)

// checkOwner applies checkStore to the store owning resource id. Missing resources pass so the
// use case reports them as usual (404, or success for deletes).
func checkOwner(c *fiber.Ctx, owner storeResolver, id int64) error {
	if GetRole(c) == jwt.RoleAdmin {
		return nil
	}
	storeID, ok, err := owner(c.UserContext(), id)
	if err != nil || !ok {
		return err
	}
	return checkStore(c, storeID)
}
