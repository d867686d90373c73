package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nagane/franchise-api/internal/application/order"
)

// OrderHandler serves the current orders of store tables.
type OrderHandler struct {
	uc *order.UseCase
}

func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      In-progress orders of a store
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        storeId  path      int  true  "Store id"
// @Success      200      {array}   dto.OrderResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	storeID, err := pathID(c, "storeId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetOrderList(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
