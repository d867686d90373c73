package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/application/stock"
)

// PurchaseOrderHandler serves purchase order endpoints.
type PurchaseOrderHandler struct {
	uc *stock.UseCase
}

func NewPurchaseOrderHandler(uc *stock.UseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Order more of a stock
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePurchaseOrderRequest  true  "Stock, quantity and unit price"
// @Success      201   {object}  dto.PurchaseOrderIDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	if err := checkOwner(c, h.uc.StoreOfStock, in.StockID); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.CreatePurchaseOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PurchaseOrderIDResponse{PurchaseOrderID: id})
}

// Update godoc
// @Summary      Set the state of a purchase order
// @Description  Any state is accepted; the value is written even when unchanged.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                             true  "Purchase order id"
// @Param        body  body      dto.UpdatePurchaseOrderRequest  true  "New state"
// @Success      200   {object}  dto.PurchaseOrderIDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [patch]
func (h *PurchaseOrderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.OrderID = id
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdatePurchaseOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PurchaseOrderIDResponse{PurchaseOrderID: out})
}

// Delete godoc
// @Summary      Delete a purchase order
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "Purchase order id"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := checkOwner(c, h.uc.StoreOfPurchaseOrder, id); err != nil {
		return writeError(c, err)
	}
	ok, err := h.uc.DeletePurchaseOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: ok})
}

// List godoc
// @Summary      List open purchase orders of every store
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchaseOrderListItem
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchaseOrderList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sheet godoc
// @Summary      Open purchase orders as a PDF sheet
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/purchase-orders/sheet [get]
func (h *PurchaseOrderHandler) Sheet(c *fiber.Ctx) error {
	doc, err := h.uc.PurchaseOrderSheet(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="purchase-orders.pdf"`)
	return c.Send(doc)
}
