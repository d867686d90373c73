package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/application/stock"
)

// StockHandler serves store stock and purchase order endpoints.
type StockHandler struct {
	uc *stock.UseCase
}

func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateStock godoc
// @Summary      Register a menu as stocked by a store
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateStockRequest  true  "Store and menu"
// @Success      201   {object}  dto.StockIDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) CreateStock(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	if err := checkStore(c, in.StoreID); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.CreateStock(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockIDResponse{StockID: id})
}

// UpdateStock godoc
// @Summary      Update quantity and/or last stock date
// @Description  Fields left out of the body keep their current value.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Stock id"
// @Param        body  body      dto.UpdateStockRequest  true  "Fields to change"
// @Success      200   {object}  dto.StockIDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [patch]
func (h *StockHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.StockID = id
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	if err := checkOwner(c, h.uc.StoreOfStock, id); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateStock(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockIDResponse{StockID: out})
}

// DeleteStock godoc
// @Summary      Delete a stock
// @Description  Succeeds for unknown ids. 409 while purchase orders reference the stock.
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "Stock id"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) DeleteStock(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := checkOwner(c, h.uc.StoreOfStock, id); err != nil {
		return writeError(c, err)
	}
	ok, err := h.uc.DeleteStock(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: ok})
}

// GetStockList godoc
// @Summary      List the stock of a store
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        storeId  path      int  true  "Store id"
// @Success      200      {array}   dto.StockListItem
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/stocks [get]
func (h *StockHandler) GetStockList(c *fiber.Ctx) error {
	storeID, err := pathID(c, "storeId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetStockList(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
