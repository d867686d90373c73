package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nagane/franchise-api/internal/application/catalog"
	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/domain"
)

// CatalogHandler serves categories and menus.
type CatalogHandler struct {
	uc *catalog.UseCase
}

func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  true  "Category"
// @Success      201   {object}  dto.CategoryIDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryIDResponse{CategoryID: id})
}

// UpdateCategory godoc
// @Summary      Update name and/or state of a category
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "Category id"
// @Param        body  body      dto.UpdateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  dto.CategoryIDResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [patch]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.CategoryID = id
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CategoryIDResponse{CategoryID: out})
}

// GetCategory godoc
// @Summary      Get a category
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  dto.CategoryDto
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetCategory(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryDto
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.GetCategoryList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	ok, err := h.uc.DeleteCategory(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: ok})
}

// GetMenu godoc
// @Summary      Get a menu
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "Menu id"
// @Success      200  {object}  dto.MenuDto
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [get]
func (h *CatalogHandler) GetMenu(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetMenu(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMenus godoc
// @Summary      List menus
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        category_id  query     int  false  "Only menus of this category"
// @Success      200          {array}   dto.MenuDto
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/menus [get]
func (h *CatalogHandler) ListMenus(c *fiber.Ctx) error {
	var categoryID *int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return writeError(c, domain.ErrInvalidInput)
		}
		categoryID = &id
	}
	out, err := h.uc.GetMenuList(c.UserContext(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
