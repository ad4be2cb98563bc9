package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// stockService lo implementa *usecase.StockUseCase.
type stockService interface {
	Create(ctx context.Context, scope tenancy.Scope, in dto.CreateStockRequest) (*dto.StockResponse, error)
	GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*dto.StockResponse, error)
	Update(ctx context.Context, scope tenancy.Scope, id int64, in dto.UpdateStockRequest) (*dto.StockResponse, error)
	List(ctx context.Context, scope tenancy.Scope, page dto.PageRequest) (*dto.StockListResponse, error)
	Delete(ctx context.Context, scope tenancy.Scope, id int64) error
}

// StockHandler maneja las rutas HTTP de stock.
type StockHandler struct {
	uc stockService
}

// NewStockHandler construye el handler.
func NewStockHandler(uc stockService) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar stock del tenant
// @Tags         stocks
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "límite (1-100)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {object}  dto.StockListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetScope(c), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener item de stock
// @Tags         stocks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del item"
// @Success      200  {object}  dto.StockResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stocks/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear item de stock
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateStockRequest  true  "product_name, quantity"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar item de stock
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "ID del item"
// @Param        body  body      dto.UpdateStockRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /stocks/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateStockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar item de stock
// @Tags         stocks
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del item"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stocks/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetScope(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
