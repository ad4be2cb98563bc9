package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// tenantService lo implementa *usecase.TenantUseCase.
type tenantService interface {
	List(ctx context.Context, scope tenancy.Scope) (*dto.TenantListResponse, error)
	GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*dto.TenantResponse, error)
	Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error)
}

// TenantHandler maneja las rutas HTTP de tenants.
type TenantHandler struct {
	uc tenantService
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc tenantService) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// List godoc
// @Summary      Listar tenants visibles (solo el propio)
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TenantListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetScope(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tenant por ID
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del tenant"
// @Success      200  {object}  dto.TenantResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTenantRequest  true  "name, domain opcional"
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
