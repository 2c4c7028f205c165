package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
)

// SaleHandler cierre de ventas y bitácora.
type SaleHandler struct {
	uc *inventory.SaleUseCase
}

func NewSaleHandler(uc *inventory.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Finalize godoc
// @Summary      Finalizar carrito (todo o nada)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinalizeSaleRequest  true  "Carrito"
// @Success      201   {array}   dto.SalesLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/finalize [post]
func (h *SaleHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.FinalizeSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Bitácora de ventas (más recientes primero)
// @Tags         sales
// @Produce      json
// @Param        part_number  query  string  false  "Filtrar por parte"
// @Param        limit        query  int     false  "Límite"  default(100)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.SalesLogResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(c.UserContext(), c.Query("part_number"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
