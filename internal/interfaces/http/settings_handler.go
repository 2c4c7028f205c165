package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
)

// SettingsHandler configuración de precios, catálogos y barrido de recálculo.
type SettingsHandler struct {
	uc     *usecase.SettingsUseCase
	recalc *inventory.RecalcUseCase
}

func NewSettingsHandler(uc *usecase.SettingsUseCase, recalc *inventory.RecalcUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc, recalc: recalc}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración (parche)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recalc godoc
// @Summary      Recalcular costos de todas las partes
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.RecalcResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/recalc [post]
func (h *SettingsHandler) Recalc(c *fiber.Ctx) error {
	n, err := h.recalc.RecalcAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RecalcResponse{Recalculated: n})
}
