package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PartHandler inventario de partes.
type PartHandler struct {
	uc *inventory.LedgerUseCase
}

func NewPartHandler(uc *inventory.LedgerUseCase) *PartHandler {
	return &PartHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar parte
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "Datos de la parte"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddPart(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByPartNumber godoc
// @Summary      Obtener parte
// @Tags         inventory
// @Produce      json
// @Param        part_number  path  string  true  "Número de parte"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{part_number} [get]
func (h *PartHandler) GetByPartNumber(c *fiber.Ctx) error {
	out, err := h.uc.GetPart(c.UserContext(), c.Params("part_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar parte (parche parcial, sin recálculo)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        part_number  path  string                 true  "Número de parte"
// @Param        body         body  dto.UpdatePartRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.PartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{part_number} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePart(c.UserContext(), c.Params("part_number"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar partes
// @Tags         inventory
// @Produce      json
// @Param        part_number        query  string  false  "Contiene (sin mayúsculas)"
// @Param        applicable_models  query  string  false  "Contiene (sin mayúsculas)"
// @Param        status             query  string  false  "In stock | Out of stock"
// @Param        page               query  int     false  "Página (1..)"   default(1)
// @Param        page_size          query  int     false  "Tamaño (1..200)"  default(50)
// @Success      200  {object}  dto.PartListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *PartHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), searchRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar inventario a XLSX (mismos filtros, sin paginar)
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router       /api/inventory/export [get]
func (h *PartHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.UserContext(), searchRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="inventario_%s.xlsx"`, time.Now().Format("20060102_150405")))
	return c.Send(data)
}

func searchRequest(c *fiber.Ctx) dto.PartSearchRequest {
	return dto.PartSearchRequest{
		PartNumber:       c.Query("part_number"),
		ApplicableModels: c.Query("applicable_models"),
		Status:           c.Query("status"),
		PartType:         c.Query("part_type"),
		PartSubtype:      c.Query("part_subtype"),
		CarMake:          c.Query("car_make"),
		Manufacturer:     c.Query("manufacturer"),
		PageRequest: dto.PageRequest{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", dto.DefaultPageSize),
		},
	}
}
