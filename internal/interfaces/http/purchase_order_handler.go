package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/purchasing"
)

// PurchaseOrderHandler órdenes de compra, tablero en tránsito y recepción.
type PurchaseOrderHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreatePurchaseOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        po_id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{po_id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchaseOrder(c.UserContext(), c.Params("po_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Hoja de la orden en PDF
// @Tags         purchase-orders
// @Produce      application/pdf
// @Param        po_id  path  string  true  "ID de la orden"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{po_id}/pdf [get]
func (h *PurchaseOrderHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.RenderPDF(c.UserContext(), c.Params("po_id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// ListInTransit godoc
// @Summary      Tablero en tránsito
// @Tags         purchase-orders
// @Produce      json
// @Param        status  query  string  false  "Shipping | Received"
// @Param        limit   query  int     false  "Límite"  default(100)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.PurchaseOrderLineResponse
// @Router       /api/intransit [get]
func (h *PurchaseOrderHandler) ListInTransit(c *fiber.Ctx) error {
	out, err := h.uc.ListLines(c.UserContext(), c.Query("status"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir mercancía de una línea
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id            path   int  true   "ID de la línea"
// @Param        qty_received  query  int  false  "Cantidad recibida (o en el cuerpo)"
// @Success      200  {object}  dto.InTransitLineResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/intransit/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de línea inválido"})
	}
	var in dto.ReceiveRequest
	if raw := c.Query("qty_received"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "qty_received debe ser entero"})
		}
		in.QtyReceived = qty
	} else if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "qty_received es requerido"})
	}
	out, err := h.uc.Receive(c.UserContext(), id, in.QtyReceived)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
