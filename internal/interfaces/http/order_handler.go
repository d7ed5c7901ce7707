package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de órdenes del panel (protegido).
type OrderHandler struct {
	fulfillment  *orders.FulfillmentUseCase
	cancellation *orders.CancellationUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(fulfillment *orders.FulfillmentUseCase, cancellation *orders.CancellationUseCase) *OrderHandler {
	return &OrderHandler{fulfillment: fulfillment, cancellation: cancellation}
}

// List godoc
// @Summary      Listar órdenes del tenant
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.OrderResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()

	list, err := h.fulfillment.ListOrders(c.Context(), tenantID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  len(list),
		"orders": list,
	})
}

// GetByID godoc
// @Summary      Detalle de una orden con sus items
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden (UUID)"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.fulfillment.GetOrder(c.Context(), c.Params("id"), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Cancel godoc
// @Summary      Cancelar una orden y restaurar su stock
// @Description  Registra movimientos IN compensatorios por cada item y marca la
//
//	orden como CANCELLED, todo en una sola transacción.
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden (UUID)"
// @Success      200  {object}  dto.CancelOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.cancellation.CancelOrder(c.Context(), c.Params("id"), tenantID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
