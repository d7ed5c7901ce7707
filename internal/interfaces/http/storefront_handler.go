package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/application/orders"
	"github.com/tu-usuario/simpleshop-api/internal/application/storefront"
)

// StorefrontHandler maneja las rutas públicas de la tienda (sin token).
// El tenant se resuelve por el slug de la URL.
type StorefrontHandler struct {
	uc          *storefront.StorefrontUseCase
	fulfillment *orders.FulfillmentUseCase
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(uc *storefront.StorefrontUseCase, fulfillment *orders.FulfillmentUseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc, fulfillment: fulfillment}
}

// GetStoreInfo godoc
// @Summary      Información pública de la tienda
// @Tags         store
// @Produce      json
// @Param        slug  path  string  true  "Slug de la tienda"
// @Success      200  {object}  dto.StoreInfoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store/{slug} [get]
func (h *StorefrontHandler) GetStoreInfo(c *fiber.Ctx) error {
	resp, err := h.uc.GetStoreInfo(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetProducts godoc
// @Summary      Catálogo público de productos activos
// @Tags         store
// @Produce      json
// @Param        slug  path  string  true  "Slug de la tienda"
// @Success      200  {array}   dto.StoreProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store/{slug}/products [get]
func (h *StorefrontHandler) GetProducts(c *fiber.Ctx) error {
	list, err := h.uc.GetProducts(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(list),
		"products": list,
	})
}

// GetProduct godoc
// @Summary      Detalle público de un producto
// @Tags         store
// @Produce      json
// @Param        slug  path  string  true  "Slug de la tienda"
// @Param        id    path  string  true  "ID del producto (UUID)"
// @Success      200  {object}  dto.StoreProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store/{slug}/products/{id} [get]
func (h *StorefrontHandler) GetProduct(c *fiber.Ctx) error {
	resp, err := h.uc.GetProduct(c.Context(), c.Params("slug"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// CreateOrder godoc
// @Summary      Checkout de la tienda pública
// @Description  Descuenta el stock de cada item y crea la orden COMPLETED en una
//
//	sola transacción. Si algún item no tiene stock suficiente toda la
//	operación se revierte.
//
// @Tags         store
// @Accept       json
// @Produce      json
// @Param        slug  path  string                  true  "Slug de la tienda"
// @Param        body  body  dto.CreateOrderRequest  true  "cliente e items del carrito"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/store/{slug}/orders [post]
func (h *StorefrontHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.fulfillment.CreateOrder(c.Context(), c.Params("slug"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
