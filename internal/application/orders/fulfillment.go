package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/application/inventory"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/audit"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/cache"
)

// FulfillmentUseCase crea órdenes del storefront descontando el inventario en
// una sola transacción: por cada item un OUT del ledger, y al final la orden
// COMPLETED con sus items. El primer item que falle (producto inexistente,
// inactivo o sin stock) aborta la orden completa; el rollback deshace los
// descuentos ya aplicados y no queda ni orden, ni item, ni movimiento.
type FulfillmentUseCase struct {
	txRunner     TxRunner
	tenantRepo   repository.TenantRepository
	orderRepo    repository.OrderRepository // atado al pool, solo lecturas
	ledger       StockLedger
	auditSink    audit.Sink
	catalogCache cache.CatalogCache
}

// NewFulfillmentUseCase construye el caso de uso.
func NewFulfillmentUseCase(
	txRunner TxRunner,
	tenantRepo repository.TenantRepository,
	orderRepo repository.OrderRepository,
	ledger StockLedger,
	auditSink audit.Sink,
	catalogCache cache.CatalogCache,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		txRunner:     txRunner,
		tenantRepo:   tenantRepo,
		orderRepo:    orderRepo,
		ledger:       ledger,
		auditSink:    auditSink,
		catalogCache: catalogCache,
	}
}

// CreateOrder procesa el checkout público de la tienda identificada por slug.
// Los items se procesan en el orden que envió el caller (sin reordenar); el
// total acumula precio × cantidad con el precio vigente del producto, que queda
// congelado como snapshot en cada item.
func (uc *FulfillmentUseCase) CreateOrder(ctx context.Context, tenantSlug string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerName == "" || in.CustomerEmail == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar tienda (existente y activa)
	tenant, err := uc.tenantRepo.GetActiveBySlug(tenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: tienda %s no disponible", domain.ErrNotFound, tenantSlug)
	}

	now := time.Now()
	orderID := uuid.New().String()
	var order *entity.Order

	err = uc.txRunner.RunOrders(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		total := decimal.Zero
		items := make([]entity.OrderItem, 0, len(in.Items))

		for _, item := range in.Items {
			product, err := productRepo.GetByID(item.ProductID, tenant.ID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return fmt.Errorf("%w: producto %s no disponible", domain.ErrNotFound, item.ProductID)
			}

			// Descuento de stock + entrada del ledger (mismo tx)
			_, _, err = uc.ledger.ApplyMovement(movRepo, productRepo, inventory.ApplyMovementInput{
				TenantID:  tenant.ID,
				ProductID: product.ID,
				Type:      entity.MovementTypeOUT,
				Quantity:  item.Quantity,
				Comment:   fmt.Sprintf("Venta Online - Cliente: %s", in.CustomerName),
				Now:       now,
			})
			if err != nil {
				return err
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			items = append(items, entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price, // snapshot del precio al comprar
			})
		}

		order = &entity.Order{
			ID:            orderID,
			TenantID:      tenant.ID,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			Total:         total,
			Status:        entity.OrderStatusCompleted,
			Items:         items,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCatalog(ctx, tenant.ID)
	uc.auditSink.Record("ORDER_CREATE",
		fmt.Sprintf("Venta realizada #%s - Total: $%s", shortID(order.ID), order.Total.StringFixed(2)),
		map[string]any{"tenant_id": tenant.ID, "order_id": order.ID},
	)

	return toOrderResponse(order), nil
}

// GetOrder devuelve una orden del tenant con sus items.
func (uc *FulfillmentUseCase) GetOrder(ctx context.Context, orderID, tenantID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID, tenantID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista las órdenes del tenant con paginación.
func (uc *FulfillmentUseCase) ListOrders(ctx context.Context, tenantID string, limit, offset int) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	list := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		list = append(list, *toOrderResponse(o))
	}
	return list, nil
}

func (uc *FulfillmentUseCase) invalidateCatalog(ctx context.Context, tenantID string) {
	if err := uc.catalogCache.InvalidateProducts(ctx, tenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("invalidar catálogo cacheado")
	}
}

// shortID primeros 8 caracteres del UUID, para referencias legibles.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toOrderResponse(order *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Total:         order.Total,
		Status:        order.Status,
		Items:         make([]dto.OrderItemResponse, 0, len(order.Items)),
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return resp
}
