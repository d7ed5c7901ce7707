package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/simpleshop-api/internal/application/inventory"
	"github.com/tu-usuario/simpleshop-api/internal/application/orders"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
)

// Ensure Store and its repos implement the ports.
var _ repository.TenantRepository = (*Store)(nil)
var _ inventory.TxRunner = (*Store)(nil)
var _ orders.TxRunner = (*Store)(nil)
var _ repository.ProductRepository = (*productRepo)(nil)
var _ repository.InventoryMovementRepository = (*movementRepo)(nil)
var _ repository.OrderRepository = (*orderRepo)(nil)

// state es el contenido mutable del store. Las transacciones trabajan sobre un
// clon y recién al confirmar se reemplaza el estado visible: un error en medio
// de la unidad de trabajo descarta el clon completo (rollback).
type state struct {
	products  map[string]*entity.Product
	movements []*entity.InventoryMovement
	orders    map[string]*entity.Order
}

func newState() *state {
	return &state{
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
	}
}

func (s *state) clone() *state {
	next := newState()
	for id, p := range s.products {
		cp := *p
		next.products[id] = &cp
	}
	next.movements = make([]*entity.InventoryMovement, len(s.movements))
	copy(next.movements, s.movements)
	for id, o := range s.orders {
		co := *o
		co.Items = append([]entity.OrderItem(nil), o.Items...)
		next.orders[id] = &co
	}
	return next
}

// Store implementación en memoria de todos los puertos de persistencia más los
// TxRunner. El mutex serializa las transacciones completas, lo que reproduce el
// efecto del bloqueo de fila de PostgreSQL: dos OUT concurrentes sobre el mismo
// producto nunca leen el mismo stock viejo. Pensado para tests y modo demo.
type Store struct {
	mu      sync.Mutex
	tenants map[string]*entity.Tenant
	st      *state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		tenants: make(map[string]*entity.Tenant),
		st:      newState(),
	}
}

// SeedTenant registra un tenant (los tenants se crean fuera de este núcleo).
func (s *Store) SeedTenant(t *entity.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ct := *t
	s.tenants[t.ID] = &ct
}

// GetByID obtiene un tenant por ID.
func (s *Store) GetByID(id string) (*entity.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, nil
	}
	ct := *t
	return &ct, nil
}

// GetActiveBySlug obtiene un tenant activo por slug.
func (s *Store) GetActiveBySlug(slug string) (*entity.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.Slug == slug && t.IsActive {
			ct := *t
			return &ct, nil
		}
	}
	return nil, nil
}

// ProductRepo devuelve un repositorio atado al estado vivo (equivale al pool).
func (s *Store) ProductRepo() repository.ProductRepository {
	return &productRepo{store: s}
}

// MovementRepo devuelve un repositorio del ledger atado al estado vivo.
func (s *Store) MovementRepo() repository.InventoryMovementRepository {
	return &movementRepo{store: s}
}

// OrderRepo devuelve un repositorio de órdenes atado al estado vivo.
func (s *Store) OrderRepo() repository.OrderRepository {
	return &orderRepo{store: s}
}

// Run ejecuta fn sobre un clon del estado y lo confirma solo si fn retorna nil.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(&movementRepo{st: next}, &productRepo{st: next}); err != nil {
		return err
	}
	s.st = next
	return nil
}

// RunOrders igual que Run, con el repositorio de órdenes incluido.
func (s *Store) RunOrders(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(&movementRepo{st: next}, &productRepo{st: next}, &orderRepo{st: next}); err != nil {
		return err
	}
	s.st = next
	return nil
}

// view da acceso al estado correcto: el clon de la tx (sin lock, el TxRunner ya
// lo tiene) o el estado vivo bajo lock.
func view(store *Store, st *state) (*state, func()) {
	if st != nil {
		return st, func() {}
	}
	store.mu.Lock()
	return store.st, store.mu.Unlock
}

// ── ProductRepository ────────────────────────────────────────────────────────

type productRepo struct {
	store *Store // nil cuando está atado a una tx
	st    *state // estado de la tx; nil cuando va contra el estado vivo
}

func (r *productRepo) Create(product *entity.Product) error {
	st, done := view(r.store, r.st)
	defer done()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for _, p := range st.products {
		if p.TenantID == product.TenantID && p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	st.products[product.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id, tenantID string) (*entity.Product, error) {
	st, done := view(r.store, r.st)
	defer done()
	p, ok := st.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate en memoria equivale a GetByID: el lock global del TxRunner ya
// serializa la transacción completa.
func (r *productRepo) GetForUpdate(id, tenantID string) (*entity.Product, error) {
	return r.GetByID(id, tenantID)
}

func (r *productRepo) UpdateStock(id, tenantID string, stock int) error {
	st, done := view(r.store, r.st)
	defer done()
	p, ok := st.products[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Stock = stock
	cp.UpdatedAt = time.Now()
	st.products[id] = &cp
	return nil
}

func (r *productRepo) Update(product *entity.Product) error {
	st, done := view(r.store, r.st)
	defer done()
	p, ok := st.products[product.ID]
	if !ok || p.TenantID != product.TenantID {
		return domain.ErrNotFound
	}
	cp := *product
	cp.Stock = p.Stock // el stock solo cambia vía movimientos
	st.products[product.ID] = &cp
	return nil
}

func (r *productRepo) ListActiveByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	st, done := view(r.store, r.st)
	defer done()
	var list []*entity.Product
	for _, p := range st.products {
		if p.TenantID == tenantID && p.IsActive {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

// ── InventoryMovementRepository ──────────────────────────────────────────────

type movementRepo struct {
	store *Store
	st    *state
}

func (r *movementRepo) Create(movement *entity.InventoryMovement) error {
	st, done := view(r.store, r.st)
	defer done()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	cm := *movement
	st.movements = append(st.movements, &cm)
	return nil
}

func (r *movementRepo) GetByID(id, tenantID string) (*entity.InventoryMovement, error) {
	st, done := view(r.store, r.st)
	defer done()
	for _, m := range st.movements {
		if m.ID == id && m.TenantID == tenantID {
			cm := *m
			return &cm, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByProduct(tenantID, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(func(m *entity.InventoryMovement) bool {
		return m.TenantID == tenantID && m.ProductID == productID
	}, limit, offset)
}

func (r *movementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(func(m *entity.InventoryMovement) bool {
		return m.TenantID == tenantID
	}, limit, offset)
}

func (r *movementRepo) list(match func(*entity.InventoryMovement) bool, limit, offset int) ([]*entity.InventoryMovement, error) {
	st, done := view(r.store, r.st)
	defer done()
	var list []*entity.InventoryMovement
	// Más recientes primero (el slice se escribe en orden de inserción)
	for i := len(st.movements) - 1; i >= 0; i-- {
		if match(st.movements[i]) {
			cm := *st.movements[i]
			list = append(list, &cm)
		}
	}
	return page(list, limit, offset), nil
}

// ── OrderRepository ──────────────────────────────────────────────────────────

type orderRepo struct {
	store *Store
	st    *state
}

func (r *orderRepo) Create(order *entity.Order) error {
	st, done := view(r.store, r.st)
	defer done()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
	}
	co := *order
	co.Items = append([]entity.OrderItem(nil), order.Items...)
	st.orders[order.ID] = &co
	return nil
}

func (r *orderRepo) GetByID(id, tenantID string) (*entity.Order, error) {
	st, done := view(r.store, r.st)
	defer done()
	o, ok := st.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	co := *o
	co.Items = append([]entity.OrderItem(nil), o.Items...)
	return &co, nil
}

func (r *orderRepo) UpdateStatus(id, tenantID, status string) error {
	st, done := view(r.store, r.st)
	defer done()
	o, ok := st.orders[id]
	if !ok || o.TenantID != tenantID {
		return domain.ErrNotFound
	}
	co := *o
	co.Items = append([]entity.OrderItem(nil), o.Items...)
	co.Status = status
	co.UpdatedAt = time.Now()
	st.orders[id] = &co
	return nil
}

func (r *orderRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Order, error) {
	st, done := view(r.store, r.st)
	defer done()
	var list []*entity.Order
	for _, o := range st.orders {
		if o.TenantID == tenantID {
			co := *o
			co.Items = append([]entity.OrderItem(nil), o.Items...)
			list = append(list, &co)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
