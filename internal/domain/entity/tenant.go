package entity

import "time"

// Tenant representa una tienda del sistema (frontera de aislamiento multi-tenant).
// Este núcleo nunca muta tenants: se crean y administran desde la capa SaaS externa.
type Tenant struct {
	ID           string
	Name         string
	BusinessName string
	Slug         string // identificador público de la tienda (URL del storefront)
	Email        string
	Phone        string
	Address      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
