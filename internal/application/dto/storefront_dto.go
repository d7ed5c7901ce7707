package dto

import "github.com/shopspring/decimal"

// StoreInfoResponse datos públicos de la tienda (sin campos internos del tenant).
type StoreInfoResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Slug         string `json:"slug"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// StoreProductResponse producto visible en el catálogo público.
type StoreProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}
