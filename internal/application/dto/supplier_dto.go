package dto

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	SupplierID string `json:"supplier_id"` // SUP-XXXXXXXX
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Notes      string `json:"notes"`
	Active     *bool  `json:"active"` // por defecto true
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID         int64  `json:"id"`
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Notes      string `json:"notes"`
	Active     bool   `json:"active"`
}
