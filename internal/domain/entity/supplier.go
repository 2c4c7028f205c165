package entity

// Supplier proveedor del directorio. SupplierID con formato SUP-XXXXXXXX.
type Supplier struct {
	ID         int64
	SupplierID string
	Name       string
	Contact    string
	Notes      string
	Active     bool
}
