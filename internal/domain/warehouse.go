package domain

// WarehouseType é o tipo de uma bodega.
type WarehouseType string

const (
	WarehouseSmall       WarehouseType = "small"
	WarehouseLarge       WarehouseType = "large"
	WarehouseNonSortable WarehouseType = "large non-sortable"
)

func (t WarehouseType) Valid() bool {
	switch t {
	case WarehouseSmall, WarehouseLarge, WarehouseNonSortable:
		return true
	}
	return false
}

// Warehouse representa uma bodega física.
type Warehouse struct {
	ID      int64         `json:"bodega_id"`
	Address string        `json:"direccion_bodega"`
	Type    WarehouseType `json:"tipo"`
}

// WarehouseInput é o payload de criação de uma bodega.
type WarehouseInput struct {
	Address string        `json:"direccion_bodega"`
	Type    WarehouseType `json:"tipo"`
}

// WarehouseUpdate é o payload de atualização parcial.
type WarehouseUpdate struct {
	Address *string        `json:"direccion_bodega"`
	Type    *WarehouseType `json:"tipo"`
}

// WarehouseFilter define os filtros opcionais da busca de bodegas.
type WarehouseFilter struct {
	Address *string
	Type    *WarehouseType
	Page    Page
}

func (f WarehouseFilter) Empty() bool {
	return f.Address == nil && f.Type == nil
}
