package domain

import "time"

// WarehouseLog representa um log_bodega: um movimento de estoque de um
// produto em uma bodega, atribuído a um empleado.
type WarehouseLog struct {
	ID          int64     `json:"log_bodega_id"`
	ProductID   int64     `json:"producto_id"`
	Quantity    int       `json:"cantidad"`
	Date        time.Time `json:"fecha"`
	WarehouseID int64     `json:"bodega_id"`
	EmployeeID  int64     `json:"empleado_id"`
}

// WarehouseLogInput é o payload de criação de um log de bodega.
type WarehouseLogInput struct {
	ProductID   int64 `json:"producto_id"`
	Quantity    int   `json:"cantidad"`
	WarehouseID int64 `json:"bodega_id"`
	EmployeeID  int64 `json:"empleado_id"`
}

// WarehouseLogUpdate é o payload de atualização parcial.
type WarehouseLogUpdate struct {
	ProductID   *int64     `json:"producto_id"`
	Quantity    *int       `json:"cantidad"`
	Date        *time.Time `json:"fecha"`
	WarehouseID *int64     `json:"bodega_id"`
	EmployeeID  *int64     `json:"empleado_id"`
}

// WarehouseLogFilter define os filtros opcionais da busca de logs.
type WarehouseLogFilter struct {
	ProductID   *int64
	Quantity    *int
	WarehouseID *int64
	EmployeeID  *int64
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        Page
}

func (f WarehouseLogFilter) Empty() bool {
	return f.ProductID == nil && f.Quantity == nil && f.WarehouseID == nil &&
		f.EmployeeID == nil && f.DateFrom == nil && f.DateTo == nil
}
