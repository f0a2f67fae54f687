package domain

// ReturnDetail representa um devolucion_detalle: um par produto/quantidade
// dentro de uma devolução. producto_id é um id externo opaco.
type ReturnDetail struct {
	ID        int64 `json:"devolucion_detalle_id"`
	ReturnID  int64 `json:"devolucion_id"`
	ProductID int64 `json:"producto_id"`
	Quantity  int   `json:"cantidad"`
}

// ReturnDetailInput é o payload de criação de um detalhe de devolução.
type ReturnDetailInput struct {
	ReturnID  int64 `json:"devolucion_id"`
	ProductID int64 `json:"producto_id"`
	Quantity  int   `json:"cantidad"`
}

// ReturnDetailUpdate é o payload de atualização parcial.
type ReturnDetailUpdate struct {
	ReturnID  *int64 `json:"devolucion_id"`
	ProductID *int64 `json:"producto_id"`
	Quantity  *int   `json:"cantidad"`
}

// ReturnDetailFilter define os filtros opcionais da busca de detalhes.
// Todos os filtros são de igualdade exata.
type ReturnDetailFilter struct {
	ReturnID  *int64
	ProductID *int64
	Quantity  *int
	Page      Page
}

func (f ReturnDetailFilter) Empty() bool {
	return f.ReturnID == nil && f.ProductID == nil && f.Quantity == nil
}
