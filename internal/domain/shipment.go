package domain

import "time"

// Shipment representa um envio. pedido_id e direccion_id são ids opacos de
// serviços externos (não são entidades deste sistema e não são validados).
type Shipment struct {
	ID                int64      `json:"envio_id"`
	OrderID           int64      `json:"pedido_id"`
	AddressID         int64      `json:"direccion_id"`
	MethodID          int64      `json:"metodo_envio_id"`
	ShipDate          time.Time  `json:"fecha_envio"`
	EstimatedDelivery *time.Time `json:"fecha_estimada_entrega"`
	TrackingCode      string     `json:"codigo_rastreo"`
}

// ShipmentInput é o payload de criação de um envio. O código de rastreio é
// sempre gerado pelo servidor, nunca aceito do cliente.
type ShipmentInput struct {
	OrderID   int64 `json:"pedido_id"`
	AddressID int64 `json:"direccion_id"`
	MethodID  int64 `json:"metodo_envio_id"`
}

// ShipmentUpdate é o payload de atualização parcial.
type ShipmentUpdate struct {
	OrderID           *int64     `json:"pedido_id"`
	AddressID         *int64     `json:"direccion_id"`
	MethodID          *int64     `json:"metodo_envio_id"`
	ShipDate          *time.Time `json:"fecha_envio"`
	EstimatedDelivery *time.Time `json:"fecha_estimada_entrega"`
	TrackingCode      *string    `json:"codigo_rastreo"`
}

// ShipmentFilter define os filtros opcionais da busca de envios.
// Os pares Desde/Hasta já chegam expandidos para o início e o fim do dia.
type ShipmentFilter struct {
	OrderID                *int64
	AddressID              *int64
	MethodID               *int64
	ShipDateFrom           *time.Time
	ShipDateTo             *time.Time
	EstimatedDeliveryFrom  *time.Time
	EstimatedDeliveryTo    *time.Time
	TrackingCode           *string
	Page                   Page
}

func (f ShipmentFilter) Empty() bool {
	return f.OrderID == nil && f.AddressID == nil && f.MethodID == nil &&
		f.ShipDateFrom == nil && f.ShipDateTo == nil &&
		f.EstimatedDeliveryFrom == nil && f.EstimatedDeliveryTo == nil &&
		f.TrackingCode == nil
}
