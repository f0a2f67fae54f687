package domain

import "time"

// StatusValue é o estado de um envio em um ponto do tempo.
type StatusValue string

const (
	StatusPending   StatusValue = "pendiente"
	StatusInTransit StatusValue = "en ruta"
	StatusDelivered StatusValue = "entregado"
	StatusReturned  StatusValue = "devuelto"
)

func (s StatusValue) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusReturned:
		return true
	}
	return false
}

// InitialStatusDescription é a descrição do estado criado junto com o envio.
const InitialStatusDescription = "Envío creado, pendiente de procesamiento"

// ShipmentStatus representa um estado_envio: uma transição no histórico de um
// envio, opcionalmente atribuída ao empleado que a registrou.
type ShipmentStatus struct {
	ID          int64       `json:"estado_envio_id"`
	ShipmentID  int64       `json:"envio_id"`
	Status      StatusValue `json:"estado"`
	Description *string     `json:"descripcion"`
	Date        time.Time   `json:"fecha"`
	EmployeeID  *int64      `json:"empleado_id"`
}

// ShipmentStatusInput é o payload de criação de um estado de envio.
type ShipmentStatusInput struct {
	ShipmentID  int64       `json:"envio_id"`
	Status      StatusValue `json:"estado"`
	Description *string     `json:"descripcion"`
	EmployeeID  *int64      `json:"empleado_id"`
}

// ShipmentStatusUpdate é o payload de atualização parcial.
type ShipmentStatusUpdate struct {
	ShipmentID  *int64       `json:"envio_id"`
	Status      *StatusValue `json:"estado"`
	Description *string      `json:"descripcion"`
	Date        *time.Time   `json:"fecha"`
	EmployeeID  *int64       `json:"empleado_id"`
}

// ShipmentStatusFilter define os filtros opcionais da busca de estados.
type ShipmentStatusFilter struct {
	ShipmentID  *int64
	Status      *StatusValue
	EmployeeID  *int64
	Description *string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        Page
}

func (f ShipmentStatusFilter) Empty() bool {
	return f.ShipmentID == nil && f.Status == nil && f.EmployeeID == nil &&
		f.Description == nil && f.DateFrom == nil && f.DateTo == nil
}
