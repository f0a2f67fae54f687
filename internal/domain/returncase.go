package domain

import "time"

// ReturnStatus é o estado de uma devolução.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pendiente"
	ReturnShipped  ReturnStatus = "enviado"
	ReturnReceived ReturnStatus = "recibido"
)

func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnPending, ReturnShipped, ReturnReceived:
		return true
	}
	return false
}

// Return representa uma devolución aberta contra um envio.
type Return struct {
	ID         int64        `json:"devolucion_id"`
	ShipmentID int64        `json:"envio_id"`
	Reason     string       `json:"motivo"`
	Date       time.Time    `json:"fecha"`
	Status     ReturnStatus `json:"estado"`
}

// ReturnInput é o payload de criação de uma devolução.
// O estado inicial é sempre "pendiente".
type ReturnInput struct {
	ShipmentID int64  `json:"envio_id"`
	Reason     string `json:"motivo"`
}

// ReturnUpdate é o payload de atualização parcial.
type ReturnUpdate struct {
	ShipmentID *int64        `json:"envio_id"`
	Reason     *string       `json:"motivo"`
	Date       *time.Time    `json:"fecha"`
	Status     *ReturnStatus `json:"estado"`
}

// ReturnFilter define os filtros opcionais da busca de devoluções.
type ReturnFilter struct {
	ShipmentID *int64
	Reason     *string
	Status     *ReturnStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       Page
}

func (f ReturnFilter) Empty() bool {
	return f.ShipmentID == nil && f.Reason == nil && f.Status == nil &&
		f.DateFrom == nil && f.DateTo == nil
}
