package domain

// MethodType é o tipo de um método de envio.
type MethodType string

const (
	MethodStandard MethodType = "estandar"
	MethodFast     MethodType = "rapido"
	MethodExpress  MethodType = "express"
)

func (t MethodType) Valid() bool {
	switch t {
	case MethodStandard, MethodFast, MethodExpress:
		return true
	}
	return false
}

// ShippingMethod representa um metodo_envio.
type ShippingMethod struct {
	ID            int64      `json:"metodo_envio_id"`
	Type          MethodType `json:"tipo"`
	Description   string     `json:"descripcion"`
	EstimatedDays int        `json:"tiempo_estimado"`
	Cost          float64    `json:"costo"`
}

// ShippingMethodInput é o payload de criação de um método de envio.
type ShippingMethodInput struct {
	Type          MethodType `json:"tipo"`
	Description   string     `json:"descripcion"`
	EstimatedDays int        `json:"tiempo_estimado"`
	Cost          float64    `json:"costo"`
}

// ShippingMethodUpdate é o payload de atualização parcial.
type ShippingMethodUpdate struct {
	Type          *MethodType `json:"tipo"`
	Description   *string     `json:"descripcion"`
	EstimatedDays *int        `json:"tiempo_estimado"`
	Cost          *float64    `json:"costo"`
}

// ShippingMethodFilter define os filtros opcionais da busca de métodos.
type ShippingMethodFilter struct {
	Type             *MethodType
	Description      *string
	EstimatedDaysMin *int
	EstimatedDaysMax *int
	CostMin          *float64
	CostMax          *float64
	Page             Page
}

func (f ShippingMethodFilter) Empty() bool {
	return f.Type == nil && f.Description == nil &&
		f.EstimatedDaysMin == nil && f.EstimatedDaysMax == nil &&
		f.CostMin == nil && f.CostMax == nil
}
