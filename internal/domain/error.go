package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Envelope padronizado para respostas de erro na API.
type ErrorResponse struct {
	Error   string                 `json:"error" example:"not_found"`
	Message string                 `json:"message" example:"Envío con ID 10 no encontrado"`
	Details map[string]interface{} `json:"details"`
}

// Limites de paginação compartilhados por todas as entidades.
// A busca filtrada tem um teto menor que a listagem simples.
const (
	DefaultLimit   = 100
	MaxListLimit   = 1000
	MaxSearchLimit = 500
)

// Page carrega os parâmetros de paginação já validados.
type Page struct {
	Skip  int
	Limit int
}
