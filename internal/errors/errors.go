package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados da API.
// Ela permite que o Handler acesse o tipo, a mensagem e os detalhes do erro
// para montar o envelope JSON padronizado {error, message, details}.
type AppError interface {
	Error() string                   // implementa a interface error padrão do Go
	Kind() string                    // tipo do erro (e.g. "not_found", "database_error")
	HTTPStatus() int                 // código HTTP sugerido para o Handler
	Details() map[string]interface{} // conteúdo do campo "details" (pode ser nil)
	Unwrap() error                   // permite encapsular o erro subjacente
}

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string                   { return e.Msg }
func (e *ValidationError) Kind() string                    { return "validation_error" }
func (e *ValidationError) HTTPStatus() int                 { return http.StatusBadRequest } // 400
func (e *ValidationError) Details() map[string]interface{} { return nil }
func (e *ValidationError) Unwrap() error                   { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso (ou referência) solicitado.
type NotFoundError struct {
	Msg  string
	Info map[string]interface{}
}

func (e *NotFoundError) Error() string                   { return e.Msg }
func (e *NotFoundError) Kind() string                    { return "not_found" }
func (e *NotFoundError) HTTPStatus() int                 { return http.StatusNotFound } // 404
func (e *NotFoundError) Details() map[string]interface{} { return e.Info }
func (e *NotFoundError) Unwrap() error                   { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
// O mapa de detalhes identifica a chave pesquisada (e.g. {"envio_id": 10}).
func NewNotFoundError(msg string, details map[string]interface{}) AppError {
	return &NotFoundError{Msg: msg, Info: details}
}

// CredentialsError representa uma falha de autenticação no login.
// A mensagem é idêntica para email desconhecido e senha incorreta, de
// propósito: o cliente não consegue enumerar contas existentes.
type CredentialsError struct{}

func (e *CredentialsError) Error() string                   { return "Credenciales incorrectas" }
func (e *CredentialsError) Kind() string                    { return "invalid_credentials" }
func (e *CredentialsError) HTTPStatus() int                 { return http.StatusUnauthorized } // 401
func (e *CredentialsError) Details() map[string]interface{} { return nil }
func (e *CredentialsError) Unwrap() error                   { return nil }

// NewCredentialsError cria o erro único de credenciais inválidas.
func NewCredentialsError() AppError {
	return &CredentialsError{}
}

// --- Erros de Infraestrutura ---

// DatabaseError representa qualquer falha de persistência não tratada.
// O erro original do driver vai em details.internal_error, reproduzindo o
// comportamento da API (sim, isso vaza detalhe interno; está documentado).
type DatabaseError struct {
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("Error al %s en la base de datos", e.Operation)
}
func (e *DatabaseError) Kind() string    { return "database_error" }
func (e *DatabaseError) HTTPStatus() int { return http.StatusInternalServerError } // 500
func (e *DatabaseError) Details() map[string]interface{} {
	if e.Err == nil {
		return nil
	}
	return map[string]interface{}{"internal_error": e.Err.Error()}
}
func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDBError cria um erro de banco para a operação informada
// (e.g. "obtener envíos" -> "Error al obtener envíos en la base de datos").
func NewDBError(operation string, err error) AppError {
	return &DatabaseError{Operation: operation, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e as partes do
// envelope de resposta (kind, message, details).
func MapToHTTPStatus(err error) (int, string, string, map[string]interface{}) {
	if appErr, ok := err.(AppError); ok {
		return appErr.HTTPStatus(), appErr.Kind(), appErr.Error(), appErr.Details()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "database_error", "Ocurrió un error inesperado", nil
}
