package returndetail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// DetailService define o contrato que o Handler espera da camada de serviço.
type DetailService interface {
	ListDetails(ctx context.Context, page domain.Page) ([]domain.ReturnDetail, error)
	CreateDetail(ctx context.Context, input domain.ReturnDetailInput) (domain.ReturnDetail, error)
	GetDetailByID(ctx context.Context, id int64) (domain.ReturnDetail, error)
	UpdateDetail(ctx context.Context, id int64, upd domain.ReturnDetailUpdate) (domain.ReturnDetail, error)
	DeleteDetail(ctx context.Context, id int64) error
	SearchDetails(ctx context.Context, filter domain.ReturnDetailFilter) ([]domain.ReturnDetail, error)
}

// Handler agrupa todos os endpoints de detalhes de devolução.
type Handler struct {
	Service DetailService
	Logger  logger.Logger
}

func NewHandler(svc DetailService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta.", jsonErr)
			}
		}
		return
	}

	status, kind, message, details := apperror.MapToHTTPStatus(err)
	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de servidor: %s", kind), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d.", status), map[string]interface{}{"path": r.URL.Path, "kind": kind})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Error: kind, Message: message, Details: details})
}

// CollectionHandler atende o caminho exato /devolucion_detalle: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchDetailsHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /devolucion_detalle/ (listagem e criação) e
// /devolucion_detalle/{id}.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/devolucion_detalle/" {
		switch r.Method {
		case http.MethodGet:
			h.ListDetailsHandler(w, r)
		case http.MethodPost:
			h.CreateDetailHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetDetailByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateDetailHandler(w, r)
	case http.MethodDelete:
		h.DeleteDetailHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListDetailsHandler lida com a requisição GET /devolucion_detalle/.
// @Summary Lista os detalhes de devolução
// @Tags detalhes de devolucao
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.ReturnDetail "Lista de detalhes"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion_detalle/ [get]
func (h *Handler) ListDetailsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	details, err := h.Service.ListDetails(r.Context(), page)
	h.handleServiceResponse(w, r, details, err, http.StatusOK)
}

// CreateDetailHandler lida com a requisição POST /devolucion_detalle/.
// @Summary Cria um detalhe de devolução
// @Tags detalhes de devolucao
// @Accept json
// @Produce json
// @Param detalle body domain.ReturnDetailInput true "Dados do detalhe"
// @Success 201 {object} domain.ReturnDetail "Detalhe criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Devolução não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion_detalle/ [post]
func (h *Handler) CreateDetailHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ReturnDetailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateDetail(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetDetailByIDHandler lida com a requisição GET /devolucion_detalle/{id}.
// @Summary Obtém um detalhe de devolução por ID
// @Tags detalhes de devolucao
// @Produce json
// @Param id path int true "ID do detalhe"
// @Success 200 {object} domain.ReturnDetail "Detalhe encontrado"
// @Failure 404 {object} domain.ErrorResponse "Detalhe não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion_detalle/{id} [get]
func (h *Handler) GetDetailByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetDetailByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// UpdateDetailHandler lida com a requisição PUT /devolucion_detalle/{id}.
// @Summary Atualiza parcialmente um detalhe de devolução
// @Tags detalhes de devolucao
// @Accept json
// @Produce json
// @Param id path int true "ID do detalhe"
// @Param detalle body domain.ReturnDetailUpdate true "Campos a atualizar"
// @Success 200 {object} domain.ReturnDetail "Detalhe atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Detalhe não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion_detalle/{id} [put]
func (h *Handler) UpdateDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.ReturnDetailUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateDetail(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteDetailHandler lida com a requisição DELETE /devolucion_detalle/{id}.
// @Summary Remove um detalhe de devolução
// @Tags detalhes de devolucao
// @Param id path int true "ID do detalhe"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Detalhe não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion_detalle/{id} [delete]
func (h *Handler) DeleteDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteDetail(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchDetailsHandler lida com a requisição GET /devolucion_detalle.
// @Summary Busca detalhes de devolução por filtros
// @Description Todos os filtros são de igualdade exata.
// @Tags detalhes de devolucao
// @Produce json
// @Param devolucion_id query int false "ID da devolução"
// @Param producto_id query int false "ID do produto"
// @Param cantidad query int false "Quantidade exata"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.ReturnDetail "Detalhes encontrados"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion_detalle [get]
func (h *Handler) SearchDetailsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.ReturnDetailFilter{Page: page}
	if filter.ReturnID, err = int64Param(q, "devolucion_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.ProductID, err = int64Param(q, "producto_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.Quantity, err = intParam(q, "cantidad"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	details, err := h.Service.SearchDetails(r.Context(), filter)
	h.handleServiceResponse(w, r, details, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/devolucion_detalle/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewValidationError("El ID debe ser un número entero.")
	}
	return id, nil
}

func parsePage(r *http.Request) (domain.Page, error) {
	page := domain.Page{Skip: 0, Limit: domain.DefaultLimit}
	q := r.URL.Query()
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, apperror.NewValidationError("El parámetro skip debe ser un número entero.")
		}
		page.Skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, apperror.NewValidationError("El parámetro limit debe ser un número entero.")
		}
		page.Limit = n
	}
	return page, nil
}

func int64Param(q url.Values, name string) (*int64, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("El parámetro %s debe ser un número entero.", name))
	}
	return &n, nil
}

func intParam(q url.Values, name string) (*int, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("El parámetro %s debe ser un número entero.", name))
	}
	return &n, nil
}
