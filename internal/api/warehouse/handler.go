package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// WarehouseService define o contrato que o Handler espera da camada de serviço.
type WarehouseService interface {
	ListWarehouses(ctx context.Context, page domain.Page) ([]domain.Warehouse, error)
	CreateWarehouse(ctx context.Context, input domain.WarehouseInput) (domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id int64, upd domain.WarehouseUpdate) (domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int64) error
	SearchWarehouses(ctx context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error)
}

// Handler agrupa todos os endpoints de bodegas.
type Handler struct {
	Service WarehouseService
	Logger  logger.Logger
}

func NewHandler(svc WarehouseService, log logger.Logger) *Handler {
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

// CollectionHandler atende o caminho exato /bodega: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchWarehousesHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /bodega/ (listagem e criação) e /bodega/{id}.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/bodega/" {
		switch r.Method {
		case http.MethodGet:
			h.ListWarehousesHandler(w, r)
		case http.MethodPost:
			h.CreateWarehouseHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetWarehouseByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateWarehouseHandler(w, r)
	case http.MethodDelete:
		h.DeleteWarehouseHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListWarehousesHandler lida com a requisição GET /bodega/.
// @Summary Lista as bodegas
// @Tags bodegas
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.Warehouse "Lista de bodegas"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /bodega/ [get]
func (h *Handler) ListWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	warehouses, err := h.Service.ListWarehouses(r.Context(), page)
	h.handleServiceResponse(w, r, warehouses, err, http.StatusOK)
}

// CreateWarehouseHandler lida com a requisição POST /bodega/.
// @Summary Cria uma bodega
// @Tags bodegas
// @Accept json
// @Produce json
// @Param bodega body domain.WarehouseInput true "Dados da bodega"
// @Success 201 {object} domain.Warehouse "Bodega criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /bodega/ [post]
func (h *Handler) CreateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.WarehouseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateWarehouse(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetWarehouseByIDHandler lida com a requisição GET /bodega/{id}.
// @Summary Obtém uma bodega por ID
// @Tags bodegas
// @Produce json
// @Param id path int true "ID da bodega"
// @Success 200 {object} domain.Warehouse "Bodega encontrada"
// @Failure 404 {object} domain.ErrorResponse "Bodega não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /bodega/{id} [get]
func (h *Handler) GetWarehouseByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetWarehouseByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// UpdateWarehouseHandler lida com a requisição PUT /bodega/{id}.
// @Summary Atualiza parcialmente uma bodega
// @Tags bodegas
// @Accept json
// @Produce json
// @Param id path int true "ID da bodega"
// @Param bodega body domain.WarehouseUpdate true "Campos a atualizar"
// @Success 200 {object} domain.Warehouse "Bodega atualizada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Bodega não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /bodega/{id} [put]
func (h *Handler) UpdateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.WarehouseUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateWarehouse(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteWarehouseHandler lida com a requisição DELETE /bodega/{id}.
// @Summary Remove uma bodega
// @Tags bodegas
// @Param id path int true "ID da bodega"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Bodega não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /bodega/{id} [delete]
func (h *Handler) DeleteWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteWarehouse(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchWarehousesHandler lida com a requisição GET /bodega.
// @Summary Busca bodegas por filtros
// @Tags bodegas
// @Produce json
// @Param direccion query string false "Substring da direção"
// @Param tipo query string false "Tipo exato"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.Warehouse "Bodegas encontradas"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /bodega [get]
func (h *Handler) SearchWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.WarehouseFilter{Page: page}
	if v := q.Get("direccion"); v != "" {
		filter.Address = &v
	}
	if v := q.Get("tipo"); v != "" {
		t := domain.WarehouseType(v)
		filter.Type = &t
	}

	warehouses, err := h.Service.SearchWarehouses(r.Context(), filter)
	h.handleServiceResponse(w, r, warehouses, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/bodega/")
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
