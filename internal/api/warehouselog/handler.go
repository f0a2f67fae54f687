package warehouselog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// LogService define o contrato que o Handler espera da camada de serviço.
type LogService interface {
	ListLogs(ctx context.Context, page domain.Page) ([]domain.WarehouseLog, error)
	CreateLog(ctx context.Context, input domain.WarehouseLogInput) (domain.WarehouseLog, error)
	GetLogByID(ctx context.Context, id int64) (domain.WarehouseLog, error)
	UpdateLog(ctx context.Context, id int64, upd domain.WarehouseLogUpdate) (domain.WarehouseLog, error)
	DeleteLog(ctx context.Context, id int64) error
	SearchLogs(ctx context.Context, filter domain.WarehouseLogFilter) ([]domain.WarehouseLog, error)
}

// Handler agrupa todos os endpoints de logs de bodega.
type Handler struct {
	Service LogService
	Logger  logger.Logger
}

func NewHandler(svc LogService, log logger.Logger) *Handler {
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

// CollectionHandler atende o caminho exato /log_bodega: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchLogsHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /log_bodega/ (listagem e criação) e /log_bodega/{id}.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/log_bodega/" {
		switch r.Method {
		case http.MethodGet:
			h.ListLogsHandler(w, r)
		case http.MethodPost:
			h.CreateLogHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetLogByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateLogHandler(w, r)
	case http.MethodDelete:
		h.DeleteLogHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListLogsHandler lida com a requisição GET /log_bodega/.
// @Summary Lista os logs de bodega
// @Tags logs de bodega
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.WarehouseLog "Lista de logs"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /log_bodega/ [get]
func (h *Handler) ListLogsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	logs, err := h.Service.ListLogs(r.Context(), page)
	h.handleServiceResponse(w, r, logs, err, http.StatusOK)
}

// CreateLogHandler lida com a requisição POST /log_bodega/.
// @Summary Registra um log de bodega
// @Tags logs de bodega
// @Accept json
// @Produce json
// @Param log body domain.WarehouseLogInput true "Dados do log"
// @Success 201 {object} domain.WarehouseLog "Log criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Bodega ou empleado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /log_bodega/ [post]
func (h *Handler) CreateLogHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.WarehouseLogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateLog(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetLogByIDHandler lida com a requisição GET /log_bodega/{id}.
// @Summary Obtém um log de bodega por ID
// @Tags logs de bodega
// @Produce json
// @Param id path int true "ID do log"
// @Success 200 {object} domain.WarehouseLog "Log encontrado"
// @Failure 404 {object} domain.ErrorResponse "Log não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /log_bodega/{id} [get]
func (h *Handler) GetLogByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetLogByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// UpdateLogHandler lida com a requisição PUT /log_bodega/{id}.
// @Summary Atualiza parcialmente um log de bodega
// @Tags logs de bodega
// @Accept json
// @Produce json
// @Param id path int true "ID do log"
// @Param log body domain.WarehouseLogUpdate true "Campos a atualizar"
// @Success 200 {object} domain.WarehouseLog "Log atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Log não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /log_bodega/{id} [put]
func (h *Handler) UpdateLogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.WarehouseLogUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateLog(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteLogHandler lida com a requisição DELETE /log_bodega/{id}.
// @Summary Remove um log de bodega
// @Tags logs de bodega
// @Param id path int true "ID do log"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Log não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /log_bodega/{id} [delete]
func (h *Handler) DeleteLogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteLog(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchLogsHandler lida com a requisição GET /log_bodega.
// @Summary Busca logs de bodega por filtros
// @Tags logs de bodega
// @Produce json
// @Param producto_id query int false "ID do produto"
// @Param cantidad query int false "Quantidade exata"
// @Param bodega_id query int false "ID da bodega"
// @Param empleado_id query int false "ID do empleado"
// @Param fecha_desde query string false "Data inicial (YYYY-MM-DD)"
// @Param fecha_hasta query string false "Data final (YYYY-MM-DD)"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.WarehouseLog "Logs encontrados"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /log_bodega [get]
func (h *Handler) SearchLogsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.WarehouseLogFilter{Page: page}
	if filter.ProductID, err = int64Param(q, "producto_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.Quantity, err = intParam(q, "cantidad"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.WarehouseID, err = int64Param(q, "bodega_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.EmployeeID, err = int64Param(q, "empleado_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.DateFrom, err = dateParam(q, "fecha_desde", false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.DateTo, err = dateParam(q, "fecha_hasta", true); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	logs, err := h.Service.SearchLogs(r.Context(), filter)
	h.handleServiceResponse(w, r, logs, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/log_bodega/")
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

func dateParam(q url.Values, name string, endOfDay bool) (*time.Time, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("El parámetro %s debe tener el formato YYYY-MM-DD.", name))
	}
	if endOfDay {
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	return &t, nil
}
