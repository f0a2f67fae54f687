package shipmentstatus

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

// StatusService define o contrato que o Handler espera da camada de serviço.
type StatusService interface {
	ListStatuses(ctx context.Context, page domain.Page) ([]domain.ShipmentStatus, error)
	CreateStatus(ctx context.Context, input domain.ShipmentStatusInput) (domain.ShipmentStatus, error)
	GetStatusByID(ctx context.Context, id int64) (domain.ShipmentStatus, error)
	UpdateStatus(ctx context.Context, id int64, upd domain.ShipmentStatusUpdate) (domain.ShipmentStatus, error)
	DeleteStatus(ctx context.Context, id int64) error
	SearchStatuses(ctx context.Context, filter domain.ShipmentStatusFilter) ([]domain.ShipmentStatus, error)
}

// Handler agrupa todos os endpoints de estados de envio.
type Handler struct {
	Service StatusService
	Logger  logger.Logger
}

func NewHandler(svc StatusService, log logger.Logger) *Handler {
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

// CollectionHandler atende o caminho exato /estado_envio: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchStatusesHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /estado_envio/ (listagem e criação) e /estado_envio/{id}.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/estado_envio/" {
		switch r.Method {
		case http.MethodGet:
			h.ListStatusesHandler(w, r)
		case http.MethodPost:
			h.CreateStatusHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetStatusByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateStatusHandler(w, r)
	case http.MethodDelete:
		h.DeleteStatusHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListStatusesHandler lida com a requisição GET /estado_envio/.
// @Summary Lista os estados de envio
// @Tags estados de envio
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.ShipmentStatus "Lista de estados"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /estado_envio/ [get]
func (h *Handler) ListStatusesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	statuses, err := h.Service.ListStatuses(r.Context(), page)
	h.handleServiceResponse(w, r, statuses, err, http.StatusOK)
}

// CreateStatusHandler lida com a requisição POST /estado_envio/.
// @Summary Registra um estado de envio
// @Tags estados de envio
// @Accept json
// @Produce json
// @Param estado body domain.ShipmentStatusInput true "Dados do estado"
// @Success 201 {object} domain.ShipmentStatus "Estado criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Envio ou empleado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /estado_envio/ [post]
func (h *Handler) CreateStatusHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ShipmentStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateStatus(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetStatusByIDHandler lida com a requisição GET /estado_envio/{id}.
// @Summary Obtém um estado de envio por ID
// @Tags estados de envio
// @Produce json
// @Param id path int true "ID do estado"
// @Success 200 {object} domain.ShipmentStatus "Estado encontrado"
// @Failure 404 {object} domain.ErrorResponse "Estado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /estado_envio/{id} [get]
func (h *Handler) GetStatusByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetStatusByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// UpdateStatusHandler lida com a requisição PUT /estado_envio/{id}.
// @Summary Atualiza parcialmente um estado de envio
// @Tags estados de envio
// @Accept json
// @Produce json
// @Param id path int true "ID do estado"
// @Param estado body domain.ShipmentStatusUpdate true "Campos a atualizar"
// @Success 200 {object} domain.ShipmentStatus "Estado atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Estado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /estado_envio/{id} [put]
func (h *Handler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.ShipmentStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteStatusHandler lida com a requisição DELETE /estado_envio/{id}.
// @Summary Remove um estado de envio
// @Tags estados de envio
// @Param id path int true "ID do estado"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Estado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /estado_envio/{id} [delete]
func (h *Handler) DeleteStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteStatus(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchStatusesHandler lida com a requisição GET /estado_envio.
// @Summary Busca estados de envio por filtros
// @Tags estados de envio
// @Produce json
// @Param envio_id query int false "ID do envio"
// @Param estado query string false "Estado exato"
// @Param empleado_id query int false "ID do empleado"
// @Param descripcion query string false "Substring da descrição"
// @Param fecha_desde query string false "Data inicial (YYYY-MM-DD)"
// @Param fecha_hasta query string false "Data final (YYYY-MM-DD)"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.ShipmentStatus "Estados encontrados"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /estado_envio [get]
func (h *Handler) SearchStatusesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.ShipmentStatusFilter{Page: page}
	if filter.ShipmentID, err = int64Param(q, "envio_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if v := q.Get("estado"); v != "" {
		s := domain.StatusValue(v)
		filter.Status = &s
	}
	if filter.EmployeeID, err = int64Param(q, "empleado_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if v := q.Get("descripcion"); v != "" {
		filter.Description = &v
	}
	if filter.DateFrom, err = dateParam(q, "fecha_desde", false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.DateTo, err = dateParam(q, "fecha_hasta", true); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	statuses, err := h.Service.SearchStatuses(r.Context(), filter)
	h.handleServiceResponse(w, r, statuses, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/estado_envio/")
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
