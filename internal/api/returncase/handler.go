package returncase

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

// ReturnService define o contrato que o Handler espera da camada de serviço.
type ReturnService interface {
	ListReturns(ctx context.Context, page domain.Page) ([]domain.Return, error)
	CreateReturn(ctx context.Context, input domain.ReturnInput) (domain.Return, error)
	GetReturnByID(ctx context.Context, id int64) (domain.Return, error)
	UpdateReturn(ctx context.Context, id int64, upd domain.ReturnUpdate) (domain.Return, error)
	DeleteReturn(ctx context.Context, id int64) error
	SearchReturns(ctx context.Context, filter domain.ReturnFilter) ([]domain.Return, error)
}

// Handler agrupa todos os endpoints de devoluções.
type Handler struct {
	Service ReturnService
	Logger  logger.Logger
}

func NewHandler(svc ReturnService, log logger.Logger) *Handler {
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

// CollectionHandler atende o caminho exato /devolucion: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchReturnsHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /devolucion/ (listagem e criação) e /devolucion/{id}.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/devolucion/" {
		switch r.Method {
		case http.MethodGet:
			h.ListReturnsHandler(w, r)
		case http.MethodPost:
			h.CreateReturnHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetReturnByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateReturnHandler(w, r)
	case http.MethodDelete:
		h.DeleteReturnHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListReturnsHandler lida com a requisição GET /devolucion/.
// @Summary Lista as devoluções
// @Tags devolucoes
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.Return "Lista de devoluções"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion/ [get]
func (h *Handler) ListReturnsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	returns, err := h.Service.ListReturns(r.Context(), page)
	h.handleServiceResponse(w, r, returns, err, http.StatusOK)
}

// CreateReturnHandler lida com a requisição POST /devolucion/.
// @Summary Abre uma devolução
// @Description O estado inicial é sempre "pendiente".
// @Tags devolucoes
// @Accept json
// @Produce json
// @Param devolucion body domain.ReturnInput true "Dados da devolução"
// @Success 201 {object} domain.Return "Devolução criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Envio não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion/ [post]
func (h *Handler) CreateReturnHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ReturnInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateReturn(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetReturnByIDHandler lida com a requisição GET /devolucion/{id}.
// @Summary Obtém uma devolução por ID
// @Tags devolucoes
// @Produce json
// @Param id path int true "ID da devolução"
// @Success 200 {object} domain.Return "Devolução encontrada"
// @Failure 404 {object} domain.ErrorResponse "Devolução não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion/{id} [get]
func (h *Handler) GetReturnByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetReturnByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// UpdateReturnHandler lida com a requisição PUT /devolucion/{id}.
// @Summary Atualiza parcialmente uma devolução
// @Tags devolucoes
// @Accept json
// @Produce json
// @Param id path int true "ID da devolução"
// @Param devolucion body domain.ReturnUpdate true "Campos a atualizar"
// @Success 200 {object} domain.Return "Devolução atualizada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Devolução não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion/{id} [put]
func (h *Handler) UpdateReturnHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.ReturnUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateReturn(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteReturnHandler lida com a requisição DELETE /devolucion/{id}.
// @Summary Remove uma devolução
// @Tags devolucoes
// @Param id path int true "ID da devolução"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Devolução não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion/{id} [delete]
func (h *Handler) DeleteReturnHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteReturn(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchReturnsHandler lida com a requisição GET /devolucion.
// @Summary Busca devoluções por filtros
// @Tags devolucoes
// @Produce json
// @Param envio_id query int false "ID do envio"
// @Param motivo query string false "Substring do motivo"
// @Param estado query string false "Estado exato"
// @Param fecha_desde query string false "Data inicial (YYYY-MM-DD)"
// @Param fecha_hasta query string false "Data final (YYYY-MM-DD)"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.Return "Devoluções encontradas"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /devolucion [get]
func (h *Handler) SearchReturnsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.ReturnFilter{Page: page}
	if filter.ShipmentID, err = int64Param(q, "envio_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if v := q.Get("motivo"); v != "" {
		filter.Reason = &v
	}
	if v := q.Get("estado"); v != "" {
		s := domain.ReturnStatus(v)
		filter.Status = &s
	}
	if filter.DateFrom, err = dateParam(q, "fecha_desde", false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.DateTo, err = dateParam(q, "fecha_hasta", true); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	returns, err := h.Service.SearchReturns(r.Context(), filter)
	h.handleServiceResponse(w, r, returns, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/devolucion/")
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
