package shippingmethod

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

// MethodService define o contrato que o Handler espera da camada de serviço.
type MethodService interface {
	ListMethods(ctx context.Context, page domain.Page) ([]domain.ShippingMethod, error)
	CreateMethod(ctx context.Context, input domain.ShippingMethodInput) (domain.ShippingMethod, error)
	GetMethodByID(ctx context.Context, id int64) (domain.ShippingMethod, error)
	UpdateMethod(ctx context.Context, id int64, upd domain.ShippingMethodUpdate) (domain.ShippingMethod, error)
	DeleteMethod(ctx context.Context, id int64) error
	SearchMethods(ctx context.Context, filter domain.ShippingMethodFilter) ([]domain.ShippingMethod, error)
}

// Handler agrupa todos os endpoints de métodos de envio.
type Handler struct {
	Service MethodService
	Logger  logger.Logger
}

func NewHandler(svc MethodService, log logger.Logger) *Handler {
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

// CollectionHandler atende o caminho exato /metodo_envio: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchMethodsHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /metodo_envio/ (listagem e criação) e /metodo_envio/{id}.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/metodo_envio/" {
		switch r.Method {
		case http.MethodGet:
			h.ListMethodsHandler(w, r)
		case http.MethodPost:
			h.CreateMethodHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetMethodByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateMethodHandler(w, r)
	case http.MethodDelete:
		h.DeleteMethodHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListMethodsHandler lida com a requisição GET /metodo_envio/.
// @Summary Lista os métodos de envio
// @Tags metodos de envio
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.ShippingMethod "Lista de métodos"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /metodo_envio/ [get]
func (h *Handler) ListMethodsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	methods, err := h.Service.ListMethods(r.Context(), page)
	h.handleServiceResponse(w, r, methods, err, http.StatusOK)
}

// CreateMethodHandler lida com a requisição POST /metodo_envio/.
// @Summary Cria um método de envio
// @Tags metodos de envio
// @Accept json
// @Produce json
// @Param metodo body domain.ShippingMethodInput true "Dados do método"
// @Success 201 {object} domain.ShippingMethod "Método criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /metodo_envio/ [post]
func (h *Handler) CreateMethodHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ShippingMethodInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateMethod(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetMethodByIDHandler lida com a requisição GET /metodo_envio/{id}.
// @Summary Obtém um método de envio por ID
// @Tags metodos de envio
// @Produce json
// @Param id path int true "ID do método"
// @Success 200 {object} domain.ShippingMethod "Método encontrado"
// @Failure 404 {object} domain.ErrorResponse "Método não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /metodo_envio/{id} [get]
func (h *Handler) GetMethodByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetMethodByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// UpdateMethodHandler lida com a requisição PUT /metodo_envio/{id}.
// @Summary Atualiza parcialmente um método de envio
// @Tags metodos de envio
// @Accept json
// @Produce json
// @Param id path int true "ID do método"
// @Param metodo body domain.ShippingMethodUpdate true "Campos a atualizar"
// @Success 200 {object} domain.ShippingMethod "Método atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Método não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /metodo_envio/{id} [put]
func (h *Handler) UpdateMethodHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.ShippingMethodUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateMethod(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteMethodHandler lida com a requisição DELETE /metodo_envio/{id}.
// @Summary Remove um método de envio
// @Tags metodos de envio
// @Param id path int true "ID do método"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Método não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /metodo_envio/{id} [delete]
func (h *Handler) DeleteMethodHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteMethod(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchMethodsHandler lida com a requisição GET /metodo_envio.
// @Summary Busca métodos de envio por filtros
// @Tags metodos de envio
// @Produce json
// @Param tipo query string false "Tipo exato"
// @Param descripcion query string false "Substring da descrição"
// @Param tiempo_estimado_min query int false "Tempo estimado mínimo"
// @Param tiempo_estimado_max query int false "Tempo estimado máximo"
// @Param costo_min query number false "Custo mínimo"
// @Param costo_max query number false "Custo máximo"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.ShippingMethod "Métodos encontrados"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /metodo_envio [get]
func (h *Handler) SearchMethodsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.ShippingMethodFilter{
		Description: stringParam(q, "descripcion"),
		Page:        page,
	}
	if v := q.Get("tipo"); v != "" {
		t := domain.MethodType(v)
		filter.Type = &t
	}
	if filter.EstimatedDaysMin, err = intParam(q, "tiempo_estimado_min"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.EstimatedDaysMax, err = intParam(q, "tiempo_estimado_max"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.CostMin, err = floatParam(q, "costo_min"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.CostMax, err = floatParam(q, "costo_max"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	methods, err := h.Service.SearchMethods(r.Context(), filter)
	h.handleServiceResponse(w, r, methods, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/metodo_envio/")
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

func stringParam(q url.Values, name string) *string {
	if v := q.Get(name); v != "" {
		return &v
	}
	return nil
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

func floatParam(q url.Values, name string) (*float64, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("El parámetro %s debe ser un número.", name))
	}
	return &f, nil
}
