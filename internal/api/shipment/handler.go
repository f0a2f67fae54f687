package shipment

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

// ShipmentService define o contrato que o Handler espera da camada de serviço.
type ShipmentService interface {
	ListShipments(ctx context.Context, page domain.Page) ([]domain.Shipment, error)
	CreateShipment(ctx context.Context, input domain.ShipmentInput) (domain.Shipment, error)
	GetShipmentByID(ctx context.Context, id int64) (domain.Shipment, error)
	TrackShipment(ctx context.Context, code string) ([]domain.ShipmentStatus, error)
	UpdateShipment(ctx context.Context, id int64, upd domain.ShipmentUpdate) (domain.Shipment, error)
	DeleteShipment(ctx context.Context, id int64) error
	SearchShipments(ctx context.Context, filter domain.ShipmentFilter) ([]domain.Shipment, error)
}

// Handler agrupa todos os endpoints de envios.
type Handler struct {
	Service ShipmentService
	Logger  logger.Logger
}

func NewHandler(svc ShipmentService, log logger.Logger) *Handler {
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

// CollectionHandler atende o caminho exato /envio: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchShipmentsHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /envio/ (listagem e criação) e /envio/{id}.
// O rastreamento /envio/track/{code} é registrado à parte no roteador.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/envio/" {
		switch r.Method {
		case http.MethodGet:
			h.ListShipmentsHandler(w, r)
		case http.MethodPost:
			h.CreateShipmentHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetShipmentByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateShipmentHandler(w, r)
	case http.MethodDelete:
		h.DeleteShipmentHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListShipmentsHandler lida com a requisição GET /envio/.
// @Summary Lista os envios
// @Tags envios
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.Shipment "Lista de envios"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /envio/ [get]
func (h *Handler) ListShipmentsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	shipments, err := h.Service.ListShipments(r.Context(), page)
	h.handleServiceResponse(w, r, shipments, err, http.StatusOK)
}

// CreateShipmentHandler lida com a requisição POST /envio/.
// @Summary Cria um envio
// @Description Gera o código de rastreio no servidor e registra o estado inicial "pendiente".
// @Tags envios
// @Accept json
// @Produce json
// @Param envio body domain.ShipmentInput true "Dados do envio"
// @Success 201 {object} domain.Shipment "Envio criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Método de envio não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /envio/ [post]
func (h *Handler) CreateShipmentHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ShipmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateShipment(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetShipmentByIDHandler lida com a requisição GET /envio/{id}.
// @Summary Obtém um envio por ID
// @Tags envios
// @Produce json
// @Param id path int true "ID do envio"
// @Success 200 {object} domain.Shipment "Envio encontrado"
// @Failure 404 {object} domain.ErrorResponse "Envio não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /envio/{id} [get]
func (h *Handler) GetShipmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetShipmentByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// TrackShipmentHandler lida com a requisição GET /envio/track/{tracking_code}.
// @Summary Rastreia um envio
// @Description Devolve o histórico de estados do envio, do mais recente para o mais antigo.
// @Tags envios
// @Produce json
// @Param tracking_code path string true "Código de rastreio"
// @Success 200 {array} domain.ShipmentStatus "Histórico de estados"
// @Failure 404 {object} domain.ErrorResponse "Código de rastreio não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /envio/track/{tracking_code} [get]
func (h *Handler) TrackShipmentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/envio/track/")
	statuses, err := h.Service.TrackShipment(r.Context(), code)
	h.handleServiceResponse(w, r, statuses, err, http.StatusOK)
}

// UpdateShipmentHandler lida com a requisição PUT /envio/{id}.
// @Summary Atualiza parcialmente um envio
// @Tags envios
// @Accept json
// @Produce json
// @Param id path int true "ID do envio"
// @Param envio body domain.ShipmentUpdate true "Campos a atualizar"
// @Success 200 {object} domain.Shipment "Envio atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Envio não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /envio/{id} [put]
func (h *Handler) UpdateShipmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.ShipmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateShipment(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteShipmentHandler lida com a requisição DELETE /envio/{id}.
// @Summary Remove um envio
// @Tags envios
// @Param id path int true "ID do envio"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Envio não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /envio/{id} [delete]
func (h *Handler) DeleteShipmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteShipment(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchShipmentsHandler lida com a requisição GET /envio.
// @Summary Busca envios por filtros
// @Tags envios
// @Produce json
// @Param pedido_id query int false "ID do pedido"
// @Param direccion_id query int false "ID da direção"
// @Param metodo_envio_id query int false "ID do método de envio"
// @Param fecha_envio_desde query string false "Data de envio inicial (YYYY-MM-DD)"
// @Param fecha_envio_hasta query string false "Data de envio final (YYYY-MM-DD)"
// @Param fecha_estimada_desde query string false "Data estimada inicial (YYYY-MM-DD)"
// @Param fecha_estimada_hasta query string false "Data estimada final (YYYY-MM-DD)"
// @Param codigo_rastreo query string false "Substring do código de rastreio"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.Shipment "Envios encontrados"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /envio [get]
func (h *Handler) SearchShipmentsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.ShipmentFilter{Page: page}
	if filter.OrderID, err = int64Param(q, "pedido_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.AddressID, err = int64Param(q, "direccion_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.MethodID, err = int64Param(q, "metodo_envio_id"); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.ShipDateFrom, err = dateParam(q, "fecha_envio_desde", false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.ShipDateTo, err = dateParam(q, "fecha_envio_hasta", true); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.EstimatedDeliveryFrom, err = dateParam(q, "fecha_estimada_desde", false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if filter.EstimatedDeliveryTo, err = dateParam(q, "fecha_estimada_hasta", true); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if v := q.Get("codigo_rastreo"); v != "" {
		filter.TrackingCode = &v
	}

	shipments, err := h.Service.SearchShipments(r.Context(), filter)
	h.handleServiceResponse(w, r, shipments, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/envio/")
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

// dateParam interpreta YYYY-MM-DD e expande para o início ou o fim do dia,
// para que os pares desde/hasta cubram dias inteiros.
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
