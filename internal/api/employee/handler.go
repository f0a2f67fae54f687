package employee

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

// EmployeeService define o contrato que o Handler espera da camada de serviço.
type EmployeeService interface {
	ListEmployees(ctx context.Context, page domain.Page) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, input domain.EmployeeInput) (domain.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, upd domain.EmployeeUpdate) (domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	SearchEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.Token, error)
}

// Handler agrupa todos os endpoints de empleados.
type Handler struct {
	Service EmployeeService
	Logger  logger.Logger
}

func NewHandler(svc EmployeeService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// handleServiceResponse processa erros de serviço e envia respostas
// padronizadas ao cliente no envelope {error, message, details}.
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

// CollectionHandler atende o caminho exato /empleado: a busca filtrada.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.SearchEmployeesHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ResourceHandler atende /empleado/ (listagem e criação) e /empleado/{id}.
func (h *Handler) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/empleado/" {
		switch r.Method {
		case http.MethodGet:
			h.ListEmployeesHandler(w, r)
		case http.MethodPost:
			h.CreateEmployeeHandler(w, r)
		default:
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetEmployeeByIDHandler(w, r)
	case http.MethodPut:
		h.UpdateEmployeeHandler(w, r)
	case http.MethodDelete:
		h.DeleteEmployeeHandler(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ListEmployeesHandler lida com a requisição GET /empleado/.
// @Summary Lista os empleados
// @Description Retorna uma página de empleados na ordem de inserção.
// @Tags empleados
// @Produce json
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 1000)" default(100)
// @Success 200 {array} domain.Employee "Lista de empleados"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /empleado/ [get]
func (h *Handler) ListEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	employees, err := h.Service.ListEmployees(r.Context(), page)
	h.handleServiceResponse(w, r, employees, err, http.StatusOK)
}

// CreateEmployeeHandler lida com a requisição POST /empleado/.
// @Summary Cria um empleado
// @Description Cria um novo empleado com a senha armazenada em hash.
// @Tags empleados
// @Accept json
// @Produce json
// @Param empleado body domain.EmployeeInput true "Dados do empleado"
// @Success 201 {object} domain.Employee "Empleado criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /empleado/ [post]
func (h *Handler) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.CreateEmployee(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetEmployeeByIDHandler lida com a requisição GET /empleado/{id}.
// @Summary Obtém um empleado por ID
// @Tags empleados
// @Produce json
// @Param id path int true "ID do empleado"
// @Success 200 {object} domain.Employee "Empleado encontrado"
// @Failure 404 {object} domain.ErrorResponse "Empleado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /empleado/{id} [get]
func (h *Handler) GetEmployeeByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	found, err := h.Service.GetEmployeeByID(r.Context(), id)
	h.handleServiceResponse(w, r, found, err, http.StatusOK)
}

// UpdateEmployeeHandler lida com a requisição PUT /empleado/{id}.
// @Summary Atualiza parcialmente um empleado
// @Description Só os campos presentes no corpo são aplicados.
// @Tags empleados
// @Accept json
// @Produce json
// @Param id path int true "ID do empleado"
// @Param empleado body domain.EmployeeUpdate true "Campos a atualizar"
// @Success 200 {object} domain.Employee "Empleado atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Empleado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /empleado/{id} [put]
func (h *Handler) UpdateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var upd domain.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateEmployee(r.Context(), id, upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteEmployeeHandler lida com a requisição DELETE /empleado/{id}.
// @Summary Remove um empleado
// @Tags empleados
// @Param id path int true "ID do empleado"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Empleado não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /empleado/{id} [delete]
func (h *Handler) DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteEmployee(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// SearchEmployeesHandler lida com a requisição GET /empleado.
// @Summary Busca empleados por filtros
// @Description Sem nenhum filtro a busca retorna uma lista vazia.
// @Tags empleados
// @Produce json
// @Param nombre query string false "Substring do nome"
// @Param apellido1 query string false "Substring do primeiro sobrenome"
// @Param apellido2 query string false "Substring do segundo sobrenome"
// @Param email query string false "Substring do email"
// @Param puesto query string false "Puesto exato"
// @Param area query string false "Área exata"
// @Param skip query int false "Registros a omitir" default(0)
// @Param limit query int false "Máximo de registros (1 a 500)" default(100)
// @Success 200 {array} domain.Employee "Empleados encontrados"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /empleado [get]
func (h *Handler) SearchEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	q := r.URL.Query()
	filter := domain.EmployeeFilter{
		Name:      stringParam(q, "nombre"),
		LastName1: stringParam(q, "apellido1"),
		LastName2: stringParam(q, "apellido2"),
		Email:     stringParam(q, "email"),
		Page:      page,
	}
	if v := q.Get("puesto"); v != "" {
		p := domain.Position(v)
		filter.Position = &p
	}
	if v := q.Get("area"); v != "" {
		a := domain.Area(v)
		filter.Area = &a
	}

	employees, err := h.Service.SearchEmployees(r.Context(), filter)
	h.handleServiceResponse(w, r, employees, err, http.StatusOK)
}

// LoginHandler lida com a requisição POST /empleado/login.
// @Summary Autentica um empleado
// @Description Valida as credenciais e devolve um token de acesso JWT.
// @Tags empleados
// @Accept json
// @Produce json
// @Param credenciales body domain.Credentials true "Email e senha"
// @Success 200 {object} domain.Token "Token de acesso"
// @Failure 401 {object} domain.ErrorResponse "Credenciais incorretas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /empleado/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	token, err := h.Service.Login(r.Context(), creds)
	h.handleServiceResponse(w, r, token, err, http.StatusOK)
}

func parseID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/empleado/")
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
