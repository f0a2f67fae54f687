package employeeservice

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// EmployeeRepository define o contrato que o serviço de empleados espera da
// camada de persistência.
type EmployeeRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.Employee, error)
	Create(ctx context.Context, e domain.Employee) (domain.Employee, error)
	FindByID(ctx context.Context, id int64) (domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (domain.Employee, error)
	Update(ctx context.Context, e domain.Employee) (domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
}

// TokenGenerator emite o token de acesso após o login.
type TokenGenerator interface {
	GenerateToken(employeeID int64, email string) (string, error)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service implementa as regras de negócio dos empleados.
type Service struct {
	repo   EmployeeRepository
	tokens TokenGenerator
	logger logger.Logger
}

func NewService(repo EmployeeRepository, tokens TokenGenerator, logger logger.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

// ListEmployees retorna uma página de empleados.
func (s *Service) ListEmployees(ctx context.Context, page domain.Page) ([]domain.Employee, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

// CreateEmployee valida o payload, faz hash da senha e persiste.
func (s *Service) CreateEmployee(ctx context.Context, input domain.EmployeeInput) (domain.Employee, error) {
	s.logger.Debug("Iniciando criação de empleado no serviço.", map[string]interface{}{"email": input.Email})

	if err := validateEmployeeInput(input); err != nil {
		s.logger.Warn("Falha na validação do empleado.", map[string]interface{}{"error": err.Error()})
		return domain.Employee{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Falha ao gerar hash da senha.", err)
		return domain.Employee{}, apperror.NewDBError("crear empleado", err)
	}

	employee := domain.Employee{
		Name:         input.Name,
		LastName1:    input.LastName1,
		LastName2:    input.LastName2,
		Phone:        input.Phone,
		Email:        input.Email,
		Position:     input.Position,
		Area:         input.Area,
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, employee)
	if err != nil {
		s.logger.Error("Falha ao criar empleado no repositório.", err)
		return domain.Employee{}, err
	}

	s.logger.Info("Empleado criado com sucesso.", map[string]interface{}{"empleado_id": created.ID})
	return created, nil
}

// GetEmployeeByID busca um empleado pelo ID.
func (s *Service) GetEmployeeByID(ctx context.Context, id int64) (domain.Employee, error) {
	if id <= 0 {
		return domain.Employee{}, apperror.NewValidationError("El ID del empleado debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateEmployee aplica uma atualização parcial: só os campos presentes no
// payload sobrescrevem o registro existente.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, upd domain.EmployeeUpdate) (domain.Employee, error) {
	s.logger.Debug("Iniciando atualização de empleado no serviço.", map[string]interface{}{"empleado_id": id})

	if id <= 0 {
		return domain.Employee{}, apperror.NewValidationError("El ID del empleado debe ser mayor que 0.")
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	if upd.Name != nil {
		if err := validateLength("nombre", *upd.Name, 2, 100); err != nil {
			return domain.Employee{}, err
		}
		employee.Name = *upd.Name
	}
	if upd.LastName1 != nil {
		if err := validateLength("apellido1", *upd.LastName1, 2, 50); err != nil {
			return domain.Employee{}, err
		}
		employee.LastName1 = *upd.LastName1
	}
	if upd.LastName2 != nil {
		if err := validateLength("apellido2", *upd.LastName2, 2, 50); err != nil {
			return domain.Employee{}, err
		}
		employee.LastName2 = *upd.LastName2
	}
	if upd.Phone != nil {
		if err := validateLength("telefono", *upd.Phone, 10, 15); err != nil {
			return domain.Employee{}, err
		}
		employee.Phone = *upd.Phone
	}
	if upd.Email != nil {
		if !emailPattern.MatchString(*upd.Email) {
			return domain.Employee{}, apperror.NewValidationError("El email no tiene un formato válido.")
		}
		employee.Email = *upd.Email
	}
	if upd.Position != nil {
		if !upd.Position.Valid() {
			return domain.Employee{}, apperror.NewValidationError("El puesto debe ser 'operador bodega', 'coordinador' o 'transportista'.")
		}
		employee.Position = *upd.Position
	}
	if upd.Area != nil {
		if !upd.Area.Valid() {
			return domain.Employee{}, apperror.NewValidationError("El area debe ser 'bodega', 'devoluciones' o 'soporte logistico'.")
		}
		employee.Area = *upd.Area
	}
	if upd.Password != nil {
		if len(*upd.Password) < 8 {
			return domain.Employee{}, apperror.NewValidationError("La contraseña debe tener al menos 8 caracteres.")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Falha ao gerar hash da senha na atualização.", err)
			return domain.Employee{}, apperror.NewDBError("actualizar parcialmente empleado", err)
		}
		employee.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, employee)
	if err != nil {
		s.logger.Error("Falha ao atualizar empleado no repositório.", err)
		return domain.Employee{}, err
	}

	s.logger.Info("Empleado atualizado com sucesso.", map[string]interface{}{"empleado_id": updated.ID})
	return updated, nil
}

// DeleteEmployee remove um empleado pelo ID.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID del empleado debe ser mayor que 0.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar empleado no repositório.", err)
		return err
	}
	return nil
}

// SearchEmployees aplica os filtros opcionais. Sem nenhum filtro a busca
// retorna uma lista vazia, nunca a tabela inteira.
func (s *Service) SearchEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.Employee{}, nil
	}
	if filter.Position != nil && !filter.Position.Valid() {
		return nil, apperror.NewValidationError("El puesto debe ser 'operador bodega', 'coordinador' o 'transportista'.")
	}
	if filter.Area != nil && !filter.Area.Valid() {
		return nil, apperror.NewValidationError("El area debe ser 'bodega', 'devoluciones' o 'soporte logistico'.")
	}
	return s.repo.Search(ctx, filter)
}

// Login autentica um empleado e devolve o token de acesso. Email inexistente
// e senha incorreta produzem exatamente a mesma resposta.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.Token, error) {
	s.logger.Debug("Iniciando login de empleado no serviço.", map[string]interface{}{"email": creds.Email})

	employee, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		if _, ok := err.(*apperror.NotFoundError); ok {
			return domain.Token{}, apperror.NewCredentialsError()
		}
		return domain.Token{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(creds.Password)); err != nil {
		s.logger.Warn("Tentativa de login com senha incorreta.", map[string]interface{}{"email": creds.Email})
		return domain.Token{}, apperror.NewCredentialsError()
	}

	accessToken, err := s.tokens.GenerateToken(employee.ID, employee.Email)
	if err != nil {
		s.logger.Error("Falha ao gerar token de acesso.", err)
		return domain.Token{}, apperror.NewDBError("iniciar sesión", err)
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"empleado_id": employee.ID})
	return domain.Token{AccessToken: accessToken, TokenType: "bearer"}, nil
}

func validateEmployeeInput(input domain.EmployeeInput) error {
	if err := validateLength("nombre", input.Name, 2, 100); err != nil {
		return err
	}
	if err := validateLength("apellido1", input.LastName1, 2, 50); err != nil {
		return err
	}
	if err := validateLength("apellido2", input.LastName2, 2, 50); err != nil {
		return err
	}
	if err := validateLength("telefono", input.Phone, 10, 15); err != nil {
		return err
	}
	if !emailPattern.MatchString(input.Email) {
		return apperror.NewValidationError("El email no tiene un formato válido.")
	}
	if !input.Position.Valid() {
		return apperror.NewValidationError("El puesto debe ser 'operador bodega', 'coordinador' o 'transportista'.")
	}
	if !input.Area.Valid() {
		return apperror.NewValidationError("El area debe ser 'bodega', 'devoluciones' o 'soporte logistico'.")
	}
	if len(input.Password) < 8 {
		return apperror.NewValidationError("La contraseña debe tener al menos 8 caracteres.")
	}
	return nil
}

func validateLength(field, value string, min, max int) error {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < min || len(trimmed) > max {
		return apperror.NewValidationError(fmt.Sprintf("El campo %s debe tener entre %d y %d caracteres.", field, min, max))
	}
	return nil
}

func validatePage(page domain.Page, maxLimit int) error {
	if page.Skip < 0 {
		return apperror.NewValidationError("El parámetro skip debe ser mayor o igual a 0.")
	}
	if page.Limit < 1 || page.Limit > maxLimit {
		return apperror.NewValidationError(fmt.Sprintf("El parámetro limit debe estar entre 1 y %d.", maxLimit))
	}
	return nil
}
