package employeeservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
	"goship/internal/service/employeeservice"
)

// MockEmployeeRepository é uma implementação mock da interface EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) List(ctx context.Context, page domain.Page) ([]domain.Employee, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (domain.Employee, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Search(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// MockTokenGenerator é uma implementação mock da interface TokenGenerator
type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) GenerateToken(employeeID int64, email string) (string, error) {
	args := m.Called(employeeID, email)
	return args.String(0), args.Error(1)
}

// Helper function to create a basic logger
func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

func validInput() domain.EmployeeInput {
	return domain.EmployeeInput{
		Name:      "Laura",
		LastName1: "Gómez",
		LastName2: "Pérez",
		Phone:     "5512345678",
		Email:     "laura.gomez@logistica.com",
		Position:  domain.PositionCoordinator,
		Area:      domain.AreaWarehouse,
		Password:  "secreto123",
	}
}

// --- Testes para CreateEmployee ---

func TestCreateEmployee_Success(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	input := validInput()
	created := domain.Employee{ID: 1, Name: input.Name, Email: input.Email}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(e domain.Employee) bool {
		// A senha nunca deve chegar em texto puro ao repositório.
		return e.Email == input.Email &&
			e.PasswordHash != input.Password &&
			bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(input.Password)) == nil
	})).Return(created, nil)

	result, err := svc.CreateEmployee(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreateEmployee_Fail_ShortName(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	input := validInput()
	input.Name = "L"

	_, err := svc.CreateEmployee(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "nombre")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateEmployee_Fail_InvalidEmail(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	input := validInput()
	input.Email = "no-es-un-email"

	_, err := svc.CreateEmployee(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "email")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateEmployee_Fail_InvalidPosition(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	input := validInput()
	input.Position = "gerente"

	_, err := svc.CreateEmployee(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "puesto")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateEmployee_Fail_ShortPassword(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	input := validInput()
	input.Password = "corta"

	_, err := svc.CreateEmployee(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "contraseña")
	mockRepo.AssertNotCalled(t, "Create")
}

// --- Testes para ListEmployees ---

func TestListEmployees_Success(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	page := domain.Page{Skip: 0, Limit: 100}
	expected := []domain.Employee{{ID: 1}, {ID: 2}}
	mockRepo.On("List", mock.Anything, page).Return(expected, nil)

	results, err := svc.ListEmployees(context.Background(), page)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	mockRepo.AssertExpectations(t)
}

func TestListEmployees_Fail_NegativeSkip(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	_, err := svc.ListEmployees(context.Background(), domain.Page{Skip: -1, Limit: 100})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "skip")
	mockRepo.AssertNotCalled(t, "List")
}

func TestListEmployees_Fail_LimitTooLarge(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	_, err := svc.ListEmployees(context.Background(), domain.Page{Skip: 0, Limit: domain.MaxListLimit + 1})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "limit")
	mockRepo.AssertNotCalled(t, "List")
}

// --- Testes para GetEmployeeByID ---

func TestGetEmployeeByID_Success(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	expected := domain.Employee{ID: 7, Name: "Laura"}
	mockRepo.On("FindByID", mock.Anything, int64(7)).Return(expected, nil)

	result, err := svc.GetEmployeeByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestGetEmployeeByID_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	_, err := svc.GetEmployeeByID(context.Background(), 0)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByID")
}

func TestGetEmployeeByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	repoError := apperror.NewNotFoundError("Empleado con ID 99 no encontrado", map[string]interface{}{"empleado_id": int64(99)})
	mockRepo.On("FindByID", mock.Anything, int64(99)).Return(domain.Employee{}, repoError)

	_, err := svc.GetEmployeeByID(context.Background(), 99)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para UpdateEmployee ---

func TestUpdateEmployee_Success_PartialMerge(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	existing := domain.Employee{
		ID:        3,
		Name:      "Laura",
		LastName1: "Gómez",
		LastName2: "Pérez",
		Phone:     "5512345678",
		Email:     "laura@logistica.com",
		Position:  domain.PositionCoordinator,
		Area:      domain.AreaWarehouse,
	}
	newPhone := "5598765432"

	mockRepo.On("FindByID", mock.Anything, int64(3)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(e domain.Employee) bool {
		// Só o telefone muda; o restante do registro é preservado.
		return e.Phone == newPhone && e.Name == existing.Name && e.Email == existing.Email
	})).Return(existing, nil)

	_, err := svc.UpdateEmployee(context.Background(), 3, domain.EmployeeUpdate{Phone: &newPhone})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdateEmployee_Fail_InvalidField(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	existing := domain.Employee{ID: 3, Name: "Laura"}
	badEmail := "sin-arroba"

	mockRepo.On("FindByID", mock.Anything, int64(3)).Return(existing, nil)

	_, err := svc.UpdateEmployee(context.Background(), 3, domain.EmployeeUpdate{Email: &badEmail})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateEmployee_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	repoError := apperror.NewNotFoundError("Empleado con ID 99 no encontrado", nil)
	mockRepo.On("FindByID", mock.Anything, int64(99)).Return(domain.Employee{}, repoError)

	newName := "Otro"
	_, err := svc.UpdateEmployee(context.Background(), 99, domain.EmployeeUpdate{Name: &newName})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateEmployee_RehashesPassword(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	existing := domain.Employee{ID: 3, PasswordHash: "hash-antiguo"}
	newPassword := "nueva-clave-123"

	mockRepo.On("FindByID", mock.Anything, int64(3)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(e domain.Employee) bool {
		return e.PasswordHash != "hash-antiguo" &&
			bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(newPassword)) == nil
	})).Return(existing, nil)

	_, err := svc.UpdateEmployee(context.Background(), 3, domain.EmployeeUpdate{Password: &newPassword})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para DeleteEmployee ---

func TestDeleteEmployee_Success(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	mockRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.DeleteEmployee(context.Background(), 5)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteEmployee_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	repoError := apperror.NewNotFoundError("Empleado con ID 5 no encontrado", nil)
	mockRepo.On("Delete", mock.Anything, int64(5)).Return(repoError)

	err := svc.DeleteEmployee(context.Background(), 5)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para SearchEmployees ---

func TestSearchEmployees_EmptyFilterReturnsNothing(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	filter := domain.EmployeeFilter{Page: domain.Page{Skip: 0, Limit: 100}}
	results, err := svc.SearchEmployees(context.Background(), filter)

	assert.NoError(t, err)
	assert.Empty(t, results)
	mockRepo.AssertNotCalled(t, "Search")
}

func TestSearchEmployees_Success_WithFilter(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	name := "lau"
	filter := domain.EmployeeFilter{Name: &name, Page: domain.Page{Skip: 0, Limit: 100}}
	expected := []domain.Employee{{ID: 1, Name: "Laura"}}

	mockRepo.On("Search", mock.Anything, filter).Return(expected, nil)

	results, err := svc.SearchEmployees(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, results)
	mockRepo.AssertExpectations(t)
}

func TestSearchEmployees_Fail_InvalidArea(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	badArea := domain.Area("contabilidad")
	filter := domain.EmployeeFilter{Area: &badArea, Page: domain.Page{Skip: 0, Limit: 100}}

	_, err := svc.SearchEmployees(context.Background(), filter)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Search")
}

// --- Testes para Login ---

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	employee := domain.Employee{ID: 1, Email: "laura@logistica.com", PasswordHash: string(hash)}

	mockRepo.On("FindByEmail", mock.Anything, "laura@logistica.com").Return(employee, nil)
	mockTokens.On("GenerateToken", int64(1), "laura@logistica.com").Return("el-token", nil)

	token, err := svc.Login(context.Background(), domain.Credentials{Email: "laura@logistica.com", Password: "secreto123"})

	assert.NoError(t, err)
	assert.Equal(t, "el-token", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	mockRepo.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestLogin_Fail_UnknownEmail(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	repoError := apperror.NewNotFoundError("Empleado no encontrado", nil)
	mockRepo.On("FindByEmail", mock.Anything, "nadie@logistica.com").Return(domain.Employee{}, repoError)

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "nadie@logistica.com", Password: "secreto123"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.CredentialsError{}, err)
	mockTokens.AssertNotCalled(t, "GenerateToken")
}

func TestLogin_Fail_WrongPassword(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	employee := domain.Employee{ID: 1, Email: "laura@logistica.com", PasswordHash: string(hash)}

	mockRepo.On("FindByEmail", mock.Anything, "laura@logistica.com").Return(employee, nil)

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "laura@logistica.com", Password: "equivocada"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.CredentialsError{}, err)
	mockTokens.AssertNotCalled(t, "GenerateToken")
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	known := domain.Employee{ID: 1, Email: "laura@logistica.com", PasswordHash: string(hash)}
	notFound := apperror.NewNotFoundError("Empleado no encontrado", nil)

	mockRepo.On("FindByEmail", mock.Anything, "laura@logistica.com").Return(known, nil)
	mockRepo.On("FindByEmail", mock.Anything, "nadie@logistica.com").Return(domain.Employee{}, notFound)

	_, errUnknown := svc.Login(context.Background(), domain.Credentials{Email: "nadie@logistica.com", Password: "secreto123"})
	_, errWrongPass := svc.Login(context.Background(), domain.Credentials{Email: "laura@logistica.com", Password: "equivocada"})

	// A resposta deve ser indistinguível para evitar enumeração de contas.
	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLogin_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockTokens := new(MockTokenGenerator)
	svc := employeeservice.NewService(mockRepo, mockTokens, newTestLogger())

	repoError := errors.New("database connection failed")
	mockRepo.On("FindByEmail", mock.Anything, "laura@logistica.com").Return(domain.Employee{}, repoError)

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "laura@logistica.com", Password: "secreto123"})

	assert.Error(t, err)
	assert.Equal(t, repoError, err)
	mockTokens.AssertNotCalled(t, "GenerateToken")
}
