package warehouselogservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
	"goship/internal/service/warehouselogservice"
)

// MockWarehouseLogRepository é uma implementação mock da interface WarehouseLogRepository
type MockWarehouseLogRepository struct {
	mock.Mock
}

func (m *MockWarehouseLogRepository) List(ctx context.Context, page domain.Page) ([]domain.WarehouseLog, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.WarehouseLog), args.Error(1)
}

func (m *MockWarehouseLogRepository) Create(ctx context.Context, l domain.WarehouseLog) (domain.WarehouseLog, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(domain.WarehouseLog), args.Error(1)
}

func (m *MockWarehouseLogRepository) FindByID(ctx context.Context, id int64) (domain.WarehouseLog, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.WarehouseLog), args.Error(1)
}

func (m *MockWarehouseLogRepository) Update(ctx context.Context, l domain.WarehouseLog) (domain.WarehouseLog, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(domain.WarehouseLog), args.Error(1)
}

func (m *MockWarehouseLogRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseLogRepository) Search(ctx context.Context, filter domain.WarehouseLogFilter) ([]domain.WarehouseLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.WarehouseLog), args.Error(1)
}

// MockWarehouseFinder é uma implementação mock da interface WarehouseFinder
type MockWarehouseFinder struct {
	mock.Mock
}

func (m *MockWarehouseFinder) FindByID(ctx context.Context, id int64) (domain.Warehouse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Warehouse), args.Error(1)
}

// MockEmployeeFinder é uma implementação mock da interface EmployeeFinder
type MockEmployeeFinder struct {
	mock.Mock
}

func (m *MockEmployeeFinder) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Employee), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

// --- Testes para CreateLog ---

func TestCreateLog_Success(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	input := domain.WarehouseLogInput{ProductID: 55, Quantity: 10, WarehouseID: 2, EmployeeID: 3}
	created := domain.WarehouseLog{ID: 1, ProductID: 55, Quantity: 10, WarehouseID: 2, EmployeeID: 3}

	mockWarehouses.On("FindByID", mock.Anything, int64(2)).Return(domain.Warehouse{ID: 2}, nil)
	mockEmployees.On("FindByID", mock.Anything, int64(3)).Return(domain.Employee{ID: 3}, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.WarehouseLog")).Return(created, nil)

	result, err := svc.CreateLog(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	mockRepo.AssertExpectations(t)
	mockWarehouses.AssertExpectations(t)
	mockEmployees.AssertExpectations(t)
}

func TestCreateLog_Fail_ZeroQuantity(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	input := domain.WarehouseLogInput{ProductID: 55, Quantity: 0, WarehouseID: 2, EmployeeID: 3}

	_, err := svc.CreateLog(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "cantidad")
	mockWarehouses.AssertNotCalled(t, "FindByID")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateLog_Fail_WarehouseNotFound(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	input := domain.WarehouseLogInput{ProductID: 55, Quantity: 10, WarehouseID: 99, EmployeeID: 3}
	repoError := apperror.NewNotFoundError("Bodega con ID 99 no encontrada", map[string]interface{}{"bodega_id": int64(99)})

	mockWarehouses.On("FindByID", mock.Anything, int64(99)).Return(domain.Warehouse{}, repoError)

	_, err := svc.CreateLog(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockEmployees.AssertNotCalled(t, "FindByID")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateLog_Fail_EmployeeNotFound(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	input := domain.WarehouseLogInput{ProductID: 55, Quantity: 10, WarehouseID: 2, EmployeeID: 77}
	repoError := apperror.NewNotFoundError("Empleado con ID 77 no encontrado", nil)

	mockWarehouses.On("FindByID", mock.Anything, int64(2)).Return(domain.Warehouse{ID: 2}, nil)
	mockEmployees.On("FindByID", mock.Anything, int64(77)).Return(domain.Employee{}, repoError)

	_, err := svc.CreateLog(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

// --- Testes para UpdateLog ---

func TestUpdateLog_Success_PartialMerge(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	existing := domain.WarehouseLog{ID: 1, ProductID: 55, Quantity: 10, WarehouseID: 2, EmployeeID: 3}
	newQuantity := 25

	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(l domain.WarehouseLog) bool {
		return l.Quantity == 25 && l.WarehouseID == 2 && l.EmployeeID == 3
	})).Return(existing, nil)

	_, err := svc.UpdateLog(context.Background(), 1, domain.WarehouseLogUpdate{Quantity: &newQuantity})

	assert.NoError(t, err)
	mockWarehouses.AssertNotCalled(t, "FindByID")
	mockEmployees.AssertNotCalled(t, "FindByID")
	mockRepo.AssertExpectations(t)
}

func TestUpdateLog_Fail_NewWarehouseNotFound(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	existing := domain.WarehouseLog{ID: 1, ProductID: 55, Quantity: 10, WarehouseID: 2, EmployeeID: 3}
	newWarehouseID := int64(99)
	repoError := apperror.NewNotFoundError("Bodega con ID 99 no encontrada", nil)

	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	mockWarehouses.On("FindByID", mock.Anything, int64(99)).Return(domain.Warehouse{}, repoError)

	_, err := svc.UpdateLog(context.Background(), 1, domain.WarehouseLogUpdate{WarehouseID: &newWarehouseID})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

// --- Testes para SearchLogs ---

func TestSearchLogs_EmptyFilterReturnsNothing(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	filter := domain.WarehouseLogFilter{Page: domain.Page{Skip: 0, Limit: 100}}
	results, err := svc.SearchLogs(context.Background(), filter)

	assert.NoError(t, err)
	assert.Empty(t, results)
	mockRepo.AssertNotCalled(t, "Search")
}

func TestSearchLogs_Success_ByWarehouse(t *testing.T) {
	mockRepo := new(MockWarehouseLogRepository)
	mockWarehouses := new(MockWarehouseFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := warehouselogservice.NewService(mockRepo, mockWarehouses, mockEmployees, newTestLogger())

	warehouseID := int64(2)
	filter := domain.WarehouseLogFilter{WarehouseID: &warehouseID, Page: domain.Page{Skip: 0, Limit: 100}}
	expected := []domain.WarehouseLog{{ID: 1, WarehouseID: 2}}

	mockRepo.On("Search", mock.Anything, filter).Return(expected, nil)

	results, err := svc.SearchLogs(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, results)
	mockRepo.AssertExpectations(t)
}
