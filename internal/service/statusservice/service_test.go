package statusservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
	"goship/internal/service/statusservice"
)

// MockStatusRepository é uma implementação mock da interface StatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) List(ctx context.Context, page domain.Page) ([]domain.ShipmentStatus, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.ShipmentStatus), args.Error(1)
}

func (m *MockStatusRepository) Create(ctx context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.ShipmentStatus), args.Error(1)
}

func (m *MockStatusRepository) FindByID(ctx context.Context, id int64) (domain.ShipmentStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ShipmentStatus), args.Error(1)
}

func (m *MockStatusRepository) Update(ctx context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.ShipmentStatus), args.Error(1)
}

func (m *MockStatusRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStatusRepository) Search(ctx context.Context, filter domain.ShipmentStatusFilter) ([]domain.ShipmentStatus, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ShipmentStatus), args.Error(1)
}

// MockShipmentFinder é uma implementação mock da interface ShipmentFinder
type MockShipmentFinder struct {
	mock.Mock
}

func (m *MockShipmentFinder) FindByID(ctx context.Context, id int64) (domain.Shipment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Shipment), args.Error(1)
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

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

// --- Testes para CreateStatus ---

func TestCreateStatus_Success(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	input := domain.ShipmentStatusInput{
		ShipmentID:  4,
		Status:      domain.StatusInTransit,
		Description: strPtr("Paquete en camino al destino"),
		EmployeeID:  int64Ptr(2),
	}

	mockShipments.On("FindByID", mock.Anything, int64(4)).Return(domain.Shipment{ID: 4}, nil)
	mockEmployees.On("FindByID", mock.Anything, int64(2)).Return(domain.Employee{ID: 2}, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(s domain.ShipmentStatus) bool {
		return s.ShipmentID == 4 && s.Status == domain.StatusInTransit && s.EmployeeID != nil
	})).Return(domain.ShipmentStatus{ID: 1, ShipmentID: 4}, nil)

	result, err := svc.CreateStatus(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	mockRepo.AssertExpectations(t)
	mockShipments.AssertExpectations(t)
	mockEmployees.AssertExpectations(t)
}

func TestCreateStatus_Success_WithoutEmployee(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	input := domain.ShipmentStatusInput{ShipmentID: 4, Status: domain.StatusDelivered}

	mockShipments.On("FindByID", mock.Anything, int64(4)).Return(domain.Shipment{ID: 4}, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.ShipmentStatus")).Return(domain.ShipmentStatus{ID: 2}, nil)

	_, err := svc.CreateStatus(context.Background(), input)

	assert.NoError(t, err)
	mockEmployees.AssertNotCalled(t, "FindByID")
	mockRepo.AssertExpectations(t)
}

func TestCreateStatus_Fail_InvalidStatus(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	input := domain.ShipmentStatusInput{ShipmentID: 4, Status: "extraviado"}

	_, err := svc.CreateStatus(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
	mockShipments.AssertNotCalled(t, "FindByID")
}

func TestCreateStatus_Fail_ShortDescription(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	input := domain.ShipmentStatusInput{ShipmentID: 4, Status: domain.StatusPending, Description: strPtr("ok")}

	_, err := svc.CreateStatus(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "descripción")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateStatus_Fail_ShipmentNotFound(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	input := domain.ShipmentStatusInput{ShipmentID: 99, Status: domain.StatusPending}
	repoError := apperror.NewNotFoundError("Envío con ID 99 no encontrado", map[string]interface{}{"envio_id": int64(99)})

	mockShipments.On("FindByID", mock.Anything, int64(99)).Return(domain.Shipment{}, repoError)

	_, err := svc.CreateStatus(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateStatus_Fail_EmployeeNotFound(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	input := domain.ShipmentStatusInput{ShipmentID: 4, Status: domain.StatusPending, EmployeeID: int64Ptr(77)}
	repoError := apperror.NewNotFoundError("Empleado con ID 77 no encontrado", nil)

	mockShipments.On("FindByID", mock.Anything, int64(4)).Return(domain.Shipment{ID: 4}, nil)
	mockEmployees.On("FindByID", mock.Anything, int64(77)).Return(domain.Employee{}, repoError)

	_, err := svc.CreateStatus(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

// --- Testes para UpdateStatus ---

func TestUpdateStatus_Success_PartialMerge(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	existing := domain.ShipmentStatus{ID: 1, ShipmentID: 4, Status: domain.StatusPending}
	newStatus := domain.StatusDelivered

	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(s domain.ShipmentStatus) bool {
		return s.Status == domain.StatusDelivered && s.ShipmentID == 4
	})).Return(existing, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, domain.ShipmentStatusUpdate{Status: &newStatus})

	assert.NoError(t, err)
	mockShipments.AssertNotCalled(t, "FindByID")
	mockRepo.AssertExpectations(t)
}

func TestUpdateStatus_Fail_NewShipmentNotFound(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	existing := domain.ShipmentStatus{ID: 1, ShipmentID: 4}
	repoError := apperror.NewNotFoundError("Envío con ID 55 no encontrado", nil)

	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	mockShipments.On("FindByID", mock.Anything, int64(55)).Return(domain.Shipment{}, repoError)

	_, err := svc.UpdateStatus(context.Background(), 1, domain.ShipmentStatusUpdate{ShipmentID: int64Ptr(55)})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

// --- Testes para SearchStatuses ---

func TestSearchStatuses_EmptyFilterReturnsNothing(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	filter := domain.ShipmentStatusFilter{Page: domain.Page{Skip: 0, Limit: 100}}
	results, err := svc.SearchStatuses(context.Background(), filter)

	assert.NoError(t, err)
	assert.Empty(t, results)
	mockRepo.AssertNotCalled(t, "Search")
}

func TestSearchStatuses_Fail_InvalidStatus(t *testing.T) {
	mockRepo := new(MockStatusRepository)
	mockShipments := new(MockShipmentFinder)
	mockEmployees := new(MockEmployeeFinder)
	svc := statusservice.NewService(mockRepo, mockShipments, mockEmployees, newTestLogger())

	badStatus := domain.StatusValue("perdido")
	filter := domain.ShipmentStatusFilter{Status: &badStatus, Page: domain.Page{Skip: 0, Limit: 100}}

	_, err := svc.SearchStatuses(context.Background(), filter)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Search")
}
