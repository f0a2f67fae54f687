package shipmentservice_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
	"goship/internal/service/shipmentservice"
)

// MockShipmentRepository é uma implementação mock da interface ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) List(ctx context.Context, page domain.Page) ([]domain.Shipment, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Create(ctx context.Context, s domain.Shipment) (domain.Shipment, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id int64) (domain.Shipment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByTrackingCode(ctx context.Context, code string) (domain.Shipment, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ExistsByTrackingCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s domain.Shipment) (domain.Shipment, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) Search(ctx context.Context, filter domain.ShipmentFilter) ([]domain.Shipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Shipment), args.Error(1)
}

// MockMethodFinder é uma implementação mock da interface MethodFinder
type MockMethodFinder struct {
	mock.Mock
}

func (m *MockMethodFinder) FindByID(ctx context.Context, id int64) (domain.ShippingMethod, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ShippingMethod), args.Error(1)
}

// MockStatusLister é uma implementação mock da interface StatusLister
type MockStatusLister struct {
	mock.Mock
}

func (m *MockStatusLister) ListByShipment(ctx context.Context, shipmentID int64) ([]domain.ShipmentStatus, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).([]domain.ShipmentStatus), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

var trackingPattern = regexp.MustCompile(`^[A-Z]{8}[0-9]{12}$`)

// --- Testes para CreateShipment ---

func TestCreateShipment_Success_GeneratesTrackingCode(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	input := domain.ShipmentInput{OrderID: 10, AddressID: 20, MethodID: 1}

	mockMethods.On("FindByID", mock.Anything, int64(1)).Return(domain.ShippingMethod{ID: 1}, nil)
	mockRepo.On("ExistsByTrackingCode", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(s domain.Shipment) bool {
		return s.OrderID == 10 && s.AddressID == 20 && s.MethodID == 1 &&
			trackingPattern.MatchString(s.TrackingCode)
	})).Return(domain.Shipment{ID: 1, TrackingCode: "ABCDEFGH123456789012"}, nil)

	result, err := svc.CreateShipment(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	mockRepo.AssertExpectations(t)
	mockMethods.AssertExpectations(t)
}

func TestCreateShipment_RetriesOnTrackingCollision(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	input := domain.ShipmentInput{OrderID: 10, AddressID: 20, MethodID: 1}

	mockMethods.On("FindByID", mock.Anything, int64(1)).Return(domain.ShippingMethod{ID: 1}, nil)
	// Primeiro código colide, o segundo passa.
	mockRepo.On("ExistsByTrackingCode", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Once()
	mockRepo.On("ExistsByTrackingCode", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.Shipment")).Return(domain.Shipment{ID: 2}, nil)

	_, err := svc.CreateShipment(context.Background(), input)

	assert.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "ExistsByTrackingCode", 2)
	mockRepo.AssertExpectations(t)
}

func TestCreateShipment_Fail_InvalidOrderID(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	_, err := svc.CreateShipment(context.Background(), domain.ShipmentInput{OrderID: 0, AddressID: 20, MethodID: 1})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
	mockMethods.AssertNotCalled(t, "FindByID")
}

func TestCreateShipment_Fail_MethodNotFound(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	repoError := apperror.NewNotFoundError("Método de envío con ID 9 no encontrado", map[string]interface{}{"metodo_envio_id": int64(9)})
	mockMethods.On("FindByID", mock.Anything, int64(9)).Return(domain.ShippingMethod{}, repoError)

	_, err := svc.CreateShipment(context.Background(), domain.ShipmentInput{OrderID: 10, AddressID: 20, MethodID: 9})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

// --- Testes para TrackShipment ---

func TestTrackShipment_Success(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	code := "ABCDEFGH123456789012"
	shipment := domain.Shipment{ID: 4, TrackingCode: code}
	history := []domain.ShipmentStatus{
		{ID: 2, ShipmentID: 4, Status: domain.StatusInTransit, Date: time.Now()},
		{ID: 1, ShipmentID: 4, Status: domain.StatusPending, Date: time.Now().Add(-time.Hour)},
	}

	mockRepo.On("FindByTrackingCode", mock.Anything, code).Return(shipment, nil)
	mockStatuses.On("ListByShipment", mock.Anything, int64(4)).Return(history, nil)

	results, err := svc.TrackShipment(context.Background(), code)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, domain.StatusInTransit, results[0].Status)
	mockRepo.AssertExpectations(t)
	mockStatuses.AssertExpectations(t)
}

func TestTrackShipment_Fail_EmptyCode(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	_, err := svc.TrackShipment(context.Background(), "")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByTrackingCode")
}

func TestTrackShipment_Fail_UnknownCode(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	code := "ZZZZZZZZ000000000000"
	repoError := apperror.NewNotFoundError("Código de rastreo ZZZZZZZZ000000000000 no encontrado", map[string]interface{}{"tracking_code": code})
	mockRepo.On("FindByTrackingCode", mock.Anything, code).Return(domain.Shipment{}, repoError)

	_, err := svc.TrackShipment(context.Background(), code)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockStatuses.AssertNotCalled(t, "ListByShipment")
}

// --- Testes para UpdateShipment ---

func TestUpdateShipment_Success_PartialMerge(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	existing := domain.Shipment{ID: 4, OrderID: 10, AddressID: 20, MethodID: 1, TrackingCode: "ABCDEFGH123456789012"}
	newMethodID := int64(2)

	mockRepo.On("FindByID", mock.Anything, int64(4)).Return(existing, nil)
	mockMethods.On("FindByID", mock.Anything, int64(2)).Return(domain.ShippingMethod{ID: 2}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(s domain.Shipment) bool {
		return s.MethodID == 2 && s.OrderID == 10 && s.TrackingCode == existing.TrackingCode
	})).Return(existing, nil)

	_, err := svc.UpdateShipment(context.Background(), 4, domain.ShipmentUpdate{MethodID: &newMethodID})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockMethods.AssertExpectations(t)
}

func TestUpdateShipment_Fail_MethodNotFound(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	existing := domain.Shipment{ID: 4, MethodID: 1}
	badMethodID := int64(9)
	repoError := apperror.NewNotFoundError("Método de envío con ID 9 no encontrado", nil)

	mockRepo.On("FindByID", mock.Anything, int64(4)).Return(existing, nil)
	mockMethods.On("FindByID", mock.Anything, int64(9)).Return(domain.ShippingMethod{}, repoError)

	_, err := svc.UpdateShipment(context.Background(), 4, domain.ShipmentUpdate{MethodID: &badMethodID})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateShipment_Fail_ShortTrackingCode(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	existing := domain.Shipment{ID: 4, TrackingCode: "ABCDEFGH123456789012"}
	shortCode := "ABC123"

	mockRepo.On("FindByID", mock.Anything, int64(4)).Return(existing, nil)

	_, err := svc.UpdateShipment(context.Background(), 4, domain.ShipmentUpdate{TrackingCode: &shortCode})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "entre 8 y 20 caracteres")
	mockRepo.AssertNotCalled(t, "Update")
}

// --- Testes para SearchShipments ---

func TestSearchShipments_EmptyFilterReturnsNothing(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	filter := domain.ShipmentFilter{Page: domain.Page{Skip: 0, Limit: 100}}
	results, err := svc.SearchShipments(context.Background(), filter)

	assert.NoError(t, err)
	assert.Empty(t, results)
	mockRepo.AssertNotCalled(t, "Search")
}

func TestSearchShipments_Fail_ShortTrackingCode(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	shortCode := "ABC"
	filter := domain.ShipmentFilter{TrackingCode: &shortCode, Page: domain.Page{Skip: 0, Limit: 100}}

	_, err := svc.SearchShipments(context.Background(), filter)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Search")
}

func TestSearchShipments_Success_WithFilter(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	orderID := int64(10)
	filter := domain.ShipmentFilter{OrderID: &orderID, Page: domain.Page{Skip: 0, Limit: 100}}
	expected := []domain.Shipment{{ID: 1, OrderID: 10}}

	mockRepo.On("Search", mock.Anything, filter).Return(expected, nil)

	results, err := svc.SearchShipments(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, results)
	mockRepo.AssertExpectations(t)
}

// --- Testes para DeleteShipment ---

func TestDeleteShipment_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockShipmentRepository)
	mockMethods := new(MockMethodFinder)
	mockStatuses := new(MockStatusLister)
	svc := shipmentservice.NewService(mockRepo, mockMethods, mockStatuses, newTestLogger())

	repoError := errors.New("db timeout")
	mockRepo.On("Delete", mock.Anything, int64(4)).Return(repoError)

	err := svc.DeleteShipment(context.Background(), 4)

	assert.Error(t, err)
	assert.Equal(t, repoError, err)
	mockRepo.AssertExpectations(t)
}
