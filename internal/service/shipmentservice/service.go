package shipmentservice

import (
	"context"
	"fmt"
	"math/rand"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// ShipmentRepository define o contrato que o serviço de envios espera da
// camada de persistência. Create insere o envio e o estado inicial na mesma
// transação.
type ShipmentRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.Shipment, error)
	Create(ctx context.Context, s domain.Shipment) (domain.Shipment, error)
	FindByID(ctx context.Context, id int64) (domain.Shipment, error)
	FindByTrackingCode(ctx context.Context, code string) (domain.Shipment, error)
	ExistsByTrackingCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, s domain.Shipment) (domain.Shipment, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.ShipmentFilter) ([]domain.Shipment, error)
}

// MethodFinder valida a existência do método de envio referenciado.
type MethodFinder interface {
	FindByID(ctx context.Context, id int64) (domain.ShippingMethod, error)
}

// StatusLister recupera o histórico de estados para o rastreamento público.
type StatusLister interface {
	ListByShipment(ctx context.Context, shipmentID int64) ([]domain.ShipmentStatus, error)
}

// Service implementa as regras de negócio dos envios.
type Service struct {
	repo     ShipmentRepository
	methods  MethodFinder
	statuses StatusLister
	logger   logger.Logger
}

func NewService(repo ShipmentRepository, methods MethodFinder, statuses StatusLister, logger logger.Logger) *Service {
	return &Service{repo: repo, methods: methods, statuses: statuses, logger: logger}
}

func (s *Service) ListShipments(ctx context.Context, page domain.Page) ([]domain.Shipment, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

// CreateShipment valida as referências, gera um código de rastreio único e
// persiste o envio junto com o estado inicial "pendiente".
func (s *Service) CreateShipment(ctx context.Context, input domain.ShipmentInput) (domain.Shipment, error) {
	s.logger.Debug("Iniciando criação de envio no serviço.", map[string]interface{}{"pedido_id": input.OrderID})

	if input.OrderID <= 0 {
		return domain.Shipment{}, apperror.NewValidationError("El ID del pedido debe ser mayor que 0.")
	}
	if input.AddressID <= 0 {
		return domain.Shipment{}, apperror.NewValidationError("El ID de la dirección debe ser mayor que 0.")
	}
	if input.MethodID <= 0 {
		return domain.Shipment{}, apperror.NewValidationError("El ID del método de envío debe ser mayor que 0.")
	}

	if _, err := s.methods.FindByID(ctx, input.MethodID); err != nil {
		s.logger.Warn("Método de envio referenciado não existe.", map[string]interface{}{"metodo_envio_id": input.MethodID})
		return domain.Shipment{}, err
	}

	code, err := s.uniqueTrackingCode(ctx)
	if err != nil {
		return domain.Shipment{}, err
	}

	created, err := s.repo.Create(ctx, domain.Shipment{
		OrderID:      input.OrderID,
		AddressID:    input.AddressID,
		MethodID:     input.MethodID,
		TrackingCode: code,
	})
	if err != nil {
		s.logger.Error("Falha ao criar envio no repositório.", err)
		return domain.Shipment{}, err
	}

	s.logger.Info("Envio criado com sucesso.", map[string]interface{}{"envio_id": created.ID, "codigo_rastreo": created.TrackingCode})
	return created, nil
}

func (s *Service) GetShipmentByID(ctx context.Context, id int64) (domain.Shipment, error) {
	if id <= 0 {
		return domain.Shipment{}, apperror.NewValidationError("El ID del envío debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

// TrackShipment resolve o envio pelo código de rastreio e devolve o seu
// histórico de estados, do mais recente para o mais antigo.
func (s *Service) TrackShipment(ctx context.Context, code string) ([]domain.ShipmentStatus, error) {
	if code == "" {
		return nil, apperror.NewValidationError("El código de rastreo es obligatorio.")
	}

	shipment, err := s.repo.FindByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.statuses.ListByShipment(ctx, shipment.ID)
}

func (s *Service) UpdateShipment(ctx context.Context, id int64, upd domain.ShipmentUpdate) (domain.Shipment, error) {
	s.logger.Debug("Iniciando atualização de envio no serviço.", map[string]interface{}{"envio_id": id})

	if id <= 0 {
		return domain.Shipment{}, apperror.NewValidationError("El ID del envío debe ser mayor que 0.")
	}

	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Shipment{}, err
	}

	if upd.OrderID != nil {
		if *upd.OrderID <= 0 {
			return domain.Shipment{}, apperror.NewValidationError("El ID del pedido debe ser mayor que 0.")
		}
		shipment.OrderID = *upd.OrderID
	}
	if upd.AddressID != nil {
		if *upd.AddressID <= 0 {
			return domain.Shipment{}, apperror.NewValidationError("El ID de la dirección debe ser mayor que 0.")
		}
		shipment.AddressID = *upd.AddressID
	}
	if upd.MethodID != nil {
		if *upd.MethodID <= 0 {
			return domain.Shipment{}, apperror.NewValidationError("El ID del método de envío debe ser mayor que 0.")
		}
		if _, err := s.methods.FindByID(ctx, *upd.MethodID); err != nil {
			return domain.Shipment{}, err
		}
		shipment.MethodID = *upd.MethodID
	}
	if upd.ShipDate != nil {
		shipment.ShipDate = *upd.ShipDate
	}
	if upd.EstimatedDelivery != nil {
		shipment.EstimatedDelivery = upd.EstimatedDelivery
	}
	if upd.TrackingCode != nil {
		if l := len(*upd.TrackingCode); l < 8 || l > 20 {
			return domain.Shipment{}, apperror.NewValidationError("El código de rastreo debe tener entre 8 y 20 caracteres.")
		}
		shipment.TrackingCode = *upd.TrackingCode
	}

	updated, err := s.repo.Update(ctx, shipment)
	if err != nil {
		s.logger.Error("Falha ao atualizar envio no repositório.", err)
		return domain.Shipment{}, err
	}

	s.logger.Info("Envio atualizado com sucesso.", map[string]interface{}{"envio_id": updated.ID})
	return updated, nil
}

func (s *Service) DeleteShipment(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID del envío debe ser mayor que 0.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchShipments(ctx context.Context, filter domain.ShipmentFilter) ([]domain.Shipment, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.Shipment{}, nil
	}
	if filter.TrackingCode != nil {
		if l := len(*filter.TrackingCode); l < 8 || l > 20 {
			return nil, apperror.NewValidationError("El código de rastreo debe tener entre 8 y 20 caracteres.")
		}
	}
	return s.repo.Search(ctx, filter)
}

const (
	trackingLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	trackingDigits  = "0123456789"
)

// generateTrackingCode monta um código de 8 letras maiúsculas seguidas de
// 12 dígitos.
func generateTrackingCode() string {
	code := make([]byte, 20)
	for i := 0; i < 8; i++ {
		code[i] = trackingLetters[rand.Intn(len(trackingLetters))]
	}
	for i := 8; i < 20; i++ {
		code[i] = trackingDigits[rand.Intn(len(trackingDigits))]
	}
	return string(code)
}

// uniqueTrackingCode gera códigos até encontrar um que não exista. Colisões
// são raríssimas, então o laço quase nunca repete.
func (s *Service) uniqueTrackingCode(ctx context.Context) (string, error) {
	for {
		code := generateTrackingCode()
		exists, err := s.repo.ExistsByTrackingCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		s.logger.Warn("Colisão de código de rastreio, gerando outro.", map[string]interface{}{"codigo_rastreo": code})
	}
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
