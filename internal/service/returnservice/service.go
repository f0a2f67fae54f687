package returnservice

import (
	"context"
	"fmt"
	"strings"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// ReturnRepository define o contrato que o serviço de devoluções espera da
// camada de persistência.
type ReturnRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.Return, error)
	Create(ctx context.Context, d domain.Return) (domain.Return, error)
	FindByID(ctx context.Context, id int64) (domain.Return, error)
	Update(ctx context.Context, d domain.Return) (domain.Return, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.ReturnFilter) ([]domain.Return, error)
}

// ShipmentFinder valida a existência do envio referenciado.
type ShipmentFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Shipment, error)
}

// Service implementa as regras de negócio das devoluções.
type Service struct {
	repo      ReturnRepository
	shipments ShipmentFinder
	logger    logger.Logger
}

func NewService(repo ReturnRepository, shipments ShipmentFinder, logger logger.Logger) *Service {
	return &Service{repo: repo, shipments: shipments, logger: logger}
}

func (s *Service) ListReturns(ctx context.Context, page domain.Page) ([]domain.Return, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

// CreateReturn abre uma devolução contra um envio existente. O estado inicial
// é sempre "pendiente".
func (s *Service) CreateReturn(ctx context.Context, input domain.ReturnInput) (domain.Return, error) {
	s.logger.Debug("Iniciando criação de devolução no serviço.", map[string]interface{}{"envio_id": input.ShipmentID})

	if input.ShipmentID <= 0 {
		return domain.Return{}, apperror.NewValidationError("El ID del envío debe ser mayor que 0.")
	}
	if err := validateReason(input.Reason); err != nil {
		return domain.Return{}, err
	}

	if _, err := s.shipments.FindByID(ctx, input.ShipmentID); err != nil {
		s.logger.Warn("Envio referenciado não existe.", map[string]interface{}{"envio_id": input.ShipmentID})
		return domain.Return{}, err
	}

	created, err := s.repo.Create(ctx, domain.Return{
		ShipmentID: input.ShipmentID,
		Reason:     input.Reason,
	})
	if err != nil {
		s.logger.Error("Falha ao criar devolução no repositório.", err)
		return domain.Return{}, err
	}

	s.logger.Info("Devolução criada com sucesso.", map[string]interface{}{"devolucion_id": created.ID})
	return created, nil
}

func (s *Service) GetReturnByID(ctx context.Context, id int64) (domain.Return, error) {
	if id <= 0 {
		return domain.Return{}, apperror.NewValidationError("El ID de la devolución debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdateReturn(ctx context.Context, id int64, upd domain.ReturnUpdate) (domain.Return, error) {
	if id <= 0 {
		return domain.Return{}, apperror.NewValidationError("El ID de la devolución debe ser mayor que 0.")
	}

	ret, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Return{}, err
	}

	if upd.ShipmentID != nil {
		if *upd.ShipmentID <= 0 {
			return domain.Return{}, apperror.NewValidationError("El ID del envío debe ser mayor que 0.")
		}
		if _, err := s.shipments.FindByID(ctx, *upd.ShipmentID); err != nil {
			return domain.Return{}, err
		}
		ret.ShipmentID = *upd.ShipmentID
	}
	if upd.Reason != nil {
		if err := validateReason(*upd.Reason); err != nil {
			return domain.Return{}, err
		}
		ret.Reason = *upd.Reason
	}
	if upd.Date != nil {
		ret.Date = *upd.Date
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return domain.Return{}, apperror.NewValidationError("El estado debe ser 'pendiente', 'enviado' o 'recibido'.")
		}
		ret.Status = *upd.Status
	}

	updated, err := s.repo.Update(ctx, ret)
	if err != nil {
		s.logger.Error("Falha ao atualizar devolução no repositório.", err)
		return domain.Return{}, err
	}

	s.logger.Info("Devolução atualizada com sucesso.", map[string]interface{}{"devolucion_id": updated.ID})
	return updated, nil
}

func (s *Service) DeleteReturn(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID de la devolución debe ser mayor que 0.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchReturns(ctx context.Context, filter domain.ReturnFilter) ([]domain.Return, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.Return{}, nil
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperror.NewValidationError("El estado debe ser 'pendiente', 'enviado' o 'recibido'.")
	}
	return s.repo.Search(ctx, filter)
}

func validateReason(reason string) error {
	trimmed := strings.TrimSpace(reason)
	if len(trimmed) < 5 || len(trimmed) > 500 {
		return apperror.NewValidationError("El motivo debe tener entre 5 y 500 caracteres.")
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
