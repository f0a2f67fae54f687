package statusservice

import (
	"context"
	"fmt"
	"strings"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// StatusRepository define o contrato que o serviço de estados de envio espera
// da camada de persistência.
type StatusRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.ShipmentStatus, error)
	Create(ctx context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error)
	FindByID(ctx context.Context, id int64) (domain.ShipmentStatus, error)
	Update(ctx context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.ShipmentStatusFilter) ([]domain.ShipmentStatus, error)
}

// ShipmentFinder valida a existência do envio referenciado.
type ShipmentFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Shipment, error)
}

// EmployeeFinder valida a existência do empleado referenciado.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Employee, error)
}

// Service implementa as regras de negócio dos estados de envio.
type Service struct {
	repo      StatusRepository
	shipments ShipmentFinder
	employees EmployeeFinder
	logger    logger.Logger
}

func NewService(repo StatusRepository, shipments ShipmentFinder, employees EmployeeFinder, logger logger.Logger) *Service {
	return &Service{repo: repo, shipments: shipments, employees: employees, logger: logger}
}

func (s *Service) ListStatuses(ctx context.Context, page domain.Page) ([]domain.ShipmentStatus, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

func (s *Service) CreateStatus(ctx context.Context, input domain.ShipmentStatusInput) (domain.ShipmentStatus, error) {
	s.logger.Debug("Iniciando criação de estado de envio no serviço.", map[string]interface{}{"envio_id": input.ShipmentID})

	if input.ShipmentID <= 0 {
		return domain.ShipmentStatus{}, apperror.NewValidationError("El ID del envío debe ser mayor que 0.")
	}
	if !input.Status.Valid() {
		return domain.ShipmentStatus{}, apperror.NewValidationError("El estado debe ser 'pendiente', 'en ruta', 'entregado' o 'devuelto'.")
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return domain.ShipmentStatus{}, err
		}
	}

	if _, err := s.shipments.FindByID(ctx, input.ShipmentID); err != nil {
		s.logger.Warn("Envio referenciado não existe.", map[string]interface{}{"envio_id": input.ShipmentID})
		return domain.ShipmentStatus{}, err
	}
	if input.EmployeeID != nil {
		if *input.EmployeeID <= 0 {
			return domain.ShipmentStatus{}, apperror.NewValidationError("El ID del empleado debe ser mayor que 0.")
		}
		if _, err := s.employees.FindByID(ctx, *input.EmployeeID); err != nil {
			s.logger.Warn("Empleado referenciado não existe.", map[string]interface{}{"empleado_id": *input.EmployeeID})
			return domain.ShipmentStatus{}, err
		}
	}

	created, err := s.repo.Create(ctx, domain.ShipmentStatus{
		ShipmentID:  input.ShipmentID,
		Status:      input.Status,
		Description: input.Description,
		EmployeeID:  input.EmployeeID,
	})
	if err != nil {
		s.logger.Error("Falha ao criar estado de envio no repositório.", err)
		return domain.ShipmentStatus{}, err
	}

	s.logger.Info("Estado de envio criado com sucesso.", map[string]interface{}{"estado_envio_id": created.ID})
	return created, nil
}

func (s *Service) GetStatusByID(ctx context.Context, id int64) (domain.ShipmentStatus, error) {
	if id <= 0 {
		return domain.ShipmentStatus{}, apperror.NewValidationError("El ID del estado de envío debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, upd domain.ShipmentStatusUpdate) (domain.ShipmentStatus, error) {
	if id <= 0 {
		return domain.ShipmentStatus{}, apperror.NewValidationError("El ID del estado de envío debe ser mayor que 0.")
	}

	status, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ShipmentStatus{}, err
	}

	if upd.ShipmentID != nil {
		if *upd.ShipmentID <= 0 {
			return domain.ShipmentStatus{}, apperror.NewValidationError("El ID del envío debe ser mayor que 0.")
		}
		if _, err := s.shipments.FindByID(ctx, *upd.ShipmentID); err != nil {
			return domain.ShipmentStatus{}, err
		}
		status.ShipmentID = *upd.ShipmentID
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return domain.ShipmentStatus{}, apperror.NewValidationError("El estado debe ser 'pendiente', 'en ruta', 'entregado' o 'devuelto'.")
		}
		status.Status = *upd.Status
	}
	if upd.Description != nil {
		if err := validateDescription(*upd.Description); err != nil {
			return domain.ShipmentStatus{}, err
		}
		status.Description = upd.Description
	}
	if upd.Date != nil {
		status.Date = *upd.Date
	}
	if upd.EmployeeID != nil {
		if *upd.EmployeeID <= 0 {
			return domain.ShipmentStatus{}, apperror.NewValidationError("El ID del empleado debe ser mayor que 0.")
		}
		if _, err := s.employees.FindByID(ctx, *upd.EmployeeID); err != nil {
			return domain.ShipmentStatus{}, err
		}
		status.EmployeeID = upd.EmployeeID
	}

	updated, err := s.repo.Update(ctx, status)
	if err != nil {
		s.logger.Error("Falha ao atualizar estado de envio no repositório.", err)
		return domain.ShipmentStatus{}, err
	}

	s.logger.Info("Estado de envio atualizado com sucesso.", map[string]interface{}{"estado_envio_id": updated.ID})
	return updated, nil
}

func (s *Service) DeleteStatus(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID del estado de envío debe ser mayor que 0.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchStatuses(ctx context.Context, filter domain.ShipmentStatusFilter) ([]domain.ShipmentStatus, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.ShipmentStatus{}, nil
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperror.NewValidationError("El estado debe ser 'pendiente', 'en ruta', 'entregado' o 'devuelto'.")
	}
	return s.repo.Search(ctx, filter)
}

func validateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < 5 || len(trimmed) > 500 {
		return apperror.NewValidationError("La descripción debe tener entre 5 y 500 caracteres.")
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
