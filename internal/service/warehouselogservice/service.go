package warehouselogservice

import (
	"context"
	"fmt"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// WarehouseLogRepository define o contrato que o serviço de logs de bodega
// espera da camada de persistência.
type WarehouseLogRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.WarehouseLog, error)
	Create(ctx context.Context, l domain.WarehouseLog) (domain.WarehouseLog, error)
	FindByID(ctx context.Context, id int64) (domain.WarehouseLog, error)
	Update(ctx context.Context, l domain.WarehouseLog) (domain.WarehouseLog, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.WarehouseLogFilter) ([]domain.WarehouseLog, error)
}

// WarehouseFinder valida a existência da bodega referenciada.
type WarehouseFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Warehouse, error)
}

// EmployeeFinder valida a existência do empleado referenciado.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Employee, error)
}

// Service implementa as regras de negócio dos logs de bodega.
// producto_id é um id externo opaco; só o valor é validado, não a existência.
type Service struct {
	repo       WarehouseLogRepository
	warehouses WarehouseFinder
	employees  EmployeeFinder
	logger     logger.Logger
}

func NewService(repo WarehouseLogRepository, warehouses WarehouseFinder, employees EmployeeFinder, logger logger.Logger) *Service {
	return &Service{repo: repo, warehouses: warehouses, employees: employees, logger: logger}
}

func (s *Service) ListLogs(ctx context.Context, page domain.Page) ([]domain.WarehouseLog, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

func (s *Service) CreateLog(ctx context.Context, input domain.WarehouseLogInput) (domain.WarehouseLog, error) {
	s.logger.Debug("Iniciando criação de log de bodega no serviço.", map[string]interface{}{"bodega_id": input.WarehouseID})

	if input.ProductID <= 0 {
		return domain.WarehouseLog{}, apperror.NewValidationError("El ID del producto debe ser mayor que 0.")
	}
	if input.Quantity <= 0 {
		return domain.WarehouseLog{}, apperror.NewValidationError("La cantidad debe ser mayor que 0.")
	}
	if input.WarehouseID <= 0 {
		return domain.WarehouseLog{}, apperror.NewValidationError("El ID de la bodega debe ser mayor que 0.")
	}
	if input.EmployeeID <= 0 {
		return domain.WarehouseLog{}, apperror.NewValidationError("El ID del empleado debe ser mayor que 0.")
	}

	if _, err := s.warehouses.FindByID(ctx, input.WarehouseID); err != nil {
		s.logger.Warn("Bodega referenciada não existe.", map[string]interface{}{"bodega_id": input.WarehouseID})
		return domain.WarehouseLog{}, err
	}
	if _, err := s.employees.FindByID(ctx, input.EmployeeID); err != nil {
		s.logger.Warn("Empleado referenciado não existe.", map[string]interface{}{"empleado_id": input.EmployeeID})
		return domain.WarehouseLog{}, err
	}

	created, err := s.repo.Create(ctx, domain.WarehouseLog{
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		WarehouseID: input.WarehouseID,
		EmployeeID:  input.EmployeeID,
	})
	if err != nil {
		s.logger.Error("Falha ao criar log de bodega no repositório.", err)
		return domain.WarehouseLog{}, err
	}

	s.logger.Info("Log de bodega criado com sucesso.", map[string]interface{}{"log_bodega_id": created.ID})
	return created, nil
}

func (s *Service) GetLogByID(ctx context.Context, id int64) (domain.WarehouseLog, error) {
	if id <= 0 {
		return domain.WarehouseLog{}, apperror.NewValidationError("El ID del log de bodega debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdateLog(ctx context.Context, id int64, upd domain.WarehouseLogUpdate) (domain.WarehouseLog, error) {
	if id <= 0 {
		return domain.WarehouseLog{}, apperror.NewValidationError("El ID del log de bodega debe ser mayor que 0.")
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.WarehouseLog{}, err
	}

	if upd.ProductID != nil {
		if *upd.ProductID <= 0 {
			return domain.WarehouseLog{}, apperror.NewValidationError("El ID del producto debe ser mayor que 0.")
		}
		entry.ProductID = *upd.ProductID
	}
	if upd.Quantity != nil {
		if *upd.Quantity <= 0 {
			return domain.WarehouseLog{}, apperror.NewValidationError("La cantidad debe ser mayor que 0.")
		}
		entry.Quantity = *upd.Quantity
	}
	if upd.Date != nil {
		entry.Date = *upd.Date
	}
	if upd.WarehouseID != nil {
		if *upd.WarehouseID <= 0 {
			return domain.WarehouseLog{}, apperror.NewValidationError("El ID de la bodega debe ser mayor que 0.")
		}
		if _, err := s.warehouses.FindByID(ctx, *upd.WarehouseID); err != nil {
			return domain.WarehouseLog{}, err
		}
		entry.WarehouseID = *upd.WarehouseID
	}
	if upd.EmployeeID != nil {
		if *upd.EmployeeID <= 0 {
			return domain.WarehouseLog{}, apperror.NewValidationError("El ID del empleado debe ser mayor que 0.")
		}
		if _, err := s.employees.FindByID(ctx, *upd.EmployeeID); err != nil {
			return domain.WarehouseLog{}, err
		}
		entry.EmployeeID = *upd.EmployeeID
	}

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		s.logger.Error("Falha ao atualizar log de bodega no repositório.", err)
		return domain.WarehouseLog{}, err
	}

	s.logger.Info("Log de bodega atualizado com sucesso.", map[string]interface{}{"log_bodega_id": updated.ID})
	return updated, nil
}

func (s *Service) DeleteLog(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID del log de bodega debe ser mayor que 0.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchLogs(ctx context.Context, filter domain.WarehouseLogFilter) ([]domain.WarehouseLog, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.WarehouseLog{}, nil
	}
	return s.repo.Search(ctx, filter)
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
