package warehouseservice

import (
	"context"
	"fmt"
	"strings"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// WarehouseRepository define o contrato que o serviço de bodegas espera da
// camada de persistência.
type WarehouseRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.Warehouse, error)
	Create(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error)
	FindByID(ctx context.Context, id int64) (domain.Warehouse, error)
	Update(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error)
}

// Service implementa as regras de negócio das bodegas.
type Service struct {
	repo   WarehouseRepository
	logger logger.Logger
}

func NewService(repo WarehouseRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListWarehouses(ctx context.Context, page domain.Page) ([]domain.Warehouse, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

func (s *Service) CreateWarehouse(ctx context.Context, input domain.WarehouseInput) (domain.Warehouse, error) {
	s.logger.Debug("Iniciando criação de bodega no serviço.", map[string]interface{}{"tipo": input.Type})

	if err := validateWarehouseFields(input.Address, input.Type); err != nil {
		s.logger.Warn("Falha na validação da bodega.", map[string]interface{}{"error": err.Error()})
		return domain.Warehouse{}, err
	}

	created, err := s.repo.Create(ctx, domain.Warehouse{Address: input.Address, Type: input.Type})
	if err != nil {
		s.logger.Error("Falha ao criar bodega no repositório.", err)
		return domain.Warehouse{}, err
	}

	s.logger.Info("Bodega criada com sucesso.", map[string]interface{}{"bodega_id": created.ID})
	return created, nil
}

func (s *Service) GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error) {
	if id <= 0 {
		return domain.Warehouse{}, apperror.NewValidationError("El ID de la bodega debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdateWarehouse(ctx context.Context, id int64, upd domain.WarehouseUpdate) (domain.Warehouse, error) {
	if id <= 0 {
		return domain.Warehouse{}, apperror.NewValidationError("El ID de la bodega debe ser mayor que 0.")
	}

	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Warehouse{}, err
	}

	if upd.Address != nil {
		warehouse.Address = *upd.Address
	}
	if upd.Type != nil {
		warehouse.Type = *upd.Type
	}

	if err := validateWarehouseFields(warehouse.Address, warehouse.Type); err != nil {
		return domain.Warehouse{}, err
	}

	updated, err := s.repo.Update(ctx, warehouse)
	if err != nil {
		s.logger.Error("Falha ao atualizar bodega no repositório.", err)
		return domain.Warehouse{}, err
	}

	s.logger.Info("Bodega atualizada com sucesso.", map[string]interface{}{"bodega_id": updated.ID})
	return updated, nil
}

func (s *Service) DeleteWarehouse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID de la bodega debe ser mayor que 0.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchWarehouses(ctx context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.Warehouse{}, nil
	}
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperror.NewValidationError("El tipo debe ser 'small', 'large' o 'large non-sortable'.")
	}
	return s.repo.Search(ctx, filter)
}

func validateWarehouseFields(address string, t domain.WarehouseType) error {
	trimmed := strings.TrimSpace(address)
	if len(trimmed) < 2 || len(trimmed) > 500 {
		return apperror.NewValidationError("La dirección de la bodega debe tener entre 2 y 500 caracteres.")
	}
	if !t.Valid() {
		return apperror.NewValidationError("El tipo debe ser 'small', 'large' o 'large non-sortable'.")
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
