package methodservice

import (
	"context"
	"fmt"
	"strings"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// MethodRepository define o contrato que o serviço de métodos de envio espera
// da camada de persistência.
type MethodRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.ShippingMethod, error)
	Create(ctx context.Context, m domain.ShippingMethod) (domain.ShippingMethod, error)
	FindByID(ctx context.Context, id int64) (domain.ShippingMethod, error)
	Update(ctx context.Context, m domain.ShippingMethod) (domain.ShippingMethod, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.ShippingMethodFilter) ([]domain.ShippingMethod, error)
}

// Service implementa as regras de negócio dos métodos de envio.
type Service struct {
	repo   MethodRepository
	logger logger.Logger
}

func NewService(repo MethodRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListMethods(ctx context.Context, page domain.Page) ([]domain.ShippingMethod, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

func (s *Service) CreateMethod(ctx context.Context, input domain.ShippingMethodInput) (domain.ShippingMethod, error) {
	s.logger.Debug("Iniciando criação de método de envio no serviço.", map[string]interface{}{"tipo": input.Type})

	if err := validateMethodFields(input.Type, input.Description, input.EstimatedDays, input.Cost); err != nil {
		s.logger.Warn("Falha na validação do método de envio.", map[string]interface{}{"error": err.Error()})
		return domain.ShippingMethod{}, err
	}

	created, err := s.repo.Create(ctx, domain.ShippingMethod{
		Type:          input.Type,
		Description:   input.Description,
		EstimatedDays: input.EstimatedDays,
		Cost:          input.Cost,
	})
	if err != nil {
		s.logger.Error("Falha ao criar método de envio no repositório.", err)
		return domain.ShippingMethod{}, err
	}

	s.logger.Info("Método de envio criado com sucesso.", map[string]interface{}{"metodo_envio_id": created.ID})
	return created, nil
}

func (s *Service) GetMethodByID(ctx context.Context, id int64) (domain.ShippingMethod, error) {
	if id <= 0 {
		return domain.ShippingMethod{}, apperror.NewValidationError("El ID del método de envío debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdateMethod(ctx context.Context, id int64, upd domain.ShippingMethodUpdate) (domain.ShippingMethod, error) {
	if id <= 0 {
		return domain.ShippingMethod{}, apperror.NewValidationError("El ID del método de envío debe ser mayor que 0.")
	}

	method, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ShippingMethod{}, err
	}

	if upd.Type != nil {
		method.Type = *upd.Type
	}
	if upd.Description != nil {
		method.Description = *upd.Description
	}
	if upd.EstimatedDays != nil {
		method.EstimatedDays = *upd.EstimatedDays
	}
	if upd.Cost != nil {
		method.Cost = *upd.Cost
	}

	if err := validateMethodFields(method.Type, method.Description, method.EstimatedDays, method.Cost); err != nil {
		return domain.ShippingMethod{}, err
	}

	updated, err := s.repo.Update(ctx, method)
	if err != nil {
		s.logger.Error("Falha ao atualizar método de envio no repositório.", err)
		return domain.ShippingMethod{}, err
	}

	s.logger.Info("Método de envio atualizado com sucesso.", map[string]interface{}{"metodo_envio_id": updated.ID})
	return updated, nil
}

func (s *Service) DeleteMethod(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID del método de envío debe ser mayor que 0.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchMethods(ctx context.Context, filter domain.ShippingMethodFilter) ([]domain.ShippingMethod, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.ShippingMethod{}, nil
	}
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperror.NewValidationError("El tipo debe ser 'estandar', 'rapido' o 'express'.")
	}
	return s.repo.Search(ctx, filter)
}

func validateMethodFields(t domain.MethodType, description string, estimatedDays int, cost float64) error {
	if !t.Valid() {
		return apperror.NewValidationError("El tipo debe ser 'estandar', 'rapido' o 'express'.")
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < 2 || len(trimmed) > 250 {
		return apperror.NewValidationError("La descripción debe tener entre 2 y 250 caracteres.")
	}
	if estimatedDays <= 0 {
		return apperror.NewValidationError("El tiempo estimado debe ser mayor que 0.")
	}
	if cost < 0 {
		return apperror.NewValidationError("El costo debe ser mayor o igual a 0.")
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
