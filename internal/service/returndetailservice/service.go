package returndetailservice

import (
	"context"
	"fmt"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// ReturnDetailRepository define o contrato que o serviço de detalhes de
// devolução espera da camada de persistência.
type ReturnDetailRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.ReturnDetail, error)
	Create(ctx context.Context, d domain.ReturnDetail) (domain.ReturnDetail, error)
	FindByID(ctx context.Context, id int64) (domain.ReturnDetail, error)
	Update(ctx context.Context, d domain.ReturnDetail) (domain.ReturnDetail, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.ReturnDetailFilter) ([]domain.ReturnDetail, error)
}

// ReturnFinder valida a existência da devolução referenciada.
type ReturnFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Return, error)
}

// Service implementa as regras de negócio dos detalhes de devolução.
// producto_id é um id externo opaco; só o valor é validado, não a existência.
type Service struct {
	repo    ReturnDetailRepository
	returns ReturnFinder
	logger  logger.Logger
}

func NewService(repo ReturnDetailRepository, returns ReturnFinder, logger logger.Logger) *Service {
	return &Service{repo: repo, returns: returns, logger: logger}
}

func (s *Service) ListDetails(ctx context.Context, page domain.Page) ([]domain.ReturnDetail, error) {
	if err := validatePage(page, domain.MaxListLimit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, page)
}

func (s *Service) CreateDetail(ctx context.Context, input domain.ReturnDetailInput) (domain.ReturnDetail, error) {
	s.logger.Debug("Iniciando criação de detalhe de devolução no serviço.", map[string]interface{}{"devolucion_id": input.ReturnID})

	if input.ReturnID <= 0 {
		return domain.ReturnDetail{}, apperror.NewValidationError("El ID de la devolución debe ser mayor que 0.")
	}
	if input.ProductID <= 0 {
		return domain.ReturnDetail{}, apperror.NewValidationError("El ID del producto debe ser mayor que 0.")
	}
	if input.Quantity <= 0 {
		return domain.ReturnDetail{}, apperror.NewValidationError("La cantidad debe ser mayor que 0.")
	}

	if _, err := s.returns.FindByID(ctx, input.ReturnID); err != nil {
		s.logger.Warn("Devolução referenciada não existe.", map[string]interface{}{"devolucion_id": input.ReturnID})
		return domain.ReturnDetail{}, err
	}

	created, err := s.repo.Create(ctx, domain.ReturnDetail{
		ReturnID:  input.ReturnID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	})
	if err != nil {
		s.logger.Error("Falha ao criar detalhe de devolução no repositório.", err)
		return domain.ReturnDetail{}, err
	}

	s.logger.Info("Detalhe de devolução criado com sucesso.", map[string]interface{}{"devolucion_detalle_id": created.ID})
	return created, nil
}

func (s *Service) GetDetailByID(ctx context.Context, id int64) (domain.ReturnDetail, error) {
	if id <= 0 {
		return domain.ReturnDetail{}, apperror.NewValidationError("El ID del detalle de devolución debe ser mayor que 0.")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdateDetail(ctx context.Context, id int64, upd domain.ReturnDetailUpdate) (domain.ReturnDetail, error) {
	if id <= 0 {
		return domain.ReturnDetail{}, apperror.NewValidationError("El ID del detalle de devolución debe ser mayor que 0.")
	}

	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ReturnDetail{}, err
	}

	if upd.ReturnID != nil {
		if *upd.ReturnID <= 0 {
			return domain.ReturnDetail{}, apperror.NewValidationError("El ID de la devolución debe ser mayor que 0.")
		}
		if _, err := s.returns.FindByID(ctx, *upd.ReturnID); err != nil {
			return domain.ReturnDetail{}, err
		}
		detail.ReturnID = *upd.ReturnID
	}
	if upd.ProductID != nil {
		if *upd.ProductID <= 0 {
			return domain.ReturnDetail{}, apperror.NewValidationError("El ID del producto debe ser mayor que 0.")
		}
		detail.ProductID = *upd.ProductID
	}
	if upd.Quantity != nil {
		if *upd.Quantity <= 0 {
			return domain.ReturnDetail{}, apperror.NewValidationError("La cantidad debe ser mayor que 0.")
		}
		detail.Quantity = *upd.Quantity
	}

	updated, err := s.repo.Update(ctx, detail)
	if err != nil {
		s.logger.Error("Falha ao atualizar detalhe de devolução no repositório.", err)
		return domain.ReturnDetail{}, err
	}

	s.logger.Info("Detalhe de devolução atualizado com sucesso.", map[string]interface{}{"devolucion_detalle_id": updated.ID})
	return updated, nil
}

func (s *Service) DeleteDetail(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("El ID del detalle de devolución debe ser mayor que 0.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchDetails(ctx context.Context, filter domain.ReturnDetailFilter) ([]domain.ReturnDetail, error) {
	if err := validatePage(filter.Page, domain.MaxSearchLimit); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []domain.ReturnDetail{}, nil
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
