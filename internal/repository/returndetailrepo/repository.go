package returndetailrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
)

// ReturnDetailRepository implementa as operações CRUD da tabela
// devolucion_detalle.
type ReturnDetailRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewReturnDetailRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ReturnDetailRepository {
	return &ReturnDetailRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const detailColumns = `devolucion_detalle_id, devolucion_id, producto_id, cantidad`

func scanDetail(row interface{ Scan(...interface{}) error }) (domain.ReturnDetail, error) {
	var d domain.ReturnDetail
	err := row.Scan(&d.ID, &d.ReturnID, &d.ProductID, &d.Quantity)
	return d, err
}

func (r *ReturnDetailRepository) List(ctx context.Context, page domain.Page) ([]domain.ReturnDetail, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + detailColumns + ` FROM devolucion_detalle ORDER BY devolucion_detalle_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar detalhes de devolucao no DB.", err)
		return nil, apperror.NewDBError("obtener detalles de devolucion", err)
	}
	defer rows.Close()

	details := []domain.ReturnDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, apperror.NewDBError("obtener detalles de devolucion", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener detalles de devolucion", err)
	}

	return details, nil
}

func (r *ReturnDetailRepository) Create(ctx context.Context, d domain.ReturnDetail) (domain.ReturnDetail, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO devolucion_detalle (devolucion_id, producto_id, cantidad)
        VALUES ($1, $2, $3)
        RETURNING devolucion_detalle_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, d.ReturnID, d.ProductID, d.Quantity).Scan(&d.ID)
	if err != nil {
		r.logger.Error("Falha ao inserir detalhe de devolucao no DB.", err)
		return domain.ReturnDetail{}, apperror.NewDBError("crear detalle de devolucion", err)
	}

	r.logger.Info("Detalhe de devolucao criado com sucesso.", map[string]interface{}{"devolucion_detalle_id": d.ID})
	return d, nil
}

func (r *ReturnDetailRepository) FindByID(ctx context.Context, id int64) (domain.ReturnDetail, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + detailColumns + ` FROM devolucion_detalle WHERE devolucion_detalle_id = $1`

	d, err := scanDetail(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReturnDetail{}, apperror.NewNotFoundError(
			fmt.Sprintf("Detalle de devolución con ID %d no encontrado", id),
			map[string]interface{}{"devolucion_detalle_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar detalhe de devolucao no DB.", err)
		return domain.ReturnDetail{}, apperror.NewDBError("obtener detalle de devolucion", err)
	}

	return d, nil
}

func (r *ReturnDetailRepository) Update(ctx context.Context, d domain.ReturnDetail) (domain.ReturnDetail, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE devolucion_detalle
        SET devolucion_id = $1, producto_id = $2, cantidad = $3
        WHERE devolucion_detalle_id = $4
        RETURNING devolucion_detalle_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, d.ReturnID, d.ProductID, d.Quantity, d.ID).Scan(&d.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReturnDetail{}, apperror.NewNotFoundError(
			fmt.Sprintf("Detalle de devolución con ID %d no encontrado", d.ID),
			map[string]interface{}{"devolucion_detalle_id": d.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar detalhe de devolucao no DB.", err)
		return domain.ReturnDetail{}, apperror.NewDBError("actualizar parcialmente detalle de devolucion", err)
	}

	r.logger.Info("Detalhe de devolucao atualizado com sucesso.", map[string]interface{}{"devolucion_detalle_id": d.ID})
	return d, nil
}

func (r *ReturnDetailRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM devolucion_detalle WHERE devolucion_detalle_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar detalhe de devolucao do DB.", err)
		return apperror.NewDBError("eliminar detalle de devolucion", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar detalle de devolucion", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Detalle de devolución con ID %d no encontrado", id),
			map[string]interface{}{"devolucion_detalle_id": id},
		)
	}

	r.logger.Info("Detalhe de devolucao deletado com sucesso.", map[string]interface{}{"devolucion_detalle_id": id})
	return nil
}

// Search filtra apenas por igualdade; não há campos textuais nesta tabela.
func (r *ReturnDetailRepository) Search(ctx context.Context, filter domain.ReturnDetailFilter) ([]domain.ReturnDetail, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + detailColumns + ` FROM devolucion_detalle WHERE 1=1`
	args := []interface{}{}

	if filter.ReturnID != nil {
		args = append(args, *filter.ReturnID)
		query += fmt.Sprintf(" AND devolucion_id = $%d", len(args))
	}
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND producto_id = $%d", len(args))
	}
	if filter.Quantity != nil {
		args = append(args, *filter.Quantity)
		query += fmt.Sprintf(" AND cantidad = $%d", len(args))
	}

	args = append(args, filter.Page.Limit, filter.Page.Skip)
	query += fmt.Sprintf(" ORDER BY devolucion_detalle_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar detalhes de devolucao no DB.", err)
		return nil, apperror.NewDBError("buscar detalles de devolucion", err)
	}
	defer rows.Close()

	details := []domain.ReturnDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, apperror.NewDBError("buscar detalles de devolucion", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar detalles de devolucion", err)
	}

	return details, nil
}
