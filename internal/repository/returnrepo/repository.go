package returnrepo

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

// ReturnRepository implementa as operações CRUD da tabela devolucion.
type ReturnRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewReturnRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ReturnRepository {
	return &ReturnRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const returnColumns = `devolucion_id, envio_id, motivo, fecha, estado`

func scanReturn(row interface{ Scan(...interface{}) error }) (domain.Return, error) {
	var d domain.Return
	err := row.Scan(&d.ID, &d.ShipmentID, &d.Reason, &d.Date, &d.Status)
	return d, err
}

func (r *ReturnRepository) List(ctx context.Context, page domain.Page) ([]domain.Return, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + returnColumns + ` FROM devolucion ORDER BY devolucion_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar devolucoes no DB.", err)
		return nil, apperror.NewDBError("obtener devoluciones", err)
	}
	defer rows.Close()

	returns := []domain.Return{}
	for rows.Next() {
		d, err := scanReturn(rows)
		if err != nil {
			return nil, apperror.NewDBError("obtener devoluciones", err)
		}
		returns = append(returns, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener devoluciones", err)
	}

	return returns, nil
}

// Create insere a devolucao; fecha e estado "pendiente" vêm dos defaults
// da tabela.
func (r *ReturnRepository) Create(ctx context.Context, d domain.Return) (domain.Return, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO devolucion (envio_id, motivo)
        VALUES ($1, $2)
        RETURNING devolucion_id, fecha, estado`

	err := r.DB.QueryRowContext(ctxTimeout, query, d.ShipmentID, d.Reason).Scan(&d.ID, &d.Date, &d.Status)
	if err != nil {
		r.logger.Error("Falha ao inserir devolucao no DB.", err)
		return domain.Return{}, apperror.NewDBError("crear devolucion", err)
	}

	r.logger.Info("Devolucao criada com sucesso.", map[string]interface{}{"devolucion_id": d.ID})
	return d, nil
}

func (r *ReturnRepository) FindByID(ctx context.Context, id int64) (domain.Return, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + returnColumns + ` FROM devolucion WHERE devolucion_id = $1`

	d, err := scanReturn(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Return{}, apperror.NewNotFoundError(
			fmt.Sprintf("Devolución con ID %d no encontrada", id),
			map[string]interface{}{"devolucion_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar devolucao no DB.", err)
		return domain.Return{}, apperror.NewDBError("obtener devolucion", err)
	}

	return d, nil
}

func (r *ReturnRepository) Update(ctx context.Context, d domain.Return) (domain.Return, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE devolucion
        SET envio_id = $1, motivo = $2, fecha = $3, estado = $4
        WHERE devolucion_id = $5
        RETURNING devolucion_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, d.ShipmentID, d.Reason, d.Date, d.Status, d.ID).Scan(&d.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Return{}, apperror.NewNotFoundError(
			fmt.Sprintf("Devolución con ID %d no encontrada", d.ID),
			map[string]interface{}{"devolucion_id": d.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar devolucao no DB.", err)
		return domain.Return{}, apperror.NewDBError("actualizar parcialmente devolucion", err)
	}

	r.logger.Info("Devolucao atualizada com sucesso.", map[string]interface{}{"devolucion_id": d.ID})
	return d, nil
}

func (r *ReturnRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM devolucion WHERE devolucion_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar devolucao do DB.", err)
		return apperror.NewDBError("eliminar devolucion", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar devolucion", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Devolución con ID %d no encontrada", id),
			map[string]interface{}{"devolucion_id": id},
		)
	}

	r.logger.Info("Devolucao deletada com sucesso.", map[string]interface{}{"devolucion_id": id})
	return nil
}

func (r *ReturnRepository) Search(ctx context.Context, filter domain.ReturnFilter) ([]domain.Return, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + returnColumns + ` FROM devolucion WHERE 1=1`
	args := []interface{}{}

	if filter.ShipmentID != nil {
		args = append(args, *filter.ShipmentID)
		query += fmt.Sprintf(" AND envio_id = $%d", len(args))
	}
	if filter.Reason != nil {
		args = append(args, "%"+*filter.Reason+"%")
		query += fmt.Sprintf(" AND motivo ILIKE $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}

	args = append(args, filter.Page.Limit, filter.Page.Skip)
	query += fmt.Sprintf(" ORDER BY devolucion_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar devolucoes no DB.", err)
		return nil, apperror.NewDBError("buscar devoluciones", err)
	}
	defer rows.Close()

	returns := []domain.Return{}
	for rows.Next() {
		d, err := scanReturn(rows)
		if err != nil {
			return nil, apperror.NewDBError("buscar devoluciones", err)
		}
		returns = append(returns, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar devoluciones", err)
	}

	return returns, nil
}
