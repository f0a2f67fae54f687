package warehouselogrepo

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

// WarehouseLogRepository implementa as operações CRUD da tabela log_bodega.
type WarehouseLogRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewWarehouseLogRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *WarehouseLogRepository {
	return &WarehouseLogRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const logColumns = `log_bodega_id, producto_id, cantidad, fecha, bodega_id, empleado_id`

func scanLog(row interface{ Scan(...interface{}) error }) (domain.WarehouseLog, error) {
	var l domain.WarehouseLog
	err := row.Scan(&l.ID, &l.ProductID, &l.Quantity, &l.Date, &l.WarehouseID, &l.EmployeeID)
	return l, err
}

func (r *WarehouseLogRepository) List(ctx context.Context, page domain.Page) ([]domain.WarehouseLog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + logColumns + ` FROM log_bodega ORDER BY log_bodega_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar logs de bodega no DB.", err)
		return nil, apperror.NewDBError("obtener logs de bodega", err)
	}
	defer rows.Close()

	logs := []domain.WarehouseLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, apperror.NewDBError("obtener logs de bodega", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener logs de bodega", err)
	}

	return logs, nil
}

func (r *WarehouseLogRepository) Create(ctx context.Context, l domain.WarehouseLog) (domain.WarehouseLog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO log_bodega (producto_id, cantidad, bodega_id, empleado_id)
        VALUES ($1, $2, $3, $4)
        RETURNING log_bodega_id, fecha`

	err := r.DB.QueryRowContext(ctxTimeout, query, l.ProductID, l.Quantity, l.WarehouseID, l.EmployeeID).Scan(&l.ID, &l.Date)
	if err != nil {
		r.logger.Error("Falha ao inserir log de bodega no DB.", err)
		return domain.WarehouseLog{}, apperror.NewDBError("crear log de bodega", err)
	}

	r.logger.Info("Log de bodega criado com sucesso.", map[string]interface{}{"log_bodega_id": l.ID})
	return l, nil
}

func (r *WarehouseLogRepository) FindByID(ctx context.Context, id int64) (domain.WarehouseLog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + logColumns + ` FROM log_bodega WHERE log_bodega_id = $1`

	l, err := scanLog(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WarehouseLog{}, apperror.NewNotFoundError(
			fmt.Sprintf("Log de bodega con ID %d no encontrado", id),
			map[string]interface{}{"log_bodega_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar log de bodega no DB.", err)
		return domain.WarehouseLog{}, apperror.NewDBError("obtener log de bodega", err)
	}

	return l, nil
}

func (r *WarehouseLogRepository) Update(ctx context.Context, l domain.WarehouseLog) (domain.WarehouseLog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE log_bodega
        SET producto_id = $1, cantidad = $2, fecha = $3, bodega_id = $4, empleado_id = $5
        WHERE log_bodega_id = $6
        RETURNING log_bodega_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, l.ProductID, l.Quantity, l.Date, l.WarehouseID, l.EmployeeID, l.ID).Scan(&l.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WarehouseLog{}, apperror.NewNotFoundError(
			fmt.Sprintf("Log de bodega con ID %d no encontrado", l.ID),
			map[string]interface{}{"log_bodega_id": l.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar log de bodega no DB.", err)
		return domain.WarehouseLog{}, apperror.NewDBError("actualizar parcialmente log de bodega", err)
	}

	r.logger.Info("Log de bodega atualizado com sucesso.", map[string]interface{}{"log_bodega_id": l.ID})
	return l, nil
}

func (r *WarehouseLogRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM log_bodega WHERE log_bodega_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar log de bodega do DB.", err)
		return apperror.NewDBError("eliminar log de bodega", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar log de bodega", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Log de bodega con ID %d no encontrado", id),
			map[string]interface{}{"log_bodega_id": id},
		)
	}

	r.logger.Info("Log de bodega deletado com sucesso.", map[string]interface{}{"log_bodega_id": id})
	return nil
}

func (r *WarehouseLogRepository) Search(ctx context.Context, filter domain.WarehouseLogFilter) ([]domain.WarehouseLog, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + logColumns + ` FROM log_bodega WHERE 1=1`
	args := []interface{}{}

	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND producto_id = $%d", len(args))
	}
	if filter.Quantity != nil {
		args = append(args, *filter.Quantity)
		query += fmt.Sprintf(" AND cantidad = $%d", len(args))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		query += fmt.Sprintf(" AND bodega_id = $%d", len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND empleado_id = $%d", len(args))
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
	query += fmt.Sprintf(" ORDER BY log_bodega_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar logs de bodega no DB.", err)
		return nil, apperror.NewDBError("buscar logs de bodega", err)
	}
	defer rows.Close()

	logs := []domain.WarehouseLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, apperror.NewDBError("buscar logs de bodega", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar logs de bodega", err)
	}

	return logs, nil
}
