package warehouserepo

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

// WarehouseRepository implementa as operações CRUD da tabela bodega.
type WarehouseRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewWarehouseRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *WarehouseRepository {
	return &WarehouseRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

func (r *WarehouseRepository) List(ctx context.Context, page domain.Page) ([]domain.Warehouse, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT bodega_id, direccion_bodega, tipo FROM bodega ORDER BY bodega_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar bodegas no DB.", err)
		return nil, apperror.NewDBError("obtener bodegas", err)
	}
	defer rows.Close()

	warehouses := []domain.Warehouse{}
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Address, &w.Type); err != nil {
			return nil, apperror.NewDBError("obtener bodegas", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener bodegas", err)
	}

	return warehouses, nil
}

func (r *WarehouseRepository) Create(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `INSERT INTO bodega (direccion_bodega, tipo) VALUES ($1, $2) RETURNING bodega_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, w.Address, w.Type).Scan(&w.ID)
	if err != nil {
		r.logger.Error("Falha ao inserir bodega no DB.", err)
		return domain.Warehouse{}, apperror.NewDBError("crear bodega", err)
	}

	r.logger.Info("Bodega criada com sucesso.", map[string]interface{}{"bodega_id": w.ID})
	return w, nil
}

func (r *WarehouseRepository) FindByID(ctx context.Context, id int64) (domain.Warehouse, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT bodega_id, direccion_bodega, tipo FROM bodega WHERE bodega_id = $1`

	var w domain.Warehouse
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(&w.ID, &w.Address, &w.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Warehouse{}, apperror.NewNotFoundError(
			fmt.Sprintf("Bodega con ID %d no encontrada", id),
			map[string]interface{}{"bodega_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar bodega no DB.", err)
		return domain.Warehouse{}, apperror.NewDBError("obtener bodega", err)
	}

	return w, nil
}

func (r *WarehouseRepository) Update(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `UPDATE bodega SET direccion_bodega = $1, tipo = $2 WHERE bodega_id = $3 RETURNING bodega_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, w.Address, w.Type, w.ID).Scan(&w.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Warehouse{}, apperror.NewNotFoundError(
			fmt.Sprintf("Bodega con ID %d no encontrada", w.ID),
			map[string]interface{}{"bodega_id": w.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar bodega no DB.", err)
		return domain.Warehouse{}, apperror.NewDBError("actualizar parcialmente bodega", err)
	}

	r.logger.Info("Bodega atualizada com sucesso.", map[string]interface{}{"bodega_id": w.ID})
	return w, nil
}

func (r *WarehouseRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM bodega WHERE bodega_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar bodega do DB.", err)
		return apperror.NewDBError("eliminar bodega", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar bodega", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Bodega con ID %d no encontrada", id),
			map[string]interface{}{"bodega_id": id},
		)
	}

	r.logger.Info("Bodega deletada com sucesso.", map[string]interface{}{"bodega_id": id})
	return nil
}

func (r *WarehouseRepository) Search(ctx context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT bodega_id, direccion_bodega, tipo FROM bodega WHERE 1=1`
	args := []interface{}{}

	if filter.Address != nil {
		args = append(args, "%"+*filter.Address+"%")
		query += fmt.Sprintf(" AND direccion_bodega ILIKE $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND tipo = $%d", len(args))
	}

	args = append(args, filter.Page.Limit, filter.Page.Skip)
	query += fmt.Sprintf(" ORDER BY bodega_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar bodegas no DB.", err)
		return nil, apperror.NewDBError("buscar bodegas", err)
	}
	defer rows.Close()

	warehouses := []domain.Warehouse{}
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Address, &w.Type); err != nil {
			return nil, apperror.NewDBError("buscar bodegas", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar bodegas", err)
	}

	return warehouses, nil
}
