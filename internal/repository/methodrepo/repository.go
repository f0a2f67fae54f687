package methodrepo

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

// MethodRepository implementa as operações CRUD da tabela metodo_envio.
type MethodRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewMethodRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *MethodRepository {
	return &MethodRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const methodColumns = `metodo_envio_id, tipo, descripcion, tiempo_estimado, costo`

func scanMethod(row interface{ Scan(...interface{}) error }) (domain.ShippingMethod, error) {
	var m domain.ShippingMethod
	err := row.Scan(&m.ID, &m.Type, &m.Description, &m.EstimatedDays, &m.Cost)
	return m, err
}

func (r *MethodRepository) List(ctx context.Context, page domain.Page) ([]domain.ShippingMethod, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + methodColumns + ` FROM metodo_envio ORDER BY metodo_envio_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar metodos de envio no DB.", err)
		return nil, apperror.NewDBError("obtener metodos de envio", err)
	}
	defer rows.Close()

	methods := []domain.ShippingMethod{}
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, apperror.NewDBError("obtener metodos de envio", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener metodos de envio", err)
	}

	return methods, nil
}

func (r *MethodRepository) Create(ctx context.Context, m domain.ShippingMethod) (domain.ShippingMethod, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO metodo_envio (tipo, descripcion, tiempo_estimado, costo)
        VALUES ($1, $2, $3, $4)
        RETURNING metodo_envio_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, m.Type, m.Description, m.EstimatedDays, m.Cost).Scan(&m.ID)
	if err != nil {
		r.logger.Error("Falha ao inserir metodo de envio no DB.", err)
		return domain.ShippingMethod{}, apperror.NewDBError("crear metodo de envio", err)
	}

	r.logger.Info("Metodo de envio criado com sucesso.", map[string]interface{}{"metodo_envio_id": m.ID})
	return m, nil
}

func (r *MethodRepository) FindByID(ctx context.Context, id int64) (domain.ShippingMethod, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + methodColumns + ` FROM metodo_envio WHERE metodo_envio_id = $1`

	m, err := scanMethod(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShippingMethod{}, apperror.NewNotFoundError(
			fmt.Sprintf("Método de envío con ID %d no encontrado", id),
			map[string]interface{}{"metodo_envio_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar metodo de envio no DB.", err)
		return domain.ShippingMethod{}, apperror.NewDBError("obtener metodo de envio", err)
	}

	return m, nil
}

func (r *MethodRepository) Update(ctx context.Context, m domain.ShippingMethod) (domain.ShippingMethod, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE metodo_envio
        SET tipo = $1, descripcion = $2, tiempo_estimado = $3, costo = $4
        WHERE metodo_envio_id = $5
        RETURNING metodo_envio_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, m.Type, m.Description, m.EstimatedDays, m.Cost, m.ID).Scan(&m.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShippingMethod{}, apperror.NewNotFoundError(
			fmt.Sprintf("Método de envío con ID %d no encontrado", m.ID),
			map[string]interface{}{"metodo_envio_id": m.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar metodo de envio no DB.", err)
		return domain.ShippingMethod{}, apperror.NewDBError("actualizar parcialmente metodo de envio", err)
	}

	r.logger.Info("Metodo de envio atualizado com sucesso.", map[string]interface{}{"metodo_envio_id": m.ID})
	return m, nil
}

func (r *MethodRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM metodo_envio WHERE metodo_envio_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar metodo de envio do DB.", err)
		return apperror.NewDBError("eliminar metodo de envio", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar metodo de envio", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Método de envío con ID %d no encontrado", id),
			map[string]interface{}{"metodo_envio_id": id},
		)
	}

	r.logger.Info("Metodo de envio deletado com sucesso.", map[string]interface{}{"metodo_envio_id": id})
	return nil
}

// Search aplica filtros por tipo, substring de descricao e faixas numéricas.
func (r *MethodRepository) Search(ctx context.Context, filter domain.ShippingMethodFilter) ([]domain.ShippingMethod, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + methodColumns + ` FROM metodo_envio WHERE 1=1`
	args := []interface{}{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND tipo = $%d", len(args))
	}
	if filter.Description != nil {
		args = append(args, "%"+*filter.Description+"%")
		query += fmt.Sprintf(" AND descripcion ILIKE $%d", len(args))
	}
	if filter.EstimatedDaysMin != nil {
		args = append(args, *filter.EstimatedDaysMin)
		query += fmt.Sprintf(" AND tiempo_estimado >= $%d", len(args))
	}
	if filter.EstimatedDaysMax != nil {
		args = append(args, *filter.EstimatedDaysMax)
		query += fmt.Sprintf(" AND tiempo_estimado <= $%d", len(args))
	}
	if filter.CostMin != nil {
		args = append(args, *filter.CostMin)
		query += fmt.Sprintf(" AND costo >= $%d", len(args))
	}
	if filter.CostMax != nil {
		args = append(args, *filter.CostMax)
		query += fmt.Sprintf(" AND costo <= $%d", len(args))
	}

	args = append(args, filter.Page.Limit, filter.Page.Skip)
	query += fmt.Sprintf(" ORDER BY metodo_envio_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar metodos de envio no DB.", err)
		return nil, apperror.NewDBError("buscar metodos de envio", err)
	}
	defer rows.Close()

	methods := []domain.ShippingMethod{}
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, apperror.NewDBError("buscar metodos de envio", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar metodos de envio", err)
	}

	return methods, nil
}
