package statusrepo

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

// StatusRepository implementa as operações CRUD da tabela estado_envio.
type StatusRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewStatusRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *StatusRepository {
	return &StatusRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const statusColumns = `estado_envio_id, envio_id, estado, descripcion, fecha, empleado_id`

func scanStatus(row interface{ Scan(...interface{}) error }) (domain.ShipmentStatus, error) {
	var s domain.ShipmentStatus
	err := row.Scan(&s.ID, &s.ShipmentID, &s.Status, &s.Description, &s.Date, &s.EmployeeID)
	return s, err
}

func (r *StatusRepository) List(ctx context.Context, page domain.Page) ([]domain.ShipmentStatus, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + statusColumns + ` FROM estado_envio ORDER BY estado_envio_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar estados de envio no DB.", err)
		return nil, apperror.NewDBError("obtener estados de envio", err)
	}
	defer rows.Close()

	statuses := []domain.ShipmentStatus{}
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, apperror.NewDBError("obtener estados de envio", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener estados de envio", err)
	}

	return statuses, nil
}

// ListByShipment retorna o histórico de um envio, do mais recente para o
// mais antigo. Usado pelo rastreamento público.
func (r *StatusRepository) ListByShipment(ctx context.Context, shipmentID int64) ([]domain.ShipmentStatus, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + statusColumns + ` FROM estado_envio WHERE envio_id = $1 ORDER BY fecha DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, shipmentID)
	if err != nil {
		r.logger.Error("Falha ao listar historico do envio no DB.", err)
		return nil, apperror.NewDBError("rastrear envio", err)
	}
	defer rows.Close()

	statuses := []domain.ShipmentStatus{}
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, apperror.NewDBError("rastrear envio", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("rastrear envio", err)
	}

	return statuses, nil
}

func (r *StatusRepository) Create(ctx context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO estado_envio (envio_id, estado, descripcion, empleado_id)
        VALUES ($1, $2, $3, $4)
        RETURNING estado_envio_id, fecha`

	err := r.DB.QueryRowContext(ctxTimeout, query, s.ShipmentID, s.Status, s.Description, s.EmployeeID).Scan(&s.ID, &s.Date)
	if err != nil {
		r.logger.Error("Falha ao inserir estado de envio no DB.", err)
		return domain.ShipmentStatus{}, apperror.NewDBError("crear estado de envio", err)
	}

	r.logger.Info("Estado de envio criado com sucesso.", map[string]interface{}{"estado_envio_id": s.ID})
	return s, nil
}

func (r *StatusRepository) FindByID(ctx context.Context, id int64) (domain.ShipmentStatus, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + statusColumns + ` FROM estado_envio WHERE estado_envio_id = $1`

	s, err := scanStatus(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShipmentStatus{}, apperror.NewNotFoundError(
			fmt.Sprintf("Estado de envío con ID %d no encontrado", id),
			map[string]interface{}{"estado_envio_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar estado de envio no DB.", err)
		return domain.ShipmentStatus{}, apperror.NewDBError("obtener estado de envio", err)
	}

	return s, nil
}

func (r *StatusRepository) Update(ctx context.Context, s domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE estado_envio
        SET envio_id = $1, estado = $2, descripcion = $3, fecha = $4, empleado_id = $5
        WHERE estado_envio_id = $6
        RETURNING estado_envio_id`

	err := r.DB.QueryRowContext(ctxTimeout, query, s.ShipmentID, s.Status, s.Description, s.Date, s.EmployeeID, s.ID).Scan(&s.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShipmentStatus{}, apperror.NewNotFoundError(
			fmt.Sprintf("Estado de envío con ID %d no encontrado", s.ID),
			map[string]interface{}{"estado_envio_id": s.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar estado de envio no DB.", err)
		return domain.ShipmentStatus{}, apperror.NewDBError("actualizar parcialmente estado de envio", err)
	}

	r.logger.Info("Estado de envio atualizado com sucesso.", map[string]interface{}{"estado_envio_id": s.ID})
	return s, nil
}

func (r *StatusRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM estado_envio WHERE estado_envio_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar estado de envio do DB.", err)
		return apperror.NewDBError("eliminar estado de envio", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar estado de envio", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Estado de envío con ID %d no encontrado", id),
			map[string]interface{}{"estado_envio_id": id},
		)
	}

	r.logger.Info("Estado de envio deletado com sucesso.", map[string]interface{}{"estado_envio_id": id})
	return nil
}

func (r *StatusRepository) Search(ctx context.Context, filter domain.ShipmentStatusFilter) ([]domain.ShipmentStatus, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + statusColumns + ` FROM estado_envio WHERE 1=1`
	args := []interface{}{}

	if filter.ShipmentID != nil {
		args = append(args, *filter.ShipmentID)
		query += fmt.Sprintf(" AND envio_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND empleado_id = $%d", len(args))
	}
	if filter.Description != nil {
		args = append(args, "%"+*filter.Description+"%")
		query += fmt.Sprintf(" AND descripcion ILIKE $%d", len(args))
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
	query += fmt.Sprintf(" ORDER BY estado_envio_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar estados de envio no DB.", err)
		return nil, apperror.NewDBError("buscar estados de envio", err)
	}
	defer rows.Close()

	statuses := []domain.ShipmentStatus{}
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, apperror.NewDBError("buscar estados de envio", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar estados de envio", err)
	}

	return statuses, nil
}
