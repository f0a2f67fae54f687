package shipmentrepo

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

// ShipmentRepository implementa as operações CRUD da tabela envio.
type ShipmentRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewShipmentRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ShipmentRepository {
	return &ShipmentRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const shipmentColumns = `envio_id, pedido_id, direccion_id, metodo_envio_id, fecha_envio, fecha_estimada_entrega, codigo_rastreo`

func scanShipment(row interface{ Scan(...interface{}) error }) (domain.Shipment, error) {
	var s domain.Shipment
	err := row.Scan(&s.ID, &s.OrderID, &s.AddressID, &s.MethodID, &s.ShipDate, &s.EstimatedDelivery, &s.TrackingCode)
	return s, err
}

func (r *ShipmentRepository) List(ctx context.Context, page domain.Page) ([]domain.Shipment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + shipmentColumns + ` FROM envio ORDER BY envio_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar envios no DB.", err)
		return nil, apperror.NewDBError("obtener envios", err)
	}
	defer rows.Close()

	shipments := []domain.Shipment{}
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, apperror.NewDBError("obtener envios", err)
		}
		shipments = append(shipments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener envios", err)
	}

	return shipments, nil
}

// Create insere o envio e o seu estado inicial "pendiente" na mesma
// transação. Ou ambos entram, ou nenhum.
func (r *ShipmentRepository) Create(ctx context.Context, s domain.Shipment) (domain.Shipment, error) {
	r.logger.Debug("Iniciando Create de envio no repositório.", map[string]interface{}{"pedido_id": s.OrderID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao abrir transação para criar envio.", err)
		return domain.Shipment{}, apperror.NewDBError("crear envio", err)
	}
	defer tx.Rollback()

	insertShipment := `
        INSERT INTO envio (pedido_id, direccion_id, metodo_envio_id, codigo_rastreo)
        VALUES ($1, $2, $3, $4)
        RETURNING envio_id, fecha_envio`

	err = tx.QueryRowContext(ctxTimeout, insertShipment,
		s.OrderID, s.AddressID, s.MethodID, s.TrackingCode,
	).Scan(&s.ID, &s.ShipDate)
	if err != nil {
		r.logger.Error("Falha ao inserir envio no DB.", err)
		return domain.Shipment{}, apperror.NewDBError("crear envio", err)
	}

	insertStatus := `
        INSERT INTO estado_envio (envio_id, estado, descripcion)
        VALUES ($1, $2, $3)`

	if _, err := tx.ExecContext(ctxTimeout, insertStatus,
		s.ID, domain.StatusPending, domain.InitialStatusDescription,
	); err != nil {
		r.logger.Error("Falha ao inserir estado inicial do envio no DB.", err)
		return domain.Shipment{}, apperror.NewDBError("crear envio", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao confirmar transação de criação de envio.", err)
		return domain.Shipment{}, apperror.NewDBError("crear envio", err)
	}

	r.logger.Info("Envio criado com sucesso.", map[string]interface{}{"envio_id": s.ID, "codigo_rastreo": s.TrackingCode})
	return s, nil
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id int64) (domain.Shipment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + shipmentColumns + ` FROM envio WHERE envio_id = $1`

	s, err := scanShipment(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Shipment{}, apperror.NewNotFoundError(
			fmt.Sprintf("Envío con ID %d no encontrado", id),
			map[string]interface{}{"envio_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar envio no DB.", err)
		return domain.Shipment{}, apperror.NewDBError("obtener envio", err)
	}

	return s, nil
}

// FindByTrackingCode resolve o rastreamento público.
func (r *ShipmentRepository) FindByTrackingCode(ctx context.Context, code string) (domain.Shipment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + shipmentColumns + ` FROM envio WHERE codigo_rastreo = $1`

	s, err := scanShipment(r.DB.QueryRowContext(ctxTimeout, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Shipment{}, apperror.NewNotFoundError(
			fmt.Sprintf("Código de rastreo %s no encontrado", code),
			map[string]interface{}{"tracking_code": code},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar envio por codigo de rastreo no DB.", err)
		return domain.Shipment{}, apperror.NewDBError("rastrear envio", err)
	}

	return s, nil
}

// ExistsByTrackingCode verifica colisão antes de aceitar um código gerado.
func (r *ShipmentRepository) ExistsByTrackingCode(ctx context.Context, code string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM envio WHERE codigo_rastreo = $1)`

	if err := r.DB.QueryRowContext(ctxTimeout, query, code).Scan(&exists); err != nil {
		r.logger.Error("Falha ao verificar codigo de rastreo no DB.", err)
		return false, apperror.NewDBError("crear envio", err)
	}

	return exists, nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s domain.Shipment) (domain.Shipment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE envio
        SET pedido_id = $1, direccion_id = $2, metodo_envio_id = $3,
            fecha_envio = $4, fecha_estimada_entrega = $5, codigo_rastreo = $6
        WHERE envio_id = $7
        RETURNING envio_id`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		s.OrderID, s.AddressID, s.MethodID, s.ShipDate, s.EstimatedDelivery, s.TrackingCode, s.ID,
	).Scan(&s.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Shipment{}, apperror.NewNotFoundError(
			fmt.Sprintf("Envío con ID %d no encontrado", s.ID),
			map[string]interface{}{"envio_id": s.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar envio no DB.", err)
		return domain.Shipment{}, apperror.NewDBError("actualizar parcialmente envio", err)
	}

	r.logger.Info("Envio atualizado com sucesso.", map[string]interface{}{"envio_id": s.ID})
	return s, nil
}

func (r *ShipmentRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM envio WHERE envio_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar envio do DB.", err)
		return apperror.NewDBError("eliminar envio", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar envio", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Envío con ID %d no encontrado", id),
			map[string]interface{}{"envio_id": id},
		)
	}

	r.logger.Info("Envio deletado com sucesso.", map[string]interface{}{"envio_id": id})
	return nil
}

func (r *ShipmentRepository) Search(ctx context.Context, filter domain.ShipmentFilter) ([]domain.Shipment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + shipmentColumns + ` FROM envio WHERE 1=1`
	args := []interface{}{}

	if filter.OrderID != nil {
		args = append(args, *filter.OrderID)
		query += fmt.Sprintf(" AND pedido_id = $%d", len(args))
	}
	if filter.AddressID != nil {
		args = append(args, *filter.AddressID)
		query += fmt.Sprintf(" AND direccion_id = $%d", len(args))
	}
	if filter.MethodID != nil {
		args = append(args, *filter.MethodID)
		query += fmt.Sprintf(" AND metodo_envio_id = $%d", len(args))
	}
	if filter.ShipDateFrom != nil {
		args = append(args, *filter.ShipDateFrom)
		query += fmt.Sprintf(" AND fecha_envio >= $%d", len(args))
	}
	if filter.ShipDateTo != nil {
		args = append(args, *filter.ShipDateTo)
		query += fmt.Sprintf(" AND fecha_envio <= $%d", len(args))
	}
	if filter.EstimatedDeliveryFrom != nil {
		args = append(args, *filter.EstimatedDeliveryFrom)
		query += fmt.Sprintf(" AND fecha_estimada_entrega >= $%d", len(args))
	}
	if filter.EstimatedDeliveryTo != nil {
		args = append(args, *filter.EstimatedDeliveryTo)
		query += fmt.Sprintf(" AND fecha_estimada_entrega <= $%d", len(args))
	}
	if filter.TrackingCode != nil {
		args = append(args, "%"+*filter.TrackingCode+"%")
		query += fmt.Sprintf(" AND codigo_rastreo ILIKE $%d", len(args))
	}

	args = append(args, filter.Page.Limit, filter.Page.Skip)
	query += fmt.Sprintf(" ORDER BY envio_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar envios no DB.", err)
		return nil, apperror.NewDBError("buscar envios", err)
	}
	defer rows.Close()

	shipments := []domain.Shipment{}
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, apperror.NewDBError("buscar envios", err)
		}
		shipments = append(shipments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar envios", err)
	}

	return shipments, nil
}
