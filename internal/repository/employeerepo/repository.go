package employeerepo

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

// EmployeeRepository implementa as operações CRUD da tabela empleado.
type EmployeeRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewEmployeeRepository cria e retorna uma nova instância do repositório.
func NewEmployeeRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *EmployeeRepository {
	return &EmployeeRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const employeeColumns = `empleado_id, nombre, apellido1, apellido2, telefono, email, puesto, area, contrasena`

func scanEmployee(row interface{ Scan(...interface{}) error }) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(&e.ID, &e.Name, &e.LastName1, &e.LastName2, &e.Phone, &e.Email, &e.Position, &e.Area, &e.PasswordHash)
	return e, err
}

// List retorna uma página de empleados em ordem de inserção.
func (r *EmployeeRepository) List(ctx context.Context, page domain.Page) ([]domain.Employee, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM empleado ORDER BY empleado_id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Skip)
	if err != nil {
		r.logger.Error("Falha ao listar empleados no DB.", err)
		return nil, apperror.NewDBError("obtener empleados", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear empleado na listagem.", err)
			return nil, apperror.NewDBError("obtener empleados", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("obtener empleados", err)
	}

	return employees, nil
}

// Create insere um novo empleado (a contrasena já chega hasheada).
func (r *EmployeeRepository) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	r.logger.Debug("Iniciando Create de empleado no repositório.", map[string]interface{}{"email": e.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO empleado (nombre, apellido1, apellido2, telefono, email, puesto, area, contrasena)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING empleado_id`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		e.Name, e.LastName1, e.LastName2, e.Phone, e.Email, e.Position, e.Area, e.PasswordHash,
	).Scan(&e.ID)
	if err != nil {
		r.logger.Error("Falha ao inserir empleado no DB.", err)
		return domain.Employee{}, apperror.NewDBError("crear empleado", err)
	}

	r.logger.Info("Empleado criado com sucesso.", map[string]interface{}{"empleado_id": e.ID})
	return e, nil
}

// FindByID busca um empleado pelo ID.
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM empleado WHERE empleado_id = $1`

	e, err := scanEmployee(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, apperror.NewNotFoundError(
			fmt.Sprintf("Empleado con ID %d no encontrado", id),
			map[string]interface{}{"empleado_id": id},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar empleado no DB.", err)
		return domain.Employee{}, apperror.NewDBError("obtener empleado", err)
	}

	return e, nil
}

// FindByEmail busca um empleado pelo email (usado no login).
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (domain.Employee, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM empleado WHERE email = $1`

	e, err := scanEmployee(r.DB.QueryRowContext(ctxTimeout, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, apperror.NewNotFoundError(
			fmt.Sprintf("Empleado con email %s no encontrado", email), nil,
		)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar empleado por email no DB.", err)
		return domain.Employee{}, apperror.NewDBError("iniciar sesión", err)
	}

	return e, nil
}

// Update sobrescreve a linha inteira; o merge parcial acontece no serviço.
func (r *EmployeeRepository) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE empleado
        SET nombre = $1, apellido1 = $2, apellido2 = $3, telefono = $4,
            email = $5, puesto = $6, area = $7, contrasena = $8
        WHERE empleado_id = $9
        RETURNING empleado_id`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		e.Name, e.LastName1, e.LastName2, e.Phone, e.Email, e.Position, e.Area, e.PasswordHash, e.ID,
	).Scan(&e.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, apperror.NewNotFoundError(
			fmt.Sprintf("Empleado con ID %d no encontrado", e.ID),
			map[string]interface{}{"empleado_id": e.ID},
		)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar empleado no DB.", err)
		return domain.Employee{}, apperror.NewDBError("actualizar parcialmente empleado", err)
	}

	r.logger.Info("Empleado atualizado com sucesso.", map[string]interface{}{"empleado_id": e.ID})
	return e, nil
}

// Delete remove um empleado pelo ID (exclusão definitiva).
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM empleado WHERE empleado_id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar empleado do DB.", err)
		return apperror.NewDBError("eliminar empleado", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("eliminar empleado", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(
			fmt.Sprintf("Empleado con ID %d no encontrado", id),
			map[string]interface{}{"empleado_id": id},
		)
	}

	r.logger.Info("Empleado deletado com sucesso.", map[string]interface{}{"empleado_id": id})
	return nil
}

// Search aplica os filtros opcionais e retorna a página correspondente.
// Strings usam ILIKE por substring; enums usam igualdade.
func (r *EmployeeRepository) Search(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM empleado WHERE 1=1`
	args := []interface{}{}

	if filter.Name != nil {
		args = append(args, "%"+*filter.Name+"%")
		query += fmt.Sprintf(" AND nombre ILIKE $%d", len(args))
	}
	if filter.LastName1 != nil {
		args = append(args, "%"+*filter.LastName1+"%")
		query += fmt.Sprintf(" AND apellido1 ILIKE $%d", len(args))
	}
	if filter.LastName2 != nil {
		args = append(args, "%"+*filter.LastName2+"%")
		query += fmt.Sprintf(" AND apellido2 ILIKE $%d", len(args))
	}
	if filter.Email != nil {
		args = append(args, "%"+*filter.Email+"%")
		query += fmt.Sprintf(" AND email ILIKE $%d", len(args))
	}
	if filter.Position != nil {
		args = append(args, *filter.Position)
		query += fmt.Sprintf(" AND puesto = $%d", len(args))
	}
	if filter.Area != nil {
		args = append(args, *filter.Area)
		query += fmt.Sprintf(" AND area = $%d", len(args))
	}

	args = append(args, filter.Page.Limit, filter.Page.Skip)
	query += fmt.Sprintf(" ORDER BY empleado_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar empleados no DB.", err)
		return nil, apperror.NewDBError("buscar empleados", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, apperror.NewDBError("buscar empleados", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("buscar empleados", err)
	}

	return employees, nil
}
