package statusrepo_test

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"goship/internal/domain"
	"goship/internal/pkg/logger"
	"goship/internal/repository/statusrepo"
)

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

// --- Testes para ListByShipment ---

func TestListByShipment_OrdersHistoryNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := statusrepo.NewStatusRepository(db, time.Second, newTestLogger())

	newer := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	older := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	desc := domain.InitialStatusDescription

	mock.ExpectQuery(`FROM estado_envio WHERE envio_id = \$1 ORDER BY fecha DESC`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"estado_envio_id", "envio_id", "estado", "descripcion", "fecha", "empleado_id",
		}).
			AddRow(int64(2), int64(5), string(domain.StatusInTransit), nil, newer, nil).
			AddRow(int64(1), int64(5), string(domain.StatusPending), desc, older, nil))

	statuses, err := repo.ListByShipment(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, statuses, 2)
	assert.Equal(t, domain.StatusInTransit, statuses[0].Status)
	assert.Equal(t, domain.StatusPending, statuses[1].Status)
	assert.True(t, statuses[0].Date.After(statuses[1].Date))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByShipment_EmptyHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := statusrepo.NewStatusRepository(db, time.Second, newTestLogger())

	mock.ExpectQuery(`FROM estado_envio WHERE envio_id = \$1 ORDER BY fecha DESC`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"estado_envio_id", "envio_id", "estado", "descripcion", "fecha", "empleado_id",
		}))

	statuses, err := repo.ListByShipment(context.Background(), 9)

	assert.NoError(t, err)
	assert.Empty(t, statuses)
	assert.NoError(t, mock.ExpectationsWereMet())
}
