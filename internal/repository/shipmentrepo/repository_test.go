package shipmentrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"goship/internal/domain"
	apperror "goship/internal/errors"
	"goship/internal/pkg/logger"
	"goship/internal/repository/shipmentrepo"
)

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

// --- Testes para Create ---

func TestCreate_Success_InsertsShipmentAndInitialStatusInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := shipmentrepo.NewShipmentRepository(db, time.Second, newTestLogger())

	shipDate := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO envio").
		WithArgs(int64(10), int64(20), int64(1), "ABCDEFGH123456789012").
		WillReturnRows(sqlmock.NewRows([]string{"envio_id", "fecha_envio"}).
			AddRow(int64(7), shipDate))
	mock.ExpectExec("INSERT INTO estado_envio").
		WithArgs(int64(7), string(domain.StatusPending), domain.InitialStatusDescription).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), domain.Shipment{
		OrderID:      10,
		AddressID:    20,
		MethodID:     1,
		TrackingCode: "ABCDEFGH123456789012",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, shipDate, created.ShipDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Fail_RollsBackWhenInitialStatusInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := shipmentrepo.NewShipmentRepository(db, time.Second, newTestLogger())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO envio").
		WithArgs(int64(10), int64(20), int64(1), "ABCDEFGH123456789012").
		WillReturnRows(sqlmock.NewRows([]string{"envio_id", "fecha_envio"}).
			AddRow(int64(7), time.Now()))
	mock.ExpectExec("INSERT INTO estado_envio").
		WillReturnError(errors.New("insert falhou"))
	mock.ExpectRollback()

	_, err = repo.Create(context.Background(), domain.Shipment{
		OrderID:      10,
		AddressID:    20,
		MethodID:     1,
		TrackingCode: "ABCDEFGH123456789012",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.DatabaseError{}, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Fail_NoCommitWhenShipmentInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := shipmentrepo.NewShipmentRepository(db, time.Second, newTestLogger())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO envio").
		WillReturnError(errors.New("conexão caiu"))
	mock.ExpectRollback()

	_, err = repo.Create(context.Background(), domain.Shipment{
		OrderID:      10,
		AddressID:    20,
		MethodID:     1,
		TrackingCode: "ABCDEFGH123456789012",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.DatabaseError{}, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
