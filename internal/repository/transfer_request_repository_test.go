package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

func newTransferRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTransferRequestRepositoryListByDirection(t *testing.T) {
	db, mock, cleanup := newTransferRequestRepoMock(t)
	defer cleanup()

	repo := NewTransferRequestRepository(db)
	rows := sqlmock.NewRows([]string{
		"id", "direction", "status", "full_name", "national_id", "phone", "from_district",
		"to_district", "description", "response_description", "responded_by", "responded_at", "created_at",
	}).AddRow("tr-1", "out", "pending", "علی رضایی", "0098765432", "09350000000", "1205",
		"1310", "انتقال به دلیل سکونت همسر", nil, nil, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM transfer_requests WHERE direction =")).
		WithArgs(models.TransferRequestOutgoing).
		WillReturnRows(rows)

	requests, err := repo.ListByDirection(context.Background(), models.TransferRequestOutgoing)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, models.TransferRequestPending, requests[0].Status)
	require.True(t, requests[0].RequiresPIIMasking())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRequestRepositoryRespond(t *testing.T) {
	db, mock, cleanup := newTransferRequestRepoMock(t)
	defer cleanup()

	repo := NewTransferRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transfer_requests")).
		WithArgs(models.TransferRequestApproved, "با انتقال موافقت شد", "user-1", sqlmock.AnyArg(), "tr-1", models.TransferRequestPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Respond(context.Background(), "tr-1", models.TransferRequestApproved, "با انتقال موافقت شد", "user-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRequestRepositoryRespondAlreadyDecided(t *testing.T) {
	db, mock, cleanup := newTransferRequestRepoMock(t)
	defer cleanup()

	repo := NewTransferRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transfer_requests")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Respond(context.Background(), "tr-1", models.TransferRequestRejected, "", "user-2")
	require.ErrorIs(t, err, sql.ErrNoRows)
}
