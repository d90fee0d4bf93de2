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

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

func newRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func requestRows(id, personnelCode string, status models.RequestStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "personnel_code", "national_id", "full_name", "phone", "gender", "district_code",
		"employment_field", "current_request_status", "approved_score", "rank_in_group", "total_in_group",
		"group_key", "source_opinion_transfer_type", "created_at", "updated_at",
	}).AddRow(id, personnelCode, "0012345678", "مریم احمدی", "09120000000", "female", "1205",
		"دبیر ریاضی", status, 87.5, 3, 42, "math-1205", nil, now, now)
}

func reasonRows(requestID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "request_id", "reason_id", "reason_title", "reason_code", "review_status",
		"expert_comment", "reviewed_at", "reviewer_role",
	}).AddRow("sr-1", requestID, "reason-1", "بیماری خاص", "R01", models.ReviewPending, nil, nil, nil)
}

func TestRequestRepositoryListAttachesReasons(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, personnel_code, national_id")).
		WithArgs("دبیر ریاضی").
		WillReturnRows(requestRows("req-1", "9001", models.StatusSourceReview))
	mock.ExpectQuery(regexp.QuoteMeta("FROM selected_reasons WHERE request_id IN")).
		WithArgs("req-1").
		WillReturnRows(reasonRows("req-1"))

	requests, err := repo.List(context.Background(), ServerFilter{EmploymentField: "دبیر ریاضی"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, "req-1", requests[0].ID)
	require.Len(t, requests[0].SelectedReasons, 1)
	require.Equal(t, models.ReviewPending, requests[0].SelectedReasons[0].ReviewStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM transfer_appeal_requests WHERE id =")).
		WithArgs("req-9").
		WillReturnRows(requestRows("req-9", "9002", models.StatusUserApproval))
	mock.ExpectQuery(regexp.QuoteMeta("FROM selected_reasons WHERE request_id IN")).
		WithArgs("req-9").
		WillReturnRows(reasonRows("req-9"))

	request, err := repo.GetByID(context.Background(), "req-9")
	require.NoError(t, err)
	require.Equal(t, "req-9", request.ID)
	require.Equal(t, models.StatusUserApproval, request.CurrentRequestStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositorySaveReasonReviews(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE selected_reasons")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transfer_appeal_requests SET current_request_status")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	final := models.StatusExceptionEligibilityApproval
	err := repo.SaveReasonReviews(context.Background(), "req-1",
		map[string]dto.ReasonReviewDraft{
			"reason-1": {Status: models.ReviewApproved, Comment: "مدارک کامل است"},
		},
		models.RoleDistrictReviewExpert, &final)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositorySaveReasonReviewsVanishedRequest(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE selected_reasons")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transfer_appeal_requests SET current_request_status")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	final := models.StatusExceptionEligibilityRejection
	err := repo.SaveReasonReviews(context.Background(), "req-gone",
		map[string]dto.ReasonReviewDraft{
			"reason-1": {Status: models.ReviewRejected},
		},
		models.RoleSchoolPrincipal, &final)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRequestRepositoryApplySourceOpinion(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transfer_appeal_requests")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transferType := models.TransferPermanent
	err := repo.ApplySourceOpinion(context.Background(), "req-1", models.StatusSourceApproval, &transferType)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE transfer_appeal_requests")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.ApplySourceOpinion(context.Background(), "req-gone", models.StatusSourceRejection, nil)
	require.ErrorIs(t, err, sql.ErrNoRows)
}
