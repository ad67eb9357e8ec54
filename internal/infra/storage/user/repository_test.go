package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/pkg/ptr"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(10), "Анна Соколова", "a.sokolova@clinic.local", "doctor", "cardiology", true, now, now))

	u, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, u.Role)
	assert.Equal(t, "cardiology", *u.Specialty)
	assert.True(t, u.EligibleForRotation())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListEligibleDoctors(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM users WHERE .+ ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(10), "Анна Соколова", "a.sokolova@clinic.local", "doctor", "cardiology", true, now, now).
			AddRow(int64(11), "Пётр Волков", "p.volkov@clinic.local", "doctor", "cardiology", true, now, now))

	doctors, err := repo.ListEligibleDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, int64(10), doctors[0].ID)
	assert.Equal(t, int64(11), doctors[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateRole(t *testing.T) {
	tests := []struct {
		name      string
		role      domain.Role
		specialty *string
	}{
		{
			name:      "назначение врача со специальностью",
			role:      domain.RoleDoctor,
			specialty: ptr.Ptr("dermatology"),
		},
		{
			name: "понижение до пациента сбрасывает специальность",
			role: domain.RolePatient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)

			mock.ExpectExec("UPDATE users SET").
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UpdateRole(context.Background(), 10, tt.role, tt.specialty)
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SetActive_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), 99, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
