package slot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/pkg/ptr"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO slots").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))

	s := &domain.Slot{
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Time:      types.TimeString("09:00"),
		Specialty: "cardiology",
		Status:    domain.StatusAvailable,
		Source:    domain.SourceGenerator,
		DoctorID:  ptr.Ptr(int64(10)),
	}

	created, err := repo.Create(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateTriple(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("INSERT INTO slots").
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	s := &domain.Slot{
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Time:      types.TimeString("09:00"),
		Specialty: "cardiology",
		Status:    domain.StatusAvailable,
		Source:    domain.SourceGenerator,
	}

	_, err := repo.Create(context.Background(), s)
	assert.ErrorIs(t, err, ErrSlotAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT .+ FROM slots").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(slotColumns))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_FilterByStatus(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Now()
	rows := sqlmock.NewRows(slotColumns).
		AddRow(int64(1), time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00", "cardiology",
			"available", "generator", int64(10), nil, nil, nil, now, now).
		AddRow(int64(2), time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "10:30", "cardiology",
			"available", "generator", int64(11), nil, nil, nil, now, now)

	mock.ExpectQuery("SELECT .+ FROM slots WHERE .+ ORDER BY slot_date ASC, slot_time ASC").
		WillReturnRows(rows)

	status := domain.StatusAvailable
	slots, err := repo.List(context.Background(), domain.SlotFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:00"), slots[0].Time)
	assert.Equal(t, int64(10), *slots[0].DoctorID)
	assert.Nil(t, slots[0].PatientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{
			name:         "успешное бронирование",
			rowsAffected: 1,
			wantErr:      nil,
		},
		{
			name:         "слот уже забронирован конкурентом",
			rowsAffected: 0,
			wantErr:      ErrPreconditionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)

			mock.ExpectExec("UPDATE slots SET").
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.Reserve(context.Background(), 1, 100, "Иван Петров")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Release_NotReserved(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE slots SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Release(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AssignDoctor_AlreadyAssigned(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE slots SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AssignDoctor(context.Background(), 5, 10)
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReassignSpecialty(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE slots SET").
		WillReturnResult(sqlmock.NewResult(0, 7))

	updated, err := repo.ReassignSpecialty(context.Background(), "cardiology", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountGeneratedDates(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountGeneratedDates(context.Background(), "cardiology")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MaxDate_Empty(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT MAX").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	maxDate, err := repo.MaxDate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, maxDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
