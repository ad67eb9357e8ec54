package reserve_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/Clinic-AppointmentService/pkg/ptr"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

type fakeSlotRepo struct {
	slots      map[int64]*domain.Slot
	reserveErr error
}

func (r *fakeSlotRepo) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.slots {
		if filter.Specialty != nil && s.Specialty != *filter.Specialty {
			continue
		}
		if filter.Date != nil && !s.Date.Equal(*filter.Date) {
			continue
		}
		if filter.Time != nil && s.Time != *filter.Time {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSlotRepo) Reserve(_ context.Context, id int64, patientID int64, patientName string) error {
	if r.reserveErr != nil {
		return r.reserveErr
	}
	s := r.slots[id]
	s.Status = domain.StatusReserved
	s.PatientID = &patientID
	s.PatientName = &patientName
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func availableSlot(id int64) *domain.Slot {
	return &domain.Slot{
		ID:        id,
		Date:      monday,
		Time:      types.TimeString("09:00"),
		Specialty: "cardiology",
		Status:    domain.StatusAvailable,
		Source:    domain.SourceGenerator,
		DoctorID:  ptr.Ptr(int64(10)),
	}
}

func validRequest() *Request {
	return &Request{
		Specialty:   "cardiology",
		Date:        monday,
		Time:        types.TimeString("09:00"),
		PatientID:   100,
		PatientName: "Иван Петров",
	}
}

func TestUseCase_Execute(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{1: availableSlot(1)}}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.SlotID)
	assert.Equal(t, int64(10), *resp.DoctorID)

	s := repo.slots[1]
	assert.Equal(t, domain.StatusReserved, s.Status)
	assert.Equal(t, int64(100), *s.PatientID)
	assert.Equal(t, "Иван Петров", *s.PatientName)
}

func TestUseCase_Execute_NoSlotAvailable(t *testing.T) {
	taken := availableSlot(1)
	taken.Status = domain.StatusReserved
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{1: taken}}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestUseCase_Execute_LostRace(t *testing.T) {
	// Слот виден при чтении, но условное обновление не проходит:
	// конкурент успел забронировать первым
	repo := &fakeSlotRepo{
		slots:      map[int64]*domain.Slot{1: availableSlot(1)},
		reserveErr: slotRepo.ErrPreconditionFailed,
	}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "пустая специальность", mutate: func(r *Request) { r.Specialty = "" }},
		{name: "нулевая дата", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "пустое время", mutate: func(r *Request) { r.Time = "" }},
		{name: "некорректное время", mutate: func(r *Request) { r.Time = "25:99" }},
		{name: "нулевой пациент", mutate: func(r *Request) { r.PatientID = 0 }},
		{name: "пустое имя пациента", mutate: func(r *Request) { r.PatientName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{1: availableSlot(1)}}
			uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
