package repair_assignments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/pkg/ptr"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

type fakeSlotRepo struct {
	unassigned []*domain.Slot
	assigned   map[int64]int64 // slotID -> doctorID
	assignErr  map[int64]error
}

func (r *fakeSlotRepo) ListUnassigned(_ context.Context) ([]*domain.Slot, error) {
	return r.unassigned, nil
}

func (r *fakeSlotRepo) AssignDoctor(_ context.Context, id int64, doctorID int64) error {
	if err := r.assignErr[id]; err != nil {
		return err
	}
	if r.assigned == nil {
		r.assigned = make(map[int64]int64)
	}
	r.assigned[id] = doctorID
	return nil
}

type fakeUserRepo struct {
	doctors []*domain.User
}

func (r *fakeUserRepo) ListEligibleDoctors(_ context.Context) ([]*domain.User, error) {
	return r.doctors, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func unassignedSlot(id int64, specialty string, day int, gridTime string) *domain.Slot {
	return &domain.Slot{
		ID:        id,
		Date:      time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC),
		Time:      types.TimeString(gridTime),
		Specialty: specialty,
		Status:    domain.StatusAvailable,
		Source:    domain.SourceGenerator,
	}
}

func doctor(id int64, specialty string) *domain.User {
	return &domain.User{
		ID:        id,
		Role:      domain.RoleDoctor,
		Active:    true,
		Specialty: ptr.Ptr(specialty),
	}
}

func TestUseCase_Execute_RotatesPerSlot(t *testing.T) {
	// Три слота одной специальности, два врача: смещение растёт
	// на каждый слот, поэтому назначения чередуются
	repo := &fakeSlotRepo{
		unassigned: []*domain.Slot{
			unassignedSlot(1, "cardiology", 7, "09:00"),
			unassignedSlot(2, "cardiology", 7, "10:30"),
			unassignedSlot(3, "cardiology", 8, "09:00"),
		},
	}
	users := &fakeUserRepo{doctors: []*domain.User{doctor(10, "cardiology"), doctor(11, "cardiology")}}
	uc := NewUseCase(repo, users, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Assigned)
	assert.Equal(t, 0, resp.Skipped)

	assert.Equal(t, int64(10), repo.assigned[1])
	assert.Equal(t, int64(11), repo.assigned[2])
	assert.Equal(t, int64(10), repo.assigned[3])
}

func TestUseCase_Execute_IndependentOffsetsPerSpecialty(t *testing.T) {
	repo := &fakeSlotRepo{
		unassigned: []*domain.Slot{
			unassignedSlot(1, "cardiology", 7, "09:00"),
			unassignedSlot(2, "dermatology", 7, "09:00"),
			unassignedSlot(3, "cardiology", 7, "10:30"),
		},
	}
	users := &fakeUserRepo{doctors: []*domain.User{
		doctor(10, "cardiology"),
		doctor(11, "cardiology"),
		doctor(20, "dermatology"),
	}}
	uc := NewUseCase(repo, users, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Assigned)

	assert.Equal(t, int64(10), repo.assigned[1])
	assert.Equal(t, int64(20), repo.assigned[2])
	assert.Equal(t, int64(11), repo.assigned[3])
}

func TestUseCase_Execute_SkipsSpecialtyWithoutDoctors(t *testing.T) {
	repo := &fakeSlotRepo{
		unassigned: []*domain.Slot{
			unassignedSlot(1, "cardiology", 7, "09:00"),
			unassignedSlot(2, "neurology", 7, "09:00"),
		},
	}
	users := &fakeUserRepo{doctors: []*domain.User{doctor(10, "cardiology")}}
	uc := NewUseCase(repo, users, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Assigned)
	assert.Equal(t, 1, resp.Skipped)

	_, neurologyAssigned := repo.assigned[2]
	assert.False(t, neurologyAssigned)
}

func TestUseCase_Execute_NothingToRepair(t *testing.T) {
	repo := &fakeSlotRepo{}
	users := &fakeUserRepo{doctors: []*domain.User{doctor(10, "cardiology")}}
	uc := NewUseCase(repo, users, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Assigned)
	assert.Equal(t, 0, resp.Skipped)
}
