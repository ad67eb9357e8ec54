package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
	"github.com/m04kA/Clinic-AppointmentService/pkg/ptr"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

type fakeSlotRepo struct {
	slots      map[int64]*domain.Slot
	nextID     int64
	reassigned int64
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[int64]*domain.Slot)}
	for _, s := range slots {
		r.slots[s.ID] = s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	for _, existing := range r.slots {
		if domain.TripleOf(existing.Date, existing.Time, existing.Specialty) ==
			domain.TripleOf(s.Date, s.Time, s.Specialty) {
			return nil, slotRepo.ErrSlotAlreadyExists
		}
	}
	r.nextID++
	s.ID = r.nextID
	r.slots[s.ID] = s
	return s, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.slots {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.Specialty != nil && s.Specialty != *filter.Specialty {
			continue
		}
		if filter.DoctorID != nil && (s.DoctorID == nil || *s.DoctorID != *filter.DoctorID) {
			continue
		}
		if filter.PatientID != nil && (s.PatientID == nil || *s.PatientID != *filter.PatientID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, id int64) error {
	s := r.slots[id]
	if s.Status != domain.StatusReserved {
		return slotRepo.ErrPreconditionFailed
	}
	s.Status = domain.StatusAvailable
	s.PatientID = nil
	s.PatientName = nil
	return nil
}

func (r *fakeSlotRepo) CancelRequest(_ context.Context, id int64) error {
	s := r.slots[id]
	if s.Status != domain.StatusPending {
		return slotRepo.ErrPreconditionFailed
	}
	s.Status = domain.StatusCancelled
	return nil
}

func (r *fakeSlotRepo) MarkAttended(_ context.Context, id int64, note *string) error {
	s := r.slots[id]
	if s.Status != domain.StatusReserved {
		return slotRepo.ErrPreconditionFailed
	}
	s.Status = domain.StatusAttended
	if note != nil {
		s.Note = note
	}
	return nil
}

func (r *fakeSlotRepo) SetNote(_ context.Context, id int64, note string) error {
	s, ok := r.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.Note = &note
	return nil
}

func (r *fakeSlotRepo) UpdateField(_ context.Context, id int64, edit domain.FieldEdit) error {
	if _, ok := r.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	return nil
}

func (r *fakeSlotRepo) ReassignSpecialty(_ context.Context, specialty string, doctorID int64) (int64, error) {
	var updated int64
	for _, s := range r.slots {
		if s.Specialty != specialty {
			continue
		}
		if s.DoctorID != nil && *s.DoctorID == doctorID {
			continue
		}
		s.DoctorID = &doctorID
		updated++
	}
	r.reassigned = updated
	return updated, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func reservedSlot(id int64) *domain.Slot {
	return &domain.Slot{
		ID:          id,
		Date:        monday,
		Time:        types.TimeString("09:00"),
		Specialty:   "cardiology",
		Status:      domain.StatusReserved,
		Source:      domain.SourceGenerator,
		DoctorID:    ptr.Ptr(int64(10)),
		PatientID:   ptr.Ptr(int64(100)),
		PatientName: ptr.Ptr("Иван Петров"),
	}
}

func pendingSlot(id int64) *domain.Slot {
	return &domain.Slot{
		ID:          id,
		Date:        monday,
		Time:        types.TimeString("10:30"),
		Specialty:   "cardiology",
		Status:      domain.StatusPending,
		Source:      domain.SourcePatient,
		PatientID:   ptr.Ptr(int64(100)),
		PatientName: ptr.Ptr("Иван Петров"),
	}
}

func newTestService(repo *fakeSlotRepo, users map[int64]*domain.User) *Service {
	return NewService(repo, &fakeUserRepo{users: users}, nopLogger{})
}

func TestService_Cancel_ReservedRevertsToAvailable(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(1))
	svc := newTestService(repo, nil)

	err := svc.Cancel(context.Background(), 1, models.Actor{UserID: 100, Role: domain.RolePatient})
	require.NoError(t, err)

	s := repo.slots[1]
	assert.Equal(t, domain.StatusAvailable, s.Status)
	assert.Nil(t, s.PatientID)
	assert.Nil(t, s.PatientName)
	// Назначение врача сохраняется
	assert.Equal(t, int64(10), *s.DoctorID)
}

func TestService_Cancel_PendingBecomesCancelled(t *testing.T) {
	repo := newFakeSlotRepo(pendingSlot(1))
	svc := newTestService(repo, nil)

	err := svc.Cancel(context.Background(), 1, models.Actor{UserID: 100, Role: domain.RolePatient})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, repo.slots[1].Status)
}

func TestService_Cancel_Access(t *testing.T) {
	tests := []struct {
		name    string
		actor   models.Actor
		wantErr error
	}{
		{name: "свой пациент", actor: models.Actor{UserID: 100, Role: domain.RolePatient}},
		{name: "назначенный врач", actor: models.Actor{UserID: 10, Role: domain.RoleDoctor}},
		{name: "администратор", actor: models.Actor{UserID: 1, Role: domain.RoleAdmin}},
		{name: "чужой пациент", actor: models.Actor{UserID: 999, Role: domain.RolePatient}, wantErr: ErrAccessDenied},
		{name: "чужой врач", actor: models.Actor{UserID: 999, Role: domain.RoleDoctor}, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSlotRepo(reservedSlot(1))
			svc := newTestService(repo, nil)

			err := svc.Cancel(context.Background(), 1, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.StatusReserved, repo.slots[1].Status)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Cancel_InvalidTransition(t *testing.T) {
	available := reservedSlot(1)
	available.Status = domain.StatusAvailable
	available.PatientID = nil
	available.PatientName = nil
	repo := newFakeSlotRepo(available)
	svc := newTestService(repo, nil)

	err := svc.Cancel(context.Background(), 1, models.Actor{UserID: 1, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_MarkAttended(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(1))
	svc := newTestService(repo, nil)

	err := svc.MarkAttended(context.Background(), 1, &models.AttendRequest{
		DoctorID: 10,
		Note:     ptr.Ptr("осмотр без замечаний"),
	})
	require.NoError(t, err)

	s := repo.slots[1]
	assert.Equal(t, domain.StatusAttended, s.Status)
	assert.Equal(t, "осмотр без замечаний", *s.Note)
}

func TestService_MarkAttended_Guards(t *testing.T) {
	t.Run("свободный слот не закрывается", func(t *testing.T) {
		available := reservedSlot(1)
		available.Status = domain.StatusAvailable
		repo := newFakeSlotRepo(available)
		svc := newTestService(repo, nil)

		err := svc.MarkAttended(context.Background(), 1, &models.AttendRequest{DoctorID: 10})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		// Состояние не изменилось
		assert.Equal(t, domain.StatusAvailable, repo.slots[1].Status)
	})

	t.Run("чужой врач не закрывает приём", func(t *testing.T) {
		repo := newFakeSlotRepo(reservedSlot(1))
		svc := newTestService(repo, nil)

		err := svc.MarkAttended(context.Background(), 1, &models.AttendRequest{DoctorID: 999})
		assert.ErrorIs(t, err, ErrNotAssignedDoctor)
		assert.Equal(t, domain.StatusReserved, repo.slots[1].Status)
	})

	t.Run("слот не найден", func(t *testing.T) {
		repo := newFakeSlotRepo()
		svc := newTestService(repo, nil)

		err := svc.MarkAttended(context.Background(), 42, &models.AttendRequest{DoctorID: 10})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestService_SaveNote_OnlyAssignedDoctor(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(1))
	svc := newTestService(repo, nil)

	err := svc.SaveNote(context.Background(), 1, &models.SaveNoteRequest{DoctorID: 999, Note: "x"})
	assert.ErrorIs(t, err, ErrNotAssignedDoctor)

	err = svc.SaveNote(context.Background(), 1, &models.SaveNoteRequest{DoctorID: 10, Note: "назначен повторный приём"})
	require.NoError(t, err)
	assert.Equal(t, "назначен повторный приём", *repo.slots[1].Note)
}

func TestService_RequestSlot(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.RequestSlot(context.Background(), &models.RequestSlotRequest{
		Specialty:   "dermatology",
		Date:        monday,
		Time:        types.TimeString("12:00"),
		PatientID:   100,
		PatientName: "Иван Петров",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.SourcePatient), resp.Source)
	assert.Equal(t, int64(100), *resp.PatientID)
}

func TestService_RequestSlot_Conflict(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(1))
	svc := newTestService(repo, nil)

	_, err := svc.RequestSlot(context.Background(), &models.RequestSlotRequest{
		Specialty:   "cardiology",
		Date:        monday,
		Time:        types.TimeString("09:00"),
		PatientID:   200,
		PatientName: "Мария Иванова",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestService_EditField_InvalidField(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(1))
	svc := newTestService(repo, nil)

	err := svc.EditField(context.Background(), 1, &models.EditFieldRequest{Field: "doctor", Value: "5"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ReassignSpecialty(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(1), pendingSlot(2))
	users := map[int64]*domain.User{
		20: {ID: 20, Role: domain.RoleDoctor, Active: true, Specialty: ptr.Ptr("cardiology")},
		30: {ID: 30, Role: domain.RolePatient, Active: true},
	}
	svc := newTestService(repo, users)

	t.Run("врач не найден", func(t *testing.T) {
		_, err := svc.ReassignSpecialty(context.Background(), &models.ReassignRequest{Specialty: "cardiology", DoctorID: 99})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("целевой пользователь не врач", func(t *testing.T) {
		_, err := svc.ReassignSpecialty(context.Background(), &models.ReassignRequest{Specialty: "cardiology", DoctorID: 30})
		assert.ErrorIs(t, err, ErrNotADoctor)
	})

	t.Run("успешное переназначение", func(t *testing.T) {
		resp, err := svc.ReassignSpecialty(context.Background(), &models.ReassignRequest{Specialty: "cardiology", DoctorID: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Updated)
		assert.Equal(t, int64(20), *repo.slots[1].DoctorID)
	})
}

func TestService_ListDoctorSlots_Split(t *testing.T) {
	attended := reservedSlot(1)
	attended.Status = domain.StatusAttended
	active := reservedSlot(2)
	active.Time = types.TimeString("10:30")
	repo := newFakeSlotRepo(attended, active)
	svc := newTestService(repo, nil)

	resp, err := svc.ListDoctorSlots(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, resp.Active, 1)
	assert.Len(t, resp.Attended, 1)
}
