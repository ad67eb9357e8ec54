package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/pkg/ptr"
)

type fakeSlotRepo struct {
	slots  []*domain.Slot
	nextID int64
}

func (r *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	r.nextID++
	s.ID = r.nextID
	stored := *s
	r.slots = append(r.slots, &stored)
	return s, nil
}

func (r *fakeSlotRepo) ListTriples(_ context.Context) (map[domain.TripleKey]struct{}, error) {
	triples := make(map[domain.TripleKey]struct{}, len(r.slots))
	for _, s := range r.slots {
		triples[domain.TripleOf(s.Date, s.Time, s.Specialty)] = struct{}{}
	}
	return triples, nil
}

func (r *fakeSlotRepo) MaxDate(_ context.Context) (*time.Time, error) {
	var max *time.Time
	for _, s := range r.slots {
		if max == nil || s.Date.After(*max) {
			d := s.Date
			max = &d
		}
	}
	return max, nil
}

func (r *fakeSlotRepo) CountGeneratedDates(_ context.Context, specialty string) (int, error) {
	dates := make(map[string]struct{})
	for _, s := range r.slots {
		if s.Specialty == specialty && s.Source == domain.SourceGenerator {
			dates[s.Date.Format(domain.DateFormat)] = struct{}{}
		}
	}
	return len(dates), nil
}

type fakeUserRepo struct {
	doctors []*domain.User
}

func (r *fakeUserRepo) ListEligibleDoctors(_ context.Context) ([]*domain.User, error) {
	return r.doctors, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func cardiologist(id int64) *domain.User {
	return &domain.User{
		ID:        id,
		Role:      domain.RoleDoctor,
		Active:    true,
		Specialty: ptr.Ptr("cardiology"),
	}
}

func newTestUseCase(slotRepo *fakeSlotRepo, doctors []*domain.User, now time.Time) *UseCase {
	uc := NewUseCase(slotRepo, &fakeUserRepo{doctors: doctors}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

// Суббота перед понедельником 7 сентября 2026
var saturday = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

func TestUseCase_Execute_RotationAcrossDays(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, []*domain.User{cardiologist(1), cardiologist(2)}, saturday)

	resp, err := uc.Execute(context.Background(), &Request{HorizonDays: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Created)
	assert.Equal(t, 0, resp.Skipped)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	byDay := make(map[string][]int64)
	for _, s := range repo.slots {
		require.NotNil(t, s.DoctorID)
		byDay[s.Date.Format(domain.DateFormat)] = append(byDay[s.Date.Format(domain.DateFormat)], *s.DoctorID)
	}

	// Понедельник открывает первый врач, вторник — второй
	assert.Equal(t, []int64{1, 2, 1, 2, 1, 2}, byDay[monday.Format(domain.DateFormat)])
	assert.Equal(t, []int64{2, 1, 2, 1, 2, 1}, byDay[tuesday.Format(domain.DateFormat)])
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, []*domain.User{cardiologist(1), cardiologist(2)}, saturday)

	first, err := uc.Execute(context.Background(), &Request{HorizonDays: 14})
	require.NoError(t, err)
	assert.Equal(t, 14*len(domain.TimeGrid), first.Created)

	// Повторный запуск с тем же горизонтом и неизменным состоянием
	// не создаёт ни одного нового слота
	second, err := uc.Execute(context.Background(), &Request{HorizonDays: 14})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 0, second.Skipped)

	// Все тройки уникальны
	triples := make(map[domain.TripleKey]struct{})
	for _, s := range repo.slots {
		key := domain.TripleOf(s.Date, s.Time, s.Specialty)
		_, dup := triples[key]
		require.False(t, dup, "duplicate triple %v", key)
		triples[key] = struct{}{}
	}
}

func TestUseCase_Execute_ContinuesFromLastDate(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, []*domain.User{cardiologist(1)}, saturday)

	_, err := uc.Execute(context.Background(), &Request{HorizonDays: 5})
	require.NoError(t, err)

	// Расширение горизонта догенерирует только недостающие дни
	resp, err := uc.Execute(context.Background(), &Request{HorizonDays: 10})
	require.NoError(t, err)
	assert.Equal(t, 5*len(domain.TimeGrid), resp.Created)
	assert.Equal(t, 0, resp.Skipped)
	assert.Len(t, repo.slots, 10*len(domain.TimeGrid))
}

func TestUseCase_Execute_SkipsWeekends(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, []*domain.User{cardiologist(1)}, saturday)

	_, err := uc.Execute(context.Background(), &Request{HorizonDays: 10})
	require.NoError(t, err)

	for _, s := range repo.slots {
		wd := s.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestUseCase_Execute_RotationFairness(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo,
		[]*domain.User{cardiologist(1), cardiologist(2), cardiologist(3)}, saturday)

	_, err := uc.Execute(context.Background(), &Request{HorizonDays: 3})
	require.NoError(t, err)

	// За три дня при трёх врачах каждый получает по шесть слотов
	// и ровно один раз открывает день
	perDoctor := make(map[int64]int)
	starters := make(map[int64]int)
	seenDays := make(map[string]bool)
	for _, s := range repo.slots {
		perDoctor[*s.DoctorID]++
		day := s.Date.Format(domain.DateFormat)
		if !seenDays[day] && s.Time == domain.TimeGrid[0] {
			starters[*s.DoctorID]++
			seenDays[day] = true
		}
	}

	for id := int64(1); id <= 3; id++ {
		assert.Equal(t, 6, perDoctor[id], "doctor %d slot count", id)
		assert.Equal(t, 1, starters[id], "doctor %d day starts", id)
	}
}

func TestUseCase_Execute_SpecialtyRoundRobin(t *testing.T) {
	repo := &fakeSlotRepo{}
	doctors := []*domain.User{
		cardiologist(1),
		{ID: 2, Role: domain.RoleDoctor, Active: true, Specialty: ptr.Ptr("dermatology")},
	}
	uc := newTestUseCase(repo, doctors, saturday)

	_, err := uc.Execute(context.Background(), &Request{HorizonDays: 4})
	require.NoError(t, err)

	perDay := make(map[string]string)
	for _, s := range repo.slots {
		perDay[s.Date.Format(domain.DateFormat)] = s.Specialty
	}

	// Специальности чередуются по дням в алфавитном порядке
	assert.Equal(t, "cardiology", perDay["2026-09-07"])
	assert.Equal(t, "dermatology", perDay["2026-09-08"])
	assert.Equal(t, "cardiology", perDay["2026-09-09"])
	assert.Equal(t, "dermatology", perDay["2026-09-10"])
}

func TestUseCase_Execute_FixedSpecialty(t *testing.T) {
	repo := &fakeSlotRepo{}
	doctors := []*domain.User{
		cardiologist(1),
		{ID: 2, Role: domain.RoleDoctor, Active: true, Specialty: ptr.Ptr("dermatology")},
	}
	uc := newTestUseCase(repo, doctors, saturday)

	resp, err := uc.Execute(context.Background(), &Request{
		HorizonDays: 3,
		Specialty:   ptr.Ptr("cardiology"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3*len(domain.TimeGrid), resp.Created)

	for _, s := range repo.slots {
		assert.Equal(t, "cardiology", s.Specialty)
	}
}

func TestUseCase_Execute_NoEligibleDoctors(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, nil, saturday)

	resp, err := uc.Execute(context.Background(), &Request{HorizonDays: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 0, resp.Skipped)
	assert.Empty(t, repo.slots)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "нулевой горизонт", req: &Request{HorizonDays: 0}},
		{name: "отрицательный горизонт", req: &Request{HorizonDays: -3}},
		{name: "горизонт выше предела", req: &Request{HorizonDays: domain.MaxHorizonDays + 1}},
		{name: "пустая фиксированная специальность", req: &Request{HorizonDays: 5, Specialty: ptr.Ptr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeSlotRepo{}, []*domain.User{cardiologist(1)}, saturday)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
