package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/slot"
)

// UseCase use case генерации расписания слотов
type UseCase struct {
	slotRepo     SlotRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, userRepo UserRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет генерацию расписания на req.HorizonDays рабочих дней
// Генерация идемпотентна: уже существующие тройки (дата, время, специальность)
// пропускаются, повторный запуск без изменений состояния создаёт ноль слотов
// Ошибка записи одного слота не прерывает остальную партию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: horizon=%d days", req.HorizonDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем врачей, допущенных к ротации, и группируем по специальностям
	doctors, err := uc.userRepo.ListEligibleDoctors(ctx)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list eligible doctors: %v", err)
		return nil, fmt.Errorf("%w: failed to list eligible doctors: %v", ErrInternal, err)
	}

	bySpecialty := groupBySpecialty(doctors)

	specialties := uc.resolveSpecialties(bySpecialty, req.Specialty)
	if len(specialties) == 0 {
		uc.logger.Warn("GenerateSlots: no specialties with eligible doctors, nothing to generate")
		return &Response{}, nil
	}

	// 3. Загружаем существующие тройки для идемпотентного пропуска
	triples, err := uc.slotRepo.ListTriples(ctx)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list existing triples: %v", err)
		return nil, fmt.Errorf("%w: failed to list existing triples: %v", ErrInternal, err)
	}

	// 4. Вычисляем стартовую дату и границу горизонта
	// Генерация продолжается с рабочего дня сразу после максимальной
	// существующей даты (либо после сегодняшнего дня, если слотов нет)
	// и не выходит за N-й рабочий день от сегодня — поэтому повторный
	// запуск с тем же горизонтом ничего не создаёт
	maxDate, err := uc.slotRepo.MaxDate(ctx)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get max slot date: %v", err)
		return nil, fmt.Errorf("%w: failed to get max slot date: %v", ErrInternal, err)
	}

	today := truncateToDay(uc.timeProvider.Now())

	horizonEnd := today
	for i := 0; i < req.HorizonDays; i++ {
		horizonEnd = nextBusinessDay(horizonEnd)
	}

	base := today
	if maxDate != nil {
		base = truncateToDay(*maxDate)
	}
	date := nextBusinessDay(base)

	// 5. Восстанавливаем счётчики ротации: сколько дней каждая специальность
	// уже отработала в прошлых запусках
	offsets := make(map[string]int, len(specialties))
	for _, specialty := range specialties {
		offset, err := uc.slotRepo.CountGeneratedDates(ctx, specialty)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to restore rotation offset for %q: %v", specialty, err)
			return nil, fmt.Errorf("%w: failed to restore rotation offset: %v", ErrInternal, err)
		}
		offsets[specialty] = offset
	}

	resp := &Response{}

	// 6. Обходим рабочие дни: на каждый день одна специальность по кругу,
	// внутри дня фиксированная сетка времени
	for day := 0; !date.After(horizonEnd); day++ {
		specialty := specialties[day%len(specialties)]
		dayDoctors := bySpecialty[specialty]

		for i, gridTime := range domain.TimeGrid {
			key := domain.TripleOf(date, gridTime, specialty)
			if _, exists := triples[key]; exists {
				resp.Skipped++
				continue
			}

			s := &domain.Slot{
				Date:      date,
				Time:      gridTime,
				Specialty: specialty,
				Status:    domain.StatusAvailable,
				Source:    domain.SourceGenerator,
			}
			if doctor := pickDoctor(dayDoctors, offsets[specialty], i); doctor != nil {
				s.DoctorID = &doctor.ID
			}

			if _, err := uc.slotRepo.Create(ctx, s); err != nil {
				if errors.Is(err, slotRepo.ErrSlotAlreadyExists) {
					resp.Skipped++
					continue
				}
				uc.logger.Error("GenerateSlots: failed to create slot %s %s %q: %v",
					date.Format(domain.DateFormat), gridTime, specialty, err)
				resp.Skipped++
				continue
			}

			triples[key] = struct{}{}
			resp.Created++
		}

		// Смещение ротации растёт на единицу за обработанный день,
		// независимо от числа пропущенных дубликатов
		offsets[specialty]++
		date = nextBusinessDay(date)
	}

	uc.logger.Info("GenerateSlots: finished, created=%d, skipped=%d", resp.Created, resp.Skipped)

	return resp, nil
}

// resolveSpecialties возвращает отсортированный список специальностей запуска
// Специальность без допущенных врачей пропускается с предупреждением
func (uc *UseCase) resolveSpecialties(bySpecialty map[string][]*domain.User, fixed *string) []string {
	if fixed != nil {
		if len(bySpecialty[*fixed]) == 0 {
			uc.logger.Warn("GenerateSlots: specialty %q has no eligible doctors, skipping", *fixed)
			return nil
		}
		return []string{*fixed}
	}

	specialties := make([]string, 0, len(bySpecialty))
	for specialty := range bySpecialty {
		specialties = append(specialties, specialty)
	}
	sort.Strings(specialties)

	return specialties
}
