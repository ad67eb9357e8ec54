package repair_assignments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/slot"
)

// UseCase use case починки слотов без назначенного врача
// Разовый batch-проход: каждому слоту без врача подбирается врач ротацией
// Слоты, у которых врач уже есть, не затрагиваются
type UseCase struct {
	slotRepo SlotRepository
	userRepo UserRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, userRepo UserRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute обходит все слоты без врача в порядке (дата, время)
// Счётчик ротации ведётся отдельно по каждой специальности и растёт
// на единицу за каждый назначенный слот — в отличие от генератора,
// где смещение растёт раз в день
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	uc.logger.Info("RepairAssignments: started")

	// 1. Собираем врачей, допущенных к ротации
	doctors, err := uc.userRepo.ListEligibleDoctors(ctx)
	if err != nil {
		uc.logger.Error("RepairAssignments: failed to list eligible doctors: %v", err)
		return nil, fmt.Errorf("%w: failed to list eligible doctors: %v", ErrInternal, err)
	}

	bySpecialty := make(map[string][]*domain.User)
	for _, d := range doctors {
		if !d.EligibleForRotation() {
			continue
		}
		bySpecialty[*d.Specialty] = append(bySpecialty[*d.Specialty], d)
	}

	// 2. Загружаем слоты без врача, отсортированные по (дата, время)
	unassigned, err := uc.slotRepo.ListUnassigned(ctx)
	if err != nil {
		uc.logger.Error("RepairAssignments: failed to list unassigned slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list unassigned slots: %v", ErrInternal, err)
	}

	resp := &Response{}
	offsets := make(map[string]int)

	// 3. Назначаем врачей по кругу внутри каждой специальности
	for _, s := range unassigned {
		candidates := bySpecialty[s.Specialty]
		if len(candidates) == 0 {
			uc.logger.Warn("RepairAssignments: specialty %q has no eligible doctors, slot id=%d skipped",
				s.Specialty, s.ID)
			resp.Skipped++
			continue
		}

		doctor := candidates[offsets[s.Specialty]%len(candidates)]

		if err := uc.slotRepo.AssignDoctor(ctx, s.ID, doctor.ID); err != nil {
			if errors.Is(err, slotRepo.ErrPreconditionFailed) {
				// Врач появился у слота между чтением и записью
				uc.logger.Warn("RepairAssignments: slot id=%d assigned concurrently, skipped", s.ID)
				resp.Skipped++
				continue
			}
			uc.logger.Error("RepairAssignments: failed to assign doctor id=%d to slot id=%d: %v",
				doctor.ID, s.ID, err)
			resp.Skipped++
			continue
		}

		offsets[s.Specialty]++
		resp.Assigned++
	}

	uc.logger.Info("RepairAssignments: finished, assigned=%d, skipped=%d", resp.Assigned, resp.Skipped)

	return resp, nil
}
