package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/Clinic-AppointmentService/pkg/ptr"
)

// UseCase use case бронирования слота пациентом
type UseCase struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет бронирование свободного слота на тройку
// (специальность, дата, время)
// Использует сериализуемую транзакцию: при гонке двух пациентов за один
// слот условное обновление пропускает ровно одного, второй получает
// ErrNoSlotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: patient=%d, specialty=%q, date=%s, time=%s",
		req.PatientID, req.Specialty, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Slot

	// 2. Поиск и бронирование в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Ищем свободный слот по тройке с блокировкой FOR UPDATE
		status := domain.StatusAvailable
		candidates, err := uc.slotRepo.List(txCtx, domain.SlotFilter{
			Specialty: &req.Specialty,
			Date:      &req.Date,
			Time:      ptr.Ptr(req.Time),
			Status:    &status,
		})
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to list candidate slots: %v", err)
			return fmt.Errorf("%w: failed to list candidate slots: %v", ErrInternal, err)
		}

		if len(candidates) == 0 {
			uc.logger.Warn("ReserveSlot: no available slot for %q %s %s",
				req.Specialty, req.Date.Format(domain.DateFormat), req.Time)
			return ErrNoSlotAvailable
		}

		candidate := candidates[0]

		// 2.2. Условное обновление: слот должен всё ещё быть свободен
		if err := uc.slotRepo.Reserve(txCtx, candidate.ID, req.PatientID, req.PatientName); err != nil {
			if errors.Is(err, slotRepo.ErrPreconditionFailed) {
				uc.logger.Warn("ReserveSlot: slot id=%d taken concurrently", candidate.ID)
				return ErrNoSlotAvailable
			}
			uc.logger.Error("ReserveSlot: failed to reserve slot id=%d: %v", candidate.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		result = candidate
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReserveSlot: successfully reserved slot id=%d for patient=%d",
		result.ID, req.PatientID)

	return &Response{
		SlotID:   result.ID,
		DoctorID: result.DoctorID,
	}, nil
}
