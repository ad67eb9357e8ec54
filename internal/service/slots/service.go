package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

// Service сервис для работы со слотами приёма
type Service struct {
	slotRepo SlotRepository
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.getSlot(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSlot(slot), nil
}

// ListAvailable получает свободные слоты пула с опциональными фильтрами
// по специальности и дате
func (s *Service) ListAvailable(ctx context.Context, req *models.ListAvailableRequest) (*models.SlotListResponse, error) {
	status := domain.StatusAvailable
	filter := domain.SlotFilter{
		Specialty: req.Specialty,
		Date:      req.Date,
		Status:    &status,
	}

	found, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailable: found %d available slots", len(found))
	return models.FromDomainSlotList(found), nil
}

// RequestSlot создаёт заявку пациента на приём вне сгенерированного пула
// Заявка попадает в статус pending и ждёт подтверждения клиники
func (s *Service) RequestSlot(ctx context.Context, req *models.RequestSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("RequestSlot: patient=%d, specialty=%q, date=%s, time=%s",
		req.PatientID, req.Specialty, req.Date.Format(domain.DateFormat), req.Time)

	if err := validateRequestSlot(req); err != nil {
		s.logger.Warn("RequestSlot: validation failed: %v", err)
		return nil, err
	}

	slot := &domain.Slot{
		Date:        req.Date,
		Time:        req.Time,
		Specialty:   req.Specialty,
		Status:      domain.StatusPending,
		Source:      domain.SourcePatient,
		PatientID:   &req.PatientID,
		PatientName: &req.PatientName,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotAlreadyExists) {
			s.logger.Warn("RequestSlot: triple already taken: %q %s %s",
				req.Specialty, req.Date.Format(domain.DateFormat), req.Time)
			return nil, ErrSlotConflict
		}
		s.logger.Error("RequestSlot: failed to create request: %v", err)
		return nil, fmt.Errorf("%w: RequestSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RequestSlot: created pending slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// Cancel отменяет бронирование или заявку пациента
// Бронирование из пула возвращается в available: привязка пациента
// очищается, назначение врача сохраняется
// Заявка пациента (pending) уходит в терминальный cancelled
func (s *Service) Cancel(ctx context.Context, slotID int64, actor models.Actor) error {
	s.logger.Info("Cancel: slot id=%d by user=%d (%s)", slotID, actor.UserID, actor.Role)

	slot, err := s.getSlot(ctx, "Cancel", slotID)
	if err != nil {
		return err
	}

	if !slot.CanBeCancelled() {
		s.logger.Warn("Cancel: slot id=%d in status %q cannot be cancelled", slotID, slot.Status)
		return ErrInvalidTransition
	}

	if err := s.checkCancelAccess(slot, actor); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d (%s) to slot id=%d", actor.UserID, actor.Role, slotID)
		return err
	}

	if slot.IsPatientCreated() && slot.Status == domain.StatusPending {
		err = s.slotRepo.CancelRequest(ctx, slotID)
	} else {
		err = s.slotRepo.Release(ctx, slotID)
	}

	if err != nil {
		if errors.Is(err, slotRepo.ErrPreconditionFailed) {
			// Статус изменился между чтением и записью
			s.logger.Warn("Cancel: slot id=%d changed concurrently", slotID)
			return ErrInvalidTransition
		}
		s.logger.Error("Cancel: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: slot id=%d cancelled", slotID)
	return nil
}

// MarkAttended закрывает приём: слот переходит reserved → attended
// Доступно только назначенному на слот врачу
func (s *Service) MarkAttended(ctx context.Context, slotID int64, req *models.AttendRequest) error {
	s.logger.Info("MarkAttended: slot id=%d by doctor=%d", slotID, req.DoctorID)

	slot, err := s.getSlot(ctx, "MarkAttended", slotID)
	if err != nil {
		return err
	}

	if !slot.CanBeAttended() {
		s.logger.Warn("MarkAttended: slot id=%d in status %q cannot be attended", slotID, slot.Status)
		return ErrInvalidTransition
	}

	if !slot.IsAssignedTo(req.DoctorID) {
		s.logger.Warn("MarkAttended: doctor=%d is not assigned to slot id=%d", req.DoctorID, slotID)
		return ErrNotAssignedDoctor
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	if err := s.slotRepo.MarkAttended(ctx, slotID, req.Note); err != nil {
		if errors.Is(err, slotRepo.ErrPreconditionFailed) {
			s.logger.Warn("MarkAttended: slot id=%d changed concurrently", slotID)
			return ErrInvalidTransition
		}
		s.logger.Error("MarkAttended: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: MarkAttended - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAttended: slot id=%d attended by doctor=%d", slotID, req.DoctorID)
	return nil
}

// SaveNote сохраняет клиническую заметку слота
// Доступно только назначенному врачу, независимо от статуса слота
func (s *Service) SaveNote(ctx context.Context, slotID int64, req *models.SaveNoteRequest) error {
	s.logger.Info("SaveNote: slot id=%d by doctor=%d", slotID, req.DoctorID)

	slot, err := s.getSlot(ctx, "SaveNote", slotID)
	if err != nil {
		return err
	}

	if !slot.IsAssignedTo(req.DoctorID) {
		s.logger.Warn("SaveNote: doctor=%d is not assigned to slot id=%d", req.DoctorID, slotID)
		return ErrNotAssignedDoctor
	}

	if len(req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	if err := s.slotRepo.SetNote(ctx, slotID, req.Note); err != nil {
		s.logger.Error("SaveNote: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: SaveNote - repository error: %v", ErrInternal, err)
	}

	return nil
}

// EditField применяет административную правку одного поля слота
// Имя поля и значение валидируются типизированным вариантом правки
func (s *Service) EditField(ctx context.Context, slotID int64, req *models.EditFieldRequest) error {
	s.logger.Info("EditField: slot id=%d, field=%q", slotID, req.Field)

	edit, err := domain.ParseFieldEdit(req.Field, req.Value)
	if err != nil {
		s.logger.Warn("EditField: invalid edit for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.slotRepo.UpdateField(ctx, slotID, edit); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotAlreadyExists):
			s.logger.Warn("EditField: edit collides with existing slot, id=%d", slotID)
			return ErrSlotConflict
		default:
			s.logger.Error("EditField: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: EditField - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("EditField: slot id=%d field %q updated", slotID, req.Field)
	return nil
}

// ReassignSpecialty массово переназначает врача на все слоты специальности,
// не принадлежащие ему
func (s *Service) ReassignSpecialty(ctx context.Context, req *models.ReassignRequest) (*models.ReassignResponse, error) {
	s.logger.Info("ReassignSpecialty: specialty=%q to doctor=%d", req.Specialty, req.DoctorID)

	if req.Specialty == "" {
		return nil, fmt.Errorf("%w: specialty is required", ErrInvalidInput)
	}

	target, err := s.userRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("ReassignSpecialty: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("ReassignSpecialty: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: ReassignSpecialty - repository error: %v", ErrInternal, err)
	}

	if !target.IsDoctor() {
		s.logger.Warn("ReassignSpecialty: user id=%d is not a doctor", req.DoctorID)
		return nil, ErrNotADoctor
	}

	updated, err := s.slotRepo.ReassignSpecialty(ctx, req.Specialty, req.DoctorID)
	if err != nil {
		s.logger.Error("ReassignSpecialty: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReassignSpecialty - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReassignSpecialty: %d slots of %q reassigned to doctor=%d",
		updated, req.Specialty, req.DoctorID)

	return &models.ReassignResponse{Updated: updated}, nil
}

// ListPatientSlots получает слоты пациента с разбиением на будущие
// и прошедшие по сегодняшней дате
func (s *Service) ListPatientSlots(ctx context.Context, patientID int64) (*models.PatientSlotsResponse, error) {
	found, err := s.slotRepo.List(ctx, domain.SlotFilter{PatientID: &patientID})
	if err != nil {
		s.logger.Error("ListPatientSlots: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: ListPatientSlots - repository error: %v", ErrInternal, err)
	}

	today := truncateToDay(time.Now())
	resp := &models.PatientSlotsResponse{
		Upcoming: make([]models.SlotResponse, 0),
		Past:     make([]models.SlotResponse, 0),
	}
	for _, slot := range found {
		if slot.Date.Before(today) {
			resp.Past = append(resp.Past, *models.FromDomainSlot(slot))
		} else {
			resp.Upcoming = append(resp.Upcoming, *models.FromDomainSlot(slot))
		}
	}

	s.logger.Info("ListPatientSlots: patient=%d has %d upcoming, %d past slots",
		patientID, len(resp.Upcoming), len(resp.Past))
	return resp, nil
}

// ListDoctorSlots получает слоты врача с разбиением на активные и закрытые
func (s *Service) ListDoctorSlots(ctx context.Context, doctorID int64) (*models.DoctorSlotsResponse, error) {
	found, err := s.slotRepo.List(ctx, domain.SlotFilter{DoctorID: &doctorID})
	if err != nil {
		s.logger.Error("ListDoctorSlots: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ListDoctorSlots - repository error: %v", ErrInternal, err)
	}

	resp := &models.DoctorSlotsResponse{
		Active:   make([]models.SlotResponse, 0),
		Attended: make([]models.SlotResponse, 0),
	}
	for _, slot := range found {
		if slot.Status == domain.StatusAttended {
			resp.Attended = append(resp.Attended, *models.FromDomainSlot(slot))
		} else {
			resp.Active = append(resp.Active, *models.FromDomainSlot(slot))
		}
	}

	s.logger.Info("ListDoctorSlots: doctor=%d has %d active, %d attended slots",
		doctorID, len(resp.Active), len(resp.Attended))
	return resp, nil
}

// getSlot загружает слот, транслируя ошибку отсутствия
func (s *Service) getSlot(ctx context.Context, method string, id int64) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", method, id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return slot, nil
}

// checkCancelAccess проверяет право инициатора на отмену слота
// Администратор отменяет любой слот, пациент — только свой,
// врач — только назначенный на него
func (s *Service) checkCancelAccess(slot *domain.Slot, actor models.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RolePatient:
		if slot.PatientID != nil && *slot.PatientID == actor.UserID {
			return nil
		}
	case domain.RoleDoctor:
		if slot.IsAssignedTo(actor.UserID) {
			return nil
		}
	}
	return ErrAccessDenied
}

// validateRequestSlot валидирует заявку пациента на приём
func validateRequestSlot(req *models.RequestSlotRequest) error {
	if req.Specialty == "" {
		return fmt.Errorf("%w: specialty is required", ErrInvalidInput)
	}
	if len(req.Specialty) > domain.MaxSpecialtyLength {
		return fmt.Errorf("%w: specialty is too long", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientId must be positive", ErrInvalidInput)
	}
	if req.PatientName == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if len(req.PatientName) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName is too long", ErrInvalidInput)
	}
	return nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
