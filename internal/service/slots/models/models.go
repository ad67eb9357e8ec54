package models

import (
	"time"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

// Request модели

// ListAvailableRequest запрос на выборку свободных слотов
type ListAvailableRequest struct {
	Specialty *string    `json:"specialty,omitempty"` // Фильтр по специальности (опционально)
	Date      *time.Time `json:"date,omitempty"`      // Фильтр по дате (опционально)
}

// RequestSlotRequest заявка пациента на приём вне сгенерированного пула
type RequestSlotRequest struct {
	Specialty   string           `json:"specialty"`
	Date        time.Time        `json:"date"`
	Time        types.TimeString `json:"time"`
	PatientID   int64            `json:"patientId"`
	PatientName string           `json:"patientName"`
}

// Actor инициатор операции над слотом
type Actor struct {
	UserID int64       `json:"userId"`
	Role   domain.Role `json:"role"`
}

// AttendRequest запрос врача на закрытие приёма
type AttendRequest struct {
	DoctorID int64   `json:"doctorId"`
	Note     *string `json:"note,omitempty"` // Клиническая заметка (опционально)
}

// SaveNoteRequest запрос врача на сохранение заметки
type SaveNoteRequest struct {
	DoctorID int64  `json:"doctorId"`
	Note     string `json:"note"`
}

// EditFieldRequest административная правка одного поля слота
type EditFieldRequest struct {
	Field string `json:"field"` // date | time | specialty | status
	Value string `json:"value"`
}

// ReassignRequest запрос на массовое переназначение врача специальности
type ReassignRequest struct {
	Specialty string `json:"specialty"`
	DoctorID  int64  `json:"doctorId"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"` // "2026-09-07"
	Time      string `json:"time"` // "09:00"
	Specialty string `json:"specialty"`
	Status    string `json:"status"`
	Source    string `json:"source"`

	DoctorID    *int64  `json:"doctorId,omitempty"`
	PatientID   *int64  `json:"patientId,omitempty"`
	PatientName *string `json:"patientName,omitempty"`
	Note        *string `json:"note,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// PatientSlotsResponse слоты пациента с разбиением на будущие и прошедшие
type PatientSlotsResponse struct {
	Upcoming []SlotResponse `json:"upcoming"`
	Past     []SlotResponse `json:"past"`
}

// DoctorSlotsResponse слоты врача с разбиением на активные и закрытые
type DoctorSlotsResponse struct {
	Active   []SlotResponse `json:"active"`
	Attended []SlotResponse `json:"attended"`
}

// ReassignResponse итог массового переназначения
type ReassignResponse struct {
	Updated int64 `json:"updated"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:          s.ID,
		Date:        s.Date.Format(domain.DateFormat),
		Time:        s.Time.String(),
		Specialty:   s.Specialty,
		Status:      string(s.Status),
		Source:      string(s.Source),
		DoctorID:    s.DoctorID,
		PatientID:   s.PatientID,
		PatientName: s.PatientName,
		Note:        s.Note,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO списка
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
