package domain

import (
	"time"

	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

// SlotStatus represents the status of an appointment slot
type SlotStatus string

const (
	// StatusAvailable slot is free and can be reserved by a patient
	StatusAvailable SlotStatus = "available"
	// StatusReserved slot is taken by a patient and waits for the visit
	StatusReserved SlotStatus = "reserved"
	// StatusAttended the assigned doctor closed the visit
	StatusAttended SlotStatus = "attended"
	// StatusCancelled terminal state, used only for patient-created requests
	StatusCancelled SlotStatus = "cancelled"
	// StatusPending patient-created request waiting for clinic confirmation
	StatusPending SlotStatus = "pending"
)

// SlotSource describes how the slot entered the system
type SlotSource string

const (
	// SourceGenerator slot was produced by the rotation generator
	SourceGenerator SlotSource = "generator"
	// SourcePatient slot was requested directly by a patient
	SourcePatient SlotSource = "patient"
)

// Slot represents one bookable appointment unit at a specific date,
// time and specialty
type Slot struct {
	ID        int64
	Date      time.Time        // calendar date, business days only for generated slots
	Time      types.TimeString // position in the fixed daily grid
	Specialty string
	Status    SlotStatus
	Source    SlotSource

	// DoctorID weak reference to the assigned doctor, set by the rotation
	// generator or by repair/reassignment
	DoctorID *int64

	// PatientID / PatientName reference and denormalized display name of
	// the reserving patient, present only while the slot is held
	PatientID   *int64
	PatientName *string

	// Note clinical note, settable only by the assigned doctor
	Note *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeReserved returns true if a patient may take this slot
func (s *Slot) CanBeReserved() bool {
	return s.Status == StatusAvailable
}

// CanBeAttended returns true if the visit can be closed by the doctor
func (s *Slot) CanBeAttended() bool {
	return s.Status == StatusReserved
}

// CanBeCancelled returns true if the slot holds a cancellable reservation
// or a pending patient request
func (s *Slot) CanBeCancelled() bool {
	return s.Status == StatusReserved || s.Status == StatusPending
}

// HasDoctor returns true if a doctor is assigned to the slot
func (s *Slot) HasDoctor() bool {
	return s.DoctorID != nil && *s.DoctorID != 0
}

// IsAssignedTo returns true if the slot is assigned to the given doctor
func (s *Slot) IsAssignedTo(doctorID int64) bool {
	return s.DoctorID != nil && *s.DoctorID == doctorID
}

// IsPatientCreated returns true for slots requested directly by a patient
// rather than taken from the generated pool
func (s *Slot) IsPatientCreated() bool {
	return s.Source == SourcePatient
}

// SlotFilter фильтр для выборки слотов
type SlotFilter struct {
	Specialty *string           // фильтр по специальности (опционально)
	Date      *time.Time        // фильтр по дате (опционально)
	Time      *types.TimeString // фильтр по времени (опционально)
	Status    *SlotStatus       // фильтр по статусу (опционально)
	DoctorID  *int64            // фильтр по назначенному врачу (опционально)
	PatientID *int64            // фильтр по пациенту (опционально)
}

// TripleKey uniquely identifies a slot position in the schedule
type TripleKey struct {
	Date      string // formatted with DateFormat
	Time      types.TimeString
	Specialty string
}

// TripleOf builds the uniqueness key of a slot
func TripleOf(date time.Time, t types.TimeString, specialty string) TripleKey {
	return TripleKey{
		Date:      date.Format(DateFormat),
		Time:      t,
		Specialty: specialty,
	}
}

// ParseSlotStatus converts a string to SlotStatus, reporting whether the
// value is one of the known statuses
func ParseSlotStatus(s string) (SlotStatus, bool) {
	switch SlotStatus(s) {
	case StatusAvailable, StatusReserved, StatusAttended, StatusCancelled, StatusPending:
		return SlotStatus(s), true
	default:
		return "", false
	}
}
