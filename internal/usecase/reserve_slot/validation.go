package reserve_slot

import (
	"fmt"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
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
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.PatientName == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}

	if len(req.PatientName) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName is too long", ErrInvalidInput)
	}

	return nil
}
