package generate_slots

import (
	"fmt"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.HorizonDays <= 0 {
		return fmt.Errorf("%w: horizonDays must be positive", ErrInvalidInput)
	}

	if req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must not exceed %d", ErrInvalidInput, domain.MaxHorizonDays)
	}

	if req.Specialty != nil {
		if *req.Specialty == "" {
			return fmt.Errorf("%w: specialty must not be empty", ErrInvalidInput)
		}
		if len(*req.Specialty) > domain.MaxSpecialtyLength {
			return fmt.Errorf("%w: specialty is too long", ErrInvalidInput)
		}
	}

	return nil
}
