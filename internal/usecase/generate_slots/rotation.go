package generate_slots

import (
	"time"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

// pickDoctor выбирает врача ротацией по формуле D[(o + i) mod |D|],
// где o — счётчик рабочих дней специальности, i — позиция слота в сетке дня
// За |D| подряд идущих рабочих дней каждый врач ровно один раз
// открывает день
// Возвращает nil при пустом списке врачей
func pickDoctor(doctors []*domain.User, dayOffset, slotIndex int) *domain.User {
	if len(doctors) == 0 {
		return nil
	}
	return doctors[(dayOffset+slotIndex)%len(doctors)]
}

// groupBySpecialty группирует врачей по специальности, сохраняя порядок
// внутри группы
func groupBySpecialty(doctors []*domain.User) map[string][]*domain.User {
	groups := make(map[string][]*domain.User)
	for _, d := range doctors {
		if !d.EligibleForRotation() {
			continue
		}
		groups[*d.Specialty] = append(groups[*d.Specialty], d)
	}
	return groups
}

// nextBusinessDay возвращает ближайший рабочий день строго после указанной даты
func nextBusinessDay(date time.Time) time.Time {
	next := date.AddDate(0, 0, 1)
	for isWeekend(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// isWeekend проверяет, что дата приходится на субботу или воскресенье
func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
