package generate_slots

// Request модель запроса на генерацию расписания
type Request struct {
	HorizonDays int     // Горизонт генерации в рабочих днях
	Specialty   *string // Фиксированная специальность на весь запуск (опционально)
}

// Response модель ответа с итогами генерации
type Response struct {
	Created int // Количество созданных слотов
	Skipped int // Количество пропущенных слотов (дубликаты и ошибки записи)
}
