package repair_assignments

// Response модель ответа с итогами починки назначений
type Response struct {
	Assigned int // Количество слотов, получивших врача
	Skipped  int // Количество слотов, оставшихся без врача
}
