package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/Clinic-AppointmentService/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

var slotColumns = []string{
	"id",
	"slot_date",
	"slot_time",
	"specialty",
	"status",
	"source",
	"doctor_id",
	"patient_id",
	"patient_name",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами приёма
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
// Возвращает ErrSlotAlreadyExists при нарушении уникальности тройки
// (дата, время, специальность) — генератор трактует это как idempotent skip
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"slot_date",
			"slot_time",
			"specialty",
			"status",
			"source",
			"doctor_id",
			"patient_id",
			"patient_name",
			"note",
		).
		Values(
			s.Date,
			s.Time,
			s.Specialty,
			s.Status,
			s.Source,
			s.DoctorID,
			s.PatientID,
			s.PatientName,
			s.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает слоты по фильтру, отсортированные по (дата, время)
// Внутри транзакции при полностью заданной тройке добавляет FOR UPDATE —
// этим пользуется usecase бронирования для защиты от гонки
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots")

	if filter.Specialty != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialty": *filter.Specialty})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *filter.Date})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_time": *filter.Time})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.PatientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC", "slot_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.Specialty != nil && filter.Date != nil && filter.Time != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ListTriples загружает множество существующих троек (дата, время, специальность)
// Используется генератором для idempotent-пропуска уже созданных слотов
func (r *Repository) ListTriples(ctx context.Context) (map[domain.TripleKey]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_date", "slot_time", "specialty").
		From("slots").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTriples - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTriples - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	triples := make(map[domain.TripleKey]struct{})
	for rows.Next() {
		var (
			date      time.Time
			slotTime  string
			specialty string
		)
		if err := rows.Scan(&date, &slotTime, &specialty); err != nil {
			return nil, fmt.Errorf("%w: ListTriples - scan row: %v", ErrScanRow, err)
		}
		triples[domain.TripleKey{
			Date:      date.Format(domain.DateFormat),
			Time:      types.TimeString(slotTime),
			Specialty: specialty,
		}] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTriples - rows error: %v", ErrScanRow, err)
	}

	return triples, nil
}

// MaxDate возвращает максимальную дату среди всех слотов
// Возвращает nil, если слотов ещё нет
func (r *Repository) MaxDate(ctx context.Context) (*time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MAX(slot_date)").
		From("slots").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MaxDate - build select query: %v", ErrBuildQuery, err)
	}

	var maxDate sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxDate); err != nil {
		return nil, fmt.Errorf("%w: MaxDate - scan result: %v", ErrScanRow, err)
	}

	if !maxDate.Valid {
		return nil, nil
	}
	return &maxDate.Time, nil
}

// CountGeneratedDates возвращает число различных дат, на которые генератор
// уже создавал слоты указанной специальности
// Используется как стартовое смещение ротации при продолжении генерации
func (r *Repository) CountGeneratedDates(ctx context.Context, specialty string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT slot_date)").
		From("slots").
		Where(squirrel.Eq{"specialty": specialty}).
		Where(squirrel.Eq{"source": domain.SourceGenerator}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountGeneratedDates - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountGeneratedDates - scan result: %v", ErrScanRow, err)
	}

	return count, nil
}

// Reserve переводит слот available → reserved и привязывает пациента
// Обновление условное: проигравший гонку получает ErrPreconditionFailed
func (r *Repository) Reserve(ctx context.Context, id int64, patientID int64, patientName string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.StatusReserved).
		Set("patient_id", patientID).
		Set("patient_name", patientName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusAvailable}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "Reserve")
}

// Release переводит слот reserved → available и очищает привязку пациента
// Назначение врача при этом сохраняется
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.StatusAvailable).
		Set("patient_id", nil).
		Set("patient_name", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "Release")
}

// CancelRequest переводит pending-заявку пациента в терминальный cancelled
func (r *Repository) CancelRequest(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelRequest - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "CancelRequest")
}

// MarkAttended переводит слот reserved → attended, опционально сохраняя заметку
func (r *Repository) MarkAttended(ctx context.Context, id int64, note *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slots").
		Set("status", domain.StatusAttended).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusReserved})

	if note != nil {
		updateBuilder = updateBuilder.Set("note", *note)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkAttended - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "MarkAttended")
}

// SetNote сохраняет клиническую заметку слота
func (r *Repository) SetNote(ctx context.Context, id int64, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetNote - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetNote - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetNote - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// UpdateField применяет типизированную правку одного поля слота
func (r *Repository) UpdateField(ctx context.Context, id int64, edit domain.FieldEdit) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set(edit.Column(), edit.Value()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateField - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrSlotAlreadyExists
		}
		return fmt.Errorf("%w: UpdateField - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateField - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListUnassigned получает сгенерированные слоты без назначенного врача,
// отсортированные по (дата, время) по возрастанию
func (r *Repository) ListUnassigned(ctx context.Context) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where("doctor_id IS NULL").
		Where(squirrel.Eq{"source": domain.SourceGenerator}).
		OrderBy("slot_date ASC", "slot_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUnassigned - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnassigned - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// AssignDoctor назначает врача на слот без врача
// Условие doctor_id IS NULL гарантирует, что repair не перезапишет
// уже существующее назначение
func (r *Repository) AssignDoctor(ctx context.Context, id int64, doctorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("doctor_id", doctorID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("doctor_id IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignDoctor - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "AssignDoctor")
}

// ReassignSpecialty массово переназначает врача на все слоты специальности,
// которые ещё не назначены на него. Возвращает число обновлённых слотов
func (r *Repository) ReassignSpecialty(ctx context.Context, specialty string, doctorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("doctor_id", doctorID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"specialty": specialty}).
		Where(squirrel.Or{
			squirrel.Expr("doctor_id IS NULL"),
			squirrel.NotEq{"doctor_id": doctorID},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReassignSpecialty - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReassignSpecialty - execute update: %v", ErrExecQuery, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReassignSpecialty - get rows affected: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// execConditional выполняет условное обновление и возвращает
// ErrPreconditionFailed, если ни одна строка не подошла под условие
func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrPreconditionFailed
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		s                    domain.Slot
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.Time,
		&s.Specialty,
		&s.Status,
		&s.Source,
		&s.DoctorID,
		&s.PatientID,
		&s.PatientName,
		&s.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
