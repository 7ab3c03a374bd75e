package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mosparks/PKS-BookingService/pkg/dbmetrics"
	"github.com/mosparks/PKS-BookingService/pkg/psqlbuilder"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Entry запись учёта занятости: счётчик занятых мест в слоте
type Entry struct {
	ResourceID int64
	SlotDate   time.Time
	SlotStart  types.TimeString
	Capacity   int
	Committed  int
}

// Repository реестр занятости слотов (resource, date, slot)
// Инвариант: 0 <= committed <= capacity
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр реестра занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// TryReserve атомарно занимает amount мест в слоте
//
// Инкремент и проверка лимита выполняются одним UPSERT с условием в
// WHERE - никогда как отдельное чтение и запись. Два конкурента, оба
// увидевшие committed = N-1, не могут занять последнее место одновременно:
// строку меняет только один, у второго запрос не затрагивает строк и
// возвращается ErrCapacityExceeded
func (r *Repository) TryReserve(ctx context.Context, resourceID int64, date time.Time, slot types.TimeString, capacity, amount int) error {
	if amount <= 0 || amount > capacity {
		return fmt.Errorf("%w: amount=%d capacity=%d", ErrInvalidAmount, amount, capacity)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("capacity_ledger").
		Columns("resource_id", "slot_date", "slot_start", "capacity", "committed").
		Values(resourceID, date, slot, capacity, amount).
		Suffix(`ON CONFLICT (resource_id, slot_date, slot_start)
			DO UPDATE SET committed = capacity_ledger.committed + EXCLUDED.committed,
			              updated_at = NOW()
			WHERE capacity_ledger.committed + EXCLUDED.committed <= capacity_ledger.capacity`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TryReserve - build upsert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TryReserve - execute upsert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TryReserve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCapacityExceeded
	}

	return nil
}

// Release освобождает amount мест в слоте
// Счётчик не опускается ниже нуля, повторное освобождение - no-op:
// отмена уже отклонённого бронирования не освобождает места дважды
func (r *Repository) Release(ctx context.Context, resourceID int64, date time.Time, slot types.TimeString, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount=%d", ErrInvalidAmount, amount)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_ledger").
		Set("committed", squirrel.Expr("GREATEST(committed - ?, 0)", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"slot_start": slot}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	// Отсутствие строки не ошибка: слот ни разу не резервировался
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ReleaseRange освобождает amount мест во всех слотах интервала [start, end)
// Не зависит от текущей гранулярности политики: освобождаются ровно те
// строки реестра, которые были заняты при резервировании
func (r *Repository) ReleaseRange(ctx context.Context, resourceID int64, date time.Time, start, end types.TimeString, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount=%d", ErrInvalidAmount, amount)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_ledger").
		Set("committed", squirrel.Expr("GREATEST(committed - ?, 0)", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.GtOrEq{"slot_start": start}).
		Where(squirrel.Lt{"slot_start": end}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseRange - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseRange - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// GetForDate получает записи занятости ресурса на дату
// Используется снапшотом доступности; без блокировок - витрина свободных
// слотов не обязана быть линеаризуемой с идущими записями
func (r *Repository) GetForDate(ctx context.Context, resourceID int64, date time.Time) ([]Entry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"resource_id",
		"slot_date",
		"slot_start",
		"capacity",
		"committed",
	).
		From("capacity_ledger").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("slot_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ResourceID, &e.SlotDate, &e.SlotStart, &e.Capacity, &e.Committed); err != nil {
			return nil, fmt.Errorf("%w: GetForDate - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForDate - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
