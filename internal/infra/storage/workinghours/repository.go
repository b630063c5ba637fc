package workinghours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/pkg/dbmetrics"
	"github.com/salonhq/scheduling-service/pkg/psqlbuilder"
)

var workingHoursColumns = []string{
	"id",
	"staff_id",
	"weekday",
	"is_working",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписаний мастеров
// Движок только читает записи; создание и изменение - зона ответственности
// сервиса управления персоналом
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffAndWeekday получает запись недельного шаблона мастера на день недели
func (r *Repository) GetByStaffAndWeekday(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.StaffWorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.StaffWorkingHours
	var weekdayInt int
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.StaffID,
		&weekdayInt,
		&record.IsWorking,
		&record.StartTime,
		&record.EndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - scan record: %v", ErrScanRow, err)
	}

	record.Weekday = time.Weekday(weekdayInt)
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

// HasSchedule проверяет, настроено ли у мастера расписание вообще.
// Нужно, чтобы отличать "нет записи на этот день недели" (нерабочий день)
// от "расписание не настроено" (используется системный дефолт).
func (r *Repository) HasSchedule(ctx context.Context, staffID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": staffID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasSchedule - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListStaffForWeekday возвращает записи всех мастеров, работающих в указанный
// день недели. Используется для сводного расписания на дату.
func (r *Repository) ListStaffForWeekday(ctx context.Context, weekday time.Weekday) ([]*domain.StaffWorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("staff_working_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		Where(squirrel.Eq{"is_working": true}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.StaffWorkingHours, 0)
	for rows.Next() {
		var record domain.StaffWorkingHours
		var weekdayInt int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&record.ID,
			&record.StaffID,
			&weekdayInt,
			&record.IsWorking,
			&record.StartTime,
			&record.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStaffForWeekday - scan row: %v", ErrScanRow, err)
		}

		record.Weekday = time.Weekday(weekdayInt)
		record.CreatedAt = createdAt.Time
		record.UpdatedAt = updatedAt.Time
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaffForWeekday - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
