package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyService/pkg/psqlbuilder"
)

// settingsRowID единственная строка таблицы service_settings
const settingsRowID = 1

// Repository репозиторий настроек сервиса.
// Настройки хранятся одной строкой в БД и внедряются через конструктор -
// глобального состояния на уровне пакета нет.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущие настройки сервиса.
// Отсутствие строки трактуется как выключенные скидки.
func (r *Repository) Get(ctx context.Context) (*domain.ServiceSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("discounts_enabled", "updated_at").
		From("service_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ServiceSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.DiscountsEnabled, &updatedAt)
	if err == sql.ErrNoRows {
		return &domain.ServiceSettings{DiscountsEnabled: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// SetDiscountsEnabled включает или выключает резолв скидок
func (r *Repository) SetDiscountsEnabled(ctx context.Context, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_settings").
		Columns("id", "discounts_enabled").
		Values(settingsRowID, enabled).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET discounts_enabled = EXCLUDED.discounts_enabled,
			    updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetDiscountsEnabled - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetDiscountsEnabled - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
