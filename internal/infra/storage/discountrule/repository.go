package discountrule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"bookings_from",
	"bookings_to",
	"percent",
	"label",
	"is_active",
	"created_at",
}

// Repository репозиторий для работы с правилами скидок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил скидок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило скидки
func (r *Repository) Create(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("discount_rules").
		Columns(
			"bookings_from",
			"bookings_to",
			"percent",
			"label",
			"is_active",
		).
		Values(
			rule.BookingsFrom,
			rule.BookingsTo,
			rule.Percent,
			rule.Label,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time

	return rule, nil
}

// List получает правила скидок.
// При onlyActive = true возвращает только активные правила - этот режим
// использует резолвер скидок.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.DiscountRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("discount_rules").
		OrderBy("bookings_from ASC, bookings_to ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
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

	rules := make([]*domain.DiscountRule, 0)
	for rows.Next() {
		var rule domain.DiscountRule
		var createdAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.BookingsFrom,
			&rule.BookingsTo,
			&rule.Percent,
			&rule.Label,
			&rule.IsActive,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan rule: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Delete удаляет правило скидки
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("discount_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}
