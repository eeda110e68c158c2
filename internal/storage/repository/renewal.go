package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/models"
	"github.com/magabrotheeeer/contract-validity/internal/storage"
)

// RenewContract продлевает контракт в одной транзакции. Строка контракта
// блокируется до коммита, apply считает продление по заблокированной записи
// и меняет её поля. Параллельные продления выполняются по очереди.
func (s *Storage) RenewContract(ctx context.Context, id int,
	apply func(c *models.Contract) (models.Renewal, error)) error {
	const op = "storage.RenewContract"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1 FOR UPDATE`
	c, err := scanContract(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrContractNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := apply(c)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE contracts
			  SET contract_duration = $1, duration_months = $2, expiration_date = $3, updated_at = NOW()
			  WHERE id = $4`,
		c.ContractDuration, c.DurationMonths, nullDate(c.ExpirationDate), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO contract_renewals
			      (id, contract_id, renewal_date, months_added, previous_expiration, new_expiration, total_months)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, id, r.RenewalDate.Time, r.MonthsAdded,
		r.PreviousExpiration.Time, r.NewExpiration.Time, r.TotalMonths)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRenewals возвращает историю продлений контракта, новые первыми.
func (s *Storage) ListRenewals(ctx context.Context, contractID int) ([]*models.Renewal, error) {
	const op = "storage.ListRenewals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, contract_id, renewal_date, months_added, previous_expiration,
			      new_expiration, total_months, created_at
			  FROM contract_renewals
			  WHERE contract_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Renewal
	for rows.Next() {
		var (
			r                         models.Renewal
			renewed, previous, newExp time.Time
		)
		if err := rows.Scan(&r.ID, &r.ContractID, &renewed, &r.MonthsAdded, &previous,
			&newExp, &r.TotalMonths, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.RenewalDate = validity.DateOf(renewed)
		r.PreviousExpiration = validity.DateOf(previous)
		r.NewExpiration = validity.DateOf(newExp)
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
