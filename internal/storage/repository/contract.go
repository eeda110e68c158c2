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

const contractColumns = `id, client_name, carrier_serial, contact_email, placement_date,
			      contract_duration, duration_months, expiration_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*models.Contract, error) {
	var (
		c          models.Contract
		placement  time.Time
		expiration sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.ClientName, &c.CarrierSerial, &c.ContactEmail, &placement,
		&c.ContractDuration, &c.DurationMonths, &expiration, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.PlacementDate = validity.DateOf(placement)
	if expiration.Valid {
		c.ExpirationDate = validity.DateOf(expiration.Time)
	}
	return &c, nil
}

// nullDate нулевая дата пишется как NULL.
func nullDate(d validity.Date) sql.NullTime {
	if d.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

// CreateContract вставляет новый контракт и возвращает его ID.
func (s *Storage) CreateContract(ctx context.Context, c models.Contract) (int, error) {
	const op = "storage.CreateContract"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO contracts (client_name, carrier_serial, contact_email, placement_date,
			      contract_duration, duration_months)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		c.ClientName, c.CarrierSerial, c.ContactEmail, c.PlacementDate.Time,
		c.ContractDuration, c.DurationMonths).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadContract возвращает контракт по ID.
func (s *Storage) ReadContract(ctx context.Context, id int) (*models.Contract, error) {
	const op = "storage.ReadContract"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrContractNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateContract обновляет контракт по ID и возвращает количество изменённых строк.
// Дата окончания после продлений сохраняется, пока не меняются колокация и длительность.
func (s *Storage) UpdateContract(ctx context.Context, c models.Contract, id int) (int, error) {
	const op = "storage.UpdateContract"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contracts
			  SET client_name = $1, carrier_serial = $2, contact_email = $3,
			      expiration_date = CASE
			          WHEN placement_date = $4 AND duration_months = $6 THEN expiration_date
			      END,
			      placement_date = $4, contract_duration = $5, duration_months = $6, updated_at = NOW()
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		c.ClientName, c.CarrierSerial, c.ContactEmail, c.PlacementDate.Time,
		c.ContractDuration, c.DurationMonths, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrContractNotFound)
	}
	return int(rowsAffected), nil
}

// RemoveContract удаляет контракт по ID вместе с историей продлений.
func (s *Storage) RemoveContract(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveContract"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrContractNotFound)
	}
	return int(rowsAffected), nil
}

// ListContracts возвращает контракты по порядку ID с пагинацией.
func (s *Storage) ListContracts(ctx context.Context, limit, offset int) ([]*models.Contract, error) {
	const op = "storage.ListContracts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contractColumns + `
			  FROM contracts
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountContracts возвращает общее число контрактов.
func (s *Storage) CountContracts(ctx context.Context) (int, error) {
	const op = "storage.CountContracts"
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contracts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
