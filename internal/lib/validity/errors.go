package validity

import "errors"

var (
	// ErrInvalidPlacementDate дата колокации отсутствует или не разбирается.
	ErrInvalidPlacementDate = errors.New("invalid placement date")
	// ErrInvalidDuration длительность отсутствует, не положительная или не разбирается.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidExpirationDate дату окончания не удалось вычислить.
	ErrInvalidExpirationDate = errors.New("invalid expiration date")
)
