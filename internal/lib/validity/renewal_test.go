package validity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenewal_Scenario(t *testing.T) {
	now := at(2025, 1, 10)
	got, err := Renewal(NewDate(2025, 1, 15), 6, NewDate(2024, 1, 15), 12, now)
	require.NoError(t, err)

	assert.Equal(t, "2025-07-15", got.NewExpirationDate.String())
	assert.Equal(t, 18, got.TotalMonths)
	assert.Equal(t, 6, got.MonthsAdded)
	assert.Equal(t, "2025-01-10", got.RenewalDate.String())
	assert.Equal(t, 186, got.DaysRemaining)
	assert.Equal(t, 6, got.MonthsRemaining)
	assert.False(t, got.IsExpired)
	assert.False(t, got.IsExpiringSoon)
	assert.Equal(t, StatusActive, got.Status)
}

func TestRenewal_FlagsFollowNewExpiration(t *testing.T) {
	// Контракт давно просрочен, продление на месяц его не спасает.
	now := at(2025, 6, 1)
	got, err := Renewal(NewDate(2025, 1, 15), 1, NewDate(2024, 1, 15), 12, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-15", got.NewExpirationDate.String())
	assert.True(t, got.IsExpired)
	assert.False(t, got.IsExpiringSoon)
	assert.Equal(t, StatusExpired, got.Status)

	// Продление, которое заканчивается через 20 дней.
	now = at(2025, 1, 26)
	got, err = Renewal(NewDate(2025, 1, 15), 1, NewDate(2024, 1, 15), 12, now)
	require.NoError(t, err)
	assert.Equal(t, 20, got.DaysRemaining)
	assert.False(t, got.IsExpired)
	assert.True(t, got.IsExpiringSoon)
}

func TestRenewal_ClampsLikeExpiration(t *testing.T) {
	got, err := Renewal(NewDate(2024, 1, 31), 1, NewDate(2023, 1, 31), 12, at(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got.NewExpirationDate.String())
}

func TestRenewal_Errors(t *testing.T) {
	now := time.Now()
	_, err := Renewal(NewDate(2025, 1, 15), 0, NewDate(2024, 1, 15), 12, now)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Renewal(Date{}, 6, NewDate(2024, 1, 15), 12, now)
	assert.ErrorIs(t, err, ErrInvalidExpirationDate)

	_, err = RenewalFromStrings(NewDate(2025, 1, 15), 6, NewDate(2024, 1, 15), "indefinido", now)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	got, err := RenewalFromStrings(NewDate(2025, 1, 15), 6, NewDate(2024, 1, 15), "12 meses", now)
	require.NoError(t, err)
	assert.Equal(t, 18, got.TotalMonths)
}
