package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_JSON(t *testing.T) {
	out, err := run(t, "check", "--placement", "2024-01-15", "--duration", "12 meses", "--now", "2025-01-10")
	require.NoError(t, err)

	var got validity.Info
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	want := validity.Info{
		PlacementDate:   validity.NewDate(2024, 1, 15),
		DurationMonths:  12,
		ExpirationDate:  validity.NewDate(2025, 1, 15),
		DaysRemaining:   5,
		MonthsRemaining: 0,
		IsExpired:       false,
		IsExpiringSoon:  true,
		Status:          validity.StatusExpiringSoon,
		RemainingLabel:  "Vence en 5 días",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("check output mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_YAML(t *testing.T) {
	out, err := run(t, "check", "--placement", "2024-01-31", "--duration", "1", "--now", "2024-02-01T10:00:00Z", "-o", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2024-02-29", got["expiration_date"])
	assert.Equal(t, 28, got["days_remaining"])
	status, ok := got["status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "expiring_soon", status["code"])
}

func TestCheck_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"нет даты", []string{"check", "--duration", "12"}, validity.MsgPlacementRequired},
		{"плохая дата", []string{"check", "--placement", "15/01/2024", "--duration", "12"}, validity.MsgPlacementInvalid},
		{"нет цифр", []string{"check", "--placement", "2024-01-15", "--duration", "doce"}, validity.MsgDurationInvalid},
		{"ноль месяцев", []string{"check", "--placement", "2024-01-15", "--duration", "0"}, validity.MsgDurationPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.True(t, validity.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRenew_FromPlacement(t *testing.T) {
	out, err := run(t, "renew", "--placement", "2024-01-15", "--duration", "12 meses", "--months", "6", "--now", "2025-01-10")
	require.NoError(t, err)

	var got validity.RenewalInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, validity.NewDate(2025, 1, 15), got.CurrentExpirationDate)
	assert.Equal(t, validity.NewDate(2025, 7, 15), got.NewExpirationDate)
	assert.Equal(t, 18, got.TotalMonths)
	assert.Equal(t, 186, got.DaysRemaining)
	assert.Equal(t, validity.StatusActive.Code(), got.Status.Code())
	assert.Equal(t, validity.NewDate(2025, 1, 10), got.RenewalDate)
}

func TestRenew_ExplicitExpiration(t *testing.T) {
	out, err := run(t, "renew", "--expiration", "2025-03-31", "--placement", "2024-03-31",
		"--duration", "12", "--months", "1", "--now", "2025-03-01")
	require.NoError(t, err)

	var got validity.RenewalInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, validity.NewDate(2025, 4, 30), got.NewExpirationDate)
}

func TestRenew_Errors(t *testing.T) {
	_, err := run(t, "renew", "--placement", "2024-01-15", "--duration", "12", "--months", "0", "--now", "2025-01-10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, validity.ErrInvalidDuration))

	_, err = run(t, "renew", "--expiration", "mañana", "--placement", "2024-01-15", "--duration", "12", "--months", "1")
	require.ErrorIs(t, err, validity.ErrInvalidExpirationDate)

	_, err = run(t, "renew", "--placement", "2024-01-15", "--duration", "12")
	require.Error(t, err)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		days  string
		code  string
		label string
	}{
		{"-3", "expired", "Venció hace 3 días"},
		{"0", "expiring_soon", "Vence hoy"},
		{"30", "expiring_soon", "Vence en 30 días"},
		{"31", "upcoming", "Vence en 31 días"},
		{"91", "active", "Vence en 91 días"},
	}
	for _, tt := range tests {
		t.Run(tt.days, func(t *testing.T) {
			out, err := run(t, "status", "--days="+tt.days)
			require.NoError(t, err)

			var got statusOutput
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.code, got.Status.Code())
			assert.Equal(t, tt.label, got.RemainingLabel)
		})
	}
}

func TestUnknownOutput(t *testing.T) {
	_, err := run(t, "status", "--days", "1", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestInvalidNow(t *testing.T) {
	_, err := run(t, "check", "--placement", "2024-01-15", "--duration", "12", "--now", "ayer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --now")
}
