package validity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		isExpired bool
		want      Status
		label     string
		severity  Severity
	}{
		{"expired flag wins over days", 200, true, StatusExpired, "Vencido", SeverityDanger},
		{"negative days", -5, false, StatusExpired, "Vencido", SeverityDanger},
		{"day zero is expiring soon", 0, false, StatusExpiringSoon, "Por vencer", SeverityWarning},
		{"thirty days", 30, false, StatusExpiringSoon, "Por vencer", SeverityWarning},
		{"thirty one days", 31, false, StatusUpcoming, "Próximo a vencer", SeverityNotice},
		{"ninety days", 90, false, StatusUpcoming, "Próximo a vencer", SeverityNotice},
		{"ninety one days", 91, false, StatusActive, "Vigente", SeveritySuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.days, tt.isExpired)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.label, got.Label())
			assert.Equal(t, tt.severity, got.Severity())
		})
	}
}

func TestStatus_JSON(t *testing.T) {
	data, err := json.Marshal(StatusUpcoming)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"upcoming","label":"Próximo a vencer","severity":"notice"}`, string(data))

	var got Status
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, StatusUpcoming, got)

	assert.Error(t, json.Unmarshal([]byte(`{"code":"unknown"}`), &got))
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(s.Code())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStatus("vencido")
	assert.Error(t, err)
}

func TestRemainingLabel(t *testing.T) {
	assert.Equal(t, "Vence hoy", RemainingLabel(0))
	assert.Equal(t, "Vence mañana", RemainingLabel(1))
	assert.Equal(t, "Vence en 45 días", RemainingLabel(45))
	assert.Equal(t, "Venció ayer", RemainingLabel(-1))
	assert.Equal(t, "Venció hace 10 días", RemainingLabel(-10))
}
