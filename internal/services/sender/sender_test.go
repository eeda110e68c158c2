package services

import (
	"errors"
	"io"
	"mime"
	"net/mail"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/smtp"
	"github.com/magabrotheeeer/contract-validity/internal/metrics"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	return m.Called(from).Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	return m.Called(to).Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	return m.Called().Error(0)
}

func (m *MockSMTPClient) Quit() error {
	return m.Called().Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
	written []byte
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	m.written = append(m.written, p...)
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	return m.Called().Error(0)
}

func noticeWithEmail(email string) []byte {
	return []byte(`{"contract_id":3,"client_name":"Juan Pérez","carrier_serial":"BRZ1001","contact_email":"` +
		email + `","expiration_date":"2025-01-15","days_remaining":5,"status":"Por vencer"}`)
}

// parseMessage разбирает записанное письмо и декодирует тему.
func parseMessage(t *testing.T, raw []byte) (*mail.Message, string) {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	return msg, subject
}

func expectDelivery(tr *MockTransport, to string) (*MockSMTPClient, *MockSMTPWriter) {
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)

	tr.On("GetSMTPUser").Return("alerts@example.com")
	tr.On("Connect").Return(client, nil).Once()
	client.On("Mail", "alerts@example.com").Return(nil).Once()
	client.On("Rcpt", to).Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	writer.On("Write", mock.AnythingOfType("[]uint8")).Return(100, nil).Once()
	writer.On("Close").Return(nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()
	return client, writer
}

func TestSenderService_SendExpirationNotice(t *testing.T) {
	t.Run("sends to contact email", func(t *testing.T) {
		tr := new(MockTransport)
		client, writer := expectDelivery(tr, "juzgado@example.com")
		m := metrics.New(prometheus.NewRegistry())
		s := NewSenderService(tr, "ops@example.com", m, sl.Discard())

		require.NoError(t, s.SendExpirationNotice(noticeWithEmail("juzgado@example.com")))

		body := string(writer.written)
		msg, subject := parseMessage(t, writer.written)
		assert.Equal(t, "juzgado@example.com", msg.Header.Get("To"))
		assert.Equal(t, "Contrato de Juan Pérez: vence en 5 días", subject)
		assert.Contains(t, msg.Header.Get("Subject"), "=?UTF-8?q?")
		assert.Contains(t, body, "(brazalete BRZ1001) vence el 2025-01-15")
		assert.InDelta(t, 1, testutil.ToFloat64(m.NoticesSent.WithLabelValues("ok")), 0)
		tr.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("line breaks in client name stay inside the subject", func(t *testing.T) {
		tr := new(MockTransport)
		_, writer := expectDelivery(tr, "juzgado@example.com")
		s := NewSenderService(tr, "", nil, sl.Discard())

		body := []byte(`{"contract_id":3,"client_name":"Evil\r\nBcc: victim@example.org\r\nX: y",` +
			`"contact_email":"juzgado@example.com","expiration_date":"2025-01-15","days_remaining":5,"status":"Por vencer"}`)
		require.NoError(t, s.SendExpirationNotice(body))

		msg, subject := parseMessage(t, writer.written)
		assert.Empty(t, msg.Header.Get("Bcc"))
		assert.Empty(t, msg.Header.Get("X"))
		assert.Equal(t, "Contrato de Evil  Bcc: victim@example.org  X: y: vence en 5 días", subject)
		tr.AssertExpectations(t)
	})

	t.Run("falls back to default recipient", func(t *testing.T) {
		tr := new(MockTransport)
		expectDelivery(tr, "ops@example.com")
		s := NewSenderService(tr, "ops@example.com", nil, sl.Discard())

		require.NoError(t, s.SendExpirationNotice(noticeWithEmail("")))
		tr.AssertExpectations(t)
	})

	t.Run("drops notice without any recipient", func(t *testing.T) {
		tr := new(MockTransport)
		s := NewSenderService(tr, "", nil, sl.Discard())

		require.NoError(t, s.SendExpirationNotice(noticeWithEmail("")))
		tr.AssertNotCalled(t, "Connect")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		s := NewSenderService(new(MockTransport), "", nil, sl.Discard())

		err := s.SendExpirationNotice([]byte(`invalid json`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error unmarshalling message")
	})

	t.Run("SMTP connection error is returned for requeue", func(t *testing.T) {
		tr := new(MockTransport)
		tr.On("GetSMTPUser").Return("alerts@example.com")
		tr.On("Connect").Return(nil, errors.New("connection error")).Once()
		m := metrics.New(prometheus.NewRegistry())
		s := NewSenderService(tr, "", m, sl.Discard())

		err := s.SendExpirationNotice(noticeWithEmail("juzgado@example.com"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection error")
		assert.InDelta(t, 1, testutil.ToFloat64(m.NoticesSent.WithLabelValues("error")), 0)
	})

	t.Run("RCPT rejected", func(t *testing.T) {
		tr := new(MockTransport)
		client := new(MockSMTPClient)
		tr.On("GetSMTPUser").Return("alerts@example.com")
		tr.On("Connect").Return(client, nil).Once()
		client.On("Mail", "alerts@example.com").Return(nil).Once()
		client.On("Rcpt", "juzgado@example.com").Return(errors.New("550 no such user")).Once()
		client.On("Close").Return(nil).Once()
		s := NewSenderService(tr, "", nil, sl.Discard())

		err := s.SendExpirationNotice(noticeWithEmail("juzgado@example.com"))
		require.Error(t, err)
		client.AssertExpectations(t)
	})
}
