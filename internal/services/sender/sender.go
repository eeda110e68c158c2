// Package services отправляет письма об окончании контрактов.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"unicode"

	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/smtp"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/metrics"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

// ErrNoRecipient у уведомления нет адреса и не задан адрес по умолчанию.
var ErrNoRecipient = errors.New("no recipient for notice")

// SenderService превращает уведомления из очереди в письма.
type SenderService struct {
	transport        smtp.TransportInterface
	defaultRecipient string
	metrics          *metrics.Metrics
	log              *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, defaultRecipient string, m *metrics.Metrics, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:        transport,
		defaultRecipient: defaultRecipient,
		metrics:          m,
		log:              log,
	}
}

// SendExpirationNotice обработчик сообщений очереди notifications.contract_expiring.
// Уведомление без получателя отбрасывается, чтобы не зациклить очередь.
func (s *SenderService) SendExpirationNotice(body []byte) error {
	const op = "services.SenderService.SendExpirationNotice"

	var notice models.ExpirationNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}

	to := notice.ContactEmail
	if to == "" {
		to = s.defaultRecipient
	}
	if to == "" {
		s.log.Warn("drop notice without recipient", slog.Int("contract_id", notice.ContractID), sl.Err(ErrNoRecipient))
		return nil
	}

	to = headerValue(to)
	subject, text := renderNotice(notice)
	if err := s.sendEmail([]string{to}, subject, text); err != nil {
		s.metrics.ObserveNoticeSent(false)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveNoticeSent(true)
	return nil
}

func renderNotice(n models.ExpirationNotice) (string, string) {
	subject := fmt.Sprintf("Contrato de %s: %s", n.ClientName, strings.ToLower(validity.RemainingLabel(n.DaysRemaining)))

	var b strings.Builder
	b.WriteString("Estimado equipo,\r\n\r\n")
	fmt.Fprintf(&b, "El contrato de monitoreo de %s", n.ClientName)
	if n.CarrierSerial != "" {
		fmt.Fprintf(&b, " (brazalete %s)", n.CarrierSerial)
	}
	fmt.Fprintf(&b, " vence el %s.\r\n", n.ExpirationDate.String())
	fmt.Fprintf(&b, "Estado: %s. %s.\r\n\r\n", n.Status, validity.RemainingLabel(n.DaysRemaining))
	b.WriteString("Por favor gestione la renovación con anticipación.\r\n")
	return subject, b.String()
}

// headerValue убирает управляющие символы, чтобы значение не разорвало заголовок.
func headerValue(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, v)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + mime.QEncoding.Encode("UTF-8", headerValue(subject)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
