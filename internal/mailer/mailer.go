package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// Sender delivers a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends purchase receipts over SMTP.
type SMTPMailer struct {
	from   string
	sender Sender
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{
		from:   from,
		sender: gomail.NewDialer(host, port, from, password),
	}
}

// NewSMTPMailerWithSender is used by tests to swap the transport.
func NewSMTPMailerWithSender(from string, sender Sender) *SMTPMailer {
	return &SMTPMailer{from: from, sender: sender}
}

func (m *SMTPMailer) SendPurchaseReceipt(toEmail, wearableName string, p *domain.Purchase) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("%w: receipt email is empty", domain.ErrInvalidInput)
	}
	return m.sender.DialAndSend(buildReceipt(m.from, toEmail, wearableName, p))
}

func buildReceipt(from, to, wearableName string, p *domain.Purchase) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your purchase of %s", wearableName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Thank you for buying '%s'.\n\nPurchase: %s\nPrice: %g %s\nSeller: %s\nTransaction: %s\nDate: %s\n",
		wearableName,
		p.ID,
		p.Price, p.Currency,
		p.Seller,
		p.TransactionHash,
		p.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"),
	))
	return msg
}

// NopMailer discards receipts. Used when SMTP_HOST is empty.
type NopMailer struct{}

func (NopMailer) SendPurchaseReceipt(string, string, *domain.Purchase) error { return nil }
