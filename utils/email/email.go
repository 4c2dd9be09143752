package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender handles sending emails via SendGrid
type Sender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSender creates a new email sender
func NewSender(apiKey, fromName, fromEmail string) *Sender {
	return &Sender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendOTP sends a one-time passcode to an email contact.
func (s *Sender) SendOTP(to, code string) error {
	subject := "Coastwatch OTP Code"
	body := fmt.Sprintf("Your Coastwatch OTP is %s. It expires in 5 minutes.", code)
	return s.send(to, subject, body)
}

// SendAlert notifies one recipient about an issued hazard alert.
func (s *Sender) SendAlert(to, message, hazardType string) error {
	subject := fmt.Sprintf("Coastwatch Alert: %s", hazardType)
	body := fmt.Sprintf(`%s

This alert was issued for a reported %s hazard. Please follow the
instructions of your local authorities.

The Coastwatch Team`, message, hazardType)
	return s.send(to, subject, body)
}

func (s *Sender) send(to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(to, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
}
