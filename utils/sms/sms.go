package sms

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender handles sending SMS via Twilio
type Sender struct {
	client *twilio.RestClient
	from   string
}

// NewSender creates a new SMS sender
func NewSender(accountSID, authToken, from string) *Sender {
	return &Sender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

// SendOTP sends a one-time passcode to a phone contact.
func (s *Sender) SendOTP(to, code string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(fmt.Sprintf("Your Coastwatch OTP is %s. It expires in 5 minutes.", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
