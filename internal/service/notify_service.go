package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyConfig carries the provider credentials. It is filled from the
// environment in main and injected; this package never reads env vars.
type NotifyConfig struct {
	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
}

// NotifyService sends transactional email and SMS. Both channels are
// best-effort: a misconfigured or failing provider is logged, never fatal.
type NotifyService struct {
	cfg NotifyConfig
}

func NewNotifyService(cfg NotifyConfig) *NotifyService {
	return &NotifyService{cfg: cfg}
}

func (n *NotifyService) SendEmail(toEmail, toName, subject, plainText, htmlContent string) error {
	if n.cfg.SendgridAPIKey == "" || n.cfg.SendgridFromEmail == "" {
		log.Println("notify: SendGrid not configured, email skipped")
		return fmt.Errorf("sendgrid not configured")
	}

	fromName := n.cfg.SendgridFromName
	if fromName == "" {
		fromName = "Bigode Time"
	}
	from := mail.NewEmail(fromName, n.cfg.SendgridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(n.cfg.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("notify: sending email to %s: %v", toEmail, err)
		return fmt.Errorf("sending email via SendGrid: %w", err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("notify: email sent to %s (subject: %s), status %d", toEmail, subject, response.StatusCode)
		return nil
	}
	log.Printf("notify: SendGrid returned status %d for %s: %s", response.StatusCode, toEmail, response.Body)
	return fmt.Errorf("SendGrid returned status %d", response.StatusCode)
}

func (n *NotifyService) SendSMS(toNumber, body string) error {
	if n.cfg.TwilioAccountSID == "" || n.cfg.TwilioAuthToken == "" || n.cfg.TwilioFromNumber == "" {
		log.Println("notify: Twilio not configured, SMS skipped")
		return fmt.Errorf("twilio not configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("notify: destination %q is not E.164, SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   n.cfg.TwilioAccountSID,
		Password:   n.cfg.TwilioAuthToken,
		AccountSid: n.cfg.TwilioAccountSID,
	})
	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(n.cfg.TwilioFromNumber)
	params.SetBody(body)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("notify: sending SMS to %s: %v", toNumber, err)
		return fmt.Errorf("sending SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("notify: SMS sent to %s, sid %s", toNumber, *resp.Sid)
	}
	return nil
}
