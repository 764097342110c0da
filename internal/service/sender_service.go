package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"barbertime/internal/entities"
)

// SenderService builds and dispatches booking confirmation messages.
type SenderService struct {
	notify *NotifyService
}

func NewSenderService(notify *NotifyService) *SenderService {
	return &SenderService{notify: notify}
}

// SendBookingEmail mails the client a confirmation. Dispatch is async and
// best-effort; failures are logged only.
func (s *SenderService) SendBookingEmail(toEmail string, data entities.BookingEmailData) {
	brLoc, errLoc := time.LoadLocation("America/Sao_Paulo")
	if errLoc != nil {
		brLoc = time.FixedZone("BRT", -3*60*60)
	}
	data.CurrentYear = time.Now().In(brLoc).Year()

	subject := fmt.Sprintf("Seu agendamento na %s está %s - %s às %s",
		data.EmpresaNome, data.Status, data.DataFormatted, data.HorarioInicio)
	plainTextBody := fmt.Sprintf(
		"Olá %s,\n\nSeu agendamento na %s está %s.\n\n"+
			"Detalhes do agendamento:\n"+
			"Serviço: %s\n"+
			"Data: %s\n"+
			"Horário: %s - %s\n"+
			"Valor: R$ %.2f\n\n"+
			"Obrigado por escolher a %s.\n",
		data.ClienteNome, data.EmpresaNome, data.Status,
		data.ServicoNome, data.DataFormatted, data.HorarioInicio, data.HorarioFim,
		data.Valor, data.EmpresaNome,
	)

	htmlBody := plainTextBody
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("sender: parsing email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			log.Printf("sender: executing email template: %v", err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlContent string) {
		if err := s.notify.SendEmail(toEmail, toName, subject, plainBody, htmlContent); err != nil {
			log.Printf("sender: booking email to %s failed: %v", toEmail, err)
		}
	}(toEmail, data.ClienteNome, subject, plainTextBody, htmlBody)
}

// SendBookingSMS texts the client a short confirmation.
func (s *SenderService) SendBookingSMS(toNumber string, data entities.BookingEmailData) {
	msg := fmt.Sprintf("%s: seu agendamento está %s!\n%s às %s.\nMais detalhes no seu e-mail.",
		data.EmpresaNome, data.Status, data.DataFormatted, data.HorarioInicio)
	go func() {
		if err := s.notify.SendSMS(toNumber, msg); err != nil {
			log.Printf("sender: booking SMS to %s failed: %v", toNumber, err)
		}
	}()
}
