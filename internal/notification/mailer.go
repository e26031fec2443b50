// Package notification renders and dispatches the system's HTML emails.
// Every send returns a bare success boolean: a mail-relay outage must never
// fail the business operation that triggered it, so errors stop here and
// are only logged.  Callers treat notification as fire-and-forget and
// surface a warning field when a send reports false.
package notification

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/davidbc/pesv-backend/internal/config"
)

// Mailer is the notification boundary consumed by the handlers.  The
// production implementation speaks SMTP; tests substitute fakes.
type Mailer interface {
	// SendInspectionNotificationToAdmin alerts the company admin that a
	// new inspection is waiting for review, with a deep link to it.
	SendInspectionNotificationToAdmin(to, empresa, placa, conductor, tipo string, fecha time.Time, kilometraje int, observaciones string, inspectionID uint64) bool
	// SendStatusUpdate tells the driver the review outcome, color-coded.
	SendStatusUpdate(to, estado, placa, conductor, comentario string) bool
	// SendInspectionPDF mails the admin the stored inspection document as
	// a binary attachment decoded from its base64 column.
	SendInspectionPDF(to, empresa, placa, conductor, tipo string, fecha time.Time, kilometraje int, observaciones, pdfBase64 string) bool
	// SendVerificationCode delivers a password-reset code.
	SendVerificationCode(to, code string) bool
}

// SMTPMailer sends through an authenticated relay via gomail.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewSMTPMailer builds a mailer from the application config.
func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:    cfg.EmailFrom,
		baseURL: cfg.BaseURL,
	}
}

// send builds and dispatches one message.  All failure paths log and
// return false; nothing escapes the mailer boundary.
func (m *SMTPMailer) send(to, subject, html string, attach func(*gomail.Message)) bool {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	if attach != nil {
		attach(msg)
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("correo: envio a %s fallido: %v", to, err)
		return false
	}
	return true
}

func (m *SMTPMailer) SendInspectionNotificationToAdmin(to, empresa, placa, conductor, tipo string, fecha time.Time, kilometraje int, observaciones string, inspectionID uint64) bool {
	subject := fmt.Sprintf("📋 Nueva Inspección Preoperacional - %s - %s", placa, conductor)
	html := newInspectionHTML(m.baseURL, empresa, placa, conductor, tipo, fecha, kilometraje, observaciones, inspectionID)
	return m.send(to, subject, html, nil)
}

func (m *SMTPMailer) SendStatusUpdate(to, estado, placa, conductor, comentario string) bool {
	subject := fmt.Sprintf("Actualización de Inspección - %s - %s", placa, strings.ToUpper(estado))
	return m.send(to, subject, statusUpdateHTML(estado, placa, conductor, comentario), nil)
}

func (m *SMTPMailer) SendInspectionPDF(to, empresa, placa, conductor, tipo string, fecha time.Time, kilometraje int, observaciones, pdfBase64 string) bool {
	raw := strings.TrimPrefix(pdfBase64, "data:application/pdf;base64,")
	pdf, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Printf("correo: pdf de inspeccion ilegible: %v", err)
		return false
	}
	filename := AttachmentName(placa, fecha)
	subject := fmt.Sprintf("Inspección Preoperacional - %s - %s", placa, conductor)
	html := pdfNoticeHTML(m.baseURL, empresa, placa, conductor, tipo, fecha, kilometraje, observaciones, filename)
	return m.send(to, subject, html, func(msg *gomail.Message) {
		msg.Attach(filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(pdf)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}))
	})
}

func (m *SMTPMailer) SendVerificationCode(to, code string) bool {
	return m.send(to, "Código de Verificación - Recuperación de Contraseña",
		verificationCodeHTML(code), nil)
}

// AttachmentName builds the PDF filename used on the attachment variant.
func AttachmentName(placa string, fecha time.Time) string {
	return fmt.Sprintf("inspeccion-%s-%s.pdf", placa, fecha.Format("2006-01-02"))
}
