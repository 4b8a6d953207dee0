package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"kingscogent/services/tasks"

	"gopkg.in/gomail.v2"
)

// Mailer sends transaction receipts.
type Mailer interface {
	SendReceipt(p tasks.EmailReceiptPayload) error
}

// SMTPMailer is the production implementation backed by an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds an SMTPMailer for the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Payment receipt</h2>
  <p>Hello {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
  <p>We received an update for your transaction:</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><b>Reference</b></td><td>{{.TxRef}}</td></tr>
    <tr><td><b>Status</b></td><td>{{.Status}}</td></tr>
    <tr><td><b>Amount</b></td><td>{{.Currency}} {{printf "%.2f" .Amount}}</td></tr>
    <tr><td><b>Date</b></td><td>{{.Date.Format "02 Jan 2006 15:04 MST"}}</td></tr>
  </table>
  <p>Thank you for saving with Kings Cogent Finance.</p>
</body>
</html>`))

// renderReceipt produces the HTML body for one receipt.
func renderReceipt(p tasks.EmailReceiptPayload) (string, error) {
	var body bytes.Buffer
	if err := receiptTmpl.Execute(&body, p); err != nil {
		return "", fmt.Errorf("failed to render receipt for %s: %w", p.TxRef, err)
	}
	return body.String(), nil
}

// SendReceipt renders the HTML receipt and sends it in a single attempt.
func (m *SMTPMailer) SendReceipt(p tasks.EmailReceiptPayload) error {
	body, err := renderReceipt(p)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", p.To)
	msg.SetHeader("Subject", fmt.Sprintf("Your transaction receipt (%s)", p.TxRef))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send receipt for %s: %w", p.TxRef, err)
	}
	return nil
}
