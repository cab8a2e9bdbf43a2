// Package email sends transactional order confirmations via Brevo SMTP.
package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strconv"
	"text/template"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Service handles email sending via Brevo SMTP
type Service struct {
	config Config
}

func NewService(config Config) *Service {
	if config.Port == 0 {
		config.Port = 587
	}
	return &Service{config: config}
}

// IsConfigured reports whether SMTP credentials are present. Sends are
// skipped silently when they are not, so local development works without
// an SMTP account.
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// OrderItem is one confirmed line of an order
type OrderItem struct {
	ProductName string
	Quantity    int64
	TotalCents  int64
}

// OrderData carries everything the confirmation template needs
type OrderData struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	Items         []OrderItem
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
}

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"euros": func(cents int64) string {
		return fmt.Sprintf("%.2f €", float64(cents)/100)
	},
}).Parse(`Bonjour {{if .CustomerName}}{{.CustomerName}}{{else}}et merci{{end}},

Votre commande {{.OrderNumber}} est confirmée.

{{range .Items}}  {{.Quantity}} x {{.ProductName}} — {{euros .TotalCents}}
{{end}}
Sous-total : {{euros .SubtotalCents}}
Livraison : {{if eq .ShippingCents 0}}offerte{{else}}{{euros .ShippingCents}}{{end}}
Total : {{euros .TotalCents}}

Vos chocolats sont préparés à la main et expédiés sous 48h.

La Chocolaterie
`))

// SendOrderConfirmation emails the customer their order summary
func (s *Service) SendOrderConfirmation(data *OrderData) error {
	if !s.IsConfigured() {
		return nil
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	subject := fmt.Sprintf("Confirmation de commande %s", data.OrderNumber)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.config.From, data.CustomerEmail, subject, body.String())

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.From, []string{data.CustomerEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}
