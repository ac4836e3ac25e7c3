// Package notifications sends order emails. Sends are best effort: the
// order is already committed by the time a mailer runs, so failures are
// logged and never bubble back to the shopper.
package notifications

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/wellkart/pharmacy-api/models"
)

// Sender delivers a single message.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers through an SMTP relay via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// Mailer builds and sends the two per-order messages: the customer
// confirmation and the internal ops copy.
type Mailer struct {
	sender   Sender
	opsEmail string
}

func NewMailer(sender Sender, opsEmail string) *Mailer {
	return &Mailer{sender: sender, opsEmail: opsEmail}
}

// NotifyOrderPlaced sends both messages for a committed order. It is meant
// to run detached (go mailer.NotifyOrderPlaced(order)); either send failing
// is logged only.
func (m *Mailer) NotifyOrderPlaced(order models.Order) {
	summary := orderSummary(order)

	customerSubject := fmt.Sprintf("Order confirmation %s", order.OrderRef)
	customerBody := fmt.Sprintf(
		"Hi %s,\n\nThank you for your order. We'll let you know when it ships.\n\n%s",
		order.FirstName, summary,
	)
	if err := m.sender.Send(order.Email, customerSubject, customerBody); err != nil {
		log.Printf("notifications: customer email for %s failed: %v", order.OrderRef, err)
	}

	if m.opsEmail == "" {
		return
	}
	opsSubject := fmt.Sprintf("New order %s", order.OrderRef)
	opsBody := fmt.Sprintf("A new order was placed.\n\n%s", summary)
	if err := m.sender.Send(m.opsEmail, opsSubject, opsBody); err != nil {
		log.Printf("notifications: ops email for %s failed: %v", order.OrderRef, err)
	}
}

func orderSummary(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order: %s\n", order.OrderRef)
	fmt.Fprintf(&b, "Customer: %s %s <%s>\n", order.FirstName, order.LastName, order.Email)
	if order.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	}
	b.WriteString("\nItems:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %s x%d @ %s %s = %s %s\n",
			item.ProductName, item.Quantity,
			item.Price.StringFixed(2), order.Currency,
			item.Total.StringFixed(2), order.Currency,
		)
	}
	fmt.Fprintf(&b, "\nTotal: %s %s\n", order.TotalAmount.StringFixed(2), order.Currency)
	fmt.Fprintf(&b, "Payment method: %s\n", order.PaymentMethod)
	addr := order.ShippingAddress
	fmt.Fprintf(&b, "Ship to: %s, %s %s, %s\n", addr.Street, addr.PostalCode, addr.City, addr.Country)
	if order.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", order.Notes)
	}
	return b.String()
}
