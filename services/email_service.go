package services

import (
	"aureliaskin_server/structs"
	"aureliaskin_server/structs/tables"
	"fmt"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderConfirmationEmail mails the buyer a summary of their checkout.
// Sending is skipped silently when email is disabled or the profile carries
// no address; callers treat any returned error as non-fatal.
func (es *EmailService) SendOrderConfirmationEmail(to, recipientName string, order *tables.Order, items []structs.OrderItemRequest) error {
	if !es.cfg.Email.Enabled || to == "" {
		es.logger.Debug("Order confirmation email skipped",
			gecho.Field("enabled", es.cfg.Email.Enabled),
			gecho.Field("order_number", order.OrderNumber))
		return nil
	}

	var lines strings.Builder
	for _, item := range items {
		lines.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>`,
			item.Name, item.Quantity, item.Price,
		))
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head><meta charset="UTF-8"></head>
		<body style="font-family: Arial, sans-serif; color: #333;">
			<h1>Thank you for your order, %s!</h1>
			<p>Your order <strong>%s</strong> has been received and is awaiting payment.</p>
			<table border="0" cellpadding="6">
				<tr><th align="left">Product</th><th align="left">Qty</th><th align="left">Price</th></tr>
				%s
			</table>
			<p><strong>Total: %.2f</strong></p>
			<p>Shipping to: %s, %s %s, %s, %s</p>
		</body>
		</html>`,
		recipientName,
		order.OrderNumber,
		lines.String(),
		order.TotalAmount,
		order.AddressLine1, order.PostalCode, order.City, order.Province, order.Country,
	)

	subject := fmt.Sprintf("Your Aurelia Skin order %s", order.OrderNumber)
	return es.SendEmail([]string{to}, subject, body)
}
