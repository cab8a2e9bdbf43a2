package email

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewService(Config{}).IsConfigured())
	assert.False(t, NewService(Config{Host: "smtp-relay.brevo.com"}).IsConfigured())
	assert.True(t, NewService(Config{
		Host:     "smtp-relay.brevo.com",
		Username: "login",
		Password: "key",
	}).IsConfigured())
}

func TestSendOrderConfirmation_SkipsWhenUnconfigured(t *testing.T) {
	service := NewService(Config{})

	err := service.SendOrderConfirmation(&OrderData{OrderNumber: "CB-ABC12345"})
	assert.NoError(t, err, "unconfigured SMTP must be a silent no-op")
}

func TestConfirmationTemplate(t *testing.T) {
	data := &OrderData{
		OrderNumber:   "CB-ABC12345",
		CustomerName:  "Claire Moreau",
		CustomerEmail: "claire@example.com",
		Items: []OrderItem{
			{ProductName: "Tablette Noir 70%", Quantity: 2, TotalCents: 1300},
			{ProductName: "Ballotin Assortiment 250g", Quantity: 1, TotalCents: 1850},
		},
		SubtotalCents: 3150,
		ShippingCents: 1000,
		TotalCents:    4150,
	}

	var body bytes.Buffer
	require.NoError(t, confirmationTemplate.Execute(&body, data))

	text := body.String()
	assert.Contains(t, text, "Bonjour Claire Moreau")
	assert.Contains(t, text, "CB-ABC12345")
	assert.Contains(t, text, "2 x Tablette Noir 70% — 13.00 €")
	assert.Contains(t, text, "Livraison : 10.00 €")
	assert.Contains(t, text, "Total : 41.50 €")
}

func TestConfirmationTemplate_FreeShipping(t *testing.T) {
	data := &OrderData{
		OrderNumber:   "CB-ABC12345",
		SubtotalCents: 7500,
		ShippingCents: 0,
		TotalCents:    7500,
	}

	var body bytes.Buffer
	require.NoError(t, confirmationTemplate.Execute(&body, data))

	text := body.String()
	assert.Contains(t, text, "Bonjour et merci")
	assert.Contains(t, text, "Livraison : offerte")
}
