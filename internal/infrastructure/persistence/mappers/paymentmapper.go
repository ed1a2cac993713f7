package mappers

import (
	"github.com/konqer/konqer-api/internal/domain/payment"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:              p.ID(),
		UserID:          nullable(p.UserID()),
		SubscriptionID:  nullable(p.SubscriptionID()),
		PaymentIntentID: nullable(p.PaymentIntentID()),
		InvoiceID:       p.InvoiceID(),
		Amount:          p.Amount(),
		Currency:        p.Currency(),
		Status:          string(p.Status()),
		PaymentMethod:   p.PaymentMethod(),
		CreatedAt:       p.CreatedAt(),
	}
}

func PaymentToDomain(m *models.PaymentModel) *payment.Payment {
	return payment.ReconstructPayment(m.ID, payment.Entry{
		UserID:          deref(m.UserID),
		SubscriptionID:  deref(m.SubscriptionID),
		PaymentIntentID: deref(m.PaymentIntentID),
		InvoiceID:       m.InvoiceID,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Status:          payment.Status(m.Status),
		PaymentMethod:   m.PaymentMethod,
	}, m.CreatedAt)
}
