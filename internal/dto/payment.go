package dto

// PaymentCompletedRequest - событие "платеж прошел" от клиента после оплаты.
// BiodataID обязателен для purpose=contact_request.
type PaymentCompletedRequest struct {
	TransactionID string `json:"transactionId" validate:"required,max=255"`
	AmountCents   int64  `json:"amountCents" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required,len=3"`
	Purpose       string `json:"purpose" validate:"required,is-payment-purpose"`
	BiodataID     *int   `json:"biodataId" validate:"omitempty,gt=0"`
}
