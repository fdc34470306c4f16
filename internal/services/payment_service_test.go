package services_test

import (
	"net/http"
	"testing"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/models"
	"destined_affinity/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_ContactRequestPayment(t *testing.T) {
	f := seedAccessFixture(t)

	req := &dto.PaymentCompletedRequest{
		TransactionID: "pi_1",
		AmountCents:   500,
		Currency:      "usd",
		Purpose:       "contact_request",
		BiodataID:     ptr(1),
	}
	result, err := f.svc.PaymentService.RecordCompleted(f.db, identity("b@x.com"), req)
	require.NoError(t, err)
	assert.False(t, result.Replayed)
	assert.Equal(t, "USD", result.Transaction.Currency)
	require.NotNil(t, result.AccessRequest)
	assert.Equal(t, models.AccessStatusPending, result.AccessRequest.Status)

	// повтор того же события идемпотентен
	replay, err := f.svc.PaymentService.RecordCompleted(f.db, identity("b@x.com"), req)
	require.NoError(t, err)
	assert.True(t, replay.Replayed)
	assert.Equal(t, result.Transaction.ID, replay.Transaction.ID)

	// чужой transactionId
	_, err = f.svc.PaymentService.RecordCompleted(f.db, identity("c@x.com"), req)
	assertAppError(t, err, http.StatusConflict)

	// платеж не раскрывает контакты
	view, err := f.svc.BiodataService.GetByID(f.db, identity("b@x.com"), 1)
	require.NoError(t, err)
	assert.False(t, view.HasContact())
}

func TestPaymentService_DuplicateRequestStillRecordsPayment(t *testing.T) {
	f := seedAccessFixture(t)
	_, err := f.svc.AccessRequestService.Create(f.db, identity("b@x.com"), 1)
	require.NoError(t, err)

	_, err = f.svc.PaymentService.RecordCompleted(f.db, identity("b@x.com"), &dto.PaymentCompletedRequest{
		TransactionID: "pi_2",
		AmountCents:   500,
		Currency:      "USD",
		Purpose:       "contact_request",
		BiodataID:     ptr(1),
	})
	assertAppError(t, err, http.StatusConflict)

	var count int64
	require.NoError(t, f.db.Model(&models.PaymentTransaction{}).Where("transaction_id = ?", "pi_2").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// повтор возвращает уже существующий запрос
	replay, err := f.svc.PaymentService.RecordCompleted(f.db, identity("b@x.com"), &dto.PaymentCompletedRequest{
		TransactionID: "pi_2",
		AmountCents:   500,
		Currency:      "USD",
		Purpose:       "contact_request",
		BiodataID:     ptr(1),
	})
	require.NoError(t, err)
	assert.True(t, replay.Replayed)
	require.NotNil(t, replay.AccessRequest)
	assert.Equal(t, 1, replay.AccessRequest.BiodataID)
}

func TestPaymentService_RejectedContactRequestIsNotRecorded(t *testing.T) {
	f := seedAccessFixture(t)

	cases := []struct {
		name      string
		payer     string
		biodataID int
		status    int
	}{
		{"missing biodata", "b@x.com", 999, http.StatusNotFound},
		{"own biodata", "a@x.com", 1, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			txID := "pi_lost_" + tc.payer
			req := &dto.PaymentCompletedRequest{
				TransactionID: txID,
				AmountCents:   500,
				Currency:      "USD",
				Purpose:       "contact_request",
				BiodataID:     ptr(tc.biodataID),
			}
			_, err := f.svc.PaymentService.RecordCompleted(f.db, identity(tc.payer), req)
			assertAppError(t, err, tc.status)

			var count int64
			require.NoError(t, f.db.Model(&models.PaymentTransaction{}).Where("transaction_id = ?", txID).Count(&count).Error)
			assert.Equal(t, int64(0), count)

			// повтор не выдает успех без запроса доступа
			_, err = f.svc.PaymentService.RecordCompleted(f.db, identity(tc.payer), req)
			assertAppError(t, err, tc.status)
		})
	}

	mine, err := f.svc.AccessRequestService.ListMine(f.db, identity("b@x.com"))
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestPaymentService_ReplayCreatesMissingAccessRequest(t *testing.T) {
	f := seedAccessFixture(t)

	// платеж записан, а запрос доступа так и не создан
	require.NoError(t, f.db.Create(&models.PaymentTransaction{
		TransactionID: "pi_orphan",
		Email:         "b@x.com",
		AmountCents:   500,
		Currency:      "USD",
		Purpose:       models.PaymentPurposeContactRequest,
		BiodataID:     ptr(1),
	}).Error)

	req := &dto.PaymentCompletedRequest{
		TransactionID: "pi_orphan",
		AmountCents:   500,
		Currency:      "USD",
		Purpose:       "contact_request",
		BiodataID:     ptr(1),
	}
	result, err := f.svc.PaymentService.RecordCompleted(f.db, identity("b@x.com"), req)
	require.NoError(t, err)
	assert.True(t, result.Replayed)
	require.NotNil(t, result.AccessRequest)
	assert.Equal(t, models.AccessStatusPending, result.AccessRequest.Status)

	// следующий повтор не создает второй запрос
	again, err := f.svc.PaymentService.RecordCompleted(f.db, identity("b@x.com"), req)
	require.NoError(t, err)
	require.NotNil(t, again.AccessRequest)
	assert.Equal(t, result.AccessRequest.ID, again.AccessRequest.ID)

	mine, err := f.svc.AccessRequestService.ListMine(f.db, identity("b@x.com"))
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestPaymentService_PremiumPayment(t *testing.T) {
	f := newFixture(t)
	helpers.CreateMember(t, f.db, "a@x.com", models.MemberRoleMember)

	result, err := f.svc.PaymentService.RecordCompleted(f.db, identity("a@x.com"), &dto.PaymentCompletedRequest{
		TransactionID: "pi_3",
		AmountCents:   1500,
		Currency:      "USD",
		Purpose:       "premium",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Member)
	assert.Equal(t, models.PremiumStatusPending, result.Member.PremiumStatus)

	// второй платеж за premium не ломает заявку
	result, err = f.svc.PaymentService.RecordCompleted(f.db, identity("a@x.com"), &dto.PaymentCompletedRequest{
		TransactionID: "pi_4",
		AmountCents:   1500,
		Currency:      "USD",
		Purpose:       "premium",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PremiumStatusPending, result.Member.PremiumStatus)
}

func TestPaymentService_ContactRequestNeedsBiodata(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.PaymentService.RecordCompleted(f.db, identity("a@x.com"), &dto.PaymentCompletedRequest{
		TransactionID: "pi_5",
		AmountCents:   500,
		Currency:      "USD",
		Purpose:       "contact_request",
	})
	assertAppError(t, err, http.StatusBadRequest)
}
