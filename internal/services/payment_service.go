package services

import (
	"errors"
	"strings"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/dto"
	"destined_affinity/internal/events"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/pkg/apperrors"

	"gorm.io/gorm"
)

// PaymentResult - записанный платеж и то, что он запустил
type PaymentResult struct {
	Transaction   *models.PaymentTransaction `json:"transaction"`
	AccessRequest *models.AccessRequest      `json:"accessRequest,omitempty"`
	Member        *models.Member             `json:"member,omitempty"`
	Replayed      bool                       `json:"replayed"`
}

type PaymentService interface {
	RecordCompleted(db *gorm.DB, identity *auth.Identity, req *dto.PaymentCompletedRequest) (*PaymentResult, error)
}

type PaymentServiceImpl struct {
	paymentRepo   repositories.PaymentRepository
	accessService AccessRequestService
	memberService MemberService
	effects       *Effects
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	accessService AccessRequestService,
	memberService MemberService,
	effects *Effects,
) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:   paymentRepo,
		accessService: accessService,
		memberService: memberService,
		effects:       effects,
	}
}

// RecordCompleted идемпотентен по transactionId. Для contact_request анкета
// проверяется до записи платежа; повтор события досоздает недостающий запрос.
// Контакты платеж не раскрывает: запрос доступа создается в статусе pending.
func (s *PaymentServiceImpl) RecordCompleted(db *gorm.DB, identity *auth.Identity, req *dto.PaymentCompletedRequest) (*PaymentResult, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}

	purpose := models.PaymentPurpose(req.Purpose)
	if !purpose.Valid() {
		return nil, apperrors.ErrInvalidOperation("payment", "Unknown payment purpose")
	}
	if purpose == models.PaymentPurposeContactRequest && req.BiodataID == nil {
		return nil, apperrors.ValidationError(map[string]string{"biodataId": "This field is required"})
	}

	if existing, err := s.paymentRepo.FindByTransactionID(db, req.TransactionID); err == nil {
		return s.replay(db, existing, identity)
	} else if !errors.Is(err, repositories.ErrTransactionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if purpose == models.PaymentPurposeContactRequest {
		if err := s.accessService.CheckRequestable(db, identity, *req.BiodataID); err != nil {
			return nil, err
		}
	}

	payment := &models.PaymentTransaction{
		TransactionID: req.TransactionID,
		Email:         identity.Email,
		AmountCents:   req.AmountCents,
		Currency:      strings.ToUpper(req.Currency),
		Purpose:       purpose,
		BiodataID:     req.BiodataID,
	}
	if err := s.paymentRepo.Create(db, payment); err != nil {
		if !errors.Is(err, repositories.ErrTransactionExists) {
			return nil, apperrors.InternalError(err)
		}
		existing, findErr := s.paymentRepo.FindByTransactionID(db, req.TransactionID)
		if findErr != nil {
			return nil, apperrors.InternalError(findErr)
		}
		return s.replay(db, existing, identity)
	}

	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.PaymentRecorded,
		Actor:   identity.Email,
		Subject: payment.TransactionID,
		Payload: map[string]interface{}{"purpose": purpose, "amountCents": payment.AmountCents, "currency": payment.Currency},
	})

	result := &PaymentResult{Transaction: payment}
	switch purpose {
	case models.PaymentPurposeContactRequest:
		request, err := s.accessService.Create(db, identity, *req.BiodataID)
		if err != nil {
			return nil, err
		}
		result.AccessRequest = request

	case models.PaymentPurposePremium:
		member, err := s.memberService.RequestPremium(db, identity)
		if err != nil {
			var appErr *apperrors.AppError
			if !apperrors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidStatus {
				return nil, err
			}
			// Заявка уже подана или premium уже выдан
			logger.CtxInfo(ctxOf(db), "Premium payment for member not in 'none' status", "transaction_id", payment.TransactionID)
			member, err = s.memberService.GetMe(db, identity)
			if err != nil {
				return nil, err
			}
		}
		result.Member = member
	}
	return result, nil
}

func (s *PaymentServiceImpl) replay(db *gorm.DB, existing *models.PaymentTransaction, identity *auth.Identity) (*PaymentResult, error) {
	if existing.Email != identity.Email {
		return nil, apperrors.ErrTransactionOwnedByOther
	}
	result := &PaymentResult{Transaction: existing, Replayed: true}

	if existing.Purpose == models.PaymentPurposeContactRequest && existing.BiodataID != nil {
		request, created, err := s.accessService.EnsureRequested(db, identity, *existing.BiodataID)
		if err != nil {
			return nil, err
		}
		if created {
			logger.CtxInfo(ctxOf(db), "Access request created on payment replay", "transaction_id", existing.TransactionID, "request_id", request.ID)
		}
		result.AccessRequest = request
	}
	return result, nil
}
