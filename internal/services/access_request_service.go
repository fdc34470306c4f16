package services

import (
	"errors"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/events"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/pkg/apperrors"

	"gorm.io/gorm"
)

type AccessRequestService interface {
	Create(db *gorm.DB, identity *auth.Identity, biodataID int) (*models.AccessRequest, error)
	CheckRequestable(db *gorm.DB, identity *auth.Identity, biodataID int) error
	EnsureRequested(db *gorm.DB, identity *auth.Identity, biodataID int) (*models.AccessRequest, bool, error)
	ListMine(db *gorm.DB, identity *auth.Identity) ([]models.AccessRequest, error)
	Delete(db *gorm.DB, identity *auth.Identity, requestID string) error

	// Admin operations
	Decide(db *gorm.DB, identity *auth.Identity, requestID string, status models.AccessStatus) (*models.AccessRequest, error)
	ListByStatus(db *gorm.DB, identity *auth.Identity, status models.AccessStatus) ([]models.AccessRequest, error)
}

type AccessRequestServiceImpl struct {
	accessRepo  repositories.AccessRequestRepository
	biodataRepo repositories.BiodataRepository
	memberRepo  repositories.MemberRepository
	guard       *auth.Guard
	effects     *Effects
}

func NewAccessRequestService(
	accessRepo repositories.AccessRequestRepository,
	biodataRepo repositories.BiodataRepository,
	memberRepo repositories.MemberRepository,
	guard *auth.Guard,
	effects *Effects,
) AccessRequestService {
	return &AccessRequestServiceImpl{
		accessRepo:  accessRepo,
		biodataRepo: biodataRepo,
		memberRepo:  memberRepo,
		guard:       guard,
		effects:     effects,
	}
}

// Create - один запрос на пару (анкета, email) в любом статусе
func (s *AccessRequestServiceImpl) Create(db *gorm.DB, identity *auth.Identity, biodataID int) (*models.AccessRequest, error) {
	if err := s.CheckRequestable(db, identity, biodataID); err != nil {
		return nil, err
	}

	request := &models.AccessRequest{
		BiodataID:      biodataID,
		RequesterEmail: identity.Email,
		RequesterName:  s.displayName(db, identity.Email),
		Status:         models.AccessStatusPending,
	}
	if err := s.accessRepo.Create(db, request); err != nil {
		return nil, handleAccessRequestError(err)
	}

	s.effects.metrics().AccessTransition(string(models.AccessStatusPending))
	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.AccessRequestCreated,
		Actor:   identity.Email,
		Subject: request.ID,
		Payload: map[string]interface{}{"biodataId": biodataID},
	})
	logger.CtxInfo(ctxOf(db), "Access request created", "request_id", request.ID, "biodata_id", biodataID)
	return request, nil
}

// CheckRequestable - анкета существует и принадлежит не запрашивающему
func (s *AccessRequestServiceImpl) CheckRequestable(db *gorm.DB, identity *auth.Identity, biodataID int) error {
	if err := auth.RequireIdentity(identity); err != nil {
		return err
	}
	biodata, err := s.biodataRepo.FindByBiodataID(db, biodataID)
	if err != nil {
		return handleBiodataError(err)
	}
	if biodata.OwnerEmail == identity.Email {
		return apperrors.ErrOwnBiodataRequest
	}
	return nil
}

// EnsureRequested возвращает запрос пары, создавая его при отсутствии.
// Второе значение - был ли запрос создан этим вызовом.
func (s *AccessRequestServiceImpl) EnsureRequested(db *gorm.DB, identity *auth.Identity, biodataID int) (*models.AccessRequest, bool, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, false, err
	}
	existing, err := s.accessRepo.FindByPair(db, biodataID, identity.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrAccessRequestNotFound) {
		return nil, false, apperrors.InternalError(err)
	}

	request, err := s.Create(db, identity, biodataID)
	if err == nil {
		return request, true, nil
	}
	if !errors.Is(err, repositories.ErrAccessRequestExists) {
		return nil, false, err
	}
	// параллельный Create успел первым
	existing, findErr := s.accessRepo.FindByPair(db, biodataID, identity.Email)
	if findErr != nil {
		return nil, false, handleAccessRequestError(findErr)
	}
	return existing, false, nil
}

func (s *AccessRequestServiceImpl) displayName(db *gorm.DB, email string) string {
	member, err := s.memberRepo.FindByEmail(db, email)
	if err != nil {
		return ""
	}
	return member.DisplayName
}

func (s *AccessRequestServiceImpl) ListMine(db *gorm.DB, identity *auth.Identity) ([]models.AccessRequest, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	requests, err := s.accessRepo.FindByRequester(db, identity.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

// Delete - автор запроса или админ
func (s *AccessRequestServiceImpl) Delete(db *gorm.DB, identity *auth.Identity, requestID string) error {
	if err := auth.RequireIdentity(identity); err != nil {
		return err
	}
	request, err := s.accessRepo.FindByID(db, requestID)
	if err != nil {
		return handleAccessRequestError(err)
	}
	if err := s.guard.RequireOwnerOrAdmin(db, identity, request.RequesterEmail); err != nil {
		return err
	}

	if err := s.accessRepo.Delete(db, requestID); err != nil {
		return handleAccessRequestError(err)
	}

	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.AccessRequestDeleted,
		Actor:   identity.Email,
		Subject: requestID,
		Payload: map[string]interface{}{"biodataId": request.BiodataID, "status": request.Status},
	})
	return nil
}

// Decide переводит pending в approved/rejected. Условный UPDATE
// гарантирует одного победителя при параллельных решениях.
func (s *AccessRequestServiceImpl) Decide(db *gorm.DB, identity *auth.Identity, requestID string, status models.AccessStatus) (*models.AccessRequest, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	admin, err := s.guard.RequireAdmin(db, identity.Email)
	if err != nil {
		return nil, err
	}
	if !status.IsTerminal() {
		return nil, apperrors.ErrInvalidOperation("access_request", "Status must be approved or rejected")
	}

	request, err := s.accessRepo.Decide(db, requestID, status, admin.Email, s.effects.now())
	if err != nil {
		return nil, handleAccessRequestError(err)
	}

	s.effects.metrics().AccessTransition(string(status))
	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.AccessRequestDecided,
		Actor:   admin.Email,
		Subject: request.ID,
		Payload: map[string]interface{}{"biodataId": request.BiodataID, "status": status},
	})
	s.effects.notifier().AccessDecided(request)
	logger.CtxInfo(ctxOf(db), "Access request decided", "request_id", request.ID, "status", status)
	return request, nil
}

// ListByStatus - пустой статус возвращает все запросы
func (s *AccessRequestServiceImpl) ListByStatus(db *gorm.DB, identity *auth.Identity, status models.AccessStatus) ([]models.AccessRequest, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	if _, err := s.guard.RequireAdmin(db, identity.Email); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, apperrors.ErrInvalidOperation("access_request", "Unknown status")
	}
	requests, err := s.accessRepo.FindByStatus(db, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

func handleAccessRequestError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrAccessRequestNotFound):
		return apperrors.ErrAccessRequestNotFound.WithError(err)
	case errors.Is(err, repositories.ErrAccessRequestExists):
		return apperrors.ErrAccessRequestExists.WithError(err)
	case errors.Is(err, repositories.ErrAccessRequestDecided):
		return apperrors.ErrAccessRequestDecided.WithError(err)
	}
	return apperrors.InternalError(err)
}
