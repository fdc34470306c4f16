package services

import (
	"errors"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/dto"
	"destined_affinity/internal/events"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/pkg/apperrors"

	"gorm.io/gorm"
)

type MemberService interface {
	UpsertOnLogin(db *gorm.DB, req *dto.TokenRequest) (*models.Member, error)
	GetMe(db *gorm.DB, identity *auth.Identity) (*models.Member, error)
	GetByEmail(db *gorm.DB, identity *auth.Identity, email string) (*models.Member, error)
	RequestPremium(db *gorm.DB, identity *auth.Identity) (*models.Member, error)

	// Admin operations
	DecidePremium(db *gorm.DB, identity *auth.Identity, targetEmail string, status models.PremiumStatus) (*models.Member, error)
	SetRole(db *gorm.DB, identity *auth.Identity, memberID string, role models.MemberRole) (*models.Member, error)
	ListMembers(db *gorm.DB, identity *auth.Identity, query *dto.MemberSearchQuery, page, pageSize int) ([]models.Member, int64, error)
	ListPremiumRequests(db *gorm.DB, identity *auth.Identity) ([]models.Member, error)
	EnsureAdmin(db *gorm.DB, email string) (*models.Member, error)
}

type MemberServiceImpl struct {
	memberRepo repositories.MemberRepository
	guard      *auth.Guard
	effects    *Effects
}

func NewMemberService(memberRepo repositories.MemberRepository, guard *auth.Guard, effects *Effects) MemberService {
	return &MemberServiceImpl{
		memberRepo: memberRepo,
		guard:      guard,
		effects:    effects,
	}
}

// UpsertOnLogin создает участника при первом входе или возвращает существующего без изменений.
// Параллельный первый вход упирается в уникальный индекс и перечитывает строку.
func (s *MemberServiceImpl) UpsertOnLogin(db *gorm.DB, req *dto.TokenRequest) (*models.Member, error) {
	email := auth.NormalizeEmail(req.Email)

	member, err := s.memberRepo.FindByEmail(db, email)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, repositories.ErrMemberNotFound) {
		return nil, apperrors.InternalError(err)
	}

	member = &models.Member{
		Email:         email,
		DisplayName:   req.DisplayName,
		PhotoURL:      req.PhotoURL,
		Role:          models.MemberRoleMember,
		PremiumStatus: models.PremiumStatusNone,
	}
	if err := s.memberRepo.Create(db, member); err != nil {
		if errors.Is(err, repositories.ErrMemberAlreadyExists) {
			existing, findErr := s.memberRepo.FindByEmail(db, email)
			if findErr != nil {
				return nil, apperrors.InternalError(findErr)
			}
			return existing, nil
		}
		return nil, apperrors.InternalError(err)
	}

	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.MemberCreated,
		Actor:   email,
		Subject: member.ID,
	})
	logger.CtxInfo(ctxOf(db), "Member created", "member_id", member.ID)
	return member, nil
}

func (s *MemberServiceImpl) GetMe(db *gorm.DB, identity *auth.Identity) (*models.Member, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindByEmail(db, identity.Email)
	if err != nil {
		return nil, handleMemberError(err)
	}
	return member, nil
}

// GetByEmail - свой профиль или любой для админа
func (s *MemberServiceImpl) GetByEmail(db *gorm.DB, identity *auth.Identity, email string) (*models.Member, error) {
	if err := s.guard.RequireOwnerOrAdmin(db, identity, email); err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindByEmail(db, auth.NormalizeEmail(email))
	if err != nil {
		return nil, handleMemberError(err)
	}
	return member, nil
}

// RequestPremium: none -> pending, только сам участник
func (s *MemberServiceImpl) RequestPremium(db *gorm.DB, identity *auth.Identity) (*models.Member, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	return s.transitionPremium(db, identity.Email, identity.Email, models.PremiumStatusPending, models.PremiumActorViewer)
}

func (s *MemberServiceImpl) DecidePremium(db *gorm.DB, identity *auth.Identity, targetEmail string, status models.PremiumStatus) (*models.Member, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	if _, err := s.guard.RequireAdmin(db, identity.Email); err != nil {
		return nil, err
	}

	member, err := s.transitionPremium(db, identity.Email, auth.NormalizeEmail(targetEmail), status, models.PremiumActorAdmin)
	if err != nil {
		return nil, err
	}
	if member.PremiumStatus == models.PremiumStatusPremium {
		s.effects.notifier().PremiumApproved(member)
	}
	return member, nil
}

// transitionPremium проверяет переход по таблице и применяет его условным UPDATE
func (s *MemberServiceImpl) transitionPremium(db *gorm.DB, actor, email string, to models.PremiumStatus, by models.PremiumActor) (*models.Member, error) {
	member, err := s.memberRepo.FindByEmail(db, email)
	if err != nil {
		return nil, handleMemberError(err)
	}

	from := member.PremiumStatus
	if !from.CanTransition(to, by) {
		return nil, apperrors.ErrInvalidPremiumTransition.WithDetails(map[string]string{
			"from": string(from),
			"to":   string(to),
		})
	}

	if err := s.memberRepo.TransitionPremium(db, email, from, to); err != nil {
		return nil, handleMemberError(err)
	}
	member.PremiumStatus = to

	s.effects.metrics().PremiumTransition(string(to))
	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.MemberPremiumChanged,
		Actor:   actor,
		Subject: member.ID,
		Payload: map[string]interface{}{"from": from, "to": to},
	})
	return member, nil
}

func (s *MemberServiceImpl) SetRole(db *gorm.DB, identity *auth.Identity, memberID string, role models.MemberRole) (*models.Member, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	admin, err := s.guard.RequireAdmin(db, identity.Email)
	if err != nil {
		return nil, err
	}
	if admin.ID == memberID {
		return nil, apperrors.ErrCannotModifySelf
	}
	if !role.Valid() {
		return nil, apperrors.ErrInvalidOperation("member", "Unknown role")
	}

	member, err := s.memberRepo.FindByID(db, memberID)
	if err != nil {
		return nil, handleMemberError(err)
	}
	if member.Role == role {
		return member, nil
	}

	previous := member.Role
	if err := s.memberRepo.UpdateRole(db, memberID, role); err != nil {
		return nil, handleMemberError(err)
	}
	member.Role = role

	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.MemberRoleChanged,
		Actor:   admin.Email,
		Subject: member.ID,
		Payload: map[string]interface{}{"from": previous, "to": role},
	})
	logger.CtxInfo(ctxOf(db), "Member role changed", "member_id", member.ID, "role", role)
	return member, nil
}

func (s *MemberServiceImpl) ListMembers(db *gorm.DB, identity *auth.Identity, query *dto.MemberSearchQuery, page, pageSize int) ([]models.Member, int64, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, 0, err
	}
	if _, err := s.guard.RequireAdmin(db, identity.Email); err != nil {
		return nil, 0, err
	}

	members, total, err := s.memberRepo.FindWithFilter(db, repositories.MemberFilter{
		Search:   query.Search,
		Role:     models.MemberRole(query.Role),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return members, total, nil
}

func (s *MemberServiceImpl) ListPremiumRequests(db *gorm.DB, identity *auth.Identity) ([]models.Member, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	if _, err := s.guard.RequireAdmin(db, identity.Email); err != nil {
		return nil, err
	}
	members, err := s.memberRepo.FindByPremiumStatus(db, models.PremiumStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return members, nil
}

// EnsureAdmin - начальный админ при старте: создает или повышает участника
func (s *MemberServiceImpl) EnsureAdmin(db *gorm.DB, email string) (*models.Member, error) {
	email = auth.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.ErrInvalidOperation("member", "Admin email is empty")
	}

	var result *models.Member
	err := db.Transaction(func(tx *gorm.DB) error {
		member, err := s.memberRepo.FindByEmail(tx, email)
		switch {
		case errors.Is(err, repositories.ErrMemberNotFound):
			member = &models.Member{
				Email:         email,
				Role:          models.MemberRoleAdmin,
				PremiumStatus: models.PremiumStatusNone,
			}
			if err := s.memberRepo.Create(tx, member); err != nil {
				return err
			}
		case err != nil:
			return err
		case member.Role != models.MemberRoleAdmin:
			if err := s.memberRepo.UpdateRole(tx, member.ID, models.MemberRoleAdmin); err != nil {
				return err
			}
			member.Role = models.MemberRoleAdmin
		}
		result = member
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return result, nil
}

func handleMemberError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMemberNotFound):
		return apperrors.ErrMemberNotFound.WithError(err)
	case errors.Is(err, repositories.ErrPremiumStatusChanged):
		return apperrors.ErrInvalidPremiumTransition.WithError(err)
	case errors.Is(err, repositories.ErrMemberAlreadyExists):
		return apperrors.ErrAlreadyExists(err, "member", "Member already exists")
	}
	return apperrors.InternalError(err)
}
