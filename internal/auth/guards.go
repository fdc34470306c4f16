package auth

import (
	"errors"

	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/pkg/apperrors"

	"gorm.io/gorm"
)

// MemberLookup - источник сохраненной роли участника
type MemberLookup interface {
	FindByEmail(db *gorm.DB, email string) (*models.Member, error)
}

// Guard - набор проверок доступа, которые сервисы вызывают явно перед операцией
type Guard struct {
	members MemberLookup
}

func NewGuard(members MemberLookup) *Guard {
	return &Guard{members: members}
}

// RequireIdentity - запрос должен быть аутентифицирован
func RequireIdentity(identity *Identity) error {
	if identity == nil || identity.Email == "" {
		return apperrors.NewUnauthenticatedError("Authentication required")
	}
	return nil
}

// RequireSelf - действие над ресурсом, привязанным к email, разрешено только его владельцу
func RequireSelf(identity *Identity, email string) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if identity.Email != NormalizeEmail(email) {
		return apperrors.ErrNotResourceOwner
	}
	return nil
}

// RequireAdmin проверяет сохраненную роль. Отсутствие участника - тоже Forbidden.
func (g *Guard) RequireAdmin(db *gorm.DB, email string) (*models.Member, error) {
	if email == "" {
		return nil, apperrors.ErrInsufficientPermissions
	}

	member, err := g.members.FindByEmail(db, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.ErrInsufficientPermissions
		}
		return nil, apperrors.InternalError(err)
	}
	if member.Role != models.MemberRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return member, nil
}

// IsAdmin - то же, что RequireAdmin, но без ошибки доступа
func (g *Guard) IsAdmin(db *gorm.DB, email string) (bool, error) {
	_, err := g.RequireAdmin(db, email)
	if err == nil {
		return true, nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.CodeForbidden {
		return false, nil
	}
	return false, err
}

// RequireOwnerOrAdmin - владелец ресурса или админ
func (g *Guard) RequireOwnerOrAdmin(db *gorm.DB, identity *Identity, ownerEmail string) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if RequireSelf(identity, ownerEmail) == nil {
		return nil
	}
	if _, err := g.RequireAdmin(db, identity.Email); err != nil {
		return err
	}
	return nil
}
