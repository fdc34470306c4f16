package services

import (
	"errors"
	"time"

	"destined_affinity/internal/algorithms"
	"destined_affinity/internal/auth"
	"destined_affinity/internal/dto"
	"destined_affinity/internal/events"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/internal/visibility"
	"destined_affinity/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	premiumListLimit = 6
	similarLimit     = 3
	similarPoolSize  = 50
)

type BiodataService interface {
	Upsert(db *gorm.DB, identity *auth.Identity, req *dto.BiodataUpsertRequest) (*visibility.BiodataView, bool, error)
	GetMine(db *gorm.DB, identity *auth.Identity) (*visibility.BiodataView, error)
	GetByID(db *gorm.DB, identity *auth.Identity, biodataID int) (*visibility.BiodataView, error)

	// Search operations
	List(db *gorm.DB, identity *auth.Identity, query *dto.BiodataListQuery, page, pageSize int) ([]visibility.BiodataView, int64, error)
	ListPremium(db *gorm.DB, identity *auth.Identity, sort string) ([]visibility.BiodataView, error)
	Similar(db *gorm.DB, identity *auth.Identity, biodataID int) ([]visibility.BiodataView, error)
}

type BiodataServiceImpl struct {
	biodataRepo repositories.BiodataRepository
	accessRepo  repositories.AccessRequestRepository
	guard       *auth.Guard
	effects     *Effects
}

func NewBiodataService(
	biodataRepo repositories.BiodataRepository,
	accessRepo repositories.AccessRequestRepository,
	guard *auth.Guard,
	effects *Effects,
) BiodataService {
	return &BiodataServiceImpl{
		biodataRepo: biodataRepo,
		accessRepo:  accessRepo,
		guard:       guard,
		effects:     effects,
	}
}

// Upsert: первая запись получает biodataId из счетчика, следующие его сохраняют.
// Возвращает true, если анкета создана.
func (s *BiodataServiceImpl) Upsert(db *gorm.DB, identity *auth.Identity, req *dto.BiodataUpsertRequest) (*visibility.BiodataView, bool, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, false, err
	}

	existing, err := s.biodataRepo.FindByOwner(db, identity.Email)
	switch {
	case err == nil:
		return s.update(db, identity, existing, req)
	case !errors.Is(err, repositories.ErrBiodataNotFound):
		return nil, false, apperrors.InternalError(err)
	}

	if req.Sex == nil {
		return nil, false, apperrors.ValidationError(map[string]string{"sex": "This field is required"})
	}

	biodata := &models.Biodata{OwnerEmail: identity.Email}
	if err := applyBiodataPatch(biodata, req); err != nil {
		return nil, false, err
	}

	if err := s.biodataRepo.CreateWithNextID(db, biodata); err != nil {
		if !errors.Is(err, repositories.ErrBiodataAlreadyExists) {
			return nil, false, handleBiodataError(err)
		}
		// Параллельная первая запись того же владельца уже создала анкету
		existing, findErr := s.biodataRepo.FindByOwner(db, identity.Email)
		if findErr != nil {
			return nil, false, handleBiodataError(err)
		}
		return s.update(db, identity, existing, req)
	}

	s.effects.metrics().BiodataCreated()
	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.BiodataCreated,
		Actor:   identity.Email,
		Subject: biodata.ID,
		Payload: map[string]interface{}{"biodataId": biodata.BiodataID},
	})
	logger.CtxInfo(ctxOf(db), "Biodata created", "biodata_id", biodata.BiodataID)

	view := visibility.Project(biodata, visibility.Viewer{Email: identity.Email}, visibility.DetailView)
	return &view, true, nil
}

func (s *BiodataServiceImpl) update(db *gorm.DB, identity *auth.Identity, existing *models.Biodata, req *dto.BiodataUpsertRequest) (*visibility.BiodataView, bool, error) {
	if err := applyBiodataPatch(existing, req); err != nil {
		return nil, false, err
	}
	if err := s.biodataRepo.Update(db, existing); err != nil {
		return nil, false, handleBiodataError(err)
	}
	view := visibility.Project(existing, visibility.Viewer{Email: identity.Email}, visibility.DetailView)
	return &view, false, nil
}

func (s *BiodataServiceImpl) GetMine(db *gorm.DB, identity *auth.Identity) (*visibility.BiodataView, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	biodata, err := s.biodataRepo.FindByOwner(db, identity.Email)
	if err != nil {
		return nil, handleBiodataError(err)
	}
	view := visibility.Project(biodata, visibility.Viewer{Email: identity.Email}, visibility.DetailView)
	return &view, nil
}

// GetByID - детальная страница; контакты только владельцу, админу
// или при одобренном запросе доступа
func (s *BiodataServiceImpl) GetByID(db *gorm.DB, identity *auth.Identity, biodataID int) (*visibility.BiodataView, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	biodata, err := s.biodataRepo.FindByBiodataID(db, biodataID)
	if err != nil {
		return nil, handleBiodataError(err)
	}

	viewer, err := s.viewerFor(db, identity)
	if err != nil {
		return nil, err
	}
	if biodata.OwnerEmail != viewer.Email && !viewer.IsAdmin {
		viewer.HasApprovedAccess, err = s.accessRepo.HasApproved(db, biodataID, viewer.Email)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	view := visibility.Project(biodata, viewer, visibility.DetailView)
	return &view, nil
}

func (s *BiodataServiceImpl) List(db *gorm.DB, identity *auth.Identity, query *dto.BiodataListQuery, page, pageSize int) ([]visibility.BiodataView, int64, error) {
	filter := repositories.BiodataFilter{
		Sex:               models.Sex(query.Sex),
		PermanentDivision: models.Division(query.PermanentDivision),
		MinAge:            query.MinAge,
		MaxAge:            query.MaxAge,
		MinHeight:         query.MinHeight,
		MaxHeight:         query.MaxHeight,
		Sort:              query.Sort,
		Page:              page,
		PageSize:          pageSize,
	}

	list, err := s.biodataRepo.List(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.biodataRepo.Count(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	views, err := s.project(db, identity, list)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListPremium - анкеты premium-участников, сортировка по возрасту
func (s *BiodataServiceImpl) ListPremium(db *gorm.DB, identity *auth.Identity, sort string) ([]visibility.BiodataView, error) {
	order := ""
	switch sort {
	case "asc":
		order = repositories.SortAgeAsc
	case "desc":
		order = repositories.SortAgeDesc
	}

	list, err := s.biodataRepo.ListPremium(db, order, premiumListLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.project(db, identity, list)
}

func (s *BiodataServiceImpl) Similar(db *gorm.DB, identity *auth.Identity, biodataID int) ([]visibility.BiodataView, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	biodata, err := s.biodataRepo.FindByBiodataID(db, biodataID)
	if err != nil {
		return nil, handleBiodataError(err)
	}
	pool, err := s.biodataRepo.FindSimilar(db, biodata, similarPoolSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ranked := algorithms.RankSimilar(biodata, pool, similarLimit)
	list := make([]models.Biodata, 0, len(ranked))
	for _, r := range ranked {
		list = append(list, r.Biodata)
	}
	return s.project(db, identity, list)
}

// project - карточки списка; роль админа проверяется один раз на запрос
func (s *BiodataServiceImpl) project(db *gorm.DB, identity *auth.Identity, list []models.Biodata) ([]visibility.BiodataView, error) {
	viewer, err := s.viewerFor(db, identity)
	if err != nil {
		return nil, err
	}
	return visibility.ProjectAll(list, func(*models.Biodata) visibility.Viewer { return viewer }, visibility.ListingView), nil
}

func (s *BiodataServiceImpl) viewerFor(db *gorm.DB, identity *auth.Identity) (visibility.Viewer, error) {
	if identity == nil || identity.Email == "" {
		return visibility.Viewer{}, nil
	}
	isAdmin, err := s.guard.IsAdmin(db, identity.Email)
	if err != nil {
		return visibility.Viewer{}, err
	}
	return visibility.Viewer{Email: identity.Email, IsAdmin: isAdmin}, nil
}

// applyBiodataPatch переносит в модель только переданные поля
func applyBiodataPatch(b *models.Biodata, req *dto.BiodataUpsertRequest) error {
	setString(&b.Name, req.Name)
	if req.Sex != nil {
		b.Sex = models.Sex(*req.Sex)
	}
	setInt(&b.Age, req.Age)
	setInt(&b.HeightCm, req.HeightCm)
	setInt(&b.WeightKg, req.WeightKg)
	if req.DateOfBirth != nil {
		dob, err := parseDate("dateOfBirth", *req.DateOfBirth)
		if err != nil {
			return err
		}
		b.DateOfBirth = dob
	}
	setString(&b.Race, req.Race)
	setString(&b.Occupation, req.Occupation)
	setString(&b.FatherName, req.FatherName)
	setString(&b.MotherName, req.MotherName)
	if req.PermanentDivision != nil {
		b.PermanentDivision = models.Division(*req.PermanentDivision)
	}
	if req.PresentDivision != nil {
		b.PresentDivision = models.Division(*req.PresentDivision)
	}
	setString(&b.ImageRef, req.Image)
	setInt(&b.ExpectedPartnerAge, req.ExpectedPartnerAge)
	setInt(&b.ExpectedPartnerHeightCm, req.ExpectedPartnerHeightCm)
	setInt(&b.ExpectedPartnerWeightKg, req.ExpectedPartnerWeightKg)
	setString(&b.ContactEmail, req.ContactEmail)
	setString(&b.Mobile, req.Mobile)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// parseDate - пустая строка сбрасывает дату
func parseDate(field, value string) (*datatypes.Date, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{field: "Must be a date in YYYY-MM-DD format"})
	}
	d := datatypes.Date(t)
	return &d, nil
}

func handleBiodataError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrBiodataNotFound):
		return apperrors.ErrBiodataNotFound.WithError(err)
	case errors.Is(err, repositories.ErrBiodataAlreadyExists):
		return apperrors.ErrAlreadyExists(err, "biodata", "Biodata already exists")
	}
	return apperrors.InternalError(err)
}
