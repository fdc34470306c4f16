package services

import (
	"time"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/dto"
	"destined_affinity/internal/events"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/pkg/apperrors"

	"gorm.io/gorm"
)

const successStoriesLimit = 20

type MarriageService interface {
	IsMarried(db *gorm.DB, biodataID int) (*dto.MarriageStatus, error)
	ListPublic(db *gorm.DB) ([]dto.SuccessStory, error)
	Upsert(db *gorm.DB, identity *auth.Identity, req *dto.MarriageUpsertRequest) (*dto.SuccessStory, bool, error)
}

type MarriageServiceImpl struct {
	marriageRepo repositories.MarriageRepository
	biodataRepo  repositories.BiodataRepository
	effects      *Effects
}

func NewMarriageService(marriageRepo repositories.MarriageRepository, biodataRepo repositories.BiodataRepository, effects *Effects) MarriageService {
	return &MarriageServiceImpl{
		marriageRepo: marriageRepo,
		biodataRepo:  biodataRepo,
		effects:      effects,
	}
}

// IsMarried - отсутствие записи это обычный ответ married=false, не 404
func (s *MarriageServiceImpl) IsMarried(db *gorm.DB, biodataID int) (*dto.MarriageStatus, error) {
	married, err := s.marriageRepo.IsMarried(db, biodataID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.MarriageStatus{BiodataID: biodataID, Married: married}, nil
}

func (s *MarriageServiceImpl) ListPublic(db *gorm.DB) ([]dto.SuccessStory, error) {
	records, err := s.marriageRepo.ListPublic(db, successStoriesLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stories := make([]dto.SuccessStory, 0, len(records))
	for i := range records {
		stories = append(stories, toSuccessStory(&records[i]))
	}
	return stories, nil
}

// Upsert - одна история на email; отправитель владеет одной из двух анкет,
// female id указывает на анкету Female, male id на Male
func (s *MarriageServiceImpl) Upsert(db *gorm.DB, identity *auth.Identity, req *dto.MarriageUpsertRequest) (*dto.SuccessStory, bool, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, false, err
	}

	female, err := s.biodataRepo.FindByBiodataID(db, req.FemaleBiodataID)
	if err != nil {
		return nil, false, handleBiodataError(err)
	}
	male, err := s.biodataRepo.FindByBiodataID(db, req.MaleBiodataID)
	if err != nil {
		return nil, false, handleBiodataError(err)
	}
	if female.Sex != models.SexFemale || male.Sex != models.SexMale {
		return nil, false, apperrors.ErrInvalidOperation("marriage", "femaleBiodataId must be a Female biodata and maleBiodataId a Male biodata")
	}
	if female.OwnerEmail != identity.Email && male.OwnerEmail != identity.Email {
		return nil, false, apperrors.ErrNotResourceOwner
	}

	marriageDate, err := parseDate("marriageDate", req.MarriageDate)
	if err != nil {
		return nil, false, err
	}

	record := &models.MarriageRecord{
		OwnerEmail:      identity.Email,
		FemaleBiodataID: req.FemaleBiodataID,
		MaleBiodataID:   req.MaleBiodataID,
		Rating:          req.Rating,
		MarriageDate:    marriageDate,
		Story:           req.Story,
		ImageRef:        req.Image,
	}
	created, err := s.marriageRepo.Upsert(db, record)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}

	s.effects.publish(ctxOf(db), events.Event{
		Type:    events.MarriageRecordUpserted,
		Actor:   identity.Email,
		Subject: record.ID,
		Payload: map[string]interface{}{"femaleBiodataId": record.FemaleBiodataID, "maleBiodataId": record.MaleBiodataID, "created": created},
	})

	story := toSuccessStory(record)
	return &story, created, nil
}

func toSuccessStory(r *models.MarriageRecord) dto.SuccessStory {
	story := dto.SuccessStory{
		FemaleBiodataID: r.FemaleBiodataID,
		MaleBiodataID:   r.MaleBiodataID,
		Rating:          r.Rating,
		Story:           r.Story,
		Image:           r.ImageRef,
		CreatedAt:       r.CreatedAt,
	}
	if r.MarriageDate != nil {
		d := time.Time(*r.MarriageDate)
		story.MarriageDate = &d
	}
	return story
}
