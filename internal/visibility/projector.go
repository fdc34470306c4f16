// Package visibility решает, какие поля анкеты видит конкретный зритель.
// Это единственное место, где собирается BiodataView.
package visibility

import (
	"time"

	"destined_affinity/internal/models"
)

type View int

const (
	// ListingView - карточка в списках и поиске
	ListingView View = iota
	// DetailView - страница анкеты
	DetailView
)

// Viewer - контекст зрителя относительно конкретной анкеты
type Viewer struct {
	Email             string
	IsAdmin           bool
	HasApprovedAccess bool
}

// Level - итоговый уровень раскрытия
type Level string

const (
	LevelOwner   Level = "owner"
	LevelAdmin   Level = "admin"
	LevelPublic  Level = "public"
	LevelDetail  Level = "detail"
	LevelContact Level = "contact"
)

// BiodataView - ответ для клиента. Все поля кроме публичных - указатели с omitempty:
// не заполненное поле не попадает в JSON.
type BiodataView struct {
	BiodataID         int                  `json:"biodataId"`
	Sex               models.Sex           `json:"sex"`
	Image             string               `json:"image"`
	PermanentDivision models.Division      `json:"permanentDivision"`
	Age               int                  `json:"age"`
	Occupation        string               `json:"occupation"`
	Status            models.PremiumStatus `json:"status"`
	Visibility        Level                `json:"visibility"`

	Name                    *string          `json:"name,omitempty"`
	HeightCm                *int             `json:"heightCm,omitempty"`
	WeightKg                *int             `json:"weightKg,omitempty"`
	DateOfBirth             *time.Time       `json:"dateOfBirth,omitempty"`
	Race                    *string          `json:"race,omitempty"`
	FatherName              *string          `json:"fatherName,omitempty"`
	MotherName              *string          `json:"motherName,omitempty"`
	PresentDivision         *models.Division `json:"presentDivision,omitempty"`
	ExpectedPartnerAge      *int             `json:"expectedPartnerAge,omitempty"`
	ExpectedPartnerHeightCm *int             `json:"expectedPartnerHeightCm,omitempty"`
	ExpectedPartnerWeightKg *int             `json:"expectedPartnerWeightKg,omitempty"`

	OwnerEmail   *string `json:"ownerEmail,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	Mobile       *string `json:"mobile,omitempty"`
}

// HasContact - раскрыты ли контактные поля
func (v BiodataView) HasContact() bool {
	return v.ContactEmail != nil || v.Mobile != nil
}

// Resolve применяет порядок: владелец, админ, список, детальная страница
func Resolve(b *models.Biodata, viewer Viewer, view View) Level {
	switch {
	case viewer.Email != "" && viewer.Email == b.OwnerEmail:
		return LevelOwner
	case viewer.IsAdmin:
		return LevelAdmin
	case view == ListingView:
		return LevelPublic
	case viewer.Email != "" && viewer.HasApprovedAccess:
		return LevelContact
	default:
		return LevelDetail
	}
}

// Project строит представление анкеты для зрителя
func Project(b *models.Biodata, viewer Viewer, view View) BiodataView {
	level := Resolve(b, viewer, view)

	out := BiodataView{
		BiodataID:         b.BiodataID,
		Sex:               b.Sex,
		Image:             b.ImageRef,
		PermanentDivision: b.PermanentDivision,
		Age:               b.Age,
		Occupation:        b.Occupation,
		Status:            ownerStatus(b),
		Visibility:        level,
	}

	switch level {
	case LevelPublic:
		return out
	case LevelDetail:
		fillBiography(&out, b)
	case LevelContact:
		fillBiography(&out, b)
		fillContact(&out, b)
	case LevelOwner, LevelAdmin:
		fillBiography(&out, b)
		fillContact(&out, b)
		out.OwnerEmail = ptr(b.OwnerEmail)
	}
	return out
}

// ProjectAll - то же для списка с единым зрителем
func ProjectAll(list []models.Biodata, viewerFor func(*models.Biodata) Viewer, view View) []BiodataView {
	out := make([]BiodataView, 0, len(list))
	for i := range list {
		out = append(out, Project(&list[i], viewerFor(&list[i]), view))
	}
	return out
}

func fillBiography(out *BiodataView, b *models.Biodata) {
	out.Name = ptr(b.Name)
	out.HeightCm = ptr(b.HeightCm)
	out.WeightKg = ptr(b.WeightKg)
	if b.DateOfBirth != nil {
		dob := time.Time(*b.DateOfBirth)
		out.DateOfBirth = &dob
	}
	out.Race = ptr(b.Race)
	out.FatherName = ptr(b.FatherName)
	out.MotherName = ptr(b.MotherName)
	out.PresentDivision = ptr(b.PresentDivision)
	out.ExpectedPartnerAge = ptr(b.ExpectedPartnerAge)
	out.ExpectedPartnerHeightCm = ptr(b.ExpectedPartnerHeightCm)
	out.ExpectedPartnerWeightKg = ptr(b.ExpectedPartnerWeightKg)
}

func fillContact(out *BiodataView, b *models.Biodata) {
	out.ContactEmail = ptr(b.ContactEmail)
	out.Mobile = ptr(b.Mobile)
}

func ownerStatus(b *models.Biodata) models.PremiumStatus {
	if b.OwnerPremiumStatus == "" {
		return models.PremiumStatusNone
	}
	return b.OwnerPremiumStatus
}

func ptr[T any](v T) *T {
	return &v
}
