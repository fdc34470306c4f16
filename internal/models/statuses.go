package models

type MemberRole string
type PremiumStatus string
type AccessStatus string
type Sex string
type Division string
type PaymentPurpose string

const (
	MemberRoleMember MemberRole = "member"
	MemberRoleAdmin  MemberRole = "admin"

	PremiumStatusNone    PremiumStatus = "none"
	PremiumStatusPending PremiumStatus = "pending"
	PremiumStatusPremium PremiumStatus = "premium"

	AccessStatusPending  AccessStatus = "pending"
	AccessStatusApproved AccessStatus = "approved"
	AccessStatusRejected AccessStatus = "rejected"

	SexMale   Sex = "Male"
	SexFemale Sex = "Female"

	DivisionDhaka      Division = "Dhaka"
	DivisionChattagram Division = "Chattagram"
	DivisionRangpur    Division = "Rangpur"
	DivisionBarisal    Division = "Barisal"
	DivisionKhulna     Division = "Khulna"
	DivisionMymensingh Division = "Mymensingh"
	DivisionSylhet     Division = "Sylhet"

	PaymentPurposeContactRequest PaymentPurpose = "contact_request"
	PaymentPurposePremium        PaymentPurpose = "premium"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleMember, MemberRoleAdmin:
		return true
	}
	return false
}

func (s PremiumStatus) Valid() bool {
	switch s {
	case PremiumStatusNone, PremiumStatusPending, PremiumStatusPremium:
		return true
	}
	return false
}

// PremiumActor - кто инициирует переход premium-статуса
type PremiumActor int

const (
	PremiumActorViewer PremiumActor = iota
	PremiumActorAdmin
)

// CanTransition описывает автомат premium-статуса:
// none -(viewer)-> pending -(admin)-> premium | none.
// premium в этой модели терминален.
func (s PremiumStatus) CanTransition(to PremiumStatus, actor PremiumActor) bool {
	switch s {
	case PremiumStatusNone:
		return to == PremiumStatusPending && actor == PremiumActorViewer
	case PremiumStatusPending:
		return actor == PremiumActorAdmin && (to == PremiumStatusPremium || to == PremiumStatusNone)
	case PremiumStatusPremium:
		return false
	}
	return false
}

func (s AccessStatus) Valid() bool {
	switch s {
	case AccessStatusPending, AccessStatusApproved, AccessStatusRejected:
		return true
	}
	return false
}

// IsTerminal - approved и rejected окончательны
func (s AccessStatus) IsTerminal() bool {
	switch s {
	case AccessStatusApproved, AccessStatusRejected:
		return true
	case AccessStatusPending:
		return false
	}
	return false
}

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale:
		return true
	}
	return false
}

func (d Division) Valid() bool {
	switch d {
	case DivisionDhaka, DivisionChattagram, DivisionRangpur, DivisionBarisal,
		DivisionKhulna, DivisionMymensingh, DivisionSylhet:
		return true
	}
	return false
}

func (p PaymentPurpose) Valid() bool {
	switch p {
	case PaymentPurposeContactRequest, PaymentPurposePremium:
		return true
	}
	return false
}
