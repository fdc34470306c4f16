package dto

type PublicStats struct {
	TotalBiodatas  int64 `json:"totalBiodatas"`
	MaleBiodatas   int64 `json:"maleBiodatas"`
	FemaleBiodatas int64 `json:"femaleBiodatas"`
	Marriages      int64 `json:"marriages"`
}

type AdminStats struct {
	PublicStats
	Members                int64 `json:"members"`
	PremiumMembers         int64 `json:"premiumMembers"`
	PendingPremium         int64 `json:"pendingPremium"`
	PendingAccessRequests  int64 `json:"pendingAccessRequests"`
	ApprovedAccessRequests int64 `json:"approvedAccessRequests"`
	RevenueCents           int64 `json:"revenueCents"`
}
