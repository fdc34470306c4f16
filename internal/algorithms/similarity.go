package algorithms

import (
	"sort"

	"destined_affinity/internal/models"
)

// Веса признаков; сумма maxScore
const (
	weightDivision        = 30.0
	weightAge             = 25.0
	weightHeight          = 15.0
	weightPresentDivision = 10.0
	weightOccupation      = 10.0
	weightPremium         = 10.0

	maxScore = weightDivision + weightAge + weightHeight + weightPresentDivision + weightOccupation + weightPremium

	// разница, при которой вклад признака падает до нуля
	ageSpread    = 10
	heightSpread = 20
)

// Scored - кандидат с оценкой похожести 0-100
type Scored struct {
	Biodata models.Biodata
	Score   float64
	Reasons []string
}

// SimilarityScore - насколько candidate похож на base (0-100)
func SimilarityScore(base, candidate *models.Biodata) (float64, []string) {
	score := 0.0
	reasons := []string{}

	if base.PermanentDivision != "" && base.PermanentDivision == candidate.PermanentDivision {
		score += weightDivision
		reasons = append(reasons, "Same permanent division")
	}

	if ageScore := closeness(base.Age, candidate.Age, ageSpread) * weightAge; ageScore > 0 {
		score += ageScore
		if diff(base.Age, candidate.Age) <= 2 {
			reasons = append(reasons, "Similar age")
		}
	}

	// рост часто не заполнен: тогда половина баллов
	if base.HeightCm == 0 || candidate.HeightCm == 0 {
		score += weightHeight / 2
	} else {
		score += closeness(base.HeightCm, candidate.HeightCm, heightSpread) * weightHeight
	}

	if base.PresentDivision != "" && base.PresentDivision == candidate.PresentDivision {
		score += weightPresentDivision
		reasons = append(reasons, "Lives in the same division")
	}

	if base.Occupation != "" && base.Occupation == candidate.Occupation {
		score += weightOccupation
		reasons = append(reasons, "Same occupation")
	}

	if candidate.OwnerPremiumStatus == models.PremiumStatusPremium {
		score += weightPremium
	}

	return score / maxScore * 100.0, reasons
}

// RankSimilar сортирует кандидатов по убыванию оценки (при равенстве по biodataId)
// и возвращает первые limit; исходная анкета исключается
func RankSimilar(base *models.Biodata, candidates []models.Biodata, limit int) []Scored {
	ranked := make([]Scored, 0, len(candidates))
	for i := range candidates {
		if candidates[i].BiodataID == base.BiodataID {
			continue
		}
		score, reasons := SimilarityScore(base, &candidates[i])
		ranked = append(ranked, Scored{Biodata: candidates[i], Score: score, Reasons: reasons})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Biodata.BiodataID < ranked[j].Biodata.BiodataID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// closeness: 1 при равенстве, линейно до 0 при разнице spread и больше
func closeness(a, b, spread int) float64 {
	d := diff(a, b)
	if d >= spread {
		return 0
	}
	return 1 - float64(d)/float64(spread)
}

func diff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
