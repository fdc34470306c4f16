package algorithms

import (
	"testing"

	"destined_affinity/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityScore(t *testing.T) {
	base := &models.Biodata{
		BiodataID:         1,
		Sex:               models.SexFemale,
		Age:               27,
		HeightCm:          160,
		PermanentDivision: models.DivisionDhaka,
		PresentDivision:   models.DivisionDhaka,
		Occupation:        "Doctor",
	}

	identical := *base
	identical.BiodataID = 2
	identical.OwnerPremiumStatus = models.PremiumStatusPremium
	score, reasons := SimilarityScore(base, &identical)
	assert.InDelta(t, 100.0, score, 0.001)
	assert.Contains(t, reasons, "Same permanent division")
	assert.Contains(t, reasons, "Same occupation")

	distant := &models.Biodata{BiodataID: 3, Age: 45, HeightCm: 190, PermanentDivision: models.DivisionSylhet}
	score, reasons = SimilarityScore(base, distant)
	assert.Equal(t, 0.0, score)
	assert.Empty(t, reasons)

	// рост не заполнен - половина веса роста
	noHeight := &models.Biodata{BiodataID: 4, Age: 45}
	score, _ = SimilarityScore(base, noHeight)
	assert.InDelta(t, weightHeight/2/maxScore*100, score, 0.001)
}

func TestRankSimilar(t *testing.T) {
	base := &models.Biodata{BiodataID: 1, Age: 30, PermanentDivision: models.DivisionKhulna}
	candidates := []models.Biodata{
		{BiodataID: 1, Age: 30, PermanentDivision: models.DivisionKhulna},
		{BiodataID: 5, Age: 40},
		{BiodataID: 4, Age: 31, PermanentDivision: models.DivisionKhulna},
		{BiodataID: 3, Age: 40},
		{BiodataID: 2, Age: 30},
	}

	ranked := RankSimilar(base, candidates, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, 4, ranked[0].Biodata.BiodataID)
	assert.Equal(t, 2, ranked[1].Biodata.BiodataID)
	// равные оценки упорядочены по biodataId
	assert.Equal(t, 3, ranked[2].Biodata.BiodataID)

	all := RankSimilar(base, candidates, 0)
	assert.Len(t, all, 4)
}
