package visibility

import (
	"encoding/json"
	"testing"

	"destined_affinity/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBiodata() *models.Biodata {
	return &models.Biodata{
		BiodataID:          1,
		OwnerEmail:         "a@x.com",
		Name:               "Ayesha",
		Sex:                models.SexFemale,
		Age:                26,
		HeightCm:           160,
		Occupation:         "Engineer",
		PermanentDivision:  models.DivisionDhaka,
		PresentDivision:    models.DivisionKhulna,
		FatherName:         "Karim",
		ImageRef:           "https://img/1.png",
		ContactEmail:       "contact@x.com",
		Mobile:             "+8801711111111",
		OwnerPremiumStatus: models.PremiumStatusPremium,
	}
}

func TestResolve_Precedence(t *testing.T) {
	b := sampleBiodata()

	cases := []struct {
		name   string
		viewer Viewer
		view   View
		want   Level
	}{
		{"owner listing", Viewer{Email: "a@x.com"}, ListingView, LevelOwner},
		{"owner detail", Viewer{Email: "a@x.com"}, DetailView, LevelOwner},
		{"admin listing", Viewer{Email: "admin@x.com", IsAdmin: true}, ListingView, LevelAdmin},
		{"admin detail", Viewer{Email: "admin@x.com", IsAdmin: true}, DetailView, LevelAdmin},
		{"guest listing", Viewer{}, ListingView, LevelPublic},
		{"member listing with approval", Viewer{Email: "b@x.com", HasApprovedAccess: true}, ListingView, LevelPublic},
		{"member detail", Viewer{Email: "c@x.com"}, DetailView, LevelDetail},
		{"member detail with approval", Viewer{Email: "b@x.com", HasApprovedAccess: true}, DetailView, LevelContact},
		{"anonymous approval flag ignored", Viewer{HasApprovedAccess: true}, DetailView, LevelDetail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(b, tc.viewer, tc.view))
		})
	}
}

func TestProject_NoContactWithoutApproval(t *testing.T) {
	b := sampleBiodata()

	viewers := []Viewer{
		{},
		{Email: "c@x.com"},
		{Email: "c@x.com", HasApprovedAccess: false},
	}
	for _, viewer := range viewers {
		for _, view := range []View{ListingView, DetailView} {
			out := Project(b, viewer, view)
			assert.False(t, out.HasContact(), "viewer %+v view %d", viewer, view)
			assert.Nil(t, out.OwnerEmail)

			raw, err := json.Marshal(out)
			require.NoError(t, err)
			assert.NotContains(t, string(raw), "mobile")
			assert.NotContains(t, string(raw), "contactEmail")
			assert.NotContains(t, string(raw), b.Mobile)
		}
	}
}

func TestProject_ListingShape(t *testing.T) {
	out := Project(sampleBiodata(), Viewer{Email: "c@x.com"}, ListingView)

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"biodataId", "sex", "image", "permanentDivision", "age", "occupation", "status", "visibility",
	}, keys)
	assert.Equal(t, "premium", fields["status"])
}

func TestProject_DetailAddsBiography(t *testing.T) {
	out := Project(sampleBiodata(), Viewer{Email: "c@x.com"}, DetailView)

	require.NotNil(t, out.Name)
	assert.Equal(t, "Ayesha", *out.Name)
	require.NotNil(t, out.FatherName)
	assert.Nil(t, out.Mobile)
	assert.Nil(t, out.ContactEmail)
}

func TestProject_ApprovedViewerGetsContact(t *testing.T) {
	out := Project(sampleBiodata(), Viewer{Email: "b@x.com", HasApprovedAccess: true}, DetailView)

	require.NotNil(t, out.Mobile)
	assert.Equal(t, "+8801711111111", *out.Mobile)
	require.NotNil(t, out.ContactEmail)
	assert.Nil(t, out.OwnerEmail)
}

func TestProject_OwnerAndAdminSeeEverything(t *testing.T) {
	b := sampleBiodata()

	for _, viewer := range []Viewer{{Email: "a@x.com"}, {Email: "admin@x.com", IsAdmin: true}} {
		out := Project(b, viewer, ListingView)
		require.NotNil(t, out.Mobile)
		require.NotNil(t, out.OwnerEmail)
		assert.Equal(t, "a@x.com", *out.OwnerEmail)
	}
}

func TestProject_DefaultsOwnerStatus(t *testing.T) {
	b := sampleBiodata()
	b.OwnerPremiumStatus = ""

	assert.Equal(t, models.PremiumStatusNone, Project(b, Viewer{}, ListingView).Status)
}
