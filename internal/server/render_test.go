package server

import (
	"bytes"
	"strings"
	"testing"

	"plumbfam/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilledStarsIsFloorNotRound(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{0, 0},
		{0.5, 0},
		{1, 1},
		{3, 3},
		{4.5, 4},
		{4.9, 4},
		{4.99, 4},
		{5, 5},
		{-1, 0},
		{7, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, filledStars(tt.rating), "rating %v", tt.rating)
	}
}

func TestStarsAlwaysRendersFive(t *testing.T) {
	out := stars(4.99)
	require.Len(t, out, 5)
	assert.Equal(t, []bool{true, true, true, true, false}, out)

	assert.Equal(t, []bool{false, false, false, false, false}, stars(0))
	assert.Equal(t, []bool{true, true, true, true, true}, stars(5))
}

func homePageData(families ...*types.Family) *types.HomePageData {
	return &types.HomePageData{
		BasePageData:     types.BasePageData{Title: "Plumbing Family's"},
		SelectedCategory: types.CategoryAll,
		Categories: []types.CategoryTab{
			{ID: types.CategoryAll, Label: types.CategoryAll.Label(), Selected: true},
		},
		Families: families,
	}
}

func TestHomeTemplateEmptyState(t *testing.T) {
	templates, err := loadTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "page.home", homePageData())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No families found in this category")
}

func TestHomeTemplateCard(t *testing.T) {
	templates, err := loadTemplates()
	require.NoError(t, err)

	family := &types.Family{
		ID:         "fam-1",
		FamilyName: "Ball Valve",
		Category:   types.CategoryPipeFitting,
		ImageURL:   "https://blobs.test/family-images/1-valve.png",
		RvtFileURL: "https://blobs.test/rvt-files/1-valve.rvt",
		Rating:     4.99,
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "page.home", homePageData(family))
	require.NoError(t, err)
	html := buf.String()

	// floor(4.99) = 4 filled stars, never 5
	assert.Equal(t, 4, strings.Count(html, "star star-filled"))
	assert.Contains(t, html, "BALL VALVE")
	assert.Contains(t, html, "PIPE FITTING")
	assert.Contains(t, html, `action="/families/fam-1/delete"`)
	assert.Contains(t, html, "https://blobs.test/rvt-files/1-valve.rvt")
	assert.NotContains(t, html, "No families found")
}

func TestUploadTemplateListsFixedCategories(t *testing.T) {
	templates, err := loadTemplates()
	require.NoError(t, err)

	data := &types.UploadPageData{
		BasePageData: types.BasePageData{Title: "Upload Family"},
		Categories:   types.Categories,
		Ratings:      []int{1, 2, 3, 4, 5},
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "page.upload", data)
	require.NoError(t, err)
	html := buf.String()

	for _, category := range types.Categories {
		assert.Contains(t, html, `value="`+string(category)+`"`)
	}
}
