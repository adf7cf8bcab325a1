package server

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strings"

	"plumbfam/pkg/types"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"filledStars": filledStars,
		"stars":       stars,
		"upper":       strings.ToUpper,
		"rating1": func(rating float64) string {
			return fmt.Sprintf("%.1f", rating)
		},
		// card bundles one record with the active filter for the card partial
		"card": func(family *types.Family, selected types.Category) map[string]any {
			return map[string]any{
				"Family":           family,
				"SelectedCategory": selected,
			}
		},
	}
}

// filledStars is the number of filled stars shown for a rating: the floor,
// never rounded, so 4.99 still shows 4 filled stars.
func filledStars(rating float64) int {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return int(math.Floor(rating))
}

// stars returns five bools, true for each filled star position.
func stars(rating float64) []bool {
	filled := filledStars(rating)
	out := make([]bool, 5)
	for i := 0; i < filled; i++ {
		out[i] = true
	}
	return out
}

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	if setter, ok := data.(types.FlashSetter); ok {
		notice, errMsg := s.popFlash(w, r)
		setter.SetFlash(notice, errMsg)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.ExecuteTemplate(w, templateName, data)
}
