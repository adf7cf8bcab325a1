package server

import (
	"net/http"
	"net/url"

	"plumbfam/pkg/types"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	selected := types.Category(r.URL.Query().Get("category"))
	if selected == "" {
		selected = types.CategoryAll
	}

	tabs := make([]types.CategoryTab, 0, len(types.Categories)+1)
	for _, category := range append([]types.Category{types.CategoryAll}, types.Categories...) {
		tabs = append(tabs, types.CategoryTab{
			ID:       category,
			Label:    category.Label(),
			Selected: category == selected,
		})
	}

	data := types.HomePageData{
		BasePageData:     types.BasePageData{Title: "Plumbing Family's"},
		SelectedCategory: selected,
		Categories:       tabs,
		Families:         s.controller.Families(selected),
	}

	if err := s.renderTemplate(w, r, "page.home", &data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	data := types.UploadPageData{
		BasePageData: types.BasePageData{Title: "Upload Family"},
		Categories:   types.Categories,
		Ratings:      []int{1, 2, 3, 4, 5},
	}

	if err := s.renderTemplate(w, r, "page.upload", &data); err != nil {
		s.logger.WithError(err).Error("failed to render upload page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, target, notice string) {
	s.setFlash(w, notice, "")
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	s.setFlash(w, "", msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// homeTarget rebuilds the grid URL for the filter the user was on.
func homeTarget(category string) string {
	if category == "" || category == string(types.CategoryAll) {
		return "/"
	}
	return "/?" + url.Values{"category": {category}}.Encode()
}
