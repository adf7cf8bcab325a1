package server

import (
	"net/http"
)

const flashCookieName = "plumbfam_flash"

type flashPayload struct {
	Notice string
	Error  string
}

// setFlash stores a one-shot notice/error in an encrypted cookie so it
// survives the redirect after a form submission.
func (s *Service) setFlash(w http.ResponseWriter, notice, errMsg string) {
	encoded, err := s.cookie.Encode(flashCookieName, flashPayload{Notice: notice, Error: errMsg})
	if err != nil {
		s.logger.WithError(err).Error("failed to encode flash cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie.
func (s *Service) popFlash(w http.ResponseWriter, r *http.Request) (notice, errMsg string) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return "", ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var payload flashPayload
	if err := s.cookie.Decode(flashCookieName, cookie.Value, &payload); err != nil {
		s.logger.WithError(err).Debug("discarding undecodable flash cookie")
		return "", ""
	}

	return payload.Notice, payload.Error
}
