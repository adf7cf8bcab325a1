package server

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"plumbfam/internal/catalog"
	"plumbfam/pkg/types"
)

type uploadFamilyForm struct {
	FamilyName string  `form:"family_name"`
	Category   string  `form:"category"`
	Rating     float64 `form:"rating"`
	UserID     string  `form:"user_id"`
}

func (s *Service) handleCreateFamily(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.redirectWithError(w, r, "/upload", "invalid upload payload")
		return
	}

	var submitted = new(uploadFamilyForm)
	if err := decoder.Decode(submitted, url.Values(r.MultipartForm.Value)); err != nil {
		s.logger.WithError(err).Error("failed to decode upload form")
		s.redirectWithError(w, r, "/upload", "invalid upload payload")
		return
	}

	image, imageHeader, err := r.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		s.redirectWithError(w, r, "/upload", "invalid image upload")
		return
	}
	if image != nil {
		defer image.Close()
	}

	rvtFile, rvtHeader, err := r.FormFile("rvt_file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		s.redirectWithError(w, r, "/upload", "invalid rvt file upload")
		return
	}
	if rvtFile != nil {
		defer rvtFile.Close()
	}

	req := catalog.UploadRequest{
		FamilyName: submitted.FamilyName,
		Category:   types.Category(submitted.Category),
		Rating:     submitted.Rating,
		Credential: submitted.UserID,
		Image:      fileUpload(image, imageHeader),
		RvtFile:    fileUpload(rvtFile, rvtHeader),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	if _, err := s.controller.Upload(ctx, req); err != nil {
		var verr catalog.ValidationError
		switch {
		case errors.As(err, &verr):
			s.redirectWithError(w, r, "/upload", verr.Error())
		case errors.Is(err, types.ErrNotAuthorized):
			s.redirectWithError(w, r, "/upload", "User ID not correct")
		default:
			s.logger.WithError(err).Error("failed to upload family")
			s.redirectWithError(w, r, "/upload", err.Error())
		}
		return
	}

	s.redirectWithNotice(w, r, "/", "Family uploaded successfully!")
}

func fileUpload(file multipart.File, header *multipart.FileHeader) *catalog.FileUpload {
	if file == nil || header == nil {
		return nil
	}
	return &catalog.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
}

func (s *Service) handleDeleteFamily(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/", "invalid form payload")
		return
	}

	password := r.FormValue("password")
	target := homeTarget(r.FormValue("category"))

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := s.controller.Delete(ctx, familyID, password); err != nil {
		switch {
		case errors.Is(err, types.ErrNotAuthorized):
			s.redirectWithError(w, r, target, "Enter correct password")
		case errors.Is(err, types.ErrFamilyNotFound):
			s.redirectWithError(w, r, target, "Family no longer exists")
		default:
			s.logger.WithError(err).WithField("family_id", familyID).Error("failed to delete family")
			s.redirectWithError(w, r, target, "Failed to delete family from database.")
		}
		return
	}

	s.redirectWithNotice(w, r, target, "Family deleted successfully.")
}
