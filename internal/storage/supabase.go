package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// SupabaseStorage talks to the Supabase Storage HTTP API. Buckets are
// passed per call so one client serves both the image and design-file
// buckets.
type SupabaseStorage struct {
	projectRef string
	apiKey     string
	httpClient *http.Client
}

var _ ObjectStore = (*SupabaseStorage)(nil)

// NewSupabaseStorage creates a new Supabase Storage client
func NewSupabaseStorage(projectRef, apiKey string) *SupabaseStorage {
	return &SupabaseStorage{
		projectRef: projectRef,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Upload stores a file in the given bucket.
// Returns the storage key (path) on success
func (s *SupabaseStorage) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	endpoint := s.objectURL(bucket, key, false)

	fileBytes, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(fileBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return key, nil
}

// Delete removes a file from the given bucket.
func (s *SupabaseStorage) Delete(ctx context.Context, bucket, key string) error {
	endpoint := s.objectURL(bucket, key, false)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// PublicURL returns the public URL for a file. The bucket must be marked
// public in the Supabase project for the URL to resolve.
func (s *SupabaseStorage) PublicURL(bucket, key string) string {
	return s.objectURL(bucket, key, true)
}

func (s *SupabaseStorage) objectURL(bucket, key string, public bool) string {
	segment := ""
	if public {
		segment = "public/"
	}
	return fmt.Sprintf("https://%s.supabase.co/storage/v1/object/%s%s/%s",
		s.projectRef, segment, bucket, url.PathEscape(key))
}
