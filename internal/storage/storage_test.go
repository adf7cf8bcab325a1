package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupabasePublicURL(t *testing.T) {
	s := NewSupabaseStorage("abcproject", "service-key")

	url := s.PublicURL("family-images", "1700000000000-valve.png")
	assert.Equal(t,
		"https://abcproject.supabase.co/storage/v1/object/public/family-images/1700000000000-valve.png",
		url)
}

func TestSupabasePublicURLEscapesKey(t *testing.T) {
	s := NewSupabaseStorage("abcproject", "service-key")

	url := s.PublicURL("rvt-files", "1700000000000-ball valve.rvt")
	assert.Equal(t,
		"https://abcproject.supabase.co/storage/v1/object/public/rvt-files/1700000000000-ball%20valve.rvt",
		url)
}

func TestS3PublicURLPathStyle(t *testing.T) {
	s := &S3Storage{endpoint: "https://minio.internal:9000", usePathStyle: true}

	assert.Equal(t,
		"https://minio.internal:9000/family-images/1700000000000-valve.png",
		s.PublicURL("family-images", "1700000000000-valve.png"))
}

func TestS3PublicURLVirtualHost(t *testing.T) {
	s := &S3Storage{endpoint: "https://s3.us-east-1.amazonaws.com", usePathStyle: false}

	assert.Equal(t,
		"https://family-images.s3.us-east-1.amazonaws.com/1700000000000-valve.png",
		s.PublicURL("family-images", "1700000000000-valve.png"))
}
