package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Object storage. "supabase" talks to the Supabase Storage HTTP API,
	// "s3" talks to any S3-compatible endpoint (MinIO, RustFS, Supabase S3).
	StorageBackend     string `envconfig:"STORAGE_BACKEND" default:"supabase"`
	SupabaseProjectRef string `envconfig:"SUPABASE_PROJECT_REF"`
	SupabaseServiceKey string `envconfig:"SUPABASE_SERVICE_KEY"`
	S3Endpoint         string `envconfig:"S3_ENDPOINT"`
	S3Region           string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey        string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey        string `envconfig:"S3_SECRET_KEY"`
	S3UsePathStyle     bool   `envconfig:"S3_USE_PATH_STYLE" default:"true"`

	ImageBucket string `envconfig:"IMAGE_BUCKET" default:"family-images"`
	RvtBucket   string `envconfig:"RVT_BUCKET" default:"rvt-files"`

	// Fixed credential strings gating uploads and deletes. This is a UI
	// gate inherited from the original app, not an authentication system;
	// see internal/policy.
	UploadCredential string `envconfig:"UPLOAD_CREDENTIAL" default:"John@2000"`
	DeleteCredential string `envconfig:"DELETE_CREDENTIAL" default:"John1234#"`

	// Flash cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values. Left unset, random per-process keys are used,
	// which invalidates flash cookies across restarts but nothing else.
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"67108864"`
}
