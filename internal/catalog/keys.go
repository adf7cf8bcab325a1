package catalog

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// UploadKey builds the storage key for an uploaded file: the current time
// in unix milliseconds, a dash, then the original filename. Two uploads of
// the same filename within one millisecond would collide; that window is a
// known edge case, not guarded against.
func UploadKey(now time.Time, filename string) string {
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return fmt.Sprintf("%d-%s", now.UnixMilli(), filename)
}

// BlobKeyFromURL derives a record's owned blob key from the trailing path
// segment of its stored public URL. Fragile if the store's URL scheme ever
// changes; the key is not stored alongside the record.
func BlobKeyFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		parsed = &url.URL{Path: rawURL}
	}

	segment := parsed.Path
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}

	if decoded, err := url.PathUnescape(segment); err == nil {
		return decoded
	}
	return segment
}
