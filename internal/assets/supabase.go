package assets

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

var supabaseAllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// SupabaseStore uploads images to a Supabase Storage bucket. References are
// the public object URLs, so assets outlive their project records; nothing
// is deleted on Release.
type SupabaseStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewSupabaseStore(supabaseURL, serviceKey, bucket string) (*SupabaseStore, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &SupabaseStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (s *SupabaseStore) Save(filename, contentType string, data []byte) (string, error) {
	if !supabaseAllowedTypes[strings.ToLower(contentType)] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	objectPath := fmt.Sprintf("projects/%s%s", uuid.New().String(), filepath.Ext(filename))

	upsert := true
	_, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.publicURL(objectPath), nil
}

// Release is a no-op: bucket objects are kept independent of the record's
// lifecycle.
func (s *SupabaseStore) Release(ref string) error {
	return nil
}

func (s *SupabaseStore) publicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}
