// Package assets provides the binary asset storage backends for project
// images. A Store accepts an uploaded payload and returns an opaque
// reference (URL or path) that the database keeps to locate the asset later.
package assets

import "errors"

// ErrUnsupportedMediaType is returned when an upload's declared content type
// is not in the backend's allow-list.
var ErrUnsupportedMediaType = errors.New("unsupported image media type")

// Store is the asset storage capability. Save persists the payload and
// returns its reference. Release removes the asset behind a previously
// returned reference; backends without real deletion implement it as a no-op.
type Store interface {
	Save(filename, contentType string, data []byte) (string, error)
	Release(ref string) error
}
