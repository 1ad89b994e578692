package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrProjectNotFound is returned when an operation targets a project id
// that does not exist.
var ErrProjectNotFound = errors.New("project not found")

type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImagePath   string    `json:"imagePath"`
	CreatedAt   time.Time `json:"createdAt"`
}
