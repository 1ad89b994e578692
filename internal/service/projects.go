// Package service holds the project business logic: required-field
// validation and the orchestration of asset storage and record persistence.
package service

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"portfolio-backend/internal/assets"
	"portfolio-backend/internal/models"
)

// ErrMissingFields is returned by Create when any required field or the
// image is absent. Validation runs before any side effect.
var ErrMissingFields = errors.New("all fields (title, description, url, image) are required")

// RecordStore is the persistence surface the service depends on.
// *database.ProjectStore implements it; tests substitute an in-memory fake.
type RecordStore interface {
	Insert(title, description, url, imagePath string) (*models.Project, error)
	FindAll() ([]models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Update(id uuid.UUID, title, description, url, imagePath string) (*models.Project, error)
	Delete(id uuid.UUID) (*models.Project, error)
}

// Image is an uploaded image payload with its multipart metadata.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateInput struct {
	Title       string
	Description string
	URL         string
	Image       *Image
}

// UpdateInput carries the optional replacement fields for an update. Empty
// text fields and a nil image leave the existing values untouched.
type UpdateInput struct {
	Title       string
	Description string
	URL         string
	Image       *Image
}

type ProjectService struct {
	records RecordStore
	store   assets.Store
}

func NewProjectService(records RecordStore, store assets.Store) *ProjectService {
	return &ProjectService{
		records: records,
		store:   store,
	}
}

func (s *ProjectService) List() ([]models.Project, error) {
	return s.records.FindAll()
}

func (s *ProjectService) Create(in CreateInput) (*models.Project, error) {
	if in.Title == "" || in.Description == "" || in.URL == "" || in.Image == nil || len(in.Image.Data) == 0 {
		return nil, ErrMissingFields
	}

	ref, err := s.store.Save(in.Image.Filename, in.Image.ContentType, in.Image.Data)
	if err != nil {
		return nil, err
	}

	// A stored asset is not cleaned up if the insert fails; there is no
	// compensation across the two stores.
	return s.records.Insert(in.Title, in.Description, in.URL, ref)
}

func (s *ProjectService) Update(id uuid.UUID, in UpdateInput) (*models.Project, error) {
	existing, err := s.records.FindByID(id)
	if err != nil {
		return nil, err
	}

	title := existing.Title
	if in.Title != "" {
		title = in.Title
	}
	description := existing.Description
	if in.Description != "" {
		description = in.Description
	}
	url := existing.URL
	if in.URL != "" {
		url = in.URL
	}

	imagePath := existing.ImagePath
	if in.Image != nil {
		ref, err := s.store.Save(in.Image.Filename, in.Image.ContentType, in.Image.Data)
		if err != nil {
			return nil, err
		}
		imagePath = ref

		if err := s.store.Release(existing.ImagePath); err != nil {
			log.Printf("Failed to release old image %s: %v", existing.ImagePath, err)
		}
	}

	return s.records.Update(id, title, description, url, imagePath)
}

func (s *ProjectService) Delete(id uuid.UUID) error {
	removed, err := s.records.Delete(id)
	if err != nil {
		return err
	}

	if err := s.store.Release(removed.ImagePath); err != nil {
		log.Printf("Failed to release image %s: %v", removed.ImagePath, err)
	}

	return nil
}
