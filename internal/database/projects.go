package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"portfolio-backend/internal/models"
)

// ProjectStore persists project records in PostgreSQL.
type ProjectStore struct {
	db *sql.DB
}

func NewProjectStore(connectionString string) (*ProjectStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &ProjectStore{db: db}, nil
}

func (s *ProjectStore) Insert(title, description, url, imagePath string) (*models.Project, error) {
	var p models.Project
	err := s.db.QueryRow(`
		INSERT INTO projects (title, description, url, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, url, image_path, created_at
	`, title, description, url, imagePath).Scan(
		&p.ID, &p.Title, &p.Description, &p.URL, &p.ImagePath, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	return &p, nil
}

func (s *ProjectStore) FindAll() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, url, image_path, created_at
		FROM projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.URL, &p.ImagePath, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return projects, nil
}

func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	var p models.Project
	err := s.db.QueryRow(`
		SELECT id, title, description, url, image_path, created_at
		FROM projects
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.URL, &p.ImagePath, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// Update replaces the mutable fields of a project. created_at is never
// touched.
func (s *ProjectStore) Update(id uuid.UUID, title, description, url, imagePath string) (*models.Project, error) {
	var p models.Project
	err := s.db.QueryRow(`
		UPDATE projects
		SET title = $2, description = $3, url = $4, image_path = $5
		WHERE id = $1
		RETURNING id, title, description, url, image_path, created_at
	`, id, title, description, url, imagePath).Scan(
		&p.ID, &p.Title, &p.Description, &p.URL, &p.ImagePath, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &p, nil
}

// Delete removes a project and returns the removed row, so the caller can
// release its asset.
func (s *ProjectStore) Delete(id uuid.UUID) (*models.Project, error) {
	var p models.Project
	err := s.db.QueryRow(`
		DELETE FROM projects
		WHERE id = $1
		RETURNING id, title, description, url, image_path, created_at
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.URL, &p.ImagePath, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	return &p, nil
}

func (s *ProjectStore) Close() error {
	return s.db.Close()
}
