package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-backend/internal/assets"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/service"
)

// maxImageSize caps the multipart form memory for a single upload (32MB).
const maxImageSize = 32 << 20

type ProjectsHandler struct {
	service *service.ProjectService
}

func NewProjectsHandler(svc *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: svc}
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.List()
	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error fetching projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Failed to read uploaded image"})
		return
	}

	project, err := h.service.Create(service.CreateInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		URL:         c.PostForm("url"),
		Image:       image,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "All fields (title, description, url, image) are required",
			})
		case errors.Is(err, assets.ErrUnsupportedMediaType):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Only image files (jpeg, png, gif, svg) are allowed",
			})
		default:
			log.Printf("Failed to create project: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error saving to database"})
		}
		return
	}

	c.JSON(http.StatusCreated, models.ProjectResponse{
		Message: "Project saved",
		Data:    project,
	})
}

func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparsable id can never match a record.
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Project not found"})
		return
	}

	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Failed to read uploaded image"})
		return
	}

	project, err := h.service.Update(id, service.UpdateInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		URL:         c.PostForm("url"),
		Image:       image,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Project not found"})
		case errors.Is(err, assets.ErrUnsupportedMediaType):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Only image files (jpeg, png, gif, svg) are allowed",
			})
		default:
			log.Printf("Failed to update project %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error updating project"})
		}
		return
	}

	c.JSON(http.StatusOK, models.ProjectResponse{
		Message: "Project updated",
		Data:    project,
	})
}

func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Project not found"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, models.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Project not found"})
			return
		}
		log.Printf("Failed to delete project %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error deleting project"})
		return
	}

	c.JSON(http.StatusOK, models.ProjectResponse{Message: "Project deleted"})
}

// formImage reads the single "image" multipart field. A missing field is not
// an error here; the service decides whether the image is required.
func formImage(c *gin.Context) (*service.Image, error) {
	if err := c.Request.ParseMultipartForm(maxImageSize); err != nil {
		// No multipart body at all; treat as no image supplied.
		return nil, nil
	}

	header, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
