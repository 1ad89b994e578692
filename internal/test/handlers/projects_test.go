package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/assets"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/service"
)

type memoryRecordStore struct {
	projects map[uuid.UUID]models.Project
	clock    time.Time
}

func newMemoryRecordStore() *memoryRecordStore {
	return &memoryRecordStore{
		projects: make(map[uuid.UUID]models.Project),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRecordStore) Insert(title, description, url, imagePath string) (*models.Project, error) {
	m.clock = m.clock.Add(time.Second)
	p := models.Project{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		URL:         url,
		ImagePath:   imagePath,
		CreatedAt:   m.clock,
	}
	m.projects[p.ID] = p
	return &p, nil
}

func (m *memoryRecordStore) FindAll() ([]models.Project, error) {
	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRecordStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, models.ErrProjectNotFound
	}
	return &p, nil
}

func (m *memoryRecordStore) Update(id uuid.UUID, title, description, url, imagePath string) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, models.ErrProjectNotFound
	}
	p.Title, p.Description, p.URL, p.ImagePath = title, description, url, imagePath
	m.projects[id] = p
	return &p, nil
}

func (m *memoryRecordStore) Delete(id uuid.UUID) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, models.ErrProjectNotFound
	}
	delete(m.projects, id)
	return &p, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *memoryRecordStore, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := assets.NewLocalStore(dir)
	require.NoError(t, err)

	records := newMemoryRecordStore()
	svc := service.NewProjectService(records, store)
	h := handlers.NewProjectsHandler(svc)

	router := gin.New()
	router.GET("/", h.ListProjects)
	router.POST("/", h.CreateProject)
	router.PUT("/:id", h.UpdateProject)
	router.DELETE("/:id", h.DeleteProject)

	return router, records, dir
}

type formField struct{ name, value string }

type formFile struct{ name, filename, contentType, content string }

func multipartBody(t *testing.T, fields []formField, file *formFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range fields {
		require.NoError(t, writer.WriteField(f.name, f.value))
	}
	if file != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.name, file.filename))
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func createProject(t *testing.T, router *gin.Engine, title string) models.Project {
	t.Helper()

	body, contentType := multipartBody(t,
		[]formField{{"title", title}, {"description", "A site"}, {"url", "https://ex.com"}},
		&formFile{"image", "logo.png", "image/png", "png-bytes"},
	)
	req, _ := http.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	return *resp.Data
}

func TestCreateProject_Success(t *testing.T) {
	router, _, _ := setupRouter(t)

	body, contentType := multipartBody(t,
		[]formField{{"title", "Portfolio"}, {"description", "A site"}, {"url", "https://ex.com"}},
		&formFile{"image", "logo.png", "image/png", "png-bytes"},
	)
	req, _ := http.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Project saved", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Portfolio", resp.Data.Title)
	assert.NotEmpty(t, resp.Data.ImagePath)
	assert.NotEqual(t, uuid.Nil, resp.Data.ID)
	assert.False(t, resp.Data.CreatedAt.IsZero())
}

func TestCreateProject_MissingFields(t *testing.T) {
	router, records, dir := setupRouter(t)

	cases := []struct {
		name   string
		fields []formField
		file   *formFile
	}{
		{"no title", []formField{{"description", "d"}, {"url", "u"}}, &formFile{"image", "a.png", "image/png", "x"}},
		{"no description", []formField{{"title", "t"}, {"url", "u"}}, &formFile{"image", "a.png", "image/png", "x"}},
		{"no url", []formField{{"title", "t"}, {"description", "d"}}, &formFile{"image", "a.png", "image/png", "x"}},
		{"no image", []formField{{"title", "t"}, {"description", "d"}, {"url", "u"}}, nil},
		{"empty title", []formField{{"title", ""}, {"description", "d"}, {"url", "u"}}, &formFile{"image", "a.png", "image/png", "x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tc.fields, tc.file)
			req, _ := http.NewRequest("POST", "/", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "required")
		})
	}

	assert.Empty(t, records.projects, "no record created")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no asset stored")
}

func TestCreateProject_DisallowedMediaType(t *testing.T) {
	router, _, _ := setupRouter(t)

	body, contentType := multipartBody(t,
		[]formField{{"title", "t"}, {"description", "d"}, {"url", "u"}},
		&formFile{"image", "doc.pdf", "application/pdf", "%PDF"},
	)
	req, _ := http.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image files")
}

func TestListProjects_NewestFirst(t *testing.T) {
	router, _, _ := setupRouter(t)

	first := createProject(t, router, "first")
	second := createProject(t, router, "second")
	third := createProject(t, router, "third")

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, third.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
	assert.Equal(t, first.ID, listed[2].ID)
}

func TestListProjects_EmptyIsBareArray(t *testing.T) {
	router, _, _ := setupRouter(t)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUpdateProject_NotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	body, contentType := multipartBody(t, []formField{{"title", "new"}}, nil)
	req, _ := http.NewRequest("PUT", "/"+uuid.New().String(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
}

func TestUpdateProject_InvalidIDIsNotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	body, contentType := multipartBody(t, []formField{{"title", "new"}}, nil)
	req, _ := http.NewRequest("PUT", "/not-a-uuid", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
}

func TestUpdateProject_TitleOnly(t *testing.T) {
	router, _, _ := setupRouter(t)
	created := createProject(t, router, "Portfolio")

	body, contentType := multipartBody(t, []formField{{"title", "Renamed"}}, nil)
	req, _ := http.NewRequest("PUT", "/"+created.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Project updated", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Renamed", resp.Data.Title)
	assert.Equal(t, created.Description, resp.Data.Description)
	assert.Equal(t, created.URL, resp.Data.URL)
	assert.Equal(t, created.ImagePath, resp.Data.ImagePath)
}

func TestUpdateProject_NewImageReplacesOldFile(t *testing.T) {
	router, _, dir := setupRouter(t)
	created := createProject(t, router, "Portfolio")

	body, contentType := multipartBody(t, nil,
		&formFile{"image", "new.jpg", "image/jpeg", "jpeg-bytes"})
	req, _ := http.NewRequest("PUT", "/"+created.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.NotEqual(t, created.ImagePath, resp.Data.ImagePath)

	// The old file is gone, only the replacement remains.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, resp.Data.ImagePath, entries[0].Name())
}

func TestDeleteProject_NotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	req, _ := http.NewRequest("DELETE", "/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
}

func TestDeleteProject_RemovesRecordAndFile(t *testing.T) {
	router, _, dir := setupRouter(t)
	created := createProject(t, router, "Portfolio")

	req, _ := http.NewRequest("DELETE", "/"+created.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Project deleted")

	listReq, _ := http.NewRequest("GET", "/", nil)
	listW := httptest.NewRecorder()
	router.ServeHTTP(listW, listReq)

	var listed []models.Project
	require.NoError(t, json.Unmarshal(listW.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "asset file released")
}
