package mockapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/padhusmiler/mstex/internal/domain"
)

const maxUploadBytes = 10 << 20 // 10MB

// uploadStore keeps uploaded images, optionally mirrored to a directory so
// they survive restarts during local development.
type uploadStore struct {
	dir string

	mu    sync.RWMutex
	files map[string][]byte // name -> content
}

func newUploadStore(dir string) *uploadStore {
	return &uploadStore{dir: dir, files: make(map[string][]byte)}
}

func (u *uploadStore) put(name string, content []byte) error {
	u.mu.Lock()
	u.files[name] = content
	u.mu.Unlock()

	if u.dir == "" {
		return nil
	}
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(u.dir, name), content, 0o644); err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}
	return nil
}

func (u *uploadStore) get(name string) ([]byte, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	b, ok := u.files[name]
	return b, ok
}

// uploadImage accepts one multipart file under the `file` field and returns
// the URL it is served from.
func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	ext := filepath.Ext(header.Filename)
	name := uuid.NewString() + ext
	if err := s.upload.put(name, content); err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": "/uploads/" + name})
}

func (s *Server) serveUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content, ok := s.upload.get(name)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(content)
}
