// Package local сохраняет загруженные фото на диск; раздаются они через /images/*.
package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoArmGo/PetAdoption/internal/adapter/storage"
)

// PublicPrefix — URL-префикс, под которым роутер отдаёт каталог загрузок.
const PublicPrefix = "/images/"

type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore создаёт каталог загрузок, если его ещё нет.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger, now: time.Now}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) SavePhoto(ctx context.Context, filename string, body io.Reader, contentType string) (string, error) {
	name := storage.ObjectName(s.now(), filename)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		s.logger.Error("failed to write photo", "file", name, "error", err)
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	s.logger.Info("photo saved", "file", name, "bytes", n, "content_type", contentType)
	return PublicPrefix + name, nil
}

func (s *Store) DeletePhoto(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, PublicPrefix)
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("not an uploaded photo: %q", url)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	s.logger.Info("photo removed", "file", name)
	return nil
}
