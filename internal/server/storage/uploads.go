// Package storage отвечает за сохранение загружаемых постеров на диск.
//
// HTTP-слой передаёт сюда файл из multipart-формы; обратно уходит
// публичный путь вида /uploads/<file>, который сохраняется в записи
// фильма. Файлы раздаёт статикой роутер.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/config"
	serr "github.com/movievault/movievault/internal/shared/errors"
)

// PosterStorage — дисковое хранилище постеров.
type PosterStorage struct {
	dir        string
	publicPath string
	maxBytes   int64
	allowed    map[string]struct{}
}

// NewPosterStorage создаёт хранилище и каталог для файлов, если его нет.
func NewPosterStorage(cfg config.UploadsConfig) (*PosterStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedExts))
	for _, ext := range cfg.AllowedExts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &PosterStorage{
		dir:        cfg.Dir,
		publicPath: strings.TrimSuffix(cfg.PublicPath, "/"),
		maxBytes:   cfg.MaxFileBytes,
		allowed:    allowed,
	}, nil
}

// Dir возвращает каталог хранилища (нужен роутеру для статики).
func (s *PosterStorage) Dir() string {
	return s.dir
}

// Save проверяет и сохраняет файл постера.
//
// Проверки:
//   - расширение из списка разрешённых (jpeg/jpg/png/gif по умолчанию);
//   - размер не больше лимита.
//
// Имя файла на диске: poster-<uuid><ext> — исходное имя клиента
// никогда не используется. Возвращает публичный путь /uploads/<file>.
//
// Ошибки:
//   - ErrBadUpload — файл не прошёл проверку
func (s *PosterStorage) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := s.allowed[ext]; !ok {
		return "", serr.ErrBadUpload
	}
	if fh.Size > s.maxBytes {
		return "", serr.ErrBadUpload
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := "poster-" + uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create poster file: %w", err)
	}
	defer dst.Close()

	// лимит на чтение — заявленный Size клиенту не верим
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write poster file: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(dst.Name())
		return "", serr.ErrBadUpload
	}

	return s.publicPath + "/" + name, nil
}
