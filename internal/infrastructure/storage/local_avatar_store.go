package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jhoicas/staffdir/internal/application/ports"
)

// Errores de validación de archivos.
var (
	ErrFileTypeNotAllowed = errors.New("tipo de archivo no permitido (jpg, jpeg, png, gif)")
	ErrFileTooLarge       = errors.New("el archivo excede el tamaño máximo permitido")
	ErrEmptyFile          = errors.New("el archivo está vacío")
	ErrInvalidPath        = errors.New("ruta de archivo inválida")
)

// Subdirectorio de avatares de usuario bajo la raíz.
const usersDir = "users"

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// LocalAvatarStore guarda avatares en {root}/users/{id}/{uuid}{ext}.
type LocalAvatarStore struct {
	fs       afero.Fs
	maxBytes int64
}

var _ ports.AvatarStorage = (*LocalAvatarStore)(nil)

// NewLocalAvatarStore construye el almacenamiento sobre el disco, confinado a root.
func NewLocalAvatarStore(root string, maxBytes int64) *LocalAvatarStore {
	return NewAvatarStoreWithFs(afero.NewBasePathFs(afero.NewOsFs(), root), maxBytes)
}

// NewAvatarStoreWithFs construye el almacenamiento sobre un afero.Fs arbitrario (tests: MemMapFs).
func NewAvatarStoreWithFs(fs afero.Fs, maxBytes int64) *LocalAvatarStore {
	return &LocalAvatarStore{fs: fs, maxBytes: maxBytes}
}

// Validate comprueba extensión (sin distinguir mayúsculas) y tamaño.
func (s *LocalAvatarStore) Validate(file *ports.Upload) error {
	if file == nil || file.Size == 0 {
		return ErrEmptyFile
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(file.Filename))]; !ok {
		return ErrFileTypeNotAllowed
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return fmt.Errorf("%w (%d MiB)", ErrFileTooLarge, s.maxBytes>>20)
	}
	return nil
}

// Store escribe el archivo con un nombre aleatorio y devuelve su ruta relativa.
func (s *LocalAvatarStore) Store(ctx context.Context, ownerID string, file *ports.Upload) (string, error) {
	if err := s.Validate(file); err != nil {
		return "", err
	}
	dir, err := ownerDir(ownerID)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	rel := path.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := s.fs.OpenFile(rel, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create avatar: %w", err)
	}
	// Se copia como máximo maxBytes+1 para detectar un Size declarado falso.
	limit := s.maxBytes + 1
	if s.maxBytes <= 0 {
		limit = file.Size + 1
	}
	n, err := io.Copy(dst, io.LimitReader(src, limit))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = s.fs.Remove(rel)
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return rel, nil
}

// StoreAll valida todos los archivos antes de escribir y devuelve una ruta por archivo.
// Si una escritura falla se borran las ya realizadas.
func (s *LocalAvatarStore) StoreAll(ctx context.Context, ownerID string, files []*ports.Upload) ([]string, error) {
	for _, f := range files {
		if err := s.Validate(f); err != nil {
			return nil, err
		}
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := s.Store(ctx, ownerID, f)
		if err != nil {
			for _, written := range paths {
				_ = s.fs.Remove(written)
			}
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Remove borra un archivo por su ruta relativa. No es error si no existe.
func (s *LocalAvatarStore) Remove(_ context.Context, relPath string) error {
	clean, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove avatar: %w", err)
	}
	return nil
}

// RemoveAll borra el directorio de avatares del propietario.
func (s *LocalAvatarStore) RemoveAll(_ context.Context, ownerID string) error {
	dir, err := ownerDir(ownerID)
	if err != nil {
		return err
	}
	if err := s.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove avatar dir: %w", err)
	}
	return nil
}

// Purge borra todos los avatares (seeder).
func (s *LocalAvatarStore) Purge(_ context.Context) error {
	if err := s.fs.RemoveAll(usersDir); err != nil {
		return fmt.Errorf("purge avatars: %w", err)
	}
	return nil
}

func ownerDir(ownerID string) (string, error) {
	if ownerID == "" || ownerID == "." || ownerID == ".." || strings.ContainsAny(ownerID, `/\`) {
		return "", ErrInvalidPath
	}
	return path.Join(usersDir, ownerID), nil
}

func cleanRelPath(relPath string) (string, error) {
	clean := path.Clean(filepath.ToSlash(relPath))
	if clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidPath
	}
	return clean, nil
}
