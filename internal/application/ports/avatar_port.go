package ports

import (
	"bytes"
	"context"
	"io"
)

// Upload archivo recibido, independiente del framework HTTP que lo entregó.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// NewUploadFromBytes construye un Upload en memoria (seeder, tests).
func NewUploadFromBytes(filename string, data []byte) *Upload {
	return &Upload{
		Filename: filename,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// AvatarStorage define el puerto de salida para los archivos de avatar.
// Las rutas devueltas son relativas a la raíz de almacenamiento: users/{id}/{uuid}{ext}.
type AvatarStorage interface {
	// Validate comprueba extensión y tamaño sin escribir nada.
	Validate(file *Upload) error
	Store(ctx context.Context, ownerID string, file *Upload) (string, error)
	// Remove borra un archivo; no es error si ya no existe.
	Remove(ctx context.Context, relPath string) error
	// RemoveAll borra el directorio completo del propietario.
	RemoveAll(ctx context.Context, ownerID string) error
}
