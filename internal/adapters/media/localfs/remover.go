package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Remover borra archivos de imagen servidos desde un directorio público
// local (imageURL tipo "/uploads/pets/abc.jpg"). El upload lo maneja otro
// servicio; acá solo se limpia al retirar la publicación.
type Remover struct {
	baseDir string
}

func New(baseDir string) *Remover {
	return &Remover{baseDir: baseDir}
}

func (r *Remover) Remove(ctx context.Context, imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil
	}

	rel := filepath.FromSlash(strings.TrimPrefix(imageURL, "/"))
	path := filepath.Join(r.baseDir, rel)

	// Nunca salir del directorio base (imageURL viene de la DB, pero igual).
	cleanBase := filepath.Clean(r.baseDir) + string(filepath.Separator)
	if !strings.HasPrefix(filepath.Clean(path)+string(filepath.Separator), cleanBase) {
		return fmt.Errorf("image path outside base dir: %s", imageURL)
	}

	if err := os.Remove(path); err != nil {
		// Archivo ya inexistente no es error.
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
