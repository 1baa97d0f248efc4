// Package dotenv reads dotenv files with godotenv.
package dotenv

import (
	"errors"
	"maps"
	"os"

	"github.com/joho/godotenv"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EnvLoader = (*Loader)(nil)

// Loader implements ports.EnvLoader. It never touches the process environment.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the existing files among paths in order, later files overriding
// earlier ones. Missing files are skipped. The first unparsable file aborts
// the load and is reported with its path; values read so far are returned.
func (l *Loader) Load(paths []string) (map[string]string, []string, error) {
	values := make(map[string]string)
	read := make([]string, 0, len(paths))

	for _, path := range paths {
		fileValues, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			err = zerr.Wrap(err, domain.ErrDotEnvReadFailed.Error())
			return values, read, zerr.With(err, "path", path)
		}
		maps.Copy(values, fileValues)
		read = append(read, path)
	}

	return values, read, nil
}
