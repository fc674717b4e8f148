package guide

import (
	"context"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrNotUTF8 is returned when the template file is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("template is not valid UTF-8")

// Loader returns the raw template text.
type Loader interface {
	Load(ctx context.Context) (string, error)
}

// FileLoader reads the template from disk on every call, so the guide can
// be replaced without restarting the server.
type FileLoader struct {
	Path string
}

// Load reads f.Path. Missing files, permission errors and invalid UTF-8
// all come back as a non-nil error.
func (f FileLoader) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", errors.Wrap(err, "read template")
	}
	if !utf8.Valid(b) {
		return "", errors.Wrap(ErrNotUTF8, f.Path)
	}
	return string(b), nil
}

// Probe attempts a single load and reports why it failed, if it did.
// Used at startup to warn early; serving does not depend on the result.
func Probe(ctx context.Context, l Loader) error {
	_, err := l.Load(ctx)
	return err
}
