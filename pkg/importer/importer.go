// Package importer loads mesh files into structures, picking the reader
// from the file extension.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/openscad"
	"github.com/philipparndt/meshgraph/pkg/stl"
	"github.com/philipparndt/meshgraph/pkg/threemf"
)

// ErrUnsupportedFormat is returned for extensions without a reader
var ErrUnsupportedFormat = errors.New("importer: unsupported format")

// Extensions lists the supported file extensions. OpenSCAD sources need the
// openscad binary.
var Extensions = []string{".stl", ".3mf", ".scad"}

// Options controls loading
type Options struct {
	// Logger receives a summary line per loaded file. Nil is silent.
	Logger *slog.Logger
}

// Supported reports whether path has a readable extension
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads path into a structure. A missing file yields an error
// matching fs.ErrNotExist.
func Load(path string, opts Options) (*mesh.Structure, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		s   *mesh.Structure
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		var model *stl.Model
		model, err = stl.Parse(path)
		if err == nil {
			s, err = model.Structure()
		}
	case ".3mf":
		s, err = threemf.Load(path)
	case ".scad":
		s, err = loadSCAD(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	if opts.Logger != nil {
		vertices, faces := s.Counts()
		opts.Logger.Info("loaded mesh",
			"path", path,
			"components", s.Len(),
			"vertices", vertices,
			"faces", faces,
			"elapsed", time.Since(start))
	}
	return s, nil
}

func loadSCAD(path string) (*mesh.Structure, error) {
	rendered, err := openscad.NewRenderer(filepath.Dir(path)).RenderToTemp(context.Background(), path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(rendered)

	model, err := stl.Parse(rendered)
	if err != nil {
		return nil, err
	}
	return model.Structure()
}

// Dependencies returns the files whose change alters the mesh loaded from
// path: the file itself and, for OpenSCAD sources, everything it uses or
// includes.
func Dependencies(path string) ([]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".scad" {
		return []string{path}, nil
	}
	return openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(path)
}
