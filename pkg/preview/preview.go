// Package preview draws a shaded mesh with its node graph on top into an
// image, for checking generated graphs without a 3D viewer.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
)

// ErrInvalidSize is returned for non-positive image dimensions
var ErrInvalidSize = errors.New("preview: invalid image size")

// Options controls the image
type Options struct {
	Width, Height int
	// RotationX and RotationY turn the camera away from looking down -z
	RotationX, RotationY float64

	Background color.RGBA
	MeshColor  color.RGBA
	GraphColor color.RGBA
}

// DefaultOptions returns a 800x600 three-quarter view
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		RotationX:  0.5,
		RotationY:  0.6,
		Background: color.RGBA{R: 30, G: 30, B: 36, A: 255},
		MeshColor:  color.RGBA{R: 170, G: 180, B: 200, A: 255},
		GraphColor: color.RGBA{R: 240, G: 80, B: 40, A: 255},
	}
}

// Render draws s and, if g is not nil, the graph. Mesh faces are flat shaded
// by how directly they face the camera; the graph is drawn over the mesh.
func Render(s *mesh.Structure, g *nodegraph.NodeGraph, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("image size %dx%d: %w", opts.Width, opts.Height, ErrInvalidSize)
	}

	bbox := s.BoundingBox()
	if g != nil {
		for _, n := range g.Nodes() {
			bbox.Extend(n.Coordinate)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] =
			opts.Background.R, opts.Background.G, opts.Background.B, opts.Background.A
	}
	if bbox.IsEmpty() {
		return img, nil
	}

	camera := NewCamera(bbox)
	camera.Rotate(opts.RotationX, opts.RotationY)
	w, h := float64(opts.Width), float64(opts.Height)
	project := func(p geometry.Vect3) screenPoint {
		x, y, z := camera.Project(p, w, h)
		return screenPoint{x, y, z}
	}

	zbuffer := make([]float64, opts.Width*opts.Height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	view := camera.Forward()
	for _, c := range s.Components() {
		for fi := range c.FaceCount() {
			corners, err := c.FaceCorners(fi)
			if err != nil {
				return nil, err
			}
			normal, err := corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[0])).Normalize()
			if err != nil {
				continue
			}
			light := 0.3 + 0.7*math.Abs(normal.Dot(view))
			fillTriangle(img, zbuffer, [3]screenPoint{
				project(corners[0]), project(corners[1]), project(corners[2]),
			}, shade(opts.MeshColor, light))
		}
	}

	if g == nil {
		return img, nil
	}
	for _, e := range g.Edges() {
		a, b, err := e.Endpoints()
		if err != nil {
			return nil, err
		}
		na, okA := g.GetNode(nodegraph.ByIndex(a))
		nb, okB := g.GetNode(nodegraph.ByIndex(b))
		if !okA || !okB {
			continue
		}
		pa, pb := project(na.Coordinate), project(nb.Coordinate)
		drawLine(img, int(pa.x), int(pa.y), int(pb.x), int(pb.y), opts.GraphColor)
	}
	for _, n := range g.Nodes() {
		p := project(n.Coordinate)
		drawDot(img, int(p.x), int(p.y), 2, opts.GraphColor)
	}
	return img, nil
}

func shade(c color.RGBA, light float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*light))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// SavePNG renders into a PNG file
func SavePNG(path string, s *mesh.Structure, g *nodegraph.NodeGraph, opts Options) (err error) {
	img, err := Render(s, g, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
