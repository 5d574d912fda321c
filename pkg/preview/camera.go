package preview

import (
	"math"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// Camera looks at a target from a point on a sphere around it
type Camera struct {
	Position  geometry.Vect3
	Target    geometry.Vect3
	Up        geometry.Vect3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Elevation
	RotationY float64 // Azimuth
}

// NewCamera creates a camera that sees the whole bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	distance := math.Max(bbox.LongestSide()*2.0, 1)

	c := &Camera{
		Target:   center,
		Up:       geometry.Up,
		FOV:      math.Pi / 4,
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera from its rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVect3(x, y, z))
}

// Rotate rotates the camera by the given angles. The elevation stays clear
// of the poles.
func (c *Camera) Rotate(deltaX, deltaY float64) {
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX+deltaX))
	c.RotationY += deltaY
	c.UpdatePosition()
}

// Zoom scales the camera distance by 1+delta
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(0.1, c.Distance*(1.0+delta))
	c.UpdatePosition()
}

// Forward is the unit viewing direction
func (c *Camera) Forward() geometry.Vect3 {
	return unit(c.Target.Sub(c.Position), geometry.Forward)
}

// Project maps a point to screen coordinates and its depth along the
// viewing direction
func (c *Camera) Project(point geometry.Vect3, width, height float64) (float64, float64, float64) {
	forward := c.Forward()
	right := unit(forward.Cross(c.Up), geometry.Right)
	up := unit(right.Cross(forward), geometry.Up)

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := math.Max(relative.Dot(forward), 0.01)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)
	return screenX, screenY, z
}

func unit(v, fallback geometry.Vect3) geometry.Vect3 {
	n, err := v.Normalize()
	if err != nil {
		return fallback
	}
	return n
}
