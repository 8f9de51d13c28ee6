package scene

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Scene is a camera, a light and the objects it sees.
type Scene struct {
	Camera    *render.Camera
	Light     math3d.Vec3 // Light position in world space
	Objects   []*Object
	Wireframe bool // Draw edges instead of filled triangles
}

// New creates an empty scene with a default camera.
func New() *Scene {
	return &Scene{Camera: render.NewCamera()}
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...*Object) {
	s.Objects = append(s.Objects, objs...)
}

// Object returns the first object with the given name, or nil.
func (s *Scene) Object(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Draw clears r and rasterizes every object through the camera without
// presenting the frame.
func (s *Scene) Draw(r *render.Renderer) {
	r.Clear()

	view := s.Camera.ViewMatrix()
	r.SetTransform(s.Camera.ProjectionMatrix(r.Width(), r.Height()))
	r.SetLightPos(view.MulVec3(s.Light))

	for _, o := range s.Objects {
		if s.Wireframe {
			o.RenderWireframe(r, view)
			continue
		}
		o.RenderView(r, view)
	}
}

// Render draws the scene and presents it. Presentation errors are returned
// from r.Display unchanged.
func (s *Scene) Render(r *render.Renderer) error {
	s.Draw(r)
	return r.Display()
}
