package scene

import (
	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/vmath"
)

// Scene is a populated world plus the names given to its bodies
type Scene struct {
	World *physics.World
	names map[string]*physics.Body
}

// Body returns the body declared with name, or nil
func (s *Scene) Body(name string) *physics.Body {
	return s.names[name]
}

// LoadWorld loads a scene file and builds it on top of base
func LoadWorld(path string, base physics.Config) (*Scene, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(f, base)
}

// Build creates a world from f, bodies are added in file order so ids follow the document
func Build(f *File, base physics.Config) (*Scene, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	cfg := base
	f.Config.Apply(&cfg)

	s := &Scene{
		World: physics.NewWorld(cfg),
		names: make(map[string]*physics.Body),
	}

	for _, def := range f.Bodies {
		shapes := make([]physics.Shape, 0, len(def.Shapes))
		for _, sd := range def.Shapes {
			shapes = append(shapes, newShape(&sd))
		}

		position := vec(def.Position)
		angle := vmath.FromFloat(def.Angle)

		var b *physics.Body
		if def.Static {
			b = s.World.CreateStaticBody(position, angle, shapes...)
		} else {
			b = s.World.CreateDynamicBody(position, angle, shapes...)
			b.LinearVelocity = vec(def.Velocity)
			b.AngularVelocity = vmath.FromFloat(def.AngularVelocity)
		}

		if def.Name != "" {
			s.names[def.Name] = b
		}
	}
	return s, nil
}

// newShape converts a validated definition
func newShape(def *ShapeDef) physics.Shape {
	density := material(def.Density, DefaultDensity)
	friction := material(def.Friction, DefaultFriction)
	restitution := material(def.Restitution, DefaultRestitution)

	switch def.Type {
	case ShapeCircle:
		center := vec(def.Center)
		radius := vmath.FromFloat(def.Radius)
		if def.World {
			return physics.NewCircleFromWorldSpace(center, radius, density, friction, restitution)
		}
		return physics.NewCircleFromBodySpace(center, radius, density, friction, restitution)

	case ShapeBox:
		vertices := physics.NewBoxBodyVertices(vmath.FromFloat(def.HalfExtents[0]), vmath.FromFloat(def.HalfExtents[1]))
		center := vec(def.Center)
		for i := range vertices {
			vertices[i] = vmath.V2Add(vertices[i], center)
		}
		return newPolygon(vertices, def.World, density, friction, restitution)

	default:
		vertices := make([]vmath.Vec2, len(def.Vertices))
		for i, v := range def.Vertices {
			vertices[i] = vec(v)
		}
		return newPolygon(vertices, def.World, density, friction, restitution)
	}
}

func newPolygon(vertices []vmath.Vec2, world bool, density, friction, restitution int64) *physics.Polygon {
	if world {
		return physics.NewPolygonFromWorldVertices(vertices, density, friction, restitution)
	}
	return physics.NewPolygonFromBodyVertices(vertices, density, friction, restitution)
}

func material(v *float64, fallback float64) int64 {
	if v == nil {
		return vmath.FromFloat(fallback)
	}
	return vmath.FromFloat(*v)
}

func vec(v [2]float64) vmath.Vec2 {
	return vmath.V2FromFloat(v[0], v[1])
}
