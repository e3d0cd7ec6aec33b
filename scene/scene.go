package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/vmath"
)

var (
	ErrUnknownShape    = errors.New("unknown shape type")
	ErrDegenerateShape = errors.New("degenerate shape")
	ErrNoBodies        = errors.New("scene has no bodies")
	ErrDuplicateName   = errors.New("duplicate body name")
)

// Shape type names accepted in scene files
const (
	ShapeCircle  = "circle"
	ShapePolygon = "polygon"
	ShapeBox     = "box"
)

// File is the decoded form of a scene document
// All numbers are floats and are converted to fixed point exactly once, in Build
type File struct {
	Config Overrides `yaml:"config"`
	Bodies []BodyDef `yaml:"bodies"`
}

// Overrides replaces individual physics.Config tunables, nil fields keep the base value
type Overrides struct {
	ResolveRate   *float64    `yaml:"resolve_rate"`
	ResolveSlop   *float64    `yaml:"resolve_slop"`
	AreaMassRatio *float64    `yaml:"area_mass_ratio"`
	Elasticity    *float64    `yaml:"elasticity"`
	Damping       *float64    `yaml:"damping"`
	DeltaTime     *float64    `yaml:"delta_time"`
	Iterations    *int        `yaml:"iterations"`
	Gravity       *[2]float64 `yaml:"gravity"`
	WarmStart     *bool       `yaml:"warm_start"`
	CheckWinding  *bool       `yaml:"check_winding"`
}

// BodyDef describes one body and its shapes
type BodyDef struct {
	Name            string     `yaml:"name"`
	Static          bool       `yaml:"static"`
	Position        [2]float64 `yaml:"position"`
	Angle           float64    `yaml:"angle"`
	Velocity        [2]float64 `yaml:"velocity"`
	AngularVelocity float64    `yaml:"angular_velocity"`
	Shapes          []ShapeDef `yaml:"shapes"`
}

// ShapeDef describes a circle, polygon or box
// Geometry is body-relative unless World is set
type ShapeDef struct {
	Type        string       `yaml:"type"`
	World       bool         `yaml:"world"`
	Center      [2]float64   `yaml:"center"`
	Radius      float64      `yaml:"radius"`
	Vertices    [][2]float64 `yaml:"vertices"`
	HalfExtents [2]float64   `yaml:"half_extents"`
	Density     *float64     `yaml:"density"`
	Friction    *float64     `yaml:"friction"`
	Restitution *float64     `yaml:"restitution"`
}

// Material defaults for shapes that omit them
const (
	DefaultDensity     = 1.0
	DefaultFriction    = 0.5
	DefaultRestitution = 0.0
)

// Load reads and validates a scene file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML scene, rejecting unknown keys, then validates it
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoBodies
		}
		return nil, fmt.Errorf("failed to unmarshal scene: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate rejects input the physics core would silently accept as meaningless geometry
func (f *File) Validate() error {
	if len(f.Bodies) == 0 {
		return ErrNoBodies
	}

	names := make(map[string]int, len(f.Bodies))
	for i, b := range f.Bodies {
		label := b.label(i)
		if b.Name != "" {
			if prev, ok := names[b.Name]; ok {
				return fmt.Errorf("%w: %q at bodies %d and %d", ErrDuplicateName, b.Name, prev, i)
			}
			names[b.Name] = i
		}

		if len(b.Shapes) == 0 {
			return fmt.Errorf("%w: %s has no shapes", ErrDegenerateShape, label)
		}
		for j, s := range b.Shapes {
			if err := s.validate(); err != nil {
				return fmt.Errorf("%s shape %d: %w", label, j, err)
			}
		}
	}

	if it := f.Config.Iterations; it != nil && *it <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", *it)
	}
	return nil
}

func (s *ShapeDef) validate() error {
	switch s.Type {
	case ShapeCircle:
		if s.Radius <= 0 {
			return fmt.Errorf("%w: circle radius %g", ErrDegenerateShape, s.Radius)
		}
	case ShapePolygon:
		if len(s.Vertices) < 3 {
			return fmt.Errorf("%w: polygon with %d vertices", ErrDegenerateShape, len(s.Vertices))
		}
	case ShapeBox:
		if s.HalfExtents[0] <= 0 || s.HalfExtents[1] <= 0 {
			return fmt.Errorf("%w: box half extents %v", ErrDegenerateShape, s.HalfExtents)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
	}
	return nil
}

func (b *BodyDef) label(index int) string {
	if b.Name != "" {
		return fmt.Sprintf("body %q", b.Name)
	}
	return fmt.Sprintf("body %d", index)
}

// Apply writes the overrides into cfg
func (o *Overrides) Apply(cfg *physics.Config) {
	setFixed := func(dst *int64, v *float64) {
		if v != nil {
			*dst = vmath.FromFloat(*v)
		}
	}

	setFixed(&cfg.ResolveRate, o.ResolveRate)
	setFixed(&cfg.ResolveSlop, o.ResolveSlop)
	setFixed(&cfg.AreaMassRatio, o.AreaMassRatio)
	setFixed(&cfg.Elasticity, o.Elasticity)
	setFixed(&cfg.Damping, o.Damping)
	setFixed(&cfg.DeltaTime, o.DeltaTime)

	if o.Iterations != nil {
		cfg.Iterations = *o.Iterations
	}
	if o.Gravity != nil {
		cfg.Gravity = vmath.V2FromFloat(o.Gravity[0], o.Gravity[1])
	}
	if o.WarmStart != nil {
		cfg.WarmStart = *o.WarmStart
	}
	if o.CheckWinding != nil {
		cfg.CheckWinding = *o.CheckWinding
	}
}
