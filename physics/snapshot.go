package physics

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"

	"github.com/jinzhu/copier"

	"github.com/lixenwraith/volt/vmath"
)

var ErrSnapshotMismatch = errors.New("snapshot does not match world")

// BodyState is the kinematic state of one body, field names mirror Body
type BodyState struct {
	ID              int
	Position        vmath.Vec2
	Angle           int64
	Facing          vmath.Vec2
	LinearVelocity  vmath.Vec2
	AngularVelocity int64
	Force           vmath.Vec2
	Torque          int64
}

// WarmState is one cached contact impulse pair
type WarmState struct {
	ShapeA  int
	ShapeB  int
	Feature int
	Normal  int64
	Tangent int64
}

// Snapshot is everything a world needs to re-simulate bit-identically from a step
type Snapshot struct {
	StepCount uint64
	Bodies    []BodyState // Body creation order
	Warm      []WarmState // Sorted by (ShapeA, ShapeB, Feature)
}

// Snapshot captures body state and the warm-start cache
func (w *World) Snapshot() (*Snapshot, error) {
	s := &Snapshot{
		StepCount: w.stepCount,
		Bodies:    make([]BodyState, len(w.bodies)),
		Warm:      make([]WarmState, 0, len(w.warm)),
	}

	for i, b := range w.bodies {
		if err := copier.Copy(&s.Bodies[i], b); err != nil {
			return nil, fmt.Errorf("copy body %d: %w", b.id, err)
		}
		s.Bodies[i].ID = b.id
	}

	for key, impulse := range w.warm {
		s.Warm = append(s.Warm, WarmState{
			ShapeA:  key.shapeA,
			ShapeB:  key.shapeB,
			Feature: key.feature,
			Normal:  impulse.normal,
			Tangent: impulse.tangent,
		})
	}
	slices.SortFunc(s.Warm, func(a, b WarmState) int {
		return cmp.Or(
			cmp.Compare(a.ShapeA, b.ShapeA),
			cmp.Compare(a.ShapeB, b.ShapeB),
			cmp.Compare(a.Feature, b.Feature),
		)
	})
	return s, nil
}

// Restore rewinds the world to s; the body set must be the one s was taken from
func (w *World) Restore(s *Snapshot) error {
	if len(s.Bodies) != len(w.bodies) {
		return fmt.Errorf("%w: %d bodies, world has %d", ErrSnapshotMismatch, len(s.Bodies), len(w.bodies))
	}
	for i := range s.Bodies {
		if s.Bodies[i].ID != w.bodies[i].id {
			return fmt.Errorf("%w: body %d at index %d, world has %d", ErrSnapshotMismatch, s.Bodies[i].ID, i, w.bodies[i].id)
		}
	}

	for i, b := range w.bodies {
		if err := copier.Copy(b, &s.Bodies[i]); err != nil {
			return fmt.Errorf("restore body %d: %w", b.id, err)
		}
		b.BiasVelocity = vmath.V2Zero
		b.BiasRotation = 0
		b.OnPositionUpdated()
	}

	clear(w.warm)
	for _, ws := range s.Warm {
		w.warm[contactKey{ws.ShapeA, ws.ShapeB, ws.Feature}] = cachedImpulse{normal: ws.Normal, tangent: ws.Tangent}
	}

	w.releaseManifolds()
	w.stepCount = s.StepCount
	return nil
}

// StateHash is an FNV-64a digest of the step count and every body's kinematic state in id order
func (w *World) StateHash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	write := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}

	write(int64(w.stepCount))
	for _, b := range w.bodies {
		write(int64(b.id))
		write(b.Position.X)
		write(b.Position.Y)
		write(b.Angle)
		write(b.LinearVelocity.X)
		write(b.LinearVelocity.Y)
		write(b.AngularVelocity)
	}
	return h.Sum64()
}
