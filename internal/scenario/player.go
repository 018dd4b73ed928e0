// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/filter"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/config"
	"github.com/gogpu/compositor/layer"
)

// Host is the part of compositor.Host a Player drives.
type Host interface {
	AddDamage(r geom.RectF)
	SetNeedsRedraw()
	DrawFrame() (compositor.FrameStats, error)
}

// Result is the outcome of one drawn frame.
type Result struct {
	Name  string
	Stats compositor.FrameStats
}

// Player owns the layer tree built from a Scenario and applies its frames.
type Player struct {
	scenario *Scenario
	tree     *layer.Tree
	layers   map[string]*layer.Layer
}

// NewPlayer builds the scenario's initial tree.
func NewPlayer(s *Scenario) (*Player, error) {
	p := &Player{
		scenario: s,
		tree:     layer.NewTree(),
		layers:   make(map[string]*layer.Layer),
	}
	root, err := p.build(&s.Root)
	if err != nil {
		return nil, err
	}
	if err := p.tree.SetRoot(root); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return p, nil
}

// Tree returns the layer tree being played.
func (p *Player) Tree() *layer.Tree { return p.tree }

// Layer returns the layer with the given name.
func (p *Player) Layer(name string) (*layer.Layer, error) {
	l, ok := p.layers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return l, nil
}

// Run draws the initial frame, then applies and draws every scripted
// frame. It stops at the first error.
func (p *Player) Run(h Host) ([]Result, error) {
	results := make([]Result, 0, len(p.scenario.Frames)+1)
	stats, err := h.DrawFrame()
	if err != nil {
		return results, err
	}
	results = append(results, Result{Name: "initial", Stats: stats})

	for i, f := range p.scenario.Frames {
		if err := p.Apply(f, h); err != nil {
			return results, fmt.Errorf("frame %d (%s): %w", i+1, f.Name, err)
		}
		stats, err := h.DrawFrame()
		if err != nil {
			return results, err
		}
		results = append(results, Result{Name: f.Name, Stats: stats})
	}
	return results, nil
}

// Apply runs a frame's ops in order.
func (p *Player) Apply(f Frame, h Host) error {
	for i := range f.Ops {
		if err := p.applyOp(&f.Ops[i], h); err != nil {
			return fmt.Errorf("op %d: %w", i+1, err)
		}
	}
	return nil
}

func (p *Player) applyOp(op *Op, h Host) error {
	if op.Damage != nil {
		r, err := rectOf(op.Damage)
		if err != nil {
			return err
		}
		h.AddDamage(r)
	}
	if op.Redraw {
		h.SetNeedsRedraw()
	}
	if op.Layer == "" {
		return nil
	}

	l, err := p.Layer(op.Layer)
	if err != nil {
		return err
	}
	if op.Remove {
		p.forget(l)
		if err := p.tree.Remove(l); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
		return nil
	}

	if err := p.setGeometry(l, op.Position, op.Anchor, op.Bounds); err != nil {
		return err
	}
	if op.Transform != nil {
		l.SetTransform(transformOf(*op.Transform))
	}
	if op.Opacity != nil {
		l.SetOpacity(*op.Opacity)
	}
	if op.DrawsContent != nil {
		l.SetDrawsContent(*op.DrawsContent)
	}
	if op.ForceSurface != nil {
		l.SetForceRenderSurface(*op.ForceSurface)
	}
	if op.Color != "" {
		c, err := config.ParseColor(op.Color)
		if err != nil {
			return err
		}
		l.SetColor(c)
	}
	if err := p.setFilters(l, op.Filters, op.BackgroundFilters, op.ImageFilter); err != nil {
		return err
	}
	if op.UpdateRect != nil {
		r, err := rectOf(op.UpdateRect)
		if err != nil {
			return err
		}
		l.SetUpdateRect(r)
	}
	if op.NeedsDisplay {
		l.SetNeedsDisplay()
	}
	if err := p.setAttachments(l, op); err != nil {
		return err
	}
	if op.AddChild != nil {
		c, err := p.build(op.AddChild)
		if err != nil {
			return err
		}
		if err := l.AddChild(c); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	return nil
}

func (p *Player) setAttachments(l *layer.Layer, op *Op) error {
	if op.RemoveMask {
		if m := l.MaskLayer(); m != nil {
			if err := p.detach(m, l.SetMaskLayer); err != nil {
				return err
			}
		}
	}
	if op.RemoveReplica {
		if r := l.ReplicaLayer(); r != nil {
			if err := p.detach(r, l.SetReplicaLayer); err != nil {
				return err
			}
		}
	}
	if op.Mask != nil {
		m, err := p.build(op.Mask)
		if err != nil {
			return err
		}
		if err := l.SetMaskLayer(m); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	if op.Replica != nil {
		r, err := p.build(op.Replica)
		if err != nil {
			return err
		}
		if err := l.SetReplicaLayer(r); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	return nil
}

// forget drops the names of l and everything it owns.
// detach clears the attachment slot holding a with set, then drops a and
// its subtree from the tree.
func (p *Player) detach(a *layer.Layer, set func(*layer.Layer) error) error {
	p.forget(a)
	if err := set(nil); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if err := p.tree.Remove(a); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	return nil
}

func (p *Player) forget(l *layer.Layer) {
	for name, nl := range p.layers {
		for o := nl; o != nil; o = owner(o) {
			if o == l {
				delete(p.layers, name)
				break
			}
		}
	}
}

// owner returns the layer l hangs off: its parent, or the layer it masks
// or replicates.
func owner(l *layer.Layer) *layer.Layer {
	if pl := l.Parent(); pl != nil {
		return pl
	}
	t := l.Tree()
	if t == nil {
		return nil
	}
	var found *layer.Layer
	t.Walk(func(c *layer.Layer) {
		if c.MaskLayer() == l || c.ReplicaLayer() == l {
			found = c
		}
		if r := c.ReplicaLayer(); r != nil && r.MaskLayer() == l {
			found = r
		}
	})
	return found
}

// build creates the layer described by desc and its subtree.
func (p *Player) build(desc *LayerSpec) (*layer.Layer, error) {
	if desc.Name == "" {
		return nil, fmt.Errorf("%w: layer without a name", ErrInvalid)
	}
	if _, ok := p.layers[desc.Name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateLayer, desc.Name)
	}
	l := p.tree.NewLayer()
	p.layers[desc.Name] = l

	if err := p.setGeometry(l, desc.Position, desc.Anchor, desc.Bounds); err != nil {
		return nil, fmt.Errorf("layer %q: %w", desc.Name, err)
	}
	if desc.Transform != nil {
		l.SetTransform(transformOf(desc.Transform))
	}
	if desc.Opacity != nil {
		l.SetOpacity(*desc.Opacity)
	}
	l.SetDrawsContent(desc.DrawsContent)
	l.SetForceRenderSurface(desc.ForceSurface)
	if desc.Color != "" {
		c, err := config.ParseColor(desc.Color)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", desc.Name, err)
		}
		l.SetColor(c)
	}
	if err := p.setFilters(l, &desc.Filters, &desc.BackgroundFilters, &desc.ImageFilter); err != nil {
		return nil, fmt.Errorf("layer %q: %w", desc.Name, err)
	}
	if desc.Mask != nil {
		m, err := p.build(desc.Mask)
		if err != nil {
			return nil, err
		}
		if err := l.SetMaskLayer(m); err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
	}
	if desc.Replica != nil {
		r, err := p.build(desc.Replica)
		if err != nil {
			return nil, err
		}
		if err := l.SetReplicaLayer(r); err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
	}
	for i := range desc.Children {
		c, err := p.build(&desc.Children[i])
		if err != nil {
			return nil, err
		}
		if err := l.AddChild(c); err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
	}
	return l, nil
}

func (p *Player) setGeometry(l *layer.Layer, position, anchor, bounds []float64) error {
	if position != nil {
		v, err := pointOf(position)
		if err != nil {
			return err
		}
		l.SetPosition(v)
	}
	if anchor != nil {
		v, err := pointOf(anchor)
		if err != nil {
			return err
		}
		l.SetAnchorPoint(v)
	}
	if bounds != nil {
		v, err := pointOf(bounds)
		if err != nil {
			return err
		}
		l.SetBounds(v.X, v.Y)
	}
	return nil
}

func (p *Player) setFilters(l *layer.Layer, fg, bg, image *[]FilterSpec) error {
	if fg != nil {
		ops, err := operationsOf(*fg)
		if err != nil {
			return err
		}
		l.SetFilters(ops)
	}
	if bg != nil {
		ops, err := operationsOf(*bg)
		if err != nil {
			return err
		}
		l.SetBackgroundFilters(ops)
	}
	if image != nil {
		ops, err := operationsOf(*image)
		if err != nil {
			return err
		}
		if ops.IsEmpty() {
			l.SetFilter(nil)
		} else {
			l.SetFilter(filter.NewImageFilter(ops))
		}
	}
	return nil
}

func operationsOf(descs []FilterSpec) (filter.Operations, error) {
	if len(descs) == 0 {
		return nil, nil
	}
	ops := make(filter.Operations, 0, len(descs))
	for _, s := range descs {
		op, err := operationOf(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func operationOf(s FilterSpec) (filter.Operation, error) {
	t, ok := filter.ParseType(s.Type)
	if !ok {
		return filter.Operation{}, fmt.Errorf("%w: unknown filter %q", ErrInvalid, s.Type)
	}
	switch t {
	case filter.DropShadow:
		var off geom.Point
		if s.Offset != nil {
			if len(s.Offset) != 2 {
				return filter.Operation{}, fmt.Errorf("%w: drop-shadow offset needs 2 values", ErrInvalid)
			}
			off = geom.Point{X: s.Offset[0], Y: s.Offset[1]}
		}
		c, err := config.ParseColor(s.Color)
		if err != nil {
			return filter.Operation{}, err
		}
		return filter.NewDropShadow(off, s.Amount, c), nil
	case filter.ColorMatrix:
		var m [20]float64
		if len(s.Matrix) != len(m) {
			return filter.Operation{}, fmt.Errorf("%w: color-matrix needs 20 values", ErrInvalid)
		}
		copy(m[:], s.Matrix)
		return filter.NewColorMatrix(m), nil
	default:
		return filter.Operation{Type: t, Amount: s.Amount}, nil
	}
}

func transformOf(steps []TransformStep) geom.Transform {
	t := geom.Identity()
	for _, s := range steps {
		if len(s.Translate) == 2 {
			t.Translate(s.Translate[0], s.Translate[1])
		}
		if len(s.Scale) == 2 {
			t.Scale(s.Scale[0], s.Scale[1])
		}
		if s.Perspective != 0 {
			t.ApplyPerspectiveDepth(s.Perspective)
		}
		if s.RotateX != 0 {
			t.RotateAboutXAxis(s.RotateX)
		}
		if s.RotateY != 0 {
			t.RotateAboutYAxis(s.RotateY)
		}
		if s.Rotate != 0 {
			t.RotateAboutZAxis(s.Rotate)
		}
	}
	return t
}

func pointOf(v []float64) (geom.PointF, error) {
	if len(v) != 2 {
		return geom.PointF{}, fmt.Errorf("%w: want [x, y], got %v", ErrInvalid, v)
	}
	return geom.Pt(v[0], v[1]), nil
}

func rectOf(v []float64) (geom.RectF, error) {
	if len(v) != 4 {
		return geom.RectF{}, fmt.Errorf("%w: want [x, y, width, height], got %v", ErrInvalid, v)
	}
	return geom.RF(v[0], v[1], v[2], v[3]), nil
}
