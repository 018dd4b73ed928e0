// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scenario reads YAML frame scripts: an initial layer tree and a
// list of frames, each a list of mutations applied before the frame is
// drawn.
//
//	root:
//	  name: root
//	  bounds: [500, 500]
//	  draws_content: true
//	  children:
//	    - name: box
//	      position: [100, 100]
//	      bounds: [30, 30]
//	      draws_content: true
//	      color: "#ff0000"
//	frames:
//	  - name: move
//	    ops:
//	      - {layer: box, position: [200, 230]}
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid is returned for scripts that cannot be played.
	ErrInvalid = errors.New("scenario: invalid script")

	// ErrUnknownLayer is returned when an op names a layer that does not
	// exist.
	ErrUnknownLayer = errors.New("scenario: unknown layer")

	// ErrDuplicateLayer is returned when two layers share a name.
	ErrDuplicateLayer = errors.New("scenario: duplicate layer name")
)

// Scenario is a parsed frame script.
type Scenario struct {
	Root   LayerSpec `yaml:"root"`
	Frames []Frame   `yaml:"frames"`
}

// LayerSpec describes a layer and its subtree. Vectors are [x, y] and
// rects [x, y, width, height].
type LayerSpec struct {
	Name              string          `yaml:"name"`
	Position          []float64       `yaml:"position,omitempty"`
	Anchor            []float64       `yaml:"anchor,omitempty"`
	Bounds            []float64       `yaml:"bounds,omitempty"`
	Transform         []TransformStep `yaml:"transform,omitempty"`
	Opacity           *float64        `yaml:"opacity,omitempty"`
	DrawsContent      bool            `yaml:"draws_content,omitempty"`
	Color             string          `yaml:"color,omitempty"`
	ForceSurface      bool            `yaml:"force_surface,omitempty"`
	Filters           []FilterSpec    `yaml:"filters,omitempty"`
	BackgroundFilters []FilterSpec    `yaml:"background_filters,omitempty"`
	ImageFilter       []FilterSpec    `yaml:"image_filter,omitempty"`
	Mask              *LayerSpec      `yaml:"mask,omitempty"`
	Replica           *LayerSpec      `yaml:"replica,omitempty"`
	Children          []LayerSpec     `yaml:"children,omitempty"`
}

// TransformStep is one post-multiplied transform operation. Exactly one
// field is expected per step; steps apply in order.
type TransformStep struct {
	Translate   []float64 `yaml:"translate,omitempty"`
	Scale       []float64 `yaml:"scale,omitempty"`
	Rotate      float64   `yaml:"rotate,omitempty"`
	RotateX     float64   `yaml:"rotate_x,omitempty"`
	RotateY     float64   `yaml:"rotate_y,omitempty"`
	Perspective float64   `yaml:"perspective,omitempty"`
}

// FilterSpec is one filter operation. Type is a filter.Type name such as
// "blur" or "drop-shadow".
type FilterSpec struct {
	Type   string    `yaml:"type"`
	Amount float64   `yaml:"amount,omitempty"`
	Offset []int     `yaml:"offset,omitempty"`
	Color  string    `yaml:"color,omitempty"`
	Matrix []float64 `yaml:"matrix,omitempty"`
}

// Frame is a named list of ops applied before one frame is drawn.
type Frame struct {
	Name string `yaml:"name"`
	Ops  []Op   `yaml:"ops"`
}

// Op mutates the tree or the host. Fields left unset are not touched.
// Layer names the target layer; Damage and Redraw act on the host and
// need no layer.
type Op struct {
	Layer             string           `yaml:"layer,omitempty"`
	Position          []float64        `yaml:"position,omitempty"`
	Anchor            []float64        `yaml:"anchor,omitempty"`
	Bounds            []float64        `yaml:"bounds,omitempty"`
	Transform         *[]TransformStep `yaml:"transform,omitempty"`
	Opacity           *float64         `yaml:"opacity,omitempty"`
	DrawsContent      *bool            `yaml:"draws_content,omitempty"`
	Color             string           `yaml:"color,omitempty"`
	ForceSurface      *bool            `yaml:"force_surface,omitempty"`
	Filters           *[]FilterSpec    `yaml:"filters,omitempty"`
	BackgroundFilters *[]FilterSpec    `yaml:"background_filters,omitempty"`
	ImageFilter       *[]FilterSpec    `yaml:"image_filter,omitempty"`
	UpdateRect        []float64        `yaml:"update_rect,omitempty"`
	NeedsDisplay      bool             `yaml:"needs_display,omitempty"`
	AddChild          *LayerSpec       `yaml:"add_child,omitempty"`
	Mask              *LayerSpec       `yaml:"mask,omitempty"`
	RemoveMask        bool             `yaml:"remove_mask,omitempty"`
	Replica           *LayerSpec       `yaml:"replica,omitempty"`
	RemoveReplica     bool             `yaml:"remove_replica,omitempty"`
	Remove            bool             `yaml:"remove,omitempty"`
	Damage            []float64        `yaml:"damage,omitempty"`
	Redraw            bool             `yaml:"redraw,omitempty"`
}

// Parse decodes a frame script.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: failed to parse: %w", err)
	}
	if s.Root.Name == "" {
		return nil, fmt.Errorf("%w: root layer needs a name", ErrInvalid)
	}
	return &s, nil
}

// Load reads and decodes the frame script at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
