package builder

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/skelhorn/coastergen/pkg/design"
	"github.com/skelhorn/coastergen/pkg/emboss"
	"github.com/skelhorn/coastergen/pkg/geom"
	"github.com/skelhorn/coastergen/pkg/pattern"
	"github.com/skelhorn/coastergen/pkg/shape"
)

// Generate assembles the full mesh for one coaster design. The spec is
// validated on a copy, so the caller's design is never mutated. When a
// relief field is present the side walls stop at the base thickness and
// the relief surface takes over from there.
func Generate(c *design.Coaster) (*geom.Mesh, error) {
	spec := c.Spec
	spec.Validate()

	profile, err := shape.Profile(spec)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	topZ := spec.TotalHeight
	if c.Relief != nil {
		topZ = spec.BaseThickness
	}

	m := geom.NewMesh()
	addBaseCap(m, profile)
	if c.Relief != nil {
		addReliefTop(m, profile, c.Relief, spec)
	} else {
		addTopCap(m, profile, topZ)
	}
	addWalls(m, profile, topZ)

	if err := addEdgeTreatment(m, profile, spec, topZ); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	for _, ps := range c.Patterns {
		if err := pattern.Carve(m, profile, ps, topZ); err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
	}

	for _, ts := range c.Text {
		m.AddAll(emboss.Text(ts, spec.Diameter, topZ))
	}

	if spec.NonSlip {
		pattern.Stubs(m, profile, pattern.StubSpacing)
	}
	return m, nil
}

// GenerateAll builds every design concurrently and returns the meshes in
// input order. progress, if non-nil, is called with the running count of
// completed designs; calls may arrive from multiple goroutines. The
// first failure cancels the batch.
func GenerateAll(designs []*design.Coaster, progress func(done int)) ([]*geom.Mesh, error) {
	meshes := make([]*geom.Mesh, len(designs))
	var done atomic.Int64

	var g errgroup.Group
	for i, c := range designs {
		i, c := i, c
		g.Go(func() error {
			m, err := Generate(c)
			if err != nil {
				return fmt.Errorf("design %d: %w", i, err)
			}
			meshes[i] = m
			if progress != nil {
				progress(int(done.Add(1)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}
