package recording

import "image"

// ResourcePool stores the paths, brushes, and images referenced by
// commands. Mutable resources are cloned on insertion so a finished
// Recording cannot be altered through values the caller still holds.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	paths   []*Path
	brushes []Brush
	images  []image.Image
}

// NewResourcePool creates an empty pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:   make([]*Path, 0, 64),
		brushes: make([]Brush, 0, 16),
		images:  make([]image.Image, 0, 4),
	}
}

// AddPath clones the path into the pool and returns its reference.
func (p *ResourcePool) AddPath(path *Path) PathRef {
	if path == nil {
		p.paths = append(p.paths, nil)
	} else {
		p.paths = append(p.paths, path.Clone())
	}
	return PathRef(uint32(len(p.paths) - 1))
}

// Path returns the path for ref, or nil if the reference is out of range.
func (p *ResourcePool) Path(ref PathRef) *Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// AddBrush stores a brush and returns its reference.
func (p *ResourcePool) AddBrush(b Brush) BrushRef {
	p.brushes = append(p.brushes, b)
	return BrushRef(uint32(len(p.brushes) - 1))
}

// Brush returns the brush for ref, or nil if the reference is out of range.
func (p *ResourcePool) Brush(ref BrushRef) Brush {
	if int(ref) >= len(p.brushes) {
		return nil
	}
	return p.brushes[ref]
}

// AddImage stores an image and returns its reference.
// Images are shared, not copied; callers must treat them as immutable.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	return ImageRef(uint32(len(p.images) - 1))
}

// Image returns the image for ref, or nil if the reference is out of range.
func (p *ResourcePool) Image(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// PathCount returns the number of pooled paths.
func (p *ResourcePool) PathCount() int { return len(p.paths) }

// BrushCount returns the number of pooled brushes.
func (p *ResourcePool) BrushCount() int { return len(p.brushes) }

// ImageCount returns the number of pooled images.
func (p *ResourcePool) ImageCount() int { return len(p.images) }

// Clone deep-copies the pool. Paths are cloned; brushes and images are
// shared since they are immutable once pooled.
func (p *ResourcePool) Clone() *ResourcePool {
	c := &ResourcePool{
		paths:   make([]*Path, len(p.paths)),
		brushes: make([]Brush, len(p.brushes)),
		images:  make([]image.Image, len(p.images)),
	}
	for i, path := range p.paths {
		if path != nil {
			c.paths[i] = path.Clone()
		}
	}
	copy(c.brushes, p.brushes)
	copy(c.images, p.images)
	return c
}
