package design

// HeightField is a dense 2D grid of relief samples, nominally in [0,1].
// Width and height are arbitrary and independent of the profile resolution;
// the relief builder resamples as needed.
type HeightField struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Values []float64 `json:"values"` // row-major, len = Width*Height
}

// NewHeightField allocates a zero-valued field of the given dimensions.
func NewHeightField(width, height int) *HeightField {
	return &HeightField{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the sample at (x, y). Indices are clamped to the grid so
// callers at the boundary never read out of range.
func (f *HeightField) At(x, y int) float64 {
	if x < 0 {
		x = 0
	}
	if x >= f.Width {
		x = f.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= f.Height {
		y = f.Height - 1
	}
	return f.Values[y*f.Width+x]
}

// Set stores a sample at (x, y). Out-of-range indices are ignored.
func (f *HeightField) Set(x, y int, v float64) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	f.Values[y*f.Width+x] = v
}
