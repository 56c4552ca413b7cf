package ports

import (
	"context"
)

// PageGeometry describes the fixed-layout output page
type PageGeometry struct {
	Width        float64 // inches
	Height       float64 // inches
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// A4 page geometry with standard contract margins
func A4Geometry() PageGeometry {
	return PageGeometry{
		Width:        8.27,
		Height:       11.69,
		MarginTop:    1.0,
		MarginBottom: 1.0,
		MarginLeft:   1.0,
		MarginRight:  1.0,
	}
}

// PageRenderer turns print-styled HTML into fixed-layout document bytes.
// Implementations drive an external rendering engine; one engine session is
// acquired per call and released before returning, never held across calls.
type PageRenderer interface {
	RenderPDF(ctx context.Context, html string, geometry PageGeometry) ([]byte, error)
}
