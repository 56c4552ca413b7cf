package chromium

import (
	"context"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"clauseforge/domain/core"
	"clauseforge/internal"
	"clauseforge/ports"
)

// PageRendererImpl renders print-styled HTML to PDF bytes through headless
// Chromium. One browser page is acquired per render call and released
// before the call returns; nothing is held across requests, so concurrent
// document generations do not share mutable state here.
type PageRendererImpl struct {
	// BinPath optionally pins the Chromium binary instead of letting the
	// launcher resolve one
	BinPath string
}

// NewPageRenderer creates a headless-Chromium page renderer
func NewPageRenderer(binPath string) ports.PageRenderer {
	return &PageRendererImpl{BinPath: binPath}
}

// RenderPDF produces fixed-layout PDF bytes for the given HTML. Failures
// and context timeouts surface as core.ErrRenderDelegate; the caller owns
// the timeout policy and nothing is retried here.
func (r *PageRendererImpl) RenderPDF(ctx context.Context, html string, geometry ports.PageGeometry) ([]byte, error) {
	l := launcher.New()
	if r.BinPath != "" {
		l = l.Bin(r.BinPath)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, core.NewRenderDelegateError(err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, core.NewRenderDelegateError(err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			internal.DefaultLogger.Warn("chromium: browser close failed: %v", err)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, core.NewRenderDelegateError(err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, core.NewRenderDelegateError(err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, core.NewRenderDelegateError(err)
	}

	printBackground := true
	preferCSSPageSize := true
	req := &proto.PagePrintToPDF{
		PrintBackground:   printBackground,
		PreferCSSPageSize: preferCSSPageSize,
		PaperWidth:        &geometry.Width,
		PaperHeight:       &geometry.Height,
		MarginTop:         &geometry.MarginTop,
		MarginBottom:      &geometry.MarginBottom,
		MarginLeft:        &geometry.MarginLeft,
		MarginRight:       &geometry.MarginRight,
	}
	stream, err := page.PDF(req)
	if err != nil {
		return nil, core.NewRenderDelegateError(err)
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, core.NewRenderDelegateError(err)
	}
	return pdf, nil
}
