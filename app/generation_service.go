package app

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"clauseforge/domain/assemble"
	"clauseforge/domain/core"
	"clauseforge/domain/render"
	"clauseforge/domain/resolve"
	"clauseforge/domain/vars"
	"clauseforge/internal"
	"clauseforge/ports"
)

// Output formats a generation request may ask for
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// GenerationService turns (contract type, project data) into a rendered
// document. The pipeline per request is fetch -> resolve -> substitute ->
// assemble -> render, synchronous and free of shared mutable state, so
// package generation can run the contract types concurrently.
type GenerationService struct {
	templates ports.TemplateRepository
	resolver  *resolve.Resolver
	renderer  ports.PageRenderer
}

// NewGenerationService creates a generation service
func NewGenerationService(templates ports.TemplateRepository, resolver *resolve.Resolver, renderer ports.PageRenderer) *GenerationService {
	return &GenerationService{
		templates: templates,
		resolver:  resolver,
		renderer:  renderer,
	}
}

// GenerateRequest defines inputs for one document generation
type GenerateRequest struct {
	ContractType  string
	ProjectID     string
	ProjectName   string
	ExecutionDate *time.Time
	Data          core.DataBag
	Format        string // FormatHTML or FormatPDF
}

// GenerateResult is one rendered document plus its audit fields
type GenerateResult struct {
	ContractType     string
	Filename         string
	ContentType      string
	Content          []byte
	ClauseCount      int
	MissingVariables []string
}

// Generate runs the full assembly pipeline for one contract type
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	tpl, err := s.templates.FetchActive(ctx, req.ContractType)
	if err != nil {
		return nil, err
	}

	bag := resolve.DeriveFlags(req.Data)
	incs, err := s.resolver.ResolveAnnotated(ctx, tpl, bag)
	if err != nil {
		return nil, err
	}

	var items []assemble.Input
	missing := make(map[string]bool)
	for _, inc := range incs {
		body, unresolved := vars.Substitute(inc.Clause.Body, bag)
		for _, name := range unresolved {
			missing[name] = true
		}
		items = append(items, assemble.Input{Clause: inc.Clause, Body: body})
	}

	doc := assemble.Assemble(items)
	meta := render.Metadata{
		ContractTitle: ContractTitle(req.ContractType),
		ContractType:  req.ContractType,
		ProjectID:     req.ProjectID,
		ProjectName:   req.ProjectName,
		ExecutionDate: req.ExecutionDate,
	}
	html := render.RenderHTML(doc, meta, signatureBlock(bag))

	result := &GenerateResult{
		ContractType:     req.ContractType,
		ClauseCount:      len(incs),
		MissingVariables: sortedKeys(missing),
	}
	if len(result.MissingVariables) > 0 {
		internal.DefaultLogger.Warn("generate %s: %d unresolved variables: %s",
			req.ContractType, len(result.MissingVariables), strings.Join(result.MissingVariables, ", "))
	}

	switch req.Format {
	case FormatPDF:
		pdf, err := s.renderer.RenderPDF(ctx, html, ports.A4Geometry())
		if err != nil {
			return nil, err
		}
		result.Content = pdf
		result.ContentType = "application/pdf"
		result.Filename = Filename(req.ProjectName, req.ContractType, "pdf")
	default:
		result.Content = []byte(html)
		result.ContentType = "text/html; charset=utf-8"
		result.Filename = Filename(req.ProjectName, req.ContractType, "html")
	}
	return result, nil
}

// PackageItem is the per-document outcome of a package generation. A failed
// sibling never collapses the whole package; callers report item by item.
type PackageItem struct {
	ContractType string
	Result       *GenerateResult
	Err          error
}

// GeneratePackage generates every requested contract type concurrently.
// Each document is an independent task over the same project data; one
// document's failure is recorded on its item and does not cancel siblings.
func (s *GenerationService) GeneratePackage(ctx context.Context, contractTypes []string, req GenerateRequest) []PackageItem {
	items := make([]PackageItem, len(contractTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, ct := range contractTypes {
		i, ct := i, ct
		g.Go(func() error {
			r := req
			r.ContractType = ct
			res, err := s.Generate(gctx, r)
			items[i] = PackageItem{ContractType: ct, Result: res, Err: err}
			// Errors stay on the item so siblings keep running.
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// signatureBlock builds the appended signature section from the party
// fields when the project data carries them.
func signatureBlock(bag core.DataBag) render.SafeFragment {
	left := vars.Format(bag.Lookup("CLIENT_NAME"))
	right := vars.Format(bag.Lookup("CONTRACTOR_NAME"))
	if left == "" {
		left = "Client"
	}
	if right == "" {
		right = "Contractor"
	}
	return render.SignatureBlock(left, right)
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename builds the delivery filename:
// {sanitizedProjectName}_{contractType}_{timestamp}.{ext}
func Filename(projectName, contractType, ext string) string {
	name := filenameSanitizer.ReplaceAllString(projectName, "")
	if name == "" {
		name = "project"
	}
	return fmt.Sprintf("%s_%s_%s.%s", name, contractType, time.Now().Format("20060102_150405"), ext)
}

// ContractTitle derives the cover title from the contract type key,
// e.g. "SUBCONTRACT_CRC" -> "Subcontract Crc".
func ContractTitle(contractType string) string {
	words := strings.Split(strings.ToLower(contractType), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	// Deterministic reporting order.
	sort.Strings(out)
	return out
}
