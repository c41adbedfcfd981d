package zap

import (
	"context"
	"strings"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Reports covers the traditional core reports and the reports add-on.
type Reports struct {
	core    base
	reports base
}

// HTML returns the traditional HTML report.
func (r *Reports) HTML(ctx context.Context) (string, error) {
	return r.core.other(ctx, "htmlreport", nil)
}

// XML returns the traditional XML report.
func (r *Reports) XML(ctx context.Context) (string, error) {
	return r.core.other(ctx, "xmlreport", nil)
}

// JSON returns the traditional JSON report, unparsed.
func (r *Reports) JSON(ctx context.Context) (string, error) {
	return r.core.other(ctx, "jsonreport", nil)
}

// Markdown returns the traditional Markdown report.
func (r *Reports) Markdown(ctx context.Context) (string, error) {
	return r.core.other(ctx, "mdreport", nil)
}

// Templates returns the report template names.
func (r *Reports) Templates(ctx context.Context) ([]string, error) {
	return view[[]string](ctx, r.reports, "templates", nil)
}

// GenerateOptions are the arguments of Generate. Slices are joined with "|".
type GenerateOptions struct {
	Title       string
	Template    string
	Theme       string
	Description string
	Contexts    []string
	Sites       []string
	Sections    []string
	FileName    string
	Dir         string
}

// Generate writes a report on the proxy host and returns its path.
func (r *Reports) Generate(ctx context.Context, opts GenerateOptions) (string, error) {
	p := zapapi.NewParams().
		Set("title", opts.Title).
		Set("template", opts.Template).
		SetIf("theme", opts.Theme).
		SetIf("description", opts.Description).
		SetIf("contexts", strings.Join(opts.Contexts, "|")).
		SetIf("sites", strings.Join(opts.Sites, "|")).
		SetIf("sections", strings.Join(opts.Sections, "|")).
		SetIf("reportFileName", opts.FileName).
		SetIf("reportDir", opts.Dir)
	return actionResult[string](ctx, r.reports, "generate", p)
}
