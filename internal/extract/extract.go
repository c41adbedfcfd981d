// Package extract pulls values out of the xml and html renderings of ZAP
// API calls with XPath, CSS selectors or regular expressions.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Mode is an extraction language.
type Mode string

// Extraction modes.
const (
	ModeXPath Mode = "xpath"
	ModeCSS   Mode = "css"
	ModeRegex Mode = "regex"
)

// Result holds the extracted values.
type Result struct {
	Values []any `json:"values"`
	Count  int   `json:"count"`
	Mode   Mode  `json:"mode"`
}

// Options controls extraction.
type Options struct {
	MaxResults int    // stop after N values (0 = no limit)
	Attr       string // css: read this attribute instead of the text
}

// FormatFor returns the rendering a mode expects to run against.
func FormatFor(mode Mode) zapapi.Format {
	switch mode {
	case ModeCSS:
		return zapapi.FormatHTML
	case ModeXPath:
		return zapapi.FormatXML
	default:
		return zapapi.FormatOther
	}
}

// Extract runs expr over body, a response in format.
func Extract(body string, format zapapi.Format, mode Mode, expr string, opts Options) (*Result, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%s expression is required", mode)
	}
	switch mode {
	case ModeXPath:
		if format == zapapi.FormatHTML {
			return xpathHTML(body, expr, opts.MaxResults)
		}
		return xpathXML(body, expr, opts.MaxResults)
	case ModeCSS:
		return css(body, expr, opts)
	case ModeRegex:
		return Regex(body, expr, opts.MaxResults)
	default:
		return nil, fmt.Errorf("unknown extraction mode %q (valid: xpath, css, regex)", mode)
	}
}

func xpathXML(body, expr string, max int) (*Result, error) {
	doc, err := xmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	nodes, err := xmlquery.QueryAll(doc, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}
	c := collector{mode: ModeXPath, max: max}
	for _, n := range nodes {
		if !c.add(n.InnerText()) {
			break
		}
	}
	return c.result(), nil
}

func xpathHTML(body, expr string, max int) (*Result, error) {
	doc, err := htmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	nodes, err := htmlquery.QueryAll(doc, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}
	c := collector{mode: ModeXPath, max: max}
	for _, n := range nodes {
		if !c.add(htmlquery.InnerText(n)) {
			break
		}
	}
	return c.result(), nil
}

func css(body, selector string, opts Options) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid CSS selector: %w", err)
	}
	sel := doc.FindMatcher(m)
	c := collector{mode: ModeCSS, max: opts.MaxResults}
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if opts.Attr != "" {
			v, ok := s.Attr(opts.Attr)
			if !ok {
				return true
			}
			return c.add(v)
		}
		return c.add(s.Text())
	})
	return c.result(), nil
}

// Regex returns the first capture group of each match, or the whole match
// when the expression has no groups.
func Regex(body, expr string, max int) (*Result, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}
	c := collector{mode: ModeRegex, max: max, keepBlank: true}
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		v := m[0]
		if len(m) > 1 {
			v = m[1]
		}
		if !c.add(v) {
			break
		}
	}
	return c.result(), nil
}

type collector struct {
	mode      Mode
	max       int
	keepBlank bool
	values    []any
}

// add records v and reports whether more values are wanted.
func (c *collector) add(v string) bool {
	if !c.keepBlank {
		v = strings.TrimSpace(v)
		if v == "" {
			return true
		}
	}
	c.values = append(c.values, v)
	return c.max <= 0 || len(c.values) < c.max
}

func (c *collector) result() *Result {
	if c.values == nil {
		c.values = []any{}
	}
	return &Result{Values: c.values, Count: len(c.values), Mode: c.mode}
}
