package ui

import (
	_ "embed"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed instructions.md
var instructionsMarkdown []byte

// renderInstructions converts the bundled usage notes to HTML once at startup.
func renderInstructions() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML(instructionsMarkdown, p, renderer))
}
