package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown converts insight card bodies to HTML. Cards are generated
// server-side, never from user input, so the output is trusted.
func renderMarkdown(source string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(source), p, renderer))
}
