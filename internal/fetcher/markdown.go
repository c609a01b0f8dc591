package fetcher

import (
	"strings"

	"github.com/nao1215/markdown"
)

// renderMarkdown turns a page capture into markdown-like text, preserving
// document order of headings, paragraphs, and code blocks.
func renderMarkdown(capture *pageCapture) string {
	var buf strings.Builder
	md := markdown.NewMarkdown(&buf)

	if capture.Title != "" {
		md.H1(capture.Title)
	}
	if capture.MetaDescription != "" {
		md.PlainText(capture.MetaDescription)
	}

	for _, b := range capture.Blocks {
		switch b.Kind {
		case blockHeading:
			switch b.Level {
			case 1:
				// Page title already emitted as H1; duplicate in-body h1s
				// render one level down.
				md.H2(b.Text)
			case 2:
				md.H2(b.Text)
			default:
				md.H3(b.Text)
			}
		case blockCode:
			md.CodeBlocks(markdown.SyntaxHighlightText, b.Text)
		default:
			md.PlainText(b.Text)
		}
	}

	if err := md.Build(); err != nil {
		// strings.Builder never fails to write; keep whatever was rendered.
		return buf.String()
	}
	return buf.String()
}
