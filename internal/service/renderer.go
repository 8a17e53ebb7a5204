package service

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

const wordsPerMinute = 200

// RenderResult contains the rendered body of a page and its metrics
type RenderResult struct {
	HTML           string
	WordCount      int
	ReadingMinutes int
	Checksum       string
}

// Renderer turns page bodies written in Markdown (with inline HTML) into HTML
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts content to HTML and counts the words of its readable text
func (r *Renderer) Render(content string) (*RenderResult, error) {
	source := []byte(content)
	result := &RenderResult{
		Checksum: r.calculateChecksum(source),
	}

	doc := r.md.Parser().Parse(text.NewReader(source))

	var textBuilder strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			textBuilder.Write(t.Segment.Value(source))
			textBuilder.WriteString(" ")
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk document: %w", err)
	}

	result.WordCount = len(strings.Fields(textBuilder.String()))
	if result.WordCount > 0 {
		result.ReadingMinutes = int(math.Ceil(float64(result.WordCount) / wordsPerMinute))
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	result.HTML = buf.String()

	return result, nil
}

// calculateChecksum computes MD5 hash of content
func (r *Renderer) calculateChecksum(content []byte) string {
	hash := md5.Sum(content)
	return hex.EncodeToString(hash[:])
}
