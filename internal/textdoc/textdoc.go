// Package textdoc loads prose from plain-text and markdown files. Markdown
// structure that is not prose (headings, code blocks, horizontal rules) is
// stripped before evaluation; YAML frontmatter supplies document metadata
// such as genre.
package textdoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Document is a loaded prose text plus its metadata
type Document struct {
	Path        string
	Raw         []byte
	Text        string
	Frontmatter map[string]interface{}
}

// Genre returns the frontmatter genre, empty when absent
func (d *Document) Genre() string {
	if d.Frontmatter == nil {
		return ""
	}
	if g, ok := d.Frontmatter["genre"].(string); ok {
		return g
	}
	return ""
}

// Load reads a document from disk. Markdown files are stripped to prose;
// anything else is treated as plain text.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc := FromMarkdown(content)
		doc.Path = path
		return doc, nil
	default:
		return &Document{
			Path: path,
			Raw:  content,
			Text: strings.TrimSpace(string(content)),
		}, nil
	}
}

// FromMarkdown extracts prose from markdown content. Frontmatter is parsed
// out first; headings, code, and other non-prose block structure are skipped.
func FromMarkdown(content []byte) *Document {
	frontmatter, body := ParseFrontmatter(content)

	md := goldmark.New()
	reader := gtext.NewReader(body)
	root := md.Parser().Parse(reader)

	var blocks []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading, *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if text := blockText(n, body); text != "" {
				blocks = append(blocks, text)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return &Document{
		Raw:         content,
		Text:        strings.Join(blocks, "\n\n"),
		Frontmatter: frontmatter,
	}
}

// blockText joins a block node's source lines into one prose block
func blockText(n ast.Node, source []byte) string {
	var lines []string
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := strings.TrimSpace(string(seg.Value(source)))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

// ParseFrontmatter extracts YAML frontmatter between --- delimiters.
// Returns the parsed frontmatter and the content without it; malformed
// frontmatter is left in place.
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	if !bytes.HasPrefix(content, []byte("---")) {
		return nil, content
	}

	rest := content[3:]
	endIdx := bytes.Index(rest, []byte("\n---"))
	if endIdx == -1 {
		return nil, content
	}

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal(bytes.TrimSpace(rest[:endIdx]), &frontmatter); err != nil {
		return nil, content
	}

	remaining := rest[endIdx+4:]
	remaining = bytes.TrimPrefix(remaining, []byte("\n"))

	return frontmatter, remaining
}
