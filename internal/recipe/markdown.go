package recipe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sokinpui/transplant/internal/splice"
	"github.com/sokinpui/transplant/internal/ui"
)

// Roles a fenced code block can play in a Markdown recipe. The role is the
// paragraph immediately preceding the block. Every block loses its final
// newline except the two separators, which are taken verbatim: a separator
// block holding one empty line is "\n".
const (
	RoleStartMarker     = "start-marker"
	RoleEndMarker       = "end-marker"
	RoleExciseSeparator = "excise-separator"
	RoleInsertMarker    = "insert-marker"
	RolePayload         = "payload"
	RoleInsertSeparator = "insert-separator"
	RoleOldUsage        = "old-usage"
	RoleNewUsage        = "new-usage"
)

// CodeBlock represents a parsed code block from markdown content.
type CodeBlock struct {
	// Hint is the content of the paragraph immediately preceding the code block.
	Hint string
	// Lang is the language identifier of the code block (e.g., "tsx").
	Lang string
	// Content is the raw text inside the code block.
	Content string
}

// ExtractCodeBlocks uses a markdown AST to find all fenced code blocks
// and their preceding paragraph, which is treated as a hint.
func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	var blocks []CodeBlock
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fencedCodeBlock, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block CodeBlock
		block.Lang = string(fencedCodeBlock.Language(source))
		block.Content = string(linesOf(fencedCodeBlock, source))

		if prev := fencedCodeBlock.PreviousSibling(); prev != nil {
			if p, ok := prev.(*ast.Paragraph); ok {
				block.Hint = strings.TrimSpace(string(linesOf(p, source)))
			}
		}

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return blocks, nil
}

func linesOf(n ast.Node, source []byte) []byte {
	var content bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		content.Write(line.Value(source))
	}
	return content.Bytes()
}

// normalizeRole turns a hint such as "`Old-Usage`:" into "old-usage".
func normalizeRole(hint string) string {
	hint = strings.TrimSpace(hint)
	hint = strings.TrimSuffix(hint, ":")
	hint = strings.Trim(hint, "`*_ ")
	return strings.ToLower(hint)
}

// ParseMarkdown builds a Recipe from the fenced code blocks of a Markdown
// document. Blocks whose hint is not a known role are ignored.
func ParseMarkdown(source []byte) (splice.Recipe, error) {
	blocks, err := ExtractCodeBlocks(source)
	if err != nil {
		return splice.Recipe{}, fmt.Errorf("failed to parse markdown recipe: %w", err)
	}

	r := splice.NewRecipe()
	seen := make(map[string]bool)
	for _, block := range blocks {
		role := normalizeRole(block.Hint)
		content := block.Content
		if role != RoleExciseSeparator && role != RoleInsertSeparator {
			content = strings.TrimSuffix(content, "\n")
		}

		var field *string
		switch role {
		case RoleStartMarker:
			field = &r.StartMarker
		case RoleEndMarker:
			field = &r.EndMarker
		case RoleExciseSeparator:
			field = &r.ExciseSeparator
		case RoleInsertMarker:
			field = &r.InsertMarker
		case RolePayload:
			field = &r.Payload
		case RoleInsertSeparator:
			field = &r.InsertSeparator
		case RoleOldUsage:
			field = &r.OldUsage
		case RoleNewUsage:
			field = &r.NewUsage
		default:
			if block.Hint != "" {
				ui.Warning("Ignoring code block with unknown role %q.", block.Hint)
			}
			continue
		}

		if seen[role] {
			return splice.Recipe{}, fmt.Errorf("duplicate %q block in markdown recipe", role)
		}
		seen[role] = true
		*field = content
	}
	return r, nil
}
