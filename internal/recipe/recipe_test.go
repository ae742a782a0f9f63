package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/transplant/internal/splice"
)

const tomlSource = `
[excise]
start = "const FeedItem = ({ product, isActive }"
end = "// --- RESTORED CHECKOUT SHEET"
separator = "\n  "

[insert]
marker = "export const CheckoutFeed: React.FC<CheckoutFeedProps> ="
payload_file = "feed_item.tsx"

[usage]
old = "<FeedItem product={p} />"
new = """<FeedItem
  product={p}
  phone={phone}
/>"""
`

const markdownSource = "# Checkout feed refactor\n\n" +
	"Some prose that is not a role.\n\n" +
	"```tsx\nignored\n```\n\n" +
	"`start-marker`\n\n```tsx\nconst FeedItem = ({ product, isActive }\n```\n\n" +
	"end-marker:\n\n```\n// --- RESTORED CHECKOUT SHEET\n```\n\n" +
	"insert-marker\n\n```tsx\nexport const CheckoutFeed: React.FC<CheckoutFeedProps> =\n```\n\n" +
	"payload\n\n```tsx\nconst FeedItem = () => {\n  return null;\n};\n```\n\n" +
	"old-usage\n\n```tsx\n<FeedItem product={p} />\n```\n\n" +
	"new-usage\n\n```tsx\n<FeedItem\n  product={p}\n  phone={phone}\n/>\n```\n"

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	payload := "const FeedItem = () => {\n  return null;\n};"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feed_item.tsx"), []byte(payload), 0644))
	path := filepath.Join(dir, "recipe.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlSource), 0644))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "const FeedItem = ({ product, isActive }", r.StartMarker)
	assert.Equal(t, "// --- RESTORED CHECKOUT SHEET", r.EndMarker)
	assert.Equal(t, "\n  ", r.ExciseSeparator)
	assert.Equal(t, "export const CheckoutFeed: React.FC<CheckoutFeedProps> =", r.InsertMarker)
	assert.Equal(t, payload, r.Payload)
	assert.Equal(t, splice.DefaultInsertSeparator, r.InsertSeparator)
	assert.Equal(t, "<FeedItem product={p} />", r.OldUsage)
	assert.Equal(t, "<FeedItem\n  product={p}\n  phone={phone}\n/>", r.NewUsage)
}

func TestLoadMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.md")
	require.NoError(t, os.WriteFile(path, []byte(markdownSource), 0644))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "const FeedItem = ({ product, isActive }", r.StartMarker)
	assert.Equal(t, "// --- RESTORED CHECKOUT SHEET", r.EndMarker)
	assert.Equal(t, splice.DefaultExciseSeparator, r.ExciseSeparator)
	assert.Equal(t, "export const CheckoutFeed: React.FC<CheckoutFeedProps> =", r.InsertMarker)
	assert.Equal(t, "const FeedItem = () => {\n  return null;\n};", r.Payload)
	assert.Equal(t, "<FeedItem product={p} />", r.OldUsage)
	assert.Equal(t, "<FeedItem\n  product={p}\n  phone={phone}\n/>", r.NewUsage)
}

func TestParseMarkdownDuplicateRole(t *testing.T) {
	src := "payload\n\n```\na\n```\n\npayload\n\n```\nb\n```\n"

	_, err := ParseMarkdown([]byte(src))
	assert.ErrorContains(t, err, `duplicate "payload"`)
}

func TestParseMarkdownSeparatorsVerbatim(t *testing.T) {
	src := "excise-separator\n\n```\n\n```\n\n" +
		"insert-separator\n\n```\n\n\n```\n\n" +
		"old-usage\n\n```\nold()\n```\n"

	r, err := ParseMarkdown([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "\n", r.ExciseSeparator)
	assert.Equal(t, "\n\n", r.InsertSeparator)
	assert.Equal(t, "old()", r.OldUsage)
}

func TestExtractCodeBlocks(t *testing.T) {
	src := "hint line\n\n```go\nfunc main() {}\n```\n\n```\nbare\n```\n"

	blocks, err := ExtractCodeBlocks([]byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, CodeBlock{Hint: "hint line", Lang: "go", Content: "func main() {}\n"}, blocks[0])
	assert.Equal(t, CodeBlock{Content: "bare\n"}, blocks[1])
}

func TestParseTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "unknown field", src: "[excise]\nbegin = \"x\"\n", want: "failed to parse toml recipe"},
		{name: "both payloads", src: "[insert]\npayload = \"a\"\npayload_file = \"b\"\n", want: "both insert.payload and insert.payload_file"},
		{name: "missing payload file", src: "[insert]\npayload_file = \"nope.txt\"\n", want: "failed to read payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTOML([]byte(tt.src), t.TempDir())
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: 1"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported recipe format")
}

func TestOverridesApply(t *testing.T) {
	payloadPath := filepath.Join(t.TempDir(), "payload.txt")
	require.NoError(t, os.WriteFile(payloadPath, []byte("PAYLOAD"), 0644))

	base := splice.NewRecipe()
	base.StartMarker = "A"
	base.EndMarker = "B"
	base.OldUsage = "old"

	r, err := Overrides{EndMarker: "C", PayloadFile: payloadPath, NewUsage: "new"}.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, "A", r.StartMarker)
	assert.Equal(t, "C", r.EndMarker)
	assert.Equal(t, "PAYLOAD", r.Payload)
	assert.Equal(t, "old", r.OldUsage)
	assert.Equal(t, "new", r.NewUsage)
}
