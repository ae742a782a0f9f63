package transplant

import (
	"fmt"

	"github.com/sokinpui/transplant/cli"
	"github.com/sokinpui/transplant/internal/recipe"
	"github.com/sokinpui/transplant/internal/splice"
	"github.com/sokinpui/transplant/model"
)

// Recipe is the literal configuration of one run: markers, payload block and
// usage pair.
type Recipe = splice.Recipe

// Outcome reports what one pipeline stage did.
type Outcome = splice.Outcome

// NewRecipe returns a Recipe with the default separators.
func NewRecipe() Recipe {
	return splice.NewRecipe()
}

// LoadRecipe reads a .toml or .md recipe file.
func LoadRecipe(path string) (Recipe, error) {
	return recipe.Load(path)
}

// Options for using transplant as a library.
type Options struct {
	// Print a diff instead of writing.
	DryRun bool
	// Fail without writing if a configured stage is skipped.
	Strict bool
	// Write via a temporary file and rename.
	Atomic bool
}

// Transform applies r to buf in memory and returns the result with one
// outcome per stage.
func Transform(buf string, r Recipe) (string, []Outcome) {
	res := splice.Transform(buf, r)
	return res.Buffer, res.Outcomes
}

// Apply transforms the file at path with r. An insertion stage without a
// payload inserts nothing; the library never reads stdin or the clipboard.
func Apply(path string, r Recipe, opts Options) (model.Summary, error) {
	app, err := New(&cli.Config{
		Target: path,
		DryRun: opts.DryRun,
		Strict: opts.Strict,
		Atomic: opts.Atomic,
	})
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to initialize transplant app: %w", err)
	}
	app.sourceProvider = emptySource{}

	return app.transformFile(app.pathResolver.Resolve(path), r)
}

type emptySource struct{}

func (emptySource) GetContent() (string, error) { return "", nil }
