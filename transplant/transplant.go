package transplant

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/sokinpui/transplant/cli"
	"github.com/sokinpui/transplant/internal/fs"
	"github.com/sokinpui/transplant/internal/nvim"
	"github.com/sokinpui/transplant/internal/patcher"
	"github.com/sokinpui/transplant/internal/recipe"
	"github.com/sokinpui/transplant/internal/source"
	"github.com/sokinpui/transplant/internal/splice"
	"github.com/sokinpui/transplant/internal/ui"
	"github.com/sokinpui/transplant/model"
)

// ErrStagesSkipped is returned in strict mode when a configured stage did not
// apply. Nothing is written in that case.
var ErrStagesSkipped = errors.New("stages skipped")

// ErrEmptyRecipe is returned when no stage is configured.
var ErrEmptyRecipe = errors.New("nothing to do: no markers or usage snippets configured")

// payloadSource supplies the payload block when the recipe has none.
type payloadSource interface {
	GetContent() (string, error)
}

// App orchestrates the entire application logic.
type App struct {
	cfg            *cli.Config
	pathResolver   *fs.PathResolver
	sourceProvider payloadSource
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	return &App{
		cfg:            cfg,
		pathResolver:   fs.NewPathResolver(cfg.LookupDirs),
		sourceProvider: source.New(),
	}, nil
}

// Execute loads the recipe described by the flags and transforms the target
// file. The returned summary carries the stage outcomes even when err is
// ErrStagesSkipped.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	r, err := a.loadRecipe()
	if err != nil {
		return model.Summary{}, err
	}
	return a.transformFile(a.pathResolver.Resolve(a.cfg.Target), r)
}

func (a *App) loadRecipe() (splice.Recipe, error) {
	r := splice.NewRecipe()
	if a.cfg.Recipe != "" {
		loaded, err := recipe.Load(a.cfg.Recipe)
		if err != nil {
			return splice.Recipe{}, err
		}
		r = loaded
	}

	overrides := recipe.Overrides{
		StartMarker:  a.cfg.StartMarker,
		EndMarker:    a.cfg.EndMarker,
		InsertMarker: a.cfg.InsertMarker,
		PayloadFile:  a.cfg.PayloadFile,
		OldUsage:     a.cfg.OldUsage,
		NewUsage:     a.cfg.NewUsage,
	}
	return overrides.Apply(r)
}

// transformFile reads path, runs the pipeline and hands the result to the
// configured destination.
func (a *App) transformFile(path string, r splice.Recipe) (model.Summary, error) {
	if r.IsEmpty() {
		return model.Summary{}, ErrEmptyRecipe
	}
	if err := r.Validate(); err != nil {
		return model.Summary{}, err
	}

	ui.Header("--- Transforming %s ---", a.displayPath(path))
	content, err := fs.ReadText(path)
	if err != nil {
		return model.Summary{}, err
	}

	if r.InsertMarker != "" && r.Payload == "" {
		payload, err := a.sourceProvider.GetContent()
		if err != nil {
			return model.Summary{}, err
		}
		r.Payload = payload
	}

	res := splice.Transform(content, r)
	summary := model.Summary{
		Path:     a.displayPath(path),
		Outcomes: res.Outcomes,
	}
	for _, o := range res.Skipped() {
		if o.Reason != splice.ReasonNotConfigured {
			ui.Warning("  -> %s", ui.StageLine(o))
		}
	}

	if a.cfg.Strict {
		if missed := configuredSkips(res); len(missed.Outcomes) > 0 {
			summary.Message = "Strict mode: file left unchanged."
			return summary, fmt.Errorf("%w: %s", ErrStagesSkipped, missed.SkippedError())
		}
	}

	if a.cfg.DryRun {
		diff, err := patcher.UnifiedDiff(summary.Path, content, res.Buffer)
		if err != nil {
			return summary, err
		}
		summary.Destination = model.DestinationDryRun
		summary.Diff = diff
		if diff == "" {
			summary.Message = "Dry run: no changes."
		} else {
			summary.Message = "Dry run: nothing written."
		}
		return summary, nil
	}

	writer, closeWriter, err := a.writer()
	if err != nil {
		return summary, err
	}
	defer closeWriter()

	if err := writer.WriteText(path, res.Buffer); err != nil {
		return summary, err
	}
	summary.Written = true
	summary.Destination = a.destination()
	if !res.Changed(content) {
		summary.Message = "No stage changed the file."
	}
	ui.Success("  -> Wrote %s (%s)", summary.Path, summary.Destination)
	return summary, nil
}

// configuredSkips keeps only the skipped stages that were configured.
func configuredSkips(res splice.Result) splice.Result {
	var out splice.Result
	for _, o := range res.Skipped() {
		if o.Reason != splice.ReasonNotConfigured {
			out.Outcomes = append(out.Outcomes, o)
		}
	}
	return out
}

func (a *App) writer() (fs.Writer, func(), error) {
	if !a.cfg.Buffer {
		return fs.DiskWriter{Atomic: a.cfg.Atomic}, func() {}, nil
	}
	manager, err := nvim.New(a.cfg.Save)
	if err != nil {
		return nil, nil, err
	}
	return manager, manager.Close, nil
}

func (a *App) destination() string {
	switch {
	case a.cfg.Buffer:
		return model.DestinationBuffer
	case a.cfg.Atomic:
		return model.DestinationDiskAtomic
	default:
		return model.DestinationDisk
	}
}

// displayPath converts an absolute file path to be relative to the current
// working directory for cleaner display.
func (a *App) displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}
	return rel
}
