package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	// Target is the file to transform.
	Target     string
	LookupDirs []string

	Recipe       string
	StartMarker  string
	EndMarker    string
	InsertMarker string
	PayloadFile  string
	OldUsage     string
	NewUsage     string

	DryRun      bool
	Strict      bool
	Atomic      bool
	Buffer      bool
	Save        bool
	NoAnimation bool
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse parses args into a Config.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("transplant", pflag.ContinueOnError)

	flags.StringVarP(&cfg.Recipe, "recipe", "c", "", "Recipe file (.toml or .md) with markers, payload and usage snippets.")
	flags.StringVar(&cfg.StartMarker, "start-marker", "", "Start marker of the region to excise.")
	flags.StringVar(&cfg.EndMarker, "end-marker", "", "End marker of the region to excise (kept in the output).")
	flags.StringVar(&cfg.InsertMarker, "insert-marker", "", "Marker the payload block is inserted before.")
	flags.StringVarP(&cfg.PayloadFile, "payload-file", "p", "", "Read the payload block from this file (default: stdin if piped, else clipboard).")
	flags.StringVar(&cfg.OldUsage, "old-usage", "", "Usage snippet to replace.")
	flags.StringVar(&cfg.NewUsage, "new-usage", "", "Replacement usage snippet.")
	flags.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "l", []string{}, "Directories to look for the target file in (default: current directory).")

	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print a unified diff instead of writing the file.")
	flags.BoolVar(&cfg.Strict, "strict", false, "Fail without writing if any configured stage is skipped.")
	flags.BoolVar(&cfg.Atomic, "atomic", false, "Write to a temporary file and rename it over the target.")
	flags.BoolVarP(&cfg.Buffer, "buffer", "b", false, "Load the result into a Neovim buffer instead of writing the file.")
	flags.BoolVar(&cfg.Save, "save", false, "With --buffer, have Neovim write the buffer to disk.")
	flags.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable loading spinner and progress updates.")

	flags.Usage = func() {
		fmt.Println("Usage: transplant [flags] <file>")
		fmt.Println("\nExcise a marked region, insert a payload block before a marker, and rewrite a usage snippet in one file.")
		fmt.Println("\nExample: transplant -c refactor.toml src/components/CheckoutFeed.tsx")
		fmt.Println("\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return nil, fmt.Errorf("error: expected exactly one target file, got %d", flags.NArg())
	}
	cfg.Target = flags.Arg(0)

	// Validate mutually exclusive flags
	if cfg.DryRun && cfg.Buffer {
		return nil, fmt.Errorf("error: --dry-run and --buffer are mutually exclusive")
	}
	if cfg.Atomic && cfg.Buffer {
		return nil, fmt.Errorf("error: --atomic and --buffer are mutually exclusive")
	}
	if cfg.Save && !cfg.Buffer {
		return nil, fmt.Errorf("error: --save requires --buffer")
	}

	return cfg, nil
}
