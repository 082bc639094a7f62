package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Import paths used by generated code.
const (
	defaultClassImport     = "github.com/sghaida/oclass/class"
	defaultBlueprintImport = "github.com/sghaida/oclass/blueprint"
)

// options are the command line flags.
type options struct {
	specPath    string
	outPath     string
	pkg         string
	prefix      string
	classImport string
	bpImport    string
	verbose     bool
}

// usageError marks errors that should exit with code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func newRootCmd(stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "classgen --spec <file.class.yaml> --out <file.gen.go>",
		Short:         "Generate typed class wiring from a blueprint",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unexpected arguments: %v", args)}
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.specPath) == "" || strings.TrimSpace(opts.outPath) == "" {
				return usageError{errors.New("both --spec and --out are required")}
			}
			return generate(opts, newLogger(stderr, opts.verbose))
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	flags := cmd.Flags()
	flags.StringVarP(&opts.specPath, "spec", "s", "", "path to the blueprint (.yaml, .yml or .toml)")
	flags.StringVarP(&opts.outPath, "out", "o", "", "output .gen.go file path")
	flags.StringVar(&opts.pkg, "package", "", "override the blueprint package name")
	flags.StringVar(&opts.prefix, "prefix", "", "override the blueprint identifier prefix")
	flags.StringVar(&opts.classImport, "class-import", defaultClassImport, "import path of the class runtime")
	flags.StringVar(&opts.bpImport, "blueprint-import", defaultBlueprintImport, "import path of the blueprint package")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log generation steps to stderr")

	return cmd
}

// run executes the command and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil args.
		args = []string{}
	}

	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "classgen:", err)
		var ue usageError
		if errors.As(err, &ue) {
			_, _ = fmt.Fprintln(stderr, "usage:", cmd.Use)
			return 2
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel))
}

// generate loads, checks and renders the blueprint, then writes the output.
func generate(opts options, logger *zap.Logger) error {
	bp, err := loadBlueprint(opts.specPath)
	if err != nil {
		return err
	}
	if opts.pkg != "" {
		bp.Package = opts.pkg
	}
	if opts.prefix != "" {
		bp.Prefix = opts.prefix
	}
	logger.Debug("blueprint loaded", zap.String("spec", opts.specPath), zap.Int("classes", len(bp.Classes)))

	if err := dryBuild(bp, logger); err != nil {
		return err
	}

	src, err := render(bp, opts.classImport, opts.bpImport)
	if err != nil {
		return err
	}

	outPath := filepath.Clean(opts.outPath)
	if err := writeFileAtomic(outPath, src, 0o644); err != nil {
		return err
	}
	logger.Debug("generated", zap.String("out", outPath), zap.Int("bytes", len(src)))
	return nil
}
