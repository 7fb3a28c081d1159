package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/ironsheep/image-fill-mcp/internal/config"
	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
	"github.com/ironsheep/image-fill-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var errBoxFormat = errors.New("box must be x1,y1,x2,y2")

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Printf("image-fill %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "fill":
			configureLogging()
			os.Exit(runFill(args[1:], os.Stderr))
		case "config":
			os.Exit(runConfig(args[1:], os.Stdout, os.Stderr))
		case "serve":
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	configureLogging()

	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Image Fill MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "image-fill - fill image holes from their boundary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image-fill [serve]                 Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  image-fill fill [flags] file...    Fill images and write <name>_filled.png")
	fmt.Fprintln(w, "  image-fill config [-config path]   Print the effective config as TOML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fill flags:")
	newFillFlags(w).fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=path    TOML config file\n", config.EnvConfigPath)
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", config.EnvLogLevel)
}

// fillFlags holds the command-line flags of the fill subcommand. Zero values
// mean "use the config file".
type fillFlags struct {
	fs           *flag.FlagSet
	configPath   string
	box          string
	maskPath     string
	threshold    float64
	outDir       string
	exponent     float64
	epsilon      float64
	connectivity int
	grayMode     string
	workers      int
	quiet        bool
}

func newFillFlags(output io.Writer) *fillFlags {
	f := &fillFlags{fs: flag.NewFlagSet("fill", flag.ContinueOnError)}
	f.fs.SetOutput(output)
	f.fs.StringVar(&f.configPath, "config", os.Getenv(config.EnvConfigPath), "TOML config file.")
	f.fs.StringVar(&f.box, "box", "", "Hole box x1,y1,x2,y2; pixels strictly inside are filled.")
	f.fs.StringVar(&f.maskPath, "mask", "", "Mask image; bright pixels mark the hole.")
	f.fs.Float64Var(&f.threshold, "threshold", 0, "Mask luminance threshold in (0,1].")
	f.fs.StringVar(&f.outDir, "out", ".", "Output directory.")
	f.fs.Float64Var(&f.exponent, "exponent", 0, "Distance exponent z in 1/(d^z + epsilon).")
	f.fs.Float64Var(&f.epsilon, "epsilon", 0, "Epsilon in 1/(d^z + epsilon).")
	f.fs.IntVar(&f.connectivity, "connectivity", 0, "Pixel connectivity, 4 or 8.")
	f.fs.StringVar(&f.grayMode, "gray", "", "Grayscale conversion: bt601, luma or lab.")
	f.fs.IntVar(&f.workers, "workers", 0, "Goroutines per image fill.")
	f.fs.BoolVar(&f.quiet, "quiet", false, "Hide the progress bar.")
	return f
}

// mergeConfigAndFlags combines config settings with flags. Flags take
// precedence over the config file.
func mergeConfigAndFlags(cfg config.Config, f *fillFlags) (imaging.FillRequest, error) {
	if f.exponent > 0 {
		cfg.Fill.Exponent = f.exponent
	}
	if f.epsilon > 0 {
		cfg.Fill.Epsilon = f.epsilon
	}
	if f.connectivity != 0 {
		cfg.Fill.Connectivity = f.connectivity
	}
	if f.workers > 0 {
		cfg.Fill.Workers = f.workers
	}
	if f.grayMode != "" {
		cfg.Image.GrayMode = f.grayMode
	}
	if f.threshold > 0 {
		cfg.Image.MaskThreshold = f.threshold
	}

	mode, err := imaging.ParseGrayMode(cfg.Image.GrayMode)
	if err != nil {
		return imaging.FillRequest{}, err
	}

	req := imaging.FillRequest{
		Weigher:       cfg.Weigher(),
		Connectivity:  fill.ParseConnectivity(cfg.Fill.Connectivity),
		GrayMode:      mode,
		Workers:       cfg.Fill.Workers,
		MaskThreshold: cfg.Image.MaskThreshold,
		OmitPreview:   true,
	}

	if f.box != "" {
		box, err := parseBox(f.box)
		if err != nil {
			return imaging.FillRequest{}, err
		}
		req.Box = &box
	}
	return req, nil
}

// parseBox parses "x1,y1,x2,y2".
func parseBox(s string) (fill.Box, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fill.Box{}, fmt.Errorf("%w: %q", errBoxFormat, s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fill.Box{}, fmt.Errorf("%w: %q: %w", errBoxFormat, s, err)
		}
		v[i] = n
	}
	return fill.NewBox(v[0], v[1], v[2], v[3]), nil
}

// outputPath returns dir/<base>_filled.png for input.
func outputPath(dir, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"_filled.png")
}

// runFill implements the fill subcommand and returns the process exit code.
// A file that fails is logged and skipped; the exit code is 1 if any failed.
func runFill(args []string, stderr io.Writer) int {
	f := newFillFlags(stderr)
	if err := f.fs.Parse(args); err != nil {
		return 2
	}
	files := f.fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "fill: at least one input file is required")
		return 2
	}
	if f.box == "" && f.maskPath == "" {
		fmt.Fprintln(stderr, "fill: one of -box or -mask is required")
		return 2
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		log.Printf("Config error: %v", err)
		return 1
	}
	req, err := mergeConfigAndFlags(cfg, f)
	if err != nil {
		log.Printf("Invalid options: %v", err)
		return 2
	}

	cache := imaging.NewImageCache()
	if f.maskPath != "" {
		mask, err := cache.Load(f.maskPath)
		if err != nil {
			log.Printf("Failed to load mask: %v", err)
			return 1
		}
		req.Mask = mask
	}

	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		log.Printf("Failed to create output directory: %v", err)
		return 1
	}

	progressOut := stderr
	if f.quiet {
		progressOut = io.Discard
	}
	bar := pb.New(len(files)).
		SetTemplateString(`{{ bar . " " "━" "━" " " " "}} {{percent .}} {{rtime .}}`).
		SetWriter(progressOut).
		Start()
	defer bar.Finish()

	failed := fillBatch(files, func(path string) error {
		return fillOne(cache, path, req, f.outDir, cfg.Debug())
	}, func() { bar.Increment() })

	if failed > 0 {
		return 1
	}
	return 0
}

// fillBatch runs fillFile on each path in order and calls advance once a
// file is done, failed or not. It returns the number of failures.
func fillBatch(files []string, fillFile func(path string) error, advance func()) int {
	failed := 0
	for _, path := range files {
		if err := fillFile(path); err != nil {
			log.Printf("Failed to fill %s: %v", filepath.Base(path), err)
			failed++
		}
		advance()
	}
	return failed
}

// runConfig prints the config that fill and serve would use, defaults
// included, so it can be saved as a starter file.
func runConfig(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", os.Getenv(config.EnvConfigPath), "TOML config file.")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*path)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	body, err := cfg.Encode()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, body)
	return 0
}

func fillOne(cache *imaging.ImageCache, path string, req imaging.FillRequest, outDir string, debug bool) error {
	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	// Each input is used once; keep only the mask cached.
	defer cache.Evict(path)

	req.OutputPath = outputPath(outDir, path)
	result, err := imaging.FillImage(img, req)
	if err != nil {
		return err
	}
	if debug {
		log.Printf("%s -> %s: %d holes, %d boundary, %d unfilled",
			filepath.Base(path), result.OutputPath, result.Holes, result.Boundary, result.UnfilledPixels)
	}
	return nil
}
