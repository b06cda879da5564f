package cli

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/georgepadayatti/pdfgen/config"
	"github.com/georgepadayatti/pdfgen/pdf/document"
)

// RenderOptions contains options for the render command.
type RenderOptions struct {
	LogLevel  string
	LogFormat string
	Compress  bool
}

// RenderCommand implements the 'render' command.
func RenderCommand(args []string) {
	renderFlags := flag.NewFlagSet("render", flag.ExitOnError)

	var opts RenderOptions
	renderFlags.StringVar(&opts.LogLevel, "log-level", "", "Log level override: debug, info, warn, error")
	renderFlags.StringVar(&opts.LogFormat, "log-format", "", "Log format override: text, json")
	renderFlags.BoolVar(&opts.Compress, "compress", false, "Compress content streams even if the description does not ask for it")

	renderFlags.Usage = func() {
		fmt.Printf("Usage: %s render [options] <document.yaml> <output.pdf>\n\n", os.Args[0])
		fmt.Println("Render a YAML document description into a PDF file.")
		fmt.Println("")
		fmt.Println("Arguments:")
		fmt.Println("  document.yaml  Document description; font and image paths are relative to it")
		fmt.Println("  output.pdf     Output file, or - for standard output")
		fmt.Println("")
		fmt.Println("Options:")
		renderFlags.PrintDefaults()
	}

	if err := renderFlags.Parse(args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		osExit(1)
		return
	}

	if renderFlags.NArg() != 2 {
		renderFlags.Usage()
		osExit(1)
		return
	}

	n, err := Render(renderFlags.Arg(0), renderFlags.Arg(1), opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
		return
	}
	if renderFlags.Arg(1) != "-" {
		fmt.Printf("Wrote %s (%d bytes)\n", renderFlags.Arg(1), n)
	}
}

// Render loads the description at configPath and writes the resulting PDF to
// outputPath. An outputPath of "-" writes to stdout instead.
func Render(configPath, outputPath string, opts RenderOptions, stdout io.Writer) (int, error) {
	cfg, err := config.LoadDocumentConfig(configPath)
	if err != nil {
		return 0, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Logging.Format = opts.LogFormat
	}
	if opts.Compress {
		cfg.Compress = true
	}

	logger, closer, err := cfg.Logging.NewLogger()
	if err != nil {
		return 0, err
	}
	defer closer.Close()

	doc, err := config.Build(cfg, filepath.Dir(configPath), document.WithLogger(logger))
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return 0, fmt.Errorf("failed to serialize document: %w", err)
	}
	logger.Info("document rendered", "config", configPath, "pages", doc.PageCount(), "objects", doc.ObjectCount(), "bytes", buf.Len())

	if outputPath == "-" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return 0, fmt.Errorf("failed to write output: %w", err)
		}
		return buf.Len(), nil
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}
	return buf.Len(), nil
}
