// Command pdfgen renders YAML document descriptions into PDF files.
//
// Usage:
//
//	pdfgen <command> [options] <args>
//
// Commands:
//
//	render   Render a document description into a PDF file
//	version  Show version information
//	help     Show help message
//
// Examples:
//
//	# Render a report
//	pdfgen render report.yaml report.pdf
//
//	# Render with compressed content streams and debug logging
//	pdfgen render -compress -log-level debug report.yaml report.pdf
package main

import (
	"os"

	"github.com/georgepadayatti/pdfgen/cli"
)

// Set at build time:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/pdfgen
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.BuildTime = buildTime
	cli.Run(os.Args)
}
