// Package cli provides the command-line interface for rendering PDF documents.
package cli

import (
	"fmt"
	"os"
)

// Version information
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// osExit is a variable for os.Exit to allow testing
var osExit = os.Exit

// Run executes the CLI with the given arguments.
func Run(args []string) {
	if len(args) < 2 {
		Usage()
		return
	}

	switch command := args[1]; command {
	case "render":
		RenderCommand(args)
	case "version":
		VersionCommand()
	case "help", "-h", "--help":
		Usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		Usage()
		osExit(2)
	}
}

// Usage prints the CLI usage information.
func Usage() {
	fmt.Printf("pdfgen - build PDF documents from YAML descriptions\n\n")
	fmt.Printf("Usage: %s <command> [options] <args>\n\n", os.Args[0])
	fmt.Println("Commands:")
	fmt.Println("  render   Render a document description into a PDF file")
	fmt.Println("  version  Show version information")
	fmt.Println("  help     Show this help message")
	fmt.Println("")
	fmt.Printf("Use '%s <command> -h' for command-specific help\n", os.Args[0])
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Printf("  %s render report.yaml report.pdf\n", os.Args[0])
	fmt.Printf("  %s render -log-level debug -compress report.yaml report.pdf\n", os.Args[0])
}

// VersionCommand prints version information.
func VersionCommand() {
	fmt.Printf("pdfgen version %s\n", Version)
	fmt.Printf("Build time: %s\n", BuildTime)
}
