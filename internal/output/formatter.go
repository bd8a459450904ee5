package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/sunqirui1987/linx-os-sdk/internal/config"
	"github.com/sunqirui1987/linx-os-sdk/internal/project"
)

// Format represents the output format.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatQuiet  Format = "quiet"
	FormatJSON   Format = "json"
)

// dividerWidth is the default ruler width when the terminal size is
// unavailable or wider.
const dividerWidth = 60

// Divider returns a ruler line sized to the terminal.
func Divider() string {
	width := dividerWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	return strings.Repeat("=", width)
}

// PrintProjects prints the project catalog in the specified format.
func PrintProjects(catalog project.Catalog, format Format) {
	switch format {
	case FormatJSON:
		printProjectsJSON(catalog)
	case FormatQuiet:
		printProjectsQuiet(catalog)
	default:
		printProjectsPretty(catalog)
	}
}

func printProjectsPretty(catalog project.Catalog) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println(cyan("Available projects:"))
	fmt.Println(Divider())

	if len(catalog.Apps) == 0 && len(catalog.Examples) == 0 {
		fmt.Println("no projects found")
		return
	}

	for _, category := range []project.Category{project.CategoryApps, project.CategoryExamples} {
		entries := catalog.ByCategory(category)
		if len(entries) == 0 {
			continue
		}
		fmt.Printf("%s:\n", category)
		for _, entry := range entries {
			fmt.Printf("  %s platform: %s\n", yellow(fmt.Sprintf("%-20s", entry.Name)), entry.Platform)
		}
	}

	fmt.Println()
	fmt.Printf("Total: %d projects\n", len(catalog.Apps)+len(catalog.Examples))
}

// printProjectsQuiet prints one category/name per line for scripting.
func printProjectsQuiet(catalog project.Catalog) {
	for _, entry := range catalog.All() {
		fmt.Printf("%s/%s\n", entry.Category, entry.Name)
	}
}

func printProjectsJSON(catalog project.Catalog) {
	type JSONProject struct {
		Name     string `json:"name"`
		Platform string `json:"platform"`
		Path     string `json:"path"`
	}

	type JSONOutput struct {
		Apps     []JSONProject `json:"apps"`
		Examples []JSONProject `json:"examples"`
		Summary  struct {
			Total    int `json:"total"`
			Apps     int `json:"apps"`
			Examples int `json:"examples"`
		} `json:"summary"`
	}

	convert := func(entries []project.Entry) []JSONProject {
		out := make([]JSONProject, 0, len(entries))
		for _, e := range entries {
			out = append(out, JSONProject{Name: e.Name, Platform: e.Platform, Path: e.Path})
		}
		return out
	}

	output := JSONOutput{
		Apps:     convert(catalog.Apps),
		Examples: convert(catalog.Examples),
	}
	output.Summary.Apps = len(catalog.Apps)
	output.Summary.Examples = len(catalog.Examples)
	output.Summary.Total = output.Summary.Apps + output.Summary.Examples

	encodeJSON(output)
}

// PrintConfig prints the active configuration and the derived build state.
func PrintConfig(cfg config.Config, sdkBuilt, boardBuilt bool) {
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Println(Divider())
	fmt.Println(cyan("LinX OS SDK configuration"))
	fmt.Println(Divider())
	fmt.Printf("Current configuration: %s\n", cfg.Description)
	fmt.Printf("  target platform:  %s\n", cfg.Target)
	fmt.Printf("  board platform:   %s\n", cfg.Board)
	fmt.Printf("  build type:       %s\n", cfg.BuildType)
	toolchainFile := cfg.ToolchainFile
	if toolchainFile == "" {
		toolchainFile = "(none)"
	}
	fmt.Printf("  toolchain file:   %s\n", toolchainFile)
	fmt.Printf("  SDK built:        %s\n", yesNo(sdkBuilt))
	fmt.Printf("  board built:      %s\n", yesNo(boardBuilt))
}

// PrintCatalogMenu prints the numbered configuration picker entries.
func PrintCatalogMenu(entries []config.Entry) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println()
	fmt.Println(cyan("Available configurations:"))
	for i, entry := range entries {
		fmt.Printf("  %d. %s %s\n", i+1, yellow(fmt.Sprintf("%-20s", entry.Name)), entry.Description)
	}
}

func yesNo(v bool) string {
	if v {
		return color.New(color.FgGreen).Sprint("yes")
	}
	return color.New(color.FgYellow).Sprint("no")
}

func encodeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}
