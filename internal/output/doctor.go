package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/sunqirui1987/linx-os-sdk/internal/toolchain"
)

// PrintDoctor prints host toolchain check results in the given format.
func PrintDoctor(results []*toolchain.Result, format Format) {
	switch format {
	case FormatJSON:
		printDoctorJSON(results)
	case FormatQuiet:
		printDoctorQuiet(results)
	default:
		printDoctorPretty(results)
	}
}

func printDoctorPretty(results []*toolchain.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Println("Checking host toolchain...")
	fmt.Println()

	passed := 0
	failed := 0
	optionalMissing := 0

	for _, result := range results {
		tool := result.Tool

		switch result.Status {
		case toolchain.StatusPass:
			fmt.Printf("%s %s\n", green("✅"), tool.Name)
			passed++
		case toolchain.StatusFail:
			fmt.Printf("%s %s\n", red("❌"), tool.Name)
			failed++
		case toolchain.StatusOptionalMissing:
			fmt.Printf("%s %s (optional)\n", yellow("⚠️ "), tool.Name)
			optionalMissing++
		}

		if tool.Version != "" {
			if result.Output != "" {
				firstLine := strings.Split(result.Output, "\n")[0]
				fmt.Printf("   %s\n", firstLine)
			}
			if result.Err != nil {
				fmt.Printf("   %s %s\n", red("Error:"), result.Err)
			}
			fmt.Printf("   Required: %s\n", tool.Version)
			if result.InstalledVersion != "" {
				if result.Status == toolchain.StatusPass {
					fmt.Printf("   Installed: %s\n", green(result.InstalledVersion))
				} else {
					fmt.Printf("   Installed: %s\n", red(result.InstalledVersion))
				}
			}
		} else {
			if result.Path != "" {
				fmt.Printf("   Found at: %s\n", cyan(result.Path))
			} else if result.Err != nil {
				fmt.Printf("   %s %s\n", red("Error:"), result.Err)
			}
		}

		if tool.Message != "" && result.Status != toolchain.StatusPass {
			fmt.Printf("   %s %s\n", cyan("Note:"), tool.Message)
		}

		fmt.Println()
	}

	fmt.Printf(
		"Summary: %s passed, %s failed",
		green(strconv.Itoa(passed)),
		red(strconv.Itoa(failed)),
	)
	if optionalMissing > 0 {
		fmt.Printf(", %s optional missing", yellow(strconv.Itoa(optionalMissing)))
	}
	fmt.Println()
}

// printDoctorQuiet prints only the tools that are missing or too old.
func printDoctorQuiet(results []*toolchain.Result) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, result := range results {
		if result.Status == toolchain.StatusPass {
			continue
		}

		tool := result.Tool
		switch result.Status {
		case toolchain.StatusFail:
			fmt.Printf("%s %s\n", red("❌"), tool.Name)
		case toolchain.StatusOptionalMissing:
			fmt.Printf("%s %s (optional)\n", yellow("⚠️ "), tool.Name)
		case toolchain.StatusPass:
		}

		if result.Err != nil {
			fmt.Printf("   %s %s\n", red("Error:"), result.Err)
		}
		if tool.Version != "" {
			fmt.Printf("   Required: %s\n", tool.Version)
		}

		fmt.Println()
	}
}

func printDoctorJSON(results []*toolchain.Result) {
	type JSONTool struct {
		Name             string `json:"name"`
		CLI              string `json:"cli"`
		Required         bool   `json:"required"`
		Status           string `json:"status"`
		VersionRequired  string `json:"versionRequired,omitempty"`
		VersionInstalled string `json:"versionInstalled,omitempty"`
		Path             string `json:"path,omitempty"`
		Error            string `json:"error,omitempty"`
		Message          string `json:"message,omitempty"`
	}

	type JSONOutput struct {
		Tools   []JSONTool `json:"tools"`
		Summary struct {
			Total           int `json:"total"`
			Passed          int `json:"passed"`
			Failed          int `json:"failed"`
			OptionalMissing int `json:"optionalMissing"`
		} `json:"summary"`
	}

	output := JSONOutput{Tools: make([]JSONTool, 0, len(results))}

	for _, result := range results {
		tool := result.Tool

		switch result.Status {
		case toolchain.StatusPass:
			output.Summary.Passed++
		case toolchain.StatusFail:
			output.Summary.Failed++
		case toolchain.StatusOptionalMissing:
			output.Summary.OptionalMissing++
		}

		jsonTool := JSONTool{
			Name:             tool.Name,
			CLI:              tool.CLI,
			Required:         !tool.Optional,
			Status:           string(result.Status),
			VersionRequired:  tool.Version,
			VersionInstalled: result.InstalledVersion,
			Path:             result.Path,
			Message:          tool.Message,
		}
		if result.Err != nil {
			jsonTool.Error = result.Err.Error()
		}

		output.Tools = append(output.Tools, jsonTool)
	}

	output.Summary.Total = len(results)

	encodeJSON(output)
}

// DoctorFailed reports whether any required tool failed its check.
func DoctorFailed(results []*toolchain.Result) bool {
	for _, result := range results {
		if result.Status == toolchain.StatusFail {
			return true
		}
	}
	return false
}
