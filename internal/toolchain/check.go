package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Result is the outcome of probing a single tool.
type Result struct {
	Tool             Tool
	Status           Status
	InstalledVersion string
	Path             string
	Output           string
	Err              error
}

// Status classifies a probe outcome.
type Status string

const (
	StatusPass            Status = "pass"
	StatusFail            Status = "fail"
	StatusOptionalMissing Status = "optional_missing"
)

// commandTimeout bounds each version probe.
const commandTimeout = 5 * time.Second

var versionRe = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Check probes a single tool. Without a version constraint the tool only
// has to exist on PATH; with one it must report a satisfying version.
func Check(tool Tool) *Result {
	result := &Result{Tool: tool}
	if tool.Version == "" {
		return checkExistence(tool, result)
	}
	return checkVersion(tool, result)
}

// CheckAll probes every tool, preserving the requirements order.
func CheckAll(tools []Tool) []*Result {
	results := make([]*Result, 0, len(tools))
	for _, tool := range tools {
		results = append(results, Check(tool))
	}
	return results
}

func checkExistence(tool Tool, result *Result) *Result {
	path, err := exec.LookPath(tool.CLI)
	if err != nil {
		result.Status = StatusFail
		if tool.Optional {
			result.Status = StatusOptionalMissing
		}
		result.Err = fmt.Errorf("%s: command not found", tool.CLI)
		return result
	}

	result.Status = StatusPass
	result.Path = path
	return result
}

func checkVersion(tool Tool, result *Result) *Result {
	output, err := runVersionCommand(tool)
	if err != nil {
		result.Status = StatusFail
		if tool.Optional {
			result.Status = StatusOptionalMissing
		}
		result.Err = err
		return result
	}

	result.Output = output

	version, err := extractVersion(output, tool.VersionPattern)
	if err != nil {
		result.Status = StatusFail
		result.Err = fmt.Errorf("failed to extract version: %w", err)
		return result
	}

	result.InstalledVersion = version

	constraint, err := semver.NewConstraint(tool.Version)
	if err != nil {
		result.Status = StatusFail
		result.Err = fmt.Errorf("invalid version constraint %q: %w", tool.Version, err)
		return result
	}

	installed, err := semver.NewVersion(version)
	if err != nil {
		result.Status = StatusFail
		result.Err = fmt.Errorf("failed to parse installed version %q: %w", version, err)
		return result
	}

	if constraint.Check(installed) {
		result.Status = StatusPass
	} else {
		result.Status = StatusFail
		if tool.Optional {
			result.Status = StatusOptionalMissing
		}
	}

	return result
}

// runVersionCommand invokes the tool with its version argument, falling
// back to common arguments when none is configured or known.
func runVersionCommand(tool Tool) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	for _, args := range versionArgs(tool) {
		cmd := exec.CommandContext(ctx, tool.CLI, args...)
		output, err := runCommand(cmd)
		if err == nil && output != "" {
			return output, nil
		}
		// Some tools print their version and still exit non-zero.
		if output != "" && looksLikeVersion(output) {
			return output, nil
		}
	}
	return "", fmt.Errorf("%s: failed to get version", tool.CLI)
}

// versionArgs returns the argument lists to try, most specific first.
func versionArgs(tool Tool) [][]string {
	if tool.VersionArg != "" {
		return [][]string{strings.Fields(tool.VersionArg)}
	}
	if arg, ok := knownVersionArgs[tool.CLI]; ok {
		return [][]string{strings.Fields(arg)}
	}
	return [][]string{{"--version"}, {"version"}, {"-v"}}
}

// looksLikeVersion reports whether output plausibly carries a version
// number rather than a usage or error message.
func looksLikeVersion(output string) bool {
	first := strings.TrimSpace(strings.SplitN(output, "\n", 2)[0])
	if first == "" || len(first) > 200 {
		return false
	}
	lower := strings.ToLower(first)
	for _, reject := range []string{"usage:", "error:", "unknown flag", "unknown command"} {
		if strings.Contains(lower, reject) {
			return false
		}
	}
	return versionRe.MatchString(first)
}

// runCommand runs a command and returns combined stdout/stderr.
func runCommand(cmd *exec.Cmd) (string, error) {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := out.String()

	if err != nil {
		if output != "" {
			return output, err
		}
		return "", err
	}

	return output, nil
}

// extractVersion pulls a version string out of command output, using the
// custom pattern when one is configured.
func extractVersion(output, pattern string) (string, error) {
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return "", fmt.Errorf("invalid version pattern: %w", err)
		}
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			return matches[1], nil
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
		return "", errors.New("version pattern did not match")
	}

	for _, line := range strings.Split(output, "\n") {
		if match := versionRe.FindString(line); match != "" {
			return match, nil
		}
	}
	return "", errors.New("no version found in output")
}
