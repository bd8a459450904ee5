package toolchain

// knownVersionArgs maps build tool CLIs to the argument that prints their
// version, so probes don't have to guess.
var knownVersionArgs = map[string]string{
	"cmake":  "--version",
	"make":   "--version",
	"gmake":  "--version",
	"ninja":  "--version",
	"gcc":    "--version",
	"g++":    "--version",
	"clang":  "--version",
	"ccache": "--version",
	"git":    "--version",
}

// Defaults is the built-in requirement set used when the SDK tree ships
// no requirements manifest: the tools the stock build stages invoke.
func Defaults(toolchainPrefix string) []Tool {
	tools := []Tool{
		{Name: "cmake", CLI: "cmake", Version: ">=3.16", VersionArg: "--version"},
		{Name: "make", CLI: "make", VersionArg: "--version"},
	}
	if toolchainPrefix != "" {
		tools = append(tools, crossTool(toolchainPrefix))
	}
	return tools
}

// crossTool is the existence check for the cross compiler named by
// CONFIG_TOOLCHAIN_PREFIX.
func crossTool(prefix string) Tool {
	cli := prefix + "gcc"
	return Tool{
		Name:    cli,
		CLI:     cli,
		Message: "cross compiler from CONFIG_TOOLCHAIN_PREFIX",
	}
}
