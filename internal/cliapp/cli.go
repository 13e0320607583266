package cliapp

import (
	"io"

	"github.com/spf13/cobra"
)

const versionString = "1.0.0"

type cliOptions struct {
	configPath string
	verbose    bool

	root           string
	formats        []string
	outDir         string
	workers        int
	failFast       bool
	interfaceRoots []string
}

// newRootCommand builds the command tree. Commands report failures through
// *ExitError so that Run picks the process exit code.
func newRootCommand(opts *cliOptions, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "interfacer",
		Short: "Resolve contract imports and derive their interfaces",
		Long: titleStyle("interfacer") + statusStyle.Render(" - contract import resolution and interface derivation") + `

Resolves every import of the given contract sources against the project
root, derives the interface of each imported file from its source or its
JSON ABI, and renders the interfaces of the compiled files.`,
		Version:       versionString,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: nearest "+defaultConfigName+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCompileCommand(opts))
	root.AddCommand(newLocateCommand(opts))
	return root
}

func newCompileCommand(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [paths...]",
		Short: "Resolve imports and render interfaces for contract files",
		Long: `Compile resolves the imports of every contract file found under the given
paths (the project root when none are given) and renders the requested
formats. Artifacts go to the output directory when one is configured and to
stdout otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.root, "root", "", "project root bounding relative imports")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "output formats: abi, interface, imports, dot, mermaid")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "directory to write artifacts to")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "files resolved concurrently")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop at the first unresolved import")
	cmd.Flags().StringSliceVar(&opts.interfaceRoots, "interface-root", nil, "extra search directory for absolute imports (repeatable)")
	return cmd
}

func newLocateCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <name> <dir> [dir...]",
		Short: "Print the interface file a module name resolves to",
		Long: `Locate searches the directories in order and prints the first file named
<name> with the source or interface extension. Within one directory the
source extension wins.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, opts, args[0], args[1:])
		},
	}
}
