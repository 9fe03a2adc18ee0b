// Package main implements the toyc CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"toyc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "toyc [flags] <input.tc>",
	Short: "ToyC compiler and toolchain",
	Long:  `toyc compiles a single ToyC source file to RISC-V 32-bit assembly.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cleanCmd)

	rootCmd.Flags().StringP("output", "o", "", "output file (default: input basename with .s)")
	rootCmd.Flags().BoolP("verbose", "v", false, "verbose phase logging")
	rootCmd.Flags().Bool("ast", false, "print the abstract syntax tree")
	rootCmd.Flags().Bool("tokens", false, "print the token stream")
	rootCmd.Flags().Bool("parse-only", false, "stop after parsing")

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "accepted but ignored: no command prints timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("ui", "auto", "progress UI for multi-file builds (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func resolveColor(cmd *cobra.Command, out *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(out))
}
