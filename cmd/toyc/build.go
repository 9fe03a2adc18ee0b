package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"toyc/internal/buildcache"
	"toyc/internal/buildpipeline"
	"toyc/internal/project"
	"toyc/internal/source"
	"toyc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Build a toyc.toml project",
	Long:  "Build compiles every file a toyc.toml manifest lists as one translation unit and writes a single assembly file next to the manifest.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (default: beside the manifest)")
	buildCmd.Flags().Bool("no-cache", false, "ignore and do not update the build cache")
}

func runBuild(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) > 0 && args[0] != "" {
		startDir = args[0]
	}

	manifestPath, ok, err := project.FindManifest(startDir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no toyc.toml found starting from %q", startDir)
	}

	manifest, err := project.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	manifestDir := filepath.Dir(manifestPath)
	paths := manifest.ResolveFiles(manifestDir)

	uiModeFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiModeFlag)
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	cache, cacheErr := buildcache.Open("toyc")
	if cacheErr != nil {
		cache = nil
	}

	var loaded []project.LoadedFile
	var digest project.Digest
	if cache != nil && !noCache {
		fs := source.NewFileSet()
		loaded, err = project.LoadFiles(cmd.Context(), fs, paths)
		if err == nil {
			digest = project.ManifestHash(loaded)
			var payload buildcache.Payload
			if hit, err := cache.Get(digest, &payload); err == nil && hit && payload.Matches(loaded) {
				outPath := outputNameForManifest(manifestPath, outDir)
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return err
				}
				if err := os.WriteFile(outPath, []byte(payload.Assembly), 0o644); err != nil {
					return err
				}
				if !quiet {
					fmt.Println("using cached build:", outPath)
				}
				return nil
			}
		}
	}

	opts := buildpipeline.Options{MaxDiagnostics: maxDiagnostics, OutDir: outDir}

	var result buildpipeline.FileResult
	if shouldUseTUI(mode) {
		result, err = runProjectBuildWithUI(cmd.Context(), manifest.Name, paths, manifestPath, opts)
	} else {
		result, err = buildpipeline.BuildProject(cmd.Context(), manifestPath, opts)
	}

	reportDiagnostics(cmd, result.Bag, nil)
	if err != nil {
		for i, e := range result.SemaErrors {
			fmt.Fprintf(os.Stderr, "  Error %d: %s\n", i+1, e)
		}
		return err
	}

	if cache != nil && !noCache && loaded != nil {
		payload := buildcache.FromFiles(manifest.Name, loaded, result.Assembly, false)
		_ = cache.Put(digest, payload)
	}

	if !quiet {
		fmt.Println("wrote", result.OutputPath)
	}
	return nil
}

func outputNameForManifest(manifestPath, outDir string) string {
	manifestDir := filepath.Dir(manifestPath)
	base := baseName(manifestPath) + ".s"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(manifestDir, base)
}

func runProjectBuildWithUI(ctx context.Context, title string, files []string, manifestPath string, opts buildpipeline.Options) (buildpipeline.FileResult, error) {
	events := make(chan buildpipeline.Event, 256)
	type outcome struct {
		result buildpipeline.FileResult
		err    error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		o := opts
		o.Sink = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.BuildProject(ctx, manifestPath, o)
		outcomeCh <- outcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.result, uiErr
	}
	return out.result, out.err
}
