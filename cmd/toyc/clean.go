package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"toyc/internal/buildcache"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the toyc build cache",
	Long:  "Remove every cached build produced by `toyc build`, stored under the per-user cache directory.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := buildcache.Open("toyc")
	if err != nil {
		return fmt.Errorf("failed to open build cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove build cache: %w", err)
	}
	fmt.Println("build cache removed")
	return nil
}
