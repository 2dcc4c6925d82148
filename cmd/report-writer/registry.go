// cmd/report-writer/registry.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"report-writer/pkg/registry"
)

const defaultRegistryPath = "configs/template-registry.json"

func newRegistryCmd() *cobra.Command {
	var path, version string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Export or check the published template registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", defaultRegistryPath, "Path to registry file")

	export := &cobra.Command{
		Use:   "export",
		Short: "Write the registry from the built-in templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Build(version, time.Now())
			if err := registry.SaveRegistry(reg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d templates to %s\n", len(reg.Templates), path)
			return nil
		},
	}
	export.Flags().StringVar(&version, "version", "1.0.0", "Registry version")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the registry file is well formed and matches the built-in templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := registry.Validate(reg); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			if drifted := registry.Drift(reg, registry.Build(reg.Version, time.Now())); len(drifted) > 0 {
				return fmt.Errorf("registry is out of date for: %s", strings.Join(drifted, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registry validation passed.")
			return nil
		},
	}

	cmd.AddCommand(export, validate)
	return cmd
}
