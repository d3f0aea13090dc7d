package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/relbump/relbump/internal/config"
	clierrors "github.com/relbump/relbump/internal/errors"
)

// pipelineURLEnv names the default base URL of the pipeline config store.
const pipelineURLEnv = "RELBUMP_PIPELINE_URL"

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage relbump configuration",
		Long: `Manage relbump configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELBUMP_*, use __ for nesting: RELBUMP_IMAGE__NAME)
  2. Project config (.relbump/config.yml, or the legacy .relbump.json)
  3. User config (~/.config/relbump/config.yml)
  4. Built-in defaults`,
		Example: `  # Create .relbump/config.yml
  relbump config init

  # Show the effective configuration
  relbump config show`,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
	}
	cmd.GroupID = GroupSetup

	cmd.AddCommand(
		newConfigInitCmd(a),
		newConfigShowCmd(a),
		newConfigMigrateCmd(),
		newConfigPipelineCmd(a),
	)
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config template",
		Args:  noArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.ProjectConfigPath()
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return clierrors.Wrap(err, clierrors.Configuration, "Pass --force to replace the existing file")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# sources: %s\n", strings.Join(a.sources(), ", "))
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert .relbump.json to .relbump/config.yml",
		Long: `Convert the legacy JSON project config to YAML. The JSON file is kept
as .relbump.json.bak. An existing YAML config is never overwritten.`,
		Args: noArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := config.MigrateProjectConfig(dryRun)
			if err != nil {
				return err
			}
			if res.Success {
				if err := config.RemoveLegacyConfig(res.SourcePath, dryRun); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be migrated")
	return cmd
}

type pipelineOptions struct {
	baseURL  string
	params   map[string]string
	required []string
	timeout  time.Duration
}

func newConfigPipelineCmd(a *app) *cobra.Command {
	var opts pipelineOptions

	cmd := &cobra.Command{
		Use:   "pipeline <id>",
		Short: "Fetch and merge the stored configuration of a pipeline",
		Long: `Fetch <base-url>/<id>.yaml from the pipeline config store, overlay the
given parameters and print the merged record as YAML.`,
		Example: `  relbump config pipeline release-cdf \
    --base-url https://config.example.com/pipelines \
    --param branch=main --require image`,
		Args: exactArgs(1),
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.baseURL == "" {
				return clierrors.NewArgumentErrorWithUsage("no pipeline base URL", cmd.UseLine(),
					"Pass --base-url or set "+pipelineURLEnv,
				)
			}

			ctx := cmd.Context()
			if opts.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.timeout)
				defer cancel()
			}

			input := make(map[string]any, len(opts.params))
			for k, v := range opts.params {
				input[k] = v
			}

			rec, err := config.NewPipelineLoader(opts.baseURL, nil).Load(ctx, args[0], input, opts.required)
			if err != nil {
				return err
			}
			a.logger.Debug("pipeline config loaded", "pipeline", args[0], "keys", len(rec))

			data, err := yaml.Marshal(map[string]any(rec))
			if err != nil {
				return fmt.Errorf("encoding pipeline config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", envOr(pipelineURLEnv, ""), "Base URL of the pipeline config store")
	cmd.Flags().StringToStringVarP(&opts.params, "param", "p", nil, "Parameter overriding the stored value (key=value)")
	cmd.Flags().StringSliceVar(&opts.required, "require", nil, "Key that must be present in the merged record")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	return cmd
}
