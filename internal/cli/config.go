package cli

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/notesync/internal/config"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(parent *cobra.Command, env *commandEnv) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect notesync configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the configuration after merging, highest precedence first:
  - NOTESYNC_* environment variables
  - <repo>/.notesync/config.yaml
  - ~/.notesync/config.yaml (or $NOTESYNC_HOME/config.yaml)
  - built-in defaults

Text output is YAML; --output json prints JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(env, cmd.OutOrStdout())
		},
	})

	parent.AddCommand(cmd)
}

func runConfigShow(env *commandEnv, w io.Writer) error {
	cfg := env.config()

	if env.jsonOutput() {
		return env.output(w).JSON(cfg)
	}
	return writeYAML(w, cfg)
}

func writeYAML(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
