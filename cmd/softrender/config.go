package main

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/taigrr/softrender/pkg/scene"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
)

// styledConfig lays out cfg as aligned key/value lines.
func styledConfig(cfg scene.Config) string {
	pairs := cfg.Pairs()
	width := 0
	for _, kv := range pairs {
		width = max(width, len(kv[0]))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("["+scene.Section+"]") + "\n")
	for _, kv := range pairs {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-*s", width, kv[0])))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(kv[1]))
		b.WriteByte('\n')
	}
	return b.String()
}

func newConfigCmd() *cobra.Command {
	var (
		opts  sceneOptions
		asINI bool
	)

	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, the optional file and flag overrides are applied.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.configPath = args[0]
			}
			cfg, err := opts.config(cmd.Flags())
			if err != nil {
				return err
			}
			if asINI {
				return cfg.WriteINI(cmd.OutOrStdout())
			}
			fmt.Fprint(cmd.OutOrStdout(), styledConfig(cfg))
			return nil
		},
	}
	opts.bind(cmd.Flags())
	cmd.Flags().BoolVar(&asINI, "ini", false, "emit plain INI")
	return cmd
}
