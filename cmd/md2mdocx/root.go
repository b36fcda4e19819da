package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bellx2/md2mdocx"
	"github.com/bellx2/md2mdocx/theme"
)

var (
	flagOutput         string
	flagTitle          string
	flagTheme          string
	flagHRPageBreak    bool
	flagNoMermaid      bool
	flagMermaidURL     string
	flagMermaidTimeout time.Duration
	flagConfig         string
)

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output .docx path (default: input with .docx extension)")
	rootCmd.Flags().StringVar(&flagTitle, "title", "", "Document title")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", fmt.Sprintf("Color theme (%s)", strings.Join(theme.Names(), ", ")))
	rootCmd.Flags().BoolVar(&flagHRPageBreak, "hr-pagebreak", false, "Treat horizontal rules as page breaks")
	rootCmd.Flags().BoolVar(&flagNoMermaid, "no-mermaid", false, "Skip mermaid diagram rendering")
	rootCmd.Flags().StringVar(&flagMermaidURL, "mermaid-url", "", "Diagram rendering service URL")
	rootCmd.Flags().DurationVar(&flagMermaidTimeout, "mermaid-timeout", 0, "Per-diagram rendering timeout")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default: .md2mdocx.yaml in the input directory)")
}

var rootCmd = &cobra.Command{
	Use:   "md2mdocx <input.md>",
	Short: "Convert Markdown to DOCX",
	Long: `md2mdocx converts a Markdown document into a DOCX file, rendering
mermaid diagrams through an external service and applying a color theme.

Examples:
  md2mdocx report.md
  md2mdocx report.md -o out/report.docx --theme dark
  md2mdocx spec.md --title "Design Spec" --hr-pagebreak`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]

	v, err := loadConfig(input)
	if err != nil {
		return err
	}

	// Flags take precedence over the config file, which beats defaults.
	conv := md2mdocx.Open(input)
	if title := resolveString(cmd, "title", flagTitle, v, "title"); title != "" {
		conv = conv.Title(title)
	}
	if name := resolveString(cmd, "theme", flagTheme, v, "theme"); name != "" {
		conv = conv.Theme(name)
	}
	if resolveBool(cmd, "hr-pagebreak", flagHRPageBreak, v, "hr_pagebreak") {
		conv = conv.HRAsPageBreak()
	}
	if resolveBool(cmd, "no-mermaid", flagNoMermaid, v, "mermaid.disabled") {
		conv = conv.MermaidDisabled()
	}
	if url := resolveString(cmd, "mermaid-url", flagMermaidURL, v, "mermaid.url"); url != "" {
		conv = conv.MermaidEndpoint(url)
	}
	if cmd.Flags().Changed("mermaid-timeout") {
		conv = conv.MermaidTimeout(flagMermaidTimeout)
	} else if d := v.GetDuration("mermaid.timeout"); d > 0 {
		conv = conv.MermaidTimeout(d)
	}

	output := flagOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".docx"
	}

	warnings, err := conv.WriteFile(cmd.Context(), output)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	return nil
}

// loadConfig reads the optional YAML config file. A missing default config
// is fine; an explicitly named one must exist.
func loadConfig(input string) (*viper.Viper, error) {
	v := viper.New()
	if flagConfig != "" {
		v.SetConfigFile(flagConfig)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		return v, nil
	}
	v.SetConfigName(".md2mdocx")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Dir(input))
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

func resolveString(cmd *cobra.Command, flag, flagValue string, v *viper.Viper, key string) string {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	if s := v.GetString(key); s != "" {
		return s
	}
	return flagValue
}

func resolveBool(cmd *cobra.Command, flag string, flagValue bool, v *viper.Viper, key string) bool {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return flagValue
}
