package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/config"
	tderr "github.com/tessro/tapedeck/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing tapedeck configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, after defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, cfg)
	}
	enc := toml.NewEncoder(out)
	enc.Indent = "  "
	return enc.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	_, err := os.Stat(path)
	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"path": path, "exists": err == nil})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return tderr.WithSuggestion(
			fmt.Errorf("%w: %s", tderr.ErrConfigNotFound, path),
			"Run 'tapedeck config init' first")
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	c := exec.Command(editor, path)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c.Run()
}

// findEditor prefers $EDITOR, then $VISUAL, then the first common editor on PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}
	for _, e := range []string{"nano", "vim", "vi", "notepad"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", tderr.WithSuggestion(errors.New("no editor found"), "Set the EDITOR environment variable")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, map[string]string{"status": "created", "path": path})
	}
	_, _ = fmt.Fprintf(out, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintln(out, "  1. Pick a shell with [tui] shell = \"pod\" or \"deck\"")
	_, _ = fmt.Fprintln(out, "  2. Run 'tapedeck ui' to start listening")
	return nil
}

// writeDefaultConfig creates path holding the default configuration. An
// existing file is never overwritten.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	buf.WriteString("# Tapedeck Configuration\n")
	buf.WriteString("# TAPEDECK_<SECTION>_<KEY> environment variables and a .env file override these values.\n\n")
	enc := toml.NewEncoder(&buf)
	enc.Indent = "  "
	if err := enc.Encode(config.Default()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// getConfigPath returns the file in use, or the default location for a new one.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.Path(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".tapedeckrc"
	}

	return filepath.Join(home, ".tapedeckrc")
}
