// Package main implements deskfolio, a portfolio presented as a retro desktop
// in the terminal: icons open windows that can be moved, minimized, maximized
// and closed, with a taskbar and start menu along the bottom.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	configFile   string
	catalogFile  string
	themeName    string
	borderStyle  string
	asciiOnly    bool
	hideClock    bool
	clock24h     bool
	noBootSplash bool
	soundOn      bool
	activation   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskfolio",
		Short: "A portfolio desktop for the terminal",
		Long: `deskfolio - Portfolio Desktop

Presents a portfolio as a classic desktop: double-click an icon to open its
window, drag windows by the title bar, and use the taskbar and start menu to
get around. The content comes from a TOML catalog that is reloaded on save.`,
		Example: `  # Run the desktop
  deskfolio

  # Use a different catalog
  deskfolio --catalog ./portfolio.toml

  # Serve it over SSH
  deskfolio ssh --port 2222

  # Serve it to the browser
  deskfolio web --port 7681

  # Write an editable copy of the built-in catalog
  deskfolio catalog init`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	flags.StringVar(&configFile, "config", "", "Path to the configuration file")
	flags.StringVar(&catalogFile, "catalog", "", "Path to the catalog file")
	flags.StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight)")
	flags.StringVar(&borderStyle, "border-style", "", "Window border style: normal, rounded, thick, double, block, ascii, hidden")
	flags.BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters for icons and window buttons")
	flags.BoolVar(&hideClock, "hide-clock", false, "Hide the taskbar clock")
	flags.BoolVar(&clock24h, "clock-24h", false, "Show the clock in 24 hour format")
	flags.BoolVar(&noBootSplash, "no-boot", false, "Skip the boot splash")
	flags.BoolVar(&soundOn, "sound", false, "Ring the terminal bell on window events")
	flags.StringVar(&activation, "activation", "", "How icons open: click or double-click")

	var sshPort, sshHost, sshKeyPath string
	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve deskfolio over SSH",
		Long: `Serve deskfolio over SSH

Every connection gets its own desktop. The server will generate a host key
automatically if not specified.`,
		Example: `  # Start SSH server on default port
  deskfolio ssh

  # Bind to all interfaces
  deskfolio ssh --host 0.0.0.0 --port 2222`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	var webPort, webHost string
	var webReadOnly bool
	var webMaxConnections int
	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve deskfolio to the browser",
		Long: `Serve deskfolio to the browser

Powered by sip. Every browser tab gets its own desktop.`,
		Example: `  # Start web server on default port
  deskfolio web

  # View only, at most ten visitors
  deskfolio web --read-only --max-connections 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebServer(cmd.Context(), webHost, webPort, webReadOnly, webMaxConnections)
		},
	}
	webCmd.Flags().StringVar(&webPort, "port", "7681", "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "Web server host")
	webCmd.Flags().BoolVar(&webReadOnly, "read-only", false, "Disable input from clients (view only)")
	webCmd.Flags().IntVar(&webMaxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deskfolio configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print configuration file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				return printConfigPath()
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Edit configuration in $EDITOR",
			Long: `Open the deskfolio configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
			RunE: func(cmd *cobra.Command, args []string) error {
				return editConfigFile()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset configuration to defaults",
			Long: `Reset the deskfolio configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
			RunE: func(cmd *cobra.Command, args []string) error {
				return resetConfigToDefaults()
			},
		},
	)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}
	keybindsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	})

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the portfolio catalog",
	}
	catalogCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print catalog file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				return printCatalogPath()
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the icons in the catalog",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listCatalog()
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the built-in catalog for editing",
			RunE: func(cmd *cobra.Command, args []string) error {
				return initCatalog()
			},
		},
	)

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd, catalogCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
