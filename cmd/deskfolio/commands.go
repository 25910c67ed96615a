package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func resolveConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

func printConfigPath() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// findEditor checks $EDITOR, $VISUAL and then a few common editors.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := os.Getenv(env); editor != "" {
			return editor, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", errors.New("no editor found. Please set $EDITOR environment variable")
}

func editConfigFile() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", path)
		if err := config.SaveUserConfig(config.DefaultConfig(), path); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s (yes/no): ", question)
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "yes" || response == "y"
}

func resetConfigToDefaults() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n  %s\n\n", path)
		if !confirm("Are you sure you want to reset to defaults?") {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}
	if err := config.SaveUserConfig(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Printf("Configuration reset to defaults\n  Location: %s\n", path)
	fmt.Println("\nYou can customize it with: deskfolio config edit")
	return nil
}

func listKeybindings() error {
	var userConfig *config.UserConfig
	var err error
	if configFile != "" {
		userConfig, err = config.LoadConfigFile(configFile)
	} else {
		userConfig, err = config.LoadUserConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		userConfig = config.DefaultConfig()
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("deskfolio Keybindings"))
	fmt.Println()
	for _, section := range config.GetKeybindings(config.NewKeybindRegistry(userConfig)) {
		t := newTable("Keys", "Action")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		fmt.Println(sectionStyle.Render(section.Title))
		fmt.Println(t.Render())
		fmt.Println()
	}
	return nil
}

func resolveCatalogPath() (string, error) {
	if catalogFile != "" {
		return catalogFile, nil
	}
	path, err := catalog.Path()
	if err != nil {
		return "", fmt.Errorf("could not determine catalog path: %w", err)
	}
	return path, nil
}

func printCatalogPath() error {
	path, err := resolveCatalogPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func listCatalog() error {
	cat, path, err := catalog.LoadUser(catalogFile)
	if err != nil {
		return err
	}
	if path == "" {
		path = "built in"
	}

	t := newTable("#", "ID", "Kind", "Title", "Source")
	n := 0
	for _, ic := range cat.Icons {
		slot := "-"
		if !ic.Hidden {
			n++
			slot = strconv.Itoa(n)
		}
		source := ic.Source
		if source == "" {
			source = "body"
		}
		t.Row(slot, ic.ID, ic.Kind.String(), ic.Spawn().Title, source)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s's desktop", cat.Owner.Name)))
	fmt.Println(noteStyle.Render(path))
	fmt.Println()
	fmt.Println(t.Render())
	fmt.Println()
	return nil
}

func initCatalog() error {
	path, err := resolveCatalogPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		if !confirm(fmt.Sprintf("Overwrite the catalog at %s?", path)) {
			fmt.Println("Init cancelled.")
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	if err := catalog.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Catalog written to %s\n", path)
	fmt.Println("Changes are picked up by running desktops when you save.")
	return nil
}
