package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/fathom/internal/config"
	"github.com/dyluth/fathom/internal/printer"
	"github.com/dyluth/fathom/internal/themes"
	"github.com/dyluth/fathom/pkg/catalog"
	"github.com/dyluth/fathom/pkg/validate"
)

//go:embed templates/*
var templatesFS embed.FS

// Paths created by Initialize, relative to the project directory.
var (
	ConfigFile  = config.DefaultPath
	ExampleDir  = filepath.Join("themes", "example")
	exampleName = "example"
)

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize creates a fathom project in dir: fathom.yml and an example theme.
// If force is true, it will remove an existing fathom.yml and example theme first.
func Initialize(dir string, force bool) error {
	if force {
		if err := handleForce(dir); err != nil {
			return err
		}
	}

	files, err := getTemplateFiles()
	if err != nil {
		return err
	}

	if err := createDirectories(dir); err != nil {
		return err
	}

	if err := writeFiles(dir, files); err != nil {
		return err
	}

	return validateCreatedFiles(dir)
}

// handleForce removes existing files if --force was specified
func handleForce(dir string) error {
	configPath := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		printer.Warning("Removing existing %s...\n", ConfigFile)
		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", ConfigFile, err)
		}
	}

	exampleDir := filepath.Join(dir, ExampleDir)
	if info, err := os.Stat(exampleDir); err == nil && info.IsDir() {
		printer.Warning("Removing existing %s/ directory...\n", ExampleDir)
		if err := os.RemoveAll(exampleDir); err != nil {
			return fmt.Errorf("failed to remove %s/ directory: %w", ExampleDir, err)
		}
	}

	return nil
}

// getTemplateFiles reads all template files and pairs them with their destination
func getTemplateFiles() ([]FileInfo, error) {
	targets := []struct {
		template string
		path     string
	}{
		{"fathom.yml.tmpl", ConfigFile},
		{"example.yaml.tmpl", filepath.Join(ExampleDir, "example.yaml")},
		{"lanternfish.txt.tmpl", filepath.Join(ExampleDir, "art", "lanternfish.txt")},
		{"lanternfish.close.txt.tmpl", filepath.Join(ExampleDir, "art", "lanternfish.close.txt")},
	}

	files := make([]FileInfo, 0, len(targets))
	for _, target := range targets {
		content, err := templatesFS.ReadFile("templates/" + target.template)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s template: %w", target.template, err)
		}
		files = append(files, FileInfo{
			Path:        target.path,
			Content:     content,
			Permissions: 0644,
		})
	}

	return files, nil
}

// createDirectories creates the necessary directory structure
func createDirectories(dir string) error {
	for _, d := range []string{ExampleDir, filepath.Join(ExampleDir, "art")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}

// writeFiles writes all template files to disk
func writeFiles(dir string, files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(dir, file.Path), file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}
	return nil
}

// validateCreatedFiles loads the created config and theme and checks the
// example theme passes validation.
func validateCreatedFiles(dir string) error {
	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		return fmt.Errorf("created %s is invalid: %w", ConfigFile, err)
	}

	loaded, err := themes.LoadDir(filepath.Join(dir, ExampleDir), nil)
	if err != nil {
		return fmt.Errorf("created example theme does not load: %w", err)
	}

	reg := catalog.NewRegistry()
	themes.Register(reg, loaded)
	if res := validate.ThemePieces(reg, exampleName); !res.Valid() {
		return fmt.Errorf("created example theme is invalid: %v", res.Errors)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess() {
	printer.Success("Successfully initialized fathom project!\n")
	printer.Println("\nCreated:")
	printer.Printf("  ✓ %s\n", ConfigFile)
	printer.Printf("  ✓ %s/example.yaml\n", ExampleDir)
	printer.Printf("  ✓ %s/art/lanternfish.txt\n", ExampleDir)
	printer.Printf("  ✓ %s/art/lanternfish.close.txt\n", ExampleDir)
	printer.Println("\nNext steps:")
	printer.Println("  1. Run 'fathom show lanternfish' to see the example piece")
	printer.Println("  2. Copy themes/example to start your own theme")
	printer.Println("  3. Run 'fathom validate' after every change")
}
