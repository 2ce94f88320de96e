package themes

import (
	"embed"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/dyluth/fathom/pkg/catalog"
)

// DeepSea is the name of the built-in theme.
const DeepSea = "deep-sea"

//go:embed data
var builtin embed.FS

// Builtin returns the themes shipped with the module.
func Builtin(logger *zap.Logger) ([]catalog.Theme, error) {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open built-in themes: %w", err)
	}
	return NewLoader(sub, logger).Load(DefaultPattern)
}

// RegisterDefaults registers the built-in themes. Hosts call it once while
// setting up their registry.
func RegisterDefaults(reg *catalog.Registry, logger *zap.Logger) error {
	themes, err := Builtin(logger)
	if err != nil {
		return err
	}
	Register(reg, themes)
	return nil
}

// RegisterDirs loads and registers every theme found below each directory,
// in the order given.
func RegisterDirs(reg *catalog.Registry, dirs []string, logger *zap.Logger) error {
	for _, dir := range dirs {
		themes, err := LoadDir(dir, logger)
		if err != nil {
			return fmt.Errorf("failed to load themes from %s: %w", dir, err)
		}
		Register(reg, themes)
	}
	return nil
}

// Register adds each theme to reg in order.
func Register(reg *catalog.Registry, themes []catalog.Theme) {
	for _, t := range themes {
		reg.RegisterTheme(t)
	}
}
