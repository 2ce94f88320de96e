// Package themes loads theme documents into catalog themes and ships the
// built-in deep-sea theme.
//
// A theme document is a YAML file holding one theme. Art may be written
// inline or kept in a sidecar text file next to the document; sidecar files
// end with a single newline that is not part of the art.
package themes

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dyluth/fathom/pkg/catalog"
)

// DefaultPattern matches every theme document below the root.
const DefaultPattern = "**/*.{yaml,yml}"

// themeDoc is the on-disk form of a theme.
type themeDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Pieces      []pieceDoc `yaml:"pieces"`
}

// pieceDoc is the on-disk form of a piece.
type pieceDoc struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	DisplayName    string        `yaml:"display_name,omitempty"`
	Category       string        `yaml:"category"`
	Theme          string        `yaml:"theme"`
	Art            string        `yaml:"art,omitempty"`
	ArtFile        string        `yaml:"art_file,omitempty"`
	Description    string        `yaml:"description"`
	WhyEffective   string        `yaml:"why_effective"`
	KeyCharacters  []string      `yaml:"key_characters"`
	BuildingBlocks []string      `yaml:"building_blocks"`
	Techniques     []string      `yaml:"techniques"`
	Tags           *catalog.Tags `yaml:"tags,omitempty"`
	Zoom           *zoomDoc      `yaml:"zoom,omitempty"`
}

type zoomDoc struct {
	Far        string `yaml:"far,omitempty"`
	FarFile    string `yaml:"far_file,omitempty"`
	Medium     string `yaml:"medium,omitempty"`
	MediumFile string `yaml:"medium_file,omitempty"`
	Close      string `yaml:"close,omitempty"`
	CloseFile  string `yaml:"close_file,omitempty"`
}

// Loader reads theme documents from a filesystem.
type Loader struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewLoader returns a loader over fsys. A nil logger disables logging.
func NewLoader(fsys fs.FS, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, logger: logger}
}

// Load reads every document matching pattern, in lexical path order.
func (l *Loader) Load(pattern string) ([]catalog.Theme, error) {
	matches, err := doublestar.Glob(l.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match theme files with %q: %w", pattern, err)
	}
	slices.Sort(matches)

	themes := make([]catalog.Theme, 0, len(matches))
	for _, name := range matches {
		theme, err := l.LoadFile(name)
		if err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}
	return themes, nil
}

// LoadFile reads a single theme document. Sidecar art paths are resolved
// relative to the document.
func (l *Loader) LoadFile(name string) (catalog.Theme, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return catalog.Theme{}, fmt.Errorf("failed to read theme file %s: %w", name, err)
	}

	var doc themeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return catalog.Theme{}, fmt.Errorf("failed to parse theme file %s: %w", name, err)
	}
	if doc.Name == "" {
		return catalog.Theme{}, fmt.Errorf("theme file %s: name is required", name)
	}

	dir := path.Dir(name)
	theme := catalog.Theme{
		Name:        doc.Name,
		Description: doc.Description,
		Pieces:      make([]catalog.Piece, 0, len(doc.Pieces)),
	}
	for i, pd := range doc.Pieces {
		p, err := l.buildPiece(dir, pd)
		if err != nil {
			return catalog.Theme{}, fmt.Errorf("theme file %s: piece %d (%s): %w", name, i, pd.ID, err)
		}
		theme.Pieces = append(theme.Pieces, p)
	}

	l.logger.Debug("Loaded theme",
		zap.String("theme", theme.Name),
		zap.String("file", name),
		zap.Int("pieces", len(theme.Pieces)))

	return theme, nil
}

func (l *Loader) buildPiece(dir string, pd pieceDoc) (catalog.Piece, error) {
	art, err := l.resolveArt(dir, "art", pd.Art, pd.ArtFile)
	if err != nil {
		return catalog.Piece{}, err
	}

	p := catalog.Piece{
		ID:             pd.ID,
		Name:           pd.Name,
		DisplayName:    pd.DisplayName,
		Category:       catalog.Category(pd.Category),
		Theme:          pd.Theme,
		Art:            art,
		Description:    strings.TrimSpace(pd.Description),
		WhyEffective:   strings.TrimSpace(pd.WhyEffective),
		KeyCharacters:  pd.KeyCharacters,
		BuildingBlocks: pd.BuildingBlocks,
		Techniques:     pd.Techniques,
		Tags:           pd.Tags,
	}

	if pd.Zoom != nil {
		z := &catalog.Zoom{}
		if z.Far, err = l.resolveArt(dir, "zoom.far", pd.Zoom.Far, pd.Zoom.FarFile); err != nil {
			return catalog.Piece{}, err
		}
		if z.Medium, err = l.resolveArt(dir, "zoom.medium", pd.Zoom.Medium, pd.Zoom.MediumFile); err != nil {
			return catalog.Piece{}, err
		}
		if z.Close, err = l.resolveArt(dir, "zoom.close", pd.Zoom.Close, pd.Zoom.CloseFile); err != nil {
			return catalog.Piece{}, err
		}
		p.Zoom = z
	}

	return p, nil
}

// resolveArt returns inline art, or the contents of file without its final
// newline. Setting both is an error.
func (l *Loader) resolveArt(dir, field, inline, file string) (string, error) {
	if inline != "" && file != "" {
		return "", fmt.Errorf("%s and %s_file are mutually exclusive", field, field)
	}
	if file == "" {
		return inline, nil
	}

	data, err := fs.ReadFile(l.fsys, path.Join(dir, file))
	if err != nil {
		return "", fmt.Errorf("failed to read %s_file: %w", field, err)
	}
	art, err := decodeArt(data)
	if err != nil {
		return "", fmt.Errorf("%s_file %s: %w", field, file, err)
	}
	if strings.HasSuffix(art, "\r\n") {
		art = strings.TrimSuffix(art, "\r\n")
	} else {
		art = strings.TrimSuffix(art, "\n")
	}
	return art, nil
}

// LoadDir loads every theme document below dir on the local filesystem.
func LoadDir(dir string, logger *zap.Logger) ([]catalog.Theme, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open themes directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("themes path %s is not a directory", dir)
	}
	return NewLoader(os.DirFS(dir), logger).Load(DefaultPattern)
}
