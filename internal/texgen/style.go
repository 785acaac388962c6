package texgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/naveend/fapack/internal/logging"
)

const (
	// OutputFile is the generated style file name.
	OutputFile = "fontawesome6.sty"
	// headerFile holds the static preamble shipped with the sources.
	headerFile = "header.sty"
	// manifestFile is the icon metadata path relative to the source dir.
	manifestFile = "metadata/icons.json"
)

// Builder generates the style package from an unpacked FontAwesome
// desktop distribution.
type Builder struct {
	SourceDir string
	OutputDir string

	manifest Manifest
	log      *logging.Logger
}

// NewBuilder validates the source tree, loads the icon manifest and
// creates the output directory.
func NewBuilder(sourceDir, outputDir string) (*Builder, error) {
	b := &Builder{
		SourceDir: sourceDir,
		OutputDir: outputDir,
		log:       logging.NewDefaultLogger(),
	}

	if err := b.validateSource(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest, err := LoadManifest(filepath.Join(sourceDir, manifestFile))
	if err != nil {
		return nil, err
	}
	b.manifest = manifest
	b.log.Infof("loaded %d icons from %s", len(manifest), manifestFile)
	return b, nil
}

// validateSource checks that the distribution contains the manifest,
// at least one OTF font and a license file.
func (b *Builder) validateSource() error {
	if info, err := os.Stat(b.SourceDir); err != nil || !info.IsDir() {
		return fmt.Errorf("source directory %s does not exist", b.SourceDir)
	}

	required := []string{manifestFile, "otfs/*.otf"}
	for _, pattern := range required {
		matches, err := filepath.Glob(filepath.Join(b.SourceDir, pattern))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("required file %s not found in source directory", pattern)
		}
	}

	// License file casing differs between releases.
	if !fileExists(filepath.Join(b.SourceDir, "LICENSE.txt")) &&
		!fileExists(filepath.Join(b.SourceDir, "license.txt")) {
		return fmt.Errorf("license file not found in source directory")
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IconLines renders one \faDefineIcon definition per icon, sorted by
// icon name. Brands-only icons map to the brands font face.
func (b *Builder) IconLines() []string {
	names := make([]string, 0, len(b.manifest))
	for name := range b.manifest {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		icon := b.manifest[name]

		font := `\FA`
		if icon.HasStyle("brands") {
			font = `\FABrands`
		}

		symbol := strings.ToUpper(icon.Unicode)
		for len(symbol) < 4 {
			symbol = "0" + symbol
		}

		term := ""
		if t := icon.FirstTerm(); t != "" {
			term = " [" + t + "]"
		}

		// \faDefineIcon{apple}{\FABrands{\symbol{"F179}}} % U+F179: Apple
		lines = append(lines, fmt.Sprintf(
			`\faDefineIcon{%s}{%s{\symbol{"%s}}} %% U+%s: %s%s`,
			name, font, symbol, symbol, icon.Label, term))
	}
	return lines
}

// WritePackage assembles the style file: static header, icon
// definitions, \endinput terminator.
func (b *Builder) WritePackage() error {
	header, err := os.ReadFile(filepath.Join(b.SourceDir, headerFile))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", headerFile, err)
	}

	var sb strings.Builder
	sb.Write(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(b.IconLines(), "\n"))
	sb.WriteString(`\endinput`)

	outPath := filepath.Join(b.OutputDir, OutputFile)
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write style file: %w", err)
	}
	b.log.Infof("style package written to %s", outPath)
	return nil
}

// Build generates the style file and copies fonts, licenses and the
// readme into the output tree.
func (b *Builder) Build() error {
	if err := b.WritePackage(); err != nil {
		return err
	}

	b.CopyAssets("otfs/Font Awesome 6 *", "fonts", CopyOptions{})
	b.CopyAssets("*.txt", "licenses", CopyOptions{})
	b.CopyAssets("license.txt", "licenses", CopyOptions{IgnoreCase: true, Recursive: true})
	b.CopyAssets("README.md", ".", CopyOptions{})
	return nil
}
