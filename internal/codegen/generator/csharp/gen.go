package csharp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alia5/monobind/internal/codegen/meta"
)

// Generate writes one <Class>.cs per struct plus the runtime support files
// into outputDir.
func Generate(logger *slog.Logger, outputDir string, md *meta.Metadata, opts Options) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", outputDir, err)
	}

	for _, s := range md.Structs.Values() {
		path := filepath.Join(outputDir, s.ClassName+".cs")
		if err := writeFile(path, func(w io.Writer) error { return RenderClass(w, s, opts) }); err != nil {
			return err
		}
		logger.Debug("Generated class", "class", s.ClassName, "file", path)
	}

	for _, f := range supportFiles {
		path := filepath.Join(outputDir, f.fileName(opts))
		if err := writeFile(path, func(w io.Writer) error { return f.render(w, opts) }); err != nil {
			return err
		}
		logger.Debug("Generated support file", "file", path)
	}

	logger.Info("Generated C# bindings", "dir", outputDir, "classes", md.Structs.Len())
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
