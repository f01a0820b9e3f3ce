package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alacrity-engine/asepack/export"
	"github.com/alacrity-engine/asepack/importer"
	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
	"github.com/alacrity-engine/asepack/store"
	"github.com/alacrity-engine/asepack/timeline"
	"github.com/alacrity-engine/asepack/watch"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newLogger() *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}

	return log.New(os.Stderr, "asepack: ", log.LstdFlags)
}

func newImportCmd() *cobra.Command {
	var meta ImportMeta

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Slice one texture and generate its animations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if meta.Asset == "" {
				meta.Asset = filepath.ToSlash(meta.Texture)
			}

			if len(meta.Pivot) != 0 && len(meta.Pivot) != 2 {
				return fmt.Errorf("pivot must be x,y")
			}

			manifest := DefaultManifest()
			manifest.Out = resourceFilePath
			manifest.Origin = origin
			manifest.NumericOrder = numericOrder
			manifest.Imports = []ImportMeta{meta}

			return runBatch(&manifest, newLogger())
		},
	}

	cmd.Flags().StringVar(&meta.Sheet, "sheet", "", "Sheet description exported by Aseprite (JSON).")
	cmd.Flags().StringVar(&meta.Texture, "texture", "", "Sheet image.")
	cmd.Flags().StringVar(&meta.Asset, "asset", "", "Path to store the texture under (default: the texture path).")
	cmd.Flags().IntSliceVar(&meta.Pivot, "pivot", nil, "Pivot x,y in frame pixels (default: bottom centre).")
	cmd.Flags().StringVar(&meta.FramesDir, "frames-dir", "", "Directory to write one PNG per slice to.")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("texture")

	return cmd
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [manifest.yml]",
		Short: "Run every import of a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := loadManifest(cmd, args[0])

			if err != nil {
				return err
			}

			return runBatch(manifest, newLogger())
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [manifest.yml]",
		Short: "Run a manifest and re-run the imports whose files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runWatch(ctx, cmd, args[0], newLogger())
		},
	}
}

func newInspectCmd() *cobra.Command {
	var (
		sheetPath string
		pivot     []int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the slices and timelines of a sheet as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sheet.Load(sheetPath)

			if err != nil {
				return err
			}

			p, err := ImportMeta{Pivot: pivot}.PivotFor(doc)

			if err != nil {
				return err
			}

			o, ok := slicing.ParseOrigin(origin)

			if !ok {
				return fmt.Errorf("unknown origin '%s'", origin)
			}

			report, err := Inspect(doc, p, o, sortOrder(numericOrder))

			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(report)
			return err
		},
	}

	cmd.Flags().StringVar(&sheetPath, "sheet", "", "Sheet description exported by Aseprite (JSON).")
	cmd.Flags().IntSliceVar(&pivot, "pivot", nil, "Pivot x,y in frame pixels (default: bottom centre).")
	_ = cmd.MarkFlagRequired("sheet")

	return cmd
}

// loadManifest reads the manifest and applies
// the flags given explicitly on the command line.
func loadManifest(cmd *cobra.Command, path string) (*Manifest, error) {
	contents, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	manifest, err := ReadManifest(contents)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	manifest.Resolve(filepath.Dir(path))

	if cmd.Flags().Changed("out") {
		manifest.Out = resourceFilePath
	}

	if cmd.Flags().Changed("origin") {
		manifest.Origin = origin
	}

	if cmd.Flags().Changed("numeric-order") {
		manifest.NumericOrder = numericOrder
	}

	return manifest, nil
}

func sortOrder(numeric bool) timeline.Order {
	if numeric {
		return timeline.SortNumeric
	}

	return timeline.SortLexical
}

// runBatch runs every import of the manifest against its resource file.
func runBatch(manifest *Manifest, logger *log.Logger) error {
	return runImports(manifest, manifest.Imports, logger)
}

// runImports runs the given imports of the manifest
// against its resource file.
func runImports(manifest *Manifest, imports []ImportMeta, logger *log.Logger) error {
	o, ok := slicing.ParseOrigin(manifest.Origin)

	if !ok {
		return fmt.Errorf("unknown origin '%s'", manifest.Origin)
	}

	// Open the resource file.
	if dir := filepath.Dir(manifest.Out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	resourceFile, err := store.Open(manifest.Out)

	if err != nil {
		return err
	}

	defer resourceFile.Close()

	imp := importer.New(resourceFile, resourceFile, logger)
	imp.Computer.Origin = o
	imp.Order = sortOrder(manifest.NumericOrder)

	// Import everything.
	for _, meta := range imports {
		if err := runImport(imp, meta, logger); err != nil {
			return err
		}
	}

	if size, err := resourceFile.Size(); err == nil {
		logger.Printf("%s: %d imports, %s", resourceFile.Path(),
			len(imports), humanize.Bytes(uint64(size)))
	}

	return nil
}

func runImport(imp *importer.Importer, meta ImportMeta, logger *log.Logger) error {
	// Read the sheet and check the pivot.
	doc, err := sheet.Load(meta.Sheet)

	if err != nil {
		return err
	}

	pivot, err := meta.PivotFor(doc)

	if err != nil {
		return fmt.Errorf("%s: %w", meta.Sheet, err)
	}

	if err := sheet.ValidatePivot(doc.Frames, pivot); err != nil {
		return fmt.Errorf("%s: %w", meta.Sheet, err)
	}

	// The image is only needed for frame export.
	var img image.Image

	if meta.FramesDir != "" {
		loaded, err := export.LoadImage(meta.Texture)

		if err != nil {
			return err
		}

		if err := export.CheckSize(loaded, doc.Meta.Size); err != nil {
			return fmt.Errorf("%s: %w", meta.Texture, err)
		}

		img = loaded
	}

	asset := meta.Asset

	if asset == "" {
		asset = filepath.ToSlash(meta.Texture)
	}

	res, err := imp.Import(importer.Job{
		Texture:  asset,
		Document: doc,
		Pivot:    pivot,
	})

	if err != nil {
		return err
	}

	if img == nil {
		return nil
	}

	// Cut the frames.
	paths, err := export.Frames(img, res.Slices, imp.Computer.Origin, meta.FramesDir)

	if err != nil {
		return err
	}

	logger.Printf("wrote %s frame images to %s",
		humanize.Comma(int64(len(paths))), meta.FramesDir)

	return nil
}

// runWatch runs the manifest, then keeps one watcher on the manifest
// and its files. A changed sheet or texture re-runs the imports reading
// it; a changed manifest is reloaded and run in full.
func runWatch(ctx context.Context, cmd *cobra.Command, manifestPath string, logger *log.Logger) error {
	manifest, err := loadManifest(cmd, manifestPath)

	if err != nil {
		return err
	}

	if err := runBatch(manifest, logger); err != nil {
		logger.Printf("error: %v", err)
	}

	w, err := watch.New(append(manifest.Files(), manifestPath)...)

	if err != nil {
		return err
	}

	defer func() { w.Close() }()

	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}

			logger.Printf("%s changed", name)

			if !samePath(name, manifestPath) {
				if err := runImports(manifest, manifest.Affected(name), logger); err != nil {
					logger.Printf("error: %v", err)
				}

				continue
			}

			// Reload the manifest and track its new files.
			reloaded, err := loadManifest(cmd, manifestPath)

			if err != nil {
				logger.Printf("error: %v", err)
				continue
			}

			manifest = reloaded
			w.Close()
			w, err = watch.New(append(manifest.Files(), manifestPath)...)

			if err != nil {
				return err
			}

			if err := runBatch(manifest, logger); err != nil {
				logger.Printf("error: %v", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			return err

		case <-ctx.Done():
			return nil
		}
	}
}
