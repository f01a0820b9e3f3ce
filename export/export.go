// Package export cuts slices out of the source image into
// standalone frame images.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
)

// LoadImage decodes the PNG or BMP image at path.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", path, err)
	}

	defer file.Close()

	img, _, err := image.Decode(file)

	if err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", path, err)
	}

	return img, nil
}

// CheckSize rejects an image whose size differs
// from the one the sheet description declares.
func CheckSize(img image.Image, size sheet.Size) error {
	b := img.Bounds()

	if b.Dx() != size.W || b.Dy() != size.H {
		return fmt.Errorf("export: image is %dx%d, the sheet declares %dx%d",
			b.Dx(), b.Dy(), size.W, size.H)
	}

	return nil
}

// Frames writes every slice to dir as "<name>.png" and returns the
// written paths. Slice rectangles are read in the given origin
// convention of an image of the sheet's height.
func Frames(img image.Image, slices []slicing.Slice, origin slicing.Origin, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	bounds := img.Bounds()
	paths := make([]string, 0, len(slices))

	for _, slice := range slices {
		rect := slice.Rect

		if origin != slicing.OriginTopLeft {
			rect = slicing.FromBottomLeft(rect, bounds.Dy())
		}

		src := image.Rect(rect.X, rect.Y, rect.X+rect.W, rect.Y+rect.H).
			Add(bounds.Min)

		if !src.In(bounds) {
			return nil, fmt.Errorf("export: slice '%s' %v lies outside of the image %v",
				slice.Name, src, bounds)
		}

		dst := image.NewNRGBA(image.Rect(0, 0, rect.W, rect.H))
		draw.Copy(dst, image.Point{}, img, src, draw.Src, nil)

		path := filepath.Join(dir, fileName(slice.Name)+".png")

		if err := writePNG(path, dst); err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func fileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)

	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("export: encode %s: %w", path, err)
	}

	return file.Close()
}
