package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
)

// stripImage is 3 frames of 4x6 pixels, each filled with its own colour.
func stripImage() (*image.NRGBA, []color.NRGBA) {
	colours := []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	}
	img := image.NewNRGBA(image.Rect(0, 0, 12, 6))
	for x := 0; x < 12; x++ {
		for y := 0; y < 6; y++ {
			img.SetNRGBA(x, y, colours[x/4])
		}
	}
	return img, colours
}

func stripSheet() ([]sheet.Frame, sheet.Size) {
	frames := []sheet.Frame{}
	for i := 0; i < 3; i++ {
		frames = append(frames, sheet.Frame{Frame: sheet.Rect{X: i * 4, W: 4, H: 6}, Duration: 100})
	}
	return frames, sheet.Size{W: 12, H: 6}
}

func TestCheckSize(t *testing.T) {
	img, _ := stripImage()

	if err := CheckSize(img, sheet.Size{W: 12, H: 6}); err != nil {
		t.Fatalf("CheckSize: %v", err)
	}
	if err := CheckSize(img, sheet.Size{W: 12, H: 7}); err == nil {
		t.Fatal("expected size mismatch")
	}
}

func TestFrames(t *testing.T) {
	img, colours := stripImage()
	frames, size := stripSheet()

	for _, origin := range []slicing.Origin{slicing.OriginBottomLeft, slicing.OriginTopLeft} {
		t.Run(string(origin), func(t *testing.T) {
			slices, err := slicing.Computer{Origin: origin}.Slices(size, frames,
				[]sheet.Tag{{Name: "Walk", From: 0, To: 2}}, sheet.Pivot{X: 2, Y: 5})
			if err != nil {
				t.Fatalf("Slices: %v", err)
			}

			dir := t.TempDir()
			paths, err := Frames(img, slices, origin, dir)
			if err != nil {
				t.Fatalf("Frames: %v", err)
			}
			if len(paths) != 3 {
				t.Fatalf("expected 3 files, got %d", len(paths))
			}

			for i, p := range paths {
				if filepath.Base(p) != slices[i].Name+".png" {
					t.Fatalf("unexpected file name %s", p)
				}

				out, err := LoadImage(p)
				if err != nil {
					t.Fatalf("LoadImage: %v", err)
				}
				if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 6 {
					t.Fatalf("unexpected bounds %v", out.Bounds())
				}
				got := color.NRGBAModel.Convert(out.At(1, 1)).(color.NRGBA)
				if got != colours[i] {
					t.Fatalf("frame %d: expected %v, got %v", i, colours[i], got)
				}
			}
		})
	}
}

func TestFrames_OutsideImage(t *testing.T) {
	img, _ := stripImage()
	slices := []slicing.Slice{{Name: "A__1", Rect: sheet.Rect{X: 10, Y: 0, W: 4, H: 6}}}

	if _, err := Frames(img, slices, slicing.OriginTopLeft, t.TempDir()); err == nil {
		t.Fatal("expected error for a slice past the image edge")
	}
}

func TestLoadImage(t *testing.T) {
	img, _ := stripImage()
	path := filepath.Join(t.TempDir(), "strip.png")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	file.Close()

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if loaded.Bounds() != img.Bounds() {
		t.Fatalf("unexpected bounds %v", loaded.Bounds())
	}

	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
