package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bcn"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/woozymasta/ddsview"
)

func extractCmd() *cli.Command {
	var (
		level   int
		face    string
		outPath string
		workers int
	)

	return &cli.Command{
		Name:      "extract",
		Usage:     "Decode one surface to PNG, BMP or TIFF",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "level", Aliases: []string{"l"}, Usage: "mip level", Destination: &level},
			&cli.StringFlag{Name: "face", Aliases: []string{"f"}, Usage: "cube face (+x, -x, +y, -y, +z, -z)", Value: "+x", Destination: &face},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output image path (.png, .bmp, .tif, .tiff)",
				Destination: &outPath,
				Required:    true,
			},
			&cli.IntFlag{Name: "workers", Usage: "decoder workers (0 = auto)", Destination: &workers},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			cfg, log, err := setup(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if cfg.DecodeWorkers != nil && !c.IsSet("workers") {
				workers = *cfg.DecodeWorkers
			}

			path := c.Args().First()
			if path == "" {
				return cli.Exit("error: missing input file", 1)
			}
			src, err := loadTexture(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			tex, err := ddsview.Parse(src.data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", path, err), 1)
			}

			s, err := selectSurface(tex, level, face)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("extracting", "file", path, "level", s.Level, "face", s.Face, "size", fmt.Sprintf("%dx%d", s.Width, s.Height))

			img, err := s.Image(&bcn.DecodeOptions{Workers: workers})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := saveImage(outPath, img); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

// selectSurface resolves the level and face flags against tex.
func selectSurface(tex *ddsview.Texture, level int, face string) (ddsview.Surface, error) {
	if level < 0 || int64(level) > int64(^uint32(0)) {
		return ddsview.Surface{}, fmt.Errorf("%w: %d", ddsview.ErrLevelOutOfRange, level)
	}
	l := uint32(level)

	if tex.Kind != ddsview.KindCube {
		return tex.MipLevel(l)
	}

	f, err := parseFace(face)
	if err != nil {
		return ddsview.Surface{}, err
	}
	return tex.CubeFace(f, l)
}

func parseFace(name string) (ddsview.Face, error) {
	for f := range ddsview.Face(ddsview.NumFaces) {
		if strings.EqualFold(name, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ddsview.ErrFaceOutOfRange, name)
}

func saveImage(path string, img image.Image) (err error) {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }
	default:
		return fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return encode(f, img)
}
