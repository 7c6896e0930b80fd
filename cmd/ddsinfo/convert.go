package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bcn"
	_ "golang.org/x/image/webp"

	"github.com/woozymasta/ddsview"
	"github.com/woozymasta/ddsview/internal/edds"
)

func unpackCmd() *cli.Command {
	return &cli.Command{
		Name:      "unpack",
		Usage:     "Convert an EDDS container (optionally .zst) to plain DDS",
		ArgsUsage: "<in.edds> <out.dds>",
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			_, log, err := setup(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			in, out, err := twoArgs(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			src, err := loadTexture(in)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if !src.edds {
				log.Warn("input is not EDDS, copying as is", "file", in)
			}
			if _, err := ddsview.Parse(src.data); err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", in, err), 1)
			}

			if err := writeOutput(out, src.data); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("unpacked", "in", in, "out", out, "bytes", len(src.data))
			return nil
		},
	}
}

func packCmd() *cli.Command {
	var copyOnly bool

	return &cli.Command{
		Name:      "pack",
		Usage:     "Convert a plain 2D DDS to an EDDS container",
		ArgsUsage: "<in.dds> <out.edds>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "copy", Usage: "store every level uncompressed (COPY blocks)", Destination: &copyOnly},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			cfg, log, err := setup(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if cfg.Compress != nil && !c.IsSet("copy") {
				copyOnly = !*cfg.Compress
			}
			in, out, err := twoArgs(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			src, err := loadTexture(in)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			packed, err := edds.Pack(src.data, !copyOnly)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", in, err), 1)
			}

			if err := writeOutput(out, packed); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("packed", "in", in, "out", out, "dds_bytes", len(src.data), "edds_bytes", len(packed))
			return nil
		},
	}
}

func encodeCmd() *cli.Command {
	var (
		format string
		mips   int
		fast   bool
	)

	return &cli.Command{
		Name:      "encode",
		Usage:     "Encode a PNG/JPEG/BMP/TIFF/WebP image as DDS (or EDDS with a .edds output)",
		ArgsUsage: "<in.png> <out.dds>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "dxt1, dxt3, dxt5 or bgra", Value: "dxt5", Destination: &format},
			&cli.IntFlag{Name: "mips", Usage: "max mip levels (0 = full chain)", Destination: &mips},
			&cli.BoolFlag{Name: "fast", Usage: "fast, lower quality block encoding", Destination: &fast},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			cfg, log, err := setup(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			applyEncodeConfig(c, cfg, &format, &mips, &fast)

			in, out, err := twoArgs(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			f, err := ddsview.ParseFormat(format)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			img, err := loadImage(in)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			data, err := encodeImage(img, f, mips, fast)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if isEDDSPath(out) {
				if data, err = edds.Pack(data, true); err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
			}

			if err := writeOutput(out, data); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			b := img.Bounds()
			log.Info("encoded", "in", in, "out", out, "format", f, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "bytes", len(data))
			return nil
		},
	}
}

// encodeImage block-encodes img into an in-memory DDS file.
func encodeImage(img image.Image, f ddsview.Format, mips int, fast bool) ([]byte, error) {
	var encOpts *bcn.EncodeOptions
	if fast {
		encOpts = &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast}
	}

	var buf bytes.Buffer
	err := ddsview.Encode(&buf, img, &ddsview.EncodeOptions{
		Format:        f,
		MaxMipMaps:    mips,
		EncodeOptions: encOpts,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func isEDDSPath(path string) bool {
	return strings.HasSuffix(strings.TrimSuffix(strings.ToLower(path), ".zst"), ".edds")
}

func twoArgs(c *cli.Command) (string, string, error) {
	if c.Args().Len() != 2 {
		return "", "", fmt.Errorf("expected 2 arguments, got %d", c.Args().Len())
	}
	return c.Args().Get(0), c.Args().Get(1), nil
}
