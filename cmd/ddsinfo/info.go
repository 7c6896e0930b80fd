package main

import (
	"context"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/ddsview"
)

type surfaceReport struct {
	Face   string `json:"face,omitempty" yaml:"face,omitempty"`
	Level  uint32 `json:"level" yaml:"level"`
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
	NPOT   bool   `json:"npot" yaml:"npot"`
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
}

type report struct {
	File      string          `json:"file" yaml:"file"`
	Zstd      bool            `json:"zstd,omitempty" yaml:"zstd,omitempty"`
	EDDS      bool            `json:"edds,omitempty" yaml:"edds,omitempty"`
	IsDDS     bool            `json:"is_dds" yaml:"is_dds"`
	Error     string          `json:"error,omitempty" yaml:"error,omitempty"`
	TexOffset int             `json:"tex_offset" yaml:"tex_offset"`
	TexLength int             `json:"tex_length" yaml:"tex_length"`
	GLFormat  string          `json:"gl_format,omitempty" yaml:"gl_format,omitempty"`
	Format    string          `json:"format,omitempty" yaml:"format,omitempty"`
	Width     uint32          `json:"width" yaml:"width"`
	Height    uint32          `json:"height" yaml:"height"`
	Kind      string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	MipLevels uint32          `json:"mip_levels" yaml:"mip_levels"`
	FaceLen   uint32          `json:"face_length,omitempty" yaml:"face_length,omitempty"`
	Surfaces  []surfaceReport `json:"surfaces,omitempty" yaml:"surfaces,omitempty"`
}

func infoCmd() *cli.Command {
	var output string

	return &cli.Command{
		Name:      "info",
		Usage:     "Print header metadata and the surface layout",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output format (text, json, yaml)",
				Value:       "text",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			cfg, log, err := setup(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			applyOutputConfig(c, cfg, &output)

			path := c.Args().First()
			if path == "" {
				return cli.Exit("error: missing input file", 1)
			}

			src, err := loadTexture(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Debug("loaded", "file", path, "bytes", len(src.data), "zstd", src.zstd, "edds", src.edds)

			rep := buildReport(path, src)
			if err := writeReport(os.Stdout, rep, output); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if rep.Error != "" {
				return cli.Exit("", 2)
			}
			return nil
		},
	}
}

// buildReport parses src and walks every surface. A rejected file still
// yields a report carrying the reason.
func buildReport(name string, src source) report {
	rep := report{
		File:  name,
		Zstd:  src.zstd,
		EDDS:  src.edds,
		IsDDS: ddsview.IsDDS(src.data),
	}

	tex, err := ddsview.Parse(src.data)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}

	rep.TexOffset = tex.Offset
	rep.TexLength = len(tex.Data)
	rep.GLFormat = fmt.Sprintf("0x%x", uint32(tex.Format))
	rep.Format = tex.Format.String()
	rep.Width, rep.Height = tex.Width, tex.Height
	rep.Kind = tex.Kind.String()
	rep.MipLevels = tex.MipLevels
	rep.FaceLen = tex.FaceLength

	for s := range tex.Surfaces() {
		sr := surfaceReport{
			Level:  s.Level,
			Width:  s.Width,
			Height: s.Height,
			NPOT:   !isPow2(s.Width) || !isPow2(s.Height),
			Offset: s.Offset,
			Length: len(s.Data),
		}
		if tex.Kind == ddsview.KindCube {
			sr.Face = s.Face.String()
		}
		rep.Surfaces = append(rep.Surfaces, sr)
	}

	return rep
}

func writeReport(w io.Writer, rep report, output string) error {
	switch strings.ToLower(output) {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return writeText(w, rep)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func writeText(w io.Writer, rep report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "File: %s", rep.File)
	if rep.Zstd {
		b.WriteString(" [zstd]")
	}
	if rep.EDDS {
		b.WriteString(" [edds]")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "isDDS: %t\n", rep.IsDDS)
	if rep.Error != "" {
		fmt.Fprintf(&b, "rejected: %s\n", rep.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "texoffset: %d\n", rep.TexOffset)
	fmt.Fprintf(&b, "texlen: %d\n", rep.TexLength)
	fmt.Fprintf(&b, "glfmt: %s (%s)\n", rep.GLFormat, rep.Format)
	fmt.Fprintf(&b, "width x height: %d x %d\n", rep.Width, rep.Height)
	fmt.Fprintf(&b, "kind: %s\n", rep.Kind)
	fmt.Fprintf(&b, "miplevels: %d\n", rep.MipLevels)
	if rep.FaceLen != 0 {
		fmt.Fprintf(&b, "facelen: %d\n", rep.FaceLen)
	}
	b.WriteString("\n")

	for _, s := range rep.Surfaces {
		if s.Face != "" {
			fmt.Fprintf(&b, "%s  ", s.Face)
		}
		npot := "      "
		if s.NPOT {
			npot = "NPOT  "
		}
		fmt.Fprintf(&b, "%4d x %4d  %soffset: %8d  len: %8d\n", s.Width, s.Height, npot, s.Offset, s.Length)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func isPow2(v uint32) bool {
	return bits.OnesCount32(v) == 1
}
