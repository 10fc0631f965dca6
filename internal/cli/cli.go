// Package cli holds the command-line flags shared by the explorer binaries.
package cli

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mandel "github.com/marben/mandex"
	"github.com/marben/mandex/bmp"
)

// RegionFlag is a flag.Value accepting a landmark name or "xmin,xmax,ymin,ymax".
type RegionFlag struct {
	mandel.Region
}

func (f *RegionFlag) String() string {
	return f.Region.String()
}

func (f *RegionFlag) Set(s string) error {
	if r, err := mandel.LookupRegion(s); err == nil {
		f.Region = r
		return nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fmt.Errorf("want a name from %v or xmin,xmax,ymin,ymax", mandel.RegionNames())
	}
	var v [4]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("bound %d: %w", i, err)
		}
		v[i] = x
	}
	f.Region = mandel.Region{Xmin: v[0], Xmax: v[1], Ymin: v[2], Ymax: v[3]}
	return nil
}

// StyleFlag is a flag.Value for palette styles.
type StyleFlag struct {
	mandel.Style
}

func (f *StyleFlag) Set(s string) error {
	st, err := mandel.ParseStyle(s)
	if err != nil {
		return err
	}
	f.Style = st
	return nil
}

// Options are the engine, viewport and palette settings of a binary.
type Options struct {
	Width, Height int
	Region        RegionFlag
	Depth         int
	Style         StyleFlag
	Seed          uint64
	Workers       int
	Batch         int
	Verbose       bool
}

// Register adds the options to fs with the given defaults.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.IntVar(&o.Width, "width", o.Width, "viewport width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "viewport height in pixels")
	fs.Var(&o.Region, "region", fmt.Sprintf("start region: one of %v or xmin,xmax,ymin,ymax", mandel.RegionNames()))
	fs.IntVar(&o.Depth, "depth", o.Depth, "palette length")
	fs.Var(&o.Style, "style", "palette style: random, smooth or spectrum")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "palette seed, 0 for random")
	fs.IntVar(&o.Workers, "workers", o.Workers, "worker goroutines, 0 for one per CPU")
	fs.IntVar(&o.Batch, "batch", o.Batch, "iterations per point per pass, 0 for default")
	fs.BoolVar(&o.Verbose, "v", o.Verbose, "log viewport changes")
}

// Defaults returns the options of the interactive explorer.
func Defaults() Options {
	return Options{
		Width:  800,
		Height: 600,
		Region: RegionFlag{mandel.Classic},
		Depth:  1000,
		Style:  StyleFlag{mandel.StyleSmooth},
	}
}

// Viewport returns the start viewport.
func (o *Options) Viewport() mandel.Viewport {
	return mandel.NewViewport(o.Width, o.Height, o.Region.Region)
}

// Palette generates the configured palette.
func (o *Options) Palette() (mandel.Palette, error) {
	var rng *rand.Rand
	if o.Seed != 0 {
		rng = rand.New(rand.NewPCG(o.Seed, o.Seed))
	}
	return mandel.NewPalette(o.Depth, o.Style.Style, rng)
}

// NewEngine builds an idle engine from the options.
func (o *Options) NewEngine() (*mandel.Engine, error) {
	pal, err := o.Palette()
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	cfg := mandel.DefaultConfig()
	if o.Workers != 0 {
		cfg.Workers = o.Workers
	}
	if o.Batch != 0 {
		cfg.Batch = o.Batch
	}
	return mandel.New(cfg, pal)
}

// SetupLogging routes engine logs to stderr when -v is given. Otherwise the
// engine stays silent.
func (o *Options) SetupLogging() {
	o.setupLogging(os.Stderr)
}

func (o *Options) setupLogging(w io.Writer) {
	if !o.Verbose {
		mandel.SetLogger(nil)
		return
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// SaveFrame writes f to path as a top-down BMP or a PNG, chosen by the
// file extension.
func SaveFrame(path string, f *mandel.Frame) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bmp":
		return bmp.Save(path, f, true)
	case ".png":
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(out, f); err != nil {
			out.Close()
			return fmt.Errorf("png: %w", err)
		}
		return out.Close()
	default:
		return fmt.Errorf("unsupported image format %q, want .bmp or .png", ext)
	}
}
