package main

import (
	"fmt"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/spf13/cobra"

	"scene-editor/tracer"
)

func newTraceCmd(a *app) *cobra.Command {
	var (
		output, png   string
		width, height int
		samples       int
		seed          uint64
	)
	cmd := &cobra.Command{
		Use:   "trace [mesh files...]",
		Short: "Render the scene offline with the path tracer",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc := &a.cfg.Tracer
			flags := cmd.Flags()
			if flags.Changed("output") {
				tc.Output = output
			}
			if flags.Changed("png") {
				tc.PNG = png
			}
			if flags.Changed("width") {
				tc.Width = width
			}
			if flags.Changed("height") {
				tc.Height = height
			}
			if flags.Changed("samples") {
				tc.Samples = samples
			}
			if flags.Changed("seed") {
				tc.Seed = seed
			}
			return a.runTrace(args)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PPM output path")
	cmd.Flags().StringVar(&png, "png", "", "also write a PNG to this path")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	cmd.Flags().IntVar(&samples, "samples", 0, "jittered samples per pixel")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "jitter seed")
	return cmd
}

func (a *app) runTrace(files []string) error {
	tc := a.cfg.Tracer
	if tc.Width <= 0 || tc.Height <= 0 || tc.Samples <= 0 {
		return fmt.Errorf("trace: size %dx%d and samples %d must be positive", tc.Width, tc.Height, tc.Samples)
	}
	world, _, err := buildWorld(a.cfg, tc.Width, tc.Height, files, a.log)
	if err != nil {
		return err
	}

	img := tracer.New(tracer.Options{
		Width:   tc.Width,
		Height:  tc.Height,
		Samples: tc.Samples,
		Seed:    tc.Seed,
		Logger:  a.log,
	}).Render(world)

	if err := writePPM(tc.Output, img); err != nil {
		return err
	}
	a.log.Info("wrote image", "path", tc.Output)

	if tc.PNG != "" {
		if err := imgio.Save(tc.PNG, img.RGBA(), imgio.PNGEncoder()); err != nil {
			return fmt.Errorf("save %s: %w", tc.PNG, err)
		}
		a.log.Info("wrote image", "path", tc.PNG)
	}
	return nil
}

func writePPM(path string, img *tracer.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := img.WritePPM(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
