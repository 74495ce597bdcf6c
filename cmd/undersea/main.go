// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command undersea animates an underwater scene and serves it to a
// browser together with a panel for tweaking its lights. With -frames
// it instead renders a fixed number of frames and writes the last one
// to a PNG file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"cogentcore.org/lab/base/randx"
	"cogentcore.org/undersea/config"
	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/reef"
	"cogentcore.org/undersea/render"
	"cogentcore.org/undersea/tweak"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	opts := cli.DefaultOptions("undersea", "Animates an underwater scene and serves it with a light tweak panel.")
	cli.Run(opts, config.New(), Run)
}

// Run builds the scene from the config and either serves it until
// interrupted or, if [config.Config.Headless], renders it to a file.
func Run(c *config.Config) error { //cli:cmd -root
	logx.UserLevel = c.Level()
	logx.SetDefaultLogger()
	log := slog.Default()

	lp := frame.NewLoop(c.FPS)
	ro := reef.DefaultOptions(os.DirFS(c.Assets))
	ro.Model = c.Model
	ro.ModelScale = c.ModelScale
	ro.ModelCount = c.ModelCount
	ro.Loop = lp
	ro.Log = log
	loads := newLoadProgress(ro.NumLoads())
	ro.Progress = loads

	cv := render.NewCanvas()
	vp := reef.Viewport{Width: c.Width, Height: c.Height, PixelRatio: c.PixelRatio}
	w := reef.Setup(cv, vp, randx.NewSysRand(c.RandSeed()), ro)
	if c.Presets != "" {
		ps, err := config.LoadPreset(c.Presets)
		if err != nil {
			return err
		}
		if err := w.Panel.Apply(ps); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	var err error
	if c.Headless() {
		err = headless(ctx, c, w, loads)
	} else {
		err = serve(ctx, c, w, cv)
	}
	if err != nil {
		return err
	}
	if c.Save != "" {
		if err := config.SavePreset(c.Save, w.Panel.Values()); err != nil {
			return err
		}
		log.Info("lights saved", "file", c.Save)
	}
	return nil
}

// serve runs the animation and the viewer until ctx is done.
func serve(parent context.Context, c *config.Config, w *reef.World, cv *render.Canvas) error {
	w.Start()
	sv := tweak.NewServer(w.Panel, cv, w.Controls, w.Loop, w.Log)
	g, ctx := errgroup.WithContext(parent)
	g.Go(func() error {
		return w.Loop.Run(ctx)
	})
	g.Go(func() error {
		return sv.ListenAndServe(ctx, c.Addr)
	})
	if c.Presets != "" {
		g.Go(func() error {
			return config.Watch(ctx, c.Presets, func() {
				if err := config.ApplyPreset(ctx, w.Loop, w.Panel, c.Presets); err != nil {
					w.Log.Error("presets not applied", "file", c.Presets, "error", err)
					return
				}
				w.Log.Info("presets applied", "file", c.Presets)
			})
		})
	}
	err := g.Wait()
	if parent.Err() != nil {
		// interrupted
		return nil
	}
	return err
}

// headless waits for the assets, renders c.Frames frames at the
// configured rate, and writes the last one to c.Output.
func headless(ctx context.Context, c *config.Config, w *reef.World, loads *loadProgress) error {
	lctx, cancel := context.WithTimeout(ctx, time.Duration(c.LoadTimeout)*time.Second)
	go func() {
		select {
		case <-loads.done:
			cancel()
		case <-lctx.Done():
		}
	}()
	err := w.Loop.Run(lctx)
	cancel()
	if ctx.Err() != nil {
		return err
	}
	if n := loads.n.Load(); n < loads.total {
		w.Log.Warn("not all assets loaded", "loaded", n, "total", loads.total)
	}

	w.Start()
	for i := range c.Frames {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.Loop.Step(float64(i) * 1000 / float64(c.FPS))
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := w.Renderer.Canvas.EncodePNG(f); err != nil {
		return fmt.Errorf("writing %v: %w", c.Output, err)
	}
	w.Log.Info("frame written", "file", c.Output, "frames", c.Frames)
	return nil
}

// loadProgress advances the progress bar and closes done once all of
// the loads have finished.
type loadProgress struct {
	bar   *progressbar.ProgressBar
	n     atomic.Int64
	total int64
	done  chan struct{}
}

func newLoadProgress(total int) *loadProgress {
	lp := &loadProgress{bar: progressbar.Default(int64(total), "loading assets"), total: int64(total), done: make(chan struct{})}
	if total == 0 {
		close(lp.done)
	}
	return lp
}

func (lp *loadProgress) Add(num int) error {
	if lp.n.Add(int64(num)) == lp.total {
		close(lp.done)
	}
	return lp.bar.Add(num)
}
