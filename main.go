/*
Command icegen grows icicles along the edges of a mesh: it reads source
edges from an OBJ file, generates tapered icicle paths from a preset,
skins them and writes the result back out as OBJ, optionally with a PNG
preview that tracks preset edits live.
*/
package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/export"
	"github.com/magmavr/icegen/icicle"
	"github.com/magmavr/icegen/mesh"
	"github.com/magmavr/icegen/preset"
	"github.com/magmavr/icegen/preview"
	"github.com/magmavr/icegen/selection"
)

func main() {
	var (
		presetPath  = flag.String("preset", "", "preset TOML file; built-in defaults when empty")
		presetName  = flag.String("name", "", "preset name inside the file; \"default\" when empty")
		inPath      = flag.String("in", "", "OBJ file providing the selected edges (required)")
		outPath     = flag.String("out", "icicles.obj", "output OBJ file")
		previewPath = flag.String("preview", "", "also render a PNG preview to this file")
		sideView    = flag.Bool("side", false, "preview from the side (ZY) instead of the front (XY)")
		seed        = flag.Int64("seed", 0, "override the preset seed; 0 keeps it")
		watch       = flag.Bool("watch", false, "keep running and re-render on preset changes")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		core.SetVerbose()
	}
	if *inPath == "" {
		flag.Usage()
		core.LogFatal("missing -in: no source edges to grow from")
	}
	if *watch && *presetPath == "" {
		core.LogFatal("-watch needs -preset: there is nothing to watch otherwise")
	}

	if err := core.StatsInitialize(); err != nil {
		core.LogFatal(err.Error())
	}

	edges, err := selection.LoadOBJ(*inPath)
	if err != nil {
		core.LogFatal("loading selection: %v", err)
	}
	core.LogInfo("loaded %d edges from %s", len(edges), *inPath)

	run := func() error {
		p, err := loadPreset(*presetPath, *presetName)
		if err != nil {
			return err
		}
		params := p.Parameters()
		if *seed != 0 {
			params.Seed = *seed
		}
		skinOpts, err := p.SkinOptions()
		if err != nil {
			return err
		}

		core.StatsReset()
		anchors := selection.Anchors(edges, params.RadiusRoot*0.5)
		if len(anchors) == 0 {
			return errors.New("no usable anchors in the selection")
		}

		results, err := icicle.GenerateBatch(anchors, params)
		if err != nil {
			return err
		}
		configs, err := mesh.SkinBatch(results, skinOpts)
		if err != nil {
			return err
		}
		if err := export.SaveOBJ(*outPath, configs); err != nil {
			return err
		}

		if *previewPath != "" {
			var paths []icicle.Path
			for _, r := range results {
				paths = append(paths, r.Paths...)
			}
			plane := preview.PlaneXY
			if *sideView {
				plane = preview.PlaneZY
			}
			img, err := preview.Render(paths, preview.Options{Plane: plane})
			if err != nil {
				return err
			}
			if err := preview.SavePNG(*previewPath, img); err != nil {
				return err
			}
		}

		stats := core.Stats()
		core.LogInfo("grew %d icicles on %d anchors (%d skipped) into %d vertices / %d triangles in %.2fms",
			stats.Paths, stats.Anchors, stats.SkippedAnchors, stats.Vertices, stats.Triangles, stats.BatchMS)
		return nil
	}

	if err := run(); err != nil {
		core.LogFatal(err.Error())
	}

	if !*watch {
		return
	}

	watcher, err := preset.NewWatcher()
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := watcher.Watch(*presetPath); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = watcher.Close()
	}()

	go func() {
		for range watcher.Errors() {
		}
	}()

	core.LogInfo("watching %s, edit the preset to regenerate", *presetPath)
	for range watcher.Events() {
		if err := run(); err != nil {
			// A half-saved preset must not kill the session.
			core.LogWarn("regeneration failed: %v", err)
		}
	}
}

func loadPreset(path, name string) (preset.Preset, error) {
	if path == "" {
		return preset.Default(), nil
	}
	f, err := preset.Load(path)
	if err != nil {
		return preset.Preset{}, err
	}
	return f.Get(name)
}
