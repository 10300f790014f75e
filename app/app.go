// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app runs the minimal example: it starts the engine, sets up
// resources and material systems, builds the scene, and runs the frame
// loop until the window closes.
package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"time"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/minimal/cfgfile"
	"cogentcore.org/minimal/compositor"
	"cogentcore.org/minimal/config"
	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/frame"
	"cogentcore.org/minimal/hlms"
	"cogentcore.org/minimal/resource"
	"cogentcore.org/minimal/scene"
)

// SceneManagerName is the name of the scene manager.
const SceneManagerName = "SceneManager"

// ClearColour is the clear colour of the workspace. Workspace
// definitions are not loaded from resources, so the configured name
// always refers to the built-in basic definition.
var ClearColour = color.RGBA{51, 102, 153, 255}

// Deps are the collaborators supplied by the caller.
type Deps struct {

	// Plugins are the plugins that the plugins file can name.
	Plugins []engine.Plugin

	// Dialog is shown when there is no usable stored configuration.
	// A nil dialog cancels startup in that case.
	Dialog engine.ConfigDialog

	// Console receives colored log output at [logx.UserLevel] if non-nil.
	Console io.Writer

	// Sleep replaces the frame loop sleep while minimized, if set.
	Sleep func(ctx context.Context, d time.Duration)
}

// Run runs the example until the window is closed, ctx is done, or
// cfg.MaxFrames frames have been rendered. It returns
// [engine.ErrConfigCanceled] if the configuration dialog is declined.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (err error) {
	if err := cfg.ExpandPaths(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	root, err := engine.NewRoot(engine.Options{
		PluginsFile: cfg.Plugins,
		ConfigFile:  cfg.EngineConfig,
		LogFile:     cfg.Log,
		LogLevel:    logx.UserLevel,
		Console:     deps.Console,
	}, deps.Plugins...)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, root.Close()) }()
	log := root.Logger()

	if !root.RestoreConfig() && !root.ShowConfigDialog(deps.Dialog) {
		return engine.ErrConfigCanceled
	}
	win, err := root.Initialise(true, cfg.Title)
	if err != nil {
		return err
	}

	gm := resource.NewGroupManager(resource.NewArchiveManager(), log)
	defer func() { err = errors.Join(err, gm.Archives().Close()) }()
	if err := setupResources(cfg.Resources, gm); err != nil {
		return err
	}
	hm := hlms.NewManager(log)
	if _, _, err := hlms.Register(root.RenderSystem(), gm.Archives(), hm, cfg.DataFolder); err != nil {
		return err
	}
	if err := gm.InitialiseAllResourceGroups(); err != nil {
		return fmt.Errorf("app: initialising resource groups: %w", err)
	}

	sm := scene.NewManager(SceneManagerName, scene.DefaultOptions(), scene.NewMeshManager(), hm, log)
	cam, err := scene.SetupCamera(sm)
	if err != nil {
		return err
	}
	if err := setupCompositor(root, sm, win, cam, cfg.Workspace, log); err != nil {
		return err
	}
	if err := scene.CreateScene(sm); err != nil {
		return err
	}

	if cfg.WatchShaders {
		w, werr := hlms.NewWatcher(hm)
		if werr != nil {
			return werr
		}
		defer func() { err = errors.Join(err, w.Close()) }()
		root.AddFrameListener(w)
	}

	loop := &frame.Loop{
		Window:         win,
		Renderer:       root,
		Clock:          root.Timer(),
		Sleep:          deps.Sleep,
		MinimizedSleep: cfg.MinimizedSleep,
		MaxFrameTime:   cfg.MaxFrameTime,
		MaxFrames:      uint64(cfg.MaxFrames),
		Logger:         log,
	}
	err = loop.Run(ctx)
	log.Info("frame loop ended", "iterations", loop.Iterations, "rendered", loop.Rendered, "err", err)
	return err
}

// setupResources registers every location of the resource location file.
func setupResources(file string, gm *resource.GroupManager) error {
	cf, err := cfgfile.Load(file)
	if err != nil {
		return fmt.Errorf("app: loading resource locations: %w", err)
	}
	return resource.SetupFromConfig(cf, gm)
}

// setupCompositor defines the basic workspace and adds it, rendering sm
// through cam into the window.
func setupCompositor(root *engine.Root, sm *scene.Manager, win engine.Window, cam *scene.Camera, workspace string, log *slog.Logger) error {
	target, ok := win.(compositor.Target)
	if !ok {
		return fmt.Errorf("app: %s windows cannot render scenes", root.RenderSystem().Name())
	}
	cm := compositor.NewManager(log)
	if _, err := cm.CreateBasicWorkspaceDef(workspace, ClearColour); err != nil {
		return err
	}
	if _, err := cm.AddWorkspace(sm, target, cam, workspace, true); err != nil {
		return err
	}
	root.SetCompositor(cm)
	return nil
}
