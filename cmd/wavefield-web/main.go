//go:build js && wasm
// +build js,wasm

// Command wavefield-web runs in the browser. The page picks the demo with
// <body data-demo="sine">; anything else gets the background on
// <canvas id="background">.
package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/web"
)

const themeKey = "theme"

func main() {
	cfg := config.DefaultConfig()
	log, err := logging.New(cfg.Log.Level, false)
	if err != nil {
		log = zap.NewNop()
	}

	doc := js.Global().Get("document")
	demo := doc.Get("body").Get("dataset").Get("demo")

	if demo.Truthy() && demo.String() == "sine" {
		runSine(doc, cfg, log)
	} else {
		runBackground(doc, cfg, log)
	}
	select {}
}

func runSine(doc js.Value, cfg *config.Config, log *zap.Logger) {
	el := doc.Call("getElementById", "sine")
	if el.IsNull() {
		log.Error("No #sine canvas")
		return
	}
	if _, err := web.StartSine(el, cfg.Shader, log); err != nil {
		js.Global().Get("console").Call("error", err.Error())
	}
}

func runBackground(doc js.Value, cfg *config.Config, log *zap.Logger) {
	el := doc.Call("getElementById", "background")
	if el.IsNull() {
		log.Error("No #background canvas")
		return
	}

	storage := js.Global().Get("localStorage")
	mode := cfg.Theme
	if saved := storage.Call("getItem", themeKey); saved.Truthy() {
		if m, err := theme.ParseMode(saved.String()); err == nil {
			mode = m
		}
	}
	modes := theme.NewSwitch(mode)
	modes.Subscribe(func(m theme.Mode) { storage.Call("setItem", themeKey, m.String()) })

	bg, err := web.StartBackground(el, modes, sim.Options{
		Physics: cfg.Physics,
		Styles:  cfg.Styles,
		Layout:  cfg.Layout,
		Logger:  log,
	})
	if err != nil {
		return
	}

	// Pages wire their theme button to wavefieldToggleTheme.
	js.Global().Set("wavefieldToggleTheme", js.FuncOf(func(this js.Value, args []js.Value) any {
		return modes.Toggle().String()
	}))
	js.Global().Set("wavefieldStop", js.FuncOf(func(this js.Value, args []js.Value) any {
		bg.Stop()
		return nil
	}))
}
