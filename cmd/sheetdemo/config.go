package main

import (
	"fmt"

	"honnef.co/go/sheetdrag/gesture"
	"honnef.co/go/sheetdrag/sheet"

	"github.com/BurntSushi/toml"
)

type config struct {
	Side          gesture.Side
	DragThreshold float32
	// DismissThreshold may be negative, which dismisses the sheet on any drag towards its side.
	DismissThreshold float32
	// Handle restricts drags to a grip at the top of the sheet.
	Handle bool
	// Items is the number of rows in the sheet's list.
	Items int
}

func defaultConfig() config {
	return config{
		Side:             gesture.SideBottom,
		DragThreshold:    sheet.DefaultDragThreshold,
		DismissThreshold: sheet.DefaultDismissThreshold,
		Items:            50,
	}
}

// readConfig reads a TOML configuration. Missing keys keep their defaults.
func readConfig(path string) (config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("couldn't read config file: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return config{}, fmt.Errorf("unknown config key %q in %s", keys[0].String(), path)
	}
	if cfg.DragThreshold < 0 {
		return config{}, fmt.Errorf("drag threshold in %s must not be negative", path)
	}
	if cfg.Items < 0 {
		cfg.Items = 0
	}
	return cfg, nil
}

func (cfg config) options() sheet.Options {
	return sheet.Options{
		Side:             cfg.Side,
		DragThreshold:    cfg.DragThreshold,
		DismissThreshold: cfg.DismissThreshold,
	}
}
