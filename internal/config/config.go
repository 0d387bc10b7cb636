// Package config loads the VideoChip's external configuration surface
// from a TOML file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/flga/tilechip/internal/bank"
	"github.com/flga/tilechip/internal/video"
)

// File is the on-disk TOML shape; channel values are 0..15 (the packed
// 4-bit color model), not 0..255.
type File struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	ScrollX int `toml:"scroll_x"`
	ScrollY int `toml:"scroll_y"`

	BgColor struct {
		R, G, B, A uint8
	} `toml:"bg_color"`
	WrapBG bool `toml:"wrap_bg"`

	ViewLeft   int `toml:"view_left"`
	ViewRight  int `toml:"view_right"`
	ViewTop    int `toml:"view_top"`
	ViewBottom int `toml:"view_bottom"`

	BGTileBank int `toml:"bg_tile_bank"`
	FGTileBank int `toml:"fg_tile_bank"`
}

// Load reads and parses a TOML config file at path into a video.Config.
func Load(path string) (video.Config, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return video.Config{}, fmt.Errorf("config: unable to decode %s: %w", path, err)
	}
	return toVideoConfig(f), nil
}

// LoadDefault returns a built-in 256x240 configuration with a full-screen
// viewport, without touching disk, used when no config file is supplied.
func LoadDefault() video.Config {
	return toVideoConfig(File{
		Width: 256, Height: 240,
		ViewLeft: 0, ViewRight: 255,
		ViewTop: 0, ViewBottom: 239,
	})
}

func toVideoConfig(f File) video.Config {
	return video.Config{
		Width:      f.Width,
		Height:     f.Height,
		ScrollX:    f.ScrollX,
		ScrollY:    f.ScrollY,
		BgColor:    bank.NewColor(f.BgColor.R, f.BgColor.G, f.BgColor.B, f.BgColor.A, bank.ZBGColor),
		WrapBG:     f.WrapBG,
		ViewLeft:   f.ViewLeft,
		ViewRight:  f.ViewRight,
		ViewTop:    f.ViewTop,
		ViewBottom: f.ViewBottom,
		BGTileBank: f.BGTileBank,
		FGTileBank: f.FGTileBank,
	}
}
