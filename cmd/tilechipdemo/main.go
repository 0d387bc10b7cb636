// Command tilechipdemo is a minimal SDL2 viewer for the tile-chip pixel
// pipeline: it builds a tiny checkerboard scene, steps a PixelIterator
// once per frame and blits the resulting RGBA32 stream to a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/flga/tilechip/internal/bank"
	"github.com/flga/tilechip/internal/config"
	"github.com/flga/tilechip/internal/tilemap"
	"github.com/flga/tilechip/internal/video"
)

const zoom = 3

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a tilechip TOML config file (defaults to a built-in 256x240 configuration)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("tilechipdemo: %s", err)
	}
}

func buildDemoScene(cfg demoSceneConfig) (*bank.MemoryBank, *tilemap.Tilemap, *video.SpriteGenerator) {
	b := bank.New()

	lightID, err := b.PushColor(bank.NewColor(12, 12, 14, 15, bank.ZBGTile))
	if err != nil {
		log.Fatalf("push color: %s", err)
	}
	darkID, err := b.PushColor(bank.NewColor(2, 2, 4, 15, bank.ZBGTile))
	if err != nil {
		log.Fatalf("push color: %s", err)
	}

	var checker bank.Tile
	for y := uint8(0); y < 8; y++ {
		for x := uint8(0); x < 8; x++ {
			if (x/4+y/4)%2 == 0 {
				checker.SetPixel(x, y, 1)
			}
		}
	}
	checkerID, err := b.PushTile(checker)
	if err != nil {
		log.Fatalf("push tile: %s", err)
	}

	subPal, err := b.PushSubPalette(bank.SubPalette{0, darkID, lightID, 0})
	if err != nil {
		log.Fatalf("push sub-palette: %s", err)
	}

	cols, rows := cfg.width/8, cfg.height/8
	tm := tilemap.New(cols, rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tm.Set(col, row, tilemap.Cell{TileID: checkerID, SubPaletteID: subPal})
		}
	}

	sprGen := video.NewSpriteGenerator(cfg.width, cfg.height, 8)

	return b, tm, sprGen
}

type demoSceneConfig struct {
	width, height int
}

func run(configPath string) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("unable to init sdl: %s", err)
	}
	defer sdl.Quit()

	var vcfg video.Config
	if configPath != "" {
		var err error
		vcfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("unable to load config: %s", err)
		}
	} else {
		vcfg = config.LoadDefault()
	}

	b, tm, sprGen := buildDemoScene(demoSceneConfig{width: vcfg.Width, height: vcfg.Height})

	window, renderer, err := sdl.CreateWindowAndRenderer(
		int32(vcfg.Width)*zoom, int32(vcfg.Height)*zoom,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		return fmt.Errorf("unable to create window: %s", err)
	}
	defer window.Destroy()
	defer renderer.Destroy()

	window.SetTitle("tilechip demo")

	tex, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(vcfg.Width), int32(vcfg.Height))
	if err != nil {
		return fmt.Errorf("unable to create texture: %s", err)
	}
	defer tex.Destroy()

	rect := &sdl.Rect{X: 0, Y: 0, W: int32(vcfg.Width) * zoom, H: int32(vcfg.Height) * zoom}

	frame := 0
	irq := func(it *video.PixelIterator, line int) {
		it.ScrollX = frame / 2
	}

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch evt := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if evt.Type == sdl.KEYDOWN && evt.Keysym.Sym == sdl.K_ESCAPE {
					running = false
				}
			}
		}

		pixels, _, err := tex.Lock(nil)
		if err != nil {
			return fmt.Errorf("unable to lock texture: %s", err)
		}

		it := video.New([]*bank.MemoryBank{b}, []*tilemap.Tilemap{tm}, sprGen, vcfg, irq)
		i := 0
		for {
			c, _, _, ok := it.Next()
			if !ok {
				break
			}
			pixels[i*4+0] = c.R
			pixels[i*4+1] = c.G
			pixels[i*4+2] = c.B
			pixels[i*4+3] = c.A
			i++
		}
		tex.Unlock()

		if err := renderer.Clear(); err != nil {
			return fmt.Errorf("unable to clear renderer: %s", err)
		}
		if err := renderer.Copy(tex, nil, rect); err != nil {
			return fmt.Errorf("unable to copy frame: %s", err)
		}
		renderer.Present()

		frame++
		sdl.Delay(1000 / 60)
	}

	return nil
}
