package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/portfolio-fx/internal/audio"
	"github.com/iburimskiy/portfolio-fx/internal/config"
	"github.com/iburimskiy/portfolio-fx/internal/game"
	"github.com/iburimskiy/portfolio-fx/internal/term"
)

func main() {
	configPath := flag.String("config", "", "YAML effects config (defaults are used when empty)")
	seed := flag.Int64("seed", 0, "random seed; 0 uses the config seed, or the clock when that is 0 too")
	useTerm := flag.Bool("term", false, "draw the particle overlay in the terminal instead of a window")
	audioPath := flag.String("audio", "", "audio file to play on start")
	openDialog := flag.Bool("open", false, "ask for an audio file on start")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("[Main] %v", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	src := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)>>32))
	log.Printf("[Main] Seed %d", cfg.Seed)

	if *useTerm {
		if err := runTerm(cfg, src); err != nil {
			log.Fatalf("[Main] %v", err)
		}
		return
	}

	player := audio.NewPlayer(config.VisualRingSize)
	defer player.Close()
	if *audioPath != "" {
		if err := player.Load(*audioPath); err != nil {
			log.Printf("[Main] %v", err)
		}
	} else if *openDialog {
		if err := player.OpenDialog(); err != nil {
			log.Printf("[Main] %v", err)
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Portfolio FX - Open File: music, Space: Play/Pause, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Cursor.Enabled {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	g, err := game.New(cfg, src, player)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[Main] %v", err)
	}
}

func runTerm(cfg *config.Config, src *rand.Rand) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.Clear()

	// The screen owns the terminal until Fini.
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return term.New(screen, cfg, src).Run(ctx)
}
