package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/zenith-shmup/internal/game"
	"github.com/Garsondee/zenith-shmup/internal/sim"
	"github.com/Garsondee/zenith-shmup/internal/store"
)

func main() {
	var difficulty string
	var configPath string
	var savesDir string
	var seed int64

	flag.StringVar(&difficulty, "difficulty", "standard", "goober, standard, ultra-violence or not-when-how")
	flag.StringVar(&configPath, "config", "", "optional YAML tuning file overlaying the defaults")
	flag.StringVar(&savesDir, "saves", defaultSavesDir(), "directory for the high score and stats files")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = clock)")
	flag.Parse()

	logger := store.NewLogger("main")

	cfg := sim.DefaultConfig()
	if d, err := sim.ParseDifficulty(difficulty); err != nil {
		logger.Warn("unknown difficulty, using standard", "difficulty", difficulty, "err", err)
	} else {
		cfg = cfg.WithDifficulty(d)
	}
	if configPath != "" {
		loaded, err := sim.LoadConfigFile(configPath, cfg)
		if err != nil {
			logger.Warn("tuning file ignored", "path", configPath, "err", err)
		} else {
			cfg = loaded
		}
	}

	g := game.New(game.Options{
		Config: cfg,
		Seed:   seed,
		Store:  store.New(savesDir, store.NewLogger("store")),
		Logger: store.NewLogger("game"),
	})

	ebiten.SetWindowTitle("Zenith")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func defaultSavesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "saves"
	}
	return filepath.Join(dir, "zenith-shmup")
}
