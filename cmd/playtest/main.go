// Command playtest drives a game session against a running server through
// the client sync engine. Commands are read line by line from stdin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/osse101/PixelFarm_Go/internal/client"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/syncengine"
)

type playtestConfig struct {
	BaseURL         string        `env:"PLAYTEST_BASE_URL" envDefault:"http://localhost:8080"`
	APIKey          string        `env:"PLAYTEST_API_KEY"`
	UserID          string        `env:"PLAYTEST_USER_ID"`
	UserName        string        `env:"PLAYTEST_USER_NAME" envDefault:"Playtester"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	AutosaveTimeout time.Duration `env:"AUTOSAVE_TIMEOUT" envDefault:"15s"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "playtest: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[playtestConfig]()
	if err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.UserID == "" {
		cfg.UserID = uuid.NewString()
	}

	log := logger.InitLoggerWithWriter(
		logger.NewConfig(cfg.LogLevel, "text", "playtest", "dev", "dev", false),
		os.Stderr,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.BaseURL, client.WithAPIKey(cfg.APIKey))

	if _, err := api.CreateNewUser(ctx, cfg.UserID, cfg.UserName); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	gs, err := api.GetGameState(ctx, cfg.UserID)
	if err != nil {
		return fmt.Errorf("loading game state: %w", err)
	}

	engine := syncengine.New(cfg.UserID, api,
		syncengine.WithAutosaveTimeout(cfg.AutosaveTimeout),
		syncengine.WithLogger(log),
	)
	defer engine.Close()
	engine.Initialize(gs)

	updates, cancel := engine.Store().Subscribe()
	defer cancel()
	go func() {
		for st := range updates {
			reportState(st)
		}
	}()

	log.Info("Playtest session started", "user_id", cfg.UserID, "base_url", cfg.BaseURL)
	printHelp()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return flush(engine)
		case line, ok := <-lines:
			if !ok {
				return flush(engine)
			}
			cmd, err := parseCommand(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if cmd.kind == cmdQuit {
				return flush(engine)
			}
			apply(engine, cmd)
		}
	}
}

func apply(engine *syncengine.Engine, cmd command) {
	switch cmd.kind {
	case cmdPlant:
		engine.PlantSeed(cmd.args[0], cmd.args[1])
	case cmdHarvest:
		engine.HarvestCrop(cmd.args[0])
	case cmdBuy:
		engine.BuyItem(cmd.itemCode, cmd.itemType, cmd.quantity)
	case cmdSell:
		engine.SellItem(cmd.itemCode, cmd.itemType, cmd.quantity)
	case cmdUnlock:
		engine.UnlockPlot(cmd.args[0])
	case cmdSync:
		engine.SyncNow()
	case cmdState:
		printState(engine.State())
	case cmdHelp:
		printHelp()
	}
}

// flush pushes any queued actions before exit
func flush(engine *syncengine.Engine) error {
	engine.SyncNow()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		st := engine.State()
		if st.Phase == syncengine.PhaseError {
			return fmt.Errorf("final autosave failed: %s", st.Error)
		}
		if st.Phase == syncengine.PhasePlaying && len(st.Queue) == 0 {
			return nil
		}
		if st.Phase == syncengine.PhaseAccumulating {
			engine.SyncNow()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for final autosave")
}

func reportState(st syncengine.State) {
	slog.Debug("Sync state changed", "phase", st.Phase, "queued", len(st.Queue))
	for _, c := range st.Conflicts {
		fmt.Printf("! %s rejected: %s\n", c.ActionID, c.Reason)
	}
}

func printState(st syncengine.State) {
	fmt.Printf("phase=%s queued=%d last_synced=%s\n",
		st.Phase, len(st.Queue), time.UnixMilli(st.LastSyncedAt).Format(time.TimeOnly))
	if st.Error != "" {
		fmt.Printf("error: %s\n", st.Error)
	}
	gs := st.GameState
	if gs == nil || gs.User == nil {
		return
	}
	fmt.Printf("coins=%d level=%d exp=%d\n", gs.User.Coin, gs.User.Level, gs.User.Exp)
	for _, item := range gs.Inventory {
		fmt.Printf("  %s %s x%d\n", item.ItemType, item.ItemCode, item.Quantity)
	}
	for _, p := range gs.Farm.Plots {
		status := "locked"
		if p.IsUnlocked {
			status = "empty"
		}
		if p.Crop != nil {
			status = fmt.Sprintf("%s (%s) crop=%s", p.Crop.SeedCode, p.Crop.Status, p.Crop.ID)
		}
		fmt.Printf("  plot %d %s: %s\n", p.PlotNumber, p.ID, status)
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  plant <plotId> <seedCode>")
	fmt.Println("  harvest <cropId>")
	fmt.Println("  buy <seed|animal> <code> <qty>")
	fmt.Println("  sell <seed|animal> <code> <qty>")
	fmt.Println("  unlock <plotId>")
	fmt.Println("  sync    autosave now")
	fmt.Println("  state   print the current game state")
	fmt.Println("  quit    flush and exit")
}
