package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/streampick/internal/adapter"
	"github.com/mmcdole/streampick/internal/config"
	"github.com/mmcdole/streampick/internal/controller"
	"github.com/mmcdole/streampick/internal/domain"
	"github.com/mmcdole/streampick/internal/log"
	"github.com/mmcdole/streampick/internal/recommend"
	"github.com/mmcdole/streampick/internal/service"
	"github.com/mmcdole/streampick/internal/store"
	"github.com/mmcdole/streampick/internal/tui"
	"github.com/mmcdole/streampick/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                              \r"

// flags holds command-line options
type flags struct {
	configPath string
	movie      string
	k          int
	once       bool
	setup      bool
}

func main() {
	var showVersion bool
	var f flags
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&f.configPath, "config", "", "path to config file")
	flag.StringVar(&f.movie, "movie", "", "title to search on startup")
	flag.IntVar(&f.k, "k", 0, "number of recommendations")
	flag.BoolVar(&f.once, "once", false, "print one search and exit")
	flag.BoolVar(&f.setup, "setup", false, "configure the recommendation server")
	flag.Parse()

	if showVersion {
		fmt.Printf("streampick %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting streampick", "version", Version, "server", cfg.Server.URL)

	if f.setup {
		return runSetupFlow(cfg, logger)
	}

	client := recommend.NewClient(cfg.Server.URL, cfg.Server.Timeout, logger)
	checkHealth(client, logger)

	history, closeHistory := openHistory(cfg, logger)
	defer closeHistory()

	// A nil *HistoryService must not become a non-nil Recorder
	var recorder controller.Recorder
	if history != nil {
		recorder = history
	}
	ctrl := controller.New(client, recorder, logger)

	title := cfg.Search.DefaultTitle
	if f.movie != "" {
		title = f.movie
	}
	if f.k > 0 {
		// Validate adds a k missing from the choices
		cfg.Search.DefaultK = f.k
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid -k: %w", err)
		}
	}
	k := cfg.Search.DefaultK

	if f.once || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runOnce(ctrl, title, k, os.Stdout)
	}

	model := tui.NewModel(ctrl, history, adapter.NewLauncher(cfg.UI.Opener, logger), tui.Options{
		DefaultTitle: title,
		DefaultK:     k,
		KChoices:     cfg.Search.KChoices,
		CardWidth:    cfg.UI.CardWidth,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	return config.LoadConfig()
}

// openHistory opens the history store, falling back to memory when the
// database cannot be opened (e.g. locked by another instance)
func openHistory(cfg *config.Config, logger *slog.Logger) (*service.HistoryService, func()) {
	if !cfg.History.Enabled {
		return nil, func() {}
	}

	hs, err := store.NewHistoryStore(cfg.History.Dir, cfg.Server.URL, cfg.History.MaxEntries)
	if err != nil {
		logger.Warn("history unavailable, keeping it in memory", "dir", cfg.History.Dir, "error", err)
		hs, _ = store.NewHistoryStore("", "", cfg.History.MaxEntries)
	}
	return service.NewHistoryService(hs, logger), func() {
		if err := hs.Close(); err != nil {
			logger.Warn("failed to close history", "error", err)
		}
	}
}

// checkHealth logs whether the service answers; searches still run either way
func checkHealth(client *recommend.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Health(ctx); err != nil {
		logger.Warn("recommendation service health check failed", "error", err)
		return
	}
	logger.Info("recommendation service is healthy")
}

// runOnce performs a single search and prints the rendered view as text
func runOnce(ctrl *controller.Controller, title string, k int, w io.Writer) error {
	if err := ctrl.Search(context.Background(), title, k); err != nil {
		return err
	}

	fmt.Fprint(w, ctrl.View().Text())

	if state := ctrl.State(); state.Result.IsFailure() {
		return fmt.Errorf("search failed: %s", state.Result.Message)
	}
	return nil
}

// runSetupFlow prompts for the server URL and saves it once it answers
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to StreamPick!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Enter the recommendation API URL [%s]: ", cfg.Server.URL)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL := strings.TrimSpace(input)
		if serverURL == "" {
			serverURL = cfg.Server.URL
		}

		fmt.Println()
		client := recommend.NewClient(serverURL, cfg.Server.Timeout, logger)
		if err := checkWithSpinner(client); err != nil {
			fmt.Printf("\n✗ Server did not respond: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}

		cfg.Server.URL = serverURL
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run streampick again to start the application.")
	return nil
}

// checkWithSpinner runs the health check with a visual spinner
func checkWithSpinner(client *recommend.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- client.Health(ctx)
	}()

	frame := 0
	fmt.Printf("\r%s Contacting server...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Server is up")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Contacting server...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("%w: timed out", domain.ErrServerOffline)
		}
	}
}
