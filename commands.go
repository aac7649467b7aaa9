package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/billie-coop/vitrine/internal/api"
	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/config"
	"github.com/billie-coop/vitrine/internal/filter"
	"github.com/billie-coop/vitrine/internal/logging"
	"github.com/billie-coop/vitrine/internal/plain"
	"github.com/billie-coop/vitrine/internal/state"
	"github.com/billie-coop/vitrine/internal/tui"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/urfave/cli/v3"
)

// settings is the configuration after flags are applied.
type settings struct {
	manager *config.Manager
	cfg     config.Config
}

func loadSettings(cmd *cli.Command) (*settings, error) {
	m := config.NewManager(cmd.String("config"))
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := *m.Get()
	if cmd.IsSet("api") {
		cfg.APIURL = cmd.String("api")
	}
	if cmd.IsSet("delay") && cmd.Duration("delay") > 0 {
		cfg.FilterDelayMS = int(cmd.Duration("delay").Milliseconds())
	}
	if cmd.IsSet("theme") {
		cfg.Theme = cmd.String("theme")
	}
	if cmd.Bool("debug") {
		cfg.Debug = true
	}
	return &settings{manager: m, cfg: cfg}, nil
}

// stderrLogger is used by the commands that print to stdout.
func stderrLogger(debug bool) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.Level(debug),
		Format: "text",
		Output: os.Stderr,
	})
}

// runAction starts the TUI, or line mode when stdout is not a terminal.
func runAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if !plain.IsTerminal(os.Stdout) {
		return runPlain(ctx, s)
	}

	logger, closer, err := logging.NewFile(s.manager.LogPath(), s.cfg.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	client := api.NewClient(s.cfg.APIURL, api.WithLogger(logger))
	logger.Info("starting vitrine", "api", client.BaseURL(), "route", cmd.String("route"))

	model := tui.New(tui.Options{
		API:         client,
		Drafts:      state.NewDrafts(s.manager.Dir()),
		BaseURL:     client.BaseURL(),
		FilterDelay: s.cfg.FilterDelay(),
		Logger:      logger,
		StartPath:   cmd.String("route"),
		Theme:       s.cfg.Theme,
		SaveTheme: func(name string) error {
			return s.manager.Set("theme", name)
		},
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func runPlain(ctx context.Context, s *settings) error {
	logger := stderrLogger(s.cfg.Debug)
	client := api.NewClient(s.cfg.APIURL, api.WithLogger(logger))

	fmt.Fprintln(os.Stdout, plain.MsgLoading)
	products, err := client.ListProducts(ctx)
	if err != nil {
		return err
	}

	runner := plain.NewRunner(os.Stdin, os.Stdout, s.cfg.FilterDelay(), plain.WithLogger(logger))
	return runner.Run(ctx, products)
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	client := api.NewClient(s.cfg.APIURL, api.WithLogger(stderrLogger(s.cfg.Debug)))

	products, err := client.ListProducts(ctx)
	if err != nil {
		return err
	}

	// No typing to wait for: the code is committed at once.
	ctrl := filter.New()
	ctrl.SetProducts(products)
	if code := cmd.String("code"); code != "" {
		ctrl.Settle(ctrl.SetFilterText(code))
	}
	return plain.Render(os.Stdout, ctrl.Snapshot())
}

func addAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := stderrLogger(s.cfg.Debug)
	client := api.NewClient(s.cfg.APIURL, api.WithLogger(logger))

	draft, err := catalog.ParseDraft(map[string]string{
		catalog.FieldName:        cmd.String("name"),
		catalog.FieldDescription: cmd.String("description"),
		catalog.FieldPrice:       cmd.String("price"),
		catalog.FieldCategory:    cmd.String("category"),
		catalog.FieldPictureURL:  cmd.String("picture-url"),
	})
	if err != nil {
		return err
	}

	product, err := client.CreateProduct(ctx, draft)
	if err != nil {
		return fmt.Errorf("erro ao adicionar produto: %w", err)
	}

	logger.Info("product created", "id", product.ID)
	fmt.Fprintf(os.Stdout, "✓ %s\n", plain.Line(product))
	return nil
}

func configShowAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s.cfg)
}

func configSetAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("usage: vitrine config set KEY VALUE")
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	key, value := cmd.Args().Get(0), cmd.Args().Get(1)
	if err := s.manager.Set(key, value); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s = %s\n", key, value)
	return nil
}
