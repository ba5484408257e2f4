package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	arcadeinadapter "wellquest/internal/modules/arcade/adapter/in"
	arcadeoutadapter "wellquest/internal/modules/arcade/adapter/out"
	arcadein "wellquest/internal/modules/arcade/port/in"
	arcadeservice "wellquest/internal/modules/arcade/service"
	arcadeusecase "wellquest/internal/modules/arcade/usecase"
	cataloginadapter "wellquest/internal/modules/catalog/adapter/in"
	catalogoutadapter "wellquest/internal/modules/catalog/adapter/out"
	catalogservice "wellquest/internal/modules/catalog/service"
	catalogusecase "wellquest/internal/modules/catalog/usecase"
	coachinadapter "wellquest/internal/modules/coach/adapter/in"
	coachoutadapter "wellquest/internal/modules/coach/adapter/out"
	coachin "wellquest/internal/modules/coach/port/in"
	coachservice "wellquest/internal/modules/coach/service"
	coachusecase "wellquest/internal/modules/coach/usecase"
	progressinadapter "wellquest/internal/modules/progress/adapter/in"
	progressoutadapter "wellquest/internal/modules/progress/adapter/out"
	progressdomain "wellquest/internal/modules/progress/domain"
	progressin "wellquest/internal/modules/progress/port/in"
	progressservice "wellquest/internal/modules/progress/service"
	progressusecase "wellquest/internal/modules/progress/usecase"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/config"
	"wellquest/internal/platform/id"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
	uiapp "wellquest/internal/ui/app"
)

type App struct {
	CatalogCLI  cataloginadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	ArcadeCLI   arcadeinadapter.CLIHandler
	CoachCLI    coachinadapter.CLIHandler

	// The TUI drives the full use-case surfaces directly.
	Arcade   arcadein.Usecase
	Progress progressin.Usecase
	Coach    coachin.Usecase
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	rng := random.System()

	catalogSvc := catalogservice.NewCatalogService(catalogoutadapter.NewYAMLPackStore(cfg.DataPath))
	catalog := catalogSvc.Build(context.Background())
	catalogUC := catalogusecase.NewInteractor(catalog)

	history, err := progressoutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	engine := progressdomain.NewEngine(catalog, cfg.Settings.PointsPerLevel)
	progressSvc := progressservice.NewProgressService(engine, clk, ids,
		progressoutadapter.NewFileProfileStore(cfg.DataPath), history)
	progressUC := progressusecase.NewInteractor(progressSvc, cfg.Settings.DailyReward)

	host := loop.New(clk.Now())
	manager := arcadeservice.NewSessionManager(catalog, progressUC, host, clk, rng,
		arcadeoutadapter.NewTerminalAudio(os.Stdout))
	arcadeUC := arcadeusecase.NewInteractor(manager)

	coachBase := filepath.Join(cfg.DataPath, ".wellquest")
	logger := hclog.New(&hclog.LoggerOptions{Name: "wellquest", Output: os.Stderr, Level: hclog.Warn})
	coachSvc := coachservice.NewCoachService(
		coachoutadapter.NewFileManifestStore(coachBase),
		coachoutadapter.NewGRPCHost(),
		rng,
		logger,
	)
	coachUC := coachusecase.NewInteractor(coachSvc)

	return &App{
		CatalogCLI:  cataloginadapter.NewCLIHandler(catalogUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		ArcadeCLI:   arcadeinadapter.NewCLIHandler(arcadeUC),
		CoachCLI:    coachinadapter.NewCLIHandler(coachUC),
		Arcade:      arcadeUC,
		Progress:    progressUC,
		Coach:       coachUC,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Arcade, app.Progress, app.Coach)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
