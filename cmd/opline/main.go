package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mkellerhals/opline/internal/cli"
	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/repository"
	"github.com/mkellerhals/opline/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.opline/opline.db
	dbPath := os.Getenv("OPLINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".opline", "opline.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	procedureRepo := repository.NewSQLiteProcedureTypeRepo(database)
	surgeonRepo := repository.NewSQLiteSurgeonRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case telemetry to stderr
	var observers []service.UseCaseObserver
	if os.Getenv("OPLINE_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Milestones:  service.NewMilestoneService(milestoneRepo, uow),
		Phases:      service.NewPhaseService(phaseRepo),
		Templates:   service.NewTemplateService(templateRepo, phaseRepo, milestoneRepo, uow, observers...),
		Assignments: service.NewAssignmentService(assignmentRepo, templateRepo, procedureRepo, surgeonRepo),
		Procedures:  service.NewProcedureTypeService(procedureRepo),
		Surgeons:    service.NewSurgeonService(surgeonRepo),
	}

	// Detect interactive terminal for forms and the builder TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
