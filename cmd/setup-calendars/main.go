// Command setup-calendars provisions Google calendars for employees that
// do not have one yet. Normally the dispatch pipeline provisions lazily on
// the first appointment; this command front-loads the work.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/devsign-cl/appointment-service/internal/config"
	"github.com/devsign-cl/appointment-service/internal/domain"
	employeeRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/employee"
	"github.com/devsign-cl/appointment-service/internal/integrations/googlecalendar"
	"github.com/devsign-cl/appointment-service/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "path to the configuration file")
		employeeID = flag.Int64("employee-id", 0, "provision a single employee instead of all")
		force      = flag.Bool("force", false, "re-provision employees that already have a calendar")
		dryRun     = flag.Bool("dry-run", false, "list what would be provisioned without calling the API")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if !cfg.GoogleCalendar.Enabled {
		fmt.Println("Google Calendar sync is disabled in the configuration")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	employees := employeeRepo.NewRepository(db)
	calendar := googlecalendar.NewClient(
		cfg.GoogleCalendar.BaseURL,
		cfg.GoogleCalendar.AccessToken,
		cfg.Business.Timezone,
		time.Duration(cfg.GoogleCalendar.Timeout)*time.Second,
		log,
	)

	ctx := context.Background()

	targets, err := collectTargets(ctx, employees, *employeeID, *force)
	if err != nil {
		log.Fatal("Failed to list employees: %v", err)
	}

	if len(targets) == 0 {
		fmt.Println("Nothing to do: every employee already has a calendar")
		return
	}

	var provisioned, failed int
	for _, employee := range targets {
		if *dryRun {
			fmt.Printf("[dry-run] would provision calendar for %s (id=%d)\n", employee.FullName(), employee.ID)
			continue
		}

		calendarID, err := calendar.CreateEmployeeCalendar(ctx, employee.FullName(), employee.Email)
		if err != nil {
			log.Error("setup-calendars: failed to provision employee id=%d: %v", employee.ID, err)
			fmt.Printf("FAILED %s (id=%d): %v\n", employee.FullName(), employee.ID, err)
			failed++
			continue
		}

		if err := employees.UpdateCalendarID(ctx, employee.ID, calendarID); err != nil {
			log.Error("setup-calendars: failed to store calendar id for employee id=%d: %v", employee.ID, err)
			fmt.Printf("FAILED %s (id=%d): calendar created but not stored: %v\n", employee.FullName(), employee.ID, err)
			failed++
			continue
		}

		fmt.Printf("OK %s (id=%d) -> %s\n", employee.FullName(), employee.ID, calendarID)
		provisioned++
	}

	if *dryRun {
		fmt.Printf("\n%d employee(s) would be provisioned\n", len(targets))
		return
	}

	fmt.Printf("\nDone: %d provisioned, %d failed\n", provisioned, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func collectTargets(ctx context.Context, employees *employeeRepo.Repository, employeeID int64, force bool) ([]*domain.Employee, error) {
	if employeeID > 0 {
		employee, err := employees.GetByID(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if employee.HasCalendar() && !force {
			return nil, nil
		}
		return []*domain.Employee{employee}, nil
	}

	if force {
		return employees.ListActive(ctx)
	}
	return employees.ListWithoutCalendar(ctx)
}
