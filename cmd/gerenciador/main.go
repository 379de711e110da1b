package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/config"
	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database"
	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/llm"
	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	// Legacy copy failures must not block startup; the old tables stay put
	// and the copy retries on the next run.
	if err := database.MigrateLegacy(ctx, db); err != nil {
		slog.Warn("legacy migration", "err", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	// repositories
	incomeRepo := repository.NewIncomeRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	commitRepo := repository.NewCommitmentRepo(db)
	goalRepo := repository.NewGoalRepo(db)

	snapshots := &service.SnapshotService{
		DB:            db,
		Accounts:      repository.NewAccountRepo(db),
		Expenses:      expenseRepo,
		Incomes:       incomeRepo,
		Goals:         goalRepo,
		Commitments:   commitRepo,
		Investments:   repository.NewInvestmentRepo(db),
		Budgets:       repository.NewBudgetRepo(db),
		Categories:    repository.NewCategoryRepo(db),
		Notifications: repository.NewNotificationRepo(db),
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			m, err := snapshots.Export(ctx, cfg.Snapshot.Dir)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Printf("snapshot %s gravado em %s\n", m.ID, cfg.Snapshot.Dir)
			return nil
		case "import":
			results, err := snapshots.Import(ctx, cfg.Snapshot.Dir)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			for _, r := range results {
				if r.Err != nil {
					slog.Warn("import", "kind", r.Kind, "err", r.Err)
					continue
				}
				fmt.Printf("%s: %d registros\n", r.Kind, r.Imported)
			}
			return nil
		default:
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	// services
	budget := &service.BudgetService{
		Incomes: incomeRepo, Expenses: expenseRepo, Commitments: commitRepo, Goals: goalRepo,
	}
	forecaster := &service.ForecastService{
		Incomes: incomeRepo, Expenses: expenseRepo, Commitments: commitRepo,
	}
	insights := &service.InsightsService{Budget: budget, Goals: goalRepo, Advisor: advisor(ctx, cfg)}

	created, err := budget.EnsureAutoGoal(ctx)
	if err != nil {
		return fmt.Errorf("auto goal: %w", err)
	}
	if created {
		slog.Info("reserve goal suggested")
	}

	c, err := budget.Classify(ctx)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	fmt.Printf("Receitas: R$ %s  Despesas: R$ %s  Poupança: R$ %s\n",
		c.TotalIncome.StringFixed(2), c.TotalExpenses.StringFixed(2), c.Savings.StringFixed(2))
	fmt.Printf("Necessidades %s%%  Desejos %s%%  Poupança %s%%\n",
		c.NeedsPct.StringFixed(1), c.WantsPct.StringFixed(1), c.SavingsPct.StringFixed(1))
	if c.Advisory != "" {
		fmt.Println(c.Advisory)
	}

	months, err := forecaster.Forecast(ctx, 3)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	for _, m := range months {
		fmt.Printf("%02d/%d  saldo projetado R$ %s\n", m.Month, m.Year, m.Balance.StringFixed(2))
	}

	if insights.Advisor != nil {
		advice, err := insights.Advise(ctx)
		if err != nil {
			slog.Warn("insights", "err", err)
		} else {
			fmt.Println(advice)
		}
	}
	return nil
}

// advisor wires the configured LLM provider, or nil when no key is available.
func advisor(ctx context.Context, cfg config.Config) llm.Advisor {
	key := cfg.LLM.ResolveAPIKey()
	if key == "" {
		return nil
	}
	a, err := llm.NewGeminiAdvisor(ctx, key, cfg.LLM.Model)
	if err != nil {
		slog.Warn("llm provider", "err", err)
		return nil
	}
	return a
}
