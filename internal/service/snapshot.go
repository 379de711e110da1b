package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
)

const manifestFile = "manifest.json"

// Manifest identifies one exported snapshot.
type Manifest struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"created_at"`
	Kinds     []string `json:"kinds"`
}

// SerializationError wraps a per-kind snapshot failure so the caller can see
// which file broke without losing the underlying cause.
type SerializationError struct {
	Kind string
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("snapshot %s (%s): %v", e.Kind, e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// KindResult reports the outcome of importing one entity kind.
type KindResult struct {
	Kind     string
	Imported int
	Err      error
}

// SnapshotService exports the whole ledger to one JSON file per entity kind
// and restores it with destructive per-kind replace. Identifiers are not
// preserved across a round-trip; the store reassigns them on insert.
type SnapshotService struct {
	DB *sql.DB

	Accounts      *repository.AccountRepo
	Expenses      *repository.ExpenseRepo
	Incomes       *repository.IncomeRepo
	Goals         *repository.GoalRepo
	Commitments   *repository.CommitmentRepo
	Investments   *repository.InvestmentRepo
	Budgets       *repository.BudgetRepo
	Categories    *repository.CategoryRepo
	Notifications *repository.NotificationRepo

	// Now stamps the manifest. Nil means time.Now.
	Now func() time.Time
}

func (s *SnapshotService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SnapshotService) kinds() []snapshotKind {
	return []snapshotKind{
		jsonKind(s, "accounts", s.Accounts.List, s.Accounts.Create),
		jsonKind(s, "expenses", s.Expenses.List, s.Expenses.Create),
		jsonKind(s, "incomes", s.Incomes.List, s.Incomes.Create),
		jsonKind(s, "goals", s.Goals.List, s.Goals.Create),
		jsonKind(s, "commitments", s.Commitments.List, s.Commitments.Create),
		jsonKind(s, "investments", s.Investments.List, s.Investments.Create),
		jsonKind(s, "budgets", s.Budgets.List, s.Budgets.Create),
		jsonKind(s, "categories", s.Categories.List, s.Categories.Create),
		jsonKind(s, "notifications", s.Notifications.List, s.Notifications.Create),
	}
}

// snapshotKind binds one entity kind to its export and import closures.
type snapshotKind struct {
	name    string
	export  func(ctx context.Context, path string) error
	restore func(ctx context.Context, path string) (int, error)
}

// jsonKind adapts a repo's List/Create pair to file-level export and
// destructive-replace restore. The kind name doubles as the table name.
func jsonKind[T any](s *SnapshotService, name string,
	list func(context.Context) ([]T, error),
	create func(context.Context, T) (int64, error)) snapshotKind {
	return snapshotKind{
		name: name,
		export: func(ctx context.Context, path string) error {
			rows, err := list(ctx)
			if err != nil {
				return err
			}
			if rows == nil {
				rows = []T{}
			}
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(path, data, 0o644)
		},
		restore: func(ctx context.Context, path string) (int, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return 0, err
			}
			var rows []T
			if err := json.Unmarshal(data, &rows); err != nil {
				return 0, err
			}
			if _, err := s.DB.ExecContext(ctx, "DELETE FROM "+name); err != nil {
				return 0, err
			}
			for i, row := range rows {
				if _, err := create(ctx, row); err != nil {
					return i, err
				}
			}
			return len(rows), nil
		},
	}
}

// Export writes every entity kind plus a manifest into dir, creating it if
// needed. Any failure aborts the export.
func (s *SnapshotService) Export(ctx context.Context, dir string) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	kinds := s.kinds()
	m := Manifest{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	for _, k := range kinds {
		path := filepath.Join(dir, k.name+".json")
		if err := k.export(ctx, path); err != nil {
			return nil, &SerializationError{Kind: k.name, Path: path, Err: err}
		}
		m.Kinds = append(m.Kinds, k.name)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644); err != nil {
		return nil, err
	}
	return &m, nil
}

// Import restores every entity kind whose file exists in dir. A missing dir
// fails the whole import; a broken or invalid file only fails its own kind,
// so one corrupt file does not block recovery of the rest. Existing rows of
// each restored kind are deleted first.
func (s *SnapshotService) Import(ctx context.Context, dir string) ([]KindResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("snapshot source: %w", err)
	}
	var results []KindResult
	for _, k := range s.kinds() {
		path := filepath.Join(dir, k.name+".json")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		n, err := k.restore(ctx, path)
		if err != nil {
			err = &SerializationError{Kind: k.name, Path: path, Err: err}
		}
		results = append(results, KindResult{Kind: k.name, Imported: n, Err: err})
	}
	return results, nil
}
