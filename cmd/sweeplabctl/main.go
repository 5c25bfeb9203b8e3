package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sweeplab/internal/model"
	"sweeplab/internal/progress"
	"sweeplab/internal/report"
	"sweeplab/internal/simmodels"
	"sweeplab/internal/storage"
	"sweeplab/pkg/sweeplab"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "models":
		return runModels(args[1:])
	case "run":
		return runSweep(ctx, args[1:])
	case "sweeps":
		return runSweeps(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: sweeplabctl <models|run|sweeps|show|export> [flags]", msg)
}

func runModels(args []string) error {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit models as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	registry := simmodels.Builtin()
	if *jsonOut {
		type modelInfo struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		infos := make([]modelInfo, 0, len(registry.Names()))
		for _, name := range registry.Names() {
			spec, _ := registry.Lookup(name)
			infos = append(infos, modelInfo{Name: spec.Name, Description: spec.Description})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	for _, name := range registry.Names() {
		spec, _ := registry.Lookup(name)
		fmt.Printf("model=%s description=%q\n", spec.Name, spec.Description)
	}
	return nil
}

func runSweep(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "sweep spec file (yaml)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "sweeplab.db", "sqlite database path")
	csvDir := fs.String("csv-dir", "", "optional directory for model.csv/agent.csv")
	quiet := fs.Bool("quiet", false, "suppress per-run progress lines")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*configPath) == "" {
		return errors.New("run requires --config")
	}

	spec, err := loadSweepSpec(*configPath)
	if err != nil {
		return err
	}
	modelSpec, ok := simmodels.Builtin().Lookup(spec.Model)
	if !ok {
		return fmt.Errorf("%w: %s", simmodels.ErrModelNotFound, spec.Model)
	}
	space, err := spec.space()
	if err != nil {
		return err
	}

	var reporter progress.Reporter = progress.Noop{}
	if !*quiet {
		reporter = progress.NewPrinter(os.Stdout)
	}
	runner, err := sweeplab.NewRunner(sweeplab.Config{
		Space:                      space,
		Fixed:                      spec.Fixed,
		NewConfig:                  modelSpec.NewConfig,
		Build:                      modelSpec.Build,
		Iterations:                 spec.Iterations,
		MaxSteps:                   spec.MaxSteps,
		ModelReporters:             modelSpec.ModelReporters,
		AgentReporters:             modelSpec.AgentReporters,
		Progress:                   reporter,
		ShareModelAcrossIterations: spec.ShareModel,
	})
	if err != nil {
		return err
	}

	sweepID := strings.TrimSpace(spec.ID)
	if sweepID == "" {
		sweepID = uuid.NewString()
	}
	startedAt := time.Now().UTC().Format(time.RFC3339Nano)

	res, runErr := runner.RunAll(ctx)
	if runErr != nil {
		return fmt.Errorf("sweep %s: %w", sweepID, runErr)
	}

	modelTable := sweeplab.ModelTable(res)
	agentTable := sweeplab.AgentTable(res)

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	summary := model.SweepSummary{
		VersionedRecord: storage.Stamp(),
		ID:              sweepID,
		Model:           spec.Model,
		ParamNames:      space.Names(),
		Configurations:  len(space.Expand()),
		Iterations:      runner.Iterations(),
		MaxSteps:        runner.MaxSteps(),
		Runs:            res.RunCount(),
		StartedAtUTC:    startedAt,
		CompletedAtUTC:  time.Now().UTC().Format(time.RFC3339Nano),
		Notes:           spec.Notes,
	}
	if err := store.SaveSweep(ctx, summary); err != nil {
		return err
	}
	for name, table := range map[string]sweeplab.Table{"model": modelTable, "agent": agentTable} {
		err := store.SaveTable(ctx, model.ReportTable{
			VersionedRecord: storage.Stamp(),
			SweepID:         sweepID,
			Name:            name,
			Columns:         table.Columns,
			Rows:            table.Rows,
		})
		if err != nil {
			return err
		}
	}

	if dir := strings.TrimSpace(*csvDir); dir != "" {
		if err := writeCSVFile(filepath.Join(dir, "model.csv"), modelTable); err != nil {
			return err
		}
		if err := writeCSVFile(filepath.Join(dir, "agent.csv"), agentTable); err != nil {
			return err
		}
	}

	fmt.Printf("sweep id=%s model=%s configurations=%d iterations=%d runs=%d\n",
		sweepID,
		spec.Model,
		summary.Configurations,
		summary.Iterations,
		summary.Runs,
	)
	return nil
}

func runSweeps(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sweeps", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "sweeplab.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit sweeps as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	sweeps, err := store.ListSweeps(ctx)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sweeps)
	}
	if len(sweeps) == 0 {
		fmt.Println("no sweeps")
		return nil
	}
	for _, summary := range sweeps {
		fmt.Printf("id=%s model=%s configurations=%d iterations=%d runs=%d started=%s\n",
			summary.ID,
			summary.Model,
			summary.Configurations,
			summary.Iterations,
			summary.Runs,
			summary.StartedAtUTC,
		)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	id := fs.String("id", "", "sweep id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "sweeplab.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit sweep as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return errors.New("show requires --id")
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	summary, ok, err := store.GetSweep(ctx, strings.TrimSpace(*id))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("sweep not found: %s", strings.TrimSpace(*id))
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("id=%s model=%s params=%s configurations=%d iterations=%d runs=%d started=%s completed=%s\n",
		summary.ID,
		summary.Model,
		strings.Join(summary.ParamNames, ","),
		summary.Configurations,
		summary.Iterations,
		summary.Runs,
		summary.StartedAtUTC,
		summary.CompletedAtUTC,
	)
	for _, name := range []string{"model", "agent"} {
		stored, ok, err := store.GetTable(ctx, summary.ID, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		fmt.Printf("table=%s columns=%d rows=%d\n", name, len(stored.Columns), len(stored.Rows))
		table := sweeplab.Table{Columns: stored.Columns, Rows: stored.Rows}
		for _, col := range report.Summarize(table) {
			fmt.Printf("table=%s column=%s count=%d mean=%g std=%g min=%g max=%g\n",
				name, col.Column, col.Count, col.Mean, col.Std, col.Min, col.Max)
		}
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	id := fs.String("id", "", "sweep id")
	tableName := fs.String("table", "model", "table to export: model|agent")
	outPath := fs.String("out", "", "output file path")
	format := fs.String("format", "csv", "output format: csv|json")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "sweeplab.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return errors.New("export requires --id")
	}
	if strings.TrimSpace(*outPath) == "" {
		return errors.New("export requires --out")
	}
	if *tableName != "model" && *tableName != "agent" {
		return fmt.Errorf("unknown table: %s", *tableName)
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	stored, ok, err := store.GetTable(ctx, strings.TrimSpace(*id), *tableName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("table %s not found for sweep: %s", *tableName, strings.TrimSpace(*id))
	}
	table := sweeplab.Table{Columns: stored.Columns, Rows: stored.Rows}

	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "csv":
		if err := writeCSVFile(filepath.Clean(*outPath), table); err != nil {
			return err
		}
	case "json":
		if err := report.WriteTableFile(filepath.Clean(*outPath), table); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format: %s", *format)
	}

	fmt.Printf("export sweep=%s table=%s format=%s file=%s rows=%d\n",
		strings.TrimSpace(*id),
		*tableName,
		strings.ToLower(strings.TrimSpace(*format)),
		filepath.Clean(*outPath),
		len(table.Rows),
	)
	return nil
}

func writeCSVFile(path string, table sweeplab.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := table.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
