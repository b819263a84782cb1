package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/tienda/internal/config"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
	migrations "github.com/dropDatabas3/tienda/migrations/postgres"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.example.yaml", "Path to YAML config")
		dir        = flag.String("dir", "", "Migrations directory override; default uses embedded migrations")
	)
	flag.Parse()

	// Positional args: [action] [steps]
	action := "up"
	steps := 0
	args := flag.Args()
	if len(args) >= 1 && args[0] != "" {
		action = strings.ToLower(args[0])
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			steps = n
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.S().Fatalf("config load: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		logger.S().Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	var fsys fs.FS = migrations.FS
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}

	switch action {
	case "up":
		files, err := listSQL(fsys, "_up.sql")
		if err != nil {
			logger.S().Fatalf("list up: %v", err)
		}
		if len(files) == 0 {
			logger.S().Info("no *_up.sql migrations found, nothing to do")
			return
		}
		sort.Strings(files) // apply in ascending order
		if steps > 0 && steps < len(files) {
			files = files[:steps]
		}
		logger.S().Infof("applying %d up migration(s)", len(files))
		for _, f := range files {
			if err := execSQLFile(ctx, pool, fsys, f); err != nil {
				logger.S().Fatalf("exec %s: %v", f, err)
			}
		}
		logger.S().Info("up migrations completed")

	case "down":
		files, err := listSQL(fsys, "_down.sql")
		if err != nil {
			logger.S().Fatalf("list down: %v", err)
		}
		if len(files) == 0 {
			logger.S().Info("no *_down.sql migrations found, nothing to do")
			return
		}
		sort.Strings(files)   // ascending
		reverseInPlace(files) // run in reverse
		if steps > 0 && steps < len(files) {
			files = files[:steps] // only N most-recent downs
		}
		logger.S().Infof("applying %d down migration(s)", len(files))
		for _, f := range files {
			if err := execSQLFile(ctx, pool, fsys, f); err != nil {
				logger.S().Fatalf("exec %s: %v", f, err)
			}
		}
		logger.S().Info("down migrations completed")

	default:
		logger.S().Fatalf("unknown action %q. Use: up | down [steps]", action)
	}
}

func listSQL(fsys fs.FS, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			name := e.Name()
			if strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix)) {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func reverseInPlace(ss []string) {
	for i, j := 0, len(ss)-1; i < j; i, j = i+1, j-1 {
		ss[i], ss[j] = ss[j], ss[i]
	}
}

func execSQLFile(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, name string) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	start := time.Now()
	if _, err := pool.Exec(ctx, string(b)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	logger.S().Infof("ok %s (%s)", filepath.Base(name), time.Since(start).Truncate(time.Millisecond))
	return nil
}
