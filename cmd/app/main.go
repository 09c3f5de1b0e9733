package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/ostrem/partmatch/internal"
	"github.com/ostrem/partmatch/internal/catalog"
	"github.com/ostrem/partmatch/internal/mcpserver"
	"github.com/ostrem/partmatch/internal/reconcile"
	pkgconfig "github.com/ostrem/partmatch/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// runMCP serves the reconciliation tools over stdio. The session is
// seeded from the optional --catalog and --requests files.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	store := catalog.NewStore()
	svc := reconcile.NewService(store, nil, 0, nil)

	if path := cmd.String("catalog"); path != "" {
		c, err := loadCatalog(ctx, svc, path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if err := svc.ActivateCatalog(ctx, c.ID); err != nil {
			return err
		}
	}
	if path := cmd.String("requests"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("load requests: %w", err)
		}
		defer f.Close()
		if _, err := svc.UploadRequests(ctx, []reconcile.UploadFile{{Name: path, Body: f}}); err != nil {
			return fmt.Errorf("load requests: %w", err)
		}
	}

	return mcpserver.New(svc).ServeStdio()
}

func loadCatalog(ctx context.Context, svc *reconcile.Service, path string) (catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer f.Close()
	return svc.UploadCatalog(ctx, "", reconcile.UploadFile{Name: path, Body: f})
}

func main() {
	cmd := &cli.Command{
		Name:   "partmatch",
		Usage:  "Reconciles client part request lists against manufacturer catalogs with coverage insights and AI briefs",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve reconciliation tools over the Model Context Protocol on stdin/stdout",
				Action: runMCP,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "CSV or XLSX catalog file to load and activate",
					},
					&cli.StringFlag{
						Name:  "requests",
						Usage: "CSV or XLSX client request file to load",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
