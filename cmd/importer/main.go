// Command importer loads insurance cases or document verifications from a CSV file.
//
//	importer -type insurance-cases -file cases.csv
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"emiverify/internal/config"
	"emiverify/internal/logger"
	"emiverify/internal/repositories"
	"emiverify/internal/repositories/cache"
	"emiverify/internal/services/importer"
	"emiverify/internal/services/insurance"
	"emiverify/internal/services/verification"
	"emiverify/internal/validation"
)

func main() {
	kind := flag.String("type", "", "record type: insurance-cases or document-verifications")
	path := flag.String("file", "", "path to the CSV file")
	flag.Parse()

	if *path == "" || (*kind != "insurance-cases" && *kind != "document-verifications") {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger.Init(cfg.Log)

	if err := run(context.Background(), cfg, *kind, *path, os.Stdout); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, kind, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := repositories.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer repositories.Close(db)
	if err := repositories.Migrate(db); err != nil {
		return err
	}

	// Cached reports must not outlive the import.
	store := cache.Store(cache.NoopStore{})
	if cfg.Redis.Enabled {
		if client, err := cache.NewRedisClient(ctx, cfg.Redis); err == nil {
			store = cache.NewCacheService(client, cfg.Redis.ReportTTL)
		} else {
			slog.Warn("redis unavailable, cached reports may be stale", "error", err)
		}
	}
	defer store.Close()

	schema := validation.NewSchema()
	im := importer.New(
		insurance.NewService(repositories.NewInsuranceCaseRepository(db), store, schema),
		verification.NewService(repositories.NewDocumentVerificationRepository(db), store, schema),
	)

	var report *importer.Report
	if kind == "insurance-cases" {
		report, err = im.InsuranceCases(ctx, f)
	} else {
		report, err = im.DocumentVerifications(ctx, f)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d rows failed", report.Failed, report.TotalRows)
	}
	return nil
}
