package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ignite/constituent-reconciler/internal/config"
	"github.com/ignite/constituent-reconciler/internal/pkg/logger"
	"github.com/ignite/constituent-reconciler/internal/reconcile"
	"github.com/ignite/constituent-reconciler/internal/sink"
	"github.com/ignite/constituent-reconciler/internal/source"
	"github.com/ignite/constituent-reconciler/internal/tagmap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	if cfg.Log.RedactPII != nil {
		logger.SetRedactPII(*cfg.Log.RedactPII)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("reconciliation failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	reader, closeReader, err := buildReader(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("build source reader: %w", err)
	}
	if closeReader != nil {
		defer closeReader()
	}

	tables, err := reader.Read(ctx)
	if err != nil {
		return fmt.Errorf("read source tables: %w", err)
	}
	logger.Info("source tables loaded",
		"constituents", len(tables.Constituents),
		"emails", len(tables.Emails),
		"donations", len(tables.Donations),
	)

	pipeline := reconcile.NewPipeline(buildTagMapper(cfg.TagMap))
	result, err := pipeline.Run(ctx, tables)
	if err != nil {
		return err
	}

	writer := sink.NewCSVWriter(cfg.Output.Dir)
	if err := writer.Write(ctx, result); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", "dir", cfg.Output.Dir)

	if cfg.Output.S3.Enabled {
		uploader, err := sink.NewS3Uploader(ctx, cfg.Output.S3)
		if err != nil {
			return fmt.Errorf("build s3 uploader: %w", err)
		}
		for _, name := range []string{sink.ConstituentsFile, sink.TagCountsFile} {
			if err := uploader.Upload(ctx, filepath.Join(cfg.Output.Dir, name)); err != nil {
				return fmt.Errorf("upload %s: %w", name, err)
			}
		}
		logger.Info("output uploaded", "bucket", cfg.Output.S3.Bucket)
	}

	return nil
}

func buildReader(ctx context.Context, cfg source.Config) (source.Reader, func() error, error) {
	switch cfg.Kind {
	case "csv", "":
		return source.NewFileReader(cfg.CSV), nil, nil
	case "s3":
		r, err := source.NewS3Reader(ctx, cfg.S3)
		return r, nil, err
	case "postgres":
		r, err := source.NewPostgresReader(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, pingReader(ctx, r)
	case "snowflake":
		r, err := source.NewSnowflakeReader(cfg.Snowflake)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, pingReader(ctx, r)
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

func pingReader(ctx context.Context, r *source.SQLReader) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.Ping(pingCtx)
}

// buildTagMapper wires the tag mapping client, with the Redis last-known-good
// cache when configured. A missing base URL disables mapping entirely and
// the pipeline passes tags through unchanged.
func buildTagMapper(cfg tagmap.Config) reconcile.TagMapper {
	if cfg.BaseURL == "" {
		return nil
	}
	var cache *tagmap.Cache
	if cfg.RedisAddr != "" {
		cache = tagmap.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			time.Duration(cfg.CacheTTLMinutes)*time.Minute)
	}
	return tagmap.NewService(tagmap.NewClient(cfg), cache)
}
