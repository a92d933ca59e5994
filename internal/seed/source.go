package seed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cardio/cardio/internal/config"
	"github.com/cardio/cardio/internal/platform/db"
)

// Source yields the dataset the stores are seeded from.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	Close()
	String() string
}

// Open picks a Source for cfg.DatasetURL by scheme.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Source, error) {
	switch scheme := cfg.DatasetScheme(); scheme {
	case config.SchemeFile:
		return NewFileSource(strings.TrimPrefix(cfg.DatasetURL, "file://")), nil

	case config.SchemeS3:
		bucket, key, err := parseS3URL(cfg.DatasetURL)
		if err != nil {
			return nil, err
		}
		return NewS3Source(ctx, s3OptionsFrom(cfg, bucket, key))

	case config.SchemePostgres:
		pool, err := db.NewPool(ctx, cfg.DatasetURL, db.PoolOptions{
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("open dataset database: %w", err)
		}
		logger.Info().Int32("max_conns", cfg.DBMaxConns).Msg("dataset database connected")
		return NewPostgresSource(pool), nil

	default:
		return nil, fmt.Errorf("unsupported dataset scheme %q", scheme)
	}
}

// s3OptionsFrom leaves the credentials empty unless both halves are
// configured, in which case the SDK default chain is bypassed.
func s3OptionsFrom(cfg *config.Config, bucket, key string) S3Options {
	opts := S3Options{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		PathStyle: cfg.S3PathStyle,
		Bucket:    bucket,
		Key:       key,
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretKey != "" {
		opts.AccessKeyID = cfg.S3AccessKeyID
		opts.SecretAccessKey = cfg.S3SecretKey
	}
	return opts
}

func parseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 url: %w", err)
	}
	bucket, key = u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 url %q must be s3://bucket/key", raw)
	}
	return bucket, key, nil
}
