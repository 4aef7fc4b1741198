package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gaugechart/internal/server"
	"github.com/matzehuels/gaugechart/pkg/buildinfo"
	"github.com/matzehuels/gaugechart/pkg/cache"
	"github.com/matzehuels/gaugechart/pkg/feed"
	"github.com/matzehuels/gaugechart/pkg/observability"
)

// serveConfig is the resolved configuration of the serve command.
type serveConfig struct {
	Addr         string
	RedisURL     string
	Namespace    string
	CacheTTL     time.Duration
	NoCache      bool
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroup   string
}

// serveKeys maps viper keys to flag names. Every key can also be set as
// GAUGECHART_<KEY> or in the file given with --config.
var serveKeys = map[string]string{
	"addr":          "addr",
	"redis_url":     "redis-url",
	"namespace":     "namespace",
	"cache_ttl":     "cache-ttl",
	"no_cache":      "no-cache",
	"kafka_brokers": "kafka-brokers",
	"kafka_topic":   "kafka-topic",
	"kafka_group":   "kafka-group",
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve gauges over HTTP",
		Long: `Serve gauges over HTTP.

The API renders one-shot gauges (POST /v1/render) and keeps live gauges that
are updated by posting values or, with --kafka-brokers, by readings consumed
from a Kafka topic. Prometheus metrics are exposed on /metrics.

Settings are read from flags, GAUGECHART_* environment variables and an
optional config file (--config), in that order of precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(cmd, configFile)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (toml, yaml or json)")
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("redis-url", "", "redis url for the shared cache (default: local file cache)")
	cmd.Flags().String("namespace", "", "prefix for cache keys, to share one redis between deployments")
	cmd.Flags().Duration("cache-ttl", cache.TTLArtifact, "how long rendered artifacts stay cached")
	cmd.Flags().Bool("no-cache", false, "disable caching and gauge persistence")
	cmd.Flags().String("kafka-brokers", "", "kafka brokers feeding live gauges (comma-separated)")
	cmd.Flags().String("kafka-topic", "gauge-readings", "kafka topic with {\"gauge\",\"value\"} readings")
	cmd.Flags().String("kafka-group", "", "kafka consumer group (default: no group, newest offset)")

	return cmd
}

// loadServeConfig resolves the serve settings from flags, environment and
// the optional config file.
func loadServeConfig(cmd *cobra.Command, configFile string) (serveConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range serveKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return serveConfig{}, fmt.Errorf("bind %s: %w", flag, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return serveConfig{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return serveConfig{
		Addr:         v.GetString("addr"),
		RedisURL:     v.GetString("redis_url"),
		Namespace:    v.GetString("namespace"),
		CacheTTL:     v.GetDuration("cache_ttl"),
		NoCache:      v.GetBool("no_cache"),
		KafkaBrokers: splitList(v.GetString("kafka_brokers")),
		KafkaTopic:   v.GetString("kafka_topic"),
		KafkaGroup:   v.GetString("kafka_group"),
	}, nil
}

// runServe runs the HTTP server and, when configured, the Kafka feed until
// ctx is cancelled or either of them fails.
func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	logger := loggerFromContext(ctx)
	logger.Info("starting server", "version", buildinfo.Version, "commit", buildinfo.Commit)

	store, err := openServeCache(ctx, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observability.NewPrometheus(reg).Install()
	defer observability.Reset()

	var keyer cache.Keyer
	if cfg.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Namespace+":")
	}

	srv := server.New(server.Options{
		Cache:       store,
		Keyer:       keyer,
		Logger:      logger,
		Gatherer:    reg,
		ArtifactTTL: cfg.CacheTTL,
	})
	defer srv.Close()

	var consumer *feed.Consumer
	if len(cfg.KafkaBrokers) > 0 {
		consumer, err = feed.NewConsumer(feed.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroup,
		}, logger)
		if err != nil {
			return err
		}
		defer consumer.Close()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, cfg.Addr)
	})
	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(gctx, func(ctx context.Context, r feed.Reading) error {
				_, err := srv.Gauges().Update(ctx, r.Gauge, r.Value)
				return err
			})
		})
	}

	printInfo("Serving on %s", cfg.Addr)
	return g.Wait()
}

// openServeCache picks the cache shared by the server's renders and live
// gauges: redis when a url is configured, the local file cache otherwise.
func openServeCache(ctx context.Context, cfg serveConfig) (cache.Cache, error) {
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cache.DefaultBackoff, cache.WithRedisPrefix(appName+":"))
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	}
	return newCache(cfg.NoCache)
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
