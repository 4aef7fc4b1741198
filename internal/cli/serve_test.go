package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gaugechart/pkg/cache"
)

func parseServeFlags(t *testing.T, args ...string) serveConfig {
	t.Helper()
	cmd := New(os.Stderr, LogInfo).serveCommand()
	require.NoError(t, cmd.ParseFlags(args))
	configFile, err := cmd.Flags().GetString("config")
	require.NoError(t, err)
	cfg, err := loadServeConfig(cmd, configFile)
	require.NoError(t, err)
	return cfg
}

func TestLoadServeConfigDefaults(t *testing.T) {
	cfg := parseServeFlags(t)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, cache.TTLArtifact, cfg.CacheTTL)
	assert.Equal(t, "gauge-readings", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.NoCache)
}

func TestLoadServeConfigEnv(t *testing.T) {
	t.Setenv("GAUGECHART_ADDR", ":9090")
	t.Setenv("GAUGECHART_REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("GAUGECHART_CACHE_TTL", "1h")
	t.Setenv("GAUGECHART_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("GAUGECHART_KAFKA_GROUP", "gauges")
	t.Setenv("GAUGECHART_NAMESPACE", "staging")

	cfg := parseServeFlags(t)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "gauges", cfg.KafkaGroup)
	assert.Equal(t, "staging", cfg.Namespace)
}

func TestLoadServeConfigFlagsWin(t *testing.T) {
	t.Setenv("GAUGECHART_ADDR", ":9090")
	cfg := parseServeFlags(t, "--addr", ":7070", "--no-cache")
	assert.Equal(t, ":7070", cfg.Addr)
	assert.True(t, cfg.NoCache)
}

func TestLoadServeConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.toml")
	require.NoError(t, os.WriteFile(path, []byte("addr = \":6060\"\nkafka_topic = \"cpu\"\ncache_ttl = \"10m\"\n"), 0o644))

	cfg := parseServeFlags(t, "--config", path)
	assert.Equal(t, ":6060", cfg.Addr)
	assert.Equal(t, "cpu", cfg.KafkaTopic)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestLoadServeConfigMissingFile(t *testing.T) {
	cmd := New(os.Stderr, LogInfo).serveCommand()
	_, err := loadServeConfig(cmd, filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}

func TestOpenServeCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := openServeCache(context.Background(), serveConfig{NoCache: true})
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, c)

	c, err = openServeCache(context.Background(), serveConfig{})
	require.NoError(t, err)
	assert.IsType(t, &cache.FileCache{}, c)

	_, err = openServeCache(context.Background(), serveConfig{RedisURL: "not a url"})
	assert.Error(t, err)
}
