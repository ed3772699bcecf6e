// Package cli implements the clustergraph command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clustergraph/pkg/buildinfo"
	"github.com/matzehuels/clustergraph/pkg/cache"
	"github.com/matzehuels/clustergraph/pkg/config"
	"github.com/matzehuels/clustergraph/pkg/observability"
	"github.com/matzehuels/clustergraph/pkg/pipeline"
)

const (
	appName = "clustergraph"
	// envConfig names a config file when --config is not given.
	envConfig = "CLUSTERGRAPH_CONFIG"
)

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the writers and logger shared by every subcommand.
type CLI struct {
	Logger *log.Logger
	// Out receives command output and status lines.
	Out io.Writer
	// Err receives the progress spinner.
	Err io.Writer
	// Stdin is read when a topology argument is "-".
	Stdin io.Reader

	configPath string
}

// New logs to w at level and writes command output to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
		Stdin:  os.Stdin,
	}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "clustergraph lays out two-level clustered graphs",
		Long: `clustergraph positions a topology of nodes grouped into subcategories,
which are in turn grouped into categories, and emits diagrams ready for a
canvas flow library or a static SVG preview.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $"+envConfig+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads the config named by --config or $CLUSTERGRAPH_CONFIG and
// falls back to the defaults when neither is set.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv(envConfig)
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
		c.Logger.Debug("loaded config", "path", path)
	}
	if cfg.Cache.Dir == "" {
		if dir, err := cacheDir(); err == nil {
			cfg.Cache.Dir = dir
		}
	}
	return cfg, nil
}

// newRunner wires the configured cache, engine and log hooks into a runner.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix)
	}
	hooks := observability.NewLogHooks(c.Logger)
	runner := pipeline.NewRunner(cache.WithHooks(store, hooks), keyer, c.Logger)
	runner.Engine = cfg.Engine.Name
	runner.Config = cfg.Diagram()
	runner.Hooks = hooks
	runner.TTL = cfg.Cache.TTL.Duration
	return runner, nil
}

// newCache opens the backend named by cfg.Cache.Backend.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return cache.NewMemoryCache(cfg.Cache.MemoryEntries), nil
	case config.CacheFile:
		if cfg.Cache.Dir == "" {
			c.Logger.Warn("no cache directory available, caching disabled")
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(cfg.Cache.Dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
	case config.CacheMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: cfg.Cache.MongoURI, Database: cfg.Cache.MongoDatabase})
	default:
		return cache.NewNullCache(), nil
	}
}

// cacheDir is $XDG_CACHE_HOME/clustergraph, or ~/.cache/clustergraph.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma list, defaulting to the flow format.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatFlow}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
