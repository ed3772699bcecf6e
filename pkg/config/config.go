// Package config loads clustergraph settings from TOML files.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]. Unknown keys are rejected so that typos surface early.
//
//	[cluster]
//	padding = 60
//
//	[macro]
//	rank_sep = 90
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clustergraph/pkg/diagram"
	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/layout"
	"github.com/matzehuels/clustergraph/pkg/layout/engines"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheMongo  = "mongo"
)

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the full settings tree.
type Config struct {
	Node    NodeConfig    `toml:"node"`
	Cluster ClusterConfig `toml:"cluster"`
	Inner   SpacingConfig `toml:"inner"`
	Macro   SpacingConfig `toml:"macro"`
	Engine  EngineConfig  `toml:"engine"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

type NodeConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type ClusterConfig struct {
	Padding float64 `toml:"padding"`
}

// SpacingConfig configures one layout phase.
type SpacingConfig struct {
	RankDir string  `toml:"rank_dir"`
	NodeSep float64 `toml:"node_sep"`
	RankSep float64 `toml:"rank_sep"`
	MarginX float64 `toml:"margin_x"`
	MarginY float64 `toml:"margin_y"`
}

type EngineConfig struct {
	Name string `toml:"name"`
	// Workers bounds concurrent inner layouts; 0 selects GOMAXPROCS.
	Workers int `toml:"workers"`
}

type CacheConfig struct {
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir           string   `toml:"dir"`
	// MemoryEntries bounds the memory backend; 0 selects
	// cache.DefaultMemoryEntries.
	MemoryEntries int      `toml:"memory_entries"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
	// KeyPrefix namespaces every cache key, for deployments sharing one
	// Redis or Mongo backend.
	KeyPrefix string `toml:"key_prefix"`
}

type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Default returns the stock settings.
func Default() Config {
	d := diagram.DefaultConfig()
	return Config{
		Node:    NodeConfig{Width: d.NodeWidth, Height: d.NodeHeight},
		Cluster: ClusterConfig{Padding: d.ClusterPadding},
		Inner:   spacing(d.Inner),
		Macro:   spacing(d.Macro),
		Engine:  EngineConfig{Name: engines.Default},
		Cache: CacheConfig{
			Backend:       CacheFile,
			MemoryEntries: 1024,
			MongoDatabase: "clustergraph",
			TTL:           Duration{24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{2 * time.Minute},
			MaxBodyBytes: 8 << 20,
		},
	}
}

// Load reads path on top of [Default] and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, cgerrors.Wrap(cgerrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes TOML data on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, cgerrors.Wrap(cgerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, cgerrors.New(cgerrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting as an INVALID_CONFIG or
// INVALID_ENGINE error.
func (c Config) Validate() error {
	if err := c.Diagram().Validate(); err != nil {
		return err
	}
	if _, err := engines.New(c.Engine.Name); err != nil {
		return err
	}
	if c.Engine.Workers < 0 {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "engine.workers must not be negative, got %d", c.Engine.Workers)
	}
	if !slices.Contains([]string{CacheNone, CacheMemory, CacheFile, CacheRedis, CacheMongo}, c.Cache.Backend) {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.Backend == CacheMongo && c.Cache.MongoURI == "" {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
	}
	if c.Cache.MemoryEntries < 0 {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "cache.memory_entries must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// Diagram returns the engine settings. Workers comes from the engine
// section.
func (c Config) Diagram() diagram.Config {
	return diagram.Config{
		NodeWidth:      c.Node.Width,
		NodeHeight:     c.Node.Height,
		ClusterPadding: c.Cluster.Padding,
		Inner:          c.Inner.options(),
		Macro:          c.Macro.options(),
		Workers:        c.Engine.Workers,
	}
}

func (s SpacingConfig) options() layout.Options {
	return layout.Options{
		RankDir: layout.RankDir(strings.ToUpper(s.RankDir)),
		NodeSep: s.NodeSep,
		RankSep: s.RankSep,
		MarginX: s.MarginX,
		MarginY: s.MarginY,
	}
}

func spacing(o layout.Options) SpacingConfig {
	return SpacingConfig{
		RankDir: string(o.RankDir),
		NodeSep: o.NodeSep,
		RankSep: o.RankSep,
		MarginX: o.MarginX,
		MarginY: o.MarginY,
	}
}

// Encode writes c as TOML, for `config show`-style output.
func (c Config) Encode() ([]byte, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}
