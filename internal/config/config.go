package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jmg/scrabbly/internal/api"
	"github.com/jmg/scrabbly/internal/factory"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/game"
	"github.com/jmg/scrabbly/internal/services/lexicon"
	redisstorage "github.com/jmg/scrabbly/internal/storage/redis"
)

// EnvPrefix prefixes every environment variable, e.g. SCRABBLY_SERVER_PORT
const EnvPrefix = "SCRABBLY"

// Config is the server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Lexicon LexiconConfig `mapstructure:"lexicon"`
	Game    GameConfig    `mapstructure:"game"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Type     string `mapstructure:"type"`
	RedisURL string `mapstructure:"redis_url"`
	// GameTTL expires idle games in Redis; zero keeps them forever
	GameTTL    time.Duration `mapstructure:"game_ttl"`
	SQLitePath string        `mapstructure:"sqlite_path"`
}

type LexiconConfig struct {
	Dir      string `mapstructure:"dir"`
	Encoding string `mapstructure:"encoding"`
}

type GameConfig struct {
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
	Language     string `mapstructure:"language"`
	StrictBounds bool   `mapstructure:"strict_bounds"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	server := api.DefaultServerConfig()
	v.SetDefault("server.host", server.Host)
	v.SetDefault("server.port", server.Port)
	v.SetDefault("server.read_timeout", server.ReadTimeout)
	v.SetDefault("server.write_timeout", server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", server.ShutdownTimeout)

	redis := redisstorage.DefaultConfig()
	v.SetDefault("storage.type", factory.StorageTypeMemory)
	v.SetDefault("storage.redis_url", redis.URL)
	v.SetDefault("storage.game_ttl", redis.GameTTL)
	v.SetDefault("storage.sqlite_path", "data/scrabbly.db")

	v.SetDefault("lexicon.dir", "data/lexicons")
	v.SetDefault("lexicon.encoding", string(lexicon.EncodingUTF8))

	g := game.DefaultConfig()
	v.SetDefault("game.width", g.DefaultWidth)
	v.SetDefault("game.height", g.DefaultHeight)
	v.SetDefault("game.language", string(g.DefaultLanguage))
	v.SetDefault("game.strict_bounds", g.DefaultStrictBounds)

	v.SetDefault("log.level", "info")
}

// Load reads the configuration from defaults, the optional config file and
// SCRABBLY_* environment variables, in increasing order of precedence.
// An empty path skips the config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be caught by decoding
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Storage.Type {
	case factory.StorageTypeMemory, factory.StorageTypeRedis, factory.StorageTypeSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.type %q", c.Storage.Type))
	}
	if _, err := lexicon.ParseEncoding(c.Lexicon.Encoding); err != nil {
		errs = append(errs, err)
	}
	if _, err := model.ParseLanguage(c.Game.Language); err != nil {
		errs = append(errs, err)
	}
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", model.ErrInvalidDimensions, c.Game.Width, c.Game.Height))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ServerConfig returns the HTTP server settings
func (c *Config) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Server.Host,
		Port:            c.Server.Port,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
}

// FactoryConfig returns the application wiring settings
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	// Validate has already accepted both values
	enc, _ := lexicon.ParseEncoding(c.Lexicon.Encoding)
	lang, _ := model.ParseLanguage(c.Game.Language)

	cfg := factory.Config{
		Logger:          logger,
		StorageType:     c.Storage.Type,
		SQLitePath:      c.Storage.SQLitePath,
		LexiconDir:      c.Lexicon.Dir,
		LexiconEncoding: enc,
		GameConfig: game.Config{
			DefaultWidth:        c.Game.Width,
			DefaultHeight:       c.Game.Height,
			DefaultLanguage:     lang,
			DefaultStrictBounds: c.Game.StrictBounds,
		},
	}

	if c.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.Storage.RedisURL
		redisCfg.GameTTL = c.Storage.GameTTL
		cfg.RedisConfig = &redisCfg
	}

	return cfg
}

// LogLevel returns the configured slog level
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log.level %q", s)
	}
	return level, nil
}
