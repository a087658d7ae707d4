package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmg/scrabbly/internal/factory"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/lexicon"
	"github.com/jmg/scrabbly/internal/testutil"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) writeFile(name, content string) string {
	path := filepath.Join(s.T().TempDir(), name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(8080, cfg.Server.Port)
	s.Equal(5*time.Second, cfg.Server.ReadTimeout)
	s.Equal(10*time.Second, cfg.Server.WriteTimeout)
	s.Equal(factory.StorageTypeMemory, cfg.Storage.Type)
	s.Equal("data/lexicons", cfg.Lexicon.Dir)
	s.Equal(15, cfg.Game.Width)
	s.Equal(15, cfg.Game.Height)
	s.Equal("english", cfg.Game.Language)
	s.False(cfg.Game.StrictBounds)
	s.Equal(slog.LevelInfo, cfg.LogLevel())
}

func (s *ConfigSuite) TestEnvironmentOverrides() {
	s.T().Setenv("SCRABBLY_SERVER_PORT", "9090")
	s.T().Setenv("SCRABBLY_STORAGE_TYPE", "redis")
	s.T().Setenv("SCRABBLY_STORAGE_REDIS_URL", "redis://cache:6379/2")
	s.T().Setenv("SCRABBLY_STORAGE_GAME_TTL", "1h")
	s.T().Setenv("SCRABBLY_GAME_STRICT_BOUNDS", "true")
	s.T().Setenv("SCRABBLY_LOG_LEVEL", "debug")

	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(9090, cfg.Server.Port)
	s.Equal("redis", cfg.Storage.Type)
	s.Equal("redis://cache:6379/2", cfg.Storage.RedisURL)
	s.Equal(time.Hour, cfg.Storage.GameTTL)
	s.True(cfg.Game.StrictBounds)
	s.Equal(slog.LevelDebug, cfg.LogLevel())
}

func (s *ConfigSuite) TestConfigFile() {
	path := s.writeFile("scrabbly.yaml", `
server:
  port: 7000
game:
  width: 11
  height: 11
  language: spanish
lexicon:
  encoding: latin1
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(7000, cfg.Server.Port)
	s.Equal(11, cfg.Game.Width)
	s.Equal("spanish", cfg.Game.Language)
	s.Equal("latin1", cfg.Lexicon.Encoding)
}

func (s *ConfigSuite) TestEnvironmentBeatsConfigFile() {
	path := s.writeFile("scrabbly.yaml", "server:\n  port: 7000\n")
	s.T().Setenv("SCRABBLY_SERVER_PORT", "7001")

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(7001, cfg.Server.Port)
}

func (s *ConfigSuite) TestMissingConfigFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestValidation() {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"SCRABBLY_SERVER_PORT": "0"}},
		{"bad storage", map[string]string{"SCRABBLY_STORAGE_TYPE": "postgres"}},
		{"bad encoding", map[string]string{"SCRABBLY_LEXICON_ENCODING": "ebcdic"}},
		{"bad language", map[string]string{"SCRABBLY_GAME_LANGUAGE": "klingon"}},
		{"bad width", map[string]string{"SCRABBLY_GAME_WIDTH": "-3"}},
		{"bad log level", map[string]string{"SCRABBLY_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			for k, v := range tt.env {
				s.T().Setenv(k, v)
			}
			_, err := Load("")
			s.Error(err)
		})
	}
}

func (s *ConfigSuite) TestFactoryConfig() {
	s.T().Setenv("SCRABBLY_STORAGE_TYPE", "redis")
	s.T().Setenv("SCRABBLY_STORAGE_REDIS_URL", "redis://cache:6379")
	s.T().Setenv("SCRABBLY_LEXICON_ENCODING", "iso-8859-1")
	s.T().Setenv("SCRABBLY_GAME_LANGUAGE", "Spanish")

	cfg, err := Load("")
	s.Require().NoError(err)

	logger := testutil.NopLogger()
	fc := cfg.FactoryConfig(logger)
	s.Same(logger, fc.Logger)
	s.Equal(factory.StorageTypeRedis, fc.StorageType)
	s.Require().NotNil(fc.RedisConfig)
	s.Equal("redis://cache:6379", fc.RedisConfig.URL)
	s.Equal(lexicon.EncodingLatin1, fc.LexiconEncoding)
	s.Equal(model.LanguageSpanish, fc.GameConfig.DefaultLanguage)
	s.Equal(15, fc.GameConfig.DefaultWidth)
}

func (s *ConfigSuite) TestServerConfig() {
	s.T().Setenv("SCRABBLY_SERVER_HOST", "127.0.0.1")
	s.T().Setenv("SCRABBLY_SERVER_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load("")
	s.Require().NoError(err)

	sc := cfg.ServerConfig()
	s.Equal("127.0.0.1", sc.Host)
	s.Equal(3*time.Second, sc.ShutdownTimeout)
}
