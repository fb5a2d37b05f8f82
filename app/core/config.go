package core

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	conf.SetConfigBytes(raw)

	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}
	conf.applyDefaults()

	return *conf
}

func (c CoreConfig) LoadCustomConfig(cfg any) error {
	if len(c.bytes) == 0 {
		return nil
	}
	if err := toml.Unmarshal(c.bytes, cfg); err != nil {
		return err
	}
	return nil
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.applyDefaults()
	return c
}

type CoreConfig struct {
	API   APIConfig   `toml:"api"`
	Log   Log         `toml:"log"`
	Auth  AuthConfig  `toml:"auth"`
	Redis RedisConfig `toml:"redis"`
	Site  Site        `toml:"site"`
	Query QueryConfig `toml:"query"`
	Mock  MockConfig  `toml:"mock"`

	bytes []byte `toml:"-"`
}

func (c *CoreConfig) SetConfigBytes(raw []byte) {
	c.bytes = raw
}

func (c *CoreConfig) FromENV() {
	c.API.FromENV()
	c.Log.FromENV()
	c.Auth.FromENV()
	c.Redis.FromENV()
	c.Site.FromENV()
	c.Query.FromENV()
	c.Mock.FromENV()
}

func (c *CoreConfig) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://127.0.0.1:33033"
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30
	}
	if c.Auth.TokenFile == "" {
		c.Auth.TokenFile = defaultTokenFile()
	}
	if c.Site.Lang == "" {
		c.Site.Lang = "en"
	}
	if c.Query.TagStaleMinutes <= 0 {
		c.Query.TagStaleMinutes = 10
	}
	if c.Mock.Addr == "" {
		c.Mock.Addr = ":33033"
	}
	if c.Mock.RateLimit <= 0 {
		c.Mock.RateLimit = 600
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "quka", "credentials.toml")
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // seconds
}

func (a *APIConfig) FromENV() {
	a.BaseURL = os.Getenv("QUKA_CLIENT_API_BASE_URL")
	a.Timeout = envInt("QUKA_CLIENT_API_TIMEOUT")
}

func (a APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

type AuthConfig struct {
	TokenFile string `toml:"token_file"`
	// RedisKey switches the persisted token from the file to redis.
	RedisKey string `toml:"redis_key"`
}

func (a *AuthConfig) FromENV() {
	a.TokenFile = os.Getenv("QUKA_CLIENT_AUTH_TOKEN_FILE")
	a.RedisKey = os.Getenv("QUKA_CLIENT_AUTH_REDIS_KEY")
}

type RedisConfig struct {
	Addr     string `toml:"addr"` // host:port
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("QUKA_CLIENT_REDIS_ADDR")
	r.Password = os.Getenv("QUKA_CLIENT_REDIS_PASSWORD")
	r.DB = envInt("QUKA_CLIENT_REDIS_DB")
}

type Site struct {
	Lang           string `toml:"lang"`
	AvatarBase     string `toml:"avatar_base"`
	TagCountPolicy string `toml:"tag_count_policy"` // frequency | uniform
}

func (s *Site) FromENV() {
	s.Lang = os.Getenv("QUKA_CLIENT_SITE_LANG")
	s.AvatarBase = os.Getenv("QUKA_CLIENT_SITE_AVATAR_BASE")
	s.TagCountPolicy = os.Getenv("QUKA_CLIENT_SITE_TAG_COUNT_POLICY")
}

type QueryConfig struct {
	TagStaleMinutes int `toml:"tag_stale_minutes"`
}

func (q *QueryConfig) FromENV() {
	q.TagStaleMinutes = envInt("QUKA_CLIENT_QUERY_TAG_STALE_MINUTES")
}

type MockConfig struct {
	Addr string `toml:"addr"`
	// RateLimit is the number of requests per minute allowed for one token.
	RateLimit int `toml:"rate_limit"`
}

func (m *MockConfig) FromENV() {
	m.Addr = os.Getenv("QUKA_CLIENT_MOCK_ADDR")
	m.RateLimit = envInt("QUKA_CLIENT_MOCK_RATE_LIMIT")
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("QUKA_CLIENT_LOG_LEVEL")
	l.Path = os.Getenv("QUKA_CLIENT_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer env", slog.String("key", key), slog.String("value", v))
		return 0
	}
	return n
}
