package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/quka-ai/quka-client/app/core/srv"
	"github.com/quka-ai/quka-client/pkg/adapter"
	"github.com/quka-ai/quka-client/pkg/auth"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/query"
	"github.com/quka-ai/quka-client/pkg/reqapi"
	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	memory     *auth.MemoryStore
	tokenStore auth.TokenStore
	redis      redis.UniversalClient

	client    *reqapi.Client
	cache     *query.Cache
	localizer i18n.Localizer

	httpEngine *gin.Engine
	metrics    *Metrics
	limiter    *limiterRegistry
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    100, // megabytes
				MaxBackups: 3,
				MaxAge:     28, //days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	core := &Core{
		cfg:        cfg,
		srv:        srv.SetupSrvs(),
		memory:     auth.NewMemoryStore(""),
		cache:      query.NewCache(),
		localizer:  i18n.NewLocalizer(types.LANGUAGE_EN_KEY, types.LANGUAGE_CN_KEY),
		metrics:    NewMetrics("quka", "client"),
		httpEngine: gin.New(),
		limiter:    newLimiterRegistry(),
	}

	setupTokenStore(core)

	core.client = reqapi.New(cfg.API.BaseURL,
		auth.Chain(core.memory, auth.Persisted(core.tokenStore)),
		reqapi.WithTimeout(cfg.API.TimeoutDuration()),
		reqapi.WithObserver(core.metrics))

	return core
}

// setupTokenStore persists the token in redis when a redis key is configured,
// otherwise in the credential file.
func setupTokenStore(core *Core) {
	if core.cfg.Redis.Addr != "" {
		core.redis = redis.NewClient(&redis.Options{
			Addr:     core.cfg.Redis.Addr,
			Password: core.cfg.Redis.Password,
			DB:       core.cfg.Redis.DB,
		})
	}

	if core.redis != nil && core.cfg.Auth.RedisKey != "" {
		core.tokenStore = auth.NewRedisStore(core.redis, core.cfg.Auth.RedisKey)
		return
	}
	core.tokenStore = auth.NewFileStore(core.cfg.Auth.TokenFile)
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) Client() *reqapi.Client {
	return s.client
}

func (s *Core) Cache() *query.Cache {
	return s.cache
}

func (s *Core) Localizer() i18n.Localizer {
	return s.localizer
}

// Lang is the configured display language mapped onto a loaded one.
func (s *Core) Lang() string {
	return s.localizer.Match(s.cfg.Site.Lang)
}

func (s *Core) Tokens() *auth.MemoryStore {
	return s.memory
}

func (s *Core) TokenStore() auth.TokenStore {
	return s.tokenStore
}

func (s *Core) Redis() redis.UniversalClient {
	return s.redis
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) AdapterOptions() []adapter.Option {
	return []adapter.Option{
		adapter.WithLang(s.Lang()),
		adapter.WithAvatarBase(s.cfg.Site.AvatarBase),
		adapter.WithLocation(time.Local),
	}
}

func (s *Core) TagCountPolicy() adapter.CountPolicy {
	return adapter.ParseCountPolicy(s.cfg.Site.TagCountPolicy)
}

func (s *Core) TagStaleTime() time.Duration {
	return time.Duration(s.cfg.Query.TagStaleMinutes) * time.Minute
}

// Login keeps token for this process and persists it for later ones.
func (s *Core) Login(ctx context.Context, token string) error {
	s.memory.Set(token)
	if err := s.tokenStore.Save(ctx, token); err != nil {
		return err
	}
	slog.Info("access token saved", slog.String("token", utils.MaskString(token, 4, 4)))
	return nil
}

func (s *Core) Logout(ctx context.Context) error {
	s.memory.Clear()
	s.cache.Sweep()
	return s.tokenStore.Clear(ctx)
}

func (s *Core) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
