package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/app/store"
	"github.com/quka-ai/quka-client/cmd/service/handler"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/utils"
)

type Options struct {
	ConfigPath string
	EnvFile    string
	Lang       string
	BaseURL    string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "load settings from the given toml file instead of the environment")
	flagSet.StringVar(&o.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flagSet.StringVar(&o.Lang, "lang", "", "display language, e.g. en or zh-CN")
	flagSet.StringVar(&o.BaseURL, "base-url", "", "API base url, overrides the config")
}

func (o *Options) setupCore() *core.Core {
	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil && !stderrors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to load env file", slog.String("path", o.EnvFile), slog.String("error", err.Error()))
		}
	}

	cfg := core.MustLoadBaseConfig(o.ConfigPath)
	if o.Lang != "" {
		cfg.Site.Lang = o.Lang
	}
	if o.BaseURL != "" {
		cfg.API.BaseURL = o.BaseURL
	}
	utils.SetupIDWorker(1)
	return core.MustSetupCore(cfg)
}

// withCore runs fn against a freshly set up core. CustomizedErrors are
// turned into the localized message for the terminal.
func withCore(opts *Options, fn func(ctx context.Context, app *core.Core) error) error {
	app := opts.setupCore()
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := fn(ctx, app)
	if err == nil {
		return nil
	}
	var cerr *errors.CustomizedError
	if errors.As(err, &cerr) {
		slog.Debug("command failed", slog.String("error", err.Error()), slog.Any("data", cerr.Data()))
		return fmt.Errorf("%s (%d)", app.Localizer().Get(app.Lang(), cerr.Message()), cerr.GetCode())
	}
	slog.Debug("command failed", slog.String("error", err.Error()))
	return err
}

func NewRootCommand() *cobra.Command {
	opts := &Options{}
	root := &cobra.Command{
		Use:          "quka-client",
		Short:        "QukaAI community and knowledge client",
		SilenceUsage: true,
	}
	opts.AddFlags(root.PersistentFlags())

	root.AddCommand(
		NewTagsCommand(opts),
		NewFeedCommand(opts),
		NewChatCommand(opts),
		NewTeamsCommand(opts),
		NewKnowledgeBaseCommand(opts),
		NewFavoritesCommand(opts),
		NewCommentsCommand(opts),
		NewLoginCommand(opts),
		NewLogoutCommand(opts),
		NewMockCommand(opts),
	)
	return root
}

func NewMockCommand(opts *Options) *cobra.Command {
	var (
		addr  string
		delay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "run an in-memory development backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMock(opts, addr, delay)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, defaults to mock.addr")
	cmd.Flags().DurationVar(&delay, "stream-delay", 40*time.Millisecond, "pause between streamed reply chunks")
	return cmd
}

func RunMock(opts *Options, addr string, delay time.Duration) error {
	app := opts.setupCore()
	defer app.Close()

	if addr == "" {
		addr = app.Cfg().Mock.Addr
	}
	httpSrv := NewMockServer(app, store.New(), true)
	httpSrv.StreamDelay = delay

	server := &http.Server{Addr: addr, Handler: app.HttpEngine()}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("mock backend listening",
		slog.String("addr", addr),
		slog.String("demo_token", store.DEMO_TOKEN),
		slog.String("viewer_token", store.VIEWER_TOKEN))
	if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewMockServer routes the development backend onto app's gin engine. seed
// fills st with demo data first.
func NewMockServer(app *core.Core, st *store.Store, seed bool) *handler.HttpSrv {
	if seed {
		store.Seed(st, app.Srv().RBAC().Permissions)
	}
	httpSrv := &handler.HttpSrv{
		Core:    app,
		Engine:  app.HttpEngine(),
		Store:   st,
		SiteURL: app.Cfg().API.BaseURL,
	}
	setupHttpRouter(httpSrv)
	return httpSrv
}
