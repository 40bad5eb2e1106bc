package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/api"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/catalog"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/digest"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/logger"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/notifier"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/preference"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/saved"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/storage"

	"go.uber.org/zap"
)

// AppConfig 应用配置。
type AppConfig struct {
	Server  ServerConfig         `yaml:"server"`
	Storage StorageConfig        `yaml:"storage"`
	Catalog CatalogConfig        `yaml:"catalog"`
	Digest  DigestConfig         `yaml:"digest"`
	Email   notifier.EmailConfig `yaml:"email"`
	Log     LogConfig            `yaml:"log"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	MaxConns int    `yaml:"max_conns"`
}

type StorageConfig struct {
	Path     string `yaml:"path"`
	RedisURL string `yaml:"redis_url"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type DigestConfig struct {
	TopN int `yaml:"top_n"`
}

type LogConfig struct {
	JSON  bool `yaml:"json"`
	Debug bool `yaml:"debug"`
}

// recordStore 统一 sqlite 与 redis 两种后端。
type recordStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// digestNotifier 用于摘要生成后的外发通知。
type digestNotifier interface {
	Notify(ctx context.Context, d *model.Digest) error
}

type appDeps struct {
	catalog *catalog.Catalog
	prefs   *preference.Service
	digests *digest.Generator
	saved   *saved.Service
	notif   digestNotifier
}

func main() {
	generateDigest := flag.Bool("generate-digest", false, "generate today's digest once, print it and exit")
	force := flag.Bool("force", false, "with -generate-digest, recompute even if today's digest exists")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := buildDeps(ctx, cfg, log)
	if err != nil {
		log.Error("build dependencies", zap.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	if *generateDigest {
		if err := generateDigestOnce(ctx, deps, *force, os.Stdout); err != nil {
			log.Error("generate digest", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, deps, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func loadConfig() (AppConfig, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// buildDeps 按配置装配存储、目录与各服务。
func buildDeps(ctx context.Context, cfg AppConfig, log *zap.Logger) (appDeps, func(), error) {
	var store recordStore
	var err error
	if cfg.Storage.RedisURL != "" {
		store, err = storage.NewRedisStore(ctx, cfg.Storage.RedisURL)
	} else {
		path := cfg.Storage.Path
		if path == "" {
			path = "tracker.db"
		}
		store, err = storage.NewStore(path)
	}
	if err != nil {
		return appDeps{}, nil, fmt.Errorf("init store: %w", err)
	}
	cleanup := func() { _ = store.Close() }

	catalogPath := cfg.Catalog.Path
	if catalogPath == "" {
		catalogPath = "jobs.json"
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		cleanup()
		return appDeps{}, nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded", zap.String("path", catalogPath), zap.Int("jobs", cat.Len()))

	opts := []digest.Option{digest.WithLogger(log)}
	if cfg.Digest.TopN > 0 {
		opts = append(opts, digest.WithTopN(cfg.Digest.TopN))
	}

	return appDeps{
		catalog: cat,
		prefs:   preference.NewService(store, log),
		digests: digest.NewGenerator(store, cat.Jobs(), opts...),
		saved:   saved.NewService(store, log),
		notif:   buildNotifier(cfg.Email, log),
	}, cleanup, nil
}

func buildNotifier(cfg notifier.EmailConfig, log *zap.Logger) digestNotifier {
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" || len(cfg.To) == 0 {
		log.Info("email notifier disabled: missing host/port/from/to")
		return notifier.NewLogNotifier(log)
	}
	return notifier.NewEmailNotifier(cfg, nil)
}

// generateDigestOnce 手动触发一次摘要生成并输出纯文本。
func generateDigestOnce(ctx context.Context, deps appDeps, force bool, out io.Writer) error {
	prefs, err := deps.prefs.Get(ctx)
	if err != nil {
		return err
	}

	d, err := deps.digests.GetOrGenerate(ctx, prefs, force)
	if err != nil {
		return err
	}
	if d == nil {
		fmt.Fprintln(out, "no preferences saved; nothing to generate")
		return nil
	}

	fmt.Fprint(out, digest.ToPlainText(d))
	if deps.notif != nil {
		if err := deps.notif.Notify(ctx, d); err != nil {
			return fmt.Errorf("notify: %w", err)
		}
	}
	return nil
}

func serve(ctx context.Context, cfg AppConfig, deps appDeps, log *zap.Logger) error {
	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if cfg.Server.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.Server.MaxConns)
	}

	handler := api.NewHandler(deps.catalog, deps.prefs, deps.digests, deps.saved, log)
	srv := &http.Server{Handler: handler}

	log.Info("listening", zap.String("addr", addr))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
