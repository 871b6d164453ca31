// @title           MovieVault API
// @version         1.0
// @description     Movie collection backend.
// @description     Provides user authentication and CRUD over movies.

// @host      localhost:3001
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа сервера MovieVault.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из yaml-файла (--config);
//   - инициализацию подключения к базе данных и миграции;
//   - создание демо-пользователя (auth.seed);
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - настройку и запуск HTTP-сервера с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/movievault/movievault/internal/server/api"
	"github.com/movievault/movievault/internal/server/config"
	"github.com/movievault/movievault/internal/server/middleware"
	h "github.com/movievault/movievault/internal/server/net/http"
	"github.com/movievault/movievault/internal/server/repository"
	"github.com/movievault/movievault/internal/server/service"
	"github.com/movievault/movievault/internal/server/storage"
	"github.com/movievault/movievault/internal/shared/logger"

	_ "github.com/movievault/movievault/swagger/docs"
)

func main() {
	var cfgPath string

	cmd := &cobra.Command{
		Use:          "movievault-server",
		Short:        "MovieVault backend API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "./configs/server.yaml", "путь к yaml-конфигу сервера")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	httpLogger := logger.NewHTTPLogger()
	sugar := httpLogger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// подключаем базу данных и применяем миграции
	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// создаём репы
	usersRepo := repository.NewUsersRepository(db)
	moviesRepo := repository.NewMoviesRepository(db)
	repos := service.Repositories{
		Users:  usersRepo,
		Movies: moviesRepo,
	}
	// создаём сервис
	svc := service.NewServices(repos, cfg)

	// демо-пользователь для первого входа
	created, err := svc.Auth.EnsureSeedUser(context.Background())
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if created {
		sugar.Infof("seed user created: %s", cfg.Auth.Seed.Email)
	}

	// хранилище постеров
	posters, err := storage.NewPosterStorage(cfg.Uploads)
	if err != nil {
		return err
	}

	// гейт: проверка токена + перечитывание субъекта из БД
	gate := middleware.NewAuthGate(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		usersRepo,
	)

	// создаём хандлер и роутер
	handler := api.NewHandler(svc, httpLogger, gate, posters, cfg.Env)
	router := h.NewRouter(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	sugar.Info("server gracefully stopped")
	return nil
}
