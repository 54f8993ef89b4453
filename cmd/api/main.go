// Command api serves the drip hydration tracker over HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/drip/internal/api"
	"github.com/limbo/drip/internal/repository"
	"github.com/limbo/drip/internal/service"
	"github.com/limbo/drip/pkg/cleanup"
	"github.com/limbo/drip/pkg/config"
	jwtservice "github.com/limbo/drip/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	setupLogger(cfg.GetStringOr("LOG_LEVEL", "info"))

	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
		SSLMode:  cfg.GetString("POSTGRES_SSLMODE"),
	}
	if dir := cfg.GetString("MIGRATIONS_DIR"); dir != "" {
		if err := repository.Migrate(&dbCfg, dir); err != nil {
			log.Fatal(err)
		}
	}
	pool := repository.Connect(&dbCfg)

	settingsService := service.NewSettingsService(repository.NewSettingsRepo(pool), service.Defaults{
		DailyGoal:   float64(cfg.GetInt("DEFAULT_DAILY_GOAL", 2500)),
		BedtimeHour: cfg.GetInt("DEFAULT_BEDTIME_HOUR", 20),
		Timezone:    cfg.GetStringOr("DEFAULT_TIMEZONE", "UTC"),
	})
	serv := api.New(&api.ServicesList{
		UserService: service.NewUserService(repository.NewUsersRepo(pool)),
		HydrationService: service.NewHydrationService(
			repository.NewDrinksRepo(pool),
			repository.NewAchievementsRepo(pool),
			settingsService,
		),
		SettingsService: settingsService,
		JwtService: jwtservice.New(
			cfg.GetString("JWT_SECRET"),
			time.Duration(cfg.GetInt("JWT_TTL_HOURS", 24))*time.Hour,
		),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := serv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", slog.String("error", err.Error()))
		}
	}()

	address := cfg.GetStringOr("API_ADDRESS", ":8080")
	slog.Info("starting server", slog.String("address", address))
	err := serv.Run(address)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Println("Server error: " + err.Error())
	}
	if err := cleanup.CleanUp(); err != nil {
		slog.Error("cleanup finished with errors", slog.String("error", err.Error()))
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
