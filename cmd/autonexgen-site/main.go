package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/autonexgen/site/internal/auth"
	"github.com/autonexgen/site/internal/chat"
	"github.com/autonexgen/site/internal/config"
	"github.com/autonexgen/site/internal/database"
	"github.com/autonexgen/site/internal/inquiries"
	"github.com/autonexgen/site/internal/logging"
	"github.com/autonexgen/site/internal/notify"
	"github.com/autonexgen/site/internal/reviews"
	"github.com/autonexgen/site/internal/server"
	"github.com/autonexgen/site/internal/submission"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autonexgen-site",
		Short: "Autonexgen marketing site server",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("notifier-url", defaults.GetString("notifier.url"), "Secondary notification webhook URL")
	cmd.PersistentFlags().String("chat-base-url", defaults.GetString("chat.base_url"), "Chat completion endpoint base URL")
	cmd.PersistentFlags().String("chat-model", defaults.GetString("chat.model"), "Chat completion model")
	cmd.PersistentFlags().Int("admin-token-ttl-minutes", defaults.GetInt("admin.token_ttl_minutes"), "Admin token TTL in minutes")
	cmd.PersistentFlags().String("admin-signing-secret", "", "Admin token signing secret (overrides env)")
	cmd.PersistentFlags().String("admin-access-secret", "", "Admin login secret (overrides env)")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "notifier.url", "notifier-url")
	bindFlag(cmd, "chat.base_url", "chat-base-url")
	bindFlag(cmd, "chat.model", "chat-model")
	bindFlag(cmd, "admin.token_ttl_minutes", "admin-token-ttl-minutes")
	bindFlag(cmd, "admin.signing_secret", "admin-signing-secret")
	bindFlag(cmd, "admin.access_secret", "admin-access-secret")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.OpenSQLite(appConfig.DatabasePath, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	tokenManager, err := auth.NewTokenIssuer(auth.TokenIssuerConfig{
		SigningSecret: []byte(appConfig.AdminSigningSecret),
		Issuer:        "autonexgen-site",
		Audience:      "autonexgen-admin",
		TokenTTL:      appConfig.AdminTokenTTL,
	})
	if err != nil {
		return err
	}

	inquiryService, err := inquiries.NewService(inquiries.ServiceConfig{
		Database:   db,
		Clock:      time.Now,
		IDProvider: inquiries.NewUUIDProvider(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	reviewService, err := reviews.NewService(reviews.ServiceConfig{
		Database: db,
		Clock:    time.Now,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	var notifier submission.Notifier
	if appConfig.NotifierURL != "" {
		client, err := notify.NewClient(notify.Config{
			Endpoint: appConfig.NotifierURL,
			Timeout:  appConfig.NotifierTimeout,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		notifier = client
	}

	responder := chat.NewResponder(chat.Config{
		BaseURL: appConfig.ChatBaseURL,
		APIKey:  appConfig.ChatAPIKey,
		Model:   appConfig.ChatModel,
		Logger:  logger,
	})

	handler, err := server.NewHTTPHandler(server.Dependencies{
		Inquiries:    inquiryService,
		Reviews:      reviewService,
		Notifier:     notifier,
		Chat:         responder,
		TokenManager: tokenManager,
		AdminSecret:  appConfig.AdminAccessSecret,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", appConfig.HTTPAddress))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
