package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Scalingo/sclng-profile-readme/config"
	"github.com/Scalingo/sclng-profile-readme/controller"
	"github.com/Scalingo/sclng-profile-readme/generator"
	"github.com/Scalingo/sclng-profile-readme/logger"
	"github.com/Scalingo/sclng-profile-readme/render"
	"github.com/Scalingo/sclng-profile-readme/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type flags struct {
	configFile   string
	output       string
	topLanguages int
}

func main() {
	f := &flags{}

	root := &cobra.Command{
		Use:           "profile-readme",
		Short:         "Generate a profile README from the languages and topics of your GitHub repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          generateRun(f),
	}

	root.PersistentFlags().StringVar(&f.configFile, "config", "", "Path to the TOML config file (default config/config.toml when present)")
	root.PersistentFlags().StringVarP(&f.output, "output", "o", "", "Output file (default README.md)")
	root.PersistentFlags().IntVar(&f.topLanguages, "top", 0, "Number of languages to show (default 20)")

	root.AddCommand(generateCmd(f), serveCmd(f))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generateCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Aggregate repositories and overwrite the output file",
		RunE:  generateRun(f),
	}
}

func generateRun(f *flags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(f)
		if err != nil {
			return err
		}

		return generator.Run(cmd.Context(), *cfg, service.NewGithubClient, cmd.OutOrStdout())
	}
}

func serveCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered profiles over HTTP without writing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}

			return serve(*cfg)
		},
	}
}

func loadConfig(f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	if f.output != "" {
		cfg.Profile.OutputPath = f.output
	}

	if f.topLanguages > 0 {
		cfg.Profile.TopLanguages = f.topLanguages
	}

	logger.Setup(cfg.Logs, os.Stderr)
	return cfg, nil
}

func serve(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("GITHUB_TOKEN is required in env: %w", err)
	}

	githubClient, err := service.NewGithubClient(context.Background(), cfg.Github)
	if err != nil {
		return err
	}

	// setup handlers and services
	githubService := service.NewGithubService(githubClient, service.NewRateLimiter(cfg.Github))
	aggregator := service.NewAggregator(githubService, cfg.Tasks.MaxParallelTasksAllowed)
	profileService := service.NewProfileService(githubService, aggregator, cfg.Profile.TopLanguages)
	apiController := controller.NewAPIController(profileService, render.NewOptions(cfg.Profile))

	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Addr:              ":" + cfg.API.ListenPort,
		Handler:           controller.NewRouter(apiController),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening on port " + cfg.API.ListenPort)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("error while starting server")
		}
	}()

	// kill default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	// the server has 15 seconds to finish the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return err
	}

	log.Info("Application stopped gracefully !")
	return nil
}
