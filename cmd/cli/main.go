package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sabastianrafa/powergym-ag-system/internal/buildinfo"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/cli"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/client"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/config"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/repositories/session"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/services"
	"github.com/sabastianrafa/powergym-ag-system/internal/filex"
	"github.com/sabastianrafa/powergym-ag-system/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, logOut)
	if err != nil {
		return err
	}

	db, err := client.InitDatabase(ctx, cfg.SessionDB)
	if err != nil {
		return err
	}
	defer db.Close()

	scope := cfg.SessionScope
	if scope == "" {
		scope = fmt.Sprintf("tty-%d", os.Getppid())
	}
	store := session.NewSQLiteStore(db, scope, cfg.SessionRetention)

	api, err := client.NewHTTPClient(cfg.APIURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	sm := services.NewSessionManager(api, store, logger)
	api.UseSession(sm)

	app := cli.NewApp(cfg, cli.Deps{
		Session:    sm,
		Customers:  services.NewCustomerService(api),
		Biometrics: services.NewBiometricService(api, cfg.MaxUploadBytes),
		Pinger:     api,
		Logger:     logger,
	}, os.Stdin, os.Stdout)

	return app.Run(ctx)
}

// openLogOutput keeps logs out of the console: they go to path, or to
// stderr when path is empty.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
