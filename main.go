package main

import (
	"context"
	"embed"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/middleware"
	aqmtemplate "github.com/aquamarinepk/aqm/template"

	"github.com/comandaflash/flash-terminal/internal/flash"
)

//go:embed assets
var assetsFS embed.FS

const (
	appNamespace = "FLASH"
	appName      = "flash-terminal"
	appVersion   = "0.1.0"
)

func main() {
	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// Initialize template manager
	tmplMgr := aqmtemplate.NewManager(assetsFS, aqmtemplate.WithLogger(logger))

	// Initialize Comanda Flash backend gateway
	gateway, err := flash.NewGateway(config, logger)
	if err != nil {
		log.Fatalf("%s(%s) cannot initialize gateway: %v", appName, appVersion, err)
	}

	tableStore := flash.NewTableStore(gateway, logger)

	handler := flash.NewHandler(tmplMgr, gateway, tableStore, config, logger)

	// Public-facing staff terminal, CORS stays enabled
	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: false,
	})

	options := []aqm.Option{
		aqm.WithConfig(config),
		aqm.WithLogger(logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", handler),
		aqm.WithLifecycle(tmplMgr),
		aqm.WithHealthChecks(appName),
	}

	ms := aqm.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
