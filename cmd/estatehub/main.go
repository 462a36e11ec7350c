package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/talkincode/estatehub/config"
	"github.com/talkincode/estatehub/internal/app"
	"github.com/talkincode/estatehub/internal/webapi"
	"github.com/talkincode/estatehub/internal/webserver"
	"go.uber.org/zap"
)

var (
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer  = flag.Bool("v", false, "print version")
)

const version = "1.0.0"

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println("estatehub", version)
		return
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	webapi.Init()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.GetServer().Start()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case s := <-sig:
		zap.S().Infof("received %s, shutting down", s)
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), webserver.ShutdownTimeout)
	defer cancel()
	if err := webserver.GetServer().Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown: %v", err)
	}
}
