/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nscaledev/restful-objects-contract/pkg/twin"
)

const application = "restful-objects-twin"

// logOptions controls the process logger.
type logOptions struct {
	level       string
	development bool
}

func (o *logOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.level, "log-level", "info", "Log level, one of debug, info, warn or error.")
	f.BoolVar(&o.development, "log-development", false, "Use human readable console logging.")
}

func (o *logOptions) logger() (logr.Logger, error) {
	level, err := zapcore.ParseLevel(o.level)
	if err != nil {
		return logr.Logger{}, fmt.Errorf("parsing log level: %w", err)
	}

	config := zap.NewProductionConfig()
	if o.development {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(level)

	zl, err := config.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("building logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}

func main() {
	var (
		serverOptions twin.Options
		loggerOptions logOptions
	)

	serverOptions.AddFlags(pflag.CommandLine)
	loggerOptions.AddFlags(pflag.CommandLine)

	pflag.Parse()

	logger, err := loggerOptions.logger()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	initLogger := logger.WithName("init")
	initLogger.Info("service starting", "application", application)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := twin.NewServer(serverOptions, logger.WithName("twin")).Run(ctx); err != nil {
		initLogger.Error(err, "server failed")
		stop()
		os.Exit(1)
	}
}
