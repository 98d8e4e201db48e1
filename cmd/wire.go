package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	discordadapter "github.com/softfang/guildctl/internal/adapters/discord"
	panelrender "github.com/softfang/guildctl/internal/adapters/render/panel"
	tomlrepo "github.com/softfang/guildctl/internal/adapters/repo/toml"
	"github.com/softfang/guildctl/internal/application"
	"github.com/softfang/guildctl/internal/domain"
)

type app struct {
	instances         *application.InstanceService
	panelRenderer     func(panelrender.View, panelrender.RenderOptions) (string, error)
	instancesRenderer func([]domain.Instance) (string, error)
	logger            *zap.Logger
	connectTimeout    time.Duration
}

func wireApp() (*app, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire instance repository: %w", err)
	}

	gateway := discordadapter.NewGateway(logger)
	sessions := application.NewSessionManager(gateway, logger)

	return &app{
		instances:         application.NewInstanceService(repo, sessions, logger),
		panelRenderer:     panelrender.Render,
		instancesRenderer: panelrender.RenderInstances,
		logger:            logger,
		connectTimeout:    time.Minute,
	}, nil
}

// connectContext bounds a connect attempt at the CLI layer. Instances that
// disable connect timeouts get an unbounded context; the core skips its own
// deadline for them too.
func connectContext(parent context.Context, instance domain.Instance, timeout time.Duration) (context.Context, context.CancelFunc) {
	if instance.TimeoutDisabled {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("GUILDCTL_DEBUG") != "" {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}
