package cli

import (
	"fmt"
	coreapp "lucidepre/internal/core/app"
	"lucidepre/internal/core/config"
	"lucidepre/internal/core/ports"
)

type rewriteFactory interface {
	New(cfg *config.Config, mode ports.RewriteMode) (ports.RewriteService, error)
}

type coreRewriteFactory struct{}

func (coreRewriteFactory) New(cfg *config.Config, mode ports.RewriteMode) (ports.RewriteService, error) {
	app, err := coreapp.New(cfg)
	if err != nil {
		return nil, err
	}
	app.Mode = mode
	return app.RewriteService(), nil
}

func initializeRewrite(cfg *config.Config, mode ports.RewriteMode, factory rewriteFactory) (ports.RewriteService, error) {
	if factory == nil {
		return nil, fmt.Errorf("rewrite factory is required")
	}
	return factory.New(cfg, mode)
}

// unwrapApp returns the concrete App behind a service built by coreRewriteFactory.
func unwrapApp(service ports.RewriteService) (*coreapp.App, bool) {
	u, ok := service.(interface{ Unwrap() *coreapp.App })
	if !ok {
		return nil, false
	}
	return u.Unwrap(), true
}
