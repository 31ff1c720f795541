package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if s.app == nil {
		status.Status = "down"
		status.Components["app"] = "missing"
		return status
	}

	s.app.mu.RLock()
	transformer := s.app.transformer
	w := s.app.activeWatcher
	s.app.mu.RUnlock()

	if transformer == nil {
		status.Status = "degraded"
		status.Components["transformer"] = "missing"
	} else {
		status.Components["transformer"] = fmt.Sprintf("ok (import_mode=%s)", transformer.ImportMode())
	}

	status.Components["output_cache"] = fmt.Sprintf("ok (%d entries)", s.app.outputs.Len())

	if w != nil {
		status.Components["watcher"] = "running"
	} else {
		status.Components["watcher"] = "idle"
	}

	return status
}
