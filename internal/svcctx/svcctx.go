// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/liturgica/lectern/internal/calendar"
	"github.com/liturgica/lectern/internal/config"
	"github.com/liturgica/lectern/internal/enhance"
	"github.com/liturgica/lectern/internal/export"
	"github.com/liturgica/lectern/internal/home"
	"github.com/liturgica/lectern/internal/library"
	"github.com/liturgica/lectern/internal/schema"
	"github.com/liturgica/lectern/internal/store"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Store         *store.Store
	Library       *library.Library
	Calendar      *calendar.Client
	Providers     *enhance.Registry
	Exporter      *export.Exporter
	ExportJobs    *export.Jobs
	Validator     *schema.Validator
	ConfigManager *config.Manager
	Logger        *slog.Logger
	Home          *home.Dir
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// StoreFrom extracts the presentation store from context.
func StoreFrom(ctx context.Context) *store.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Store
	}
	return nil
}

// LibraryFrom extracts the song library from context.
func LibraryFrom(ctx context.Context) *library.Library {
	if s := ServicesFrom(ctx); s != nil {
		return s.Library
	}
	return nil
}

// CalendarFrom extracts the calendar client from context.
func CalendarFrom(ctx context.Context) *calendar.Client {
	if s := ServicesFrom(ctx); s != nil {
		return s.Calendar
	}
	return nil
}

// ProvidersFrom extracts the image provider registry from context.
func ProvidersFrom(ctx context.Context) *enhance.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Providers
	}
	return nil
}

// ExporterFrom extracts the exporter from context.
func ExporterFrom(ctx context.Context) *export.Exporter {
	if s := ServicesFrom(ctx); s != nil {
		return s.Exporter
	}
	return nil
}

// ExportJobsFrom extracts the export job runner from context.
func ExportJobsFrom(ctx context.Context) *export.Jobs {
	if s := ServicesFrom(ctx); s != nil {
		return s.ExportJobs
	}
	return nil
}

// ValidatorFrom extracts the document validator from context.
func ValidatorFrom(ctx context.Context) *schema.Validator {
	if s := ServicesFrom(ctx); s != nil {
		return s.Validator
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigManager
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
