// Package application wires configuration, storage, sessions and logging
// into the single value the router and CLI commands share.
package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"blog/app/config"
	"blog/app/database"
	"blog/app/metrics"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/sessions"
)

// Application holds the long-lived dependencies of a running blog.
type Application struct {
	Config   config.Config
	DB       *gorm.DB
	Sessions *sessions.Store
	Metrics  *metrics.Metrics
	Log      *logrus.Logger

	cron *cron.Cron
}

// New opens the database and session store, migrates the schema and seeds
// the configured categories.
func New(cfg config.Config, log *logrus.Logger) (*Application, error) {
	db, err := database.Open(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	store, err := sessions.Open(cfg.SessionPath, sessions.Options{
		CookieName: cfg.CookieName,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.CookieSecure,
	}, log)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	app := &Application{
		Config:   cfg,
		DB:       db,
		Sessions: store,
		Metrics:  metrics.New(),
		Log:      log,
	}
	if err := app.Metrics.RegisterSessionGauge(store.Count); err != nil {
		app.Close()
		return nil, fmt.Errorf("register session gauge: %w", err)
	}

	created, err := app.SeedCategories(context.Background())
	if err != nil {
		app.Close()
		return nil, err
	}
	if created > 0 {
		log.WithField("created", created).Info("Seeded categories")
	}
	return app, nil
}

// SeedCategories inserts the configured categories that are missing.
func (a *Application) SeedCategories(ctx context.Context) (int, error) {
	categories := services.NewCategoryService(repositories.NewGormCategoryRepository(a.DB))
	return categories.SeedDefaults(ctx, a.Config.Categories)
}

// StartJobs schedules session store garbage collection.
func (a *Application) StartJobs() error {
	if a.Config.SessionGCSchedule == "" {
		return nil
	}
	c := cron.New(cron.WithLogger(cron.PrintfLogger(a.Log.WithField("component", "cron"))))
	_, err := c.AddFunc(a.Config.SessionGCSchedule, func() {
		if err := a.Sessions.RunGC(); err != nil {
			a.Log.WithError(err).Warn("Session store GC failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session gc %q: %w", a.Config.SessionGCSchedule, err)
	}
	c.Start()
	a.cron = c
	return nil
}

// Ping checks the database connection.
func (a *Application) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close stops background jobs and releases storage.
func (a *Application) Close() error {
	if a.cron != nil {
		<-a.cron.Stop().Done()
		a.cron = nil
	}
	var errs []error
	if a.Sessions != nil {
		errs = append(errs, a.Sessions.Close())
	}
	if a.DB != nil {
		errs = append(errs, database.Close(a.DB))
	}
	return errors.Join(errs...)
}
