package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"fleetops-dashboard/config"
	"fleetops-dashboard/internal/db"
	"fleetops-dashboard/internal/mockapi"
	"fleetops-dashboard/internal/model"
	"fleetops-dashboard/internal/session"
	"fleetops-dashboard/internal/state"
)

func main() {
	email := flag.String("email", "admin@example.com", "login email (seed accounts: admin@, tech@, user@example.com)")
	password := flag.String("password", mockapi.TestPassword, "login password")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatalf("failed to load configuration from %s", configPath)
	}
	setupLogging(cfg.Logging)
	log := logrus.WithField("component", "fleetops")

	gormDB, err := db.Open()
	if err != nil {
		log.WithError(err).Fatal("failed to open in-memory store")
	}
	repo := mockapi.New(gormDB, mockapi.Options{
		LatencyScale:      cfg.API.LatencyScale,
		SessionTTL:        cfg.API.SessionTTL,
		AttemptsPerMinute: cfg.Auth.AttemptsPerMinute,
		AttemptBurst:      cfg.Auth.AttemptBurst,
	})
	if err := repo.Seed(); err != nil {
		log.WithError(err).Fatal("failed to seed mock backend")
	}
	log.Info("mock backend seeded")

	sess := session.New(repo, session.FileTokenStore{Path: cfg.Storage.TokenPath})
	machines := state.NewMachines(repo, sess)
	alerts := state.NewAlerts(repo, sess)
	maintenance := state.NewMaintenance(repo, sess)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The mock backend is rebuilt every run, so a token persisted by a
	// previous run resolves to nothing and bootstrap silently discards it.
	if err := sess.Bootstrap(ctx); err != nil {
		log.WithError(err).Warn("bootstrap failed")
	}
	if sess.User() == nil {
		if err := sess.Login(ctx, *email, *password); err != nil {
			log.WithError(err).Fatal("login failed")
		}
	}
	user := sess.User()
	log.WithFields(logrus.Fields{"user": user.Name, "role": user.Role}).Info("authenticated")

	waitForCaches(machines, alerts, maintenance)
	printSummary(log, machines, alerts, maintenance)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("session active; press Ctrl-C to log out and exit")
	<-stop

	sess.Logout()
	log.Info("logged out")
}

func setupLogging(cfg config.LoggingConfig) {
	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		logrus.SetLevel(lvl)
	}
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// waitForCaches blocks until the authenticated-event fetches have filled the
// three containers, or gives up after a few seconds of simulated latency.
func waitForCaches(machines *state.Machines, alerts *state.Alerts, maintenance *state.Maintenance) {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if len(machines.Items()) > 0 && len(alerts.Items()) > 0 && len(maintenance.Items()) > 0 &&
			!machines.IsLoading() && !alerts.IsLoading() && !maintenance.IsLoading() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func printSummary(log *logrus.Entry, machines *state.Machines, alerts *state.Alerts, maintenance *state.Maintenance) {
	for _, m := range machines.Items() {
		log.WithFields(logrus.Fields{
			"machine":  m.Name,
			"status":   m.Status,
			"location": m.Location,
			"oee":      m.Metrics.OEE,
		}).Info("machine")
	}

	var unassigned, open int
	for _, a := range alerts.Items() {
		if a.Status != model.AlertResolved {
			open++
			if !a.Assigned() {
				unassigned++
			}
		}
	}
	var inProgress int
	for _, rec := range maintenance.Items() {
		if rec.Status == model.MaintenanceInProgress {
			inProgress++
		}
	}
	log.WithFields(logrus.Fields{
		"machines":                len(machines.Items()),
		"alerts_open":             open,
		"alerts_unassigned":       unassigned,
		"maintenance_records":     len(maintenance.Items()),
		"maintenance_in_progress": inProgress,
	}).Info("fleet summary")
}
