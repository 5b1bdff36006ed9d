package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"meditracker/internal/config"
	"meditracker/internal/email"
	"meditracker/internal/repository/file"
	"meditracker/internal/service/medicine"
	"meditracker/internal/service/notifier"
	"meditracker/internal/service/patient"
	"meditracker/internal/service/reminder"
	"meditracker/internal/service/user"
	"meditracker/internal/shell"
	"meditracker/internal/validator"
	"meditracker/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "meditracker",
		Short: "Medicine reminder tracker for doctors and patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context())
		},
	}

	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(notifierCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context())
		},
	}
}

func notifierCmd() *cobra.Command {
	var patientID string
	cmd := &cobra.Command{
		Use:   "notifier",
		Short: "Run the reminder notification daemon for one patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotifier(patientID)
		},
	}
	cmd.Flags().StringVar(&patientID, "patient", "", "patient id to watch (required)")
	_ = cmd.MarkFlagRequired("patient")
	return cmd
}

type deps struct {
	cfg       *config.Config
	log       *logger.Logger
	users     *user.Service
	patients  *patient.Service
	medicines *medicine.Service
	reminders *reminder.Service
	emailSvc  email.Service
}

func buildDeps(console bool) (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
		Console:    console,
	})

	v := validator.New()
	userRepo := file.NewUserRepository(cfg.UsersFile())
	patientRepo := file.NewPatientRepository(cfg.PatientsFile())
	medicineRepo := file.NewMedicineRepository(cfg.MedicinesFile())
	scheduleRepo := file.NewScheduleRepository(cfg.SchedulesFile())

	d := &deps{
		cfg:       cfg,
		log:       log,
		users:     user.NewService(userRepo, v, log),
		patients:  patient.NewService(patientRepo, medicineRepo, scheduleRepo, v, log),
		medicines: medicine.NewService(medicineRepo, v, log),
		reminders: reminder.NewService(scheduleRepo, v, log),
	}
	if emailCfg := cfg.EmailConfig(); emailCfg.Enabled() {
		d.emailSvc = email.NewService(emailCfg)
	}
	return d, nil
}

func runShell(ctx context.Context) error {
	d, err := buildDeps(true)
	if err != nil {
		return err
	}

	sh := shell.New(d.users, d.patients, d.medicines, d.reminders, d.emailSvc,
		shell.Config{
			NotifierInterval: d.cfg.NotifierInterval(),
			Bell:             d.cfg.Notifier.Bell,
		},
		os.Stdin, os.Stdout, d.log)
	return sh.Run(ctx)
}

// notifierEnv is the daemon's env-first config; it overrides the yaml file
// for headless deployments.
type notifierEnv struct {
	Interval   time.Duration `default:"10s"`
	HealthAddr string        `split_words:"true" default:":8081"`
}

func runNotifier(patientID string) error {
	d, err := buildDeps(false)
	if err != nil {
		return err
	}

	var env notifierEnv
	if err := envconfig.Process("meditracker_notifier", &env); err != nil {
		return fmt.Errorf("failed to process env config: %w", err)
	}
	interval := d.cfg.NotifierInterval()
	if env.Interval > 0 {
		interval = env.Interval
	}

	ctx := context.Background()
	p, err := d.patients.Get(ctx, patientID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("patient %s not found", patientID)
	}

	emitters := []notifier.Emitter{notifier.NewConsoleEmitter(os.Stdout, d.cfg.Notifier.Bell)}
	if d.emailSvc != nil && p.UserUsername != "" {
		u, err := d.users.Get(ctx, p.UserUsername)
		if err != nil {
			return err
		}
		if u != nil && u.Email != "" {
			emitters = append(emitters, notifier.NewEmailEmitter(d.emailSvc, u.Email))
		}
	}

	setupHealthCheck(env.HealthAddr, d.log)

	daemon := notifier.NewService(d.reminders, emitters, interval, d.log)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		d.log.Info("Shutting down...")
		cancel()
	}()

	daemon.Run(runCtx, patientID)
	return nil
}

func setupHealthCheck(addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error(err, "Health check server failed")
			os.Exit(1)
		}
	}()
}
