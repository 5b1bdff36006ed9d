package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"meditracker/internal/email"
)

type Config struct {
	DataDir  string         `mapstructure:"data_dir"`
	Files    FilesConfig    `mapstructure:"files"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Log      LogConfig      `mapstructure:"log"`
}

type FilesConfig struct {
	Users     string `mapstructure:"users"`
	Patients  string `mapstructure:"patients"`
	Medicines string `mapstructure:"medicines"`
	Schedules string `mapstructure:"schedules"`
}

type NotifierConfig struct {
	IntervalSeconds int  `mapstructure:"interval_seconds"`
	Bell            bool `mapstructure:"bell"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads config.yaml from the working directory or ./config, with
// MEDITRACKER_* environment overrides. A missing file falls back to
// defaults; a malformed one is an error.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("data_dir", "data")
	viper.SetDefault("files.users", "users.txt")
	viper.SetDefault("files.patients", "patients.json")
	viper.SetDefault("files.medicines", "medicines.json")
	viper.SetDefault("files.schedules", "schedules.json")
	viper.SetDefault("notifier.interval_seconds", 10)
	viper.SetDefault("notifier.bell", true)
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("log.level", "info")

	viper.SetEnvPrefix("meditracker")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func (c *Config) UsersFile() string {
	return filepath.Join(c.DataDir, c.Files.Users)
}

func (c *Config) PatientsFile() string {
	return filepath.Join(c.DataDir, c.Files.Patients)
}

func (c *Config) MedicinesFile() string {
	return filepath.Join(c.DataDir, c.Files.Medicines)
}

func (c *Config) SchedulesFile() string {
	return filepath.Join(c.DataDir, c.Files.Schedules)
}

func (c *Config) NotifierInterval() time.Duration {
	return time.Duration(c.Notifier.IntervalSeconds) * time.Second
}

func (c *Config) EmailConfig() email.Config {
	return email.Config{
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		From:     c.SMTP.From,
	}
}
