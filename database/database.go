package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db          *gorm.DB
	projectRepo *ProjectRepo
	settingRepo *SettingRepo
	skillRepo   *SkillRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		projectRepo: NewProjectRepo(db),
		settingRepo: NewSettingRepo(db),
		skillRepo:   NewSkillRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SettingRepo() *SettingRepo {
	return d.settingRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

// DB returns the shared connection, for migrations and code generation.
func (d Database) DB() *gorm.DB {
	return d.db
}

// Ping checks the primary connection.
func (d Database) Ping(ctx context.Context) error {
	var result int
	if err := d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Config describes the Supabase Postgres connection.
type Config struct {
	Host         string
	User         string
	Password     string
	Name         string
	Port         string
	SSLMode      string
	ReplicaHosts []string
	MaxOpenConns int
}

func (c Config) dsn(host string) string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, c.User, c.Password, c.Name, c.Port, sslMode)
}

// Open connects to the primary and, when replica hosts are configured,
// routes reads to them through dbresolver.
func Open(cfg Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.dsn(cfg.Host),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if len(cfg.ReplicaHosts) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaHosts))
		for _, host := range cfg.ReplicaHosts {
			host = strings.TrimSpace(host)
			if host == "" {
				continue
			}
			replicas = append(replicas, postgres.New(postgres.Config{
				DSN:                  cfg.dsn(host),
				PreferSimpleProtocol: true,
			}))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return nil, fmt.Errorf("enable pgcrypto extension: %w", err)
	}

	return db, nil
}
