package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/env"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/logger"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// Config holds the connection settings
type Config struct {
	Type     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// ConfigFromEnv reads the DB_* variables
func ConfigFromEnv() Config {
	dbType := strings.ToLower(env.GetEnv("DB_TYPE", "mysql"))
	port := "3306"
	if dbType == "postgres" {
		port = "5432"
	}
	return Config{
		Type:     dbType,
		Host:     env.GetEnv("DB_HOST", "127.0.0.1"),
		Port:     env.GetEnv("DB_PORT", port),
		Name:     env.GetEnv("DB_NAME", "contribution"),
		User:     env.GetEnv("DB_USER", ""),
		Password: env.GetEnv("DB_PASSWORD", ""),
		SSLMode:  env.GetEnv("DB_SSLMODE", "disable"),
	}
}

// Dialect returns the gorm dialector of cfg.Type
func Dialect(cfg Config) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		return mysql.New(mysql.Config{
			DSN: fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)), nil
	case "sqlite":
		// the sqlite file name is taken from DB_NAME
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// Open connects with retries. Foreign keys are not created by gorm because
// rounds and options reference each other; the SQL migrations define them.
func Open(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger:                                   logger.NewGormLogger(gormlogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	var db *gorm.DB
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			return db, nil
		}
		zap.L().Warn("failed to connect to database",
			zap.Int("try", i+1),
			zap.Int("max", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, err
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// SetupDatabase connects using the environment and stores the handle in DB.
// DB_AUTOMIGRATE=false leaves the schema to cmd/migrate.
func SetupDatabase() {
	cfg := ConfigFromEnv()
	db, err := Open(cfg)
	if err != nil {
		panic(err)
	}
	if env.GetBool("DB_AUTOMIGRATE", true) {
		if err := AutoMigrate(db); err != nil {
			panic(fmt.Errorf("auto migration failed: %w", err))
		}
	}
	if err := models.LoadSettings(db); err != nil {
		zap.L().Warn("failed to load settings, using defaults", zap.Error(err))
	}
	DB = db
	zap.L().Info("database ready", zap.String("type", cfg.Type), zap.String("name", cfg.Name))
}

// GetDB returns the handle opened by SetupDatabase
func GetDB() *gorm.DB {
	return DB
}
