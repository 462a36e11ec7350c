package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/talkincode/estatehub/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// getDatabase opens the configured database; relative sqlite names live in dataDir
func getDatabase(cfg config.DBConfig, dataDir string) *gorm.DB {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite", "sqlite3":
		name := cfg.Name
		if name == "" {
			name = "estatehub.db"
		}
		if !filepath.IsAbs(name) && !strings.HasPrefix(name, "file:") {
			name = filepath.Join(dataDir, name)
		}
		sep := "?"
		if strings.Contains(name, "?") {
			sep = "&"
		}
		dialector = sqlite.Open(name + sep + "_foreign_keys=on&_busy_timeout=5000")
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		zap.L().Fatal("failed to connect database", zap.String("type", cfg.Type), zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Fatal("failed to get sql.DB", zap.Error(err))
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db
}
