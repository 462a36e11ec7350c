package app

import (
	"github.com/talkincode/estatehub/config"
	"github.com/talkincode/estatehub/internal/account"
	"github.com/talkincode/estatehub/internal/rental"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// ServiceProvider exposes the domain services
type ServiceProvider interface {
	Rentals() *rental.Service
	Accounts() *account.Service
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	DBProvider
	ConfigProvider
	ServiceProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
