package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database configuration
type DBConfig struct {
	Type     string `yaml:"type"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig Web server configuration
type WebConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Secret      string `yaml:"secret"`
	JwtExpire   int    `yaml:"jwt_expire"` // hours
	SessionName string `yaml:"session_name"`
}

// LogConfig Log configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// BookingConfig controls booking commit rules
type BookingConfig struct {
	// RejectOverlap rejects a booking whose range overlaps an existing booking
	// of the same property at commit time.
	RejectOverlap bool `yaml:"reject_overlap"`
}

// DemoConfig controls demo data seeding
type DemoConfig struct {
	Seed bool `yaml:"seed"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Database DBConfig      `yaml:"database"`
	Logger   LogConfig     `yaml:"logger"`
	Booking  BookingConfig `yaml:"booking"`
	Demo     DemoConfig    `yaml:"demo"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

func setEnvValue(name string, val *string) {
	value := os.Getenv(name)
	if value != "" {
		*val = value
	}
}

func setEnvBoolValue(name string, val *bool) {
	value := os.Getenv(name)
	if value != "" {
		*val = cast.ToBool(value)
	}
}

func setEnvIntValue(name string, val *int) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	v, err := cast.ToIntE(value)
	if err == nil {
		*val = v
	}
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "EstateHub",
		Location: "UTC",
		Workdir:  "/var/estatehub",
		Debug:    false,
	},
	Web: WebConfig{
		Host:        "0.0.0.0",
		Port:        8080,
		Secret:      "9b6de5cc-0731-4bf1-a3b9-estatehub",
		JwtExpire:   24,
		SessionName: "estatehub_session",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "realestate_db",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/estatehub/logs/estatehub.log",
	},
	Booking: BookingConfig{
		RejectOverlap: true,
	},
	Demo: DemoConfig{
		Seed: false,
	},
}

// LoadConfig reads the YAML file (if any), then applies .env and ESTATEHUB_*
// environment overrides on top of the defaults.
func LoadConfig(cfile string) *AppConfig {
	// load .env from the working directory if it exists
	_ = godotenv.Load()

	cfg := *DefaultAppConfig
	if cfile == "" {
		cfile = os.Getenv("ESTATEHUB_CONFIG")
	}
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			panic(err)
		}
	}

	applyEnv(&cfg)
	cfg.Database.Type = strings.ToLower(strings.TrimSpace(cfg.Database.Type))
	return &cfg
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("ESTATEHUB_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("ESTATEHUB_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("ESTATEHUB_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("ESTATEHUB_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("ESTATEHUB_WEB_PORT", &cfg.Web.Port)
	setEnvValue("ESTATEHUB_WEB_SECRET", &cfg.Web.Secret)
	setEnvIntValue("ESTATEHUB_WEB_JWT_EXPIRE", &cfg.Web.JwtExpire)

	setEnvValue("ESTATEHUB_DB_TYPE", &cfg.Database.Type)
	setEnvValue("ESTATEHUB_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("ESTATEHUB_DB_PORT", &cfg.Database.Port)
	setEnvValue("ESTATEHUB_DB_NAME", &cfg.Database.Name)
	setEnvValue("ESTATEHUB_DB_USER", &cfg.Database.User)
	setEnvValue("ESTATEHUB_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("ESTATEHUB_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("ESTATEHUB_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("ESTATEHUB_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("ESTATEHUB_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvBoolValue("ESTATEHUB_BOOKING_REJECT_OVERLAP", &cfg.Booking.RejectOverlap)
	setEnvBoolValue("ESTATEHUB_DEMO_SEED", &cfg.Demo.Seed)
}
