package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "CLNO"

// storage engines
const (
	EngineJSON     = "json"
	EngineBolt     = "bolt"
	EnginePostgres = "postgres"
)

type Config struct {
	Debug    bool   `mapstructure:"debug"`
	TestMode bool   `mapstructure:"testMode"`
	Env      string `mapstructure:"env"`
	Build    string `mapstructure:"build"`
	AppName  string `mapstructure:"appName"`

	RollbarToken string `mapstructure:"rollbarToken"`

	Server struct {
		Address         string        `mapstructure:"address"`
		DebugHost       string        `mapstructure:"debugHost"`
		Host            string        `mapstructure:"host"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
		DisableReqLogs  bool          `mapstructure:"disableReqLogs"`
	} `mapstructure:"server"`

	Storage struct {
		Engine   string `mapstructure:"engine"` // json (default) | bolt | postgres
		DataDir  string `mapstructure:"dataDir"`
		BoltPath string `mapstructure:"boltPath"`
	} `mapstructure:"storage"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		// used only to create the app user and database
		AdminUser     string `mapstructure:"adminUser"`
		AdminPassword string `mapstructure:"adminPassword"`
		Name          string `mapstructure:"name"`
		DisableTLS    bool   `mapstructure:"disableTLS"`
	} `mapstructure:"database"`

	Email struct {
		DefaultFromName    string `mapstructure:"defaultFromName"`
		DefaultFromAddress string `mapstructure:"defaultFromAddress"`
		SendgridApiKey     string `mapstructure:"sendgridApiKey"`
	} `mapstructure:"email"`

	Notify struct {
		Recipients []string `mapstructure:"recipients"`
	} `mapstructure:"notify"`
}

// DatabaseAddress returns the database "host:port".
func (c *Config) DatabaseAddress() string {
	return c.Database.Host + ":" + c.Database.Port
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.Email.DefaultFromName, Address: c.Email.DefaultFromAddress}
}

// NotifyRecipients parses notify.recipients, skipping invalid addresses.
func (c *Config) NotifyRecipients() []mail.Address {
	addrs := make([]mail.Address, 0, len(c.Notify.Recipients))
	for _, r := range c.Notify.Recipients {
		if addr, err := mail.ParseAddress(CleanString(r)); err == nil {
			addrs = append(addrs, *addr)
		}
	}
	return addrs
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("debug", true)
	v.SetDefault("testMode", strings.EqualFold(env, "TEST"))
	v.SetDefault("env", env)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Clno")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("storage.engine", EngineJSON)
	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("storage.boltPath", filepath.Join("data", "clno.db"))

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "clno")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.name", "clno")
	v.SetDefault("database.disableTLS", false)

	v.SetDefault("email.defaultFromName", "Clno")
	v.SetDefault("email.defaultFromAddress", "noreply@localhost")
	v.SetDefault("email.sendgridApiKey", "")

	v.SetDefault("notify.recipients", []string{})
}

// NewConfig loads the configuration in this order (last wins):
// defaults, config/clno.{yaml,json,toml}, config/.env.<env>, CLNO_* environment variables.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	confDir := os.Getenv(envPrefix + "_CONFIG_DIR")
	if confDir == "" {
		confDir = "config"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(confDir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}

	v := viper.New()
	setDefaults(v, env)

	v.SetConfigName("clno")
	v.AddConfigPath(confDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	conf.Storage.Engine = CleanString(conf.Storage.Engine, true /* lower */)
	return conf, nil
}
