package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
	Auth        AuthConfig        `yaml:"auth"`
	Photos      PhotosConfig      `yaml:"photos"`
	Geocoding   GeocodingConfig   `yaml:"geocoding"`
	Log         LogConfig         `yaml:"log"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

// RedisConf enables the upload reservation lock when RedisAddr is set.
type RedisConf struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"`
	LockTTL       time.Duration `yaml:"lock_ttl" env-default:"30s"`
}

type AuthConfig struct {
	// JWTSecret signs admin tokens issued by the auth provider.
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	AdminRole string `yaml:"admin_role" env-default:"admin"`
}

type PhotosConfig struct {
	// StrictJSONCreate rejects JSON creates without file_path or file_hash
	// instead of filling in placeholders.
	StrictJSONCreate bool `yaml:"strict_json_create" env:"PHOTOS_STRICT_JSON_CREATE" env-default:"false"`
}

type GeocodingConfig struct {
	BaseURL   string        `yaml:"base_url" env-default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `yaml:"user_agent" env-default:"spotguide/1.0"`
	Timeout   time.Duration `yaml:"timeout" env-default:"5s"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env-default:"24h"`
}

// LogConfig adds a rotating file next to stdout. An empty File keeps
// logging on stdout only.
type LogConfig struct {
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env-default:"5"`
	MaxAgeDays int    `yaml:"max_age_days" env-default:"28"`
	Compress   bool   `yaml:"compress" env-default:"true"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config file does not exist", Path: configPath, Err: err}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	return ResolvePath(res)
}

// ResolvePath loads a .env file from the working directory when one exists
// and falls back to CONFIG_PATH if flagValue is empty.
func ResolvePath(flagValue string) string {
	_ = godotenv.Load() // a missing .env is fine

	if flagValue != "" {
		return flagValue
	}

	return os.Getenv("CONFIG_PATH")
}
