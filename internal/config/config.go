package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"local"`
	AppSecret  string        `yaml:"app_secret" env-required:"true" env:"APP_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env-default:"24h"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Cache      `yaml:"cache"`
	Postgres   `yaml:"postgres"`
	Redis      `yaml:"redis"`
	RabbitMQ   `yaml:"rabbitmq"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

type Cache struct {
	Driver string        `yaml:"driver" env:"CACHE_DRIVER" env-default:"memory"`
	TTL    time.Duration `yaml:"ttl" env-default:"0s"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"postgres"`
	Port     int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"redis:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

// RabbitMQ publishing is disabled when URL is empty.
type RabbitMQ struct {
	URL       string `yaml:"url" env:"RABBITMQ_URL"`
	QueueName string `yaml:"queue_name" env-default:"booking_notifications"`
}

type NotifierConfig struct {
	Env                string `yaml:"env" env:"ENV" env-default:"local"`
	RabbitMQURL        string `yaml:"rabbitmq_url" env:"RABBITMQ_URL" env-required:"true"`
	QueueName          string `yaml:"queue_name" env-default:"booking_notifications"`
	AdministratorEmail string `yaml:"administrator_email" env:"ADMIN_EMAIL" env-required:"true"`
	Email              `yaml:"email"`
}

type Email struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME" env-required:"true"`
	Password string `yaml:"password" env:"SMTP_PASSWORD" env-required:"true"`
}

// MustLoad reads the service config from the path given by the -config flag,
// CONFIG_PATH, or the default, in that order.
func MustLoad(defaultPath string) *Config {
	var cfg Config

	mustRead(fetchConfigPath(defaultPath), &cfg)

	return &cfg
}

func MustLoadNotifier(defaultPath string) *NotifierConfig {
	var cfg NotifierConfig

	mustRead(fetchConfigPath(defaultPath), &cfg)

	return &cfg
}

func mustRead(configPath string, cfg any) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		log.Fatalf("cannot read config %s: %s", configPath, err)
	}
}

func fetchConfigPath(defaultPath string) string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = defaultPath
	}

	return res
}
