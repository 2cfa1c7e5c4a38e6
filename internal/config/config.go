package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	Kafka      Kafka      `yaml:"kafka"`
	Media      Media      `yaml:"media"`
	Auth       Auth       `yaml:"auth"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8082"`
	Timeout     time.Duration `yaml:"timeout" env-default:"60s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"90s"`
}

type Database struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env-default:"picstore"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env-default:"album-covers"`
	GroupID string   `yaml:"group_id" env-default:"picstore-covers"`
}

// Media holds the file-store directories and derivative parameters.
type Media struct {
	UploadsDir     string `yaml:"uploads_dir" env-default:"./uploads"`
	ThumbnailsDir  string `yaml:"thumbnails_dir" env-default:"./uploads/thumbnails"`
	WatermarkedDir string `yaml:"watermarked_dir" env-default:"./uploads/watermarked"`
	ThumbnailSize  int    `yaml:"thumbnail_size" env-default:"400"`
	CoverSize      int    `yaml:"cover_size" env-default:"600"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env-default:"524288000"`
	DefaultPrice   int    `yaml:"default_price" env-default:"1200"`
	MaxWorkers     int64  `yaml:"max_workers" env-default:"4"`
}

type Auth struct {
	Secret string `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
