package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Storage  StorageConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"dev"`
	HTTPPort        string        `envconfig:"HTTP_PORT" default:":5000"`
	GRPCPort        string        `envconfig:"GRPC_PORT" default:":8082"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type LoggerConfig struct {
	Level             string `default:"debug"`
	Encoding          string `default:"console"`
	DisableCaller     bool   `split_words:"true" default:"false"`
	DisableStacktrace bool   `split_words:"true" default:"true"`
	Filename          string // rotated file output, empty disables
	MaxSizeMB         int    `split_words:"true" default:"64"`
	MaxBackups        int    `split_words:"true" default:"7"`
}

type PostgresConfig struct {
	Host            string `default:"localhost"`
	Port            string `default:"5432"`
	User            string `default:"goldsmith"`
	Password        string `default:"goldsmith"`
	DBName          string `envconfig:"DB" default:"goldsmith_catalog"`
	SSLMode         string `envconfig:"SSLMODE" default:"disable"`
	MaxOpenConns    int    `split_words:"true" default:"10"`
	MaxIdleConns    int    `split_words:"true" default:"5"`
	ConnMaxLifetime int    `split_words:"true" default:"300"`
	ConnMaxIdleTime int    `split_words:"true" default:"60"`
}

// RedisConfig enables the gold-rate cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int           `default:"0"`
	TTL      time.Duration `default:"10m"`
}

// KafkaConfig enables event publishing and the rate feed listener when
// Brokers is set.
type KafkaConfig struct {
	Brokers       []string
	EventsTopic   string `split_words:"true" default:"catalog.events"`
	RateFeedTopic string `split_words:"true" default:"gold-rates.feed"`
	GroupID       string `split_words:"true" default:"goldsmith-catalog"`
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string `default:"products"`
}

type StorageConfig struct {
	Driver string `default:"cloudinary"` // cloudinary | sftp

	CloudinaryURL string `split_words:"true"`
	Folder        string `default:"products"`

	SFTPAddr       string `envconfig:"SFTP_ADDR"`
	SFTPUser       string `envconfig:"SFTP_USER"`
	SFTPPassword   string `envconfig:"SFTP_PASSWORD"`
	SFTPDir        string `envconfig:"SFTP_DIR" default:"/srv/images/products"`
	SFTPKnownHosts string `envconfig:"SFTP_KNOWN_HOSTS"`
	PublicBaseURL  string `split_words:"true"`

	UploadsPerSecond float64 `split_words:"true" default:"5"`
	UploadBurst      int     `split_words:"true" default:"10"`
	MaxImageBytes    int64   `split_words:"true" default:"5242880"`
}

type CORSConfig struct {
	AllowOrigins []string `split_words:"true"`
}

// LoadEnv reads an optional .env file and fills Config from the environment.
func LoadEnv() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}
