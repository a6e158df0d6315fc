package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	OpenStack OpenStackConfig
	Service   SvcConfig
}

// OpenStackConfig carries the credentials and endpoint of the backing cloud.
type OpenStackConfig struct {
	AuthURL        string `envconfig:"OS_AUTH_URL" validate:"required,url"`
	Username       string `envconfig:"OS_USERNAME" validate:"required"`
	Password       string `envconfig:"OS_PASSWORD" validate:"required"`
	ProjectName    string `envconfig:"OS_PROJECT_NAME" validate:"required"`
	UserDomainName string `envconfig:"OS_USER_DOMAIN_NAME" default:"Default"`
	RegionName     string `envconfig:"OS_REGION_NAME" default:"RegionOne"`
	Insecure       bool   `envconfig:"OS_INSECURE_SKIP_VERIFY" default:"false"`
}

type SvcConfig struct {
	Address             string        `envconfig:"ADVISOR_ADDRESS" default:":8080"`
	MetricsAddress      string        `envconfig:"ADVISOR_METRICS_ADDRESS" default:":8081"`
	LogLevel            string        `envconfig:"ADVISOR_LOG_LEVEL" default:"info"`
	RequestTimeout      time.Duration `envconfig:"ADVISOR_REQUEST_TIMEOUT" default:"30s"`
	FetchTimeout        time.Duration `envconfig:"ADVISOR_FETCH_TIMEOUT" default:"15s"`
	FetchParallelism    int           `envconfig:"ADVISOR_FETCH_PARALLELISM" default:"4"`
	HealthCheckInterval time.Duration `envconfig:"ADVISOR_HEALTH_CHECK_INTERVAL" default:"1m"`
	ProbeTimeout        time.Duration `envconfig:"ADVISOR_PROBE_TIMEOUT" default:"10s"`
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
