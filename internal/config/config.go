package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone - таймзона салона, выставляется один раз при загрузке конфига
// Используется при разборе дат без таймзоны
var TimeZone = time.UTC

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Warsaw"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	CrmApi struct {
		URL      string `env:"CRM_API_URL"`
		Username string `env:"CRM_API_USERNAME"`
		Password string `env:"CRM_API_PASSWORD"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"availability_engine:availability_engine"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMq struct {
		Enabled     bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri     string `env:"RABBITMQ_URL"`
		QueueConfig struct {
			AppointmentQueueName     string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"crm.availability-engine.appointment"`
			AppointmentQueueExchange string `env:"RABBITMQ_APPOINTMENT_EXCHANGE" envDefault:"crm.events"`
			AppointmentQueueBind     string `env:"RABBITMQ_APPOINTMENT_BIND" envDefault:"crm.availability-engine.appointment.*.*"`
			ScheduleQueueName        string `env:"RABBITMQ_SCHEDULE_QUEUE" envDefault:"crm.availability-engine.schedule"`
			ScheduleQueueExchange    string `env:"RABBITMQ_SCHEDULE_EXCHANGE" envDefault:"crm.events"`
			ScheduleQueueBind        string `env:"RABBITMQ_SCHEDULE_BIND" envDefault:"crm.availability-engine.schedule.*.*"`
			AllQueueName             string `env:"RABBITMQ_ALL_QUEUE" envDefault:"crm.availability-engine._all_"`
			AllQueueExchange         string `env:"RABBITMQ_ALL_EXCHANGE" envDefault:"crm.events"`
			AllQueueBind             string `env:"RABBITMQ_ALL_BIND" envDefault:"crm.availability-engine._all_.*.*"`
		}
	}

	Cache struct {
		Enabled      bool `env:"CACHE_ENABLED"`
		DaySlotsSize int  `env:"CACHE_DAY_SLOTS_SIZE" envDefault:"1000"`
	}

	Grid struct {
		IntervalMinutes int `env:"GRID_INTERVAL_MINUTES" envDefault:"30"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Загружаем таймзону салона, при ошибке остаемся в UTC
	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		TimeZone = loc
	}

	// Разбираем список клиентов basic-авторизации
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Если RabbitMQ не включен, то кэш тоже не включаем
	// Без шины инвалидации кэш будет отдавать устаревшие слоты
	if !cfg.RabbitMq.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
