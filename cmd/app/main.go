package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/suchimauz/salon-availability-engine/internal/adapters/in/http"
	"github.com/suchimauz/salon-availability-engine/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/salon-availability-engine/internal/adapters/out/cache"
	"github.com/suchimauz/salon-availability-engine/internal/adapters/out/crmapi"
	"github.com/suchimauz/salon-availability-engine/internal/adapters/out/logger"
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/salon-availability-engine/internal/core/services"
)

func main() {
	// Для локальной разработки переменные окружения берем из .env
	_ = godotenv.Load()

	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной салона
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, cfg.IsLocal())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	crmAdapter := crmapi.NewCrmAdapter(cfg, mainLogger.WithModule("CrmAdapter"))

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cachePort = cacheAdapter
	}

	// Инициализация сервиса
	schedulingService := services.NewSchedulingService(
		crmAdapter,
		cachePort,
		mainLogger.WithModule("SchedulingService"),
		cfg,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewSchedulingController(schedulingService, cfg)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewCacheHitListener(
			schedulingService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		// Добавляем остановку RabbitMQ в defer
		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"crm": map[string]string{
					"url":      cfg.CrmApi.URL,
					"username": cfg.CrmApi.Username,
				},
				"rabbitmq": map[string]interface{}{
					"enabled": cfg.RabbitMq.Enabled,
				},
				"cache": map[string]interface{}{
					"enabled":        cfg.Cache.Enabled,
					"day_slots_size": cfg.Cache.DaySlotsSize,
				},
				"grid": map[string]interface{}{
					"interval_minutes": cfg.Grid.IntervalMinutes,
				},
			},
		})
	}
}
