package services

import (
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/salon-availability-engine/internal/core/services/scheduling_service"
)

type SchedulingService = scheduling_service.SchedulingService

func NewSchedulingService(
	crmPort out.CrmPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *SchedulingService {
	return scheduling_service.NewSchedulingService(crmPort, cachePort, logger, cfg)
}
