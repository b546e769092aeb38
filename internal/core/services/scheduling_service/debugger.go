package scheduling_service

import (
	"sync"

	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

type SchedulingServiceDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func (d *SchedulingServiceDebug) AddDebugInfo(info domain.DebugInfo) {
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}
