package autocommit

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/plugin"
	"github.com/bethropolis/chalk/internal/store"
)

// Ensure AutoCommit implements plugin.Plugin
var _ plugin.Plugin = (*AutoCommit)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 2 * time.Second
)

// AutoCommit closes a pending EVENTUALLY edit once the scene has been idle
// for the configured interval, so a long run of small edits outside any
// interaction does not end up as a single undo step.
type AutoCommit struct {
	host plugin.Host

	// Configuration
	mutex    sync.RWMutex // Protects access to config fields below
	enabled  bool
	interval time.Duration

	// Runtime state
	lastChange atomic.Int64   // unix nanos of the last local scene change
	stopChan   chan struct{}  // Signals the commit goroutine to stop
	wg         sync.WaitGroup // Waits for the goroutine to finish
}

// New creates a new instance of the AutoCommit plugin.
func New() plugin.Plugin {
	return &AutoCommit{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoCommit) Name() string {
	return "autocommit"
}

// Initialize reads configuration and starts the commit loop if enabled.
func (p *AutoCommit) Initialize(host plugin.Host) error {
	p.host = host
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := host.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if intervalVal, ok := host.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsed, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsed <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsed
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)
	if !isEnabled {
		return nil
	}

	p.lastChange.Store(time.Now().UnixNano())
	host.Subscribe(event.TypeSceneChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.SceneChangedData); ok && data.Source != store.SourceRemote {
			p.lastChange.Store(time.Now().UnixNano())
		}
		return false
	})

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.commitLoop(interval)
	return nil
}

// Shutdown signals the commit goroutine to stop and waits for it.
func (p *AutoCommit) Shutdown() error {
	if p.stopChan != nil {
		logger.Debugf("%s: Shutting down...", p.Name())
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
	}
	return nil
}

func (p *AutoCommit) commitLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			p.commitIfIdle(now)
		case <-p.stopChan:
			logger.Debugf("%s: Received stop signal, exiting commit loop.", p.Name())
			return
		}
	}
}

// commitIfIdle flushes the pending edit when nothing changed for a full
// interval before now. It reports whether a history entry was committed.
func (p *AutoCommit) commitIfIdle(now time.Time) bool {
	p.mutex.RLock()
	interval := p.interval
	p.mutex.RUnlock()

	if p.host == nil || !p.host.HistoryPending() {
		return false
	}
	// A gesture held still is not idle; EndInteraction commits it.
	if p.host.HistoryInInteraction() {
		return false
	}
	idle := now.Sub(time.Unix(0, p.lastChange.Load()))
	if idle < interval {
		return false
	}
	if p.host.FlushHistory() {
		logger.Debugf("%s: Committed pending edit after %v idle", p.Name(), idle.Round(time.Millisecond))
		return true
	}
	return false
}
