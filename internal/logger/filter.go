package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook marks entries that fall outside the configured allow lists.
// Filtering keys: module, collection, endpoint (or path), method and level.
// An entry without the field being filtered on is allowed.
type FilterHook struct {
	allowedModules     map[string]bool
	allowedCollections map[string]bool
	allowedEndpoints   map[string]bool
	allowedMethods     map[string]bool
	allowedLogTypes    map[string]bool

	mu sync.RWMutex
}

// NewFilterHook creates a filter from cfg.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}
	hook.UpdateFilters(cfg)
	return hook
}

// UpdateFilters replaces the allow lists at runtime.
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.allowedModules = parseFilter(cfg.FilterModules)
	h.allowedCollections = parseFilter(cfg.FilterCollections)
	h.allowedEndpoints = parseFilter(cfg.FilterEndpoints)
	h.allowedMethods = parseFilter(cfg.FilterMethods)
	h.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
}

// parseFilter turns "a,b,c" into a lowercase set. nil means allow all.
func parseFilter(filterStr string) map[string]bool {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" || filterStr == "*" {
		return nil
	}

	result := make(map[string]bool)
	for _, v := range strings.Split(filterStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result[strings.ToLower(v)] = true
		}
	}
	if result["*"] {
		return nil
	}
	return result
}

func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire sets _filtered on rejected entries; AsyncHook skips them.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.allowed(entry) {
		entry.Data[filteredKey] = true
	}
	return nil
}

func (h *FilterHook) allowed(entry *logrus.Entry) bool {
	if h.allowedLogTypes != nil && !h.allowedLogTypes[entry.Level.String()] {
		return false
	}
	if !matchField(h.allowedModules, entry.Data["module"]) {
		return false
	}
	if !matchField(h.allowedCollections, entry.Data["collection"]) {
		return false
	}
	if !matchField(h.allowedMethods, entry.Data["method"]) {
		return false
	}

	if h.allowedEndpoints != nil {
		endpoint, _ := entry.Data["endpoint"].(string)
		if endpoint == "" {
			endpoint, _ = entry.Data["path"].(string)
		}
		if endpoint != "" {
			endpoint = strings.ToLower(endpoint)
			for prefix := range h.allowedEndpoints {
				if strings.HasPrefix(endpoint, prefix) {
					return true
				}
			}
			return false
		}
	}
	return true
}

func matchField(allowed map[string]bool, value any) bool {
	if allowed == nil {
		return true
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return true
	}
	return allowed[strings.ToLower(s)]
}
