package helptext

// DefaultIconClass is the span class treated as an icon marker.
const DefaultIconClass = "material-icons"

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	iconClasses []string
	softWrap    bool
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.iconClasses == nil {
		cfg.iconClasses = []string{DefaultIconClass}
	}
	return cfg
}

// WithIconClasses replaces the span classes whose content is suppressed.
func WithIconClasses(classes ...string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.iconClasses = append([]string{}, classes...)
	}
}

// WithSoftWrap enables breaking words longer than the display width.
func WithSoftWrap(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.softWrap = enabled
	}
}
