package theme

import "log/slog"

// Controller applies theme selections and persists them. Persistence is
// best-effort; a failed save keeps the selection for the current run and is
// only logged.
type Controller struct {
	store    *Store
	settings Settings
}

// NewController loads the saved settings and returns a controller holding
// the active theme. A load failure falls back to defaults.
func NewController(store *Store) *Controller {
	settings, err := store.Load()
	if err != nil {
		slog.Warn("Failed to load saved settings, using defaults", "error", err)
		settings = Settings{Theme: Default}
	}
	settings.Theme = Normalize(settings.Theme)
	return &Controller{store: store, settings: settings}
}

// Current returns the active theme.
func (c *Controller) Current() Theme {
	return c.settings.Theme
}

// Settings returns the loaded client settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Apply activates a theme and persists the choice. Unknown names fall back
// to the default theme.
func (c *Controller) Apply(name Theme) Theme {
	c.settings.Theme = Normalize(name)
	if err := c.store.Save(c.settings); err != nil {
		slog.Warn("Failed to persist theme selection", "error", err)
	}
	return c.settings.Theme
}
