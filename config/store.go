package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yllada/ip-applet/common"
)

// fileFormat is the on-disk layout of the preference set.
type fileFormat struct {
	// EnabledInterfaces lists interface names to display.
	EnabledInterfaces []string `yaml:"enabled_interfaces"`
	// ShowPublicIP toggles the public address row.
	ShowPublicIP bool `yaml:"show_public_ip"`
	// PublicIPService is one of: ifconfig, ipify, ipify4, icanhazmyip.
	PublicIPService string `yaml:"public_ip_service"`
	// RefreshRateSecs is one of 5, 10, 15, 30, 60.
	RefreshRateSecs uint `yaml:"refresh_rate_secs"`
	// TextColor is one of: default, white, green, cyan, yellow, orange, red.
	TextColor string `yaml:"text_color"`
	// Notify enables public IP change notifications.
	Notify *bool `yaml:"notify,omitempty"`
}

// Store loads and saves preferences in a YAML file.
type Store struct {
	path string
	// unreadable is set when Load rejected the file. Save refuses to
	// overwrite it until a later Load succeeds.
	unreadable error
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a store in the user's configuration directory.
func DefaultStore() (*Store, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(dir, common.ConfigFileName)), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the preference set.
// If the file doesn't exist, it writes and returns the defaults.
func (s *Store) Load() (*Preferences, error) {
	s.unreadable = nil
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		prefs := DefaultPreferences()
		if err := s.Save(prefs); err != nil {
			return prefs, err
		}
		return prefs, nil
	}
	if err != nil {
		s.unreadable = err
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	var raw fileFormat
	if err := decoder.Decode(&raw); errors.Is(err, io.EOF) {
		return DefaultPreferences(), nil
	} else if err != nil {
		s.unreadable = err
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}

	return raw.preferences(), nil
}

// preferences converts the file layout, replacing invalid fields with defaults.
func (f *fileFormat) preferences() *Preferences {
	prefs := DefaultPreferences()
	prefs.EnabledInterfaces = make(map[string]struct{}, len(f.EnabledInterfaces))
	for _, name := range f.EnabledInterfaces {
		if name != "" {
			prefs.EnabledInterfaces[name] = struct{}{}
		}
	}
	prefs.ShowPublicIP = f.ShowPublicIP

	if service, err := ParseService(f.PublicIPService); err == nil {
		prefs.PublicIPService = service
	} else {
		common.LogWarn("Ignoring configured service: %v", err)
	}

	if ValidRefreshInterval(f.RefreshRateSecs) {
		prefs.RefreshIntervalSecs = f.RefreshRateSecs
	} else {
		common.LogWarn("Ignoring configured refresh rate: %v: %d", common.ErrInvalidRefreshInterval, f.RefreshRateSecs)
	}

	if color, err := ParseTextColor(f.TextColor); err == nil {
		prefs.TextColor = color
	} else {
		common.LogWarn("Ignoring configured text color: %v", err)
	}

	if f.Notify != nil {
		prefs.Notify = *f.Notify
	}
	return prefs
}

// Save writes the preference set to the file. A file that the last Load
// could not read is left untouched.
func (s *Store) Save(prefs *Preferences) error {
	if s.unreadable != nil {
		return fmt.Errorf("%w: not overwriting %s, fix or remove it first: %v", common.ErrConfigSave, s.path, s.unreadable)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: creating config directory: %v", common.ErrConfigSave, err)
	}

	notify := prefs.Notify
	raw := fileFormat{
		EnabledInterfaces: prefs.EnabledList(),
		ShowPublicIP:      prefs.ShowPublicIP,
		PublicIPService:   prefs.PublicIPService.ID(),
		RefreshRateSecs:   prefs.RefreshIntervalSecs,
		TextColor:         prefs.TextColor.ID(),
		Notify:            &notify,
	}

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return fmt.Errorf("%w: serializing: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}
