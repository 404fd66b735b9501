package main

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// Command is one controllable action on a Device. A negative DelayMs asks
// the cockpit side to assert Value and hold it without releasing.
type Command struct {
	ID      int
	Name    string
	DelayMs int
	Value   float64
	Repeat  int
}

// Device is a simulated cockpit subsystem addressed by a numeric id.
type Device struct {
	ID       int
	Name     string
	commands map[string]Command
}

// Command looks up a command by its action name.
func (d *Device) Command(name string) (Command, bool) {
	c, ok := d.commands[name]
	return c, ok
}

// NotFoundError reports a device name missing from an airframe's catalog.
type NotFoundError struct {
	Airframe Airframe
	Device   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s catalog: no device named %q", e.Airframe, e.Device)
}

// DeviceCatalog maps device names to devices for one airframe. It is
// populated once and never modified, so it may be shared freely.
type DeviceCatalog struct {
	airframe Airframe
	devices  map[string]*Device
}

func (c *DeviceCatalog) Airframe() Airframe {
	return c.airframe
}

func (c *DeviceCatalog) GetDevice(name string) (*Device, error) {
	d, ok := c.devices[name]
	if !ok {
		return nil, &NotFoundError{Airframe: c.airframe, Device: name}
	}
	return d, nil
}

type catalogFile struct {
	Airframe string          `yaml:"airframe"`
	Devices  []catalogDevice `yaml:"devices"`
}

type catalogDevice struct {
	Name     string           `yaml:"name"`
	ID       int              `yaml:"id"`
	Commands []catalogCommand `yaml:"commands"`
}

type catalogCommand struct {
	Name    string   `yaml:"name"`
	ID      int      `yaml:"id"`
	DelayMs *int     `yaml:"delay_ms"`
	Value   *float64 `yaml:"value"`
	Repeat  int      `yaml:"repeat"`
}

// LoadCatalog builds the catalog for an airframe from its embedded table.
// Commands without an explicit delay_ms get defaultDelayMs.
func LoadCatalog(airframe Airframe, defaultDelayMs int) (*DeviceCatalog, error) {
	name := "catalogs/" + strings.ToLower(string(airframe)) + ".yaml"
	data, err := catalogFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	return ParseCatalog(data, defaultDelayMs)
}

// ParseCatalog decodes a YAML device table.
func ParseCatalog(data []byte, defaultDelayMs int) (*DeviceCatalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if f.Airframe == "" {
		return nil, fmt.Errorf("parse catalog: missing airframe")
	}

	cat := &DeviceCatalog{
		airframe: Airframe(f.Airframe),
		devices:  make(map[string]*Device, len(f.Devices)),
	}
	for _, fd := range f.Devices {
		if _, dup := cat.devices[fd.Name]; dup {
			return nil, fmt.Errorf("%s catalog: duplicate device %q", f.Airframe, fd.Name)
		}
		if fd.ID <= 0 {
			return nil, fmt.Errorf("%s catalog: device %q has invalid id %d", f.Airframe, fd.Name, fd.ID)
		}

		dev := &Device{
			ID:       fd.ID,
			Name:     fd.Name,
			commands: make(map[string]Command, len(fd.Commands)),
		}
		for _, fc := range fd.Commands {
			if _, dup := dev.commands[fc.Name]; dup {
				return nil, fmt.Errorf("%s catalog: device %q has duplicate command %q", f.Airframe, fd.Name, fc.Name)
			}
			cmd := Command{
				ID:      fc.ID,
				Name:    fc.Name,
				DelayMs: defaultDelayMs,
				Value:   1,
				Repeat:  1,
			}
			if fc.DelayMs != nil {
				cmd.DelayMs = *fc.DelayMs
			}
			if fc.Value != nil {
				cmd.Value = *fc.Value
			}
			if fc.Repeat > 0 {
				cmd.Repeat = fc.Repeat
			}
			dev.commands[fc.Name] = cmd
		}
		cat.devices[fd.Name] = dev
	}
	return cat, nil
}
