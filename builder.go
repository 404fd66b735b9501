package main

import (
	"encoding/json"
	"fmt"
)

type Airframe string

const (
	AirframeF16C  Airframe = "F16C"
	AirframeFA18C Airframe = "FA18C"
)

// Airframes lists every supported airframe in a stable order.
var Airframes = []Airframe{AirframeF16C, AirframeFA18C}

// telemetry Model strings reported by the simulation for each airframe
var airframeModels = map[string]Airframe{
	"F-16C_50":      AirframeF16C,
	"FA-18C_hornet": AirframeFA18C,
}

func AirframeForModel(model string) (Airframe, bool) {
	a, ok := airframeModels[model]
	return a, ok
}

// FeedbackMode selects how an upload is acknowledged to the pilot.
type FeedbackMode string

const (
	FeedbackNone   FeedbackMode = "none"
	FeedbackAudio  FeedbackMode = "audio"
	FeedbackLights FeedbackMode = "lights"
	FeedbackBoth   FeedbackMode = "both"
)

func (m FeedbackMode) Audio() bool  { return m == FeedbackAudio || m == FeedbackBoth }
func (m FeedbackMode) Lights() bool { return m == FeedbackLights || m == FeedbackBoth }

// Builder turns one subsystem of a configuration into actions.
type Builder interface {
	Build(catalog *DeviceCatalog) *Sequence
}

// TeardownBuilder runs once after every subsystem has been built. It may
// only append to the aggregate sequence.
type TeardownBuilder interface {
	Teardown(seq *Sequence, catalog *DeviceCatalog)
}

type ConfigHeader struct {
	Name     string   `json:"name"`
	Airframe Airframe `json:"airframe"`
}

func (h ConfigHeader) Header() ConfigHeader { return h }

// Configuration is a validated, named set of avionics settings.
type Configuration interface {
	Header() ConfigHeader
	// Builders returns one builder per subsystem, in upload order.
	Builders() []Builder
	Teardown(feedback FeedbackMode) TeardownBuilder
}

// buildSystem wraps a subsystem's actions with its warm-up steps. A
// subsystem left entirely at its defaults produces an empty sequence and
// no warm-up either.
func buildSystem(catalog *DeviceCatalog, isDefault bool, setup func(e *emitter), body func(e *emitter)) *Sequence {
	seq := &Sequence{}
	if isDefault {
		return seq
	}
	e := newEmitter(catalog, seq)
	if setup != nil {
		setup(e)
	}
	body(e)
	return seq
}

// BuildSequence composes the full upload for cfg: every subsystem in order,
// then the airframe's teardown.
func BuildSequence(cfg Configuration, catalog *DeviceCatalog, feedback FeedbackMode) *Sequence {
	if hdr := cfg.Header(); hdr.Airframe != catalog.Airframe() {
		panic(fmt.Sprintf("configuration %q is for %s, catalog is for %s", hdr.Name, hdr.Airframe, catalog.Airframe()))
	}

	seq := &Sequence{}
	for _, b := range cfg.Builders() {
		seq.Extend(b.Build(catalog))
	}
	if td := cfg.Teardown(feedback); td != nil {
		td.Teardown(seq, catalog)
	}
	return seq
}

// ParseConfiguration decodes a configuration file, picking the concrete
// type from its airframe field.
func ParseConfiguration(data []byte) (Configuration, error) {
	var hdr ConfigHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	var cfg Configuration
	switch hdr.Airframe {
	case AirframeF16C:
		cfg = &F16CConfiguration{}
	case AirframeFA18C:
		cfg = &FA18CConfiguration{}
	default:
		return nil, fmt.Errorf("parse configuration: unknown airframe %q", hdr.Airframe)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s configuration: %w", hdr.Airframe, err)
	}
	return cfg, nil
}
