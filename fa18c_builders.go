package main

import "fmt"

const (
	fa18cChannels = 20
	// ALE-47 interval resolution in seconds
	fa18cIntervalStep = 0.25
)

type fa18cRadioBuilder struct {
	sys FA18CRadioSystem
}

func (b fa18cRadioBuilder) Build(catalog *DeviceCatalog) *Sequence {
	return buildSystem(catalog, b.sys.IsDefault(), nil, func(e *emitter) {
		b.radio(e, "COMM1", b.sys.COMM1)
		b.radio(e, "COMM2", b.sys.COMM2)
	})
}

// radio parks the channel knob on channel 1, then for each preset rotates
// to it, pulls the knob to open the UFC and types the frequency.
func (fa18cRadioBuilder) radio(e *emitter, comm string, r FA18CRadio) {
	if r.IsDefault() {
		return
	}
	e.pressN("UFC", comm+"_CHAN_DN", fa18cChannels)
	current := 1
	for _, p := range r.Presets {
		if p.Frequency == "" {
			continue
		}
		ch := int(mustNumber(p.Preset, comm+" preset"))
		if ch < 1 || ch > fa18cChannels {
			panic(fmt.Sprintf("%s preset %d out of range", comm, ch))
		}
		if ch > current {
			e.pressN("UFC", comm+"_CHAN_UP", ch-current)
		} else {
			e.pressN("UFC", comm+"_CHAN_DN", current-ch)
		}
		current = ch
		e.press("UFC", comm+"_PULL")
		e.keys("UFC", keypadDigits(p.Frequency))
		e.press("UFC", "ENT")
	}
}

// LDDI pushbuttons on the ALE-47 format
const (
	fa18cOSBMenu     = "OSB_18"
	fa18cOSBEW       = "OSB_17"
	fa18cOSBALE47    = "OSB_8"
	fa18cOSBProgMode = "OSB_5"
	fa18cOSBStepProg = "OSB_6"
	fa18cOSBArrowUp  = "OSB_19"
	fa18cOSBArrowDn  = "OSB_20"
)

// field selectors in ALE47Program.fields order
var fa18cALE47FieldOSB = [4]string{"OSB_12", "OSB_13", "OSB_14", "OSB_15"}

type fa18cCMSBuilder struct {
	sys FA18CCMSSystem
}

func (b fa18cCMSBuilder) Build(catalog *DeviceCatalog) *Sequence {
	setup := func(e *emitter) {
		e.pressN("LDDI", fa18cOSBMenu, 2)
		e.press("LDDI", fa18cOSBEW)
		e.press("LDDI", fa18cOSBALE47)
		e.press("LDDI", fa18cOSBProgMode)
	}
	return buildSystem(catalog, b.sys.IsDefault(), setup, func(e *emitter) {
		shown := 0
		for i, p := range b.sys.Programs {
			def := fa18cALE47Defaults[i]
			if p.isDefault(def) {
				continue
			}
			e.pressN("LDDI", fa18cOSBStepProg, i-shown)
			shown = i
			for f, delta := range p.steps(def) {
				b.adjust(e, f, delta)
			}
		}
		// the program selection wraps, step forward back to program 1
		e.pressN("LDDI", fa18cOSBStepProg, (len(b.sys.Programs)-shown)%len(b.sys.Programs))
		e.press("LDDI", fa18cOSBProgMode)
		e.press("LDDI", fa18cOSBMenu)
	})
}

// adjust selects a program field and walks it delta arrow presses from
// its default.
func (fa18cCMSBuilder) adjust(e *emitter, field, delta int) {
	if delta == 0 {
		return
	}
	e.press("LDDI", fa18cALE47FieldOSB[field])
	if delta > 0 {
		e.pressN("LDDI", fa18cOSBArrowUp, delta)
	} else {
		e.pressN("LDDI", fa18cOSBArrowDn, -delta)
	}
}

type fa18cTeardown struct {
	feedback FeedbackMode
}

func (t fa18cTeardown) Teardown(seq *Sequence, catalog *DeviceCatalog) {
	if !t.feedback.Lights() {
		return
	}
	e := newEmitter(catalog, seq)
	e.set("LIGHTS", "LT_TEST", 1)
	e.wait(lightsPulseMs)
	e.set("LIGHTS", "LT_TEST", 0)
}
