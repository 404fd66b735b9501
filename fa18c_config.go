package main

import "math"

// FA18CConfiguration is the upload-relevant part of an F/A-18C
// configuration.
type FA18CConfiguration struct {
	ConfigHeader
	Radio FA18CRadioSystem `json:"radio"`
	CMS   FA18CCMSSystem   `json:"cms"`
}

func (c *FA18CConfiguration) Builders() []Builder {
	return []Builder{
		fa18cRadioBuilder{sys: c.Radio},
		fa18cCMSBuilder{sys: c.CMS},
	}
}

func (c *FA18CConfiguration) Teardown(feedback FeedbackMode) TeardownBuilder {
	return fa18cTeardown{feedback: feedback}
}

// FA18CRadio presets are channels 1-20 on the UFC channel knob.
type FA18CRadio struct {
	Presets []RadioPreset `json:"presets"`
}

func (r FA18CRadio) IsDefault() bool {
	for _, p := range r.Presets {
		if p.Frequency != "" {
			return false
		}
	}
	return true
}

type FA18CRadioSystem struct {
	COMM1 FA18CRadio `json:"comm1"`
	COMM2 FA18CRadio `json:"comm2"`
}

func (s FA18CRadioSystem) IsDefault() bool {
	return s.COMM1.IsDefault() && s.COMM2.IsDefault()
}

// ALE47Program is one manual countermeasures program. Interval is in
// seconds, in steps of 0.25.
type ALE47Program struct {
	Chaff    string `json:"chaff"`
	Flare    string `json:"flare"`
	Repeat   string `json:"repeat"`
	Interval string `json:"interval"`
}

func (p ALE47Program) fields() [4]string {
	return [4]string{p.Chaff, p.Flare, p.Repeat, p.Interval}
}

// steps is the signed number of arrow presses that walks each field from
// def to p. Empty fields stay at their default.
func (p ALE47Program) steps(def ALE47Program) [4]int {
	var out [4]int
	v, d := p.fields(), def.fields()
	for i := range v {
		if isDefault(v[i], d[i]) {
			continue
		}
		step := 1.0
		if i == 3 {
			step = fa18cIntervalStep
		}
		target := mustNumber(v[i], "ALE-47 field")
		start := mustNumber(d[i], "ALE-47 default")
		out[i] = int(math.Round((target - start) / step))
	}
	return out
}

// isDefault is true when no field needs an arrow press, so "1.10" for a
// 1.00 interval is default as well as "1.0".
func (p ALE47Program) isDefault(def ALE47Program) bool {
	return p.steps(def) == [4]int{}
}

type FA18CCMSSystem struct {
	Programs [5]ALE47Program `json:"programs"`
}

var fa18cALE47Defaults = [5]ALE47Program{
	{Chaff: "1", Flare: "1", Repeat: "10", Interval: "1.00"},
	{Chaff: "1", Flare: "1", Repeat: "10", Interval: "0.50"},
	{Chaff: "2", Flare: "2", Repeat: "5", Interval: "1.00"},
	{Chaff: "2", Flare: "2", Repeat: "10", Interval: "2.00"},
	{Chaff: "1", Flare: "1", Repeat: "2", Interval: "0.50"},
}

func (s FA18CCMSSystem) IsDefault() bool {
	for i, p := range s.Programs {
		if !p.isDefault(fa18cALE47Defaults[i]) {
			return false
		}
	}
	return true
}
