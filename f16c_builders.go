package main

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// pause after a master mode change before touching the MFDs
	f16cModeSettleMs = 500
	lightsPulseMs    = 1000
)

// every DED based system starts from the CNI page
func f16cDEDWarmup(e *emitter) {
	e.press("UFC", "RTN")
}

// dedCursor tracks the DED scratchpad row so fields can be reached with
// the fewest rocker presses.
type dedCursor struct {
	e   *emitter
	row int
}

func (c *dedCursor) moveTo(row int) {
	if row > c.row {
		c.e.pressN("UFC", "DOWN", row-c.row)
	} else {
		c.e.pressN("UFC", "UP", c.row-row)
	}
	c.row = row
}

func (c *dedCursor) enter(row int, keys string) {
	c.moveTo(row)
	c.e.keys("UFC", keys)
	c.e.press("UFC", "ENTR")
}

func (c *dedCursor) home() {
	c.moveTo(0)
}

type f16cRadioBuilder struct {
	sys F16CRadioSystem
}

func (b f16cRadioBuilder) Build(catalog *DeviceCatalog) *Sequence {
	return buildSystem(catalog, b.sys.IsDefault(), f16cDEDWarmup, func(e *emitter) {
		b.radio(e, "COM1", b.sys.COM1)
		b.radio(e, "COM2", b.sys.COM2)
	})
}

func (f16cRadioBuilder) radio(e *emitter, key string, r F16CRadio) {
	if r.IsDefault() {
		return
	}
	e.press("UFC", key)
	cur := &dedCursor{e: e}
	for _, p := range r.Presets {
		if p.Frequency == "" {
			continue
		}
		cur.enter(0, keypadDigits(p.Preset))
		cur.enter(1, keypadDigits(p.Frequency))
		cur.home()
	}
	e.field(r.DefaultTuning, "", func(v string) {
		cur.enter(0, keypadDigits(v))
	})
	e.press("UFC", "RTN")
}

type f16cCMDSBuilder struct {
	sys F16CCMDSSystem
}

func (b f16cCMDSBuilder) Build(catalog *DeviceCatalog) *Sequence {
	return buildSystem(catalog, b.sys.IsDefault(), f16cDEDWarmup, func(e *emitter) {
		e.press("UFC", "LIST")
		e.press("UFC", "7")
		b.programs(e, b.sys.Chaff, f16cChaffDefaults)
		if !programsDefault(b.sys.Flare, f16cFlareDefaults) {
			e.press("UFC", "SEQ")
			b.programs(e, b.sys.Flare, f16cFlareDefaults)
		}
		e.press("UFC", "RTN")
	})
}

func programsDefault(progs, defs [6]CMDSProgram) bool {
	for i := range progs {
		if !progs[i].isDefault(defs[i]) {
			return false
		}
	}
	return true
}

// programs steps through the program numbers with INC, edits the changed
// fields, and leaves the page back on program 1.
func (f16cCMDSBuilder) programs(e *emitter, progs, defs [6]CMDSProgram) {
	shown := 0
	for i, p := range progs {
		if p.isDefault(defs[i]) {
			continue
		}
		e.pressN("UFC", "INC", i-shown)
		shown = i

		cur := &dedCursor{e: e}
		vals, dvals := p.fields(), defs[i].fields()
		for f := range vals {
			e.field(vals[f], dvals[f], func(v string) {
				cur.enter(f, keypadDigits(v))
			})
		}
		cur.home()
	}
	e.pressN("UFC", "DEC", shown)
}

type f16cSTPTBuilder struct {
	sys F16CSTPTSystem
}

func (b f16cSTPTBuilder) Build(catalog *DeviceCatalog) *Sequence {
	return buildSystem(catalog, b.sys.IsDefault(), f16cDEDWarmup, func(e *emitter) {
		for _, pt := range b.sys.Points {
			b.steerpoint(e, pt)
			if pt.OA1 != nil {
				b.offsetAimpoint(e, pt, *pt.OA1)
			}
		}
	})
}

func (f16cSTPTBuilder) steerpoint(e *emitter, pt Steerpoint) {
	e.press("UFC", "4")
	cur := &dedCursor{e: e}
	cur.enter(0, keypadDigits(pt.Number))
	e.field(pt.Lat, "", func(v string) {
		digits, north := ddmDigits(mustNumber(v, "steerpoint "+pt.Number+" lat"), 2)
		hemi := "8"
		if north {
			hemi = "2"
		}
		cur.enter(1, hemi+digits)
	})
	e.field(pt.Lon, "", func(v string) {
		digits, east := ddmDigits(mustNumber(v, "steerpoint "+pt.Number+" lon"), 3)
		hemi := "4"
		if east {
			hemi = "6"
		}
		cur.enter(2, hemi+digits)
	})
	e.field(pt.Elev, "", func(v string) {
		cur.enter(3, keypadDigits(v))
	})
	cur.home()
	e.press("UFC", "RTN")
}

// offsetAimpoint enters OA1 on the DEST pages as range (ft) and true
// bearing (tenths of a degree) from the steerpoint.
func (f16cSTPTBuilder) offsetAimpoint(e *emitter, pt Steerpoint, oa OffsetAimpoint) {
	where := "steerpoint " + pt.Number + " oa1"
	rng, brg := rangeBearing(
		mustNumber(pt.Lat, where+" steerpoint lat"), mustNumber(pt.Lon, where+" steerpoint lon"),
		mustNumber(oa.Lat, where+" lat"), mustNumber(oa.Lon, where+" lon"))
	brg = math.Mod(math.Round(brg*10), 3600) / 10

	e.press("UFC", "LIST")
	e.press("UFC", "1")
	e.press("UFC", "SEQ")
	cur := &dedCursor{e: e}
	cur.enter(0, keypadDigits(pt.Number))
	cur.enter(1, strconv.Itoa(int(math.Round(rng))))
	cur.enter(2, tenthsDigits(brg))
	e.field(oa.Elev, "", func(v string) {
		cur.enter(3, keypadDigits(v))
	})
	cur.home()
	e.press("UFC", "RTN")
}

var f16cMFDSlotOSB = [3]string{"OSB_14", "OSB_13", "OSB_12"}

var f16cMFDFormatOSB = map[string]string{
	"BLANK": "OSB_1",
	"HAD":   "OSB_2",
	"RCCE":  "OSB_4",
	"RESET": "OSB_5",
	"SMS":   "OSB_6",
	"HSD":   "OSB_7",
	"DTE":   "OSB_8",
	"TEST":  "OSB_9",
	"FLCS":  "OSB_10",
	"FLIR":  "OSB_16",
	"TFR":   "OSB_17",
	"WPN":   "OSB_18",
	"TGP":   "OSB_19",
	"FCR":   "OSB_20",
}

type f16cMFDBuilder struct {
	sys F16CMFDSystem
}

func (b f16cMFDBuilder) Build(catalog *DeviceCatalog) *Sequence {
	modes := []struct {
		key        string
		fmts, defs MFDFormats
	}{
		{"", b.sys.NAV, f16cMFDNavDefaults},
		{"AA", b.sys.AA, f16cMFDAADefaults},
		{"AG", b.sys.AG, f16cMFDAGDefaults},
	}
	return buildSystem(catalog, b.sys.IsDefault(), nil, func(e *emitter) {
		for _, m := range modes {
			if m.fmts.isDefault(m.defs) {
				continue
			}
			if m.key != "" {
				e.press("UFC", m.key)
				e.wait(f16cModeSettleMs)
			}
			b.display(e, "MFD_L", m.fmts.Left, m.defs.Left)
			b.display(e, "MFD_R", m.fmts.Right, m.defs.Right)
			if m.key != "" {
				e.press("UFC", m.key)
			}
		}
	})
}

// display opens each changed slot's format menu (two presses on the slot
// OSB) and picks the format, then reselects the primary slot.
func (f16cMFDBuilder) display(e *emitter, device string, slots, defs [3]string) {
	changed := false
	for i := range slots {
		e.field(slots[i], defs[i], func(v string) {
			osb, ok := f16cMFDFormatOSB[v]
			if !ok {
				panic(fmt.Sprintf("%s slot %d: unknown format %q", device, i+1, v))
			}
			e.pressN(device, f16cMFDSlotOSB[i], 2)
			e.press(device, osb)
			changed = true
		})
	}
	if changed {
		e.press(device, f16cMFDSlotOSB[0])
	}
}

type f16cMiscBuilder struct {
	sys F16CMiscSystem
}

func (b f16cMiscBuilder) Build(catalog *DeviceCatalog) *Sequence {
	s, d := b.sys, f16cMiscDefaults
	return buildSystem(catalog, s.IsDefault(), f16cDEDWarmup, func(e *emitter) {
		e.field(s.Bingo, d.Bingo, func(v string) {
			e.press("UFC", "LIST")
			e.press("UFC", "2")
			e.keys("UFC", keypadDigits(v))
			e.press("UFC", "ENTR")
			e.press("UFC", "RTN")
		})
		if !isDefault(s.TACANChannel, d.TACANChannel) || !isDefault(s.TACANBand, d.TACANBand) {
			e.press("UFC", "1")
			e.field(s.TACANChannel, d.TACANChannel, func(v string) {
				e.keys("UFC", keypadDigits(v))
				e.press("UFC", "ENTR")
			})
			// "0" ENTR toggles X/Y
			e.field(s.TACANBand, d.TACANBand, func(string) {
				e.press("UFC", "0")
				e.press("UFC", "ENTR")
			})
			e.press("UFC", "RTN")
		}
		e.field(s.LaserCode, d.LaserCode, func(v string) {
			e.press("UFC", "LIST")
			e.press("UFC", "0")
			e.press("UFC", "5")
			e.keys("UFC", keypadDigits(v))
			e.press("UFC", "ENTR")
			e.press("UFC", "RTN")
		})
	})
}

// f16cTeardown pulses the MAL & IND LTS test switch when the pilot wants a
// lights acknowledgement. The switch latches, so it is set and later reset
// explicitly.
type f16cTeardown struct {
	feedback FeedbackMode
}

func (t f16cTeardown) Teardown(seq *Sequence, catalog *DeviceCatalog) {
	if !t.feedback.Lights() {
		return
	}
	e := newEmitter(catalog, seq)
	e.set("INTL", "MAL_IND_LTS", 1)
	e.wait(lightsPulseMs)
	e.set("INTL", "MAL_IND_LTS", 0)
}
