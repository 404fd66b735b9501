package main

// F16CConfiguration is the upload-relevant part of an F-16C configuration.
type F16CConfiguration struct {
	ConfigHeader
	Radio F16CRadioSystem `json:"radio"`
	CMDS  F16CCMDSSystem  `json:"cmds"`
	STPT  F16CSTPTSystem  `json:"stpt"`
	MFD   F16CMFDSystem   `json:"mfd"`
	Misc  F16CMiscSystem  `json:"misc"`
}

func (c *F16CConfiguration) Builders() []Builder {
	return []Builder{
		f16cRadioBuilder{sys: c.Radio},
		f16cCMDSBuilder{sys: c.CMDS},
		f16cSTPTBuilder{sys: c.STPT},
		f16cMFDBuilder{sys: c.MFD},
		f16cMiscBuilder{sys: c.Misc},
	}
}

func (c *F16CConfiguration) Teardown(feedback FeedbackMode) TeardownBuilder {
	return f16cTeardown{feedback: feedback}
}

// RadioPreset is one preset channel and its frequency in MHz.
type RadioPreset struct {
	Preset    string `json:"preset"`
	Frequency string `json:"frequency"`
}

type F16CRadio struct {
	Presets       []RadioPreset `json:"presets"`
	DefaultTuning string        `json:"defaultTuning"`
}

func (r F16CRadio) IsDefault() bool {
	for _, p := range r.Presets {
		if p.Frequency != "" {
			return false
		}
	}
	return isDefault(r.DefaultTuning, "")
}

type F16CRadioSystem struct {
	COM1 F16CRadio `json:"com1"`
	COM2 F16CRadio `json:"com2"`
}

func (s F16CRadioSystem) IsDefault() bool {
	return s.COM1.IsDefault() && s.COM2.IsDefault()
}

// CMDSProgram holds burst quantity/interval and salvo quantity/interval.
type CMDSProgram struct {
	BQ string `json:"bq"`
	BI string `json:"bi"`
	SQ string `json:"sq"`
	SI string `json:"si"`
}

func (p CMDSProgram) fields() [4]string {
	return [4]string{p.BQ, p.BI, p.SQ, p.SI}
}

func (p CMDSProgram) isDefault(def CMDSProgram) bool {
	v, d := p.fields(), def.fields()
	for i := range v {
		if !isDefault(v[i], d[i]) {
			return false
		}
	}
	return true
}

// F16CCMDSSystem holds the six manual chaff and flare programs.
type F16CCMDSSystem struct {
	Chaff [6]CMDSProgram `json:"chaff"`
	Flare [6]CMDSProgram `json:"flare"`
}

var f16cChaffDefaults = [6]CMDSProgram{
	{BQ: "1", BI: "0.020", SQ: "10", SI: "1.00"},
	{BQ: "1", BI: "0.020", SQ: "10", SI: "0.50"},
	{BQ: "2", BI: "0.100", SQ: "5", SI: "1.00"},
	{BQ: "2", BI: "0.100", SQ: "10", SI: "2.00"},
	{BQ: "2", BI: "0.050", SQ: "20", SI: "0.75"},
	{BQ: "2", BI: "0.050", SQ: "20", SI: "0.75"},
}

var f16cFlareDefaults = [6]CMDSProgram{
	{BQ: "1", BI: "0.020", SQ: "10", SI: "1.00"},
	{BQ: "1", BI: "0.020", SQ: "10", SI: "0.50"},
	{BQ: "2", BI: "0.100", SQ: "5", SI: "1.00"},
	{BQ: "2", BI: "0.100", SQ: "10", SI: "2.00"},
	{BQ: "1", BI: "0.050", SQ: "20", SI: "0.75"},
	{BQ: "1", BI: "0.050", SQ: "20", SI: "0.75"},
}

func (s F16CCMDSSystem) IsDefault() bool {
	for i := range s.Chaff {
		if !s.Chaff[i].isDefault(f16cChaffDefaults[i]) || !s.Flare[i].isDefault(f16cFlareDefaults[i]) {
			return false
		}
	}
	return true
}

// Steerpoint coordinates are decimal degrees, elevation is feet MSL.
type Steerpoint struct {
	Number string          `json:"number"`
	Lat    string          `json:"lat"`
	Lon    string          `json:"lon"`
	Elev   string          `json:"elev"`
	OA1    *OffsetAimpoint `json:"oa1,omitempty"`
}

// OffsetAimpoint is a target point entered as range and bearing from its
// steerpoint.
type OffsetAimpoint struct {
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
	Elev string `json:"elev"`
}

type F16CSTPTSystem struct {
	Points []Steerpoint `json:"points"`
}

func (s F16CSTPTSystem) IsDefault() bool {
	return len(s.Points) == 0
}

// MFDFormats lists the three format slots of each display, primary first.
type MFDFormats struct {
	Left  [3]string `json:"left"`
	Right [3]string `json:"right"`
}

func (f MFDFormats) isDefault(def MFDFormats) bool {
	for i := range f.Left {
		if !isDefault(f.Left[i], def.Left[i]) || !isDefault(f.Right[i], def.Right[i]) {
			return false
		}
	}
	return true
}

type F16CMFDSystem struct {
	NAV MFDFormats `json:"nav"`
	AA  MFDFormats `json:"aa"`
	AG  MFDFormats `json:"ag"`
}

var (
	f16cMFDNavDefaults = MFDFormats{Left: [3]string{"FCR", "TEST", "DTE"}, Right: [3]string{"SMS", "HSD", "BLANK"}}
	f16cMFDAADefaults  = MFDFormats{Left: [3]string{"FCR", "FLCS", "TEST"}, Right: [3]string{"SMS", "HSD", "BLANK"}}
	f16cMFDAGDefaults  = MFDFormats{Left: [3]string{"FCR", "FLCS", "TEST"}, Right: [3]string{"SMS", "HSD", "BLANK"}}
)

func (s F16CMFDSystem) IsDefault() bool {
	return s.NAV.isDefault(f16cMFDNavDefaults) && s.AA.isDefault(f16cMFDAADefaults) && s.AG.isDefault(f16cMFDAGDefaults)
}

type F16CMiscSystem struct {
	Bingo        string `json:"bingo"`
	TACANChannel string `json:"tacanChannel"`
	TACANBand    string `json:"tacanBand"`
	LaserCode    string `json:"laserCode"`
}

var f16cMiscDefaults = F16CMiscSystem{
	Bingo:        "2000",
	TACANChannel: "1",
	TACANBand:    "X",
	LaserCode:    "1688",
}

func (s F16CMiscSystem) IsDefault() bool {
	d := f16cMiscDefaults
	return isDefault(s.Bingo, d.Bingo) &&
		isDefault(s.TACANChannel, d.TACANChannel) &&
		isDefault(s.TACANBand, d.TACANBand) &&
		isDefault(s.LaserCode, d.LaserCode)
}
