package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newF16CConfig() *F16CConfiguration {
	return &F16CConfiguration{ConfigHeader: ConfigHeader{Name: "test", Airframe: AirframeF16C}}
}

func encodeF16C(t *testing.T, cfg *F16CConfiguration, feedback FeedbackMode) string {
	t.Helper()
	return Encode(BuildSequence(cfg, mustCatalog(t, AirframeF16C), feedback))
}

func TestF16CDefaultConfigurationIsEmpty(t *testing.T) {
	cat := mustCatalog(t, AirframeF16C)
	cfg := newF16CConfig()

	for _, b := range cfg.Builders() {
		assert.Equal(t, 0, b.Build(cat).Len())
	}
	assert.Equal(t, "[]", encodeF16C(t, cfg, FeedbackNone))
	assert.Equal(t, "[]", encodeF16C(t, cfg, FeedbackAudio))
}

func TestF16CExplicitDefaultsAreSuppressed(t *testing.T) {
	cfg := newF16CConfig()
	cfg.Misc = F16CMiscSystem{Bingo: "2000", TACANChannel: "1", TACANBand: "X", LaserCode: "1688"}
	cfg.CMDS.Chaff[0] = f16cChaffDefaults[0]
	cfg.CMDS.Flare[5] = f16cFlareDefaults[5]
	cfg.MFD.NAV = f16cMFDNavDefaults

	assert.Equal(t, "[]", encodeF16C(t, cfg, FeedbackNone))
}

func TestF16CNumericallyEqualFieldsAreSuppressed(t *testing.T) {
	cfg := newF16CConfig()
	cfg.Misc.Bingo = "2000.0"
	cfg.Misc.LaserCode = " 1688"
	cfg.CMDS.Chaff[0].BI = f16cChaffDefaults[0].BI + "0"

	assert.Equal(t, "[]", encodeF16C(t, cfg, FeedbackNone))
}

func TestIsDefault(t *testing.T) {
	assert.True(t, isDefault("", "5"))
	assert.True(t, isDefault("5", "5"))
	assert.True(t, isDefault("0.50", "0.5"))
	assert.False(t, isDefault("0.75", "0.5"))
	assert.False(t, isDefault("TGP", "FCR"))
	assert.False(t, isDefault("Y", "X"))
}

func TestF16CSingleFieldChange(t *testing.T) {
	cfg := newF16CConfig()
	cfg.Misc.Bingo = "3000"

	want := "[(17, 3032, -1, 100), (17, 3015, 1, 100), (17, 3004, 1, 100), (17, 3005, 1, 100), " +
		"(17, 3002, 1, 100), (17, 3002, 1, 100), (17, 3002, 1, 100), (17, 3016, 1, 100), (17, 3032, -1, 100)]"
	assert.Equal(t, want, encodeF16C(t, cfg, FeedbackNone))
}

func TestF16CRadioBuilder(t *testing.T) {
	cfg := newF16CConfig()
	cfg.Radio.COM1.Presets = []RadioPreset{
		{Preset: "5", Frequency: "251.000"},
		{Preset: "6"},
	}

	want := "[(17, 3032, -1, 100), (17, 3012, 1, 100), " +
		"(17, 3007, 1, 100), (17, 3016, 1, 100), " +
		"(17, 3030, -1, 100), (17, 3004, 1, 100), (17, 3007, 1, 100), (17, 3003, 1, 100), " +
		"(17, 3002, 1, 100), (17, 3002, 1, 100), (17, 3002, 1, 100), (17, 3016, 1, 100), " +
		"(17, 3030, 1, 100), (17, 3032, -1, 100)]"
	assert.Equal(t, want, encodeF16C(t, cfg, FeedbackNone))
}

func TestF16CCMDSBuilder(t *testing.T) {
	cfg := newF16CConfig()
	cfg.CMDS.Chaff[1].BQ = "2"

	want := "[(17, 3032, -1, 100), (17, 3015, 1, 100), (17, 3009, 1, 100), " +
		"(17, 3025, 1, 100), (17, 3004, 1, 100), (17, 3016, 1, 100), " +
		"(17, 3025, -1, 100), (17, 3032, -1, 100)]"
	assert.Equal(t, want, encodeF16C(t, cfg, FeedbackNone))
}

func TestF16CCMDSFlareOnly(t *testing.T) {
	cfg := newF16CConfig()
	cfg.CMDS.Flare[0].SQ = "4"

	got := encodeF16C(t, cfg, FeedbackNone)
	// SEQ switches to the flare page
	assert.Contains(t, got, "(17, 3032, 1, 100)")
	// salvo quantity is the third row
	assert.Contains(t, got, "(17, 3030, -1, 100), (17, 3030, -1, 100), (17, 3006, 1, 100), (17, 3016, 1, 100), (17, 3030, 1, 100), (17, 3030, 1, 100)")
	assert.NotContains(t, got, "3025")
}

func TestF16CSteerpointBuilder(t *testing.T) {
	cfg := newF16CConfig()
	cfg.STPT.Points = []Steerpoint{{Number: "1", Lat: "36.208333"}}

	want := "[(17, 3032, -1, 100), (17, 3006, 1, 100), (17, 3003, 1, 100), (17, 3016, 1, 100), " +
		"(17, 3030, -1, 100), (17, 3004, 1, 100), (17, 3005, 1, 100), (17, 3008, 1, 100), (17, 3003, 1, 100), " +
		"(17, 3004, 1, 100), (17, 3007, 1, 100), (17, 3002, 1, 100), (17, 3002, 1, 100), (17, 3016, 1, 100), " +
		"(17, 3030, 1, 100), (17, 3032, -1, 100)]"
	assert.Equal(t, want, encodeF16C(t, cfg, FeedbackNone))
}

func TestF16COffsetAimpoint(t *testing.T) {
	cfg := newF16CConfig()
	cfg.STPT.Points = []Steerpoint{{
		Number: "2",
		Lat:    "36.0",
		Lon:    "-115.0",
		OA1:    &OffsetAimpoint{Lat: "36.016667", Lon: "-115.0"},
	}}

	got := encodeF16C(t, cfg, FeedbackNone)
	// LIST 1 SEQ reaches the OA1 page
	assert.Contains(t, got, "(17, 3015, 1, 100), (17, 3003, 1, 100), (17, 3032, 1, 100)")
	// due north: bearing 0.0 is typed as "0"
	assert.Contains(t, got, "(17, 3030, -1, 100), (17, 3002, 1, 100), (17, 3016, 1, 100)")
}

func TestF16COffsetAimpointWithoutSteerpointPanics(t *testing.T) {
	cfg := newF16CConfig()
	cfg.STPT.Points = []Steerpoint{{Number: "2", OA1: &OffsetAimpoint{Lat: "36", Lon: "-115"}}}

	assert.Panics(t, func() { encodeF16C(t, cfg, FeedbackNone) })
}

func TestF16CMFDBuilder(t *testing.T) {
	t.Run("nav mode", func(t *testing.T) {
		cfg := newF16CConfig()
		cfg.MFD.NAV.Left[1] = "HSD"

		want := "[(24, 3013, 1, 100), (24, 3013, 1, 100), (24, 3007, 1, 100), (24, 3014, 1, 100)]"
		assert.Equal(t, want, encodeF16C(t, cfg, FeedbackNone))
	})

	t.Run("air to air mode", func(t *testing.T) {
		cfg := newF16CConfig()
		cfg.MFD.AA.Right[0] = "TGP"

		want := "[(17, 3018, 1, 100), (0, 0, 0, 500), " +
			"(25, 3014, 1, 100), (25, 3014, 1, 100), (25, 3019, 1, 100), (25, 3014, 1, 100), " +
			"(17, 3018, 1, 100)]"
		assert.Equal(t, want, encodeF16C(t, cfg, FeedbackNone))
	})

	t.Run("unknown format", func(t *testing.T) {
		cfg := newF16CConfig()
		cfg.MFD.NAV.Left[0] = "NOPE"
		assert.Panics(t, func() { encodeF16C(t, cfg, FeedbackNone) })
	})
}

func TestF16CMiscTACANBand(t *testing.T) {
	cfg := newF16CConfig()
	cfg.Misc.TACANBand = "Y"

	want := "[(17, 3032, -1, 100), (17, 3003, 1, 100), (17, 3002, 1, 100), (17, 3016, 1, 100), (17, 3032, -1, 100)]"
	assert.Equal(t, want, encodeF16C(t, cfg, FeedbackNone))
}

func TestF16CLightsTeardown(t *testing.T) {
	pulse := "(12, 3002, 1, -150), (0, 0, 0, 1000), (12, 3002, 0, -150)"

	t.Run("default configuration", func(t *testing.T) {
		assert.Equal(t, "["+pulse+"]", encodeF16C(t, newF16CConfig(), FeedbackLights))
	})

	t.Run("runs last", func(t *testing.T) {
		cfg := newF16CConfig()
		cfg.Misc.LaserCode = "1511"
		got := encodeF16C(t, cfg, FeedbackBoth)
		assert.True(t, strings.HasSuffix(got, pulse+"]"), got)
		assert.Equal(t, 1, strings.Count(got, "(12, 3002, 1, -150)"))
	})
}

func TestF16CBuildIsDeterministic(t *testing.T) {
	cfg := newF16CConfig()
	cfg.Radio.COM2.Presets = []RadioPreset{{Preset: "1", Frequency: "127.500"}}
	cfg.Radio.COM2.DefaultTuning = "1"
	cfg.CMDS.Chaff[3].SI = "1.50"
	cfg.STPT.Points = []Steerpoint{
		{Number: "1", Lat: "36.1", Lon: "-115.2", Elev: "2500"},
		{Number: "2", Lat: "36.2", Lon: "-115.1", OA1: &OffsetAimpoint{Lat: "36.21", Lon: "-115.05", Elev: "2600"}},
	}
	cfg.MFD.AG.Left = [3]string{"TGP", "WPN", "SMS"}
	cfg.Misc.TACANChannel = "75"

	first := encodeF16C(t, cfg, FeedbackBoth)
	second := encodeF16C(t, cfg, FeedbackBoth)
	assert.Equal(t, first, second)
	assert.NotEqual(t, "[]", first)
}

func TestBuildSequenceAirframeMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		BuildSequence(newF16CConfig(), mustCatalog(t, AirframeFA18C), FeedbackNone)
	})
}

func TestParseConfiguration(t *testing.T) {
	t.Run("f16c", func(t *testing.T) {
		cfg, err := ParseConfiguration([]byte(`{"name":"Strike","airframe":"F16C","misc":{"bingo":"3500"}}`))
		require.NoError(t, err)
		f16, ok := cfg.(*F16CConfiguration)
		require.True(t, ok)
		assert.Equal(t, "Strike", f16.Header().Name)
		assert.Equal(t, "3500", f16.Misc.Bingo)
	})

	t.Run("fa18c", func(t *testing.T) {
		cfg, err := ParseConfiguration([]byte(`{"name":"CAP","airframe":"FA18C","cms":{"programs":[{"chaff":"2"}]}}`))
		require.NoError(t, err)
		hornet, ok := cfg.(*FA18CConfiguration)
		require.True(t, ok)
		assert.Equal(t, "2", hornet.CMS.Programs[0].Chaff)
	})

	t.Run("round trip", func(t *testing.T) {
		orig := newF16CConfig()
		orig.STPT.Points = []Steerpoint{{Number: "3", Lat: "1", Lon: "2", OA1: &OffsetAimpoint{Lat: "1.1", Lon: "2.1"}}}
		data, err := json.Marshal(orig)
		require.NoError(t, err)

		cfg, err := ParseConfiguration(data)
		require.NoError(t, err)
		assert.Equal(t, orig, cfg)
	})

	errs := []struct {
		name string
		data string
	}{
		{"not json", "nope"},
		{"unknown airframe", `{"name":"x","airframe":"MIG29"}`},
		{"missing airframe", `{"name":"x"}`},
		{"wrong field type", `{"name":"x","airframe":"F16C","misc":{"bingo":3000}}`},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfiguration([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
