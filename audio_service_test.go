package main

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioServiceBuiltinCues(t *testing.T) {
	a := NewAudioService("")
	for _, cue := range []string{cueStart, cueEnd, cueFail, cueAbort} {
		t.Run(cue, func(t *testing.T) {
			got, err := a.GetCue(cue)
			require.NoError(t, err)
			assert.Equal(t, "audio/wav", got.ContentType)

			data, err := base64.StdEncoding.DecodeString(got.Data)
			require.NoError(t, err)
			assert.Equal(t, "RIFF", string(data[:4]))
		})
	}
}

func TestAudioServiceUserOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "end.mp3"), []byte("ID3custom"), 0o644))
	a := NewAudioService(dir)

	got, err := a.GetCue(cueEnd)
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", got.ContentType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("ID3custom")), got.Data)

	got, err = a.GetCue(cueStart)
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", got.ContentType)
}

func TestAudioServiceRejectsBadNames(t *testing.T) {
	a := NewAudioService(t.TempDir())
	for _, cue := range []string{"", "../settings", `a\b`, "x/y", "missing"} {
		_, err := a.GetCue(cue)
		assert.Error(t, err, cue)
	}
}
