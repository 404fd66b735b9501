package main

import (
	"embed"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed cues/*.wav
var cueFS embed.FS

// AudioService hands the frontend the sound for an upload-feedback cue. A
// file named after the cue in the user's sounds directory (start.mp3,
// fail.wav, ...) replaces the built-in one.
type AudioService struct {
	soundsDir string
}

type AudioData struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
}

var cueExtensions = []string{".wav", ".mp3", ".ogg"}

func NewAudioService(soundsDir string) *AudioService {
	return &AudioService{soundsDir: soundsDir}
}

func (a *AudioService) GetCue(cue string) (*AudioData, error) {
	// Sanitize to prevent path traversal
	if cue == "" || strings.ContainsAny(cue, `/\`) || strings.Contains(cue, "..") {
		return nil, fmt.Errorf("invalid cue %q", cue)
	}

	if a.soundsDir != "" {
		for _, ext := range cueExtensions {
			data, err := os.ReadFile(filepath.Join(a.soundsDir, cue+ext))
			if err == nil {
				return audioData(data, ext), nil
			}
		}
	}

	data, err := cueFS.ReadFile("cues/" + cue + ".wav")
	if err != nil {
		return nil, fmt.Errorf("unknown cue %q", cue)
	}
	return audioData(data, ".wav"), nil
}

func audioData(data []byte, ext string) *AudioData {
	contentType := "audio/mpeg"
	switch ext {
	case ".wav":
		contentType = "audio/wav"
	case ".ogg":
		contentType = "audio/ogg"
	}
	return &AudioData{
		Data:        base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
	}
}
