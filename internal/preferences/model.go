package preferences

const DefaultVolume = 0.3

// Preferences are the site-wide audio and display settings.
type Preferences struct {
	SoundEnabled  bool    `json:"soundEnabled"`
	Volume        float64 `json:"volume"`
	VolumeVisible bool    `json:"volumeVisible"`
}

func Defaults() Preferences {
	return Preferences{Volume: DefaultVolume, VolumeVisible: true}
}

// Patch is the body of PUT /api/preferences; nil fields are kept.
type Patch struct {
	SoundEnabled  *bool    `json:"soundEnabled,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
	VolumeVisible *bool    `json:"volumeVisible,omitempty"`
}
