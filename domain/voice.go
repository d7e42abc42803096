package domain

type VoiceMode string

const (
	VoiceModeSample VoiceMode = "sample"
	VoiceModeClone  VoiceMode = "clone"
	VoiceModePreset VoiceMode = "preset"
)

// VoiceSpec is the tagged choice of narration voice source. Exactly one
// group of fields is meaningful depending on Mode.
type VoiceSpec struct {
	Mode VoiceMode `json:"mode"`

	// Sample: a hosted sample voice reference.
	VoiceID string `json:"voice_id,omitempty"`

	// Clone: a reference recording plus its transcript.
	ReferenceAudioURL string `json:"reference_audio_url,omitempty"`
	ReferenceText     string `json:"reference_text,omitempty"`

	// Preset: parameterized voice selection.
	Gender  string `json:"gender,omitempty"`
	Area    string `json:"area,omitempty"`
	Group   string `json:"group,omitempty"`
	Emotion string `json:"emotion,omitempty"`
}

func (v VoiceSpec) Validate() error {
	switch v.Mode {
	case VoiceModeSample:
		if v.VoiceID == "" {
			return &ValidationError{Field: "voice_id", Reason: "sample voice requires a voice id"}
		}
	case VoiceModeClone:
		if v.ReferenceAudioURL == "" {
			return &ValidationError{Field: "reference_audio_url", Reason: "clone voice requires a reference audio"}
		}
		if v.ReferenceText == "" {
			return &ValidationError{Field: "reference_text", Reason: "clone voice requires the reference transcript"}
		}
	case VoiceModePreset:
		if v.Gender == "" || v.Area == "" || v.Group == "" || v.Emotion == "" {
			return &ValidationError{Field: "voice", Reason: "preset voice requires gender, area, group and emotion"}
		}
	default:
		return &ValidationError{Field: "mode", Reason: "unknown voice mode"}
	}
	return nil
}
