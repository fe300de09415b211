package models

import "github.com/nerrad567/woods-config/internal/schema"

// CameraConfig holds the settings for one camera.
type CameraConfig struct {
	// General
	Index       int `json:"index" jsonschema:"description=Camera index"`
	HFlip       int `json:"hflip" jsonschema:"description=Horizontal flip"`
	VFlip       int `json:"vflip" jsonschema:"description=Vertical flip"`
	Sensitivity int `json:"sensitivity" jsonschema:"description=Motion detection sensitivity"`

	// Tuning
	TuningEnabled bool    `json:"tuning.enabled" jsonschema:"description=Tuning enabled"`
	TuningPath    *string `json:"tuning.path,omitempty" jsonschema:"nullable,description=Tuning file path"`

	// Multimedia
	MultimediaPath string `json:"multimedia.path" validate:"relpath" jsonschema:"description=Relative multimedia path"`

	// Timestamp overlay
	TimestampEnabled   bool   `json:"timestamp.enabled" jsonschema:"description=Timestamp enabled"`
	TimestampFormat    string `json:"timestamp.format" jsonschema:"description=Timestamp format"`
	TimestampColor     RGB    `json:"timestamp.color" validate:"dive,min=0,max=255" jsonschema:"description=Timestamp colour"`
	TimestampOrigin    Point  `json:"timestamp.origin" jsonschema:"description=Timestamp origin"`
	TimestampFont      string `json:"timestamp.font" jsonschema:"description=Timestamp font"`
	TimestampFontScale int    `json:"timestamp.fscale" jsonschema:"description=Timestamp font scale"`
	TimestampThickness int    `json:"timestamp.thickness" jsonschema:"description=Timestamp thickness"`

	// Image capture
	ImagePrefix            string `json:"image.prefix" jsonschema:"description=Image prefix"`
	ImageFormat            string `json:"image.fmt" jsonschema:"description=Image format"`
	ImageSize              string `json:"image.size" jsonschema:"description=Image size"`
	ImageSnapshots         int    `json:"image.snapshots" jsonschema:"description=Image snapshots"`
	ImageSnapshotsInterval int    `json:"image.snapshots.t" jsonschema:"description=Image snapshot interval"`
}

func cameraModule() (schema.Module, error) {
	t, err := schema.NewStruct[CameraConfig]("CameraConfig")
	if err != nil {
		return schema.Module{}, err
	}
	return schema.Module{
		Name:  schema.ModuleName("camera"),
		Types: []schema.Type{t},
	}, nil
}
