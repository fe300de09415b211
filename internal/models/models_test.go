package models

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nerrad567/woods-config/internal/schema"
)

func readCameraFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "camera.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return data
}

func TestSources_ListsModelFiles(t *testing.T) {
	entries, err := fs.ReadDir(Sources, ".")
	if err != nil {
		t.Fatalf("ReadDir(Sources) error = %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"base_config.go", "camera_model.go", "doc.go"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Sources entries = %v, want %v", names, want)
	}
}

func TestRegister(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if got := reg.Modules(); !reflect.DeepEqual(got, []string{"camera_model"}) {
		t.Errorf("Modules() = %v, want [camera_model]", got)
	}

	// Registering twice collides.
	if err := Register(reg); !errors.Is(err, schema.ErrModuleExists) {
		t.Errorf("Register() twice error = %v, want ErrModuleExists", err)
	}
}

func TestCameraConfig_RoundTrip(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	_, typ, err := reg.Resolve("camera")
	if err != nil {
		t.Fatalf("Resolve(camera) error = %v", err)
	}

	got, err := typ.Validate(readCameraFixture(t))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := &CameraConfig{
		Index:                  0,
		HFlip:                  0,
		VFlip:                  1,
		Sensitivity:            20,
		TuningEnabled:          false,
		MultimediaPath:         "multimedia/camera0",
		TimestampEnabled:       true,
		TimestampFormat:        "%Y-%m-%d %H:%M:%S",
		TimestampColor:         RGB{255, 255, 255},
		TimestampOrigin:        Point{10, 30},
		TimestampFont:          "FONT_HERSHEY_SIMPLEX",
		TimestampFontScale:     1,
		TimestampThickness:     2,
		ImagePrefix:            "cam0_",
		ImageFormat:            "jpg",
		ImageSize:              "1920x1080",
		ImageSnapshots:         3,
		ImageSnapshotsInterval: 2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %+v, want %+v", got, want)
	}
}

func TestCameraConfig_MissingSensitivity(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	_, typ, err := reg.Resolve("camera")
	if err != nil {
		t.Fatalf("Resolve(camera) error = %v", err)
	}

	raw := strings.Replace(string(readCameraFixture(t)), `"sensitivity": 20,`, "", 1)
	_, err = typ.Validate([]byte(raw))

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *schema.ValidationError", err)
	}
	if got := verr.FieldNames(); !reflect.DeepEqual(got, []string{"sensitivity"}) {
		t.Errorf("FieldNames() = %v, want [sensitivity]", got)
	}
}

func TestCameraConfig_Constraints(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	_, typ, err := reg.Resolve("camera")
	if err != nil {
		t.Fatalf("Resolve(camera) error = %v", err)
	}

	tests := []struct {
		name      string
		old, new  string
		wantField string
	}{
		{"absolute multimedia path", `"multimedia/camera0"`, `"/srv/multimedia"`, "multimedia.path"},
		{"colour channel above 255", `[255, 255, 255]`, `[255, 300, 255]`, "timestamp.color"},
		{"origin wrong arity", `[10, 30]`, `[10, 30, 50]`, "timestamp.origin"},
		{"flip as bool", `"hflip": 0`, `"hflip": false`, "hflip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := strings.Replace(string(readCameraFixture(t)), tt.old, tt.new, 1)
			_, err := typ.Validate([]byte(raw))

			var verr *schema.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *schema.ValidationError", err)
			}
			if !strings.Contains(strings.Join(verr.FieldNames(), ","), tt.wantField) {
				t.Errorf("FieldNames() = %v, want %s", verr.FieldNames(), tt.wantField)
			}
		})
	}
}
