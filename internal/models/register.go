package models

import (
	"embed"
	"fmt"

	"github.com/nerrad567/woods-config/internal/schema"
)

// Sources is the default schema-module directory: the model files of this
// package.
//
//go:embed doc.go base_config.go *_model.go
var Sources embed.FS

// builtins lists the constructor of every component schema module.
var builtins = []func() (schema.Module, error){
	cameraModule,
}

// Register adds every built-in schema module to reg.
func Register(reg *schema.Registry) error {
	for _, build := range builtins {
		m, err := build()
		if err != nil {
			return fmt.Errorf("building schema module: %w", err)
		}
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every built-in schema module.
func NewRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
