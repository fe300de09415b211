// Package schema resolves component schemas and validates raw component
// data against them.
//
// A schema module is a named unit that exposes one or more schema types.
// Modules are registered with a Registry at startup; the pipeline then
// resolves a component by naming convention:
//
//	component "camera"  →  module "camera_model"  →  type "CameraConfig"
//
// # Validation
//
// Types built with NewStruct validate in three stages:
//
//  1. JSON Schema: a schema is reflected from the Go struct (json tags give
//     the external key names; fields without omitempty are required) and
//     the raw document is checked against it. Missing required fields and
//     wrong JSON types are reported here.
//  2. Decoding: the document is decoded into the struct. Unknown keys are
//     ignored.
//  3. Constraints: `validate` struct tags are checked, including the
//     relpath rule for relative filesystem paths.
//
// Every stage reports failures as a *ValidationError listing the offending
// fields by their external names.
//
// # Usage
//
//	reg := schema.NewRegistry()
//	reg.MustRegister(schema.Module{
//	    Name:  "camera_model",
//	    Types: []schema.Type{schema.MustStruct[CameraConfig]("CameraConfig")},
//	})
//
//	mod, typ, err := reg.Resolve("camera")
//	if err != nil {
//	    return err // ErrModuleNotFound or ErrTypeNotFound
//	}
//	cfg, err := typ.Validate(raw)
//
// # Thread Safety
//
// Registry is safe for concurrent use. Types are immutable after
// construction and may validate concurrently.
package schema
