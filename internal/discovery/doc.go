// Package discovery maps schema modules to component data files.
//
// Discovery scans a schema-module directory, derives a component name from
// each eligible file, and checks that the matching data file exists:
//
//	camera_model.go  →  component "camera"  →  {dataDir}/camera.json
//
// Eligible files carry the module extension (".go" by default), are not
// test files, and are not in the exclusion list (the package marker and
// the shared base-schema file). The component name is the base name up to
// the first "_".
//
// Components whose data file is absent are omitted and logged as a warning.
// Two files deriving the same component name are a collision: the component
// is omitted entirely so the outcome never depends on directory order.
//
// Discover has no side effects beyond logging. It is safe to call
// repeatedly; for an unchanged filesystem it returns the same Result.
package discovery
