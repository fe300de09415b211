package loader

// Kind classifies what happened to one component during a pass.
type Kind string

// Outcome kinds. Everything except KindLoaded removes the component from
// the aggregate.
const (
	KindLoaded           Kind = "loaded"
	KindMissingDataFile  Kind = "missing_data_file"
	KindNameCollision    Kind = "name_collision"
	KindMalformedData    Kind = "malformed_data"
	KindReadFailed       Kind = "read_failed"
	KindNotCached        Kind = "not_cached"
	KindModuleResolution Kind = "module_resolution"
	KindTypeResolution   Kind = "type_resolution"
	KindValidation       Kind = "validation"
	KindCanceled         Kind = "canceled"
)

// AllKinds lists every Kind in pipeline order.
var AllKinds = []Kind{
	KindLoaded,
	KindMissingDataFile,
	KindNameCollision,
	KindMalformedData,
	KindReadFailed,
	KindNotCached,
	KindModuleResolution,
	KindTypeResolution,
	KindValidation,
	KindCanceled,
}

// Outcome is the result of one component in one pass.
type Outcome struct {
	Component string
	Module    string
	Type      string
	DataFile  string
	Kind      Kind

	// Fields names the offending fields of a validation failure.
	Fields []string

	Err error
}

// OK reports whether the component made it into the aggregate.
func (o Outcome) OK() bool {
	return o.Kind == KindLoaded
}

// Error returns the failure message, or "" for a loaded component.
func (o Outcome) Error() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
