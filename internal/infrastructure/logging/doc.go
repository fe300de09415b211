// Package logging builds the slog logger shared by every Woods Config
// subsystem.
//
// Records carry service and version attributes. Child loggers made with
// Subsystem add a subsystem attribute, so one JSON stream can be split
// per stage of the pipeline. Durations are written as strings ("1.5ms")
// in both formats.
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// The CLI ignores output and always logs to stderr, leaving stdout for
// command output.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	pipeline.SetLogger(logger.Subsystem("loader"))
//	logger.Warn("no valid component configurations found", "run_id", id)
//
// Component payloads are logged by name and path, never by content.
package logging
