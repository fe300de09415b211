// Package config handles loading and validating Woods Config application
// configuration.
//
// This package manages:
//   - Loading configuration from YAML files (TOML when the file ends in .toml)
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// This is the configuration of the loader process itself (where to look for
// schema modules and data files, which report sinks to enable). It is
// unrelated to the per-component configuration that the loader validates.
//
// Security Considerations:
//   - Sensitive values (MQTT password, InfluxDB token) should be set via
//     environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/woods.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Paths.DataDir)
package config
