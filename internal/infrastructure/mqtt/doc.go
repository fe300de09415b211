// Package mqtt connects Woods Config to an MQTT broker.
//
// The broker is an optional sink: after each load pass the daemon publishes
// one retained status message per component and a summary of the run, so
// the robot's other services can tell which subsystems have a usable
// configuration without reading the data directory themselves.
//
//	woods-config ──► broker ──► camera / lidar / planner services
//
// The package manages:
//   - Connection with auto-reconnect and exponential backoff
//   - Last Will and Testament so subscribers see an unexpected exit
//   - Retained JSON publishing with payload size limits
//   - Subscriptions that survive reconnects (used for status requests)
//
// # Topics
//
//	woods/system/status              online / offline (retained, LWT)
//	woods/config/{component}/status  per-component outcome (retained)
//	woods/config/summary             counts for the last pass (retained)
//	woods/config/request             status requests (subscribed)
//
// # Security Considerations
//
//   - Enable TLS (cfg.Broker.TLS) on any broker reachable off the robot
//   - Payloads carry component names, outcome kinds, field names and error
//     messages, never whole configuration documents
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.PublishJSON(mqtt.Topics{}.ComponentStatus("camera"), status, true)
package mqtt
