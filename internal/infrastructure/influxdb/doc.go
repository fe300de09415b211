// Package influxdb records configuration load metrics in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, batched non-blocking writes, and health monitoring. The
// daemon writes one point per load pass and one point per component
// outcome, so operators can chart how often a subsystem starts without a
// valid configuration.
//
// # Measurements
//
//	config_load       tags: status           fields: loaded, failed, duration_ms, cache_filled
//	config_component  tags: component, kind  fields: ok
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteLoadRun(influxdb.LoadRun{Status: "ok", Loaded: 3, At: time.Now()})
//
// # Error Handling
//
// Writes are non-blocking; batch failures are delivered to the callback
// set with SetOnError. Connection and health check errors are returned
// directly.
package influxdb
