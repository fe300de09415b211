// Package sink forwards loader reports to the optional outputs of the
// daemon.
//
// Each sink implements loader.Reporter and is attached with
// Pipeline.AddReporter:
//
//	History  stores every pass in SQLite (see package history)
//	MQTT     publishes retained per-component status and a run summary
//	Influx   writes config_load and config_component points
//
// A sink failure is logged by the pipeline and never changes the
// aggregate returned to the caller.
//
// # Usage
//
//	p.AddReporter(sink.NewHistory(history.NewSQLiteRepository(db.DB), 500))
//	p.AddReporter(sink.NewMQTT(mqttClient))
//	p.AddReporter(sink.NewInflux(influxClient))
package sink
