// Package influxdb provides InfluxDB connectivity for ScoreLink Core.
//
// It wraps the official influxdb-client-go v2 library with ScoreLink-specific
// patterns for connection management, state recording, and health monitoring.
//
// # Purpose
//
// This package records scoreboard state history: every power or input-source
// observation or command that succeeds against a device is written here as a
// time-series point. Recording is write-only telemetry. It is never consulted
// to answer an accessory read; those always round-trip to the device.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "scorelink",
//	    Bucket: "state_history",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WritePowerState(accessoryID, true)
//	client.WriteInputState(accessoryID, 3)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
package influxdb
