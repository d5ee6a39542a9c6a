// Package mqtt provides MQTT broker connectivity for ScoreLink Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// ScoreLink publishes only. The bridge reports its own health and system
// status over MQTT so supervisors can watch it, but it takes no commands
// from the bus; device control flows over HTTP to the scoreboards.
//
//	ScoreLink Core → MQTT Broker → Monitoring / Supervisors
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, &mqtt.Will{
//	    Topic:    healthTopic,
//	    Payload:  lwtPayload,
//	    QoS:      1,
//	    Retained: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.Publish(healthTopic, payload, 1, true)
package mqtt
