package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WritePowerState records a display power observation for one accessory.
//
// Called after every successful power read or write against a device.
// The write is non-blocking; data is batched and sent asynchronously.
// It implements the accessory package's StateRecorder interface.
//
// Parameters:
//   - accessoryID: The accessory's stable identity
//   - on: Whether the display is powered
func (c *Client) WritePowerState(accessoryID string, on bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"power_state",
		map[string]string{
			"accessory_id": accessoryID,
		},
		map[string]interface{}{
			"screen_on": on,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteInputState records an active input-source observation for one accessory.
//
// Parameters:
//   - accessoryID: The accessory's stable identity
//   - sport: The active sport mode identifier
func (c *Client) WriteInputState(accessoryID string, sport int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"input_state",
		map[string]string{
			"accessory_id": accessoryID,
		},
		map[string]interface{}{
			"sport": sport,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the state helpers.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, time.Now()))
}
