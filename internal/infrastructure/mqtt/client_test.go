package mqtt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/scorelink-core/internal/infrastructure/config"
)

// testConfig returns a valid MQTT configuration for testing.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "scorelink-test",
			TLS:      false,
		},
		QoS:            1,
		HealthInterval: 30,
	}
}

func TestBuildClientOptions(t *testing.T) {
	opts := buildClientOptions(testConfig())

	if len(opts.Servers) != 1 {
		t.Fatalf("len(Servers) = %d, want 1", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://127.0.0.1:1883" {
		t.Errorf("broker URL = %q, want tcp://127.0.0.1:1883", got)
	}
	if opts.ClientID != "scorelink-test" {
		t.Errorf("ClientID = %q, want scorelink-test", opts.ClientID)
	}
	if !opts.AutoReconnect {
		t.Error("AutoReconnect = false, want true")
	}
	if !opts.CleanSession {
		t.Error("CleanSession = false, want true")
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.TLS = true
	cfg.Broker.Port = 8883

	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("scheme = %q, want ssl", got)
	}
	if opts.TLSConfig == nil {
		t.Fatal("TLSConfig = nil, want configured")
	}
	if opts.TLSConfig.MinVersion != tlsMinVersion {
		t.Errorf("TLS MinVersion = %d, want %d", opts.TLSConfig.MinVersion, tlsMinVersion)
	}
}

func TestBuildClientOptions_Auth(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Username = "scorelink"
	cfg.Auth.Password = "secret"

	opts := buildClientOptions(cfg)

	if opts.Username != "scorelink" {
		t.Errorf("Username = %q, want scorelink", opts.Username)
	}
	if opts.Password != "secret" {
		t.Errorf("Password = %q, want secret", opts.Password)
	}
}

func TestConfigureWill_Custom(t *testing.T) {
	opts := pahomqtt.NewClientOptions()
	payload := []byte(`{"status":"offline"}`)

	configureWill(opts, "scorelink-test", &Will{
		Topic:    "scorelink/bridge/health",
		Payload:  payload,
		QoS:      1,
		Retained: true,
	})

	if !opts.WillEnabled {
		t.Fatal("WillEnabled = false, want true")
	}
	if opts.WillTopic != "scorelink/bridge/health" {
		t.Errorf("WillTopic = %q, want scorelink/bridge/health", opts.WillTopic)
	}
	if !bytes.Equal(opts.WillPayload, payload) {
		t.Errorf("WillPayload = %s, want %s", opts.WillPayload, payload)
	}
	if !opts.WillRetained {
		t.Error("WillRetained = false, want true")
	}
}

func TestConfigureWill_Default(t *testing.T) {
	opts := pahomqtt.NewClientOptions()

	configureWill(opts, "scorelink-test", nil)

	if !opts.WillEnabled {
		t.Fatal("WillEnabled = false, want true")
	}
	if opts.WillTopic != systemStatusTopic {
		t.Errorf("WillTopic = %q, want %q", opts.WillTopic, systemStatusTopic)
	}
	if !strings.Contains(string(opts.WillPayload), `"unexpected_disconnect"`) {
		t.Errorf("WillPayload = %s, want unexpected_disconnect reason", opts.WillPayload)
	}
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("scorelink-test")
	if !strings.Contains(online, `"status":"online"`) {
		t.Errorf("online payload = %s, missing online status", online)
	}
	if !strings.Contains(online, `"client_id":"scorelink-test"`) {
		t.Errorf("online payload = %s, missing client id", online)
	}

	offline := buildOfflinePayload("scorelink-test")
	if !strings.Contains(offline, `"status":"offline"`) {
		t.Errorf("offline payload = %s, missing offline status", offline)
	}
	if !strings.Contains(offline, `"reason":"graceful_shutdown"`) {
		t.Errorf("offline payload = %s, missing graceful reason", offline)
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v, want nil", err)
	}
}

func TestPublishValidation(t *testing.T) {
	// A client that never connected; validation runs before any network use.
	client := &Client{
		cfg:    testConfig(),
		client: pahomqtt.NewClient(buildClientOptions(testConfig())),
	}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{name: "empty topic", topic: "", wantErr: ErrInvalidTopic},
		{name: "invalid qos", topic: "scorelink/bridge/health", qos: 3, wantErr: ErrInvalidQoS},
		{
			name:    "oversized payload",
			topic:   "scorelink/bridge/health",
			payload: make([]byte, maxPayloadSize+1),
			qos:     1,
			wantErr: ErrPublishFailed,
		},
		{name: "not connected", topic: "scorelink/bridge/health", qos: 1, wantErr: ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
