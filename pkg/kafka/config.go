package kafka

import (
	"crypto/tls"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Config holds the broker connection settings shared by producers and
// consumers.
type Config struct {
	Brokers       []string
	ConsumerGroup string

	TLS bool

	SASLEnabled   bool
	SASLMechanism string // "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string
}

// tlsConfig returns the TLS settings for broker connections, or nil when TLS
// is disabled.
func (c Config) tlsConfig() *tls.Config {
	if !c.TLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// saslMechanism resolves the configured SASL mechanism. Unknown mechanisms
// and credential errors yield nil, which kafka-go treats as no
// authentication.
func (c Config) saslMechanism() sasl.Mechanism {
	if !c.SASLEnabled {
		return nil
	}
	switch c.SASLMechanism {
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, c.SASLUsername, c.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, c.SASLUsername, c.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "PLAIN", "":
		return &plain.Mechanism{Username: c.SASLUsername, Password: c.SASLPassword}
	default:
		return nil
	}
}

// dialer returns a reader dialer carrying the TLS and SASL settings, or nil
// when neither is enabled.
func (c Config) dialer() *kafkago.Dialer {
	if !c.TLS && !c.SASLEnabled {
		return nil
	}
	return &kafkago.Dialer{
		TLS:           c.tlsConfig(),
		SASLMechanism: c.saslMechanism(),
	}
}

// transport returns a writer transport carrying the TLS and SASL settings,
// or nil when neither is enabled (the writer then uses kafka-go's default).
func (c Config) transport() *kafkago.Transport {
	if !c.TLS && !c.SASLEnabled {
		return nil
	}
	return &kafkago.Transport{
		TLS:  c.tlsConfig(),
		SASL: c.saslMechanism(),
	}
}
