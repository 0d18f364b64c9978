// Package transport moves acquisition frames and pipeline output over the
// wire: it decodes device notifications into RawSamples, subscribes to raw
// packets on NATS and publishes pipeline events back to NATS.
package transport
