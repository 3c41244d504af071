// Package device resolves a device-unique fingerprint string used as key
// derivation input. The fingerprint is not a secret.
package device

import (
	"os"
	"strings"
)

// FallbackFingerprint is returned when no platform identity is available.
const FallbackFingerprint = "pinguard-unknown-device"

const machineIDPath = "/etc/machine-id"

// Fingerprint returns a stable device identifier: the machine ID where the
// platform provides one, the hostname otherwise, and a fixed sentinel when
// neither is available.
func Fingerprint() string {
	if data, err := os.ReadFile(machineIDPath); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return FallbackFingerprint
}
