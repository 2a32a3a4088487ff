package domain

import "time"

// Device is a managed network appliance. DeviceID is the human-readable
// business identifier (gateway-NN).
type Device struct {
	ID             int64
	DeviceID       string
	DeviceName     string
	DeviceType     string
	DeviceIP       string
	DevicePort     string
	DeviceUsername string
	DevicePassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
