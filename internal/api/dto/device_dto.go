package dto

import "github.com/enpl/fieldops-console/internal/domain"

// DeviceRequest payload for device create/update. Nil fields are left
// unchanged on update.
type DeviceRequest struct {
	DeviceName     *string `json:"deviceName,omitempty"`
	DeviceType     *string `json:"deviceType,omitempty"`
	DeviceIP       *string `json:"deviceIp,omitempty"`
	DevicePort     *string `json:"devicePort,omitempty"`
	DeviceUsername *string `json:"deviceUsername,omitempty"`
	DevicePassword *string `json:"devicePassword,omitempty"`
}

// DeviceResponse is the public shape of a device.
type DeviceResponse struct {
	ID             int64  `json:"id"`
	DeviceID       string `json:"deviceId"`
	DeviceName     string `json:"deviceName"`
	DeviceType     string `json:"deviceType"`
	DeviceIP       string `json:"deviceIp"`
	DevicePort     string `json:"devicePort"`
	DeviceUsername string `json:"deviceUsername"`
}

// NewDeviceResponse maps a domain device. The device credential is write-only.
func NewDeviceResponse(device *domain.Device) DeviceResponse {
	return DeviceResponse{
		ID:             device.ID,
		DeviceID:       device.DeviceID,
		DeviceName:     device.DeviceName,
		DeviceType:     device.DeviceType,
		DeviceIP:       device.DeviceIP,
		DevicePort:     device.DevicePort,
		DeviceUsername: device.DeviceUsername,
	}
}

// NewDeviceResponses maps a slice of devices.
func NewDeviceResponses(devices []domain.Device) []DeviceResponse {
	out := make([]DeviceResponse, 0, len(devices))
	for i := range devices {
		out = append(out, NewDeviceResponse(&devices[i]))
	}
	return out
}
