package models

import "time"

// OnlineWindow is the liveness threshold used uniformly across the system:
// a computer whose last heartbeat is older than this is considered offline.
const OnlineWindow = 5 * time.Minute

// NetworkInterface is one entry of the agent-reported hardware inventory.
type NetworkInterface struct {
	Name string `json:"name,omitempty"`
	MAC  string `json:"mac,omitempty"`
	IP   string `json:"ip,omitempty"`
}

type HardwareInfo struct {
	Network []NetworkInterface `json:"network,omitempty"`
}

type Computer struct {
	ID           uint         `gorm:"primaryKey"`
	LabID        uint         `gorm:"index"`
	MachineID    string       `gorm:"uniqueIndex;size:191"`
	Hostname     string       `gorm:"size:255"`
	WolMac       string       `gorm:"size:32"` // explicit MAC override for Wake-on-LAN
	HardwareInfo HardwareInfo `gorm:"serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time // last agent heartbeat
}

// OnlineAt reports whether the computer's heartbeat is within OnlineWindow of now.
func (c *Computer) OnlineAt(now time.Time) bool {
	return now.Sub(c.UpdatedAt) <= OnlineWindow
}
