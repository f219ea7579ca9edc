package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"labfleet/app/models"
	"labfleet/app/wol"

	"gorm.io/gorm"
)

// Interface names that never carry a usable WoL MAC.
var virtualInterfacePrefixes = []string{
	"lo", "loopback", "vboxnet", "vmnet", "virbr", "docker", "wsl", "vethernet", "veth", "br-",
}

func isVirtualInterface(name string) bool {
	name = strings.ToLower(name)
	for _, p := range virtualInterfacePrefixes {
		if name == p || strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// TargetMac picks the MAC address to wake a computer with: the explicit
// wol_mac override first, then the first physical interface in the hardware
// inventory, then any interface carrying a MAC. Returns bare hex digits.
func TargetMac(c *models.Computer) (string, error) {
	if mac := wol.NormalizeMac(c.WolMac); mac != "" {
		return mac, nil
	}
	var first, physical string
	for _, iface := range c.HardwareInfo.Network {
		if iface.MAC == "" {
			continue
		}
		if first == "" {
			first = iface.MAC
		}
		if !isVirtualInterface(iface.Name) {
			physical = iface.MAC
			break
		}
	}
	mac := physical
	if mac == "" {
		mac = first
	}
	if normalized := wol.NormalizeMac(mac); normalized != "" {
		return normalized, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoMacAddress, c.Hostname)
}

// ProxySelector finds a surrogate online machine to broadcast a WoL packet
// on behalf of an offline target. WoL needs a sender on the target's L2
// segment, and the target itself is presumed offline.
type ProxySelector struct {
	computers ComputerStore
}

func NewProxySelector(computers ComputerStore) *ProxySelector {
	return &ProxySelector{computers: computers}
}

// SelectProxy returns any online labmate of the target: same lab, not the
// target itself, heartbeat within the last OnlineWindow, first by id.
func (s *ProxySelector) SelectProxy(target *models.Computer, now time.Time) (*models.Computer, error) {
	proxy, err := s.computers.FindOnlineProxy(target.LabID, target.ID, now.Add(-models.OnlineWindow))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProxyAvailable
		}
		return nil, err
	}
	return proxy, nil
}
