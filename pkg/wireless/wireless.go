package wireless

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/net"
)

// QualDBM is set in Stats.Updated when the level is expressed in dBm (IW_QUAL_DBM).
const QualDBM uint8 = 0x08

var (
	ErrUnknownInterface = errors.New("unknown network interface")
	ErrUnsupported      = errors.New("wireless statistics are not supported on this platform")
)

// Stats mirrors the quality block of the kernel's iw_statistics.
type Stats struct {
	Quality uint8
	Level   uint8
	Noise   uint8
	Updated uint8
}

// IsDBm reports whether Level carries a dBm-denominated value.
func (s Stats) IsDBm() bool {
	return s.Updated&QualDBM != 0
}

// StatsProvider queries radio statistics for a named interface.
type StatsProvider interface {
	Query(iface string) (Stats, error)
}

// Service reads wireless statistics from the operating system.
type Service struct {
	listInterfaces func() ([]string, error)
	query          func(iface string) (Stats, error)
}

// NewWirelessService creates a Service backed by the host network stack.
func NewWirelessService() *Service {
	return &Service{
		listInterfaces: hostInterfaces,
		query:          queryStats,
	}
}

// Query returns the current statistics of iface.
func (s *Service) Query(iface string) (Stats, error) {
	names, err := s.listInterfaces()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list interfaces: %w", err)
	}

	found := false
	for _, name := range names {
		if name == iface {
			found = true
			break
		}
	}
	if !found {
		return Stats{}, fmt.Errorf("%w: %s", ErrUnknownInterface, iface)
	}

	return s.query(iface)
}

func hostInterfaces() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		names = append(names, iface.Name)
	}
	return names, nil
}
