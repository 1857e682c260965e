//go:build linux

package wireless

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// siocgiwstats is SIOCGIWSTATS from linux/wireless.h.
const siocgiwstats = 0x8B0F

// iwPoint is struct iw_point, the data member of union iwreq_data.
type iwPoint struct {
	pointer uintptr
	length  uint16
	flags   uint16
}

type iwreq struct {
	name [unix.IFNAMSIZ]byte
	data iwPoint
	_    [16]byte // rest of the union
}

// iwStatistics is struct iw_statistics.
type iwStatistics struct {
	status  uint16
	quality uint8
	level   uint8
	noise   uint8
	updated uint8
	discard [5]uint32
	miss    uint32
}

func queryStats(iface string) (Stats, error) {
	if len(iface) >= unix.IFNAMSIZ {
		return Stats{}, fmt.Errorf("%w: %s", ErrUnknownInterface, iface)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open socket: %w", err)
	}
	defer unix.Close(fd)

	var stats iwStatistics
	var req iwreq
	copy(req.name[:], iface)
	req.data.pointer = uintptr(unsafe.Pointer(&stats))
	req.data.length = uint16(unsafe.Sizeof(stats))

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), siocgiwstats, uintptr(unsafe.Pointer(&req)))
	runtime.KeepAlive(&stats)
	if errno != 0 {
		return Stats{}, fmt.Errorf("SIOCGIWSTATS on %s: %w", iface, errno)
	}

	return Stats{
		Quality: stats.quality,
		Level:   stats.level,
		Noise:   stats.noise,
		Updated: stats.updated,
	}, nil
}
