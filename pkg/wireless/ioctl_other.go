//go:build !linux

package wireless

func queryStats(iface string) (Stats, error) {
	return Stats{}, ErrUnsupported
}
