package net

import (
	"net"

	"SlideBoard/internal/logging"
)

// OutgoingIP finds the local address other machines on the network are
// most likely to reach this host on.
func OutgoingIP() string {
	// UDP dial sends nothing; it only selects a route.
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return localIPFallback()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// localIPFallback is used on networks without a default route.
func localIPFallback() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		logging.Logger().Warn("list interface addresses", "err", err)
		return "127.0.0.1"
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	logging.Logger().Warn("no non-loopback address found, share link will only work locally")
	return "127.0.0.1"
}

// ShareLink is the URL another session can dial to join a server on port.
func ShareLink(port int) string {
	return WebsocketURL(OutgoingIP(), port)
}
