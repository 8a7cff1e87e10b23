package net

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"

	"SlideBoard/internal/logging"
)

// DefaultService is the mDNS service type SlideBoard servers announce.
const DefaultService = "_slideboard._tcp"

// Advertise announces a server on port under service. An empty instance
// uses the host name. The returned server must be shut down by the caller.
func Advertise(instance, service string, port int, info ...string) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("net: hostname: %w", err)
		}
		instance = host
	}
	if service == "" {
		service = DefaultService
	}

	zone, err := mdns.NewMDNSService(instance, service, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("net: mdns service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: zone})
	if err != nil {
		return nil, fmt.Errorf("net: mdns server: %w", err)
	}
	logging.Logger().Info("advertising", "instance", instance, "service", service, "port", port)
	return server, nil
}

// Browse looks for servers announcing service and calls found with the
// websocket URL of each one. It returns after timeout or when ctx ends.
func Browse(ctx context.Context, service string, timeout time.Duration, found func(name, url string)) error {
	if service == "" {
		service = DefaultService
	}
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(e.Name, WebsocketURL(e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(service)
	params.Entries = entries
	params.Timeout = timeout

	errc := make(chan error, 1)
	go func() { errc <- mdns.Query(params) }()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
		err = ctx.Err()
		<-errc
	}
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("net: browse %s: %w", service, err)
	}
	return nil
}

// WebsocketURL is the address clients dial for a server at host:port.
func WebsocketURL(host string, port int) string {
	return "ws://" + net.JoinHostPort(host, fmt.Sprint(port)) + Path
}
