// Package net finds the classification service on the local network.
// The service advertises itself over mDNS; explicit configuration via
// environment variables always wins over discovery.
package net

import (
	"fmt"
	"log"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_marklens._tcp"

// Advertise announces an inference service on this machine, for setups
// that run the model bridge next to the app. Callers shut the returned
// server down when the service stops.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"", // domain, ".local" by default
		"", // hostname from the OS
		port,
		[]net.IP{firstIPv4()},
		[]string{"MarkLens inference"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover browses for an advertised inference service and returns its
// base URL. The lookup runs one mDNS query round; no service on the LAN
// is a normal outcome, reported as an error for the caller to log and
// fall back on.
func Discover() (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := firstServiceURL(entries)

	err := mdns.Lookup(serviceType, entries)
	close(entries)
	// The drain goroutine only reports after the channel closes, so
	// entries still buffered when Lookup returns are never dropped.
	url := <-found

	if err != nil {
		return "", fmt.Errorf("mdns lookup: %w", err)
	}
	if url == "" {
		return "", fmt.Errorf("no %s service found", serviceType)
	}
	log.Printf("Discovered inference service at %s", url)
	return url, nil
}

// firstServiceURL drains entries and reports the first usable service
// as a base URL, or empty if none showed up. The result is delivered
// once, after entries is closed.
func firstServiceURL(entries <-chan *mdns.ServiceEntry) <-chan string {
	found := make(chan string, 1)
	go func() {
		url := ""
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			if url == "" {
				url = fmt.Sprintf("http://%s:%d", e.AddrV4.String(), e.Port)
			}
		}
		found <- url
	}()
	return found
}

// firstIPv4 returns the first usable interface address, for advertising
// on machines with several interfaces.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}
