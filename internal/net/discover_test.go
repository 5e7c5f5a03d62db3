package net

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/hashicorp/mdns"
)

func TestFirstServiceURLBufferedEntriesSurviveClose(t *testing.T) {
	// Entries can sit buffered in the channel when the lookup returns;
	// the result must reflect them even if nothing drained concurrently.
	entries := make(chan *mdns.ServiceEntry, 8)
	found := firstServiceURL(entries)

	entries <- &mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 42), Port: 5000}
	close(entries)

	select {
	case url := <-found:
		if url != "http://10.0.0.42:5000" {
			t.Errorf("url = %q, want http://10.0.0.42:5000", url)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result after entries closed")
	}
}

func TestFirstServiceURLSkipsUnusableEntries(t *testing.T) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := firstServiceURL(entries)

	entries <- &mdns.ServiceEntry{AddrV4: nil, Port: 5000}
	entries <- &mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 1), Port: 0}
	entries <- &mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 7), Port: 8080}
	entries <- &mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 8), Port: 9090} // later entry loses
	close(entries)

	if url := <-found; url != "http://10.0.0.7:8080" {
		t.Errorf("url = %q, want the first usable entry", url)
	}
}

func TestFirstServiceURLEmpty(t *testing.T) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := firstServiceURL(entries)
	close(entries)

	if url := <-found; url != "" {
		t.Errorf("url = %q, want empty for no services", url)
	}
}

func TestFirstServiceURLManyEntries(t *testing.T) {
	// More entries than the channel buffer, fed while the drain runs.
	entries := make(chan *mdns.ServiceEntry, 8)
	found := firstServiceURL(entries)

	for i := 1; i <= 20; i++ {
		entries <- &mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, byte(i)), Port: 5000}
	}
	close(entries)

	want := fmt.Sprintf("http://%s:%d", "10.0.0.1", 5000)
	if url := <-found; url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}
