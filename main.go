package main

import (
	"context"
	"log"
	"time"

	"MarkLens/internal/classify"
	"MarkLens/internal/config"
	mlnet "MarkLens/internal/net"
	"MarkLens/internal/ui"
)

func main() {
	cfg := config.Load()

	// Running the inference bridge on this machine: announce it so
	// other MarkLens instances on the LAN can find it too.
	if cfg.AdvertisePort > 0 {
		server, err := mlnet.Advertise(cfg.AdvertisePort)
		if err != nil {
			log.Printf("Warning: could not advertise inference service: %v", err)
		} else {
			defer server.Shutdown()
			log.Printf("Advertising inference service on port %d", cfg.AdvertisePort)
		}
	}

	url := cfg.InferenceURL
	if cfg.Discover {
		if found, err := mlnet.Discover(); err == nil {
			url = found
		} else {
			log.Printf("Discovery: %v, falling back to %s", err, url)
			if ip, ipErr := mlnet.OutgoingIP(); ipErr == nil {
				log.Printf("This machine is %s; set MARKLENS_INFERENCE_URL if the service runs elsewhere", ip)
			}
		}
	}

	client := classify.NewClient(url)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := client.CheckHealth(ctx); err != nil {
		log.Printf("Warning: inference service not available: %v", err)
	}
	cancel()

	log.Printf("Inference URL: %s", client.BaseURL())
	ui.RunApp(client, cfg)
}
