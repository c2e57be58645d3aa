package spectate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service spectators browse for.
const ServiceType = "_drawline._tcp"

// Server serves the hub over HTTP and optionally advertises it.
type Server struct {
	Hub *Hub

	ln   net.Listener
	http *http.Server
	mdns *mdns.Server
}

// Listen starts serving the hub at /ws on addr. With advertise set, the
// endpoint is announced on the LAN under ServiceType.
func Listen(addr string, advertise bool) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate: listen %s: %w", addr, err)
	}

	s := &Server{Hub: NewHub(), ln: ln}
	mux := http.NewServeMux()
	mux.Handle("/ws", s.Hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %d\n", s.Hub.Clients())
	})
	s.http = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	if advertise {
		s.mdns, err = Advertise(s.Port())
		if err != nil {
			ln.Close()
			return nil, err
		}
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Spectate: serve: %v", err)
		}
	}()
	log.Printf("Spectate: listening on %s (ws endpoint: /ws)", ln.Addr())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Port returns the bound TCP port.
func (s *Server) Port() int {
	if a, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return a.Port
	}
	return 0
}

// Close stops advertising, disconnects spectators and shuts the server down.
func (s *Server) Close(ctx context.Context) error {
	if s.mdns != nil {
		if err := s.mdns.Shutdown(); err != nil {
			log.Printf("Spectate: mdns shutdown: %v", err)
		}
	}
	s.Hub.Close()
	return s.http.Shutdown(ctx)
}

// Advertise announces a spectator endpoint on port.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("spectate: hostname: %w", err)
	}
	svc, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, []string{"drawline spectator", "path=/ws"})
	if err != nil {
		return nil, fmt.Errorf("spectate: mdns service: %w", err)
	}
	srv, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("spectate: mdns server: %w", err)
	}
	log.Printf("Spectate: advertising %s on port %d", ServiceType, port)
	return srv, nil
}

// Browse reports spectator endpoints found on the LAN as host:port
// addresses until the lookup times out.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4, e.Port))
		}
	}()
	err := mdns.Lookup(ServiceType, entries)
	close(entries)
	<-done
	return err
}
