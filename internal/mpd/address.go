package mpd

import (
	"fmt"
	"net"
	"os"
	"strings"
)

const (
	defaultHost = "localhost"
	defaultPort = "6600"
)

// Address describes how to reach an MPD server.
type Address struct {
	Network  string
	Addr     string
	Password string
}

func (a Address) String() string {
	return a.Network + ":" + a.Addr
}

// ResolveAddress picks the server address from the configured value, then
// MPD_HOST/MPD_PORT, then localhost:6600. Values starting with "/" or "@"
// are unix sockets; "password@host" carries a password.
func ResolveAddress(configured string) (Address, error) {
	return resolveAddress(configured, os.Getenv("MPD_HOST"), os.Getenv("MPD_PORT"))
}

func resolveAddress(configured, envHost, envPort string) (Address, error) {
	value := strings.TrimSpace(configured)
	port := strings.TrimSpace(envPort)
	if value == "" {
		value = strings.TrimSpace(envHost)
	}
	if value == "" {
		value = defaultHost
	}
	var password string
	if idx := strings.LastIndex(value, "@"); idx > 0 {
		password = value[:idx]
		value = value[idx+1:]
	}
	if strings.HasPrefix(value, "/") || strings.HasPrefix(value, "@") {
		return Address{Network: "unix", Addr: value, Password: password}, nil
	}
	host, p, err := net.SplitHostPort(value)
	if err != nil {
		host = value
		p = port
	}
	if p == "" {
		p = defaultPort
	}
	if host == "" {
		return Address{}, fmt.Errorf("invalid mpd address %q", configured)
	}
	return Address{Network: "tcp", Addr: net.JoinHostPort(host, p), Password: password}, nil
}
