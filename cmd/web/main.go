package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/debtblaster/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// landingHandler serves the landing page with the SSH host filled in.
func landingHandler(sshHost string) http.Handler {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "sshHost", sshHost)
	if err := http.ListenAndServe(addr, landingHandler(sshHost)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
