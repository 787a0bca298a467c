package config

import (
	"flag"
	"net"
	"regexp"
	"strconv"
)

type Config struct {
	Addr         string
	DBUrl        string
	ReviewLink   string
	Mock         bool
	StrictSubmit bool
	Debug        bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.DBUrl, "db-url", "feedback.sqlite", "path to SQLite3 DB file (default feedback.sqlite)")
	flag.StringVar(&cfg.ReviewLink, "review-link", "https://www.trustpilot.com/review/yourwebsite.com", "review platform link shown when the flow completes")
	flag.BoolVar(&cfg.Mock, "mock", false, "serve the built-in mock question set for every order")
	flag.BoolVar(&cfg.StrictSubmit, "strict-submit", false, "block flow advancement when a feedback POST fails")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
