// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"fmt"
	"net/url"
	"regexp"
)

// privateHostPatterns block cloud metadata endpoints and private ranges a
// configured API URL must never point at. localhost stays allowed for tests
// and local proxies.
var privateHostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^10\.`),                          // 10.0.0.0/8
	regexp.MustCompile(`^172\.(1[6-9]|2[0-9]|3[0-1])\.`), // 172.16.0.0/12
	regexp.MustCompile(`^192\.168\.`),                    // 192.168.0.0/16
	regexp.MustCompile(`^169\.254\.`),                    // link-local, incl. metadata
	regexp.MustCompile(`^f[cd][0-9a-f]{2}:`),             // fc00::/7
	regexp.MustCompile(`^fe80:`),                         // fe80::/10
}

// validateBaseURL accepts only http(s) URLs with a public or loopback host.
func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %q: only http and https are allowed", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no hostname")
	}
	for _, p := range privateHostPatterns {
		if p.MatchString(host) {
			return fmt.Errorf("SSRF protection: cannot connect to private/internal network: %s", host)
		}
	}
	return nil
}
