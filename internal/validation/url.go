package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// BaseURLValidator validates the platform base URL before the client ever
// dials it. The strict defaults reject localhost and private ranges; the
// permissive variant exists for development against a local platform.
type BaseURLValidator struct {
	AllowLocalhost  bool
	AllowPrivateIPs bool
	MaxLength       int
}

// NewBaseURLValidator returns a validator with strict defaults.
func NewBaseURLValidator() *BaseURLValidator {
	return &BaseURLValidator{
		AllowLocalhost:  false,
		AllowPrivateIPs: false,
		MaxLength:       2048,
	}
}

// NewPermissiveBaseURLValidator allows localhost and private addresses.
func NewPermissiveBaseURLValidator() *BaseURLValidator {
	return &BaseURLValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: true,
		MaxLength:       2048,
	}
}

// ValidateAndNormalize validates a base URL and returns its canonical form:
// https scheme assumed when missing, no trailing slash.
func (v *BaseURLValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("base URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("base URL too long (max %d characters)", v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'`") {
		return "", fmt.Errorf("base URL contains invalid characters")
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		input = "https://" + input
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("base URL must use http or https")
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("base URL must have a hostname")
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("base URL must not carry a query or fragment")
	}

	if err := v.validateHost(parsed.Host); err != nil {
		return "", err
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String(), nil
}

func (v *BaseURLValidator) validateHost(host string) error {
	hostname := host
	if strings.Contains(host, ":") {
		var err error
		hostname, _, err = net.SplitHostPort(host)
		if err != nil {
			return fmt.Errorf("invalid host format: %w", err)
		}
	}

	if !v.AllowLocalhost && isLocalhost(hostname) {
		return fmt.Errorf("localhost base URLs are not permitted")
	}

	if !v.AllowPrivateIPs {
		if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
			return fmt.Errorf("private IP base URLs are not permitted")
		}
	}

	return nil
}

func isLocalhost(hostname string) bool {
	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		strings.HasSuffix(hostname, ".localhost")
}

func isPrivateIP(ip net.IP) bool {
	private := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"169.254.0.0/16",
		"127.0.0.0/8",
	}

	for _, cidr := range private {
		_, block, _ := net.ParseCIDR(cidr)
		if block != nil && block.Contains(ip) {
			return true
		}
	}

	if ip.To4() == nil {
		// fc00::/7 unique local, fe80::/10 link-local
		s := ip.String()
		return strings.HasPrefix(s, "fc") ||
			strings.HasPrefix(s, "fd") ||
			strings.HasPrefix(s, "fe8") ||
			strings.HasPrefix(s, "fe9") ||
			strings.HasPrefix(s, "fea") ||
			strings.HasPrefix(s, "feb")
	}

	return false
}
