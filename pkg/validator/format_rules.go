package validator

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// isEmail validates an address with net/mail and then applies the stricter
// shape expected from web forms: bare address, dotted domain, no empty labels.
func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// validURL requires an absolute URL with a host. Optional params restrict the
// allowed schemes: "url:https,ftp".
func validURL(value any, params Params) (bool, error) {
	schemes := params.Strings()
	return every(value, func(item any) bool {
		s, ok := ToString(item)
		if !ok || strings.TrimSpace(s) == "" {
			return false
		}
		u, err := url.ParseRequestURI(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		return len(schemes) == 0 || slices.Contains(schemes, u.Scheme)
	}), nil
}

// isUUID checks the canonical 36-character form before parsing.
func isUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// validIP accepts IPv4 and IPv6; "ip:v4" or "ip:v6" restricts the family.
func validIP(value any, params Params) (bool, error) {
	version, _ := params.Text(0, "version")
	switch version {
	case "", "v4", "v6":
	default:
		return false, fmt.Errorf("%w: unknown ip version %q", ErrInvalidParams, version)
	}

	return every(value, func(item any) bool {
		s, ok := ToString(item)
		if !ok {
			return false
		}
		ip := net.ParseIP(s)
		if ip == nil {
			return false
		}
		switch version {
		case "v4":
			return ip.To4() != nil && !strings.Contains(s, ":")
		case "v6":
			return strings.Contains(s, ":")
		}
		return true
	}), nil
}

// patternCache keeps compiled regex params; rules run far more often than
// patterns change.
var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// matchPattern matches the value against the "regex" param. A *regexp.Regexp
// param is used as is.
func matchPattern(value any, params Params) (bool, error) {
	raw, ok := params.Lookup(0, "regex")
	if !ok {
		return false, paramErr("regex")
	}

	var re *regexp.Regexp
	switch p := raw.(type) {
	case *regexp.Regexp:
		re = p
	default:
		pattern, ok := ToString(p)
		if !ok {
			return false, paramErr("regex")
		}
		var err error
		if re, err = compilePattern(pattern); err != nil {
			return false, err
		}
	}
	return matchEvery(re)(value, params)
}
