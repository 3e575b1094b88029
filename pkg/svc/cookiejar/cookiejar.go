package cookiejar

import (
	"bufio"
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	fieldCount     = 7
	httpOnlyPrefix = "#HttpOnly_"
	headerMarker   = "Netscape HTTP Cookie File"
)

// AuthCookieNames are the cookies that carry a signed-in YouTube/Google session.
func AuthCookieNames() []string {
	return []string{"SAPISID", "SID", "__Secure-1PSID", "__Secure-3PSID"}
}

// AuthDomainSuffixes are the domains the auth cookies are expected on.
func AuthDomainSuffixes() []string {
	return []string{"youtube.com", "google.com"}
}

// Cookie is a single entry of a Netscape cookie file.
type Cookie struct {
	Domain            string    `json:"domain"`
	IncludeSubdomains bool      `json:"includeSubdomains"`
	Path              string    `json:"path"`
	Secure            bool      `json:"secure"`
	HTTPOnly          bool      `json:"httpOnly"`
	Expires           time.Time `json:"expires,omitzero"`
	Name              string    `json:"name"`
	Value             string    `json:"-"`
}

// IsSession reports whether the cookie has no expiry.
func (c Cookie) IsSession() bool {
	return c.Expires.IsZero()
}

// ExpiredAt reports whether the cookie is expired at now.
func (c Cookie) ExpiredAt(now time.Time) bool {
	return !c.IsSession() && !c.Expires.After(now)
}

// Jar is a parsed cookie file.
type Jar struct {
	HasHeader bool
	Cookies   []Cookie
	// Invalid holds the 1-based line numbers that could not be parsed.
	Invalid []int
}

// Parse reads a Netscape cookie file. Malformed lines are recorded, not fatal.
func Parse(data []byte) (*Jar, error) {
	jar := &Jar{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(len(data)+1, bufio.MaxScanTokenSize))

	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.TrimSpace(line) == "":
			continue
		case strings.HasPrefix(line, httpOnlyPrefix):
			cookie, ok := parseLine(strings.TrimPrefix(line, httpOnlyPrefix))
			if !ok {
				jar.Invalid = append(jar.Invalid, lineNumber)

				continue
			}

			cookie.HTTPOnly = true
			jar.Cookies = append(jar.Cookies, cookie)
		case strings.HasPrefix(line, "#"):
			if strings.Contains(line, headerMarker) {
				jar.HasHeader = true
			}
		default:
			cookie, ok := parseLine(line)
			if !ok {
				jar.Invalid = append(jar.Invalid, lineNumber)

				continue
			}

			jar.Cookies = append(jar.Cookies, cookie)
		}
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("scan cookie file: %w", err)
	}

	return jar, nil
}

func parseLine(line string) (Cookie, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != fieldCount {
		return Cookie{}, false
	}

	includeSubdomains, ok := parseFlag(fields[1])
	if !ok {
		return Cookie{}, false
	}

	secure, ok := parseFlag(fields[3])
	if !ok {
		return Cookie{}, false
	}

	expiry, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil || expiry < 0 {
		return Cookie{}, false
	}

	cookie := Cookie{
		Domain:            fields[0],
		IncludeSubdomains: includeSubdomains,
		Path:              fields[2],
		Secure:            secure,
		Name:              fields[5],
		Value:             fields[6],
	}

	if expiry > 0 {
		cookie.Expires = time.Unix(expiry, 0).UTC()
	}

	if cookie.Domain == "" || cookie.Name == "" {
		return Cookie{}, false
	}

	return cookie, true
}

func parseFlag(value string) (bool, bool) {
	switch strings.ToUpper(value) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	default:
		return false, false
	}
}

// Report summarizes a jar at a point in time.
type Report struct {
	Path        string    `json:"path,omitempty"`
	Bytes       int       `json:"bytes"`
	HasHeader   bool      `json:"hasHeader"`
	Total       int       `json:"total"`
	Session     int       `json:"session"`
	Expired     int       `json:"expired"`
	Invalid     []int     `json:"invalidLines,omitempty"`
	Domains     []string  `json:"domains,omitempty"`
	AuthCookies []string  `json:"authCookies,omitempty"`
	NextExpiry  time.Time `json:"nextExpiry,omitzero"`
}

// Inspect parses data and summarizes it at now.
func Inspect(data []byte, now time.Time) (Report, error) {
	jar, err := Parse(data)
	if err != nil {
		return Report{}, err
	}

	report := jar.Report(now)
	report.Bytes = len(data)

	return report, nil
}

// Report summarizes the jar at now.
func (j *Jar) Report(now time.Time) Report {
	report := Report{
		HasHeader: j.HasHeader,
		Total:     len(j.Cookies),
		Invalid:   slices.Clone(j.Invalid),
	}

	domains := map[string]struct{}{}
	auth := map[string]struct{}{}

	for _, cookie := range j.Cookies {
		domains[strings.TrimPrefix(cookie.Domain, ".")] = struct{}{}

		switch {
		case cookie.IsSession():
			report.Session++
		case cookie.ExpiredAt(now):
			report.Expired++

			continue
		case report.NextExpiry.IsZero() || cookie.Expires.Before(report.NextExpiry):
			report.NextExpiry = cookie.Expires
		}

		if isAuthCookie(cookie) {
			auth[cookie.Name] = struct{}{}
		}
	}

	report.Domains = sortedKeys(domains)
	report.AuthCookies = sortedKeys(auth)

	return report
}

// Warnings lists the findings worth surfacing to an operator.
func (r Report) Warnings() []string {
	var warnings []string

	if r.Total == 0 {
		return []string{"cookie file contains no cookies"}
	}

	if !r.HasHeader {
		warnings = append(warnings, "cookie file lacks the '# Netscape HTTP Cookie File' header; yt-dlp may reject it")
	}

	if len(r.Invalid) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d line(s) could not be parsed: %v", len(r.Invalid), r.Invalid))
	}

	if r.Expired > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d cookie(s) are expired", r.Expired, r.Total))
	}

	if len(r.AuthCookies) == 0 {
		warnings = append(warnings, fmt.Sprintf(
			"no unexpired sign-in cookies (%s) for %s; restricted videos may fail to download",
			strings.Join(AuthCookieNames(), ", "),
			strings.Join(AuthDomainSuffixes(), "/"),
		))
	}

	return warnings
}

func isAuthCookie(cookie Cookie) bool {
	if !slices.Contains(AuthCookieNames(), cookie.Name) {
		return false
	}

	domain := strings.TrimPrefix(strings.ToLower(cookie.Domain), ".")

	for _, suffix := range AuthDomainSuffixes() {
		if domain == suffix || strings.HasSuffix(domain, "."+suffix) {
			return true
		}
	}

	return false
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}
