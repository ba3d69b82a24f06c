package service

import "net/http"

type versionRoundTripper struct {
	version string
	next    http.RoundTripper
}

func newVersionRoundTripper(version string) *versionRoundTripper {
	return &versionRoundTripper{version: version, next: http.DefaultTransport}
}

func (v *versionRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to ensure thread safety
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", "webtoapk/"+v.version)
	return v.next.RoundTrip(clonedReq)
}
