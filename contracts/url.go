package contracts

import (
	"net/url"
	"strings"
)

// URL is a url.URL that travels through JSON as a plain string.
type URL url.URL

func (this *URL) MarshalJSON() ([]byte, error) {
	return []byte(`"` + this.Value().String() + `"`), nil
}

func (this *URL) UnmarshalJSON(p []byte) error {
	raw := string(p)
	if raw == `"null"` || raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, "\"")
	address, err := url.Parse(raw)
	if err == nil {
		*this = URL(*address)
	}
	return err
}

func (this URL) Value() *url.URL {
	standard := url.URL(this)
	return &standard
}

// WithTrailingSlash returns the address with a path ending in "/" so that
// relative API paths can be appended directly.
func (this URL) WithTrailingSlash() URL {
	if !strings.HasSuffix(this.Path, "/") {
		this.Path += "/"
	}
	return this
}
