package reader

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Resource wraps a streamable local file or remote scene asset. Scene files
// and the images their textures reference are both opened through it, so a
// description can freely mix local paths and http(s) URLs.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// NewResource opens a data stream. If relTo is given and pathToResource has
// no scheme, the path is resolved against relTo's directory. http and https
// URLs are fetched with the net/http default client. The caller must close
// the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	// replace backslashes so windows-style relative paths parse as URLs
	u, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// a relative url clones the parent url and adjusts its path
	if u.Scheme == "" && relTo != nil {
		path := u.Path
		u, _ = url.Parse(relTo.url.String())
		prefix := u.Path
		if u.Scheme == "" {
			prefix, err = filepath.Abs(relTo.url.String())
			if err != nil {
				return nil, fmt.Errorf("resource: could not detect abs path for %s: %s", relTo.url.String(), err.Error())
			}
		}
		u.Path = filepath.Dir(prefix) + "/" + path
	}

	var reader io.ReadCloser
	switch u.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(u.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", u.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", u.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", u.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        u,
	}, nil
}
