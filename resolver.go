package jsonschema

import (
	"context"
	"io"
	"net/http"

	"github.com/go-faster/errors"
)

// RemoteResolver fetches a schema document that is not already registered.
// Resolve is synchronous and may block on I/O; per spec.md §5 it is only
// ever invoked from Registry.document at compile time, never from the
// evaluator's hot path.
type RemoteResolver interface {
	Resolve(ctx context.Context, uri string) ([]byte, error)
}

// Remote is a RemoteResolver that fetches with a plain HTTP GET. It is
// opt-in: NewRegistry(nil) and Parse use NoRemote. Embedders that want
// offline compilation should register every schema document up front with
// Registry.Register and never reach this path.
type Remote struct {
	Client *http.Client
}

// Resolve implements RemoteResolver.
func (r Remote) Resolve(ctx context.Context, uri string) ([]byte, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %q", uri)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch %q: unexpected status %s", uri, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", uri)
	}
	return data, nil
}

// NoRemote rejects every resolution, for embedders that want compilation to
// fail loudly instead of reaching the network.
type NoRemote struct{}

// Resolve implements RemoteResolver.
func (NoRemote) Resolve(_ context.Context, uri string) ([]byte, error) {
	return nil, errors.Errorf("remote resolution disabled: %q", uri)
}
