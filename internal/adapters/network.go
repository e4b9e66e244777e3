package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quayside-labs/walletkit/internal/platform"
)

// ErrNoNetworkTransport is the one hard failure in adapter resolution. A
// non-functional network layer must not be masked: callers treat it as fatal
// to the operation that needed the network.
var ErrNoNetworkTransport = errors.New(
	"no usable network transport: native transport unavailable and no fallback configured")

const requestTimeout = 15 * time.Second

// Request is the platform-neutral HTTP request shape.
type Request struct {
	Method string // defaults to GET
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the platform-neutral HTTP response shape.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Text returns the body as a string.
func (r *Response) Text() string { return string(r.Body) }

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// NetworkAdapter performs HTTP requests over the resolved transport.
type NetworkAdapter interface {
	Name() string
	Do(ctx context.Context, req *Request) (*Response, error)
}

// ResolveNetwork picks the network variant: the native transport when the
// capability probe confirmed one, else an explicitly constructed fallback
// transport. Unlike storage and crypto there is no safe terminal fallback —
// when no candidate is usable the resolver fails with ErrNoNetworkTransport.
func ResolveNetwork(_ platform.Tag, caps platform.CapabilitySet, opts ...Option) (NetworkAdapter, error) {
	o := buildOptions(opts)

	candidates := o.transports
	if !o.transportsSet {
		if caps.NativeFetch {
			candidates = append(candidates, Transport{Name: "native", Tripper: http.DefaultTransport})
		}
		candidates = append(candidates, Transport{Name: "polyfill", Tripper: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		}})
	}

	for _, t := range candidates {
		if t.Tripper == nil {
			o.logger.Warn().Str("transport", t.Name).Msg("transport candidate is nil, skipping")
			continue
		}
		return &httpNetwork{
			name: t.Name,
			client: &http.Client{
				Transport: t.Tripper,
				Timeout:   requestTimeout,
			},
		}, nil
	}

	return nil, ErrNoNetworkTransport
}

type httpNetwork struct {
	name   string
	client *http.Client
}

func (n *httpNetwork) Name() string { return n.name }

func (n *httpNetwork) Do(ctx context.Context, req *Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}

	resp, err := n.client.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}
