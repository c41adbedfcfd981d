package zapapi

import (
	"context"
	"errors"
)

// fakeTransport records locators and replies with canned bodies.
type fakeTransport struct {
	body      string
	data      []byte
	err       error
	locators  []string
	dataCalls int
}

func (f *fakeTransport) DownloadString(_ context.Context, locator string) (string, error) {
	f.locators = append(f.locators, locator)
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

func (f *fakeTransport) DownloadData(_ context.Context, locator string) ([]byte, error) {
	f.locators = append(f.locators, locator)
	f.dataCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeTransport) last() string {
	if len(f.locators) == 0 {
		return ""
	}
	return f.locators[len(f.locators)-1]
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")

func newFakeClient(body string) (*Client, *fakeTransport) {
	ft := &fakeTransport{body: body}
	return New(WithTransport(ft), WithAPIKey("secret")), ft
}
