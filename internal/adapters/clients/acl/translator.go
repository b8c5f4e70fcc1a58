package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/domain"
)

// BaseAdapter is embedded by every downstream adapter. It pairs the
// instrumented client with the name used in errors and health checks.
type BaseAdapter struct {
	client *clients.Client
	name   string
}

// NewBaseAdapter names the adapter after the client unless name is set.
func NewBaseAdapter(client *clients.Client, name string) BaseAdapter {
	if name == "" && client != nil {
		name = client.ServiceName()
	}

	return BaseAdapter{client: client, name: name}
}

func (a *BaseAdapter) Client() *clients.Client { return a.client }

func (a *BaseAdapter) ServiceName() string { return a.name }

// Get issues a GET and hands back the open body of a 2xx/3xx answer. Any
// other outcome is already a domain error and the body is closed.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.name, operation, path)
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp.Body, nil
	}

	defer func() { _ = resp.Body.Close() }()

	return nil, MapHTTPError(resp, nil, a.name, operation, path)
}

// GetJSON is Get followed by DecodeResponse. Decode failures are classified
// by DecodeError against expected.
func GetJSON[T any](ctx context.Context, a *BaseAdapter, path, operation, expected string) (T, error) {
	var zero T

	body, err := a.Get(ctx, path, operation)
	if err != nil {
		return zero, err
	}

	v, err := DecodeResponse[T](body)
	if err != nil {
		return zero, DecodeError(a.name, expected, err)
	}

	return v, nil
}

// DecodeResponse decodes one JSON value from body and closes it.
func DecodeResponse[T any](body io.ReadCloser) (T, error) {
	var v T

	if body == nil {
		return v, errors.New("decoding response: no body")
	}
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(body).Decode(&v); err != nil {
		return v, fmt.Errorf("decoding response: %w", err)
	}

	return v, nil
}

// DecodeError maps a decode failure to domain.FormatError when the JSON was
// well formed but of the wrong shape, and to domain.ParseError otherwise.
func DecodeError(source, expected string, err error) error {
	if typeErr := (*json.UnmarshalTypeError)(nil); errors.As(err, &typeErr) {
		return domain.NewFormatError(source, expected)
	}

	return domain.NewParseError(source, err)
}

// Translator turns one wire DTO into a domain value.
type Translator[E, D any] func(ext *E) (D, error)

// TranslateSlice translates items in order. The first failure aborts and is
// reported with the item's index.
func TranslateSlice[E, D any](items []E, translate Translator[E, D]) ([]D, error) {
	out := make([]D, len(items))

	for i := range items {
		d, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		out[i] = d
	}

	return out, nil
}
