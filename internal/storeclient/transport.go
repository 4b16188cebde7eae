package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"scaffold-rental/internal/api/handler/dto"
	"scaffold-rental/internal/pkg/apperrors"
	"strings"
)

// Transport is the remote CRUD surface of one collection.
type Transport[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, key string) (T, error)
	Add(ctx context.Context, rec T) error
	Update(ctx context.Context, key string, rec T) error
	Delete(ctx context.Context, key string) error
}

// HTTPTransport talks JSON to the record service's /api/v1/{collection} routes.
type HTTPTransport[T any] struct {
	session    *Session
	collection string
}

var _ Transport[struct{}] = (*HTTPTransport[struct{}])(nil)

func NewHTTPTransport[T any](session *Session, collection string) *HTTPTransport[T] {
	if session == nil {
		panic("session cannot be nil for HTTPTransport")
	}
	return &HTTPTransport[T]{session: session, collection: collection}
}

// url escapes each segment so keys containing "/" stay a single path segment.
func (t *HTTPTransport[T]) url(key string) string {
	u := *t.session.baseURL
	raw := strings.TrimRight(u.EscapedPath(), "/") + "/api/v1/" + url.PathEscape(t.collection)
	if key != "" {
		raw += "/" + url.PathEscape(key)
	}
	u.Path, _ = url.PathUnescape(raw)
	u.RawPath = raw
	return u.String()
}

func (t *HTTPTransport[T]) do(ctx context.Context, method, key string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidArgument, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.url(key), payload)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidArgument, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := t.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(token, "Bearer "))
	}

	resp, err := t.session.httpClient.Do(req)
	if err != nil {
		t.session.logger.WarnContext(ctx, "Record service request failed",
			slog.String("method", method), slog.String("collection", t.collection), slog.Any("error", err))
		return fmt.Errorf("%w: %w", apperrors.ErrConnectionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", t.collection, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error.Message == "" {
		body.Error.Message = strings.TrimSpace(string(raw))
		if body.Error.Message == "" {
			body.Error.Message = resp.Status
		}
	}
	msg := body.Error.Message

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, msg)
	case http.StatusBadRequest:
		if len(body.Error.Fields) > 0 {
			return apperrors.FieldErrors(body.Error.Fields)
		}
		if body.Error.Field != "" {
			return apperrors.NewValidationError(body.Error.Field, msg)
		}
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, msg)
	default:
		return &apperrors.AppError{
			Code:    body.Error.Code,
			Message: msg,
			Cause:   fmt.Errorf("%w: status %d", apperrors.ErrInternalServer, resp.StatusCode),
		}
	}
}

func (t *HTTPTransport[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := t.do(ctx, http.MethodGet, "", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (t *HTTPTransport[T]) Get(ctx context.Context, key string) (T, error) {
	var out T
	if key == "" {
		return out, fmt.Errorf("%w: empty key", apperrors.ErrInvalidArgument)
	}
	err := t.do(ctx, http.MethodGet, key, nil, &out)
	return out, err
}

func (t *HTTPTransport[T]) Add(ctx context.Context, rec T) error {
	return t.do(ctx, http.MethodPost, "", rec, nil)
}

func (t *HTTPTransport[T]) Update(ctx context.Context, key string, rec T) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", apperrors.ErrInvalidArgument)
	}
	return t.do(ctx, http.MethodPut, key, rec, nil)
}

func (t *HTTPTransport[T]) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", apperrors.ErrInvalidArgument)
	}
	return t.do(ctx, http.MethodDelete, key, nil, nil)
}
