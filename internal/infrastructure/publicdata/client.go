package publicdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"farm-policy/internal/config"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const fallbackSource = "fallback"

var (
	ErrUnknownSource   = errors.New("unknown public data source")
	ErrUnsupportedType = errors.New("unsupported public data type")
)

// UnsupportedTypeError carries the valid types so the caller can list them.
type UnsupportedTypeError struct {
	Source string
	Type   string
	Valid  []string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("지원하지 않는 type: %s. 가능한 값: %s", e.Type, strings.Join(e.Valid, ", "))
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

type Query struct {
	Type    string
	Page    int
	PerPage int
	Keyword string
}

// Response is the envelope returned to callers whether the data came from
// upstream or from the fallback samples.
type Response struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data"`
	TotalCount int    `json:"total_count"`
	Message    string `json:"message,omitempty"`
	Source     string `json:"source"`
	Error      string `json:"error,omitempty"`
}

func (r Response) IsFallback() bool { return r.Source == fallbackSource }

// Items returns Data as records when it is a JSON array of objects.
func (r Response) Items() []Item {
	switch v := r.Data.(type) {
	case []Item:
		return v
	case []any:
		out := make([]Item, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, Item(m))
			}
		}
		return out
	default:
		return nil
	}
}

type Client struct {
	baseURL    string
	serviceKey string
	timeout    time.Duration
	logger     *zap.Logger
}

func NewClient(cfg config.PublicDataConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		timeout:    timeout,
		logger:     logger,
	}
}

func (c *Client) HasKey() bool { return c.serviceKey != "" }

// Fetch proxies one request to a public API. Upstream failures never surface
// as errors; they produce a fallback envelope. Only an unknown source or type
// is an error.
func (c *Client) Fetch(ctx context.Context, sourceName string, q Query) (Response, error) {
	src, ok := Sources[sourceName]
	if !ok {
		return Response{}, fmt.Errorf("%w: %s", ErrUnknownSource, sourceName)
	}
	typ := strings.TrimSpace(q.Type)
	if typ == "" {
		typ = src.DefaultType
	}

	if !c.HasKey() {
		items := src.sample(typ)
		return Response{
			Success:    true,
			Data:       items,
			TotalCount: len(items),
			Message:    src.NoKeyMessage,
			Source:     fallbackSource,
		}, nil
	}

	endpoint, ok := src.Endpoints[typ]
	if !ok {
		return Response{}, &UnsupportedTypeError{Source: src.Name, Type: typ, Valid: src.Types()}
	}

	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("page", strconv.Itoa(positiveOr(q.Page, 1)))
	params.Set("perPage", strconv.Itoa(positiveOr(q.PerPage, 10)))
	params.Set("returnType", "JSON")
	if kw := strings.TrimSpace(q.Keyword); kw != "" && src.KeywordParam != "" {
		params.Set(src.KeywordParam, kw)
	}

	body, err := c.get(ctx, c.baseURL+endpoint, params)
	if err != nil {
		c.logger.Warn("public api call failed",
			zap.String("source", src.Name),
			zap.String("type", typ),
			zap.Error(err),
		)
		items := src.sample(typ)
		return Response{
			Success:    true,
			Data:       items,
			TotalCount: len(items),
			Message:    src.ErrorMessage,
			Source:     fallbackSource,
			Error:      err.Error(),
		}, nil
	}

	data, total := body.extract()
	return Response{
		Success:    true,
		Data:       data,
		TotalCount: total,
		Source:     src.Name + "_api",
	}, nil
}

type upstreamBody struct {
	json map[string]any
	raw  string
}

func (b upstreamBody) extract() (any, int) {
	if b.json == nil {
		return map[string]any{"raw": b.raw, "format": "xml"}, 0
	}

	var data any
	if v, ok := b.json["data"]; ok && v != nil {
		data = v
	}
	body, _ := b.json["body"].(map[string]any)
	if data == nil && body != nil {
		if v, ok := body["items"]; ok && v != nil {
			data = v
		}
	}
	if data == nil {
		data = []any{}
	}

	total := toInt(b.json["totalCount"])
	if total == 0 && body != nil {
		total = toInt(body["totalCount"])
	}
	return data, total
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (upstreamBody, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return upstreamBody{}, err
	}
	u.RawQuery = params.Encode()

	col := colly.NewCollector(colly.IgnoreRobotsTxt(), colly.AllowURLRevisit())
	col.WithTransport(contextTransport{ctx: ctx, base: http.DefaultTransport})
	col.SetRequestTimeout(c.timeout)

	var (
		out    upstreamBody
		reqErr error
	)

	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json")
	})

	col.OnResponse(func(r *colly.Response) {
		ct := ""
		if r.Headers != nil {
			ct = r.Headers.Get("Content-Type")
		}
		if strings.Contains(ct, "application/json") {
			dec := json.NewDecoder(bytes.NewReader(r.Body))
			dec.UseNumber()
			var m map[string]any
			if err := dec.Decode(&m); err != nil {
				reqErr = fmt.Errorf("decode response: %w", err)
				return
			}
			out.json = m
			return
		}
		out.raw = string(r.Body)
	})

	col.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			reqErr = fmt.Errorf("공공API 호출 실패: %d", r.StatusCode)
			return
		}
		reqErr = err
	})

	if ctx.Err() != nil {
		return upstreamBody{}, ctx.Err()
	}
	visitErr := col.Visit(u.String())
	col.Wait()
	if ctx.Err() != nil {
		return upstreamBody{}, ctx.Err()
	}
	if reqErr != nil {
		return upstreamBody{}, reqErr
	}
	if visitErr != nil {
		return upstreamBody{}, visitErr
	}
	return out, nil
}

// contextTransport binds every request of a collector to the caller's
// context so cancellation aborts in-flight calls.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

func toInt(v any) int {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0
			}
			return int(f)
		}
		return int(i)
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	default:
		return 0
	}
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
