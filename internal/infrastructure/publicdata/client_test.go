package publicdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farm-policy/internal/config"

	"github.com/stretchr/testify/require"
)

func newClient(baseURL, key string) *Client {
	return NewClient(config.PublicDataConfig{
		BaseURL:    baseURL,
		ServiceKey: key,
		Timeout:    2 * time.Second,
	}, nil)
}

func TestFetch_UnknownSource(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1", "k").Fetch(context.Background(), "nope", Query{})
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestFetch_NoKeyReturnsSamples(t *testing.T) {
	c := newClient("http://127.0.0.1:1", "")

	resp, err := c.Fetch(context.Background(), "nps", Query{Type: "basicPension"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.IsFallback())
	require.Equal(t, 1, resp.TotalCount)
	require.Equal(t, "기초연금 안내", resp.Items()[0]["title"])
	require.Equal(t, Sources["nps"].NoKeyMessage, resp.Message)

	resp, err = c.Fetch(context.Background(), "mafra", Query{})
	require.NoError(t, err)
	require.Empty(t, resp.Items())
	require.Zero(t, resp.TotalCount)
	require.Equal(t, "API 키가 설정되지 않았습니다. 샘플 데이터를 사용합니다.", resp.Message)
}

func TestFetch_UnsupportedType(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1", "k").Fetch(context.Background(), "bokjiro", Query{Type: "housing"})
	require.ErrorIs(t, err, ErrUnsupportedType)

	var ute *UnsupportedTypeError
	require.True(t, errors.As(err, &ute))
	require.Equal(t, []string{"energyVoucher", "lifeSupport", "welfare"}, ute.Valid)
	require.Equal(t, "지원하지 않는 type: housing. 가능한 값: energyVoucher, lifeSupport, welfare", err.Error())
}

func TestFetch_UpstreamJSON(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/15083324/v1/uddi:life-support-info", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"serviceKey": q.Get("serviceKey"),
			"page":       q.Get("page"),
			"perPage":    q.Get("perPage"),
			"returnType": q.Get("returnType"),
			"keyword":    q.Get("cond[서비스명::LIKE]"),
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"data":[{"서비스명":"생계급여","id":"A1"}],"totalCount":42}`))
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL, "secret").Fetch(context.Background(), "bokjiro", Query{
		Type:    "lifeSupport",
		Page:    2,
		Keyword: "생계",
	})
	require.NoError(t, err)
	require.Equal(t, "bokjiro_api", resp.Source)
	require.Equal(t, 42, resp.TotalCount)
	require.Len(t, resp.Items(), 1)
	require.Equal(t, "생계급여", resp.Items()[0]["서비스명"])
	require.Equal(t, map[string]string{
		"serviceKey": "secret",
		"page":       "2",
		"perPage":    "10",
		"returnType": "JSON",
		"keyword":    "생계",
	}, gotQuery)
}

func TestFetch_UpstreamBodyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"body":{"items":[{"title":"x"},{"title":"y"}],"totalCount":"7"}}`))
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL, "k").Fetch(context.Background(), "nps", Query{})
	require.NoError(t, err)
	require.Equal(t, "nps_api", resp.Source)
	require.Len(t, resp.Items(), 2)
	require.Equal(t, 7, resp.TotalCount)
}

func TestFetch_XMLIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<response><items/></response>`))
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL, "k").Fetch(context.Background(), "mafra", Query{Type: "farmMachine"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"raw": "<response><items/></response>", "format": "xml"}, resp.Data)
	require.Nil(t, resp.Items())
}

func TestFetch_UpstreamErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL, "k").Fetch(context.Background(), "bokjiro", Query{Type: "energyVoucher"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.IsFallback())
	require.Equal(t, "공공API 연동 오류. 안내 정보를 표시합니다.", resp.Message)
	require.Equal(t, "에너지 바우처 안내", resp.Items()[0]["title"])
	require.Contains(t, resp.Error, "502")
}

func TestFetch_ContextCancelsInFlightCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	resp, err := newClient(srv.URL, "k").Fetch(ctx, "mafra", Query{Type: "directPayment"})
	require.NoError(t, err)
	require.True(t, resp.IsFallback())
	require.Contains(t, resp.Error, context.DeadlineExceeded.Error())
	require.Less(t, time.Since(start), time.Second)
}
