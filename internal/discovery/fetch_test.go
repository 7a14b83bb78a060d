package discovery

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestFetchDataURI 验证 data: URI 在本地解码，不走网络
func TestFetchDataURI(t *testing.T) {
	f := NewHTTPFetcher("http://localhost:1/photos/", time.Second)

	t.Run("base64 载荷", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte("hello"))
		status, body, err := f.Fetch(context.Background(), "data:image/png;base64,"+payload)
		if err != nil {
			t.Fatalf("Fetch 失败: %v", err)
		}
		if status != http.StatusOK || string(body) != "hello" {
			t.Errorf("Fetch = (%d, %q), 期望 (200, hello)", status, body)
		}
	})

	t.Run("转义载荷", func(t *testing.T) {
		status, body, err := f.Fetch(context.Background(), "data:text/plain,a%20b")
		if err != nil {
			t.Fatalf("Fetch 失败: %v", err)
		}
		if status != http.StatusOK || string(body) != "a b" {
			t.Errorf("Fetch = (%d, %q), 期望 (200, a b)", status, body)
		}
	})

	t.Run("缺少逗号分隔符", func(t *testing.T) {
		if _, _, err := f.Fetch(context.Background(), "data:image/png;base64"); err == nil {
			t.Error("畸形 data URI 应报错")
		}
	})
}

// TestFetchRelativeResolution 验证相对地址拼接到基地址上，
// 且请求带禁缓存头
func TestFetchRelativeResolution(t *testing.T) {
	var gotPath, gotCacheControl string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCacheControl = r.Header.Get("Cache-Control")
		w.Write([]byte("img"))
	}))
	t.Cleanup(srv.Close)

	f := NewHTTPFetcher(srv.URL+"/photos/", time.Second)
	status, body, err := f.Fetch(context.Background(), "./pic.png")
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if status != http.StatusOK || string(body) != "img" {
		t.Errorf("Fetch = (%d, %q), 期望 (200, img)", status, body)
	}
	if gotPath != "/photos/pic.png" {
		t.Errorf("请求路径 = %s, 期望 /photos/pic.png", gotPath)
	}
	if gotCacheControl != "no-cache" {
		t.Errorf("Cache-Control = %q, 期望 no-cache", gotCacheControl)
	}
}

// TestFetchAbsolutePassThrough 验证绝对 http 地址不做拼接
func TestFetchAbsolutePassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	// 基地址故意指向一个没有服务的端口，绝对地址命中则说明未拼接
	f := NewHTTPFetcher("http://localhost:1/photos/", time.Second)
	status, _, err := f.Fetch(context.Background(), srv.URL+"/direct.png")
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if status != http.StatusTeapot {
		t.Errorf("状态码 = %d, 期望 %d", status, http.StatusTeapot)
	}
}
