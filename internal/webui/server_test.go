package webui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ecosort/wastesort"
	"github.com/ecosort/wastesort/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv, err := New(Options{
		Classifier: &wastesort.Config{},
		Store:      store,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func fetchBody(t *testing.T, resp *http.Response, err error) string {
	t.Helper()
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestNewRequiresClassifier(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error for missing classifier")
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	body := fetchBody(t, resp, err)
	if !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("health body = %q, want status ok", body)
	}
}

func TestHomeListsCategories(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	body := fetchBody(t, resp, err)

	for _, c := range wastesort.Categories() {
		if !strings.Contains(body, c.String()) {
			t.Errorf("home page missing category %s", c)
		}
	}
	if !strings.Contains(body, "塑料瓶") {
		t.Error("home page missing catalog examples")
	}
}

func TestHomeUnknownPath(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestClassifyText(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.PostForm(ts.URL+"/classify", url.Values{"text": {"电池"}})
	body := fetchBody(t, resp, err)

	if !strings.Contains(body, "有害垃圾") {
		t.Errorf("classify 电池 should show 有害垃圾, got:\n%s", body)
	}
	if !strings.Contains(body, "投放方法") {
		t.Error("exact catalog match should render item details")
	}
}

func TestClassifyNoMatch(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.PostForm(ts.URL+"/classify", url.Values{"text": {"zzzz"}})
	body := fetchBody(t, resp, err)

	if !strings.Contains(body, "没有找到") {
		t.Error("unmatched text should render the no-match notice")
	}
}

func TestSearchByNameAndKeyword(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/search?q=" + url.QueryEscape("塑料"))
	body := fetchBody(t, resp, err)

	if !strings.Contains(body, "塑料瓶") {
		t.Error("search 塑料 should find 塑料瓶")
	}
}

func TestSearchMiss(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/search?q=xyzzy")
	body := fetchBody(t, resp, err)

	if !strings.Contains(body, "没有找到") {
		t.Error("search miss should render the empty notice")
	}
}

func TestStatsAfterClassification(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	resp, err := http.PostForm(ts.URL+"/classify", url.Values{"text": {"电池"}})
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/stats")
	body := fetchBody(t, resp, err)
	if !strings.Contains(body, "有害垃圾") {
		t.Error("stats should include the classified category")
	}
	if !strings.Contains(body, "电池") {
		t.Error("stats should list the recent record")
	}
}

func TestUploadMissingFile(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)
	resp, err := http.PostForm(ts.URL+"/upload", url.Values{"hint": {"塑料"}})
	body := fetchBody(t, resp, err)

	if !strings.Contains(body, "请选择要上传的图片") {
		t.Error("upload without a file should render the missing-file notice")
	}
}

func TestUploadClassifiesImage(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	var img bytes.Buffer
	solid := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			solid.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	if err := png.Encode(&img, solid); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	resp, err := postImage(t, ts.URL+"/upload", "red.png", img.Bytes(), "塑料")
	body := fetchBody(t, resp, err)
	if !strings.Contains(body, "识别结果") {
		t.Errorf("upload should render classification results, got:\n%s", body)
	}
	if !strings.Contains(body, "data:image/png;base64,") {
		t.Error("upload should render the inline preview")
	}
}

func TestUploadUndecodableFallsBack(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	resp, err := postImage(t, ts.URL+"/upload", "junk.bin", []byte("not an image"), "电池")
	body := fetchBody(t, resp, err)
	if !strings.Contains(body, "图片无法解析") {
		t.Error("undecodable upload should render the fallback notice")
	}
	if !strings.Contains(body, "其他垃圾") {
		t.Error("fallback prediction should land on the residual category")
	}
	if !strings.Contains(body, "50.0%") {
		t.Error("a supplied hint should lift the fallback confidence to 0.5")
	}
}

func postImage(t *testing.T, target, filename string, data []byte, hint string) (*http.Response, error) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.WriteField("hint", hint); err != nil {
		t.Fatalf("write hint: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return http.Post(target, mw.FormDataContentType(), &buf)
}
