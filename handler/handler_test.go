package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aofei/air"

	"github.com/air-examples/composer/catalog"
	"github.com/air-examples/composer/form"
	"github.com/air-examples/composer/markdown"
	"github.com/air-examples/composer/model"
	"github.com/air-examples/composer/submit"
)

type testApp struct {
	t      *testing.T
	a      *air.Air
	store  *form.Store
	cookie *http.Cookie
	posts  []model.Post
}

func newTestApp(t *testing.T, status int, body string) *testApp {
	t.Helper()

	ta := &testApp{t: t}

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p model.Post
		json.NewDecoder(r.Body).Decode(&p)
		ta.posts = append(ta.posts, p)

		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(api.Close)

	src, err := catalog.NewSource("")
	if err != nil {
		t.Fatal(err)
	}

	r, err := markdown.New(markdown.Config{})
	if err != nil {
		t.Fatal(err)
	}

	ta.store = form.NewStore(form.DefaultLimits, time.Hour, 0)

	ta.a = air.New()
	ta.a.RendererTemplateRoot = "../templates"
	ta.a.CofferAssetRoot = "../assets"
	Register(ta.a, &Composer{
		Store:    ta.store,
		Catalog:  src,
		Renderer: r,
		Client:   &submit.Client{Endpoint: api.URL},
	})

	return ta
}

func (ta *testApp) do(method, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	ta.t.Helper()
	return ta.doWithHeader(method, path, values, http.Header{"Accept-Language": {"en"}}, cookies...)
}

func (ta *testApp) doWithHeader(method, path string, values url.Values, h http.Header, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	ta.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, vs := range h {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if ta.cookie != nil {
		req.AddCookie(ta.cookie)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ta.a.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			ta.cookie = c
		}
	}

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestFieldTitle(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.do(http.MethodPost, "/posts/submit/fields/title", url.Values{"value": {"Hello"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	if ta.cookie == nil {
		t.Fatal("no session cookie set")
	}

	var r fieldResponse
	decode(t, rec, &r)
	if !r.Accepted || r.Form.Title != "Hello" || len(r.Notifications) != 0 {
		t.Errorf("got %+v", r)
	}

	rec = ta.do(http.MethodPost, "/posts/submit/fields/title", url.Values{"value": {strings.Repeat("a", 24)}})

	r = fieldResponse{}
	decode(t, rec, &r)
	if r.Accepted || r.Form.Title != "Hello" {
		t.Errorf("long title: %+v", r)
	}

	if len(r.Notifications) != 1 || r.Notifications[0].Message != "The title cannot exceed 23 characters!" {
		t.Errorf("notifications = %+v", r.Notifications)
	}
}

func TestFieldContentPreview(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.do(http.MethodPost, "/posts/submit/fields/content", url.Values{"value": {"# Hi"}})

	var r fieldResponse
	decode(t, rec, &r)
	if !strings.Contains(string(r.Preview), "Hi</h1>") {
		t.Errorf("preview = %q", r.Preview)
	}

	rec = ta.do(http.MethodGet, "/posts/submit/preview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}

	if rec.Header().Get("ETag") == "" {
		t.Error("preview has no ETag")
	}

	if !strings.Contains(rec.Body.String(), "Hi</h1>") {
		t.Errorf("preview body = %q", rec.Body)
	}
}

func TestFieldCategoryAndTags(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.do(http.MethodPost, "/posts/submit/fields/category", url.Values{"value": {"team"}})

	var r fieldResponse
	decode(t, rec, &r)
	if r.Form.Category != model.CategoryTeam {
		t.Errorf("category = %q", r.Form.Category)
	}

	rec = ta.do(http.MethodPost, "/posts/submit/fields/category", url.Values{"value": {"sports"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d", rec.Code)
	}

	rec = ta.do(http.MethodPost, "/posts/submit/fields/tags", url.Values{"value": {"eco", "math"}})

	r = fieldResponse{}
	decode(t, rec, &r)
	if len(r.Form.Tags) != 2 || r.Form.Tags[0] != model.TagEco || r.Form.Tags[1] != model.TagMath {
		t.Errorf("tags = %v", r.Form.Tags)
	}

	rec = ta.do(http.MethodPost, "/posts/submit/fields/tags", url.Values{"value": {"art"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown tag status = %d", rec.Code)
	}
}

func TestUnknownField(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.do(http.MethodPost, "/posts/submit/fields/author", url.Values{"value": {"x"}})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	if body.Message == "" {
		t.Error("error response has no message")
	}
}

func TestSubmit(t *testing.T) {
	ta := newTestApp(t, http.StatusCreated, `{}`)

	ta.do(http.MethodPost, "/posts/submit/fields/title", url.Values{"value": {"Hello"}})
	ta.do(http.MethodPost, "/posts/submit/fields/tags", url.Values{"value": {"computer"}})

	rec := ta.do(http.MethodPost, "/posts/submit", nil, &http.Cookie{Name: usernameCookie, Value: "%E5%B0%8F%E6%98%8E"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var r submitResponse
	decode(t, rec, &r)
	if !r.OK || r.ID == "" || len(r.Notifications) != 1 || r.Notifications[0].Kind != "success" {
		t.Errorf("got %+v", r)
	}

	if len(ta.posts) != 1 {
		t.Fatalf("API got %d posts", len(ta.posts))
	}

	p := ta.posts[0]
	if p.Title != "Hello" || len(p.Tags) != 1 || p.Tags[0] != model.TagComputer || p.Author.Name != "小明" {
		t.Errorf("posted %+v", p)
	}
}

func TestSubmitRejected(t *testing.T) {
	ta := newTestApp(t, http.StatusUnprocessableEntity, `{"message":"content is required"}`)

	rec := ta.do(http.MethodPost, "/posts/submit", nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d", rec.Code)
	}

	var r submitResponse
	decode(t, rec, &r)
	if r.OK || len(r.Notifications) != 1 || r.Notifications[0].Message != "content is required" {
		t.Errorf("got %+v", r)
	}

	if len(ta.posts) != 1 || ta.posts[0].Author.Name != "guest" {
		t.Errorf("posted %+v", ta.posts)
	}
}

func TestMetrics(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)
	ta.do(http.MethodPost, "/posts/submit/fields/content", url.Values{"value": {"x"}})

	rec := ta.do(http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "composer_field_edits_total") {
		t.Error("metrics do not include field edits")
	}
}

func TestSubmitPageNewSession(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.do(http.MethodGet, "/posts/submit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	if ta.cookie == nil {
		t.Error("page did not start a session")
	}

	body := rec.Body.String()
	for _, want := range []string{
		"<title>New post</title>",
		`<div id="preview"></div>`,
		"Preview",
		`value="competition"`,
		`value="math"`,
		`data-title-limit="23"`,
		"Choose what kind of post this is",
		`placeholder="Write using Markdown"`,
		">Submit</button>",
		"/assets/composer.js",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestSubmitPageChineseLabels(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.doWithHeader(http.MethodGet, "/posts/submit", nil, http.Header{"Accept-Language": {"zh-CN,zh;q=0.9"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"帖子分区", "选择你的帖子类型", "标题", "简介", "请使用 Markdown 语法进行编辑", "选择帖子标签：", "提交", "预览效果", "竞赛发布", "数学"} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestSubmitPageShowsSessionState(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	ta.do(http.MethodPost, "/posts/submit/fields/title", url.Values{"value": {"Hello"}})
	ta.do(http.MethodPost, "/posts/submit/fields/content", url.Values{"value": {"**bold**"}})
	ta.do(http.MethodPost, "/posts/submit/fields/tags", url.Values{"value": {"eco"}})

	rec := ta.do(http.MethodGet, "/posts/submit", nil)
	body := rec.Body.String()
	for _, want := range []string{`value="Hello"`, "<strong>bold</strong>", `value="eco" checked`} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestIndexRedirects(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.do(http.MethodGet, "/", nil)
	if rec.Code < 300 || rec.Code >= 400 {
		t.Fatalf("status = %d", rec.Code)
	}

	if loc := rec.Header().Get("Location"); !strings.HasSuffix(loc, "/posts/submit") {
		t.Errorf("Location = %q", loc)
	}
}

func TestPreviewNotModified(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)
	ta.do(http.MethodPost, "/posts/submit/fields/content", url.Values{"value": {"# Hi"}})

	rec := ta.do(http.MethodGet, "/posts/submit/preview", nil)
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("preview has no ETag")
	}

	rec = ta.doWithHeader(http.MethodGet, "/posts/submit/preview", nil, http.Header{"If-None-Match": {etag}})
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}

	if rec.Body.Len() != 0 {
		t.Errorf("304 carried a body: %q", rec.Body)
	}
}

func TestReadOnlyRoutesKeepNoSessions(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	for i := 0; i < 5; i++ {
		rec := ta.do(http.MethodGet, "/posts/submit/preview", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("preview status = %d", rec.Code)
		}

		if rec.Body.Len() != 0 {
			t.Errorf("cookieless preview = %q, want empty", rec.Body)
		}

		ta.do(http.MethodHead, "/posts/submit", nil)
	}

	if n := ta.store.Len(); n != 0 {
		t.Errorf("cookieless reads created %d sessions", n)
	}

	if ta.cookie != nil {
		t.Error("a read-only route set a session cookie")
	}
}

func TestSubmitCarriesLatestEdits(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	for _, v := range []string{"a", "ab", "abc"} {
		rec := ta.do(http.MethodPost, "/posts/submit/fields/title", url.Values{"value": {v}})

		var r fieldResponse
		decode(t, rec, &r)
		if !r.Accepted || r.Form.Title != v {
			t.Fatalf("edit %q answered %+v", v, r)
		}
	}

	ta.do(http.MethodPost, "/posts/submit/fields/content", url.Values{"value": {"draft"}})
	ta.do(http.MethodPost, "/posts/submit/fields/content", url.Values{"value": {"final"}})
	ta.do(http.MethodPost, "/posts/submit", nil)

	if len(ta.posts) != 1 {
		t.Fatalf("API got %d posts", len(ta.posts))
	}

	if p := ta.posts[0]; p.Title != "abc" || p.Content != "final" {
		t.Errorf("posted title %q content %q", p.Title, p.Content)
	}
}

func TestComposerScriptSerializesRequests(t *testing.T) {
	ta := newTestApp(t, http.StatusOK, `{}`)

	rec := ta.do(http.MethodGet, "/assets/composer.js", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"queue = queue.then(task)",
		"latest[name] !== n",
		"r.accepted === false",
		`post("/posts/submit", new URLSearchParams())`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("composer.js does not contain %q", want)
		}
	}
}
