package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/schema"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func TestClientAttachesBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, WithTokenSource(staticToken("tok-123")))
	if _, err := client.Forms(context.Background()); err != nil {
		t.Fatalf("Forms() error = %v", err)
	}
	if got != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer tok-123")
	}
}

func TestClientOmitsBearerWithoutSession(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, WithTokenSource(staticToken("")))
	if _, err := client.Forms(context.Background()); err != nil {
		t.Fatalf("Forms() error = %v", err)
	}
	if got != "" {
		t.Errorf("Authorization = %q, want empty", got)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/auth/login/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode login payload: %v", err)
		}
		if payload["username"] != "kim" || payload["password"] != "hunter2" {
			t.Errorf("payload = %v", payload)
		}
		w.Write([]byte(`{"access":"a1","refresh":"r1"}`))
	}))
	defer srv.Close()

	creds, err := New(srv.URL).Login(context.Background(), "kim", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	want := Credentials{Access: "a1", Refresh: "r1"}
	if diff := cmp.Diff(want, creds); diff != "" {
		t.Errorf("credentials mismatch (-want +got):\n%s", diff)
	}
}

func TestUnauthorizedFiresHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fired := 0
	client := New(srv.URL, WithUnauthorizedHook(func() { fired++ }))
	_, err := client.Forms(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Forms() error = %v, want AuthError", err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", authErr.Status, http.StatusUnauthorized)
	}
	if fired != 1 {
		t.Errorf("unauthorized hook fired %d times, want 1", fired)
	}
}

func TestForbiddenIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteForm(context.Background(), 7)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("DeleteForm() error = %v, want AuthError", err)
	}
}

func TestServerErrorIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"title required"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateForm(context.Background(), schema.Form{Title: ""})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("CreateForm() error = %v, want StatusError", err)
	}
	if statusErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", statusErr.Status)
	}
	if statusErr.Body != `{"detail":"title required"}` {
		t.Errorf("Body = %q", statusErr.Body)
	}
}

func TestFormsDecodesOrderedStructure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"title":"Intake","description":"d",` +
			`"form_structure":{"name":"string","age":"number","address":{"city":"string"}}}]`))
	}))
	defer srv.Close()

	records, err := New(srv.URL).Forms(context.Background())
	if err != nil {
		t.Fatalf("Forms() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	form, err := records[0].Form()
	if err != nil {
		t.Fatalf("Form() error = %v", err)
	}
	if form.ID != 3 || form.Title != "Intake" {
		t.Errorf("form header = %+v", form)
	}
	var names []string
	for _, field := range form.Structure {
		names = append(names, field.Name)
	}
	want := []string{"name", "age", "address"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateFormPreservesFieldOrder(t *testing.T) {
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode create payload: %v", err)
		}
		w.Write([]byte(`{"id":9,"title":"Intake","description":"","form_structure":{}}`))
	}))
	defer srv.Close()

	form := schema.Form{
		Title: "Intake",
		Structure: schema.Structure{
			{Name: "zulu", Kind: schema.KindString},
			{Name: "alpha", Kind: schema.KindNumber},
		},
	}
	if _, err := New(srv.URL).CreateForm(context.Background(), form); err != nil {
		t.Fatalf("CreateForm() error = %v", err)
	}
	want := `{"zulu":"string","alpha":"number"}`
	if got := string(body["form_structure"]); got != want {
		t.Errorf("form_structure = %s, want %s", got, want)
	}
}

func TestSubmitPostsResponseDocument(t *testing.T) {
	var path string
	var payload map[string]binder.Document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode submit payload: %v", err)
		}
		w.Write([]byte(`{"id":41,"form":5,"response_data":{"name":"Ada"}}`))
	}))
	defer srv.Close()

	doc := binder.Document{"name": "Ada"}
	saved, err := New(srv.URL).Submit(context.Background(), 5, doc)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if path != "/api/forms/5/submit/" {
		t.Errorf("path = %q", path)
	}
	if diff := cmp.Diff(doc, payload["response_data"]); diff != "" {
		t.Errorf("response_data mismatch (-want +got):\n%s", diff)
	}
	if saved.ID != 41 || saved.Form != 5 {
		t.Errorf("saved = %+v", saved)
	}
}

func TestResponsesFiltersByForm(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`[{"id":1,"form":5,"response_data":{"name":"Ada"}}]`))
	}))
	defer srv.Close()

	saved, err := New(srv.URL).Responses(context.Background(), 5)
	if err != nil {
		t.Fatalf("Responses() error = %v", err)
	}
	if query != "form=5" {
		t.Errorf("query = %q, want form=5", query)
	}
	if len(saved) != 1 || saved[0].ResponseData["name"] != "Ada" {
		t.Errorf("saved = %+v", saved)
	}
}
