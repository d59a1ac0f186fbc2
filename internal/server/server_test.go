package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"classdraw/pkg/pipeline"
	"classdraw/pkg/store"
)

const validSource = `@startuml
class User {
  -name: string
  --
  +getName()
}
class Profile {
}
User *-- Profile
@enduml
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil)
	t.Cleanup(func() { runner.Close() })

	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(New(runner, st, nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestValidateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/validate", map[string]string{"source": validSource})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Valid  bool `json:"valid"`
		Report struct {
			Errors   []json.RawMessage `json:"errors"`
			Warnings []json.RawMessage `json:"warnings"`
		} `json:"report"`
	}
	decodeInto(t, resp, &body)
	if !body.Valid || len(body.Report.Errors) != 0 {
		t.Errorf("valid source rejected: %+v", body)
	}
}

func TestValidateEndpointReportsStructuralErrors(t *testing.T) {
	ts := newTestServer(t)

	source := "@startuml\nclass Dup {\n}\nclass Dup {\n}\n@enduml\n"
	resp := postJSON(t, ts.URL+"/api/validate", map[string]string{"source": source})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Valid bool `json:"valid"`
	}
	decodeInto(t, resp, &body)
	if body.Valid {
		t.Error("duplicate class names must invalidate the diagram")
	}
}

func TestValidateEndpointRejectsUnparseableSource(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/validate", map[string]string{"source": "class User {"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Code string `json:"code"`
	}
	decodeInto(t, resp, &body)
	if body.Code != "PARSE_ERROR" {
		t.Errorf("code = %q, want PARSE_ERROR", body.Code)
	}
}

func TestDiagramEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/diagram", map[string]any{
		"source":  validSource,
		"formats": []string{"png", "uml"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Artifacts map[string]string `json:"artifacts"`
		Hash      string            `json:"diagram_hash"`
	}
	decodeInto(t, resp, &body)
	if body.Artifacts["png"] == "" || body.Artifacts["uml"] == "" {
		t.Errorf("missing artifacts: %v", body.Artifacts)
	}
	if body.Hash == "" {
		t.Error("diagram hash missing")
	}
}

func TestDiagramEndpointStructuralErrorsReturn422(t *testing.T) {
	ts := newTestServer(t)

	source := "@startuml\nclass Dup {\n}\nclass Dup {\n}\n@enduml\n"
	resp := postJSON(t, ts.URL+"/api/diagram", map[string]string{"source": source})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	var body struct {
		Code   string `json:"code"`
		Report struct {
			Errors []json.RawMessage `json:"errors"`
		} `json:"report"`
	}
	decodeInto(t, resp, &body)
	if body.Code != "INVALID_INPUT" || len(body.Report.Errors) == 0 {
		t.Errorf("body = %+v", body)
	}
}

func TestExportEndpointCanonicalizes(t *testing.T) {
	ts := newTestServer(t)

	// Ragged indentation and a blank line normalize away.
	raw := "@startuml\nclass   User   {\n    -name: string\n\n  --\n+getName()\n}\n@enduml"
	resp := postJSON(t, ts.URL+"/api/export", map[string]string{"source": raw})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		UML string `json:"uml"`
	}
	decodeInto(t, resp, &body)
	if !strings.Contains(body.UML, "class User {") || !strings.Contains(body.UML, "  -name: string") {
		t.Errorf("canonical form wrong:\n%s", body.UML)
	}
}

func TestDiagramLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/diagrams", map[string]string{
		"name":   "billing",
		"source": validSource,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	var rec store.Record
	decodeInto(t, resp, &rec)
	if rec.ID == "" || rec.Name != "billing" {
		t.Fatalf("record = %+v", rec)
	}

	getResp, err := http.Get(ts.URL + "/api/diagrams/" + rec.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", getResp.StatusCode)
	}
	var got store.Record
	decodeInto(t, getResp, &got)
	if !strings.Contains(got.Source, "User *-- Profile") {
		t.Errorf("stored source lost the connection:\n%s", got.Source)
	}

	listResp, err := http.Get(ts.URL + "/api/diagrams")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	var list struct {
		Diagrams []store.Record `json:"diagrams"`
	}
	decodeInto(t, listResp, &list)
	if len(list.Diagrams) != 1 {
		t.Errorf("list = %+v", list.Diagrams)
	}

	dlResp, err := http.Get(ts.URL + "/api/diagrams/" + rec.ID + "/download")
	if err != nil {
		t.Fatalf("GET download: %v", err)
	}
	defer dlResp.Body.Close()
	if dlResp.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", dlResp.StatusCode)
	}
	if ct := dlResp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if cd := dlResp.Header.Get("Content-Disposition"); !strings.Contains(cd, "billing.png") {
		t.Errorf("content disposition = %q", cd)
	}

	delReq, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/diagrams/"+rec.ID, nil)
	delResp, err := http.DefaultClient.Do(delReq)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}

	missing, err := http.Get(ts.URL + "/api/diagrams/" + rec.ID)
	if err != nil {
		t.Fatalf("GET deleted: %v", err)
	}
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("get deleted status = %d, want 404", missing.StatusCode)
	}
	var envelope struct {
		Code string `json:"code"`
	}
	decodeInto(t, missing, &envelope)
	if envelope.Code != "DIAGRAM_NOT_FOUND" {
		t.Errorf("code = %q, want DIAGRAM_NOT_FOUND", envelope.Code)
	}
}

func TestSaveRequiresName(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/diagrams", map[string]string{"source": validSource})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMalformedBodyRejected(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/validate", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
