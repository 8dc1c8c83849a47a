package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go"

	"github.com/ForgeLabs/MarketForge/internal/flow"
	"github.com/ForgeLabs/MarketForge/internal/models"
	"github.com/ForgeLabs/MarketForge/internal/store"
)

type stubGenAI struct {
	response  string
	fragments []string
	imageURL  string
}

func (g *stubGenAI) GenerateWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	return g.response, nil
}

func (g *stubGenAI) StreamWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (<-chan string, <-chan error) {
	frags := make(chan string, len(g.fragments))
	for _, f := range g.fragments {
		frags <- f
	}
	close(frags)
	errc := make(chan error, 1)
	errc <- nil
	close(errc)
	return frags, errc
}

func (g *stubGenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return g.imageURL, nil
}

func newTestServer(gen *stubGenAI) (*Server, *store.InMemoryStore) {
	st := store.NewInMemoryStore()
	orch := flow.NewOrchestrator(st, gen)
	return NewServer(orch), st
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var env models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func createProject(t *testing.T, handler http.Handler, name string, f models.FlowName) models.Project {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/projects", models.CreateProjectRequest{Name: name, Flow: f})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: status %d, body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(env.Result)
	var p models.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("failed to decode project: %v", err)
	}
	return p
}

func TestCreateProjectEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()

	p := createProject(t, h, "Acme Skincare", models.FlowVisualBrand)
	if p.ID == "" || p.Flow != models.FlowVisualBrand {
		t.Errorf("project = %+v", p)
	}
	if len(p.Turns) != 1 {
		t.Errorf("expected opening turn, got %d turns", len(p.Turns))
	}
}

func TestCreateProjectValidation(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()

	cases := []models.CreateProjectRequest{
		{Name: "", Flow: models.FlowMetaAds},
		{Name: "ok", Flow: "bogus"},
		{Name: strings.Repeat("x", models.MaxProjectNameLength+1), Flow: models.FlowMetaAds},
	}
	for _, req := range cases {
		rec := doJSON(t, h, http.MethodPost, "/projects", req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("request %+v: status %d, want 400", req, rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Status != string(models.APIStatusError) {
			t.Errorf("request %+v: status field %q", req, env.Status)
		}
	}
}

func TestProjectLifecycleEndpoints(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()

	p := createProject(t, h, "Acme Skincare", models.FlowMetaAds)

	rec := doJSON(t, h, http.MethodGet, "/projects", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/projects/"+p.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/projects/"+p.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/projects/"+p.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestGetMissingProject(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/projects/proj_missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestSendMessageEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{response: "full market analysis"})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowFullService)

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/messages", models.SendMessageRequest{Content: "skincare niche"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(env.Result)
	var resp models.SendMessageResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "full market analysis" {
		t.Errorf("message = %q", resp.Message)
	}
	if !resp.StepComplete {
		t.Error("expected step completion for a one-prompt step")
	}
}

func TestSendMessageValidation(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowFullService)

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/messages", models.SendMessageRequest{Content: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestStreamMessageEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{fragments: []string{"Hel", "lo", " world"}})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowMetaAds)

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/stream", models.SendMessageRequest{Content: "my report", PromptID: 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	body := rec.Body.String()
	var got strings.Builder
	for _, line := range strings.Split(body, "\n") {
		if content, ok := flow.DecodeFragment(line); ok {
			got.WriteString(content)
		}
	}
	if got.String() != "Hello world" {
		t.Errorf("assembled stream = %q, body %q", got.String(), body)
	}
	if !strings.Contains(body, "data: [DONE]") {
		t.Error("stream missing end-of-stream signal")
	}
}

func TestStreamGatedPromptRejected(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{fragments: []string{"x"}})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowMetaAds)

	// Step 1 has a single prompt; move to step 2 and skip ahead.
	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/advance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("advance: status %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/stream", models.SendMessageRequest{Content: "skip", PromptID: 3})
	if rec.Code != http.StatusConflict {
		t.Errorf("status %d, want 409", rec.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	srv, st := newTestServer(&stubGenAI{fragments: []string{"# Report\n", "Details."}})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowVisualBrand)

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/report", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	saved, err := st.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Report != "# Report\nDetails." {
		t.Errorf("stored report = %q", saved.Report)
	}
}

func TestReportEndpointUnsupportedFlow(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowBasicCRM)

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/report", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status %d, want 500", rec.Code)
	}
}

func TestAvailablePromptsEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowGoogleAds)

	rec := doJSON(t, h, http.MethodGet, "/projects/"+p.ID+"/prompts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(env.Result)
	var prompts []json.RawMessage
	if err := json.Unmarshal(raw, &prompts); err != nil {
		t.Fatal(err)
	}
	if len(prompts) != 1 {
		t.Errorf("got %d available prompts, want 1", len(prompts))
	}
}

func TestRefineEndpoint(t *testing.T) {
	srv, st := newTestServer(&stubGenAI{response: "the merged document"})
	h := srv.Handler()
	p := createProject(t, h, "Quarterly Plan", models.FlowRefine)

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/refine", models.RefineRequest{NewInformation: "new numbers", Document: "old doc"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(env.Result)
	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if result["updated_content"] != "the merged document" {
		t.Errorf("updated_content = %q", result["updated_content"])
	}

	saved, _ := st.GetProject(p.ID)
	if saved.Report != "the merged document" {
		t.Errorf("stored report = %q", saved.Report)
	}
}

func TestExportEndpoints(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowMetaAds)

	rec := doJSON(t, h, http.MethodGet, "/projects/"+p.ID+"/export?format=txt", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("txt export: status %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "ASSISTANT:") {
		t.Errorf("txt export body = %q", rec.Body.String()[:20])
	}

	rec = doJSON(t, h, http.MethodGet, "/projects/"+p.ID+"/export?format=pdf", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pdf export: status %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("pdf export is not a PDF")
	}

	rec = doJSON(t, h, http.MethodGet, "/projects/"+p.ID+"/export?format=docx", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported format: status %d, want 400", rec.Code)
	}
}

func TestExtractDocumentDegradesGracefully(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/documents/extract", strings.NewReader("not a pdf"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 (degrade, not fail)", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != string(models.APIStatusOK) {
		t.Errorf("status field = %q", env.Status)
	}
	raw, _ := json.Marshal(env.Result)
	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if result["text"] != "" {
		t.Errorf("text = %q, want empty", result["text"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/projects", nil)
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response should carry a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set(RequestIDHeader, "trace-abc")
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	if got := rec2.Header().Get(RequestIDHeader); got != "trace-abc" {
		t.Errorf("request ID = %q, want echoed %q", got, "trace-abc")
	}
}

func TestExpertChatEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{response: "Position around efficacy and trust."})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/experts/chat", models.ExpertChatRequest{
		ExpertRole: "Brand Strategist",
		Messages: []models.ChatMessage{
			{Role: models.RoleUser, Content: "How should we position the brand?"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(env.Result)
	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if result["message"] != "Position around efficacy and trust." {
		t.Errorf("message = %q", result["message"])
	}

	// Missing role is rejected before reaching the gateway.
	rec = doJSON(t, h, http.MethodPost, "/experts/chat", models.ExpertChatRequest{
		Messages: []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing role: status %d, want 400", rec.Code)
	}
}

func TestExpertRolesEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/experts/roles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(env.Result)
	var roles []string
	if err := json.Unmarshal(raw, &roles); err != nil {
		t.Fatal(err)
	}
	if len(roles) == 0 || roles[0] != "Brand Strategist" {
		t.Errorf("roles = %v", roles)
	}
}

func TestImagePromptEndpoint(t *testing.T) {
	srv, st := newTestServer(&stubGenAI{fragments: []string{"A pastel ", "flat-lay."}})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowVisualBrand)

	saved, err := st.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	saved.Report = "# Brand Identity Report\nPastel, clinical."
	if err := st.SaveProject(saved); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/image-prompt", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	var got strings.Builder
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if content, ok := flow.DecodeFragment(line); ok {
			got.WriteString(content)
		}
	}
	if got.String() != "A pastel flat-lay." {
		t.Errorf("assembled stream = %q", got.String())
	}

	final, _ := st.GetProject(p.ID)
	if final.Report != saved.Report {
		t.Errorf("report changed to %q", final.Report)
	}
	last := final.Turns[len(final.Turns)-1]
	if last.Content != "A pastel flat-lay." {
		t.Errorf("derived prompt turn = %q", last.Content)
	}
}

func TestImagePromptEndpointWithoutReport(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()
	p := createProject(t, h, "Acme Skincare", models.FlowVisualBrand)

	rec := doJSON(t, h, http.MethodPost, "/projects/"+p.ID+"/image-prompt", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status %d, want 409", rec.Code)
	}
}

func TestGenerateImageEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{imageURL: "https://img.example/out.png"})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/images/generate", models.GenerateImageRequest{Prompt: "a pastel flat-lay"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	result, ok := env.Result.(map[string]any)
	if !ok {
		t.Fatalf("result = %T", env.Result)
	}
	if result["image_url"] != "https://img.example/out.png" {
		t.Errorf("image_url = %v", result["image_url"])
	}
}

func TestGenerateImageValidation(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/images/generate", models.GenerateImageRequest{Prompt: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

// Streaming and selection-gated flows only accept sends over the stream
// endpoint; full-service only over the plain one.
func TestMessageTransportEnforced(t *testing.T) {
	srv, _ := newTestServer(&stubGenAI{response: "ok", fragments: []string{"ok"}})
	h := srv.Handler()

	streaming := createProject(t, h, "Acme Skincare", models.FlowMetaAds)
	rec := doJSON(t, h, http.MethodPost, "/projects/"+streaming.ID+"/messages", models.SendMessageRequest{Content: "hi"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("messages on streaming flow: status %d, want 400", rec.Code)
	}

	full := createProject(t, h, "Acme Skincare", models.FlowFullService)
	rec = doJSON(t, h, http.MethodPost, "/projects/"+full.ID+"/stream", models.SendMessageRequest{Content: "hi"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("stream on full-service flow: status %d, want 400", rec.Code)
	}
}
