//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/atelierware/folio/internal/api/handlers"
	"github.com/atelierware/folio/internal/repository"
	"github.com/atelierware/folio/internal/server"
	"github.com/atelierware/folio/internal/service"
	"github.com/atelierware/folio/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminToken is the bearer token the E2E server is configured with.
const AdminToken = "e2e-admin-token"

const embeddingDims = 1536

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	HTTPClient   *http.Client
}

// SetupE2EEnv starts a PostgreSQL container and a full HTTP server with
// deterministic in-process embedding and chat stubs, so the whole API
// surface can be exercised without external model calls.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, pool, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// APIResponse is the decoded response envelope plus the HTTP status.
type APIResponse struct {
	Status int
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path, authToken string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil, authToken)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}, authToken string) (*APIResponse, error) {
	return e.doRequest("POST", path, body, authToken)
}

// Put performs a PUT request
func (e *E2ETestEnv) Put(path string, body interface{}, authToken string) (*APIResponse, error) {
	return e.doRequest("PUT", path, body, authToken)
}

// Delete performs a DELETE request
func (e *E2ETestEnv) Delete(path, authToken string) (*APIResponse, error) {
	return e.doRequest("DELETE", path, nil, authToken)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}, authToken string) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	apiResp := &APIResponse{Status: resp.StatusCode}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, apiResp); err != nil {
			return nil, fmt.Errorf("HTTP %d: undecodable body %q", resp.StatusCode, respBody)
		}
	}

	return apiResp, nil
}

// MustData decodes the data envelope into out, failing the test on a
// non-2xx status or a decode error.
func (e *E2ETestEnv) MustData(resp *APIResponse, err error, out interface{}) {
	e.T.Helper()
	if err != nil {
		e.T.Fatalf("request failed: %v", err)
	}
	if resp.Status >= 300 {
		e.T.Fatalf("unexpected status %d: %s", resp.Status, resp.Error)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			e.T.Fatalf("failed to decode data: %v", err)
		}
	}
}

// stubEmbedder produces deterministic bag-of-words embeddings: each
// token bumps one dimension, so texts sharing words score high cosine
// similarity. Dimensions match the vector column width.
type stubEmbedder struct{}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, embeddingDims)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(strings.Trim(token, ".,!?:;\"'()")))
		vec[h.Sum32()%embeddingDims] += 1.0
	}
	return vec, nil
}

// stubChatClient answers with the grounded context verbatim, or a
// canned refusal when the context section is empty. This mirrors the
// behavior the prompt instructs the real model to follow.
type stubChatClient struct{}

func (s *stubChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	const open = "--- CONTEXT START ---"
	const end = "--- CONTEXT END ---"

	start := strings.Index(prompt, open)
	stop := strings.Index(prompt, end)
	if start == -1 || stop == -1 {
		return "", fmt.Errorf("prompt missing context markers")
	}

	context := strings.TrimSpace(prompt[start+len(open) : stop])
	if context == "" {
		return "That information is not documented.", nil
	}
	return "From my notes: " + context, nil
}

func startServer(t *testing.T, pool *pgxpool.Pool, port int) (string, func()) {
	chunkRepo := repository.NewChunkRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	skillRepo := repository.NewSkillRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	embedder := &stubEmbedder{}

	settingsSvc := service.NewSettingsService(settingsRepo)
	knowledgeSvc := service.NewKnowledgeService(chunkRepo, embedder)
	ingestSvc := service.NewIngestService(txRunner, embedder, settingsSvc)
	retrievalSvc := service.NewRetrievalService(chunkRepo, embedder)
	assistantSvc := service.NewAssistantService(retrievalSvc, &stubChatClient{}, conversationRepo, nil)

	cfg := server.RouterConfig{
		AdminToken:          AdminToken,
		ChunkHandler:        handlers.NewChunkHandler(knowledgeSvc, ingestSvc),
		AssistantHandler:    handlers.NewAssistantHandler(assistantSvc, retrievalSvc),
		ProjectHandler:      handlers.NewProjectHandler(service.NewProjectService(projectRepo)),
		SkillHandler:        handlers.NewSkillHandler(service.NewSkillService(skillRepo)),
		ContactHandler:      handlers.NewContactHandler(service.NewContactService(contactRepo)),
		SettingsHandler:     handlers.NewSettingsHandler(settingsSvc),
		ConversationHandler: handlers.NewConversationHandler(conversationRepo),
	}

	router := server.NewRouter(cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
