package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"glance-backend/internal/bootstrap"
	"glance-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func uploadPDF(t *testing.T, router *gin.Engine, guestID, fileName string) map[string]any {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", "application/pdf")
	fileWriter, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("%PDF-1.4 test payload")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", resp.Code, resp.Body.String())
	}

	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return created
}

func doJSON(router *gin.Engine, method, path, guestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func listDocuments(t *testing.T, router *gin.Engine, guestID string) []map[string]any {
	t.Helper()
	resp := doJSON(router, http.MethodGet, "/api/v1/documents", guestID)
	if resp.Code != http.StatusOK {
		t.Fatalf("list status = %d", resp.Code)
	}
	var docs []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return docs
}

func TestDocumentLifecycle(t *testing.T) {
	router := buildTestApp(t)

	created := uploadPDF(t, router, "alice", "paper.pdf")
	docID, _ := created["id"].(string)
	if docID == "" {
		t.Fatalf("upload response missing id: %v", created)
	}
	if created["status"] != "ready" {
		t.Errorf("status = %v, want ready", created["status"])
	}
	if created["title"] != "paper" {
		t.Errorf("title = %v, want paper", created["title"])
	}
	if size, _ := created["fileSize"].(float64); size != float64(len("%PDF-1.4 test payload")) {
		t.Errorf("fileSize = %v, want uploaded byte length", created["fileSize"])
	}

	docs := listDocuments(t, router, "alice")
	if len(docs) != 1 || docs[0]["id"] != docID {
		t.Fatalf("listing after upload = %v", docs)
	}
	if size, _ := docs[0]["fileSize"].(float64); size != float64(len("%PDF-1.4 test payload")) {
		t.Errorf("listed fileSize = %v, want the stored byte length", docs[0]["fileSize"])
	}

	// Star toggle round-trips.
	resp := doJSON(router, http.MethodPatch, "/api/v1/documents/"+docID, "alice")
	if resp.Code != http.StatusOK {
		t.Fatalf("star status = %d", resp.Code)
	}
	var starred map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&starred); err != nil {
		t.Fatalf("decode star: %v", err)
	}
	if starred["isStarred"] != true {
		t.Errorf("isStarred = %v, want true", starred["isStarred"])
	}

	// Other users get 404 for reads and deletes against this id.
	if resp := doJSON(router, http.MethodGet, "/api/v1/documents/"+docID, "mallory"); resp.Code != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", resp.Code)
	}
	if resp := doJSON(router, http.MethodDelete, "/api/v1/documents/"+docID, "mallory"); resp.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", resp.Code)
	}
	if docs := listDocuments(t, router, "alice"); len(docs) != 1 {
		t.Fatalf("document should survive cross-user delete, listing = %v", docs)
	}

	// Owner delete removes it from the listing.
	resp = doJSON(router, http.MethodDelete, "/api/v1/documents/"+docID, "alice")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete status = %d", resp.Code)
	}
	var deleted map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&deleted); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if deleted["success"] != true {
		t.Errorf("delete body = %v, want success true", deleted)
	}
	if docs := listDocuments(t, router, "alice"); len(docs) != 0 {
		t.Fatalf("listing after delete = %v", docs)
	}
}

func TestUploadListsNewestFirst(t *testing.T) {
	router := buildTestApp(t)

	uploadPDF(t, router, "alice", "first.pdf")
	uploadPDF(t, router, "alice", "second.pdf")

	docs := listDocuments(t, router, "alice")
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	// Same-timestamp ordering is not guaranteed, but both must be present
	// and owned listings must not leak across users.
	if docs := listDocuments(t, router, "bob"); len(docs) != 0 {
		t.Fatalf("bob's listing = %v, want empty", docs)
	}
}

func TestUploadRejectsNonPDFWithoutSideEffects(t *testing.T) {
	router := buildTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("plain text")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", "alice")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if docs := listDocuments(t, router, "alice"); len(docs) != 0 {
		t.Fatalf("rejected upload must leave no record, listing = %v", docs)
	}
}

func TestUploadRejectsPDFNamedNonPDFPart(t *testing.T) {
	router := buildTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="notes.pdf"`)
	header.Set("Content-Type", "text/plain")
	fileWriter, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("plain text in disguise")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", "alice")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for non-PDF MIME type", resp.Code)
	}
	if docs := listDocuments(t, router, "alice"); len(docs) != 0 {
		t.Fatalf("rejected upload must leave no record, listing = %v", docs)
	}
}

func TestRequestsWithoutIdentityAreRejected(t *testing.T) {
	router := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestHealthRequiresNoIdentity(t *testing.T) {
	router := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200 without identity", resp.Code)
	}
}
