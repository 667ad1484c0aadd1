package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsethi/paysplit/internal/domain"
	"github.com/tsethi/paysplit/internal/pipeline"
	"github.com/tsethi/paysplit/internal/store/inmemory"
)

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func newTestHandlers() (*UploadHandler, *TransactionsHandler, *inmemory.Store) {
	repo := inmemory.New()
	log := zerolog.Nop()
	upload := NewUploadHandler(pipeline.NewIngestor(repo, log), log)
	transactions := NewTransactionsHandler(repo, log)
	return upload, transactions, repo
}

func TestUpload_CSV(t *testing.T) {
	upload, _, repo := newTestHandlers()

	csv := []byte("Date,Description,Amount,Type\n2025-06-20,Uber Ride,25.50,Income\n2025-06-21,Coffee,4.75,Expense")
	body, contentType := multipartUpload(t, "transactions.csv", csv)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	upload.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message      string               `json:"message"`
		Transactions []domain.Transaction `json:"transactions"`
		Count        int                  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 || len(resp.Transactions) != 2 {
		t.Fatalf("count = %d, transactions = %d, want 2 and 2", resp.Count, len(resp.Transactions))
	}
	if resp.Transactions[0].Amount != 25.50 || resp.Transactions[0].TransactionType != "Income" {
		t.Errorf("first record = %+v, want 25.50 Income", resp.Transactions[0])
	}

	stored, err := repo.GetAll(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("stored %d records, want 2", len(stored))
	}
}

func TestUpload_RejectsNonCSVFilename(t *testing.T) {
	upload, _, _ := newTestHandlers()

	body, contentType := multipartUpload(t, "statement.pdf", []byte("Date\n2025-06-20"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	upload.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpload_UndecodableBytes(t *testing.T) {
	upload, _, _ := newTestHandlers()

	body, contentType := multipartUpload(t, "bad.csv", []byte{0xff, 0xfe, 0xfd})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	upload.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpload_MissingFilePart(t *testing.T) {
	upload, _, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", bytes.NewReader(nil))
	rec := httptest.NewRecorder()

	upload.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func seedTransactions(t *testing.T, repo *inmemory.Store) []*domain.Transaction {
	t.Helper()

	drafts := []domain.Draft{
		{Date: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), Description: "Salary", Amount: 1000, TransactionType: domain.TypeIncome},
		{Date: time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC), Description: "Rent", Amount: 800, TransactionType: domain.TypeExpense},
	}

	var records []*domain.Transaction
	for _, d := range drafts {
		rec, err := repo.Create(context.Background(), d)
		if err != nil {
			t.Fatalf("seeding: %v", err)
		}
		records = append(records, rec)
	}
	return records
}

func TestList(t *testing.T) {
	_, transactions, repo := newTestHandlers()
	seedTransactions(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()

	transactions.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Transactions []domain.Transaction `json:"transactions"`
		Count        int                  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	if resp.Transactions[0].Description != "Salary" {
		t.Errorf("first record = %q, want insertion order (Salary first)", resp.Transactions[0].Description)
	}
}

func TestList_TypeFilterAndLimit(t *testing.T) {
	_, transactions, repo := newTestHandlers()
	seedTransactions(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?type=Income", nil)
	rec := httptest.NewRecorder()
	transactions.List(rec, req)

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("type filter count = %d, want 1", resp.Count)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/transactions?limit=1", nil)
	rec = httptest.NewRecorder()
	transactions.List(rec, req)

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("limited count = %d, want 1", resp.Count)
	}
}

func TestList_ZeroLimitIsEmptyPage(t *testing.T) {
	_, transactions, repo := newTestHandlers()
	seedTransactions(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?limit=0", nil)
	rec := httptest.NewRecorder()
	transactions.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Transactions []domain.Transaction `json:"transactions"`
		Count        int                  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 0 || len(resp.Transactions) != 0 {
		t.Errorf("limit=0 returned %d records, want 0", len(resp.Transactions))
	}
}

func TestList_InvalidLimit(t *testing.T) {
	_, transactions, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?limit=abc", nil)
	rec := httptest.NewRecorder()
	transactions.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSummary(t *testing.T) {
	_, transactions, repo := newTestHandlers()
	seedTransactions(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/summary", nil)
	rec := httptest.NewRecorder()
	transactions.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary domain.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	want := domain.Summary{
		TotalTransactions: 2,
		TotalIncome:       1000,
		TotalExpenses:     800,
		NetAmount:         200,
		IncomeCount:       1,
		ExpenseCount:      1,
	}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestGet(t *testing.T) {
	_, transactions, repo := newTestHandlers()
	records := seedTransactions(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/"+records[0].ID, nil)
	rec := httptest.NewRecorder()
	transactions.Get(rec, req, records[0].ID)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != records[0].ID || got.Description != "Salary" {
		t.Errorf("got %+v, want record %s", got, records[0].ID)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, transactions, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/missing", nil)
	rec := httptest.NewRecorder()
	transactions.Get(rec, req, "missing")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	_, transactions, repo := newTestHandlers()
	records := seedTransactions(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/"+records[0].ID, nil)
	rec := httptest.NewRecorder()
	transactions.Delete(rec, req, records[0].ID)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	transactions.Delete(rec, req, records[0].ID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
