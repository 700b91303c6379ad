// Package backendtest provides an in-memory diagnostic backend served over
// httptest, for tests of the API client, the workflows and the CLI.
package backendtest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/common"
	"github.com/gorilla/mux"
)

// Route names, usable with Calls and Fail.
const (
	RouteStrings       = "i18n"
	RouteSignup        = "signup"
	RouteLogin         = "login"
	RouteSelf          = "assessment_self"
	RouteScan          = "scan_xray"
	RouteCure          = "assessment_cure"
	RouteListHistory   = "history_list"
	RouteDeleteHistory = "history_delete"
)

type account struct {
	password string
	result   models.LoginResult
}

// ScanUpload is what the backend received on the last scan request.
type ScanUpload struct {
	Fields          map[string]string
	FileName        string
	FileContentType string
	FileData        []byte
}

type Backend struct {
	mu         sync.Mutex
	accounts   map[string]account
	strings    map[string]map[string]string
	history    map[string][]models.HistoryRecord
	calls      map[string]int
	failures   map[string]int
	delay      time.Duration
	nextID     int
	lastScan   *ScanUpload
	requestIDs []string
}

func New() *Backend {
	return &Backend{
		accounts: make(map[string]account),
		strings:  make(map[string]map[string]string),
		history:  make(map[string][]models.HistoryRecord),
		calls:    make(map[string]int),
		failures: make(map[string]int),
	}
}

// NewServer starts b on an httptest server closed at the end of the test.
func NewServer(t testing.TB) (*Backend, *httptest.Server) {
	t.Helper()
	b := New()
	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *Backend) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(b.track)

	r.HandleFunc("/i18n", b.handleStrings).Methods(http.MethodGet).Name(RouteStrings)
	r.HandleFunc("/auth/signup", b.handleSignup).Methods(http.MethodPost).Name(RouteSignup)
	r.HandleFunc("/auth/login", b.handleLogin).Methods(http.MethodPost).Name(RouteLogin)
	r.HandleFunc("/assessment/self", b.handleSelf).Methods(http.MethodPost).Name(RouteSelf)
	r.HandleFunc("/scan/xray", b.handleScan).Methods(http.MethodPost).Name(RouteScan)
	r.HandleFunc("/assessment/cure", b.handleCure).Methods(http.MethodPost).Name(RouteCure)
	r.HandleFunc("/history/{user_id}", b.handleListHistory).Methods(http.MethodGet).Name(RouteListHistory)
	r.HandleFunc("/history/{id}", b.handleDeleteHistory).Methods(http.MethodDelete).Name(RouteDeleteHistory)

	return r
}

// track counts calls per route and applies injected failures and delay.
func (b *Backend) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		b.mu.Lock()
		b.calls[name]++
		b.requestIDs = append(b.requestIDs, r.Header.Get(common.RequestIDHeaderName))
		status, fail := b.failures[name]
		delay := b.delay
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if fail {
			http.Error(w, "injected failure", status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) AddAccount(email, password string, res models.LoginResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[email] = account{password: password, result: res}
}

func (b *Backend) SetStrings(lang string, s map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strings[lang] = s
}

// AddHistory stores a record for userID and returns its id.
func (b *Backend) AddHistory(userID, typ string, data any) string {
	raw, _ := json.Marshal(data)

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addHistoryLocked(userID, typ, raw)
}

func (b *Backend) addHistoryLocked(userID, typ string, raw json.RawMessage) string {
	b.nextID++
	id := fmt.Sprintf("rec-%d", b.nextID)
	b.history[userID] = append(b.history[userID], models.HistoryRecord{ID: id, Type: typ, Data: raw})
	return id
}

func (b *Backend) History(userID string) []models.HistoryRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.HistoryRecord(nil), b.history[userID]...)
}

// Fail makes every request to route answer with status until Recover.
func (b *Backend) Fail(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = status
}

func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

// SetDelay holds every response for d.
func (b *Backend) SetDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delay = d
}

func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

func (b *Backend) LastScan() *ScanUpload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastScan
}

func (b *Backend) RequestIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requestIDs...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) handleStrings(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")

	b.mu.Lock()
	s, ok := b.strings[lang]
	b.mu.Unlock()

	if !ok {
		s = map[string]string{}
	}
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var form models.SignupForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil || form.Email == "" || form.Password == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[form.Email]; exists {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}
	b.nextID++
	b.accounts[form.Email] = account{
		password: form.Password,
		result:   models.LoginResult{UserID: fmt.Sprintf("u-%d", b.nextID), Name: form.Name, Language: form.Language},
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	acc, ok := b.accounts[creds.Email]
	b.mu.Unlock()

	if !ok || acc.password != creds.Password {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, acc.result)
}

func (b *Backend) handleSelf(w http.ResponseWriter, r *http.Request) {
	var req models.SelfAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	total := 0
	for _, a := range req.Answers {
		total += a.Score
	}
	res := models.SelfAssessmentResult{PredictedCondition: "healthy", Confidence: 0.8}
	if total >= 6 {
		res = models.SelfAssessmentResult{PredictedCondition: "pneumonia", Confidence: float64(total) / 12}
	}

	raw, _ := json.Marshal(res)
	b.mu.Lock()
	b.addHistoryLocked(req.UserID, "self_assessment", raw)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, res)
}

func (b *Backend) handleScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "expected multipart form", http.StatusBadRequest)
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		http.Error(w, "read file", http.StatusBadRequest)
		return
	}

	upload := &ScanUpload{
		Fields:          make(map[string]string),
		FileName:        hdr.Filename,
		FileContentType: hdr.Header.Get("Content-Type"),
		FileData:        data,
	}
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			upload.Fields[k] = v[0]
		}
	}

	res := models.ScanResult{
		Prediction:        "normal",
		Confidence:        0.91,
		Model:             "densenet121",
		AnnotatedImageB64: base64.StdEncoding.EncodeToString(data),
	}

	raw, _ := json.Marshal(res)
	b.mu.Lock()
	b.lastScan = upload
	if uid := upload.Fields["user_id"]; uid != "" {
		b.addHistoryLocked(uid, "xray_scan", raw)
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, res)
}

func (b *Backend) handleCure(w http.ResponseWriter, r *http.Request) {
	var req models.CureAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Symptoms) == 0 {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	change := req.Symptoms[len(req.Symptoms)-1].Score - req.Symptoms[0].Score
	res := models.CureResult{Evaluation: "stable", ScoreChange: change}
	switch {
	case change < 0:
		res.Evaluation = "improving"
	case change > 0:
		res.Evaluation = "worsening"
	}

	raw, _ := json.Marshal(res)
	b.mu.Lock()
	b.addHistoryLocked(req.UserID, "cure_assessment", raw)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, res)
}

func (b *Backend) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	b.mu.Lock()
	items := append([]models.HistoryRecord{}, b.history[userID]...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, models.HistoryList{Items: items})
}

func (b *Backend) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b.mu.Lock()
	defer b.mu.Unlock()
	for uid, items := range b.history {
		for i, it := range items {
			if it.ID == id {
				b.history[uid] = append(items[:i:i], items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
	http.Error(w, "record not found", http.StatusNotFound)
}
