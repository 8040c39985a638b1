package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
	"github.com/creatorlens/youtube-analytics-go/internal/repository"
)

type fakeSavedSearchStore struct {
	searches map[uuid.UUID]*models.SavedSearch
}

func newFakeSavedSearchStore() *fakeSavedSearchStore {
	return &fakeSavedSearchStore{searches: make(map[uuid.UUID]*models.SavedSearch)}
}

func (f *fakeSavedSearchStore) Create(_ context.Context, saved *models.SavedSearch) error {
	saved.ID = uuid.New()
	copied := *saved
	f.searches[saved.ID] = &copied
	return nil
}

func (f *fakeSavedSearchStore) GetByID(_ context.Context, id uuid.UUID) (*models.SavedSearch, error) {
	saved, ok := f.searches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return saved, nil
}

func (f *fakeSavedSearchStore) List(_ context.Context, limit int) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	for _, saved := range f.searches {
		searches = append(searches, *saved)
		if len(searches) >= limit {
			break
		}
	}
	return searches, nil
}

func (f *fakeSavedSearchStore) Update(_ context.Context, saved *models.SavedSearch) error {
	if _, ok := f.searches[saved.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *saved
	f.searches[saved.ID] = &copied
	return nil
}

func (f *fakeSavedSearchStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.searches[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.searches, id)
	return nil
}

func savedSearchRouter(store SavedSearchStore) *gin.Engine {
	h := NewSavedSearchHandler(store)
	router := gin.New()
	router.POST("/api/v1/saved-searches", h.Create)
	router.GET("/api/v1/saved-searches", h.List)
	router.GET("/api/v1/saved-searches/:id", h.Get)
	router.PUT("/api/v1/saved-searches/:id", h.Update)
	router.DELETE("/api/v1/saved-searches/:id", h.Delete)
	return router
}

func TestSavedSearchHandler_CreateAndGet(t *testing.T) {
	store := newFakeSavedSearchStore()
	router := savedSearchRouter(store)

	w := postJSON(t, router, "/api/v1/saved-searches", savedSearchRequest{
		Name:   "viral cooking",
		Params: models.SearchParams{Keyword: "cooking", Language: "en"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created models.SavedSearch
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/saved-searches/"+created.ID.String(), nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)

	if get.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", get.Code, http.StatusOK)
	}

	var fetched models.SavedSearch
	if err := json.Unmarshal(get.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if fetched.Name != "viral cooking" {
		t.Errorf("Name = %q, want %q", fetched.Name, "viral cooking")
	}
}

func TestSavedSearchHandler_Create_MissingKeyword(t *testing.T) {
	router := savedSearchRouter(newFakeSavedSearchStore())

	w := postJSON(t, router, "/api/v1/saved-searches", savedSearchRequest{
		Name:   "no keyword",
		Params: models.SearchParams{Language: "en"},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSavedSearchHandler_List_Empty(t *testing.T) {
	router := savedSearchRouter(newFakeSavedSearchStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/saved-searches", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		SavedSearches []models.SavedSearch `json:"savedSearches"`
		Count         int                  `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Count != 0 || resp.SavedSearches == nil {
		t.Errorf("empty list should serialize as [], got count=%d", resp.Count)
	}
}

func TestSavedSearchHandler_UpdateAndDelete(t *testing.T) {
	store := newFakeSavedSearchStore()
	router := savedSearchRouter(store)

	saved := &models.SavedSearch{Name: "before", Params: models.SearchParams{Keyword: "travel"}}
	if err := store.Create(context.Background(), saved); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	body, _ := json.Marshal(savedSearchRequest{
		Name:   "after",
		Params: models.SearchParams{Keyword: "budget travel"},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/saved-searches/"+saved.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/v1/saved-searches/"+saved.ID.String(), nil)
	wDel := httptest.NewRecorder()
	router.ServeHTTP(wDel, del)

	if wDel.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", wDel.Code, http.StatusNoContent)
	}
}

func TestSavedSearchHandler_Delete_NotFound(t *testing.T) {
	router := savedSearchRouter(newFakeSavedSearchStore())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/saved-searches/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
