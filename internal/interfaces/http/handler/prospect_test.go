package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	prospectapp "github.com/coldpitch/backend/internal/application/prospect"
	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
)

// fakeProspectRepo is an in-memory prospect.Repository
type fakeProspectRepo struct {
	prospects map[uuid.UUID]*prospect.Prospect
}

func newFakeProspectRepo() *fakeProspectRepo {
	return &fakeProspectRepo{prospects: make(map[uuid.UUID]*prospect.Prospect)}
}

func (r *fakeProspectRepo) FindByID(_ context.Context, id uuid.UUID) (*prospect.Prospect, error) {
	if p, ok := r.prospects[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProspectRepo) FindByEmail(_ context.Context, email string) (*prospect.Prospect, error) {
	for _, p := range r.prospects {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProspectRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]prospect.Prospect, error) {
	out := make([]prospect.Prospect, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.prospects[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProspectRepo) FindAll(_ context.Context, filter shared.Filter) ([]prospect.Prospect, error) {
	out := make([]prospect.Prospect, 0, len(r.prospects))
	for _, p := range r.prospects {
		out = append(out, *p)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start >= len(out) {
			return nil, nil
		}
		end := start + filter.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, nil
}

func (r *fakeProspectRepo) FindByStatus(_ context.Context, status prospect.Status, _ shared.Filter) ([]prospect.Prospect, error) {
	var out []prospect.Prospect
	for _, p := range r.prospects {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProspectRepo) Save(_ context.Context, p *prospect.Prospect) error {
	r.prospects[p.ID] = p
	return nil
}

func (r *fakeProspectRepo) SaveWithLock(_ context.Context, p *prospect.Prospect) error {
	r.prospects[p.ID] = p
	return nil
}

func (r *fakeProspectRepo) SaveBatch(ctx context.Context, prospects []*prospect.Prospect) error {
	for _, p := range prospects {
		if err := r.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProspectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.prospects[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.prospects, id)
	return nil
}

func (r *fakeProspectRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.prospects)), nil
}

func (r *fakeProspectRepo) CountByStatus(_ context.Context, status prospect.Status) (int64, error) {
	var n int64
	for _, p := range r.prospects {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeProspectRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func newProspectRouter(t *testing.T) (*gin.Engine, *fakeProspectRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeProspectRepo()
	service := prospectapp.NewProspectService(repo, nil)
	importExport := prospectapp.NewImportExportService(repo, nil, nil, nil)
	h := NewProspectHandler(service, importExport)

	router := gin.New()
	router.POST("/prospects", h.Create)
	router.GET("/prospects", h.List)
	router.GET("/prospects/funnel", h.FunnelCounts)
	router.POST("/prospects/import", h.Import)
	router.GET("/prospects/export", h.Export)
	router.GET("/prospects/:id", h.Get)
	router.PATCH("/prospects/:id/status", h.ChangeStatus)
	router.DELETE("/prospects/:id", h.Delete)
	return router, repo
}

func createProspect(t *testing.T, router *gin.Engine, body gin.H) prospectapp.ProspectResponse {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/prospects", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data prospectapp.ProspectResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestProspectHandler_Create(t *testing.T) {
	router, _ := newProspectRouter(t)

	t.Run("creates a prospect in the New stage", func(t *testing.T) {
		created := createProspect(t, router, gin.H{
			"name":    "Ada Obi",
			"email":   "ada@fintech.test",
			"company": "PayLeaf",
			"tags":    []string{"fintech", "lagos"},
		})
		assert.Equal(t, "Ada Obi", created.Name)
		assert.Equal(t, "New", created.Status)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/prospects", gin.H{
			"name":  "Ada Again",
			"email": "ada@fintech.test",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/prospects", gin.H{"email": "x@y.test"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProspectHandler_GetAndDelete(t *testing.T) {
	router, _ := newProspectRouter(t)
	created := createProspect(t, router, gin.H{"name": "Bola Musa"})

	t.Run("get returns the prospect", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/prospects/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Bola Musa")
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/prospects/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/prospects/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete removes the prospect", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/prospects/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, http.MethodGet, "/prospects/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProspectHandler_ChangeStatusAndFunnel(t *testing.T) {
	router, _ := newProspectRouter(t)
	created := createProspect(t, router, gin.H{"name": "Chidi Eze", "email": "chidi@agency.test"})
	createProspect(t, router, gin.H{"name": "Funke Ojo"})

	w := doJSON(router, http.MethodPatch, "/prospects/"+created.ID.String()+"/status", gin.H{
		"status": "Contacted",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Contacted")

	w = doJSON(router, http.MethodGet, "/prospects/funnel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data["New"])
	assert.Equal(t, int64(1), resp.Data["Contacted"])
	assert.Equal(t, int64(0), resp.Data["Converted"])
}

func TestProspectHandler_List(t *testing.T) {
	router, _ := newProspectRouter(t)
	for _, name := range []string{"One", "Two", "Three"} {
		createProspect(t, router, gin.H{"name": name})
	}

	w := doJSON(router, http.MethodGet, "/prospects?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []prospectapp.ProspectResponse `json:"data"`
		Meta struct {
			Total    int64 `json:"total"`
			Page     int   `json:"page"`
			PageSize int   `json:"page_size"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
}

func importCSV(t *testing.T, router *gin.Engine, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "prospects.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/prospects/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProspectHandler_Import(t *testing.T) {
	router, repo := newProspectRouter(t)

	t.Run("imports rows and reports per-row failures", func(t *testing.T) {
		csv := "Name,Email,Company\n" +
			"Ada Obi,ada@fintech.test,PayLeaf\n" +
			"Bola Musa,bola@shop.test,ShopRight\n" +
			"Dup Row,ada@fintech.test,Dup Inc\n"

		w := importCSV(t, router, csv)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data prospectapp.ImportResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Data.Imported)
		assert.Equal(t, 1, resp.Data.Failed)
		assert.Len(t, repo.prospects, 2)
	})

	t.Run("missing file field is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/prospects/import", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("csv without a name column is rejected", func(t *testing.T) {
		w := importCSV(t, router, "Email\nsomeone@x.test\n")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProspectHandler_Export(t *testing.T) {
	router, _ := newProspectRouter(t)
	createProspect(t, router, gin.H{"name": "Ada Obi", "email": "ada@fintech.test"})

	w := doJSON(router, http.MethodGet, "/prospects/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Name")
	assert.Contains(t, w.Body.String(), "Ada Obi")
}
