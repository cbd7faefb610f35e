package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcms/cms-api/internal/domain"
)

type memPublications struct {
	rows  map[uint]domain.Publication
	views map[uint]int
}

func (m *memPublications) FindByID(_ context.Context, id uint) (domain.Publication, error) {
	p, ok := m.rows[id]
	if !ok {
		return domain.Publication{}, ErrPublicationNotFound
	}
	p.Views = m.views[id]

	return p, nil
}

func (m *memPublications) Create(_ context.Context, p domain.Publication) (domain.Publication, error) {
	p.ID = uint(len(m.rows) + 1)
	m.rows[p.ID] = p

	return p, nil
}

func (m *memPublications) Update(_ context.Context, p domain.Publication) (domain.Publication, error) {
	if _, ok := m.rows[p.ID]; !ok {
		return domain.Publication{}, ErrPublicationNotFound
	}
	m.rows[p.ID] = p

	return p, nil
}

func (m *memPublications) Delete(_ context.Context, id uint) error {
	if _, ok := m.rows[id]; !ok {
		return ErrPublicationNotFound
	}
	delete(m.rows, id)

	return nil
}

func (m *memPublications) All(_ context.Context, filter domain.PublicationFilter) ([]domain.Publication, error) {
	out := []domain.Publication{}
	for _, p := range m.rows {
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (m *memPublications) IncrementViews(_ context.Context, id uint) error {
	if _, ok := m.rows[id]; !ok {
		return ErrPublicationNotFound
	}
	m.views[id]++

	return nil
}

type memRequests struct {
	rows map[uint]domain.PublicationRequest
}

func (m *memRequests) FindByID(_ context.Context, id uint) (domain.PublicationRequest, error) {
	r, ok := m.rows[id]
	if !ok {
		return domain.PublicationRequest{}, ErrPublicationRequestNotFound
	}

	return r, nil
}

func (m *memRequests) All(_ context.Context, filter domain.PublicationRequestFilter) ([]domain.PublicationRequest, error) {
	out := []domain.PublicationRequest{}
	for _, r := range m.rows {
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, r.Status) {
			continue
		}
		out = append(out, r)
	}

	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}

	return false
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return t
}

func timePtr(t time.Time) *time.Time { return &t }

func newFeedFixture() (*PublicationService, *memPublications) {
	pubs := &memPublications{
		rows: map[uint]domain.Publication{
			1: {ID: 1, Title: "Old article", Type: "article", Status: "published", PublicationDate: day("2024-01-10")},
			2: {ID: 2, Title: "Book", Type: "book", Status: "published", Featured: true, PublicationDate: day("2024-06-01")},
			3: {ID: 3, Title: "Draft", Type: "article", Status: "draft", PublicationDate: day("2024-03-01")},
		},
		views: map[uint]int{},
	}
	reqs := &memRequests{
		rows: map[uint]domain.PublicationRequest{
			7: {
				ID:             7,
				Title:          "Submitted study",
				Abstract:       "An abstract",
				Type:           "article",
				Authors:        "Alice Martin,  Bob Diallo ,",
				Keywords:       strPtr("energy, water"),
				Status:         domain.PubRequestPublished,
				DocumentFile:   strPtr("publication_requests/documents/x.pdf"),
				SubmissionDate: timePtr(day("2024-01-01")),
				ReviewedAt:     timePtr(day("2024-02-01")),
				PublishedAt:    timePtr(day("2024-05-01")),
			},
			8: {ID: 8, Title: "Accepted", Type: "report", Status: domain.PubRequestAccepted, SubmissionDate: timePtr(day("2024-04-01"))},
			9: {ID: 9, Title: "Pending", Type: "article", Status: domain.PubRequestPending, SubmissionDate: timePtr(day("2024-12-01"))},
		},
	}

	return NewPublicationService(pubs, reqs, newMemBlobs()), pubs
}

func feedIDs(items []domain.FeedItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	return ids
}

func TestFeed_MergesAndSorts(t *testing.T) {
	svc, _ := newFeedFixture()

	items, page, err := svc.Feed(context.Background(), domain.PublicationFilter{}, domain.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "request_7", "request_8", "3", "1"}, feedIDs(items))
	assert.Equal(t, domain.Pagination{Page: 1, Limit: domain.DefaultPerPage, Total: 5, TotalPages: 1}, page)

	req := items[1]
	assert.True(t, req.IsFromRequest)
	require.NotNil(t, req.RequestID)
	assert.Equal(t, uint(7), *req.RequestID)
	assert.Equal(t, "2024-05-01", req.PublicationDate)
	assert.Equal(t, "An abstract", req.Content)
	assert.Equal(t, domain.ContentPublished, req.Status)
	assert.Equal(t, []domain.Author{{ID: 1, Name: "Alice Martin"}, {ID: 2, Name: "Bob Diallo"}}, req.Authors)
	assert.Equal(t, []string{"energy", "water"}, req.Keywords)
	require.NotNil(t, req.PDFURL)
	assert.Equal(t, "http://cdn.test/storage/publication_requests/documents/x.pdf", *req.PDFURL)
	assert.Equal(t, req.PDFURL, req.DocumentFileURL)

	// Accepted request without review or publish dates falls back to submission.
	assert.Equal(t, "2024-04-01", items[2].PublicationDate)
}

func TestFeed_Filters(t *testing.T) {
	svc, _ := newFeedFixture()
	ctx := context.Background()
	featured := true

	tests := []struct {
		name   string
		filter domain.PublicationFilter
		want   []string
	}{
		{"type all", domain.PublicationFilter{Type: "all"}, []string{"2", "request_7", "request_8", "3", "1"}},
		{"type article", domain.PublicationFilter{Type: "article"}, []string{"request_7", "3", "1"}},
		{"type report", domain.PublicationFilter{Type: "report"}, []string{"request_8"}},
		{"featured excludes requests", domain.PublicationFilter{Featured: &featured}, []string{"2"}},
		{"draft status excludes requests", domain.PublicationFilter{Status: "draft"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, _, err := svc.Feed(ctx, tt.filter, domain.PageRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, feedIDs(items))
		})
	}
}

func TestFeed_PaginatesMergedList(t *testing.T) {
	svc, _ := newFeedFixture()

	items, page, err := svc.Feed(context.Background(), domain.PublicationFilter{}, domain.PageRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"request_8", "3"}, feedIDs(items))
	assert.Equal(t, domain.Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, page)

	items, _, err = svc.Feed(context.Background(), domain.PublicationFilter{}, domain.PageRequest{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGet_CountsViews(t *testing.T) {
	svc, _ := newFeedFixture()

	_, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	p, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Views)

	_, err = svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrPublicationNotFound)
}

func TestGetFromRequest(t *testing.T) {
	svc, _ := newFeedFixture()

	item, err := svc.GetFromRequest(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "request_7", item.ID)

	_, err = svc.GetFromRequest(context.Background(), 9)
	require.ErrorIs(t, err, ErrPublicationRequestNotFound)

	_, err = svc.GetFromRequest(context.Background(), 99)
	require.ErrorIs(t, err, ErrPublicationRequestNotFound)
}

func TestPublicationCreate_StoresFiles(t *testing.T) {
	pubs := &memPublications{rows: map[uint]domain.Publication{}, views: map[uint]int{}}
	blobs := newMemBlobs()
	svc := NewPublicationService(pubs, &memRequests{}, blobs)

	created, err := svc.Create(context.Background(), domain.Publication{Title: "T"}, PublicationFiles{
		Image: &domain.Upload{Filename: "cover.png", Content: bytes.NewReader([]byte("img"))},
		PDF:   &domain.Upload{Filename: "paper.pdf", Content: bytes.NewReader([]byte("pdf"))},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PublicationTypeArticle, created.Type)
	assert.Equal(t, domain.ContentDraft, created.Status)
	require.NotNil(t, created.Image)
	assert.True(t, blobs.has(*created.Image))
	require.NotNil(t, created.PDFURL)
	assert.Equal(t, "http://cdn.test/storage/publications/pdf/2-paper.pdf", *created.PDFURL)
}

func TestPublicationCreate_CleansUpOnFailedUpload(t *testing.T) {
	pubs := &memPublications{rows: map[uint]domain.Publication{}, views: map[uint]int{}}
	blobs := newMemBlobs()
	blobs.failOn = NamespacePublicationPDFs
	svc := NewPublicationService(pubs, &memRequests{}, blobs)

	_, err := svc.Create(context.Background(), domain.Publication{Title: "T"}, PublicationFiles{
		Image: &domain.Upload{Filename: "cover.png", Content: bytes.NewReader([]byte("img"))},
		PDF:   &domain.Upload{Filename: "paper.pdf", Content: bytes.NewReader([]byte("pdf"))},
	})
	require.Error(t, err)
	assert.Empty(t, pubs.rows)
	assert.Equal(t, []string{"publications/1-cover.png"}, blobs.deleted)
}

func TestPublicationUpdate_ReplacesAndDeletesPDF(t *testing.T) {
	pubs := &memPublications{rows: map[uint]domain.Publication{}, views: map[uint]int{}}
	blobs := newMemBlobs()
	svc := NewPublicationService(pubs, &memRequests{}, blobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Publication{Title: "T"}, PublicationFiles{
		PDF: &domain.Upload{Filename: "a.pdf", Content: bytes.NewReader([]byte("a"))},
	})
	require.NoError(t, err)
	assert.Nil(t, pubs.rows[created.ID].PDFURL)
	require.NotNil(t, pubs.rows[created.ID].PDF)
	assert.Equal(t, "publications/pdf/1-a.pdf", *pubs.rows[created.ID].PDF)

	noop := func(*domain.Publication) error { return nil }
	updated, err := svc.Update(ctx, created.ID, noop, PublicationFiles{
		PDF: &domain.Upload{Filename: "b.pdf", Content: bytes.NewReader([]byte("b"))},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PDFURL)
	assert.Equal(t, "http://cdn.test/storage/publications/pdf/2-b.pdf", *updated.PDFURL)
	assert.False(t, blobs.has("publications/pdf/1-a.pdf"))
	assert.True(t, blobs.has("publications/pdf/2-b.pdf"))

	// Updates without a new pdf keep the stored one.
	kept, err := svc.Update(ctx, created.ID, noop, PublicationFiles{})
	require.NoError(t, err)
	assert.Equal(t, updated.PDFURL, kept.PDFURL)
	assert.Equal(t, []string{"publications/pdf/1-a.pdf"}, blobs.deleted)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.PDFURL, got.PDFURL)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, blobs.files)
	assert.Equal(t, []string{"publications/pdf/1-a.pdf", "publications/pdf/2-b.pdf"}, blobs.deleted)
}

func TestPublicationUpdate_ExternalURLDropsStoredPDF(t *testing.T) {
	pubs := &memPublications{rows: map[uint]domain.Publication{}, views: map[uint]int{}}
	blobs := newMemBlobs()
	svc := NewPublicationService(pubs, &memRequests{}, blobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Publication{Title: "T"}, PublicationFiles{
		PDF: &domain.Upload{Filename: "a.pdf", Content: bytes.NewReader([]byte("a"))},
	})
	require.NoError(t, err)

	external := "https://journal.example/paper.pdf"
	updated, err := svc.Update(ctx, created.ID, func(p *domain.Publication) error {
		p.PDFURL = &external
		return nil
	}, PublicationFiles{})
	require.NoError(t, err)

	require.NotNil(t, updated.PDFURL)
	assert.Equal(t, external, *updated.PDFURL)
	assert.Nil(t, pubs.rows[created.ID].PDF)
	assert.Equal(t, []string{"publications/pdf/1-a.pdf"}, blobs.deleted)
}
