package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

func uploadRequest(t *testing.T, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "quotes.json")
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestPage_Show(t *testing.T) {
	f := newFixture(t, nil, nil)

	w := f.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, `<option value="all" selected>All</option>`)

	for _, q := range domain.DefaultQuotes() {
		assert.Contains(t, body, `<option value="`+q.Category+`">`)
	}

	assert.Equal(t, 1, strings.Count(body, `id="addQuoteForm"`))
	assert.Contains(t, body, app.DefaultAddForm.ButtonLabel)
}

func TestPage_ShowIsIdempotent(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	first := f.get("/").Body.String()
	second := f.get("/").Body.String()

	assert.Equal(t, first, second)
}

func TestPage_Random(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	w := f.postForm("/random", url.Values{"category": {"Wisdom"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "&#34;Know thyself.&#34; — Wisdom")
	assert.Contains(t, w.Body.String(), `<option value="Wisdom" selected>`)

	assert.Equal(t, `"Know thyself." — Wisdom`, f.session(t, ports.SessionKeyLastQuote))

	last, err := f.store.LastCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Wisdom", last)

	// The remembered quote is shown on the next plain page load.
	assert.Contains(t, f.get("/").Body.String(), "&#34;Know thyself.&#34; — Wisdom")
}

func TestPage_RandomEmptyCategory(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	w := f.postForm("/random", url.Values{"category": {"Nope"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.NoQuotesMessage)
	assert.Empty(t, f.session(t, ports.SessionKeyLastQuote))

	_, err := f.store.LastCategory(context.Background())
	assert.True(t, domain.IsNotFound(err), "no category should be stored")
}

func TestPage_SelectCategory(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	w := f.postForm("/category", url.Values{"category": {"Motivation"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, f.get("/").Body.String(), `<option value="Motivation" selected>`)
}

func TestPage_AddQuote(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantNotice string
		wantLen    int
	}{
		{
			name:       "valid quote",
			form:       url.Values{"text": {"  Be kind.  "}, "category": {" Kindness "}},
			wantNotice: app.NoticeAdded,
			wantLen:    4,
		},
		{
			name:       "blank text",
			form:       url.Values{"text": {"   "}, "category": {"Kindness"}},
			wantNotice: app.NoticeMissingFields,
			wantLen:    3,
		},
		{
			name:       "missing category",
			form:       url.Values{"text": {"Be kind."}},
			wantNotice: app.NoticeMissingFields,
			wantLen:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, seedQuotes(), nil)

			w := f.postForm("/quotes", tt.form)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantLen, f.service.Repository().Len())

			page := f.get("/").Body.String()
			assert.Contains(t, page, tt.wantNotice)

			// Notices are shown once.
			assert.NotContains(t, f.get("/").Body.String(), tt.wantNotice)
		})
	}
}

func TestPage_AddQuoteAppearsInSelector(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	f.postForm("/quotes", url.Values{"text": {"Be kind."}, "category": {"Kindness"}})

	assert.Contains(t, f.get("/").Body.String(), `<option value="Kindness">Kindness</option>`)
}

func TestPage_Import(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantNotice string
		wantLen    int
	}{
		{
			name:       "array of quotes",
			content:    `[{"text":"A","category":"X"},{"text":"B","category":"Y"}]`,
			wantNotice: app.NoticeImported,
			wantLen:    5,
		},
		{
			name:       "not an array",
			content:    `"not-an-array"`,
			wantNotice: app.NoticeInvalidFormat,
			wantLen:    3,
		},
		{
			name:       "malformed json",
			content:    `[{"text":`,
			wantNotice: app.NoticeParseError,
			wantLen:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, seedQuotes(), nil)

			w := f.do(uploadRequest(t, tt.content))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantLen, f.service.Repository().Len())
			assert.Contains(t, f.get("/").Body.String(), tt.wantNotice)
		})
	}
}

func TestPage_ImportTooLarge(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	// Valid JSON that would import fine if it were not cut short.
	content := `[{"text":"` + strings.Repeat("x", testMaxImport) + `","category":"Big"}]`

	w := f.do(uploadRequest(t, content))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 3, f.service.Repository().Len())

	body := f.get("/").Body.String()
	assert.Contains(t, body, app.NoticeFileTooLarge)
	assert.NotContains(t, body, app.NoticeParseError)
}

func TestNewPageHandler_DefaultMaxImport(t *testing.T) {
	assert.Equal(t, DefaultMaxImportSize, NewPageHandler(nil, 0).maxImport)
	assert.Equal(t, int64(42), NewPageHandler(nil, 42).maxImport)
}

func TestPage_Search(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	tests := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{
			name:    "substring ignoring case",
			query:   "MOTIV",
			want:    []string{`<li>&#34;Stay hungry.&#34; — Motivation</li>`, `<li>&#34;Keep going.&#34; — Motivation</li>`},
			notWant: []string{`<li>&#34;Know thyself.&#34; — Wisdom</li>`},
		},
		{
			name:  "no match",
			query: "zzz",
			want:  []string{`<li>` + domain.NoQuotesMessage + `</li>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := f.get("/?q=" + url.QueryEscape(tt.query)).Body.String()

			assert.Contains(t, body, `id="searchResults"`)
			assert.Contains(t, body, `value="`+tt.query+`"`)

			for _, s := range tt.want {
				assert.Contains(t, body, s)
			}

			for _, s := range tt.notWant {
				assert.NotContains(t, body, s)
			}
		})
	}

	assert.NotContains(t, f.get("/").Body.String(), `id="searchResults"`, "no list without a query")
}

func TestPage_StaleRememberedCategory(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)
	require.NoError(t, f.service.SelectCategory(context.Background(), "Retired"))

	body := f.get("/").Body.String()

	assert.Contains(t, body, `<option value="Retired" selected hidden>Retired</option>`)
	assert.Contains(t, body, `<option value="all">All</option>`)
}

func TestPage_ImportWithoutFile(t *testing.T) {
	f := newFixture(t, seedQuotes(), nil)

	w := f.postForm("/import", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPage_Export(t *testing.T) {
	f := newFixture(t, seedQuotes()[:1], nil)

	w := f.get("/export")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="quotes.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "[\n  {\n    \"text\": \"Stay hungry.\",\n    \"category\": \"Motivation\"\n  }\n]", w.Body.String())
}

func TestPage_EscapesQuoteText(t *testing.T) {
	f := newFixture(t, []domain.Quote{{Text: "<script>alert(1)</script>", Category: "XSS"}}, nil)

	w := f.postForm("/random", url.Values{"category": {"all"}})

	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}
