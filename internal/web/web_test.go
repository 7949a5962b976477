package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/minicloud/portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, data PageData) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, IndexTemplate, data))
	return buf.String()
}

func TestIndex_RendersCards(t *testing.T) {
	out := render(t, PageData{
		Title: "App Portal",
		Cards: []model.Card{
			{Stack: model.Stack{Name: "gitea", ID: 2}, Icon: "🐙", Description: "Self-hosted Git service", URL: "http://localhost:3000"},
			{Stack: model.Stack{Name: "nextcloud", ID: 5}, Icon: "☁️", Description: "Private cloud storage & collaboration", URL: "http://localhost:8081"},
		},
		GeneratedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	})

	assert.Equal(t, 2, strings.Count(out, `class="app-card"`))
	assert.Contains(t, out, `href="http://localhost:3000"`)
	assert.Contains(t, out, "Private cloud storage &amp; collaboration")
	assert.Contains(t, out, `onclick="location.reload()"`)
	assert.Contains(t, out, "2 apps")
	assert.NotContains(t, out, `class="notice"`)
	assert.NotContains(t, out, "No applications deployed yet.")
}

func TestIndex_EscapesNames(t *testing.T) {
	out := render(t, PageData{
		Cards: []model.Card{
			{Stack: model.Stack{Name: "<script>alert(1)</script>"}, Icon: "📦", Description: "Application", URL: "http://localhost:80"},
		},
	})

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "<title>App Portal</title>")
	assert.Contains(t, out, "1 app ")
}

func TestIndex_Degraded(t *testing.T) {
	out := render(t, PageData{Cards: []model.Card{}, Degraded: true, Source: "portainer"})

	assert.Contains(t, out, `class="notice"`)
	assert.Contains(t, out, "portainer")
	assert.Equal(t, 0, strings.Count(out, `class="app-card"`))
	assert.NotContains(t, out, "No applications deployed yet.")
}

func TestIndex_Empty(t *testing.T) {
	out := render(t, PageData{Cards: []model.Card{}})

	assert.Contains(t, out, "No applications deployed yet.")
	assert.Contains(t, out, "0 apps")
}

func TestTemplates_SprigFuncs(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	require.NotNil(t, tmpl.Lookup(IndexTemplate))

	// default and date come from sprig; an empty title falls back.
	out := render(t, PageData{Cards: []model.Card{}, GeneratedAt: time.Date(2026, 3, 4, 9, 8, 7, 0, time.Local)})
	assert.Contains(t, out, "<title>App Portal</title>")
	assert.Contains(t, out, "updated 09:08:07")
}
