package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/crackats/internal/db"
	"github.com/jonathan/crackats/internal/llm"
	"github.com/jonathan/crackats/internal/scrape"
)

type fakeScraper struct {
	job *scrape.Job
	err error
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (*scrape.Job, error) {
	return f.job, f.err
}

type fakeLLM struct {
	responses map[llm.ModelTier]string
	prompts   []string
	err       error
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.responses[tier], nil
}

func (f *fakeLLM) GetModel(tier llm.ModelTier) string { return "fake-" + string(tier) }
func (f *fakeLLM) Close() error                       { return nil }

type fakeStore struct {
	byURL   map[string]*db.Application
	created []db.NewApplication
	updated map[int64]db.ApplicationUpdate
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byURL:   make(map[string]*db.Application),
		updated: make(map[int64]db.ApplicationUpdate),
		nextID:  1,
	}
}

func (f *fakeStore) GetApplicationByURL(ctx context.Context, url string) (*db.Application, error) {
	return f.byURL[url], nil
}

func (f *fakeStore) CreateApplication(ctx context.Context, in db.NewApplication) (*db.Application, error) {
	f.created = append(f.created, in)
	app := &db.Application{
		ID:              f.nextID,
		Company:         in.Company,
		Title:           in.Title,
		URL:             in.URL,
		Status:          "saved",
		ResumePath:      in.ResumePath,
		CoverLetterPath: in.CoverLetterPath,
		Tags:            in.Tags,
	}
	f.nextID++
	return app, nil
}

func (f *fakeStore) UpdateApplication(ctx context.Context, id int64, upd db.ApplicationUpdate) (*db.Application, error) {
	f.updated[id] = upd
	return &db.Application{ID: id}, nil
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume-template.tex")
	require.NoError(t, os.WriteFile(path, []byte("\\documentclass{article}\n\\begin{document}\nMaster\n\\end{document}"), 0o644))
	return path
}

func newTestPipeline(t *testing.T, scraper Scraper, client llm.Client, store Store) *Pipeline {
	t.Helper()
	return New(scraper, client, store, Options{
		ArtifactsDir: t.TempDir(),
		TemplatePath: writeTemplate(t),
	})
}

func TestRunProducesDocumentsAndRecord(t *testing.T) {
	scraper := &fakeScraper{job: &scrape.Job{
		Title:       "Platform Engineer",
		Company:     "Acme Corp",
		Description: "Own the deploy pipeline.",
	}}
	client := &fakeLLM{responses: map[llm.ModelTier]string{
		llm.TierAdvanced: "```latex\n\\documentclass{article}\nTailored\n```",
		llm.TierStandard: "Dear Hiring Manager,\n\nBody.",
	}}
	store := newFakeStore()
	p := newTestPipeline(t, scraper, client, store)

	result, err := p.Run(context.Background(), "https://example.com/jobs/1")
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.DirExists(t, result.FolderPath)
	assert.Contains(t, result.FolderPath, "Plat-Engi-Acme-Corp")

	resume, err := os.ReadFile(result.ResumePath)
	require.NoError(t, err)
	// Fences stripped before writing.
	assert.Equal(t, "\\documentclass{article}\nTailored\n", string(resume))

	cover, err := os.ReadFile(result.CoverLetterPath)
	require.NoError(t, err)
	assert.Contains(t, string(cover), "Dear Hiring Manager,")

	desc, err := os.ReadFile(result.DescriptionPath)
	require.NoError(t, err)
	assert.Contains(t, string(desc), "Title: Platform Engineer")
	assert.Contains(t, string(desc), "Source: https://example.com/jobs/1")

	require.NotNil(t, result.Application)
	assert.Equal(t, "saved", result.Application.Status)
	require.Len(t, store.created, 1)
	assert.Equal(t, []string{GeneratedTag}, store.created[0].Tags)
	assert.Equal(t, result.ResumePath, store.created[0].ResumePath)
}

func TestRunPromptsCarryJobContext(t *testing.T) {
	scraper := &fakeScraper{job: &scrape.Job{Title: "SRE", Company: "Globex", Description: "Keep lights on."}}
	client := &fakeLLM{responses: map[llm.ModelTier]string{
		llm.TierAdvanced: "resume",
		llm.TierStandard: "cover",
	}}
	p := newTestPipeline(t, scraper, client, newFakeStore())

	_, err := p.Run(context.Background(), "https://example.com/jobs/2")
	require.NoError(t, err)

	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "Master")
	assert.Contains(t, client.prompts[0], "Keep lights on.")
	assert.Contains(t, client.prompts[1], "COMPANY: Globex")
	// Cover letter prompt sees the tailored resume, not the master.
	assert.Contains(t, client.prompts[1], "resume")
}

func TestRunUpdatesExistingRecord(t *testing.T) {
	url := "https://example.com/jobs/3"
	store := newFakeStore()
	store.byURL[url] = &db.Application{ID: 7, URL: url, Status: "applied", Tags: []string{"remote"}}

	scraper := &fakeScraper{job: &scrape.Job{Title: "Dev", Company: "Initech", Description: "Go."}}
	client := &fakeLLM{responses: map[llm.ModelTier]string{
		llm.TierAdvanced: "resume",
		llm.TierStandard: "cover",
	}}
	p := newTestPipeline(t, scraper, client, store)

	_, err := p.Run(context.Background(), url)
	require.NoError(t, err)

	assert.Empty(t, store.created)
	upd, ok := store.updated[7]
	require.True(t, ok)
	require.NotNil(t, upd.Tags)
	assert.Equal(t, []string{"remote", GeneratedTag}, *upd.Tags)
	require.NotNil(t, upd.ResumePath)
	assert.True(t, strings.HasSuffix(*upd.ResumePath, "Resume.tex"))
	// Status is left alone.
	assert.Nil(t, upd.Status)
}

func TestRunScrapeFailure(t *testing.T) {
	scraper := &fakeScraper{err: &scrape.NoDataError{URL: "u"}}
	p := newTestPipeline(t, scraper, &fakeLLM{}, newFakeStore())

	_, err := p.Run(context.Background(), "https://example.com/jobs/4")

	var noData *scrape.NoDataError
	assert.ErrorAs(t, err, &noData)
}

func TestRunWithJobRejectsIncomplete(t *testing.T) {
	p := newTestPipeline(t, &fakeScraper{}, &fakeLLM{}, newFakeStore())

	_, err := p.RunWithJob(context.Background(), &scrape.Job{Title: "Dev"}, "")
	assert.Error(t, err)

	_, err = p.RunWithJob(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestRunLLMFailureStopsBeforeDocuments(t *testing.T) {
	scraper := &fakeScraper{job: &scrape.Job{Title: "Dev", Company: "Acme", Description: "Go."}}
	client := &fakeLLM{err: errors.New("quota exceeded")}
	p := newTestPipeline(t, scraper, client, newFakeStore())

	_, err := p.Run(context.Background(), "https://example.com/jobs/5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume generation failed")
}

func TestRunWithoutStore(t *testing.T) {
	scraper := &fakeScraper{job: &scrape.Job{Title: "Dev", Company: "Acme", Description: "Go."}}
	client := &fakeLLM{responses: map[llm.ModelTier]string{
		llm.TierAdvanced: "resume",
		llm.TierStandard: "cover",
	}}
	p := New(scraper, client, nil, Options{
		ArtifactsDir: t.TempDir(),
		TemplatePath: writeTemplate(t),
	})

	result, err := p.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, result.Application)
}
