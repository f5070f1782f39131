// Package generate runs the document generation pipeline: scrape a job
// posting, create its artifact folder, tailor the master resume with an LLM,
// write a cover letter, and record the application.
package generate

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/crackats/internal/db"
	"github.com/jonathan/crackats/internal/docs"
	"github.com/jonathan/crackats/internal/llm"
	"github.com/jonathan/crackats/internal/prompts"
	"github.com/jonathan/crackats/internal/scrape"
)

// GeneratedTag marks applications whose documents came out of the pipeline.
const GeneratedTag = "ai-generated"

// Scraper extracts a job posting from a URL.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*scrape.Job, error)
}

// Store persists application records produced by the pipeline.
type Store interface {
	GetApplicationByURL(ctx context.Context, url string) (*db.Application, error)
	CreateApplication(ctx context.Context, in db.NewApplication) (*db.Application, error)
	UpdateApplication(ctx context.Context, id int64, upd db.ApplicationUpdate) (*db.Application, error)
}

// Options configures a pipeline.
type Options struct {
	// ArtifactsDir is the base directory for per-job folders.
	ArtifactsDir string
	// TemplatePath is the master resume LaTeX file.
	TemplatePath string
	// Verbose enables progress logging.
	Verbose bool
}

// Pipeline wires the scraper, LLM client and record store together.
type Pipeline struct {
	scraper Scraper
	client  llm.Client
	store   Store
	opts    Options
}

// Result reports what one pipeline run produced.
type Result struct {
	RunID           string          `json:"run_id"`
	Job             *scrape.Job     `json:"job"`
	FolderPath      string          `json:"folder_path"`
	DescriptionPath string          `json:"description_path"`
	ResumePath      string          `json:"resume_path"`
	CoverLetterPath string          `json:"cover_letter_path"`
	Application     *db.Application `json:"application"`
}

// New creates a pipeline. The store may be nil, in which case no application
// record is written.
func New(scraper Scraper, client llm.Client, store Store, opts Options) *Pipeline {
	return &Pipeline{
		scraper: scraper,
		client:  client,
		store:   store,
		opts:    opts,
	}
}

// Run executes the full pipeline for one job URL.
func (p *Pipeline) Run(ctx context.Context, jobURL string) (*Result, error) {
	job, err := p.scraper.Scrape(ctx, jobURL)
	if err != nil {
		return nil, fmt.Errorf("scrape failed: %w", err)
	}
	return p.RunWithJob(ctx, job, jobURL)
}

// RunWithJob executes the pipeline for an already-extracted posting, e.g.
// one captured by the bookmarklet.
func (p *Pipeline) RunWithJob(ctx context.Context, job *scrape.Job, sourceURL string) (*Result, error) {
	if job == nil || job.Title == "" || job.Company == "" {
		return nil, fmt.Errorf("job title or company missing")
	}
	description := job.Description
	if description == "" {
		description = "Description not found."
	}

	runID := uuid.New().String()
	if p.opts.Verbose {
		log.Printf("[generate] run %s: %s at %s", runID, job.Title, job.Company)
	}

	folderName := docs.MakeFolderName(job.Title, job.Company)
	folder, err := docs.EnsureJobFolder(p.opts.ArtifactsDir, folderName)
	if err != nil {
		return nil, err
	}

	descPath, err := docs.WriteDescription(folder, folderName, job.Title, job.Company, description, sourceURL)
	if err != nil {
		return nil, err
	}

	master, err := docs.ReadTemplate(p.opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	resume, err := p.generateResume(ctx, master, description)
	if err != nil {
		return nil, err
	}
	resumePath, err := docs.WriteResume(folder, resume)
	if err != nil {
		return nil, err
	}

	cover, err := p.generateCoverLetter(ctx, job, description, resume)
	if err != nil {
		return nil, err
	}
	coverPath, err := docs.WriteCoverLetter(folder, cover)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:           runID,
		Job:             job,
		FolderPath:      folder,
		DescriptionPath: descPath,
		ResumePath:      resumePath,
		CoverLetterPath: coverPath,
	}

	if p.store != nil {
		app, err := p.record(ctx, job, sourceURL, resumePath, coverPath)
		if err != nil {
			return nil, err
		}
		result.Application = app
	}

	if p.opts.Verbose {
		log.Printf("[generate] run %s: wrote %s and %s", runID, resumePath, coverPath)
	}
	return result, nil
}

func (p *Pipeline) generateResume(ctx context.Context, master, description string) (string, error) {
	prompt, err := prompts.ResumePrompt(master, description)
	if err != nil {
		return "", err
	}
	out, err := p.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("resume generation failed: %w", err)
	}
	return llm.StripFences(out), nil
}

func (p *Pipeline) generateCoverLetter(ctx context.Context, job *scrape.Job, description, resume string) (string, error) {
	prompt, err := prompts.CoverLetterPrompt(job.Title, job.Company, description, resume)
	if err != nil {
		return "", err
	}
	out, err := p.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("cover letter generation failed: %w", err)
	}
	return llm.StripFences(out), nil
}

// record creates an application for the posting, or updates the document
// paths when one already tracks the same URL.
func (p *Pipeline) record(ctx context.Context, job *scrape.Job, sourceURL, resumePath, coverPath string) (*db.Application, error) {
	if sourceURL != "" {
		existing, err := p.store.GetApplicationByURL(ctx, sourceURL)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			tags := existing.Tags
			if !existing.HasTag(GeneratedTag) {
				tags = append(tags, GeneratedTag)
			}
			return p.store.UpdateApplication(ctx, existing.ID, db.ApplicationUpdate{
				ResumePath:      &resumePath,
				CoverLetterPath: &coverPath,
				Tags:            &tags,
			})
		}
	}

	return p.store.CreateApplication(ctx, db.NewApplication{
		Company:         job.Company,
		Title:           job.Title,
		URL:             sourceURL,
		ResumePath:      resumePath,
		CoverLetterPath: coverPath,
		Tags:            []string{GeneratedTag},
	})
}
