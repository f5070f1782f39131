// Package prompts provides the LLM prompt templates used by document
// generation. Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// resumeContextLimit caps how much of the tailored resume is echoed back into
// the cover letter prompt.
const resumeContextLimit = 2000

// cache stores parsed prompt files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by filename and key.
// The filename should not include the path (e.g., "generation.json").
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// Format replaces template placeholders in the form {{.Key}} with values
// from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// ResumePrompt builds the prompt that tailors the master resume to a job
// description.
func ResumePrompt(masterResume, jobDescription string) (string, error) {
	template, err := Get("generation.json", "resume")
	if err != nil {
		return "", err
	}
	return Format(template, map[string]string{
		"MasterResume":   masterResume,
		"JobDescription": jobDescription,
	}), nil
}

// CoverLetterPrompt builds the cover letter prompt. The tailored resume is
// truncated so the job description stays the dominant context.
func CoverLetterPrompt(jobTitle, company, jobDescription, tailoredResume string) (string, error) {
	template, err := Get("generation.json", "cover_letter")
	if err != nil {
		return "", err
	}
	context := tailoredResume
	if len(context) > resumeContextLimit {
		context = context[:resumeContextLimit]
	}
	return Format(template, map[string]string{
		"JobTitle":       jobTitle,
		"Company":        company,
		"JobDescription": jobDescription,
		"ResumeContext":  context,
	}), nil
}

// loadFile loads and caches a prompt file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if prompts, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return prompts, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}
