package docs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	wrapWidth = 80

	// ResumeFileName is the tailored resume written into each job folder.
	ResumeFileName = "Resume.tex"
	// CoverLetterFileName is the generated cover letter.
	CoverLetterFileName = "Cover_Letter.txt"
)

// EnsureJobFolder creates the job folder under baseDir if needed and returns
// its path.
func EnsureJobFolder(baseDir, folderName string) (string, error) {
	path := filepath.Join(baseDir, folderName)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create job folder %s: %w", path, err)
	}
	return path, nil
}

// WriteDescription saves the job description, optionally headed by title,
// company and source URL lines.
func WriteDescription(folder, folderName, title, company, description, sourceURL string) (string, error) {
	path := filepath.Join(folder, folderName+".txt")

	var parts []string
	if title != "" {
		parts = append(parts, "Title: "+title)
	}
	if company != "" {
		parts = append(parts, "Company: "+company)
	}
	if sourceURL != "" {
		parts = append(parts, "Source: "+strings.TrimSpace(sourceURL))
	}
	if len(parts) > 0 {
		parts = append(parts, "")
	}
	if text := strings.TrimRight(wrap(description, wrapWidth), "\n"); text != "" {
		parts = append(parts, text)
	}

	content := strings.TrimRight(strings.Join(parts, "\n"), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write description %s: %w", path, err)
	}
	return path, nil
}

// WriteResume saves tailored resume LaTeX into the job folder.
func WriteResume(folder, content string) (string, error) {
	return writeDocument(filepath.Join(folder, ResumeFileName), content)
}

// WriteCoverLetter saves the generated cover letter into the job folder.
func WriteCoverLetter(folder, content string) (string, error) {
	return writeDocument(filepath.Join(folder, CoverLetterFileName), content)
}

func writeDocument(path, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("refusing to write empty document %s", path)
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return path, nil
}

// CopyTemplate copies a template file into the job folder unless a copy
// already exists. Returns the target path.
func CopyTemplate(templatePath, targetDir string) (string, error) {
	src, err := os.Open(templatePath)
	if err != nil {
		return "", fmt.Errorf("template not found: %s: %w", templatePath, err)
	}
	defer func() { _ = src.Close() }()

	target := filepath.Join(targetDir, filepath.Base(templatePath))
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy template to %s: %w", target, err)
	}
	return target, nil
}

// ReadTemplate loads a template file.
func ReadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return string(data), nil
}

// wrap re-flows text to the given width, preserving blank lines and never
// breaking words.
func wrap(text string, width int) string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(line) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
