package scrape

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed payload_schema.json
var payloadSchema string

// PayloadError reports schema violations in a bookmarklet job payload.
type PayloadError struct {
	Fields []string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid job payload: %s", strings.Join(e.Fields, "; "))
}

// ParsePayload validates and decodes a job payload captured by the browser
// bookmarklet. The payload must carry non-empty title, company and
// description fields.
func ParsePayload(data []byte) (*Job, error) {
	schemaLoader := gojsonschema.NewStringLoader(payloadSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate job payload: %w", err)
	}

	if !result.Valid() {
		perr := &PayloadError{}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			perr.Fields = append(perr.Fields, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, perr
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job payload: %w", err)
	}
	job.Title = collapseSpaces(job.Title)
	job.Company = collapseSpaces(job.Company)
	job.Description = cleanText(job.Description)
	return &job, nil
}

// LoadPayload reads and parses a job payload file.
func LoadPayload(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job payload %s: %w", path, err)
	}
	return ParsePayload(data)
}
