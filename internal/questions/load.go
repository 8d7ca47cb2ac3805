package questions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

//go:embed interview.json
var interviewJSON []byte

//go:embed cv.json
var cvJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// ValidationError lists every schema violation found in a bank document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a document path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("question bank validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

type document struct {
	Questions []Question `mapstructure:"questions"`
}

// Default returns the embedded interview bank.
func Default() (*Bank, error) {
	return Parse(interviewJSON)
}

// DefaultCV returns the embedded CV wizard bank.
func DefaultCV() (*Bank, error) {
	return Parse(cvJSON)
}

// LoadFile reads a bank document from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank %q: %w", path, err)
	}
	return Parse(data)
}

// Load reads a bank document from r.
func Load(r io.Reader) (*Bank, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("reading question bank: %w", err)
	}
	return Parse(buf.Bytes())
}

// Parse validates a JSON bank document against the embedded schema and builds a Bank.
func Parse(data []byte) (*Bank, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	return New(doc.Questions)
}

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
		if schemaErr != nil {
			schemaErr = fmt.Errorf("load question bank schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

func validate(raw any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("validate question bank: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
