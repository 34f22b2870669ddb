package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tracelab/trace/internal/config"
	"github.com/tracelab/trace/internal/core/common"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/llm"
)

// ErrEmptyDocument is returned for empty or whitespace-only paper text.
var ErrEmptyDocument = errors.New("paper text must be a non-empty string")

// maxEvidence caps extracted evidence entries.
const maxEvidence = 2

type Extractor struct {
	LLM     llm.Client
	Prompts config.ExtractionPrompts
}

func NewExtractor(llmClient llm.Client, prompts config.ExtractionPrompts) *Extractor {
	return &Extractor{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Extract converts paper text (typically the abstract) into a structured
// DocumentRecord. Absent list fields default to empty so downstream
// validation treats them as present-but-empty.
func (e *Extractor) Extract(ctx context.Context, paperText, title string) (model.DocumentRecord, error) {
	var zero model.DocumentRecord

	if strings.TrimSpace(paperText) == "" {
		return zero, ErrEmptyDocument
	}

	prompt := fmt.Sprintf(e.Prompts.Document, title, strings.TrimSpace(paperText))

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return zero, fmt.Errorf("failed to generate document structure: %w", err)
	}

	doc, err := common.ParseOrReformat[model.DocumentRecord](ctx, e.LLM, response)
	if err != nil {
		return zero, fmt.Errorf("failed to extract document structure: %w", err)
	}

	fillDefaults(&doc)
	if len(doc.Evidence) > maxEvidence {
		doc.Evidence = doc.Evidence[:maxEvidence]
	}

	return doc, nil
}

func fillDefaults(doc *model.DocumentRecord) {
	if doc.Claims == nil {
		doc.Claims = []string{}
	}
	if doc.Methods == nil {
		doc.Methods = []string{}
	}
	if doc.Evidence == nil {
		doc.Evidence = []string{}
	}
	if doc.ExplicitLimitations == nil {
		doc.ExplicitLimitations = []string{}
	}
	if doc.ImplicitLimitations == nil {
		doc.ImplicitLimitations = []string{}
	}
	if doc.Variables == nil {
		doc.Variables = []string{}
	}
}
