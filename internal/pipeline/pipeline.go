package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tracelab/trace/internal/config"
	"github.com/tracelab/trace/internal/core/attest"
	"github.com/tracelab/trace/internal/core/extraction"
	"github.com/tracelab/trace/internal/core/graph"
	"github.com/tracelab/trace/internal/core/hypothesis"
	"github.com/tracelab/trace/internal/core/synergy"
)

// Pipeline wires the extraction, analysis, generation, and minting stages
// into the standard node DAG:
//
//	read_documents → {extract_a, extract_b} → analyze_synergy →
//	generate_hypothesis → mint
type Pipeline struct {
	Extractor *extraction.Extractor
	Analyzer  *synergy.Analyzer
	Generator *hypothesis.Generator
	Minter    *attest.Minter

	timeouts config.PipelineConfig
	logger   *slog.Logger
}

func New(extractor *extraction.Extractor, analyzer *synergy.Analyzer, generator *hypothesis.Generator, minter *attest.Minter, timeouts config.PipelineConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Extractor: extractor,
		Analyzer:  analyzer,
		Generator: generator,
		Minter:    minter,
		timeouts:  timeouts,
		logger:    logger,
	}
}

// Run executes the pipeline with parallel extraction.
func (p *Pipeline) Run(ctx context.Context, s *State) *State {
	return NewRunner(p.Nodes(), p.logger).Run(ctx, s)
}

// RunSequential executes the pipeline one node at a time, producing the same
// final state as Run.
func (p *Pipeline) RunSequential(ctx context.Context, s *State) *State {
	return NewRunner(p.Nodes(), p.logger).RunSequential(ctx, s)
}

func (p *Pipeline) Nodes() []Node {
	extractionTimeout := seconds(p.timeouts.ExtractionTimeout)
	generationTimeout := seconds(p.timeouts.GenerationTimeout)
	mintTimeout := seconds(p.timeouts.MintTimeout)

	return []Node{
		{
			Name: "read_documents",
			Run:  p.readDocuments,
		},
		{
			Name:    "extract_a",
			Deps:    []string{"read_documents"},
			Timeout: extractionTimeout,
			Run:     p.extractA,
		},
		{
			Name:    "extract_b",
			Deps:    []string{"read_documents"},
			Timeout: extractionTimeout,
			Run:     p.extractB,
		},
		{
			Name:    "analyze_synergy",
			Deps:    []string{"extract_a", "extract_b"},
			Timeout: generationTimeout,
			Run:     p.analyzeSynergy,
		},
		{
			Name:    "generate_hypothesis",
			Deps:    []string{"analyze_synergy"},
			Timeout: generationTimeout,
			Run:     p.generateHypothesis,
		},
		{
			Name:    "mint",
			Deps:    []string{"generate_hypothesis"},
			Timeout: mintTimeout,
			Run:     p.mint,
		},
	}
}

func (p *Pipeline) readDocuments(ctx context.Context, s *State) (Apply, error) {
	if strings.TrimSpace(s.PaperAText) == "" {
		return nil, errors.New("document A is empty")
	}
	if strings.TrimSpace(s.PaperBText) == "" {
		return nil, errors.New("document B is empty")
	}
	return nil, nil
}

func (p *Pipeline) extractA(ctx context.Context, s *State) (Apply, error) {
	doc, err := p.Extractor.Extract(ctx, s.PaperAText, s.PaperATitle)
	if err != nil {
		return nil, err
	}
	return func(s *State) { s.PaperA = doc }, nil
}

func (p *Pipeline) extractB(ctx context.Context, s *State) (Apply, error) {
	doc, err := p.Extractor.Extract(ctx, s.PaperBText, s.PaperBTitle)
	if err != nil {
		return nil, err
	}
	return func(s *State) { s.PaperB = doc }, nil
}

func (p *Pipeline) analyzeSynergy(ctx context.Context, s *State) (Apply, error) {
	analysis, err := p.Analyzer.Analyze(ctx, s.PaperA, s.PaperB)
	if err != nil {
		return nil, err
	}

	g, err := graph.Build(s.PaperA, s.PaperB)
	if err != nil {
		return nil, err
	}
	graph.Enhance(g, analysis)

	primary, _ := synergy.SelectPrimary(analysis.PotentialSynergies, analysis.OverlappingVariables)
	return func(s *State) {
		s.Analysis = analysis
		s.Graph = g
		s.Primary = primary
	}, nil
}

func (p *Pipeline) generateHypothesis(ctx context.Context, s *State) (Apply, error) {
	card, result, err := p.Generator.Generate(ctx, hypothesis.Inputs{
		PaperA:   s.PaperA,
		PaperB:   s.PaperB,
		Graph:    s.Graph,
		Analysis: s.Analysis,
		Primary:  s.Primary,
	})
	if err != nil {
		return nil, err
	}
	return func(s *State) {
		s.Hypothesis = card
		s.Validation = result
	}, nil
}

func (p *Pipeline) mint(ctx context.Context, s *State) (Apply, error) {
	result, err := p.Minter.Mint(ctx, s.Hypothesis)
	if err != nil {
		return nil, err
	}
	return func(s *State) { s.Mint = result }, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
