package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tracelab/trace/internal/config"
	"github.com/tracelab/trace/internal/core/attest"
	"github.com/tracelab/trace/internal/core/extraction"
	"github.com/tracelab/trace/internal/core/hypothesis"
	"github.com/tracelab/trace/internal/core/synergy"
	"github.com/tracelab/trace/internal/ledger"
	"github.com/tracelab/trace/internal/llm"
	"github.com/tracelab/trace/internal/pipeline"
	"github.com/tracelab/trace/internal/registry"
)

type Server struct {
	Pipeline *pipeline.Pipeline
	Registry *registry.Store
	Ledger   ledger.Writer
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with env vars if present
	if envProvider := os.Getenv("LLM_PROVIDER"); envProvider != "" {
		cfg.LLM.Provider = envProvider
	}
	if envModel := os.Getenv("LLM_MODEL"); envModel != "" {
		cfg.LLM.Model = envModel
	}
	if envAPIKey := os.Getenv("LLM_API_KEY"); envAPIKey != "" {
		cfg.LLM.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("LLM_BASE_URL"); envBaseURL != "" {
		cfg.LLM.BaseURL = envBaseURL
	}
	if envLedgerURI := os.Getenv("LEDGER_URI"); envLedgerURI != "" {
		cfg.Ledger.URI = envLedgerURI
	}
	if envRegistryPath := os.Getenv("REGISTRY_PATH"); envRegistryPath != "" {
		cfg.Registry.Path = envRegistryPath
	}

	// Default to Ollama if provider is empty
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	store, err := registry.Open(cfg.Registry.Path)
	if err != nil {
		log.Fatalf("Failed to open registry: %v", err)
	}

	var ledgerWriter ledger.Writer
	if cfg.Ledger.URI != "" {
		bolt, err := ledger.NewBoltLedger(cfg.Ledger.URI, cfg.Ledger.User, cfg.Ledger.Password)
		if err != nil {
			log.Fatalf("Failed to connect to ledger: %v", err)
		}
		if err := bolt.BuildIndices(context.Background()); err != nil {
			log.Printf("Warning: failed to build ledger indices: %v", err)
		}
		ledgerWriter = bolt
	}

	author := cfg.Ledger.Author
	if author == "" {
		author = "trace-pipeline"
	}

	extractor := extraction.NewExtractor(llmClient, cfg.Extraction)
	analyzer := synergy.NewAnalyzer(llmClient, cfg.Analysis)
	generator := &hypothesis.Generator{LLM: llmClient, Prompts: cfg.Hypothesis}

	var mintLedger attest.Ledger
	if ledgerWriter != nil {
		mintLedger = ledgerWriter
	}
	minter := attest.NewMinter(store, mintLedger, author)

	return &Server{
		Pipeline: pipeline.New(extractor, analyzer, generator, minter, cfg.Pipeline, nil),
		Registry: store,
		Ledger:   ledgerWriter,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/pipeline/run", s.RunPipeline)
	r.GET("/hypotheses", s.ListHypotheses)
	r.GET("/hypotheses/:id", s.GetHypothesis)
	r.GET("/health", s.Health)

	return r
}

type RunPipelineRequest struct {
	PaperAText  string `json:"paper_a_text" binding:"required"`
	PaperATitle string `json:"paper_a_title"`
	PaperBText  string `json:"paper_b_text" binding:"required"`
	PaperBTitle string `json:"paper_b_title"`
	Sequential  bool   `json:"sequential"`
}

func (s *Server) RunPipeline(c *gin.Context) {
	var req RunPipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	state := pipeline.NewState(req.PaperAText, req.PaperATitle, req.PaperBText, req.PaperBTitle)
	if req.Sequential {
		state = s.Pipeline.RunSequential(c.Request.Context(), state)
	} else {
		state = s.Pipeline.Run(c.Request.Context(), state)
	}

	if state.Failed() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": state.Error,
			"phase": state.ErrorPhase,
		})
		return
	}

	// A low-confidence hypothesis with risk notes is still a success.
	c.JSON(http.StatusOK, gin.H{
		"session_id": state.SessionID,
		"hypothesis": state.Hypothesis,
		"validation": state.Validation,
		"mint":       state.Mint,
	})
}

func (s *Server) GetHypothesis(c *gin.Context) {
	entry, err := s.Registry.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hypothesis not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to read hypothesis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read hypothesis"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) ListHypotheses(c *gin.Context) {
	entries, err := s.Registry.List(c.Request.Context(), registry.Filter{
		Variable:         c.Query("variable"),
		PrimarySynergyID: c.Query("synergy_id"),
		Confidence:       c.Query("confidence"),
	})
	if err != nil {
		log.Printf("Failed to list hypotheses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hypotheses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hypotheses": entries, "count": len(entries)})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
