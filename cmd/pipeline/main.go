package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tracelab/trace/internal/pipeline"
	"github.com/tracelab/trace/internal/server"
)

func main() {
	paperAPath := flag.String("a", "", "path to document A text file")
	paperATitle := flag.String("a-title", "Paper A", "title of document A")
	paperBPath := flag.String("b", "", "path to document B text file")
	paperBTitle := flag.String("b-title", "Paper B", "title of document B")
	sequential := flag.Bool("sequential", false, "run nodes one at a time instead of in parallel")
	flag.Parse()

	if *paperAPath == "" || *paperBPath == "" {
		log.Fatal("both -a and -b are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	paperAText, err := os.ReadFile(*paperAPath)
	if err != nil {
		log.Fatalf("Failed to read document A: %v", err)
	}
	paperBText, err := os.ReadFile(*paperBPath)
	if err != nil {
		log.Fatalf("Failed to read document B: %v", err)
	}

	srv := server.NewServer()

	state := pipeline.NewState(string(paperAText), *paperATitle, string(paperBText), *paperBTitle)
	if *sequential {
		state = srv.Pipeline.RunSequential(context.Background(), state)
	} else {
		state = srv.Pipeline.Run(context.Background(), state)
	}

	if state.Failed() {
		log.Fatalf("Pipeline failed at %s: %s", state.ErrorPhase, state.Error)
	}

	out, err := json.MarshalIndent(map[string]any{
		"session_id": state.SessionID,
		"hypothesis": state.Hypothesis,
		"validation": state.Validation,
		"mint":       state.Mint,
	}, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
