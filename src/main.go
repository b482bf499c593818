package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"crosswarped.com/wordsearch"
	"crosswarped.com/wordsearch/internal"
)

type WordSearchRequest struct {
	Side          int      `json:"side"`
	WordsToHide   []string `json:"wordsToHide"`
	KnownWords    []string `json:"knownWords"`
	WordScope     string   `json:"wordScope"`
	Seed          uint64   `json:"seed"`
	MaxWordRatio  float64  `json:"maxWordRatio"`
	// MinWordLength and ExcludedWords filter the dictionary; hidden words are always kept.
	MinWordLength int      `json:"minWordLength"`
	ExcludedWords []string `json:"excludedWords"`
}

type WordSearchResponse struct {
	Success    bool                   `json:"success"`
	ID         string                 `json:"id,omitempty"`
	Grid       []string               `json:"grid,omitempty"`
	Placements []wordsearch.Placement `json:"placements,omitempty"`
	Found      []wordsearch.FoundWord `json:"found,omitempty"`
	Skipped    []string               `json:"skipped,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// wordSource supplies dictionary words for a named scope.
type wordSource interface {
	Words(ctx context.Context, scope string, maxWordLength int) ([]string, error)
}

type bigQueryWords struct {
	project string
	table   string
}

func (b bigQueryWords) Words(ctx context.Context, scope string, maxWordLength int) ([]string, error) {
	client, err := bigquery.NewClient(ctx, b.project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf("SELECT word FROM `%s` WHERE scope = @scope AND LENGTH(word) <= @max_length", b.table))
	q.Location = "US"
	q.Parameters = []bigquery.QueryParameter{
		{Name: "scope", Value: scope},
		{Name: "max_length", Value: maxWordLength},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

type server struct {
	words  wordSource
	logger *zap.Logger
}

func (s *server) execute(ctx context.Context, req WordSearchRequest) (*WordSearchResponse, error) {
	if req.Side == 0 {
		req.Side = 15
	}
	if req.Side < wordsearch.MinSide || req.Side > wordsearch.MaxSide {
		return nil, fmt.Errorf("side must be between %d and %d", wordsearch.MinSide, wordsearch.MaxSide)
	}

	maxLength := internal.MaxWordLengthFor(req.Side, req.MaxWordRatio)
	dictionary := req.KnownWords
	if req.WordScope != "" {
		if s.words == nil {
			return nil, errors.New("wordScope is not supported by this deployment")
		}
		scoped, err := s.words.Words(ctx, req.WordScope, maxLength)
		if err != nil {
			return nil, fmt.Errorf("load words: %w", err)
		}
		s.logger.Info("loaded scoped words", zap.String("scope", req.WordScope), zap.Int("words", len(scoped)))
		dictionary = append(dictionary, scoped...)
	}

	params := internal.KnownWordsParams{
		Words:         dictionary,
		ExcludedWords: req.ExcludedWords,
		MaxWordLength: &maxLength,
	}
	if req.MinWordLength > 0 {
		params.MinWordLength = &req.MinWordLength
	}
	known := internal.KnownWords(params)

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, 1024))

	hide := req.WordsToHide
	if len(hide) == 0 {
		hide = internal.PickWords(known, rng, 3, 6)
	}
	if len(hide) == 0 {
		return nil, errors.New("wordsToHide, knownWords or wordScope must be provided")
	}
	// Hidden words are always known so the solution reports them.
	known = internal.KnownWords(internal.KnownWordsParams{Words: append(known, hide...)})

	builder, err := wordsearch.CreateBuilder(req.Side, hide, rng, wordsearch.BuilderParams{Logger: s.logger})
	if err != nil {
		return nil, err
	}
	puzzle, err := builder.Build()
	if err != nil {
		s.logger.Warn("some words were not hidden", zap.Error(err))
	}

	found, err := wordsearch.NewSolverFromWords(known).SolveParallel(ctx, puzzle.Grid)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	resp := &WordSearchResponse{
		Success:    true,
		ID:         uuid.NewString(),
		Grid:       puzzle.Grid.Rows(),
		Placements: puzzle.Placements,
		Found:      found,
	}
	for _, sk := range puzzle.Skipped {
		resp.Skipped = append(resp.Skipped, sk.Word)
	}
	return resp, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (s *server) wordSearch(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req WordSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Info("invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(WordSearchResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	resp, err := s.execute(r.Context(), req)
	if err != nil {
		s.logger.Warn("word search failed", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		resp = &WordSearchResponse{Success: false, Error: err.Error()}
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v\n", err)
	}
	defer logger.Sync()

	s := &server{logger: logger}
	if project := os.Getenv("BIGQUERY_PROJECT"); project != "" {
		table := os.Getenv("BIGQUERY_TABLE")
		if table == "" {
			table = project + ".words.all_words"
		}
		s.words = bigQueryWords{project: project, table: table}
	}

	funcframework.RegisterHTTPFunction("/word-search", s.wordSearch)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
