//go:build onnx

// Package onnx provides a real semantic embedder running all-MiniLM-L6-v2
// (or a compatible BERT-style model) through ONNX Runtime. Built behind the
// onnx build tag because it needs the onnxruntime shared library and model
// files on disk.
package onnx

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	ort "github.com/yalue/onnxruntime_go"
)

const maxSequenceLength = 128

// Config configures the ONNX embedder.
type Config struct {
	// ModelPath is the path to the ONNX model file. Required.
	ModelPath string

	// TokenizerPath is the path to the tokenizer.json file. Required.
	TokenizerPath string

	// LibraryPath locates the onnxruntime shared library. Defaults to the
	// ONNXRUNTIME_LIB environment variable.
	LibraryPath string

	// Dimensions is the embedding vector size. Defaults to 384
	// (all-MiniLM-L6-v2).
	Dimensions int
}

// Embedder generates embeddings with ONNX Runtime inference.
type Embedder struct {
	session    *ort.DynamicAdvancedSession
	tokenizer  *wordPieceTokenizer
	dimensions int
	logger     *log.Logger
}

// New initializes the runtime, loads the tokenizer and opens a session.
func New(cfg Config) (*Embedder, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("onnx: ModelPath is required")
	}
	if cfg.TokenizerPath == "" {
		return nil, fmt.Errorf("onnx: TokenizerPath is required")
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 384
	}
	if cfg.LibraryPath == "" {
		cfg.LibraryPath = os.Getenv("ONNXRUNTIME_LIB")
	}
	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("onnx: initialize runtime: %w", err)
	}

	tokenizer, err := loadTokenizer(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: load tokenizer: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: create session: %w", err)
	}

	return &Embedder{
		session:    session,
		tokenizer:  tokenizer,
		dimensions: cfg.Dimensions,
		logger:     log.Default().With("component", "onnx"),
	}, nil
}

// Embed tokenizes text, runs inference and mean-pools the hidden states
// into a unit vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := e.tokenizer.tokenize(text)

	inputIDs := make([]int64, maxSequenceLength)
	attentionMask := make([]int64, maxSequenceLength)
	tokenTypeIDs := make([]int64, maxSequenceLength)

	inputIDs[0] = int64(e.tokenizer.clsToken)
	attentionMask[0] = 1

	tokenLen := len(tokens)
	if tokenLen > maxSequenceLength-2 {
		tokenLen = maxSequenceLength - 2
	}
	for i := 0; i < tokenLen; i++ {
		inputIDs[i+1] = tokens[i]
		attentionMask[i+1] = 1
	}
	inputIDs[tokenLen+1] = int64(e.tokenizer.sepToken)
	attentionMask[tokenLen+1] = 1

	shape := ort.NewShape(1, int64(maxSequenceLength))
	inputIDsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("onnx: input_ids tensor: %w", err)
	}
	defer inputIDsTensor.Destroy()

	attentionMaskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("onnx: attention_mask tensor: %w", err)
	}
	defer attentionMaskTensor.Destroy()

	tokenTypeIDsTensor, err := ort.NewTensor(shape, tokenTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("onnx: token_type_ids tensor: %w", err)
	}
	defer tokenTypeIDsTensor.Destroy()

	outputs := []ort.Value{nil}
	err = e.session.Run([]ort.Value{inputIDsTensor, attentionMaskTensor, tokenTypeIDsTensor}, outputs)
	if err != nil {
		return nil, fmt.Errorf("onnx: inference: %w", err)
	}
	defer func() {
		for _, output := range outputs {
			if output != nil {
				output.Destroy()
			}
		}
	}()

	if len(outputs) == 0 || outputs[0] == nil {
		return nil, fmt.Errorf("onnx: no output tensors")
	}
	outputTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("onnx: unexpected output tensor type")
	}

	embedding, err := e.pool(outputTensor, attentionMask)
	if err != nil {
		return nil, err
	}
	return normalize(embedding), nil
}

// pool reduces the model output to one vector: extraction for pre-pooled
// [1, dims] outputs, attention-masked mean pooling for [1, seq, dims].
func (e *Embedder) pool(t *ort.Tensor[float32], attentionMask []int64) ([]float32, error) {
	data := t.GetData()
	shape := t.GetShape()

	switch len(shape) {
	case 2:
		if len(data) < e.dimensions {
			return nil, fmt.Errorf("onnx: output dimension mismatch: got %d, want %d", len(data), e.dimensions)
		}
		embedding := make([]float32, e.dimensions)
		copy(embedding, data[:e.dimensions])
		return embedding, nil
	case 3:
		seqLen, hiddenSize := shape[1], shape[2]
		if shape[0] != 1 {
			return nil, fmt.Errorf("onnx: expected batch size 1, got %d", shape[0])
		}
		if hiddenSize != int64(e.dimensions) {
			return nil, fmt.Errorf("onnx: hidden size mismatch: got %d, want %d", hiddenSize, e.dimensions)
		}

		embedding := make([]float32, e.dimensions)
		var attended float32
		for i := 0; i < int(seqLen); i++ {
			if attentionMask[i] == 0 {
				continue
			}
			attended++
			offset := i * int(hiddenSize)
			for j := 0; j < int(hiddenSize); j++ {
				embedding[j] += data[offset+j]
			}
		}
		if attended == 0 {
			return embedding, nil
		}
		for j := range embedding {
			embedding[j] /= attended
		}
		return embedding, nil
	default:
		return nil, fmt.Errorf("onnx: unexpected output shape: %v", shape)
	}
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// Close releases the ONNX session.
func (e *Embedder) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}

// normalize converts the vector to unit length.
func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}

// wordPieceTokenizer implements BERT-style WordPiece tokenization from a
// tokenizer.json vocabulary.
type wordPieceTokenizer struct {
	vocab    map[string]int
	clsToken int
	sepToken int
	unkToken int
}

func loadTokenizer(path string) (*wordPieceTokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Model struct {
			Vocab map[string]int `json:"vocab"`
		} `json:"model"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	return &wordPieceTokenizer{
		vocab:    parsed.Model.Vocab,
		clsToken: 101, // [CLS]
		sepToken: 102, // [SEP]
		unkToken: 100, // [UNK]
	}, nil
}

// tokenize converts text to token ids, falling back to WordPiece subwords
// for out-of-vocabulary words.
func (t *wordPieceTokenizer) tokenize(text string) []int64 {
	var tokens []int64
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'")
		if word == "" {
			continue
		}
		if id, ok := t.vocab[word]; ok {
			tokens = append(tokens, int64(id))
			continue
		}
		for _, subword := range t.wordPiece(word) {
			if id, ok := t.vocab[subword]; ok {
				tokens = append(tokens, int64(id))
			} else {
				tokens = append(tokens, int64(t.unkToken))
			}
		}
	}
	return tokens
}

// wordPiece splits a word into the longest vocabulary prefixes, using the
// "##" continuation marker for non-initial pieces.
func (t *wordPieceTokenizer) wordPiece(word string) []string {
	var subwords []string
	start := 0
	for start < len(word) {
		end := len(word)
		found := false
		for end > start {
			piece := word[start:end]
			if start > 0 {
				piece = "##" + piece
			}
			if _, ok := t.vocab[piece]; ok {
				subwords = append(subwords, piece)
				start = end
				found = true
				break
			}
			end--
		}
		if !found {
			subwords = append(subwords, "[UNK]")
			start++
		}
	}
	return subwords
}
