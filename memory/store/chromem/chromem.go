// Package chromem implements the indexed similarity backend on top of
// chromem-go, a pure Go embedded vector database.
package chromem

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	chromem "github.com/philippgille/chromem-go"

	"github.com/evoforge/evo-go-sdk/memory"
)

// Store ranks experience records by cosine similarity between the query
// embedding and embeddings of each record's canonical serialization.
// Ties are broken by earliest insertion.
type Store struct {
	db         *chromem.DB
	collection string
	embedder   memory.Embedder
	logger     *log.Logger

	mu   sync.Mutex
	col  *chromem.Collection
	seq  map[string]int // id -> first-insertion sequence, survives overwrites
	next int
}

// New creates a chromem-backed store for one collection namespace.
func New(collection string, embedder memory.Embedder) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: chromem store requires an embedder", memory.ErrBackendUnavailable)
	}
	if collection == "" {
		collection = memory.DefaultCollection
	}
	return &Store{
		db:         chromem.NewDB(),
		collection: collection,
		embedder:   embedder,
		logger:     log.Default().With("component", "chromem", "collection", collection),
		seq:        make(map[string]int),
	}, nil
}

// Opener adapts New to the memory.StoreOpener shape for System wiring.
func Opener(embedder memory.Embedder) memory.StoreOpener {
	return func(ctx context.Context, collection string) (memory.Store, error) {
		return New(collection, embedder)
	}
}

// getCollection returns the live collection handle, recreating it lazily
// after a Teardown so the namespace stays usable.
func (s *Store) getCollection() (*chromem.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.col != nil {
		return s.col, nil
	}
	col, err := s.db.GetOrCreateCollection(s.collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create collection: %v", memory.ErrBackendUnavailable, err)
	}
	s.col = col
	return col, nil
}

// Add embeds the record's canonical serialization and indexes it under its
// content-derived id. Re-adding identical content overwrites in place and
// keeps the original insertion sequence.
func (s *Store) Add(ctx context.Context, rec memory.Record) (string, error) {
	data, err := rec.CanonicalJSON()
	if err != nil {
		return "", err
	}
	id, err := rec.ID()
	if err != nil {
		return "", err
	}

	embedding, err := s.embedder.Embed(ctx, string(data))
	if err != nil {
		return "", fmt.Errorf("%w: embed record: %v", memory.ErrBackendUnavailable, err)
	}

	col, err := s.getCollection()
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	n, seen := s.seq[id]
	if !seen {
		n = s.next
		s.next++
		s.seq[id] = n
	}
	s.mu.Unlock()

	doc := chromem.Document{
		ID:        id,
		Content:   string(data),
		Embedding: embedding,
		Metadata: map[string]string{
			"seq":       strconv.Itoa(n),
			"stored_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	// AddDocument inserts atomically, so a failed or cancelled call leaves
	// nothing retrievable under the id.
	if err := col.AddDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("%w: add document: %v", memory.ErrBackendUnavailable, err)
	}

	s.logger.Debug("indexed record", "id", id, "seq", n)
	return id, nil
}

// Query embeds text and returns up to k records by descending similarity.
func (s *Store) Query(ctx context.Context, text string, k int) ([]memory.Record, error) {
	if k <= 0 {
		return nil, nil
	}

	col, err := s.getCollection()
	if err != nil {
		return nil, err
	}

	// chromem rejects nResults larger than the collection, so clamp first.
	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", memory.ErrBackendUnavailable, err)
	}

	results, err := col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", memory.ErrBackendUnavailable, err)
	}

	// chromem sorts by similarity; re-sort stably so equal scores fall back
	// to earliest insertion.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return s.seqOf(results[i].ID) < s.seqOf(results[j].ID)
	})

	records := make([]memory.Record, 0, len(results))
	for _, result := range results {
		rec, err := memory.DecodeRecord([]byte(result.Content))
		if err != nil {
			s.logger.Warn("skipping undecodable result", "id", result.ID, "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) seqOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.seq[id]; ok {
		return n
	}
	return int(^uint(0) >> 1)
}

// Teardown drops the collection. A fresh, empty collection is recreated on
// the next Add, so the namespace is never poisoned.
func (s *Store) Teardown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.DeleteCollection(s.collection); err != nil {
		return fmt.Errorf("%w: delete collection: %v", memory.ErrBackendUnavailable, err)
	}
	s.mu.Lock()
	s.col = nil
	s.seq = make(map[string]int)
	s.next = 0
	s.mu.Unlock()
	s.logger.Debug("collection dropped")
	return nil
}

// Kind identifies the backend variant.
func (s *Store) Kind() string {
	return "chromem"
}
