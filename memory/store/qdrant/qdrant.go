// Package qdrant implements the indexed similarity backend against a
// remote Qdrant instance. It is the deployment-grade alternative to the
// embedded chromem backend; both satisfy memory.Store.
package qdrant

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	sdk "github.com/qdrant/go-client/qdrant"

	"github.com/evoforge/evo-go-sdk/memory"
)

// Config holds Qdrant connection settings.
type Config struct {
	// Host of the Qdrant instance. Defaults to "localhost".
	Host string

	// Port of the Qdrant gRPC endpoint. Defaults to 6334.
	Port int

	// APIKey authenticates against managed Qdrant. Defaults to
	// QDRANT_API_KEY from the environment.
	APIKey string

	// UseTLS enables TLS on the gRPC connection.
	UseTLS bool
}

// Store ranks experience records by cosine similarity in a remote Qdrant
// collection. Record ids stay content-derived; Qdrant point ids are UUIDs
// deterministically derived from them, with the record id and canonical
// serialization carried in the payload.
type Store struct {
	client     *sdk.Client
	collection string
	embedder   memory.Embedder
	logger     *log.Logger
}

// New connects to Qdrant and ensures the collection exists. Connection or
// bootstrap failures surface as ErrBackendUnavailable so the System can
// substitute the fallback store.
func New(ctx context.Context, cfg Config, collection string, embedder memory.Embedder) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: qdrant store requires an embedder", memory.ErrBackendUnavailable)
	}
	if collection == "" {
		collection = memory.DefaultCollection
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("QDRANT_API_KEY")
	}

	client, err := sdk.NewClient(&sdk.Config{
		Host:                   cfg.Host,
		Port:                   cfg.Port,
		APIKey:                 cfg.APIKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create qdrant client: %v", memory.ErrBackendUnavailable, err)
	}

	store := &Store{
		client:     client,
		collection: collection,
		embedder:   embedder,
		logger:     log.Default().With("component", "qdrant", "collection", collection),
	}
	if err := store.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Opener adapts New to the memory.StoreOpener shape for System wiring.
func Opener(cfg Config, embedder memory.Embedder) memory.StoreOpener {
	return func(ctx context.Context, collection string) (memory.Store, error) {
		return New(ctx, cfg, collection, embedder)
	}
}

// ensureCollection creates the collection with cosine distance if missing.
func (s *Store) ensureCollection(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("%w: list collections: %v", memory.ErrBackendUnavailable, err)
	}
	for _, name := range collections {
		if name == s.collection {
			return nil
		}
	}

	err = s.client.CreateCollection(ctx, &sdk.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: sdk.NewVectorsConfig(&sdk.VectorParams{
			Size:     uint64(s.embedder.Dimensions()),
			Distance: sdk.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: create collection: %v", memory.ErrBackendUnavailable, err)
	}
	s.logger.Debug("collection created")
	return nil
}

// pointID derives the Qdrant point UUID from a content-derived record id.
func pointID(recordID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(recordID)).String()
}

// Add embeds the record's canonical serialization and upserts it. Upserts
// wait for indexing, so a failed call leaves nothing retrievable.
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

	if err := ctx.Err(); err != nil {
		return "", err
	}

	wait := true
	_, err = s.client.Upsert(ctx, &sdk.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: []*sdk.PointStruct{
			{
				Id:      sdk.NewID(pointID(id)),
				Vectors: sdk.NewVectors(embedding...),
				Payload: sdk.NewValueMap(map[string]any{
					"record_id": id,
					"content":   string(data),
				}),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: upsert point: %v", memory.ErrBackendUnavailable, err)
	}

	s.logger.Debug("indexed record", "id", id)
	return id, nil
}

// Query embeds text and returns up to k records by descending similarity.
func (s *Store) Query(ctx context.Context, text string, k int) ([]memory.Record, error) {
	if k <= 0 {
		return nil, nil
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", memory.ErrBackendUnavailable, err)
	}

	limit := uint64(k)
	points, err := s.client.Query(ctx, &sdk.QueryPoints{
		CollectionName: s.collection,
		Query:          sdk.NewQuery(embedding...),
		Limit:          &limit,
		WithPayload:    sdk.NewWithPayloadInclude("content"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", memory.ErrBackendUnavailable, err)
	}

	// Qdrant sorts by score; keep the order stable for equal scores.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].GetScore() > points[j].GetScore()
	})

	records := make([]memory.Record, 0, len(points))
	for _, point := range points {
		content, ok := point.GetPayload()["content"]
		if !ok {
			continue
		}
		rec, err := memory.DecodeRecord([]byte(content.GetStringValue()))
		if err != nil {
			s.logger.Warn("skipping undecodable result", "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Teardown drops the collection; ensureCollection recreates it empty so the
// namespace stays usable for fresh stores.
func (s *Store) Teardown(ctx context.Context) error {
	if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("%w: delete collection: %v", memory.ErrBackendUnavailable, err)
	}
	if err := s.ensureCollection(ctx); err != nil {
		return err
	}
	s.logger.Debug("collection reset")
	return nil
}

// Kind identifies the backend variant.
func (s *Store) Kind() string {
	return "qdrant"
}
