package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/career-compass/internal/models"
)

type QdrantService interface {
	InitCollection() error
	UpsertCareer(ctx context.Context, career *models.Career, embedding []float32) error
	SearchCareers(ctx context.Context, queryEmbedding []float32, limit int) ([]CareerCandidate, error)
}

// CareerCandidate is a career returned by similarity search, not yet vetted
// by the ranker. Consumed within a single pipeline run, never persisted.
type CareerCandidate struct {
	ID             string
	Score          float32
	Title          string
	Description    string
	RequiredSkills []string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize int) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// careerPointID derives a stable point id from the career row. The same
// career always maps to the same point, so re-ingesting the catalog
// overwrites existing vectors instead of accumulating duplicates.
func careerPointID(careerID uint) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.FormatUint(uint64(careerID), 10)))
}

// UpsertCareer implements QdrantService.
func (q *qdrantService) UpsertCareer(ctx context.Context, career *models.Career, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(careerPointID(career.ID).String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"career_id":       strconv.FormatUint(uint64(career.ID), 10),
			"title":           career.Title,
			"description":     career.Description,
			"required_skills": strings.Join(career.RequiredSkills, ", "),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert career point: %w", err)
	}

	return nil
}

// SearchCareers implements QdrantService. Results come back most-similar
// first with the career payload flattened into CareerCandidate fields.
func (q *qdrantService) SearchCareers(ctx context.Context, queryEmbedding []float32, limit int) ([]CareerCandidate, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search careers: %w", err)
	}

	var candidates []CareerCandidate
	for _, point := range searchResult {
		payload := point.Payload

		candidate := CareerCandidate{
			Score: point.Score,
		}

		if id, ok := payload["career_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.ID = val.StringValue
			}
		}

		if title, ok := payload["title"]; ok {
			if val, ok := title.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.Title = val.StringValue
			}
		}

		if desc, ok := payload["description"]; ok {
			if val, ok := desc.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.Description = val.StringValue
			}
		}

		if skills, ok := payload["required_skills"]; ok {
			if val, ok := skills.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.RequiredSkills = splitSkills(val.StringValue)
			}
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func splitSkills(joined string) []string {
	var skills []string
	for _, s := range strings.Split(joined, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
