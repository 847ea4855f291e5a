package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alfredoptarigan/career-compass/internal/config"
	"alfredoptarigan/career-compass/internal/models"
	"alfredoptarigan/career-compass/internal/services"
)

type careerSeed struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Programs       []string `json:"programs"`
}

func main() {
	log.Println("🚀 Starting career catalog ingestion...")

	// Load configuration
	cfg := config.Load()

	seedPath := "./data/careers.json"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	seeds, err := loadSeeds(seedPath)
	if err != nil {
		log.Fatalf("❌ Failed to load career seeds: %v", err)
	}
	log.Printf("📋 Loaded %d careers from %s\n", len(seeds), seedPath)

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize services
	embedder := services.NewHashingEmbedder()

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder.Dimension(),
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	for _, seed := range seeds {
		career, err := upsertCareerRow(db, seed)
		if err != nil {
			log.Printf("⚠️  Skipping career '%s': %v\n", seed.Title, err)
			continue
		}

		embeddingText := strings.ToLower(fmt.Sprintf(
			"%s %s %s",
			career.Title,
			career.Description,
			strings.Join(career.RequiredSkills, " "),
		))

		embedding, err := embedder.Embed(ctx, embeddingText)
		if err != nil {
			log.Printf("⚠️  Failed to embed career '%s': %v\n", career.Title, err)
			continue
		}

		if err := qdrantService.UpsertCareer(ctx, career, embedding); err != nil {
			log.Printf("⚠️  Failed to index career '%s': %v\n", career.Title, err)
			continue
		}

		log.Printf("✅ Indexed career: %s\n", career.Title)
	}

	log.Println("🎉 Career catalog ingestion completed")
}

func loadSeeds(path string) ([]careerSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []careerSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return seeds, nil
}

func upsertCareerRow(db *gorm.DB, seed careerSeed) (*models.Career, error) {
	title := strings.TrimSpace(seed.Title)
	if title == "" {
		return nil, fmt.Errorf("empty title")
	}

	var career models.Career
	err := db.Where("title = ?", title).First(&career).Error
	if err == nil {
		career.Description = seed.Description
		career.RequiredSkills = datatypes.NewJSONSlice(seed.RequiredSkills)
		career.Programs = datatypes.NewJSONSlice(seed.Programs)
		if err := db.Save(&career).Error; err != nil {
			return nil, fmt.Errorf("failed to update career: %w", err)
		}
		return &career, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up career: %w", err)
	}

	career = models.Career{
		Title:          title,
		Description:    seed.Description,
		RequiredSkills: datatypes.NewJSONSlice(seed.RequiredSkills),
		Programs:       datatypes.NewJSONSlice(seed.Programs),
	}
	if err := db.Create(&career).Error; err != nil {
		return nil, fmt.Errorf("failed to create career: %w", err)
	}

	return &career, nil
}
