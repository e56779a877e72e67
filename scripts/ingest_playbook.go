package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/config"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/services"
)

// Ingests sales playbook documents (ICP notes, battle cards, qualification
// guides) into the Qdrant collection the classifier retrieves context
// from. Accepts .pdf, .txt and .md files in the playbook directory; the
// file name (without extension) becomes the section label.
func main() {
	log.Println("🚀 Starting playbook ingestion...")

	cfg := config.Load()

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required for ingestion")
	}
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is required for ingestion")
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	dir := "./playbook"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("❌ Failed to read playbook directory %s: %v", dir, err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		section := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		log.Printf("\n📄 Processing: %s (section %q)", entry.Name(), section)

		var text string
		switch ext {
		case ".pdf":
			text, err = pdfParser.ExtractText(path)
			if err != nil {
				log.Printf("   ❌ Failed to extract text: %v", err)
				failCount++
				continue
			}
		case ".txt", ".md":
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("   ❌ Failed to read file: %v", err)
				failCount++
				continue
			}
			text = string(data)
		default:
			log.Printf("   ⚠️  Unsupported extension %s, skipping...", ext)
			continue
		}

		// Replace the section so re-ingestion does not duplicate snippets.
		if err := qdrantService.DeleteSection(ctx, section); err != nil {
			log.Printf("   ⚠️  Failed to clear existing section: %v", err)
		}

		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
				continue
			}

			snippetID := fmt.Sprintf("%s_chunk_%d", section, i)
			if err := qdrantService.UpsertSnippet(ctx, snippetID, section, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("   ✅ Stored %d/%d chunks for %s", stored, len(chunks), entry.Name())
		successCount++
	}

	log.Printf("\n🏁 Ingestion finished: %d files ingested, %d failed", successCount, failCount)
}
