package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/embset"
	"github.com/hupe1980/embset/persist"
)

// datasetFile is the on-disk shape of a JSON/YAML dataset. Embeddings are a
// list, not a map, so the file order becomes the set's iteration order.
type datasetFile struct {
	Label      string         `json:"label" yaml:"label"`
	Embeddings []datasetEntry `json:"embeddings" yaml:"embeddings"`
}

type datasetEntry struct {
	Name   string    `json:"name" yaml:"name"`
	Vector []float64 `json:"vector" yaml:"vector"`
}

func loadDataset(path string) (*embset.EmbeddingSet, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".emb" {
		return persist.Load(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file datasetFile
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse JSON dataset: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse YAML dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .json, .yaml or .emb)", ext)
	}

	names := make([]string, 0, len(file.Embeddings))
	vectors := make([][]float64, 0, len(file.Embeddings))
	for _, entry := range file.Embeddings {
		names = append(names, entry.Name)
		vectors = append(vectors, entry.Vector)
	}

	return embset.FromNamesAndVectors(file.Label, names, vectors)
}
