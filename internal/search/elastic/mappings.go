package elastic

import (
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
)

const analyzerName = "ru_en"

func indexSettings() map[string]any {
	return map[string]any{
		"refresh_interval": "1s",
		"analysis": map[string]any{
			"filter": map[string]any{
				"english_stop":               map[string]any{"type": "stop", "stopwords": "_english_"},
				"english_stemmer":            map[string]any{"type": "stemmer", "language": "english"},
				"english_possessive_stemmer": map[string]any{"type": "stemmer", "language": "possessive_english"},
				"russian_stop":               map[string]any{"type": "stop", "stopwords": "_russian_"},
				"russian_stemmer":            map[string]any{"type": "stemmer", "language": "russian"},
			},
			"analyzer": map[string]any{
				analyzerName: map[string]any{
					"tokenizer": "standard",
					"filter": []string{
						"lowercase",
						"english_stop",
						"english_stemmer",
						"english_possessive_stemmer",
						"russian_stop",
						"russian_stemmer",
					},
				},
			},
		},
	}
}

func keyword() map[string]any { return map[string]any{"type": "keyword"} }

func text() map[string]any { return map[string]any{"type": "text", "analyzer": analyzerName} }

func textWithRaw() map[string]any {
	m := text()
	m["fields"] = map[string]any{"raw": keyword()}
	return m
}

func personInMovie() map[string]any {
	return map[string]any{
		"type":    "nested",
		"dynamic": "strict",
		"properties": map[string]any{
			search.FieldID:   keyword(),
			search.FieldName: text(),
		},
	}
}

// IndexBody returns the settings and strict mappings used to create index.
func IndexBody(index domain.Index) (map[string]any, error) {
	props := map[string]any{search.FieldID: keyword()}

	switch index {
	case domain.IndexMovies:
		props[search.FieldIMDbRating] = map[string]any{"type": "float"}
		props[search.FieldGenre] = keyword()
		props[search.FieldTitle] = textWithRaw()
		props[search.FieldDescription] = text()
		props[search.FieldDirector] = text()
		props[search.FieldActorsNames] = text()
		props[search.FieldWritersNames] = text()
		props[search.FieldActors] = personInMovie()
		props[search.FieldWriters] = personInMovie()
	case domain.IndexPersons:
		props[search.FieldFullName] = textWithRaw()
	case domain.IndexGenres:
		props[search.FieldName] = textWithRaw()
		props[search.FieldDescription] = text()
	default:
		return nil, fmt.Errorf("no mapping for index %q", index)
	}

	return map[string]any{
		"settings": indexSettings(),
		"mappings": map[string]any{
			"dynamic":    "strict",
			"properties": props,
		},
	}, nil
}
