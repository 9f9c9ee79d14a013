package blevestore

import (
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

func keyword() *mapping.FieldMapping {
	return bleve.NewKeywordFieldMapping()
}

func text() *mapping.FieldMapping {
	return bleve.NewTextFieldMapping()
}

// raw indexes the same value untokenized under a "<field>.raw" name.
func raw(field string) *mapping.FieldMapping {
	fm := bleve.NewKeywordFieldMapping()
	fm.Name = field + ".raw"
	return fm
}

func personInMovie() *mapping.DocumentMapping {
	dm := bleve.NewDocumentStaticMapping()
	dm.AddFieldMappingsAt(search.FieldID, keyword())
	dm.AddFieldMappingsAt(search.FieldName, text())
	return dm
}

// Mapping mirrors the elasticsearch mappings: keyword ids, a numeric
// rating, keyword genres, analyzed names with raw keyword twins.
func Mapping(index domain.Index) (mapping.IndexMapping, error) {
	dm := bleve.NewDocumentStaticMapping()
	dm.AddFieldMappingsAt(search.FieldID, keyword())

	switch index {
	case domain.IndexMovies:
		dm.AddFieldMappingsAt(search.FieldIMDbRating, bleve.NewNumericFieldMapping())
		dm.AddFieldMappingsAt(search.FieldGenre, keyword())
		dm.AddFieldMappingsAt(search.FieldTitle, text(), raw(search.FieldTitle))
		dm.AddFieldMappingsAt(search.FieldDescription, text())
		dm.AddFieldMappingsAt(search.FieldDirector, text())
		dm.AddFieldMappingsAt(search.FieldActorsNames, text())
		dm.AddFieldMappingsAt(search.FieldWritersNames, text())
		dm.AddSubDocumentMapping(search.FieldActors, personInMovie())
		dm.AddSubDocumentMapping(search.FieldWriters, personInMovie())
	case domain.IndexPersons:
		dm.AddFieldMappingsAt(search.FieldFullName, text(), raw(search.FieldFullName))
	case domain.IndexGenres:
		dm.AddFieldMappingsAt(search.FieldName, text(), raw(search.FieldName))
		dm.AddFieldMappingsAt(search.FieldDescription, text())
	default:
		return nil, fmt.Errorf("no mapping for index %q", index)
	}

	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name
	im.DefaultMapping = dm
	return im, nil
}
