package cache

import (
	"reflect"
	"testing"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/google/uuid"
)

func TestCodecsRoundTripFilm(t *testing.T) {
	film := domain.Film{
		UUID:        uuid.MustParse("3d825f60-9fff-4dfe-b294-1a45fa1e115d"),
		Title:       "Star Wars: Episode IV - A New Hope",
		IMDbRating:  8.6,
		Description: "The Imperial Forces hold Princess Leia hostage.",
		Genre:       []domain.GenreRef{{UUID: uuid.MustParse("120a21cf-9097-479e-904a-13dd7198c1dd"), Name: "Adventure"}},
		Actors:      []domain.PersonRef{{UUID: uuid.MustParse("26e83050-29ef-4163-a99d-b546cac208f8"), FullName: "Mark Hamill"}},
		Writers:     []domain.PersonRef{{UUID: uuid.MustParse("a5a8f573-3cee-4ccc-8a2b-91cb9f55250a"), FullName: "George Lucas"}},
		Directors:   []domain.PersonRef{{UUID: uuid.MustParse("a5a8f573-3cee-4ccc-8a2b-91cb9f55250a"), FullName: "George Lucas"}},
	}

	for _, name := range []string{CodecJSON, CodecMsgpack} {
		t.Run(name, func(t *testing.T) {
			codec, err := NewCodec(name)
			if err != nil {
				t.Fatalf("new codec: %v", err)
			}
			data, err := codec.Marshal(film)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got domain.Film
			if err := codec.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, film) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, film)
			}
		})
	}
}

func TestNewCodecRejectsUnknown(t *testing.T) {
	if _, err := NewCodec("gob"); err == nil {
		t.Error("expected error for unknown codec")
	}
}
