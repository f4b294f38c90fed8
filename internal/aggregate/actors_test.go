package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threat_feeds/internal/domain"
)

func sampleActors() []domain.ThreatActor {
	return []domain.ThreatActor{
		{
			Slug: "a", Name: "Alpha Spider", Country: "RU",
			Sectors: []string{"Finance"}, LastSeen: "2024-01-01", Order: 0,
			Aliases: []string{"WebWeaver"}, Description: "ransomware affiliate",
		},
		{
			Slug: "b", Name: "Bravo Panda", Country: "CN",
			Sectors: []string{"Government", "Finance"}, Order: 5,
			Description: "espionage operations",
		},
		{
			Slug: "c", Name: "Charlie Kitten", Country: "IR",
			Order: 2,
		},
	}
}

func TestFilterActors_Conjunctive(t *testing.T) {
	actors := sampleActors()

	assert.Len(t, FilterActors(actors, ActorFilter{}), 3)
	assert.Len(t, FilterActors(actors, ActorFilter{Country: "CN"}), 1)
	assert.Len(t, FilterActors(actors, ActorFilter{Sector: "Finance"}), 2)
	assert.Len(t, FilterActors(actors, ActorFilter{Sector: "Finance", Country: "CN"}), 1)
	assert.Empty(t, FilterActors(actors, ActorFilter{Sector: "Retail"}))
}

func TestFilterActors_Query(t *testing.T) {
	actors := sampleActors()

	byName := FilterActors(actors, ActorFilter{Query: "bravo"})
	require.Len(t, byName, 1)
	assert.Equal(t, "b", byName[0].Slug)

	byAlias := FilterActors(actors, ActorFilter{Query: "webweaver"})
	require.Len(t, byAlias, 1)
	assert.Equal(t, "a", byAlias[0].Slug)

	byDescription := FilterActors(actors, ActorFilter{Query: "espionage"})
	require.Len(t, byDescription, 1)
	assert.Equal(t, "b", byDescription[0].Slug)

	assert.Empty(t, FilterActors(actors, ActorFilter{Query: "nomatch"}))
}

func TestSortActors_Recent(t *testing.T) {
	// A has a timestamp, B and C only source order. Timestamped sorts first;
	// among the rest, higher order is more recent.
	actors := []domain.ThreatActor{
		{Slug: "c", Name: "C", Order: 2},
		{Slug: "a", Name: "A", LastSeen: "2024-01-01"},
		{Slug: "b", Name: "B", Order: 5},
	}

	sorted := SortActors(actors, SortRecent)
	require.Len(t, sorted, 3)
	assert.Equal(t, "a", sorted[0].Slug)
	assert.Equal(t, "b", sorted[1].Slug)
	assert.Equal(t, "c", sorted[2].Slug)
}

func TestSortActors_Name(t *testing.T) {
	actors := sampleActors()

	asc := SortActors(actors, SortNameAsc)
	assert.Equal(t, "Alpha Spider", asc[0].Name)
	assert.Equal(t, "Charlie Kitten", asc[2].Name)

	desc := SortActors(actors, SortNameDesc)
	assert.Equal(t, "Charlie Kitten", desc[0].Name)
	assert.Equal(t, "Alpha Spider", desc[2].Name)

	// Input order is untouched.
	assert.Equal(t, "a", actors[0].Slug)
}

func TestSortActors_TimestampOrdering(t *testing.T) {
	actors := []domain.ThreatActor{
		{Slug: "old", LastSeen: "2020-03"},
		{Slug: "new", LastSeen: "2024-06-01"},
	}
	sorted := SortActors(actors, SortRecent)
	assert.Equal(t, "new", sorted[0].Slug, "later last_seen sorts first")
}

func TestLatestActors(t *testing.T) {
	var actors []domain.ThreatActor
	for i := 0; i < 12; i++ {
		actors = append(actors, domain.ThreatActor{Slug: string(rune('a' + i)), Order: i})
	}

	latest := LatestActors(actors, LatestActorCount)
	require.Len(t, latest, LatestActorCount)
	assert.Equal(t, "l", latest[0].Slug, "highest order first when no timestamps")
}

func TestCountriesAndSectors(t *testing.T) {
	actors := sampleActors()

	assert.Equal(t, []string{"RU", "CN", "IR"}, Countries(actors), "first-seen order, no blanks")
	assert.Equal(t, []string{"Finance", "Government"}, Sectors(actors), "sorted union")
}
