package astro

import (
	"math/rand"
	"testing"

	"Sternentyp/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(ps []models.AspectPattern) []models.PatternKind {
	out := make([]models.PatternKind, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Kind)
	}
	return out
}

func findKind(ps []models.AspectPattern, k models.PatternKind) *models.AspectPattern {
	for i := range ps {
		if ps[i].Kind == k {
			return &ps[i]
		}
	}
	return nil
}

func TestDetectGrandTrine(t *testing.T) {
	ps := DetectPatterns([]Point{
		{"Sonne", 0}, {"Mond", 120}, {"Merkur", 240}, {"Venus", 33},
	})
	require.Len(t, ps, 1)
	assert.Equal(t, models.GrossesTrigon, ps[0].Kind)
	assert.ElementsMatch(t, []string{"Sonne", "Mond", "Merkur"}, ps[0].Members)
	assert.Empty(t, ps[0].Apex)
}

func TestDetectTSquare(t *testing.T) {
	ps := DetectPatterns([]Point{
		{"Sonne", 0}, {"Mond", 180}, {"Mars", 90},
	})
	p := findKind(ps, models.TQuadrat)
	require.NotNil(t, p, "kinds=%v", kinds(ps))
	assert.Equal(t, "Mars", p.Apex)
	assert.ElementsMatch(t, []string{"Sonne", "Mond", "Mars"}, p.Members)
}

func TestDetectYod(t *testing.T) {
	ps := DetectPatterns([]Point{
		{"Sonne", 0}, {"Mond", 60}, {"Mars", 210},
	})
	p := findKind(ps, models.Yod)
	require.NotNil(t, p, "kinds=%v", kinds(ps))
	assert.Equal(t, "Mars", p.Apex)
}

func TestDetectKite(t *testing.T) {
	ps := DetectPatterns([]Point{
		{"Sonne", 0}, {"Mond", 120}, {"Merkur", 240}, {"Venus", 180},
	})
	require.NotNil(t, findKind(ps, models.GrossesTrigon))
	kite := findKind(ps, models.Drachen)
	require.NotNil(t, kite, "kinds=%v", kinds(ps))
	assert.Equal(t, "Venus", kite.Apex)
	assert.ElementsMatch(t, []string{"Sonne", "Mond", "Merkur", "Venus"}, kite.Members)
}

func TestDetectMysticRectangle(t *testing.T) {
	ps := DetectPatterns([]Point{
		{"Sonne", 0}, {"Mond", 60}, {"Merkur", 180}, {"Venus", 240},
	})
	p := findKind(ps, models.MystischesRechteck)
	require.NotNil(t, p, "kinds=%v", kinds(ps))
	assert.ElementsMatch(t, []string{"Sonne", "Mond", "Merkur", "Venus"}, p.Members)
}

func TestDetectWithinOrb(t *testing.T) {
	// trine orb is 5° in the pattern table: 124° still matches, 126° not
	ps := DetectPatterns([]Point{{"Sonne", 0}, {"Mond", 124}, {"Merkur", 244}})
	assert.NotNil(t, findKind(ps, models.GrossesTrigon))

	ps = DetectPatterns([]Point{{"Sonne", 0}, {"Mond", 126}, {"Merkur", 246}})
	assert.Nil(t, findKind(ps, models.GrossesTrigon))
}

func TestDetectOrderIndependence(t *testing.T) {
	points := []Point{
		{"Sonne", 0}, {"Mond", 120}, {"Merkur", 240}, {"Venus", 180},
		{"Mars", 90}, {"Jupiter", 60}, {"Saturn", 210}, {"Uranus", 305},
		{"Neptun", 17}, {"Pluto", 150},
	}
	want := DetectPatterns(points)
	require.NotEmpty(t, want)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]Point{}, points...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := DetectPatterns(shuffled)
		require.Len(t, got, len(want), "trial %d", trial)
		for i := range want {
			assert.Equal(t, want[i].Kind, got[i].Kind)
			assert.Equal(t, want[i].Members, got[i].Members)
		}
	}
}

func TestDetectDeduplicates(t *testing.T) {
	// 0/124/240: pairs (0,124) and (124,240) are both trines with orb 4,
	// (0,240) exact; still exactly one grand trine entry
	ps := DetectPatterns([]Point{{"Sonne", 0}, {"Mond", 124}, {"Merkur", 244}, {"Venus", 124.5}})
	count := 0
	for _, p := range ps {
		if p.Kind == models.GrossesTrigon {
			count++
		}
	}
	// Sonne/Mond/Merkur and Sonne/Venus/Merkur both qualify but are
	// distinct member sets; each appears exactly once
	assert.Equal(t, 2, count)
}
