package retriever

import (
	"math"
	"reflect"
	"testing"

	"lexlocate/internal/storage"
)

const rrfK = 60

func TestFuseSumsContributionsAcrossSources(t *testing.T) {
	keyword := []storage.SearchHit{
		{ID: 1, Rank: 0},
		{ID: 2, Rank: 1},
	}
	vector := []storage.SearchHit{
		{ID: 1, Rank: 0},
		{ID: 3, Rank: 1},
	}

	fused := fuse([][]storage.SearchHit{keyword, vector}, rrfK)

	want := map[int64]float64{
		1: 2.0 / 61.0,
		2: 1.0 / 62.0,
		3: 1.0 / 62.0,
	}
	if len(fused) != len(want) {
		t.Fatalf("fuse() returned %d hits, want %d", len(fused), len(want))
	}
	for _, hit := range fused {
		if math.Abs(hit.Score-want[hit.ID]) > 1e-12 {
			t.Errorf("fused score for id %d = %v, want %v", hit.ID, hit.Score, want[hit.ID])
		}
	}
}

func TestFuseSingleSourceIDGetsOnlyItsTerm(t *testing.T) {
	vector := []storage.SearchHit{{ID: 7, Rank: 2}}

	fused := fuse([][]storage.SearchHit{nil, vector}, rrfK)

	if len(fused) != 1 {
		t.Fatalf("fuse() returned %d hits, want 1", len(fused))
	}
	want := 1.0 / 63.0
	if math.Abs(fused[0].Score-want) > 1e-12 {
		t.Errorf("fused score = %v, want %v", fused[0].Score, want)
	}
}

func TestFuseOrdersByScoreDescending(t *testing.T) {
	keyword := []storage.SearchHit{
		{ID: 5, Rank: 0},
		{ID: 9, Rank: 1},
	}
	vector := []storage.SearchHit{
		{ID: 9, Rank: 0},
		{ID: 5, Rank: 3},
	}

	fused := fuse([][]storage.SearchHit{keyword, vector}, rrfK)

	for i := 1; i < len(fused); i++ {
		if fused[i-1].Score < fused[i].Score {
			t.Errorf("fuse() not sorted descending at index %d: %v < %v", i, fused[i-1].Score, fused[i].Score)
		}
	}
	// 9 appears at ranks 1 and 0, 5 at ranks 0 and 3; 9 must win.
	if fused[0].ID != 9 {
		t.Errorf("top fused id = %d, want 9", fused[0].ID)
	}
}

func TestFuseBreaksTiesByAscendingID(t *testing.T) {
	// Both ids appear only once at the same rank: identical scores.
	keyword := []storage.SearchHit{{ID: 42, Rank: 0}}
	vector := []storage.SearchHit{{ID: 7, Rank: 0}}

	fused := fuse([][]storage.SearchHit{keyword, vector}, rrfK)

	if len(fused) != 2 {
		t.Fatalf("fuse() returned %d hits, want 2", len(fused))
	}
	if fused[0].ID != 7 || fused[1].ID != 42 {
		t.Errorf("tie-break order = [%d, %d], want [7, 42]", fused[0].ID, fused[1].ID)
	}
}

func TestFuseIsDeterministic(t *testing.T) {
	keyword := []storage.SearchHit{
		{ID: 1, Rank: 0}, {ID: 2, Rank: 1}, {ID: 3, Rank: 2},
	}
	vector := []storage.SearchHit{
		{ID: 3, Rank: 0}, {ID: 4, Rank: 1}, {ID: 1, Rank: 2},
	}

	first := fuse([][]storage.SearchHit{keyword, vector}, rrfK)
	for i := 0; i < 10; i++ {
		again := fuse([][]storage.SearchHit{keyword, vector}, rrfK)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("fuse() not deterministic: run %d differs", i)
		}
	}
}

func TestFuseEmptyInputs(t *testing.T) {
	fused := fuse([][]storage.SearchHit{nil, nil}, rrfK)
	if len(fused) != 0 {
		t.Errorf("fuse() with empty lists returned %d hits, want 0", len(fused))
	}
}
