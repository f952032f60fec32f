package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_CollisionSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: uint64(i * 250), Bodies: 50, Collisions: 20, Overlapping: 5})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1500, Bodies: 50, Collisions: 90, Overlapping: 40})
	if !hasBookmark(bookmarks, BookmarkCollisionSurge) {
		t.Error("expected collision_surge bookmark")
	}
}

func TestBookmarkDetector_NoSurgeWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bookmarks := bd.Check(WindowStats{Bodies: 50, Collisions: 500, Overlapping: 1})
	if hasBookmark(bookmarks, BookmarkCollisionSurge) {
		t.Error("surge reported on first window")
	}
}

func TestBookmarkDetector_PenetrationSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{Bodies: 50, Overlapping: 3, PenetrationP90: 0.5, PenetrationMax: 0.8})
	}

	bookmarks := bd.Check(WindowStats{Bodies: 50, Overlapping: 3, PenetrationP90: 0.6, PenetrationMax: 4})
	if !hasBookmark(bookmarks, BookmarkPenetrationSpike) {
		t.Error("expected penetration_spike bookmark")
	}
}

func TestBookmarkDetector_MassDespawn(t *testing.T) {
	tests := []struct {
		name      string
		bodies    int
		despawned int
		want      bool
	}{
		{"quarter removed", 30, 10, true},
		{"few removed", 100, 5, false},
		{"too few to count", 4, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bd := NewBookmarkDetector(5)
			bookmarks := bd.Check(WindowStats{Bodies: tc.bodies, Despawned: tc.despawned, Overlapping: 1})
			if got := hasBookmark(bookmarks, BookmarkMassDespawn); got != tc.want {
				t.Errorf("mass_despawn = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBookmarkDetector_SettledOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 10; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: uint64(i), Bodies: 20})
		if hasBookmark(bookmarks, BookmarkSettled) {
			fired++
			if i != 4 {
				t.Errorf("settled fired at window %d, want 4", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("settled fired %d times, want 1", fired)
	}
}
